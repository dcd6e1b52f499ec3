// Command relayproxy runs the forward proxy described in spec.md §4.10:
// for each accepted connection it runs internal/proxy's two sequential
// passes (client to upstream, upstream to client) against a single fixed
// upstream host, matching the remote_host_name constructor argument
// _examples/original_source/src/proxy.rs's RequestPartProxySender takes.
package main

import (
	"flag"
	"log"
	"net"

	"github.com/yourusername/relay/internal/proxy"
)

func main() {
	addr := flag.String("addr", ":8081", "address to listen on")
	upstream := flag.String("upstream", "localhost:8080", "upstream host:port to forward to")
	flag.Parse()

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("relayproxy: listen: %v", err)
	}
	defer ln.Close()
	log.Printf("relayproxy: forwarding %s -> %s", *addr, *upstream)

	for {
		clientConn, err := ln.Accept()
		if err != nil {
			log.Printf("relayproxy: accept: %v", err)
			continue
		}
		go handleConnection(clientConn, *upstream)
	}
}

func handleConnection(clientConn net.Conn, upstream string) {
	defer clientConn.Close()

	upstreamConn, err := net.Dial("tcp", upstream)
	if err != nil {
		log.Printf("relayproxy: dial upstream: %v", err)
		return
	}
	defer upstreamConn.Close()

	if err := proxy.ForwardRequest(clientConn, upstreamConn, upstream); err != nil {
		log.Printf("relayproxy: forward request: %v", err)
		return
	}
	if err := proxy.ForwardResponse(upstreamConn, clientConn); err != nil {
		log.Printf("relayproxy: forward response: %v", err)
		return
	}
}
