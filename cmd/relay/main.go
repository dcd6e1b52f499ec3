// Command relay runs the HTTP/1.1 origin server, wiring a couple of
// example routes the way
// _examples/Reinis-FTM-go-http-server/cmd/httpserver/main.go wires its
// handler — plain constructor arguments, stdlib flag for the port, and
// os/signal-driven graceful shutdown, with no configuration framework
// (see SPEC_FULL.md's ambient-stack rationale for why).
package main

import (
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourusername/relay/internal/extract"
	"github.com/yourusername/relay/internal/relayserver"
)

type echoBody struct {
	Message string `json:"message"`
}

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")
	workers := flag.Int("workers", 16, "worker pool size")
	flag.Parse()

	srv := relayserver.New(*workers)

	if err := srv.Get("/health", extract.H0(func() extract.Data[echoBody] {
		return extract.OK(echoBody{Message: "ok"})
	})); err != nil {
		log.Fatalf("relay: registering /health: %v", err)
	}

	if err := srv.Get("/echo", extract.H1(extract.Query, func(q url.Values) extract.Data[echoBody] {
		return extract.OK(echoBody{Message: q.Get("message")})
	})); err != nil {
		log.Fatalf("relay: registering /echo: %v", err)
	}

	if err := srv.Get("/widgets/{id}", extract.H1(extract.PathParam("id"), func(id string) extract.Data[widget] {
		return extract.OK(widget{ID: id, Name: "widget-" + id})
	})); err != nil {
		log.Fatalf("relay: registering /widgets/{id}: %v", err)
	}

	if err := srv.Post("/widgets", extract.H1(extract.Json[widget], func(w widget) extract.Data[widget] {
		return extract.Created(w)
	})); err != nil {
		log.Fatalf("relay: registering POST /widgets: %v", err)
	}

	go func() {
		if err := srv.Serve(*addr); err != nil {
			log.Printf("relay: serve stopped: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Println("relay: shutting down")
	srv.Shutdown()
}
