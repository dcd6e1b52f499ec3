// Package relayserver wires internal/httpmsg, internal/routing,
// internal/extract, internal/respwriter, and internal/workerpool into the
// runnable origin server described in spec.md, plus the CORS preflight
// policy from spec.md's EXTERNAL INTERFACES section. Grounded on
// _examples/Reinis-FTM-go-http-server/internal/server/server.go's
// Server/Serve/handle shape (net.Listener wrapping, per-connection
// goroutine, tab-separated access logging via the standard log package)
// and _examples/MiraiMindz-watt/bolt/core/router_interface.go's
// Get/Post/Delete registration surface.
package relayserver

import (
	"log"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/relay/internal/extract"
	"github.com/yourusername/relay/internal/httpmsg"
	"github.com/yourusername/relay/internal/respwriter"
	"github.com/yourusername/relay/internal/routing"
	"github.com/yourusername/relay/internal/workerpool"
)

// CORSPolicy is the fixed preflight response spec.md's EXTERNAL
// INTERFACES section describes. AllowOrigin defaults to "*"; the whole
// policy can be replaced through Server.WithCORS rather than being
// hard-coded.
type CORSPolicy struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
}

func defaultCORSPolicy() CORSPolicy {
	return CORSPolicy{
		AllowOrigin:  "*",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}
}

// Server is the origin-server accept loop: it owns a RoutingMap, a
// TaskManager to bound concurrent request handling, and the CORS policy
// applied to every OPTIONS preflight.
type Server struct {
	routes *routing.Map
	pool   *workerpool.TaskManager
	cors   CORSPolicy
	ln     net.Listener
}

// New creates a Server with the given number of worker goroutines.
func New(workers int) *Server {
	return &Server{
		routes: routing.NewMap(),
		pool:   workerpool.New(workers, workers*4),
		cors:   defaultCORSPolicy(),
	}
}

// WithCORS overrides the default CORS policy.
func (s *Server) WithCORS(policy CORSPolicy) *Server {
	s.cors = policy
	return s
}

// Get registers a GET handler at pattern.
func (s *Server) Get(pattern string, h extract.HandlerFunc) error {
	return s.routes.Add("GET", pattern, h)
}

// Post registers a POST handler at pattern.
func (s *Server) Post(pattern string, h extract.HandlerFunc) error {
	return s.routes.Add("POST", pattern, h)
}

// Put registers a PUT handler at pattern.
func (s *Server) Put(pattern string, h extract.HandlerFunc) error {
	return s.routes.Add("PUT", pattern, h)
}

// Delete registers a DELETE handler at pattern.
func (s *Server) Delete(pattern string, h extract.HandlerFunc) error {
	return s.routes.Add("DELETE", pattern, h)
}

// Patch registers a PATCH handler at pattern.
func (s *Server) Patch(pattern string, h extract.HandlerFunc) error {
	return s.routes.Add("PATCH", pattern, h)
}

// Serve listens on addr and accepts connections until the listener is
// closed, dispatching each connection to the worker pool.
func (s *Server) Serve(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	s.ln = ln
	log.Printf("relay: listening on %s", addr)
	return s.listen(ln)
}

func (s *Server) listen(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		s.pool.Submit(func() { s.handle(conn) })
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	requestID := uuid.NewString()
	start := time.Now()

	parser := httpmsg.NewRequestParser()
	buf := make([]byte, 4096)
	for !parser.Done() {
		n, readErr := conn.Read(buf)
		feedErr := parser.Feed(buf[:n])
		if feedErr == nil {
			break
		}
		if feedErr == httpmsg.ErrNeedMoreData {
			if readErr != nil {
				s.logAccess(requestID, conn, "-", "-", 400, start, readErr)
				return
			}
			continue
		}
		if feedErr == httpmsg.ErrConnectionClosedBeforeData {
			return // quiet shutdown, nothing to log as an error
		}
		s.writeError(conn, 400)
		s.logAccess(requestID, conn, "-", "-", 400, start, feedErr)
		return
	}

	req := parser.Request()
	if req.Method == "OPTIONS" {
		s.writeCORSPreflight(conn)
		s.logAccess(requestID, conn, req.Method, req.Path, 200, start, nil)
		return
	}

	handlerAny, params, err := s.routes.Lookup(req.Method, req.Path)
	if err != nil {
		status := 404
		if err == routing.ErrMethodNotAllowed {
			status = 405
		}
		s.writeError(conn, status)
		s.logAccess(requestID, conn, req.Method, req.Path, status, start, err)
		return
	}
	handler, ok := handlerAny.(extract.HandlerFunc)
	if !ok {
		s.writeError(conn, 500)
		s.logAccess(requestID, conn, req.Method, req.Path, 500, start, nil)
		return
	}

	resp := handler(&extract.Request{Msg: req, Params: params})
	if resp.Headers == nil {
		resp.Headers = make(map[string]string, 1)
	}
	resp.Headers["X-Request-Id"] = requestID
	if err := extract.WriteResponse(conn, resp); err != nil {
		s.logAccess(requestID, conn, req.Method, req.Path, resp.Status, start, err)
		return
	}
	s.logAccess(requestID, conn, req.Method, req.Path, resp.Status, start, nil)
}

// writeCORSPreflight answers an OPTIONS preflight with the fixed policy
// in spec.md §6: status 200, the three Access-Control-* headers, and a
// mandatory Connection: close (Testable Scenario S4).
func (s *Server) writeCORSPreflight(conn net.Conn) {
	hs, err := respwriter.New(conn).WriteStatusLine(200)
	if err != nil {
		return
	}
	hs.WriteHeader("Access-Control-Allow-Origin", s.cors.AllowOrigin)
	hs.WriteHeader("Access-Control-Allow-Methods", s.cors.AllowMethods)
	hs.WriteHeader("Access-Control-Allow-Headers", s.cors.AllowHeaders)
	hs.WriteFixedHeader("Connection", "close")
	hs.WriteBody("", nil)
}

func (s *Server) writeError(conn net.Conn, status int) {
	hs, err := respwriter.New(conn).WriteStatusLine(status)
	if err != nil {
		return
	}
	body := []byte(respwriter.ReasonPhrase(status))
	hs.WriteBody("text/plain", body)
}

// logAccess writes one tab-separated access-log line per request, the
// same shape Reinis-FTM-go-http-server's server.go logs with the
// standard library's log package.
func (s *Server) logAccess(requestID string, conn net.Conn, method, path string, status int, start time.Time, err error) {
	remote := conn.RemoteAddr().String()
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("%s\t%s\t%s\t%s\t%d\t%s\t%v", requestID, remote, method, path, status, elapsed, err)
		return
	}
	log.Printf("%s\t%s\t%s\t%s\t%d\t%s", requestID, remote, method, path, status, elapsed)
}

// Shutdown closes the listener, so Serve's accept loop returns and no new
// connection can reach the worker pool, then waits for in-flight requests
// to finish.
func (s *Server) Shutdown() {
	if s.ln != nil {
		s.ln.Close()
	}
	s.pool.Shutdown()
}
