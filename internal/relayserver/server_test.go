package relayserver

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/relay/internal/extract"
)

func TestServer_HandlesRegisteredRoute(t *testing.T) {
	s := New(2)
	err := s.Get("/health", extract.H0(func() extract.Data[struct {
		Message string `json:"message"`
	}] {
		return extract.OK(struct {
			Message string `json:"message"`
		}{Message: "ok"})
	}))
	require.NoError(t, err)

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		s.handle(server)
		close(done)
	}()

	_, err = client.Write([]byte("GET /health HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	reader := bufio.NewReader(client)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "200 OK")

	client.Close()
	<-done
}

func TestServer_CORSPreflight_S4(t *testing.T) {
	s := New(2)
	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		s.handle(server)
		close(done)
	}()

	_, err := client.Write([]byte("OPTIONS /anything HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	reader := bufio.NewReader(client)

	statusLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, statusLine, "200 OK")

	headers := make(map[string]string)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ": ")
		require.True(t, ok, "malformed header line %q", line)
		headers[strings.ToLower(name)] = value
	}

	assert.Equal(t, "*", headers["access-control-allow-origin"])
	assert.Contains(t, headers["access-control-allow-methods"], "GET")
	assert.NotEmpty(t, headers["access-control-allow-headers"])
	assert.Equal(t, "close", headers["connection"])

	client.Close()
	<-done
}

func TestServer_405ForWrongMethod(t *testing.T) {
	s := New(2)
	err := s.Get("/health", extract.H0(func() extract.Data[struct {
		Message string `json:"message"`
	}] {
		return extract.OK(struct {
			Message string `json:"message"`
		}{Message: "ok"})
	}))
	require.NoError(t, err)

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		s.handle(server)
		close(done)
	}()

	_, err = client.Write([]byte("POST /health HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	reader := bufio.NewReader(client)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "405")

	client.Close()
	<-done
}

func TestServer_404ForUnknownRoute(t *testing.T) {
	s := New(2)
	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		s.handle(server)
		close(done)
	}()

	_, err := client.Write([]byte("GET /nope HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	reader := bufio.NewReader(client)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "404")

	client.Close()
	<-done
}
