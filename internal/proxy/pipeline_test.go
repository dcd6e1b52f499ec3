package proxy

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/relay/internal/httpmsg"
)

func TestForwardRequest_RewritesHostAndLine(t *testing.T) {
	src := bytes.NewBufferString("GET /widgets HTTP/1.1\r\nHost: client-facing.example\r\nAccept: */*\r\nContent-Length: 5\r\n\r\nhello")
	var dst bytes.Buffer

	err := ForwardRequest(src, &dst, "upstream.internal:8080")
	require.NoError(t, err)

	out := dst.String()
	assert.Contains(t, out, "GET /widgets HTTP/1.1\r\n")
	assert.Contains(t, out, "Host: upstream.internal:8080\r\n")
	assert.Contains(t, out, "Accept: */*\r\n")
	assert.NotContains(t, out, "client-facing.example")
	assert.True(t, bytes.HasSuffix(dst.Bytes(), []byte("hello")))
}

func TestForwardRequest_NoBody(t *testing.T) {
	src := bytes.NewBufferString("GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	var dst bytes.Buffer
	err := ForwardRequest(src, &dst, "up")
	require.NoError(t, err)
	assert.Contains(t, dst.String(), "Host: up\r\n\r\n")
}

func TestForwardResponse_PassesHopByHopVerbatim(t *testing.T) {
	src := bytes.NewBufferString("HTTP/1.1 200 OK\r\nConnection: keep-alive\r\nContent-Length: 2\r\n\r\nok")
	var dst bytes.Buffer
	err := ForwardResponse(src, &dst)
	require.NoError(t, err)
	out := dst.String()
	assert.Contains(t, out, "HTTP/1.1 200 OK\r\n")
	assert.Contains(t, out, "Connection: keep-alive\r\n")
	assert.True(t, bytes.HasSuffix(dst.Bytes(), []byte("ok")))
}

func TestForwardRequest_ConnectionClosedBeforeData(t *testing.T) {
	src := bytes.NewBufferString("")
	var dst bytes.Buffer
	err := ForwardRequest(src, &dst, "up")
	assert.ErrorIs(t, err, httpmsg.ErrConnectionClosedBeforeData)
}

// splitReader hands back data one byte at a time, so any multi-byte
// sequence — including the "0\r\n\r\n" chunked terminator — is guaranteed
// to straddle two separate Read calls (Testable Scenario S6).
type splitReader struct {
	data []byte
	pos  int
}

func (r *splitReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	p[0] = r.data[r.pos]
	r.pos++
	return 1, nil
}

func TestForwardRequest_ChunkedBody_TerminatorSplitAcrossReads(t *testing.T) {
	raw := "POST /upload HTTP/1.1\r\nHost: client.example\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"
	src := &splitReader{data: []byte(raw)}
	var dst bytes.Buffer

	err := ForwardRequest(src, &dst, "upstream.internal:8080")
	require.NoError(t, err)

	out := dst.String()
	assert.Contains(t, out, "Transfer-Encoding: chunked\r\n")
	assert.True(t, strings.HasSuffix(out, "4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"))
}

// chunkDataContainsTerminator exercises the failure mode a naive
// substring search on the terminator would hit: chunk data that itself
// contains the literal bytes "0\r\n\r\n" must still be forwarded in full,
// not truncated at the first occurrence.
func TestForwardRequest_ChunkedBody_DataContainsTerminatorBytes(t *testing.T) {
	payload := "x0\r\n\r\ny" // 7 bytes, contains the terminator sequence mid-stream
	raw := "POST /upload HTTP/1.1\r\nHost: client.example\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"7\r\n" + payload + "\r\n0\r\n\r\n"
	src := &splitReader{data: []byte(raw)}
	var dst bytes.Buffer

	err := ForwardRequest(src, &dst, "up")
	require.NoError(t, err)

	out := dst.String()
	assert.True(t, strings.HasSuffix(out, "7\r\n"+payload+"\r\n0\r\n\r\n"))
}
