package respwriter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBody_ComputesContentLength(t *testing.T) {
	var buf bytes.Buffer
	hs, err := New(&buf).WriteStatusLine(200)
	require.NoError(t, err)
	hs.WriteHeader("X-Custom", "yes")
	_, err = hs.WriteBody("text/plain", []byte("hello"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 200 OK\r\n")
	assert.Contains(t, out, "X-Custom: yes\r\n")
	assert.Contains(t, out, "Content-Type: text/plain\r\n")
	assert.Contains(t, out, "Content-Length: 5\r\n")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\r\n\r\nhello")))
}

func TestWriteHeader_DropsReserved(t *testing.T) {
	var buf bytes.Buffer
	hs, _ := New(&buf).WriteStatusLine(200)
	hs.WriteHeader("Content-Length", "999")
	hs.WriteHeader("Connection", "keep-alive")
	_, err := hs.WriteBody("", []byte("ok"))
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "999")
	assert.NotContains(t, out, "keep-alive")
	assert.Contains(t, out, "Content-Length: 2\r\n")
}

func TestWriteChunkedBody(t *testing.T) {
	var buf bytes.Buffer
	hs, _ := New(&buf).WriteStatusLine(200)
	cb, err := hs.WriteChunkedBody("text/plain")
	require.NoError(t, err)
	require.NoError(t, cb.WriteChunk([]byte("Wiki")))
	require.NoError(t, cb.WriteChunk([]byte("pedia")))
	_, err = cb.Done(map[string]string{"X-Checksum": "abc"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Transfer-Encoding: chunked\r\n")
	assert.Contains(t, out, "4\r\nWiki\r\n")
	assert.Contains(t, out, "5\r\npedia\r\n")
	assert.Contains(t, out, "0\r\nX-Checksum: abc\r\n\r\n")
}

func TestReasonPhrase_Unknown(t *testing.T) {
	assert.Equal(t, "Unknown Status", ReasonPhrase(799))
	assert.Equal(t, "OK", ReasonPhrase(200))
}
