// Package respwriter writes HTTP/1.1 responses to a connection through a
// compile-time-ordered sequence of steps — status line, then headers,
// then exactly one of a fixed-length or chunked body. Each step method
// returns the next step's type, so the status line cannot be skipped and
// headers can only be queued on a HeaderStep; a step value that has
// already been used stays callable, and nothing checks at run time that
// it is not used again. Grounded on
// _examples/Reinis-FTM-go-http-server/internal/response/response.go's
// step-ordered Writer, generalized to compile-time types and extended
// with the full reason-phrase table spec.md §6 requires (the teacher's
// truncated-reason-phrase bug, spec.md §9, is not reproduced here).
package respwriter

import (
	"fmt"
	"io"
	"strconv"
)

// reasonPhrases is the canonical status-code -> reason-phrase table.
var reasonPhrases = map[int]string{
	200: "OK",
	201: "Created",
	202: "Accepted",
	204: "No Content",
	301: "Moved Permanently",
	302: "Found",
	304: "Not Modified",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	413: "Payload Too Large",
	415: "Unsupported Media Type",
	422: "Unprocessable Entity",
	429: "Too Many Requests",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
}

// ReasonPhrase returns the canonical reason phrase for code, or "Unknown
// Status" if code has no table entry.
func ReasonPhrase(code int) string {
	if r, ok := reasonPhrases[code]; ok {
		return r
	}
	return "Unknown Status"
}

// reservedHeaders are computed by this package and silently dropped if a
// caller tries to set them directly through WriteHeader.
var reservedHeaders = map[string]bool{
	"content-type":      true,
	"content-length":    true,
	"transfer-encoding": true,
	"connection":        true,
}

// New begins writing a response to w and returns the first step: the
// caller must write a status line before anything else.
func New(w io.Writer) *StatusLineStep {
	return &StatusLineStep{w: w}
}

// StatusLineStep is the only step at which a status line may be written.
type StatusLineStep struct {
	w io.Writer
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>\r\n" and advances to
// the header-writing step.
func (s *StatusLineStep) WriteStatusLine(code int) (*HeaderStep, error) {
	line := fmt.Sprintf("HTTP/1.1 %d %s\r\n", code, ReasonPhrase(code))
	if _, err := io.WriteString(s.w, line); err != nil {
		return nil, err
	}
	return &HeaderStep{w: s.w, headers: make([][2]string, 0, 8)}, nil
}

// HeaderStep accumulates headers until the caller chooses a body mode.
type HeaderStep struct {
	w       io.Writer
	headers [][2]string
}

// WriteHeader queues name: value to be written with the rest of the
// header block. Reserved headers (Content-Type, Content-Length,
// Transfer-Encoding, Connection) are computed by this package and
// silently dropped here.
func (h *HeaderStep) WriteHeader(name, value string) *HeaderStep {
	if reservedHeaders[lowerASCII(name)] {
		return h
	}
	h.headers = append(h.headers, [2]string{name, value})
	return h
}

// WriteFixedHeader queues name: value without the reserved-header check
// WriteHeader applies. It exists for the handful of fixed, framework-
// written responses (the CORS preflight's mandatory Connection: close,
// spec.md §6) that need to set a header WriteHeader would otherwise
// silently drop — it is not meant for handler-supplied values.
func (h *HeaderStep) WriteFixedHeader(name, value string) *HeaderStep {
	h.headers = append(h.headers, [2]string{name, value})
	return h
}

// WriteBody writes the queued headers, then Content-Type (if non-empty)
// and a Content-Length computed from len(body), the blank line, and body
// — in that order — and advances to DoneStep.
func (h *HeaderStep) WriteBody(contentType string, body []byte) (*DoneStep, error) {
	if contentType != "" {
		h.headers = append(h.headers, [2]string{"Content-Type", contentType})
	}
	h.headers = append(h.headers, [2]string{"Content-Length", strconv.Itoa(len(body))})
	if err := h.flushHeaders(); err != nil {
		return nil, err
	}
	if _, err := h.w.Write(body); err != nil {
		return nil, err
	}
	return &DoneStep{}, nil
}

// WriteChunkedBody writes the queued headers, then Content-Type (if
// non-empty) and Transfer-Encoding: chunked, then the blank line, and
// advances to ChunkedBodyStep for the caller to stream chunks.
func (h *HeaderStep) WriteChunkedBody(contentType string) (*ChunkedBodyStep, error) {
	if contentType != "" {
		h.headers = append(h.headers, [2]string{"Content-Type", contentType})
	}
	h.headers = append(h.headers, [2]string{"Transfer-Encoding", "chunked"})
	if err := h.flushHeaders(); err != nil {
		return nil, err
	}
	return &ChunkedBodyStep{w: h.w}, nil
}

func (h *HeaderStep) flushHeaders() error {
	for _, kv := range h.headers {
		if _, err := fmt.Fprintf(h.w, "%s: %s\r\n", kv[0], kv[1]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(h.w, "\r\n")
	return err
}

// ChunkedBodyStep streams a chunked body.
type ChunkedBodyStep struct {
	w io.Writer
}

// WriteChunk writes one chunk-size line followed by data and its
// trailing CRLF. An empty data slice writes nothing and returns nil, so
// it cannot terminate the stream — use Done for that.
func (c *ChunkedBodyStep) WriteChunk(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(c.w, "%x\r\n", len(data)); err != nil {
		return err
	}
	if _, err := c.w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(c.w, "\r\n")
	return err
}

// Done writes the terminating zero-length chunk, any trailers, and the
// final CRLF, and advances to DoneStep.
func (c *ChunkedBodyStep) Done(trailers map[string]string) (*DoneStep, error) {
	if _, err := io.WriteString(c.w, "0\r\n"); err != nil {
		return nil, err
	}
	for name, value := range trailers {
		if _, err := fmt.Fprintf(c.w, "%s: %s\r\n", name, value); err != nil {
			return nil, err
		}
	}
	if _, err := io.WriteString(c.w, "\r\n"); err != nil {
		return nil, err
	}
	return &DoneStep{}, nil
}

// DoneStep marks that the response has been fully written; it has no
// methods, so no further step follows from it. Earlier step values are
// not invalidated by reaching it.
type DoneStep struct{}

func lowerASCII(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
