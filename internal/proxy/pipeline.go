// Package proxy implements the ProxyPipeline described in spec.md §4.10:
// a forward proxy that runs two sequential ProxyParser passes per
// connection — client to upstream, then upstream to client — rewriting
// only the request line and Host header and otherwise passing every
// other header through verbatim, including hop-by-hop headers. That
// verbatim passthrough is not idiomatic reverse-proxy behavior, but it
// matches _examples/original_source/src/proxy.rs's write_proxied_headers
// exactly, and spec.md §4.10 calls out that fidelity as intentional.
//
// Bodies are streamed: once headers are parsed, newly-decoded body bytes
// are written to the destination as soon as they arrive rather than
// being buffered in full, mirroring proxy.rs's ProxyParser::parse loop.
package proxy

import (
	"fmt"
	"io"
	"strings"

	"github.com/yourusername/relay/internal/httpmsg"
)

// Reader is the minimal read surface a ProxyParser needs from a
// connection; net.Conn satisfies it.
type Reader interface {
	Read([]byte) (int, error)
}

// Writer is the minimal write surface a ProxyParser needs; net.Conn
// satisfies it.
type Writer interface {
	Write([]byte) (int, error)
}

const readBufSize = 1024

// ForwardRequest reads one HTTP request from src, rewrites its request
// line and Host header for remoteHost, writes the rewritten request to
// dst, and streams the body through as it's decoded. It returns
// httpmsg.ErrConnectionClosedBeforeData if src closed before any bytes
// arrived (a quiet shutdown, not a parse failure).
func ForwardRequest(src Reader, dst Writer, remoteHost string) error {
	return forward(src, dst, &requestHead{remoteHost: remoteHost})
}

// ForwardResponse reads one HTTP response from src and writes it to dst:
// the status line is rebuilt as "HTTP/1.1 <code> <reason>" from the
// parsed code and reason phrase, and all headers are passed verbatim.
func ForwardResponse(src Reader, dst Writer) error {
	return forward(src, dst, &responseHead{})
}

// head abstracts over the two directions' differing first-line shape and
// rewriting rules, so the shared state machine in forward can drive both.
type head interface {
	// parseFirstLine attempts to parse the first line from buf[0:]. On
	// success it returns bytes consumed; on a partial line, 0 and
	// httpmsg.ErrNeedMoreData.
	parseFirstLine(buf []byte) (int, error)
	// writeHeadAndHeaders writes the (possibly rewritten) first line,
	// followed by rawHeaderLines exactly as they arrived on the wire
	// (skipping Host, which the request side rewrites itself), to dst.
	writeHeadAndHeaders(dst Writer, rawHeaderLines [][]byte) error
}

type requestHead struct {
	remoteHost string
	req        httpmsg.Request
}

func (r *requestHead) parseFirstLine(buf []byte) (int, error) {
	return httpmsg.ParseRequestLine(buf, &r.req)
}

func (r *requestHead) writeHeadAndHeaders(dst Writer, rawHeaderLines [][]byte) error {
	line := fmt.Sprintf("%s %s HTTP/1.1\r\nHost: %s\r\n", r.req.Method, r.req.Target, r.remoteHost)
	if _, err := io.WriteString(dst, line); err != nil {
		return err
	}
	return writeHeadersVerbatim(dst, rawHeaderLines, "host")
}

type responseHead struct {
	resp httpmsg.Response
}

func (r *responseHead) parseFirstLine(buf []byte) (int, error) {
	return httpmsg.ParseStatusLine(buf, &r.resp)
}

func (r *responseHead) writeHeadAndHeaders(dst Writer, rawHeaderLines [][]byte) error {
	line := fmt.Sprintf("HTTP/1.1 %d %s\r\n", r.resp.StatusCode, r.resp.ReasonPhrase)
	if _, err := io.WriteString(dst, line); err != nil {
		return err
	}
	return writeHeadersVerbatim(dst, rawHeaderLines, "")
}

// writeHeadersVerbatim writes every line in rawHeaderLines except skip
// (already-rewritten, matched case-insensitively by field name), exactly
// as received, followed by the blank line. Grounded on proxy.rs's
// write_proxied_headers, which deliberately passes hop-by-hop headers
// through unchanged. Lines are forwarded byte-for-byte rather than
// reconstructed from the parsed httpmsg.Headers map specifically because
// that map lowercases every field name for case-insensitive lookup —
// rebuilding header lines from it would silently lowercase names like
// "Accept" on the wire, which a verbatim proxy must not do.
func writeHeadersVerbatim(dst Writer, rawHeaderLines [][]byte, skip string) error {
	var b strings.Builder
	for _, line := range rawHeaderLines {
		if skip != "" && headerLineNameIs(line, skip) {
			continue
		}
		b.Write(line)
	}
	b.WriteString("\r\n")
	_, err := io.WriteString(dst, b.String())
	return err
}

// headerLineNameIs reports whether the "Name:" prefix of a raw "Name:
// value\r\n" header line equals want, case-insensitively.
func headerLineNameIs(line []byte, want string) bool {
	colon := -1
	for i, c := range line {
		if c == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		return false
	}
	return strings.EqualFold(string(line[:colon]), want)
}

// cursor is the shared, growing read buffer a single forward() call
// parses out of. It is passed around as a pointer everywhere downstream
// of the first read specifically so that a readMore that appends new
// bytes is visible to every function still working through the same
// message — passing the buffer and position as plain (non-pointer)
// parameters, as an earlier revision did, silently froze each callee's
// view of the buffer at call time and left streamBody re-scanning a
// buffer that could never grow.
type cursor struct {
	src Reader
	buf []byte
	pos int
}

// readMore reads up to readBufSize more bytes from src and appends them
// to the cursor's buffer, first discarding any already-consumed prefix
// so a long-lived connection streaming a large body doesn't retain the
// whole message in memory — only the not-yet-forwarded tail survives.
func (c *cursor) readMore() error {
	if c.pos > 0 {
		c.buf = append(c.buf[:0], c.buf[c.pos:]...)
		c.pos = 0
	}
	chunk := make([]byte, readBufSize)
	n, err := c.src.Read(chunk)
	if n == 0 && err != nil {
		// c.buf stays nil until the first byte arrives; compaction above
		// may empty it mid-message but never resets it to nil.
		if c.buf == nil {
			return httpmsg.ErrConnectionClosedBeforeData
		}
		return httpmsg.ErrUnexpectedEOF
	}
	c.buf = append(c.buf, chunk[:n]...)
	return nil
}

// remaining returns the as-yet-unconsumed tail of the buffer.
func (c *cursor) remaining() []byte {
	return c.buf[c.pos:]
}

// forward drives the shared proxy state machine: parse the first line,
// parse headers, determine body framing, flush the rewritten head once,
// then stream body bytes through as they're decoded.
func forward(src Reader, dst Writer, h head) error {
	c := &cursor{src: src}
	headers := make(httpmsg.Headers, 8)
	var rawHeaderLines [][]byte

	if err := c.readMore(); err != nil {
		return err
	}

	for {
		n, err := h.parseFirstLine(c.remaining())
		if err == httpmsg.ErrNeedMoreData {
			if err := c.readMore(); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		c.pos += n
		break
	}

	for {
		n, done, err := httpmsg.ParseHeaderLine(c.remaining(), headers)
		if err == httpmsg.ErrNeedMoreData {
			if err := c.readMore(); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if !done {
			// copied out of c.buf rather than sliced from it: readMore
			// may later shift c.buf's backing array to discard consumed
			// bytes (see cursor.readMore), which would otherwise corrupt
			// any raw line still referencing the old offsets.
			line := make([]byte, n)
			copy(line, c.buf[c.pos:c.pos+n])
			rawHeaderLines = append(rawHeaderLines, line)
		}
		c.pos += n
		if done {
			break
		}
	}

	if err := h.writeHeadAndHeaders(dst, rawHeaderLines); err != nil {
		return err
	}

	return streamBody(dst, headers, c)
}

// streamBody forwards body bytes from c to dst, decoding just enough to
// know when the body ends. Content-Length bodies are forwarded
// byte-for-byte; chunk-encoded bodies are forwarded frame-for-frame
// (chunk-size line + data + CRLF included) since the upstream/client on
// the other side expects the same wire encoding.
func streamBody(dst Writer, headers httpmsg.Headers, c *cursor) error {
	if cl, ok := headers.Get("content-length"); ok {
		length, err := httpmsg.ParseContentLength(cl)
		if err != nil {
			return err
		}
		remaining := length
		for remaining > 0 {
			if len(c.remaining()) == 0 {
				if err := c.readMore(); err != nil {
					return err
				}
			}
			available := c.remaining()
			take := int64(len(available))
			if take > remaining {
				take = remaining
			}
			if take > 0 {
				if _, err := dst.Write(available[:take]); err != nil {
					return err
				}
				c.pos += int(take)
				remaining -= take
			}
		}
		return nil
	}

	if !isChunked(headers) {
		// no body declared at all.
		return nil
	}

	return streamChunkedBody(dst, c)
}

// streamChunkedBody forwards a chunked body frame-by-frame, driving
// httpmsg.ChunkedBodyParser exactly the way internal/httpmsg's
// RequestParser/ResponseParser do, rather than pattern-matching on raw
// read boundaries: an earlier revision looked for a literal "0\r\n\r\n"
// suffix in each newly-read span, which hangs forever if the terminator
// is split across two reads and can truncate the body early if chunk
// *data* happens to contain that byte sequence. Driving the real
// chunk-framing state machine and forwarding exactly the bytes it
// consumes avoids both failure modes and satisfies the
// chunking-invariance guarantee (spec.md §8 #1) the same way the
// non-proxy parser does.
func streamChunkedBody(dst Writer, c *cursor) error {
	chunker := httpmsg.NewChunkedBodyParser()
	for !chunker.Done() {
		n, _, done, err := chunker.Step(c.remaining())
		if err == httpmsg.ErrNeedMoreData {
			if err := c.readMore(); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if n > 0 {
			start := c.pos
			c.pos += n
			if _, werr := dst.Write(c.buf[start:c.pos]); werr != nil {
				return werr
			}
		}
		if done {
			break
		}
	}

	// Trailer part (zero or more header lines) followed by the final
	// CRLF — forwarded verbatim, byte-for-byte, like every other header
	// in this pipeline (spec.md §4.10).
	trailers := make(httpmsg.Headers, 2)
	for {
		n, done, err := httpmsg.ParseHeaderLine(c.remaining(), trailers)
		if err == httpmsg.ErrNeedMoreData {
			if err := c.readMore(); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if n > 0 {
			start := c.pos
			c.pos += n
			if _, werr := dst.Write(c.buf[start:c.pos]); werr != nil {
				return werr
			}
		}
		if done {
			return nil
		}
	}
}

func isChunked(headers httpmsg.Headers) bool {
	v, ok := headers.Get("transfer-encoding")
	return ok && strings.EqualFold(strings.TrimSpace(v), "chunked")
}
