package httpmsg

import "strconv"

// chunkPhase is the sub-state of chunked body decoding, mirroring
// original_source/src/http_message_parser.rs's BodyChunkPhase.
type chunkPhase int

const (
	chunkPhaseSize chunkPhase = iota
	chunkPhaseData
	chunkPhaseDataCRLF
	chunkPhaseFinal // last-chunk line consumed, trailing CRLF (or trailers) not yet
)

// ChunkedBodyParser decodes a chunked transfer-coded body incrementally,
// one step at a time, so it can be driven across arbitrary read
// boundaries (spec.md §8 invariant 1) and so a proxy can forward
// newly-decoded bytes to an upstream as soon as they're available instead
// of buffering the whole body. Grounded on shockwave/http11/chunked.go's
// readChunkHeader/Read, reworked from a pull (io.Reader) model into a
// push (Step) model.
type ChunkedBodyParser struct {
	phase          chunkPhase
	chunkRemaining int64
	sawFinalChunk  bool
}

func NewChunkedBodyParser() *ChunkedBodyParser {
	return &ChunkedBodyParser{phase: chunkPhaseSize}
}

// Step consumes as much of buf[0:] as forms one complete unit of chunked
// framing (a chunk-size line, a span of chunk data, or a chunk's trailing
// CRLF) and returns the number of bytes consumed and any newly-decoded
// body bytes (a subslice of buf, valid only until the next call). done is
// true once the zero-length final chunk's size line has been consumed;
// the caller is then responsible for parsing trailer headers (if any)
// followed by the final CRLF — BodyParser's job ends at chunk framing.
func (p *ChunkedBodyParser) Step(buf []byte) (consumed int, data []byte, done bool, err error) {
	switch p.phase {
	case chunkPhaseSize:
		end := indexCRLF(buf, 0)
		if end < 0 {
			if len(buf) > MaxHeaderLineSize {
				return 0, nil, false, ErrChunkSizeMalformed
			}
			return 0, nil, false, ErrNeedMoreData
		}
		line := buf[:end]
		if i := indexByte(line, 0, ';'); i >= 0 {
			// chunk-extensions are accepted and ignored, per spec.md §9.
			line = line[:i]
		}
		size, parseErr := strconv.ParseInt(string(trimOWS(string(line))), 16, 64)
		if parseErr != nil || size < 0 {
			return 0, nil, false, ErrChunkSizeMalformed
		}
		if size > MaxChunkSize {
			return 0, nil, false, ErrChunkTooLarge
		}
		consumed = end + len(crlf)
		if size == 0 {
			p.sawFinalChunk = true
			p.phase = chunkPhaseFinal
			return consumed, nil, true, nil
		}
		p.chunkRemaining = size
		p.phase = chunkPhaseData
		return consumed, nil, false, nil

	case chunkPhaseData:
		if len(buf) == 0 {
			return 0, nil, false, ErrNeedMoreData
		}
		take := int64(len(buf))
		if take > p.chunkRemaining {
			take = p.chunkRemaining
		}
		p.chunkRemaining -= take
		if p.chunkRemaining == 0 {
			p.phase = chunkPhaseDataCRLF
		}
		return int(take), buf[:take], false, nil

	case chunkPhaseDataCRLF:
		if len(buf) < 2 {
			return 0, nil, false, ErrNeedMoreData
		}
		if buf[0] != '\r' || buf[1] != '\n' {
			return 0, nil, false, ErrChunkMissingCRLF
		}
		p.phase = chunkPhaseSize
		return 2, nil, false, nil

	default: // chunkPhaseFinal
		return 0, nil, true, nil
	}
}

// Done reports whether the terminating zero-length chunk has been seen.
func (p *ChunkedBodyParser) Done() bool { return p.sawFinalChunk }

// ContentLengthBody tracks consumption of a fixed-length body declared by
// a Content-Length header. It never over-reads: once remaining reaches
// zero it reports the body complete, unlike the over-read bug spec.md §9
// calls out for removal.
type ContentLengthBody struct {
	remaining int64
}

func NewContentLengthBody(length int64) *ContentLengthBody {
	return &ContentLengthBody{remaining: length}
}

// Step consumes up to len(buf) bytes of body data and returns them along
// with whether the declared length has now been fully consumed.
func (c *ContentLengthBody) Step(buf []byte) (consumed int, data []byte, done bool) {
	if c.remaining == 0 {
		return 0, nil, true
	}
	take := int64(len(buf))
	if take > c.remaining {
		take = c.remaining
	}
	c.remaining -= take
	return int(take), buf[:take], c.remaining == 0
}

// ParseContentLength validates and parses a Content-Length header value.
func ParseContentLength(value string) (int64, error) {
	n, err := strconv.ParseInt(trimOWS(value), 10, 64)
	if err != nil || n < 0 {
		return 0, ErrInvalidContentLength
	}
	return n, nil
}
