package httpmsg

// ParserState enumerates the stages of MessageParser's state machine,
// mirroring original_source/src/http_message_parser.rs's ParsingState
// minus its front-separator stage: parsing starts directly at the first
// line and proceeds line by line, without first scanning for the end of
// the header block.
type ParserState int

const (
	StateFirstLine ParserState = iota
	StateHeaders
	StateBodyByLength
	StateBodyChunked
	StateTrailerHeaders
	StateDone
)

// RequestParser incrementally parses a single HTTP request from a stream
// of byte slices that may arrive in any chunking. Feed is idempotent with
// respect to chunk boundaries: calling it once with N bytes produces the
// same Request as calling it N times with one byte each (spec.md §8
// invariant 1).
type RequestParser struct {
	state  ParserState
	buf    []byte
	pos    int
	req    Request
	chunk  *ChunkedBodyParser
	length *ContentLengthBody
}

func NewRequestParser() *RequestParser {
	return &RequestParser{
		state: StateFirstLine,
		req:   Request{Headers: newHeaders(), Trailers: newHeaders()},
	}
}

// Feed appends data to the parser's internal buffer and advances the
// state machine as far as it can. It returns ErrNeedMoreData (not a real
// failure) when the buffer is exhausted mid-token; the caller should read
// more bytes from the connection and call Feed again. Any other returned
// error is unrecoverable for this message.
func (p *RequestParser) Feed(data []byte) error {
	if p.state == StateDone {
		return nil
	}
	if len(p.buf) == 0 && p.pos == 0 && len(data) == 0 {
		return ErrConnectionClosedBeforeData
	}
	p.buf = append(p.buf, data...)

	for {
		switch p.state {
		case StateFirstLine:
			n, err := ParseRequestLine(p.buf[p.pos:], &p.req)
			if err != nil {
				return err
			}
			p.pos += n
			p.state = StateHeaders

		case StateHeaders:
			n, done, err := ParseHeaderLine(p.buf[p.pos:], p.req.Headers)
			if err != nil {
				return err
			}
			p.pos += n
			if !done {
				continue
			}
			if err := p.enterBodyState(); err != nil {
				return err
			}

		case StateBodyByLength:
			n, chunk, done := p.length.Step(p.buf[p.pos:])
			p.pos += n
			p.req.Body = append(p.req.Body, chunk...)
			if !done {
				if n == 0 {
					return ErrNeedMoreData
				}
				continue
			}
			p.state = StateDone
			return nil

		case StateBodyChunked:
			n, chunk, done, err := p.chunk.Step(p.buf[p.pos:])
			if err != nil {
				return err
			}
			p.pos += n
			p.req.Body = append(p.req.Body, chunk...)
			if !done {
				continue
			}
			if _, ok := p.req.Headers.Get("trailer"); ok {
				p.state = StateTrailerHeaders
				continue
			}
			p.state = StateDone
			return nil

		case StateTrailerHeaders:
			n, done, err := ParseHeaderLine(p.buf[p.pos:], p.req.Trailers)
			if err != nil {
				return err
			}
			p.pos += n
			if done {
				p.state = StateDone
				return nil
			}

		case StateDone:
			return nil
		}
	}
}

func (p *RequestParser) enterBodyState() error {
	if cl, ok := p.req.Headers.Get("content-length"); ok {
		n, err := ParseContentLength(cl)
		if err != nil {
			return err
		}
		if n == 0 {
			p.state = StateDone
			return nil
		}
		p.length = NewContentLengthBody(n)
		p.state = StateBodyByLength
		return nil
	}
	if isChunkedEncoding(p.req.Headers) {
		p.chunk = NewChunkedBodyParser()
		p.state = StateBodyChunked
		return nil
	}
	p.state = StateDone
	return nil
}

// Done reports whether a complete request has been parsed.
func (p *RequestParser) Done() bool { return p.state == StateDone }

// Request returns the parsed request. Valid only once Done reports true.
func (p *RequestParser) Request() *Request { return &p.req }

// ResponseParser is RequestParser's mirror image, parsing a status line
// instead of a request line. internal/proxy does not use it: the proxy
// drives ParseStatusLine and ParseHeaderLine through its own read loop.
type ResponseParser struct {
	state  ParserState
	buf    []byte
	pos    int
	resp   Response
	chunk  *ChunkedBodyParser
	length *ContentLengthBody
}

func NewResponseParser() *ResponseParser {
	return &ResponseParser{
		state: StateFirstLine,
		resp:  Response{Headers: newHeaders(), Trailers: newHeaders()},
	}
}

func (p *ResponseParser) Feed(data []byte) error {
	if p.state == StateDone {
		return nil
	}
	if len(p.buf) == 0 && p.pos == 0 && len(data) == 0 {
		return ErrConnectionClosedBeforeData
	}
	p.buf = append(p.buf, data...)

	for {
		switch p.state {
		case StateFirstLine:
			n, err := ParseStatusLine(p.buf[p.pos:], &p.resp)
			if err != nil {
				return err
			}
			p.pos += n
			p.state = StateHeaders

		case StateHeaders:
			n, done, err := ParseHeaderLine(p.buf[p.pos:], p.resp.Headers)
			if err != nil {
				return err
			}
			p.pos += n
			if !done {
				continue
			}
			if err := p.enterBodyState(); err != nil {
				return err
			}

		case StateBodyByLength:
			n, chunk, done := p.length.Step(p.buf[p.pos:])
			p.pos += n
			p.resp.Body = append(p.resp.Body, chunk...)
			if !done {
				if n == 0 {
					return ErrNeedMoreData
				}
				continue
			}
			p.state = StateDone
			return nil

		case StateBodyChunked:
			n, chunk, done, err := p.chunk.Step(p.buf[p.pos:])
			if err != nil {
				return err
			}
			p.pos += n
			p.resp.Body = append(p.resp.Body, chunk...)
			if !done {
				continue
			}
			if _, ok := p.resp.Headers.Get("trailer"); ok {
				p.state = StateTrailerHeaders
				continue
			}
			p.state = StateDone
			return nil

		case StateTrailerHeaders:
			n, done, err := ParseHeaderLine(p.buf[p.pos:], p.resp.Trailers)
			if err != nil {
				return err
			}
			p.pos += n
			if done {
				p.state = StateDone
				return nil
			}

		case StateDone:
			return nil
		}
	}
}

func (p *ResponseParser) enterBodyState() error {
	if cl, ok := p.resp.Headers.Get("content-length"); ok {
		n, err := ParseContentLength(cl)
		if err != nil {
			return err
		}
		if n == 0 {
			p.state = StateDone
			return nil
		}
		p.length = NewContentLengthBody(n)
		p.state = StateBodyByLength
		return nil
	}
	if isChunkedEncoding(p.resp.Headers) {
		p.chunk = NewChunkedBodyParser()
		p.state = StateBodyChunked
		return nil
	}
	p.state = StateDone
	return nil
}

func (p *ResponseParser) Done() bool        { return p.state == StateDone }
func (p *ResponseParser) Response() *Response { return &p.resp }
