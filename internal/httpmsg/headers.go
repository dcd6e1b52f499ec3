package httpmsg

import "strings"

// isTokenChar reports whether c is a valid RFC 7230 "tchar" for header
// field names, mirroring Reinis-FTM-go-http-server/internal/headers's
// isTokenTable.
func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// ParseHeaderLine consumes one header field line, or the blank line that
// ends a header block, from buf[0:]. It returns the number of bytes
// consumed and whether the header block is done (the blank-line case). On
// a partial line it returns (0, false, ErrNeedMoreData). dest receives the
// parsed field via dest.Add, unless the line is the terminating blank
// line.
func ParseHeaderLine(buf []byte, dest Headers) (consumed int, done bool, err error) {
	end := indexCRLF(buf, 0)
	if end < 0 {
		if len(buf) > MaxHeaderLineSize {
			return 0, false, ErrHeaderLineTooLong
		}
		return 0, false, ErrNeedMoreData
	}
	if end == 0 {
		// blank line: end of header block.
		return len(crlf), true, nil
	}

	line := buf[:end]
	colon := indexByte(line, 0, ':')
	if colon <= 0 {
		return 0, false, ErrMalformedHeaderLine
	}
	if line[colon-1] == ' ' || line[colon-1] == '\t' {
		return 0, false, ErrWhitespaceBeforeHeaderColon
	}
	name := string(line[:colon])
	for i := 0; i < len(name); i++ {
		if !isTokenChar(name[i]) {
			return 0, false, ErrMalformedHeaderLine
		}
	}
	value := trimOWS(string(line[colon+1:]))

	if err := checkSmuggling(dest, name, value); err != nil {
		return 0, false, err
	}
	dest.Add(name, value)
	return end + len(crlf), false, nil
}

// checkSmuggling enforces the CL/TE request-smuggling protections
// grounded on shockwave/http11/parser.go's processSpecialHeader: a
// message may not declare both Content-Length and Transfer-Encoding, and
// repeated Content-Length headers must agree.
func checkSmuggling(dest Headers, name, value string) error {
	switch lower(name) {
	case "content-length":
		if existing, ok := dest.Get("content-length"); ok && existing != value {
			return ErrDuplicateContentLength
		}
		if _, ok := dest.Get("transfer-encoding"); ok {
			return ErrContentLengthAndChunked
		}
	case "transfer-encoding":
		if _, ok := dest.Get("content-length"); ok {
			return ErrContentLengthAndChunked
		}
	}
	return nil
}

func isChunkedEncoding(headers Headers) bool {
	v, ok := headers.Get("transfer-encoding")
	if !ok {
		return false
	}
	return strings.EqualFold(trimOWS(v), "chunked")
}
