package httpmsg

import (
	"strconv"
	"strings"
)

// validMethods mirrors shockwave/http11/method.go's accepted method set,
// minus CONNECT and TRACE which spec.md's proxy never issues.
var validMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true,
	"DELETE": true, "OPTIONS": true, "PATCH": true,
}

// ParseRequestLine scans buf[0:] for a complete "METHOD target HTTP/x.y\r\n"
// line. On success it returns the number of bytes consumed (including the
// trailing CRLF) and populates method/target/path/query/version on req.
// On a partial line it returns (0, ErrNeedMoreData); the caller must
// accumulate more bytes and retry from the same offset.
func ParseRequestLine(buf []byte, req *Request) (int, error) {
	end := indexCRLF(buf, 0)
	if end < 0 {
		if len(buf) > MaxRequestLineSize {
			return 0, ErrMalformedFirstLine
		}
		return 0, ErrNeedMoreData
	}
	line := string(buf[:end])
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return 0, ErrMalformedFirstLine
	}
	method, target, version := parts[0], parts[1], parts[2]

	if !validMethods[method] {
		return 0, ErrInvalidHTTPMethod
	}
	if target == "" {
		return 0, ErrRequestTargetEmpty
	}
	if !strings.HasPrefix(version, "HTTP/") || len(version) != len("HTTP/1.1") {
		return 0, ErrMissingHTTPVersion
	}

	path, query := target, ""
	if i := strings.IndexByte(target, '?'); i >= 0 {
		path, query = target[:i], target[i+1:]
	}

	req.Method = method
	req.Target = target
	req.Path = path
	req.Query = query
	req.Version = version
	return end + len(crlf), nil
}

// ParseStatusLine scans buf[0:] for a complete "HTTP/x.y CODE reason\r\n"
// line, with the same partial-line contract as ParseRequestLine.
func ParseStatusLine(buf []byte, resp *Response) (int, error) {
	end := indexCRLF(buf, 0)
	if end < 0 {
		if len(buf) > MaxRequestLineSize {
			return 0, ErrMalformedStatusLine
		}
		return 0, ErrNeedMoreData
	}
	line := string(buf[:end])
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return 0, ErrMalformedStatusLine
	}
	version := parts[0]
	if !strings.HasPrefix(version, "HTTP/") {
		return 0, ErrMissingHTTPVersion
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil || code < 100 || code > 599 {
		return 0, ErrMalformedStatusLine
	}
	reason := ""
	if len(parts) == 3 {
		reason = parts[2]
	}

	resp.Version = version
	resp.StatusCode = code
	resp.ReasonPhrase = reason
	return end + len(crlf), nil
}
