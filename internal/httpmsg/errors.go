package httpmsg

import "errors"

// ErrNeedMoreData signals that the buffer handed to a parse function does
// not yet contain a complete token (line, header, chunk size, ...). It is
// not a failure: callers read more bytes and call the same parse function
// again with the same state. This is the "NotEnoughBytes" condition from
// spec.md §7 and the REDESIGN FLAG #2 fix — a short buffer never panics,
// it always surfaces as this sentinel.
var ErrNeedMoreData = errors.New("httpmsg: need more data")

// ErrConnectionClosedBeforeData signals that a read returned zero bytes
// before any data for this message had been seen at all — a "false alarm"
// close rather than a message truncated mid-parse. RequestParser.Feed and
// ResponseParser.Feed return it when called with no bytes before any data
// has arrived; internal/proxy's read loop returns it when its stream ends
// before the first byte. ErrUnexpectedEOF is never produced by Feed, which
// only reports ErrNeedMoreData on a short buffer: a caller that hits end
// of stream mid-message tells that case apart itself, so a truncated
// connection isn't logged as a malformed message.
var ErrConnectionClosedBeforeData = errors.New("httpmsg: connection closed before any data arrived")

// ErrUnexpectedEOF is for callers' own read loops to return when the
// connection closes after some bytes of the message were seen but before
// the message is complete. See ErrConnectionClosedBeforeData.
var ErrUnexpectedEOF = errors.New("httpmsg: connection closed mid-message")

// First-line errors.
var (
	ErrMalformedFirstLine  = errors.New("httpmsg: malformed first line")
	ErrInvalidHTTPMethod   = errors.New("httpmsg: invalid HTTP method")
	ErrMissingHTTPVersion  = errors.New("httpmsg: missing or malformed HTTP version")
	ErrRequestTargetEmpty  = errors.New("httpmsg: empty request target")
	ErrMalformedStatusLine = errors.New("httpmsg: malformed status line")
)

// Header errors.
var (
	ErrMalformedHeaderLine         = errors.New("httpmsg: malformed header line")
	ErrHeaderLineTooLong           = errors.New("httpmsg: header line exceeds maximum length")
	ErrTooManyHeaders              = errors.New("httpmsg: too many header fields")
	ErrContentLengthAndChunked     = errors.New("httpmsg: message carries both Content-Length and Transfer-Encoding")
	ErrDuplicateContentLength      = errors.New("httpmsg: duplicate Content-Length headers with differing values")
	ErrInvalidContentLength        = errors.New("httpmsg: Content-Length is not a valid non-negative integer")
	ErrWhitespaceBeforeHeaderColon = errors.New("httpmsg: whitespace before header colon")
)

// Body errors.
var (
	ErrChunkSizeMalformed = errors.New("httpmsg: malformed chunk size line")
	ErrChunkTooLarge      = errors.New("httpmsg: chunk size exceeds maximum")
	ErrChunkMissingCRLF   = errors.New("httpmsg: chunk data not terminated by CRLF")
)

// Size limits, grounded on shockwave/http11/constants.go.
const (
	MaxRequestLineSize = 8192
	MaxHeaderLineSize  = 8192
	MaxHeaders         = 100
	MaxChunkSize       = 16 << 20 // 16 MiB, generous teaching-kernel ceiling
)
