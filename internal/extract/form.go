package extract

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnsupportedFormMediaType is returned by Form when the request's
// Content-Type is not application/x-www-form-urlencoded.
var ErrUnsupportedFormMediaType = errors.New("extract: unsupported media type, expected application/x-www-form-urlencoded")

// Form decodes a urlencoded request body into url.Values, validating
// Content-Type first. Stdlib net/url is used for the same reason Query
// uses it — it's the shape every pack repo that parses forms already
// relies on, and no pack library offers a form codec of its own.
func Form(req *Request) (url.Values, error) {
	ct, _ := req.Msg.Headers.Get("content-type")
	if !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		return nil, ErrUnsupportedFormMediaType
	}
	return url.ParseQuery(string(req.Msg.Body))
}
