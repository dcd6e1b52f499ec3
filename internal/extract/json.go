package extract

import (
	"errors"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrUnsupportedMediaType is returned by Json when the request's
// Content-Type is not application/json.
var ErrUnsupportedMediaType = errors.New("extract: unsupported media type, expected application/json")

// Json decodes the request body into T, validating the Content-Type
// header first. Uses github.com/goccy/go-json rather than encoding/json,
// matching _examples/MiraiMindz-watt/bolt/core/context.go's BindJSON,
// which reaches for goccy for its faster Marshal/Unmarshal.
func Json[T any](req *Request) (T, error) {
	var zero T
	ct, _ := req.Msg.Headers.Get("content-type")
	if !strings.HasPrefix(ct, "application/json") {
		return zero, ErrUnsupportedMediaType
	}
	var out T
	if err := json.Unmarshal(req.Msg.Body, &out); err != nil {
		return zero, err
	}
	return out, nil
}
