// Package extract implements the FromRequest / FromRequestBody /
// IntoResponse extractor composition described in spec.md §4.7: handlers
// are plain functions of up to four typed arguments, each produced by an
// Extractor run against the incoming request, short-circuiting to an
// error response on the first extractor failure. Grounded on
// _examples/MiraiMindz-watt/bolt/core/generics.go's Data[T]/constructors
// and bolt/core/context.go's Query/Param/BindJSON extraction methods,
// simplified from Context-method style into free functions since this
// package has no long-lived per-request Context object.
package extract

import (
	"github.com/yourusername/relay/internal/httpmsg"
)

// Data is a generic response envelope: a handler returns one of these and
// the dispatcher serializes Value as JSON (or writes Error's message)
// with Status and Headers applied. Grounded on bolt/core/generics.go's
// Data[T].
type Data[T any] struct {
	Value   T
	Err     error
	Status  int
	Headers map[string]string
}

// WithHeader returns a copy of d with name: value added. d.Headers is
// always copied rather than mutated in place, so two Data[T] values
// derived from the same base (e.g. OK(v).WithHeader(...) called twice)
// never share a map.
func (d Data[T]) WithHeader(name, value string) Data[T] {
	headers := make(map[string]string, len(d.Headers)+1)
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers[name] = value
	d.Headers = headers
	return d
}

func (d Data[T]) WithStatus(code int) Data[T] {
	d.Status = code
	return d
}

// OK wraps value with HTTP 200.
func OK[T any](value T) Data[T] { return Data[T]{Value: value, Status: 200} }

// Created wraps value with HTTP 201.
func Created[T any](value T) Data[T] { return Data[T]{Value: value, Status: 201} }

// NoContent returns an empty 204 response.
func NoContent() Data[struct{}] { return Data[struct{}]{Status: 204} }

// BadRequest wraps err with HTTP 400.
func BadRequest[T any](err error) Data[T] { return Data[T]{Err: err, Status: 400} }

// NotFound wraps err with HTTP 404.
func NotFound[T any](err error) Data[T] { return Data[T]{Err: err, Status: 404} }

// InternalError wraps err with HTTP 500.
func InternalError[T any](err error) Data[T] { return Data[T]{Err: err, Status: 500} }

// Response is the type-erased form of Data[T] the dispatcher operates on,
// since a Go function can't return "Data[T] for some T" across handler
// arities without a common interface.
type Response struct {
	Value   any
	Err     error
	Status  int
	Headers map[string]string
}

func (d Data[T]) erase() Response {
	return Response{Value: d.Value, Err: d.Err, Status: d.Status, Headers: d.Headers}
}

// Request bundles the parsed request and its captured path parameters —
// everything an Extractor needs.
type Request struct {
	Msg    *httpmsg.Request
	Params map[string]string
}
