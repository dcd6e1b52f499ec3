package extract

// HandlerFunc is the uniform Request -> Response shape every registered
// route ultimately reduces to, regardless of how many typed arguments its
// original handler took.
type HandlerFunc func(*Request) Response

// Extractor produces a T from the request, or fails — used for both
// FromRequest extractors (Query, Path) which only look at the first
// line/headers, and FromRequestBody extractors (Json, Form) which also
// consume the body. Go has no variadic generics, so each arity is a
// separate generic function (H0-H4 below). spec.md §4.7 allows up to 16;
// this package stops at 4 because no handler in this repo, the teacher,
// or the rest of the example pack needs more than 4 extracted arguments —
// H5-H16 would be generated boilerplate with no caller, so they're left
// unwritten rather than padding the package (see DESIGN.md).
type Extractor[T any] func(*Request) (T, error)

// H0 adapts a zero-argument handler.
func H0[R any](fn func() Data[R]) HandlerFunc {
	return func(*Request) Response {
		return fn().erase()
	}
}

// H1 adapts a one-argument handler, running exA first and short-circuiting
// to its error on failure.
func H1[A, R any](exA Extractor[A], fn func(A) Data[R]) HandlerFunc {
	return func(req *Request) Response {
		a, err := exA(req)
		if err != nil {
			return extractionFailure(err)
		}
		return fn(a).erase()
	}
}

func H2[A, B, R any](exA Extractor[A], exB Extractor[B], fn func(A, B) Data[R]) HandlerFunc {
	return func(req *Request) Response {
		a, err := exA(req)
		if err != nil {
			return extractionFailure(err)
		}
		b, err := exB(req)
		if err != nil {
			return extractionFailure(err)
		}
		return fn(a, b).erase()
	}
}

func H3[A, B, C, R any](exA Extractor[A], exB Extractor[B], exC Extractor[C], fn func(A, B, C) Data[R]) HandlerFunc {
	return func(req *Request) Response {
		a, err := exA(req)
		if err != nil {
			return extractionFailure(err)
		}
		b, err := exB(req)
		if err != nil {
			return extractionFailure(err)
		}
		c, err := exC(req)
		if err != nil {
			return extractionFailure(err)
		}
		return fn(a, b, c).erase()
	}
}

func H4[A, B, C, D, R any](exA Extractor[A], exB Extractor[B], exC Extractor[C], exD Extractor[D], fn func(A, B, C, D) Data[R]) HandlerFunc {
	return func(req *Request) Response {
		a, err := exA(req)
		if err != nil {
			return extractionFailure(err)
		}
		b, err := exB(req)
		if err != nil {
			return extractionFailure(err)
		}
		c, err := exC(req)
		if err != nil {
			return extractionFailure(err)
		}
		d, err := exD(req)
		if err != nil {
			return extractionFailure(err)
		}
		return fn(a, b, c, d).erase()
	}
}

func extractionFailure(err error) Response {
	return Response{Err: err, Status: 400}
}
