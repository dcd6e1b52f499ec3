package extract

// Path extracts the full captured-parameter set for the matched route.
func Path(req *Request) (map[string]string, error) {
	return req.Params, nil
}

// PathParam builds an Extractor for a single named, required path
// parameter, failing if the route didn't capture it (a routing
// misconfiguration rather than a client error, but surfaced the same way
// per spec.md's uniform extractor-failure contract).
func PathParam(name string) Extractor[string] {
	return func(req *Request) (string, error) {
		v, ok := req.Params[name]
		if !ok {
			return "", ErrMissingPathParam{Name: name}
		}
		return v, nil
	}
}

// ErrMissingPathParam reports a path parameter the route pattern didn't
// capture.
type ErrMissingPathParam struct{ Name string }

func (e ErrMissingPathParam) Error() string {
	return "extract: missing path parameter " + e.Name
}
