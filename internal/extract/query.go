package extract

import "net/url"

// Query extracts and parses the request's query string into a
// url.Values, the idiomatic stdlib representation — no pack library
// offers a query-string parser beyond net/url's, which every pack repo
// that touches URLs (bolt, shockwave, Reinis-FTM) also relies on.
func Query(req *Request) (url.Values, error) {
	return url.ParseQuery(req.Msg.Query)
}

// QueryParam builds an Extractor for a single named, required query
// parameter.
func QueryParam(name string) Extractor[string] {
	return func(req *Request) (string, error) {
		values, err := url.ParseQuery(req.Msg.Query)
		if err != nil {
			return "", err
		}
		v := values.Get(name)
		if v == "" {
			return "", ErrMissingQueryParam{Name: name}
		}
		return v, nil
	}
}

// ErrMissingQueryParam reports a required query parameter that was not
// present.
type ErrMissingQueryParam struct{ Name string }

func (e ErrMissingQueryParam) Error() string {
	return "extract: missing query parameter " + e.Name
}
