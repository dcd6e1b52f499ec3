package extract

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/yourusername/relay/internal/respwriter"
)

// errorBody is the JSON shape written for a failed Data[T], mirroring
// bolt/core/generics.go's sendErrorData envelope.
type errorBody struct {
	Error string `json:"error"`
}

// WriteResponse is IntoResponse: it serializes a dispatcher Response as
// JSON through a respwriter step sequence. A zero Status defaults to 200
// on success or 500 on error, matching bolt's generics.go defaults.
func WriteResponse(w io.Writer, resp Response) error {
	status := resp.Status
	if status == 0 {
		if resp.Err != nil {
			status = 500
		} else {
			status = 200
		}
	}

	hs, err := respwriter.New(w).WriteStatusLine(status)
	if err != nil {
		return err
	}
	for name, value := range resp.Headers {
		hs.WriteHeader(name, value)
	}

	// 204 never carries a body, even when Value holds a boxed zero value
	// (e.g. NoContent's Data[struct{}]{}) that isn't a nil interface.
	if status == 204 {
		_, err = hs.WriteBody("", nil)
		return err
	}

	var body []byte
	if resp.Err != nil {
		body, err = json.Marshal(errorBody{Error: resp.Err.Error()})
	} else if resp.Value != nil {
		body, err = json.Marshal(resp.Value)
	}
	if err != nil {
		return err
	}
	_, err = hs.WriteBody("application/json", body)
	return err
}
