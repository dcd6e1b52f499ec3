package extract

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/relay/internal/httpmsg"
)

type widget struct {
	Name string `json:"name"`
}

func TestH1_QueryExtractorSuccess(t *testing.T) {
	h := H1(QueryParam("id"), func(id string) Data[widget] {
		return OK(widget{Name: "widget-" + id})
	})

	req := &Request{Msg: &httpmsg.Request{Query: "id=42"}}
	resp := h(req)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, widget{Name: "widget-42"}, resp.Value)
}

func TestH1_QueryExtractorShortCircuits(t *testing.T) {
	h := H1(QueryParam("id"), func(id string) Data[widget] {
		t.Fatal("handler body must not run when extraction fails")
		return OK(widget{})
	})

	req := &Request{Msg: &httpmsg.Request{Query: ""}}
	resp := h(req)
	assert.Equal(t, 400, resp.Status)
	require.Error(t, resp.Err)
}

func TestH2_PathAndJsonComposition(t *testing.T) {
	h := H2(PathParam("id"), Json[widget], func(id string, body widget) Data[widget] {
		return Created(widget{Name: id + ":" + body.Name})
	})

	req := &Request{
		Msg: &httpmsg.Request{
			Headers: httpmsg.Headers{"content-type": "application/json"},
			Body:    []byte(`{"name":"gadget"}`),
		},
		Params: map[string]string{"id": "7"},
	}
	resp := h(req)
	assert.Equal(t, 201, resp.Status)
	assert.Equal(t, widget{Name: "7:gadget"}, resp.Value)
}

func TestWriteResponse_Success(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResponse(&buf, Response{Value: widget{Name: "x"}, Status: 200})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 200 OK")
	assert.Contains(t, out, `{"name":"x"}`)
}

func TestWriteResponse_Error(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResponse(&buf, Response{Err: ErrMissingQueryParam{Name: "id"}, Status: 400})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 400 Bad Request")
	assert.Contains(t, out, "missing query parameter id")
}
