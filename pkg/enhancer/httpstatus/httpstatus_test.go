package httpstatus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/errenhanced/pkg/core/validation"
	"github.com/msto63/errenhanced/pkg/enhancer"
)

func TestNewDefaults(t *testing.T) {
	h := New()
	assert.Equal(t, -1, h.StatusCode())
	assert.Empty(t, h.URL())
	assert.Empty(t, h.Method())
	assert.Empty(t, h.RequestHeaders())
	assert.Empty(t, h.ResponseHeaders())
	assert.Empty(t, h.QueryParams())
	assert.Nil(t, h.RequestBody())
	assert.Nil(t, h.ResponseBody())
	assert.Empty(t, h.ClientIP())
	assert.Equal(t, -1, h.Latency())
}

func TestSettersRoundTrip(t *testing.T) {
	h := New()
	headers := map[string]string{"Content-Type": "application/json"}
	body := map[string]any{"id": 1}

	steps := []struct {
		name  string
		set   func() (*HTTPStatus, error)
		check func(t *testing.T)
	}{
		{"status", func() (*HTTPStatus, error) { return h.SetStatusCode(404) },
			func(t *testing.T) { assert.Equal(t, 404, h.StatusCode()) }},
		{"url", func() (*HTTPStatus, error) { return h.SetURL("https://api.example.com/users?id=1") },
			func(t *testing.T) { assert.Equal(t, "https://api.example.com/users?id=1", h.URL()) }},
		{"method", func() (*HTTPStatus, error) { return h.SetMethod(MethodPatch) },
			func(t *testing.T) { assert.Equal(t, MethodPatch, h.Method()) }},
		{"request headers", func() (*HTTPStatus, error) { return h.SetRequestHeaders(headers) },
			func(t *testing.T) { assert.Equal(t, headers, h.RequestHeaders()) }},
		{"response headers", func() (*HTTPStatus, error) { return h.SetResponseHeaders(map[string]string{"X-Trace": "abc"}) },
			func(t *testing.T) { assert.Equal(t, "abc", h.ResponseHeaders()["X-Trace"]) }},
		{"query", func() (*HTTPStatus, error) { return h.SetQueryParams(map[string]string{"id": "1"}) },
			func(t *testing.T) { assert.Equal(t, map[string]string{"id": "1"}, h.QueryParams()) }},
		{"request body", func() (*HTTPStatus, error) { return h.SetRequestBody(body) },
			func(t *testing.T) { assert.Equal(t, body, h.RequestBody()) }},
		{"response body", func() (*HTTPStatus, error) { return h.SetResponseBody([]byte("raw")) },
			func(t *testing.T) { assert.Equal(t, []byte("raw"), h.ResponseBody()) }},
		{"client ip", func() (*HTTPStatus, error) { return h.SetClientIP("10.0.0.1") },
			func(t *testing.T) { assert.Equal(t, "10.0.0.1", h.ClientIP()) }},
		{"latency", func() (*HTTPStatus, error) { return h.SetLatency(250) },
			func(t *testing.T) { assert.Equal(t, 250, h.Latency()) }},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			got, err := step.set()
			require.NoError(t, err)
			assert.Same(t, h, got)
			step.check(t)
		})
	}
}

func TestSettersRejectInvalid(t *testing.T) {
	tests := []struct {
		name  string
		call  func(*HTTPStatus) (*HTTPStatus, error)
		field string
	}{
		{"unregistered status", func(h *HTTPStatus) (*HTTPStatus, error) { return h.SetStatusCode(999) }, "httpStatusCode"},
		{"relative url", func(h *HTTPStatus) (*HTTPStatus, error) { return h.SetURL("/users") }, "url"},
		{"lowercase method", func(h *HTTPStatus) (*HTTPStatus, error) { return h.SetMethod("get") }, "httpMethod"},
		{"unsupported method", func(h *HTTPStatus) (*HTTPStatus, error) { return h.SetMethod("OPTIONS") }, "httpMethod"},
		{"nil headers", func(h *HTTPStatus) (*HTTPStatus, error) { return h.SetRequestHeaders(nil) }, "requestHeaders"},
		{"blank header key", func(h *HTTPStatus) (*HTTPStatus, error) {
			return h.SetResponseHeaders(map[string]string{" ": "x"})
		}, "responseHeaders"},
		{"empty query key", func(h *HTTPStatus) (*HTTPStatus, error) {
			return h.SetQueryParams(map[string]string{"": "x"})
		}, "queryParams"},
		{"nil request body", func(h *HTTPStatus) (*HTTPStatus, error) { return h.SetRequestBody(nil) }, "requestBody"},
		{"nil response body", func(h *HTTPStatus) (*HTTPStatus, error) { return h.SetResponseBody(nil) }, "responseBody"},
		{"bad ip", func(h *HTTPStatus) (*HTTPStatus, error) { return h.SetClientIP("999.1.1.1") }, "clientIp"},
		{"zero latency", func(h *HTTPStatus) (*HTTPStatus, error) { return h.SetLatency(0) }, "latency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			before := h.Fields()

			got, err := tt.call(h)
			require.Error(t, err)
			assert.Same(t, h, got)
			assert.Equal(t, before, h.Fields())

			var verr *validation.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestMethodErrorListsValidSet(t *testing.T) {
	_, err := New().SetMethod("TRACE")
	require.Error(t, err)
	for _, m := range Methods() {
		assert.Contains(t, err.Error(), string(m))
	}
}

func TestHeadersAreCopied(t *testing.T) {
	h := New()
	headers := map[string]string{"A": "1"}
	_, err := h.SetRequestHeaders(headers)
	require.NoError(t, err)

	headers["A"] = "2"
	assert.Equal(t, "1", h.RequestHeaders()["A"])

	out := h.RequestHeaders()
	out["B"] = "3"
	assert.NotContains(t, h.RequestHeaders(), "B")
}

func TestClone(t *testing.T) {
	h := New()
	_, _ = h.SetQueryParams(map[string]string{"q": "1"})

	c := h.Clone().(*HTTPStatus)
	_, _ = c.SetStatusCode(500)
	c.queryParams["q"] = "2"

	assert.Equal(t, -1, h.StatusCode())
	assert.Equal(t, "1", h.QueryParams()["q"])
}

func TestFieldsOrder(t *testing.T) {
	assert.Equal(t, []string{
		FieldStatusCode, FieldURL, FieldMethod, FieldRequestHeaders, FieldResponseHeaders,
		FieldQueryParams, FieldRequestBody, FieldResponseBody, FieldClientIP, FieldLatency,
	}, enhancer.Names(New()))
}
