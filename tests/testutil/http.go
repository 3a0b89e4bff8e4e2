package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the {success, data, error} body of every API response
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorBody      `json:"error"`
}

// ErrorBody is the error member of Envelope
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field"`
	RequestID string `json:"request_id"`
}

// Request describes one call against an http.Handler
type Request struct {
	Method string
	Path   string
	Token  string
	// Body is sent verbatim when it is a string, otherwise as JSON
	Body any
}

// Perform runs req against h and returns the recorded response
func Perform(t *testing.T, h http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := req.Body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		reader = ToJSONReader(t, b)
	}

	r := httptest.NewRequest(req.Method, req.Path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// DecodeEnvelope parses the response body as an API envelope
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// DecodeData asserts a successful envelope and decodes its data member
func DecodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	env := DecodeEnvelope(t, w)
	require.True(t, env.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

// DecodeJSON parses a body that is not wrapped in an envelope, such as the
// health check
func DecodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// AssertError checks the status and error code of a failed response and
// returns the error body for further checks
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorBody {
	t.Helper()

	require.Equal(t, status, w.Code, w.Body.String())
	env := DecodeEnvelope(t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error, "expected an error member")
	assert.Equal(t, code, env.Error.Code)
	return *env.Error
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
