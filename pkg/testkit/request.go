package testkit

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// Result is one executed request: the status code and the decoded envelope.
type Result struct {
	Code     int
	Envelope response.Envelope
	raw      []byte
}

// Do performs a JSON request against the app. A non-empty token is sent as
// a bearer Authorization header. body may be nil, a raw string, or any
// value to marshal.
func (a *App) Do(t *testing.T, method, path string, body interface{}, token string) *Result {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)

	res := &Result{Code: rec.Code, raw: rec.Body.Bytes()}
	if len(res.raw) > 0 {
		require.NoError(t, json.Unmarshal(res.raw, &res.Envelope),
			"response is not the JSON envelope: %s", res.raw)
	}
	return res
}

// Bind re-decodes the envelope's data field into dest.
func (r *Result) Bind(t *testing.T, dest interface{}) {
	t.Helper()
	raw, err := json.Marshal(r.Envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Errors returns the validation error map, if the response carried one.
func (r *Result) Errors(t *testing.T) map[string]string {
	t.Helper()
	if r.Envelope.Errors == nil {
		return nil
	}
	raw, err := json.Marshal(r.Envelope.Errors)
	require.NoError(t, err)
	out := map[string]string{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
