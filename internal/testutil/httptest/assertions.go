//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"kilo-share/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccessResponse checks the status and, for 2xx with a non-nil out,
// decodes the body into out.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, out any) {
	t.Helper()

	if !assert.Equalf(t, expectedStatus, w.Code, "body: %s", w.Body.String()) {
		return
	}
	if out == nil || w.Code < 200 || w.Code >= 300 {
		return
	}
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), out), "decode %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the error envelope's message
// contains want. An empty want only checks the envelope decodes.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, want string) httperr.Response {
	t.Helper()

	assert.Equalf(t, expectedStatus, w.Code, "body: %s", w.Body.String())

	var resp httperr.Response
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &resp), "decode error body %q", w.Body.String())
	if want != "" {
		assert.Contains(t, resp.Error.Message, want)
	}
	return resp
}
