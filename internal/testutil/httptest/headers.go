//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertHeaders compares exact values; an empty expected value asserts the
// header is present with any value.
func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for name, want := range expected {
		got := w.Header().Values(name)
		if want == "" {
			assert.NotEmptyf(t, got, "header %s missing", name)
			continue
		}
		assert.Equalf(t, []string{want}, got, "header %s", name)
	}
}
