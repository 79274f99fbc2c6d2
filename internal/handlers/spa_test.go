package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPA(t *testing.T) {
	distFS := fstest.MapFS{
		"index.html":    {Data: []byte("<html>index</html>")},
		"assets/app.js": {Data: []byte("console.log(1)")},
	}
	h, err := SPA(distFS)
	require.NoError(t, err)

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, "<html>index</html>"},
		{"/favorites", http.StatusOK, "<html>index</html>"},
		{"/assets/app.js", http.StatusOK, "console.log(1)"},
		{"/assets/missing.js", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, rec.Code, tc.path)
		if tc.body != "" {
			assert.Equal(t, tc.body, rec.Body.String(), tc.path)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSPARequiresIndex(t *testing.T) {
	_, err := SPA(fstest.MapFS{})
	require.Error(t, err)
}
