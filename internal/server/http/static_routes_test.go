package httpserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticMux(t *testing.T) *http.ServeMux {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>khs</html>"), 0o644))
	mux := http.NewServeMux()
	RegisterStaticRoutes(mux, dir, "")
	return mux
}

func TestRootRedirectsByView(t *testing.T) {
	mux := staticMux(t)

	cases := []struct {
		name   string
		url    string
		ua     string
		cookie string
		want   string
	}{
		{"desktop", "/", "Mozilla/5.0 (X11; Linux x86_64)", "", "/web/"},
		{"phone", "/", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)", "", "/web_mobile/"},
		{"query wins", "/?view=pc", "Mozilla/5.0 (Linux; Android 14)", "", "/web/"},
		{"cookie", "/", "Mozilla/5.0 (X11; Linux x86_64)", "mobile", "/web_mobile/"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, c.url, nil)
			req.Header.Set("User-Agent", c.ua)
			if c.cookie != "" {
				req.AddCookie(&http.Cookie{Name: viewCookieName, Value: c.cookie})
			}
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, c.want, w.Header().Get("Location"))
		})
	}
}

func TestViewQuerySetsCookie(t *testing.T) {
	mux := staticMux(t)
	req := httptest.NewRequest(http.MethodGet, "/?view=m", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, viewCookieName, cookies[0].Name)
	assert.Equal(t, viewMobile, cookies[0].Value)
}

func TestStaticFilesServed(t *testing.T) {
	mux := staticMux(t)
	for _, path := range []string{"/web/", "/web_mobile/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "khs", path)
	}

	req := httptest.NewRequest(http.MethodGet, "/elsewhere", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
