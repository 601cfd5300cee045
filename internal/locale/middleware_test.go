package locale

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abgdnv/storefront/internal/platform/contextkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler remembers whether it ran and the locale it saw.
type recordingHandler struct {
	called    bool
	locale    string
	hasLocale bool
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.locale, h.hasLocale = contextkeys.GetLocale(r.Context())
	w.WriteHeader(http.StatusOK)
}

func newTestMiddleware(t *testing.T, next http.Handler) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Middleware(newTestResolver(t), Options{Paths: []string{"/about"}}, logger)(next)
}

func TestMiddleware_Redirect(t *testing.T) {
	testCases := []struct {
		name           string
		path           string
		cookie         string
		acceptLanguage string
		wantLocation   string
	}{
		{name: "no cookie or header uses fallback", path: "/about", wantLocation: "/en/about"},
		{name: "trailing slash", path: "/about/", wantLocation: "/en/about"},
		{name: "header", path: "/about", acceptLanguage: "zh-CN,zh;q=0.9,en;q=0.8", wantLocation: "/zh/about"},
		{name: "cookie beats header", path: "/about", cookie: "zh", acceptLanguage: "en", wantLocation: "/zh/about"},
		{name: "unsupported header", path: "/about", acceptLanguage: "fr;q=0.9", wantLocation: "/en/about"},
		{name: "query string is dropped", path: "/about?x=1", cookie: "zh", wantLocation: "/zh/about"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			next := &recordingHandler{}
			h := newTestMiddleware(t, next)
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: tc.cookie})
			}
			if tc.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tc.acceptLanguage)
			}
			rr := httptest.NewRecorder()

			// when
			before := time.Now()
			h.ServeHTTP(rr, req)

			// then
			assert.False(t, next.called, "redirected requests must not reach the next handler")
			assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
			assert.Equal(t, tc.wantLocation, rr.Header().Get("Location"))
			assert.Equal(t, "Accept-Language, Cookie", rr.Header().Get("Vary"))

			cookies := rr.Result().Cookies()
			require.Len(t, cookies, 1)
			c := cookies[0]
			assert.Equal(t, DefaultCookieName, c.Name)
			assert.Equal(t, tc.wantLocation[1:3], c.Value)
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, 2592000, c.MaxAge)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
			assert.WithinDuration(t, before.Add(DefaultCookieMaxAge), c.Expires, 5*time.Second)
		})
	}
}

func TestMiddleware_PassThrough(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		cookie     string
		wantLocale string
		hasLocale  bool
	}{
		{name: "localized english about", path: "/en/about", hasLocale: false},
		{name: "localized chinese about", path: "/zh/about", cookie: "en", hasLocale: false},
		{name: "bare locale", path: "/zh", hasLocale: false},
		{name: "other path gets resolved locale", path: "/products", cookie: "zh", wantLocale: "zh", hasLocale: true},
		{name: "nested about is not designated", path: "/about/team", wantLocale: "en", hasLocale: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			next := &recordingHandler{}
			h := newTestMiddleware(t, next)
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: tc.cookie})
			}
			rr := httptest.NewRecorder()

			// when
			h.ServeHTTP(rr, req)

			// then
			require.True(t, next.called)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Empty(t, rr.Header().Get("Location"))
			assert.Empty(t, rr.Result().Cookies())
			assert.Equal(t, tc.hasLocale, next.hasLocale)
			assert.Equal(t, tc.wantLocale, next.locale)
		})
	}
}

func TestMiddleware_RedirectTargetIsStable(t *testing.T) {
	// given
	next := &recordingHandler{}
	h := newTestMiddleware(t, next)
	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/about", nil))
	require.Equal(t, http.StatusTemporaryRedirect, first.Code)

	// when
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, first.Header().Get("Location"), nil))

	// then
	assert.True(t, next.called)
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestMiddleware_CustomCookie(t *testing.T) {
	// given
	r, err := NewResolver([]string{"en", "zh"}, "zh", "lang")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Middleware(r, Options{Paths: []string{"/about", "/contact"}, CookieMaxAge: time.Hour}, logger)(&recordingHandler{})
	rr := httptest.NewRecorder()

	// when
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/contact/", nil))

	// then
	assert.Equal(t, "/zh/contact", rr.Header().Get("Location"))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "lang", cookies[0].Name)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}
