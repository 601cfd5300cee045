package locale

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/storefront/internal/platform/contextkeys"
)

// DefaultCookieMaxAge is how long the preference cookie lives.
const DefaultCookieMaxAge = 30 * 24 * time.Hour

// Options configures Middleware.
type Options struct {
	// Paths are the unlocalized paths that get redirected, e.g. "/about".
	// A trailing slash variant of each path is redirected as well.
	Paths []string
	// CookieMaxAge defaults to DefaultCookieMaxAge when zero.
	CookieMaxAge time.Duration
}

// Middleware stores the resolved locale in the request context and
// redirects requests for the designated paths to "/<locale><path>",
// remembering the locale in a cookie. Paths that already carry a supported
// locale prefix pass through untouched.
func Middleware(resolver *Resolver, opts Options, logger *slog.Logger) func(http.Handler) http.Handler {
	maxAge := opts.CookieMaxAge
	if maxAge <= 0 {
		maxAge = DefaultCookieMaxAge
	}
	designated := make(map[string]string, len(opts.Paths)*2)
	for _, p := range opts.Paths {
		designated[p] = p
		designated[p+"/"] = p
	}
	logger = logger.With("component", "locale")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver.HasLocalePrefix(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			code := resolver.FromRequest(r)
			ctx := contextkeys.WithLocale(r.Context(), code)

			target, ok := designated[r.URL.Path]
			if !ok {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			location := "/" + code + target
			http.SetCookie(w, &http.Cookie{
				Name:     resolver.CookieName(),
				Value:    code,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				Expires:  time.Now().Add(maxAge).UTC(),
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Add("Vary", "Accept-Language, Cookie")
			logger.DebugContext(ctx, "Redirecting to localized path", "from", r.URL.Path, "to", location)
			http.Redirect(w, r, location, http.StatusTemporaryRedirect)
		})
	}
}
