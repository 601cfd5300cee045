// Package locale picks the locale a visitor should see and redirects
// unlocalized page requests to their localized counterpart.
package locale

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// DefaultCookieName is the cookie that remembers a visitor's locale.
const DefaultCookieName = "NEXT_LOCALE"

// Resolver chooses a locale from a cookie value, an Accept-Language header
// and a fallback, in that order.
type Resolver struct {
	supported  []string
	fallback   string
	cookieName string
}

// NewResolver returns a Resolver over the supported locale codes. fallback
// must be one of them. An empty cookieName selects DefaultCookieName.
func NewResolver(supported []string, fallback, cookieName string) (*Resolver, error) {
	if len(supported) == 0 {
		return nil, fmt.Errorf("locale: supported set is empty")
	}
	if !slices.Contains(supported, fallback) {
		return nil, fmt.Errorf("locale: fallback %q is not in supported set %v", fallback, supported)
	}
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Resolver{
		supported:  slices.Clone(supported),
		fallback:   fallback,
		cookieName: cookieName,
	}, nil
}

// Supported returns a copy of the supported locale codes.
func (r *Resolver) Supported() []string {
	return slices.Clone(r.supported)
}

// Fallback returns the locale used when nothing else matches.
func (r *Resolver) Fallback() string {
	return r.fallback
}

// CookieName returns the name of the preference cookie.
func (r *Resolver) CookieName() string {
	return r.cookieName
}

// IsSupported reports whether code is one of the supported locales.
func (r *Resolver) IsSupported(code string) bool {
	return slices.Contains(r.supported, code)
}

// Resolve returns the cookie value when it is supported, otherwise the
// first supported language of acceptLanguage, otherwise the fallback.
func (r *Resolver) Resolve(cookieValue, acceptLanguage string) string {
	if r.IsSupported(cookieValue) {
		return cookieValue
	}
	for _, pref := range ParseAcceptLanguage(acceptLanguage) {
		if r.IsSupported(pref.Code) {
			return pref.Code
		}
	}
	return r.fallback
}

// FromRequest resolves the locale of req from its cookie and Accept-Language header.
func (r *Resolver) FromRequest(req *http.Request) string {
	var cookieValue string
	if c, err := req.Cookie(r.cookieName); err == nil {
		cookieValue = c.Value
	}
	return r.Resolve(cookieValue, req.Header.Get("Accept-Language"))
}

// HasLocalePrefix reports whether path already starts with a supported
// locale segment, as in "/en" or "/zh/about".
func (r *Resolver) HasLocalePrefix(path string) bool {
	for _, code := range r.supported {
		prefix := "/" + code
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
