package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig is the proxy.cors config section in middleware form.
type CORSConfig struct {
	Enabled bool

	// AllowedOrigins lists exact origins; "*" allows any origin.
	AllowedOrigins []string

	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	AllowCredentials bool
}

// DefaultCORSConfig allows any origin to read the API. Content-Disposition
// is exposed so a browser client can read the download file name.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:         3600,
	}
}

// corsPolicy holds the header values computed once from a CORSConfig.
type corsPolicy struct {
	origins     []string
	anyOrigin   bool
	credentials bool
	methods     string
	headers     string
	exposed     string
	maxAge      string
}

func newCORSPolicy(c *CORSConfig) *corsPolicy {
	p := &corsPolicy{
		origins:     c.AllowedOrigins,
		anyOrigin:   slices.Contains(c.AllowedOrigins, "*"),
		credentials: c.AllowCredentials,
		methods:     strings.Join(c.AllowedMethods, ", "),
		headers:     strings.Join(c.AllowedHeaders, ", "),
		exposed:     strings.Join(c.ExposedHeaders, ", "),
	}
	if c.MaxAge > 0 {
		p.maxAge = strconv.Itoa(c.MaxAge)
	}
	return p
}

// allowOrigin sets the origin headers and reports whether origin may read
// the response. A listed origin is echoed back so credentials can be
// allowed for it.
func (p *corsPolicy) allowOrigin(h http.Header, origin string) bool {
	switch {
	case origin != "" && slices.Contains(p.origins, origin):
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		if p.credentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
	case p.anyOrigin:
		h.Set("Access-Control-Allow-Origin", "*")
	default:
		return false
	}
	if p.exposed != "" {
		h.Set("Access-Control-Expose-Headers", p.exposed)
	}
	return true
}

func (p *corsPolicy) preflight(h http.Header) {
	setIf(h, "Access-Control-Allow-Methods", p.methods)
	setIf(h, "Access-Control-Allow-Headers", p.headers)
	setIf(h, "Access-Control-Max-Age", p.maxAge)
}

func setIf(h http.Header, key, value string) {
	if value != "" {
		h.Set(key, value)
	}
}

// CORSMiddleware lets browser frontends on other origins call the API.
// A preflight (OPTIONS carrying Access-Control-Request-Method) from an
// allowed origin is answered with 204 and does not reach next. Requests
// from other origins pass through without CORS headers and the browser
// blocks the read.
//
// Example usage:
//
//	handler = CORSMiddleware(DefaultCORSConfig())(handler)
func CORSMiddleware(config *CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if config == nil || !config.Enabled {
			return next
		}
		policy := newCORSPolicy(config)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !policy.allowOrigin(w.Header(), r.Header.Get("Origin")) {
				next.ServeHTTP(w, r)
				return
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				policy.preflight(w.Header())
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
