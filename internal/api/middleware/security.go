package middleware

import (
	"net/http"
	"strings"
)

var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"style-src 'self' 'unsafe-inline' https: data:",
	"font-src 'self' https: data:",
	"img-src 'self' data: https://images.unsplash.com",
	"script-src 'self' 'unsafe-inline'",
	"connect-src 'self'",
	"object-src 'none'",
	"frame-ancestors 'self'",
	"frame-src https://www.youtube.com https://www.youtube-nocookie.com",
	"base-uri 'self'",
}, "; ")

// SecurityHeaders sets the response headers every page and API reply carries.
func SecurityHeaders(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", contentSecurityPolicy)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "SAMEORIGIN")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("Cross-Origin-Resource-Policy", "same-origin")
			h.Set("X-DNS-Prefetch-Control", "off")
			if production {
				h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
