package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/service"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"

	SessionCookie = "xgi_session"
)

// Session attaches the signed-in principal to the request context when the
// session cookie is valid. Anonymous requests pass through unchanged.
func Session(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := authService.ValidateSession(cookie.Value)
			if err != nil {
				logrus.WithError(err).Debug("[middleware.Session] ignoring session cookie")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetPrincipal(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*domain.Principal)
	return principal, ok
}
