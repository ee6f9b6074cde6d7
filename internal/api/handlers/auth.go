package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/xylexgaming/xgi-website/internal/api/middleware"
	"github.com/xylexgaming/xgi-website/internal/service"
)

const (
	stateCookie   = "xgi_oauth_state"
	stateLifetime = 10 * time.Minute

	loginPath   = "/login"
	profilePath = "/profile"
)

type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Begin handles GET /auth/{provider} by redirecting to the provider's consent
// screen.
func (h *AuthHandler) Begin(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	state := h.authService.NewState()
	target, err := h.authService.AuthCodeURL(provider, state)
	if err != nil {
		logrus.WithError(err).WithField("provider", provider).Warn("[auth.Begin] provider unavailable")
		http.NotFound(w, r)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/" + provider,
		MaxAge:   int(stateLifetime.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, target, http.StatusFound)
}

// Callback handles GET /auth/{provider}/callback.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	q := r.URL.Query()

	// the state cookie is single use
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/auth/" + provider,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	if errParam := q.Get("error"); errParam != "" {
		logrus.WithField("provider", provider).Warnf("[auth.Callback] provider returned error: %s", errParam)
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != q.Get("state") {
		logrus.WithField("provider", provider).Warn("[auth.Callback] state mismatch")
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	principal, err := h.authService.Exchange(r.Context(), provider, q.Get("code"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownProvider) {
			http.NotFound(w, r)
			return
		}
		logrus.WithError(err).WithField("provider", provider).Error("[auth.Callback] exchange failed")
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	token, expires, err := h.authService.IssueSession(*principal)
	if err != nil {
		logrus.WithError(err).Error("[auth.Callback] failed to issue session")
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, profilePath, http.StatusFound)
}

// Logout handles GET /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

type ProvidersResponse struct {
	Providers []string `json:"providers"`
}

// Providers handles GET /api/auth/providers so the frontend can hide buttons
// for disabled sign-in options.
func (h *AuthHandler) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProvidersResponse{Providers: h.authService.Providers()})
}
