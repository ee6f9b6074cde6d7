package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xylexgaming/xgi-website/internal/config"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"golang.org/x/oauth2"
)

func newTestAuthService(t *testing.T, mutate func(*config.Config)) *AuthService {
	t.Helper()
	cfg := &config.Config{
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
	}
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewAuthService(cfg)
	require.NoError(t, err)
	return s
}

func TestAuthService_Providers(t *testing.T) {
	none := newTestAuthService(t, nil)
	assert.Empty(t, none.Providers())

	_, err := none.AuthCodeURL("google", "state")
	assert.True(t, errors.Is(err, ErrUnknownProvider))

	both := newTestAuthService(t, func(c *config.Config) {
		c.PublicBaseURL = "https://xylexgaming.test"
		c.GoogleClientID, c.GoogleClientSecret = "gid", "gsecret"
		c.DiscordClientID, c.DiscordClientSecret = "did", "dsecret"
	})
	assert.Equal(t, []string{"discord", "google"}, both.Providers())

	target, err := both.AuthCodeURL("discord", "xyz")
	require.NoError(t, err)
	u, err := url.Parse(target)
	require.NoError(t, err)
	assert.Equal(t, "discord.com", u.Host)
	assert.Equal(t, "xyz", u.Query().Get("state"))
	assert.Equal(t, "https://xylexgaming.test/auth/discord/callback", u.Query().Get("redirect_uri"))
	assert.Equal(t, "identify email", u.Query().Get("scope"))
}

func TestAuthService_NewState(t *testing.T) {
	s := newTestAuthService(t, nil)
	a, b := s.NewState(), s.NewState()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestAuthService_SessionRoundTrip(t *testing.T) {
	s := newTestAuthService(t, nil)
	principal := domain.Principal{Provider: "google", Subject: "123", DisplayName: "Ava", Email: "ava@example.com"}

	token, expires, err := s.IssueSession(principal)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	got, err := s.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, principal, *got)
}

func TestAuthService_ValidateSessionRejects(t *testing.T) {
	s := newTestAuthService(t, nil)
	token, _, err := s.IssueSession(domain.Principal{Provider: "discord", Subject: "42"})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		expired := newTestAuthService(t, nil)
		expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := expired.ValidateSession(token)
		assert.True(t, errors.Is(err, ErrInvalidSession))
	})

	t.Run("other secret", func(t *testing.T) {
		other := newTestAuthService(t, func(c *config.Config) { c.SessionSecret = "another-secret" })
		_, err := other.ValidateSession(token)
		assert.True(t, errors.Is(err, ErrInvalidSession))
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := s.ValidateSession(token[:len(token)-2] + "xx")
		assert.True(t, errors.Is(err, ErrInvalidSession))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.ValidateSession("not-a-token")
		assert.True(t, errors.Is(err, ErrInvalidSession))
	})
}

func newFakeProvider(t *testing.T, profile interface{}) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthService_Exchange(t *testing.T) {
	srv := newFakeProvider(t, map[string]string{
		"id":          "987",
		"username":    "ava_x",
		"global_name": "Ava",
		"email":       "ava@example.com",
		"avatar":      "abc",
	})

	s := newTestAuthService(t, nil)
	s.RegisterProvider(&OAuthProvider{
		Name: "discord",
		Config: &oauth2.Config{
			ClientID:     "id",
			ClientSecret: "secret",
			Endpoint:     oauth2.Endpoint{AuthURL: srv.URL + "/authorize", TokenURL: srv.URL + "/token", AuthStyle: oauth2.AuthStyleInParams},
			RedirectURL:  "http://localhost/auth/discord/callback",
		},
		ProfileURL:    srv.URL + "/me",
		DecodeProfile: decodeDiscordProfile,
	})

	principal, err := s.Exchange(context.Background(), "discord", "good-code")
	require.NoError(t, err)
	assert.Equal(t, "discord", principal.Provider)
	assert.Equal(t, "987", principal.Subject)
	assert.Equal(t, "Ava", principal.Name())
	assert.Equal(t, "https://cdn.discordapp.com/avatars/987/abc.png", principal.AvatarURL)

	_, err = s.Exchange(context.Background(), "discord", "bad-code")
	assert.Error(t, err)

	_, err = s.Exchange(context.Background(), "google", "good-code")
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}

func TestDecodeGoogleProfile(t *testing.T) {
	p, err := decodeGoogleProfile([]byte(`{"sub":"g-1","name":"Ava","email":"ava@example.com","picture":"https://img.test/a.png"}`))
	require.NoError(t, err)
	assert.Equal(t, "g-1", p.Subject)
	assert.Equal(t, "Ava", p.Name())

	_, err = decodeGoogleProfile([]byte(`{"name":"no subject"}`))
	assert.Error(t, err)
}
