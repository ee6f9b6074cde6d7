package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xylexgaming/xgi-website/internal/config"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

var (
	ErrUnknownProvider = errors.New("unknown or disabled oauth provider")
	ErrInvalidSession  = errors.New("invalid session")
)

const sessionIssuer = "xgi-website"

var discordEndpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// ProfileDecoder turns a provider's user-info document into a principal.
type ProfileDecoder func(body []byte) (*domain.Principal, error)

// OAuthProvider is an authorization-code provider plus the endpoint that
// describes the signed-in user.
type OAuthProvider struct {
	Name          string
	Config        *oauth2.Config
	ProfileURL    string
	DecodeProfile ProfileDecoder
}

type AuthService struct {
	providers  map[string]*OAuthProvider
	sessionKey []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(cfg *config.Config) (*AuthService, error) {
	key, err := deriveKey(cfg.SessionSecret, "session")
	if err != nil {
		return nil, err
	}

	s := &AuthService{
		providers:  make(map[string]*OAuthProvider),
		sessionKey: key,
		sessionTTL: cfg.SessionTTL,
		now:        time.Now,
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = 7 * 24 * time.Hour
	}

	if cfg.GoogleEnabled() {
		s.RegisterProvider(&OAuthProvider{
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     endpoints.Google,
				RedirectURL:  cfg.CallbackURL("google"),
				Scopes:       []string{"openid", "profile", "email"},
			},
			ProfileURL:    "https://openidconnect.googleapis.com/v1/userinfo",
			DecodeProfile: decodeGoogleProfile,
		})
		logrus.Info("Google OAuth strategy configured")
	} else {
		logrus.Warn("Google OAuth disabled - credentials missing from environment")
	}

	if cfg.DiscordEnabled() {
		s.RegisterProvider(&OAuthProvider{
			Name: "discord",
			Config: &oauth2.Config{
				ClientID:     cfg.DiscordClientID,
				ClientSecret: cfg.DiscordClientSecret,
				Endpoint:     discordEndpoint,
				RedirectURL:  cfg.CallbackURL("discord"),
				Scopes:       []string{"identify", "email"},
			},
			ProfileURL:    "https://discord.com/api/users/@me",
			DecodeProfile: decodeDiscordProfile,
		})
		logrus.Info("Discord OAuth strategy configured")
	} else {
		logrus.Warn("Discord OAuth disabled - credentials missing from environment")
	}

	return s, nil
}

func (s *AuthService) RegisterProvider(p *OAuthProvider) {
	s.providers[p.Name] = p
}

// Providers lists the enabled provider names in sorted order.
func (s *AuthService) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *AuthService) provider(name string) (*OAuthProvider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// NewState returns an unguessable value for the OAuth state parameter.
func (s *AuthService) NewState() string {
	return uuid.NewString()
}

func (s *AuthService) AuthCodeURL(providerName, state string) (string, error) {
	p, err := s.provider(providerName)
	if err != nil {
		return "", err
	}
	return p.Config.AuthCodeURL(state), nil
}

// Exchange trades an authorization code for the provider's view of the user.
func (s *AuthService) Exchange(ctx context.Context, providerName, code string) (*domain.Principal, error) {
	p, err := s.provider(providerName)
	if err != nil {
		return nil, err
	}

	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.ProfileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}

	principal, err := p.DecodeProfile(body)
	if err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	principal.Provider = p.Name
	return principal, nil
}

type sessionClaims struct {
	Principal domain.Principal `json:"principal"`
	jwt.RegisteredClaims
}

// IssueSession signs a session token for principal.
func (s *AuthService) IssueSession(principal domain.Principal) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.sessionTTL)
	claims := sessionClaims{
		Principal: principal,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   principal.Provider + ":" + principal.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.sessionKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (s *AuthService) ValidateSession(tokenString string) (*domain.Principal, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.sessionKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return &claims.Principal, nil
}

func deriveKey(secret, purpose string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("xgi-website "+purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}

func decodeGoogleProfile(body []byte) (*domain.Principal, error) {
	var profile struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}
	if profile.Sub == "" {
		return nil, errors.New("profile has no subject")
	}
	return &domain.Principal{
		Subject:     profile.Sub,
		DisplayName: profile.Name,
		Email:       profile.Email,
		AvatarURL:   profile.Picture,
	}, nil
}

func decodeDiscordProfile(body []byte) (*domain.Principal, error) {
	var profile struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		GlobalName string `json:"global_name"`
		Email      string `json:"email"`
		Avatar     string `json:"avatar"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}
	if profile.ID == "" {
		return nil, errors.New("profile has no id")
	}
	p := &domain.Principal{
		Subject:     profile.ID,
		Username:    profile.Username,
		DisplayName: profile.GlobalName,
		Email:       profile.Email,
	}
	if profile.Avatar != "" {
		p.AvatarURL = fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", profile.ID, profile.Avatar)
	}
	return p, nil
}
