// Package oauth exchanges an authorization code for a bearer token and
// stores it.
package oauth

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"photofeed/internal/dispatch"
	"photofeed/internal/rest"
)

//go:generate mockgen -source=oauth.go -destination=mocks/mocks.go -package=mocks

// TokenStore receives the token obtained from a successful exchange.
type TokenStore interface {
	Set(token string) error
}

type Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type Service struct {
	client *rest.Client
	loop   *dispatch.Loop
	tokens TokenStore
	cfg    Config
	logger *slog.Logger
}

func NewService(client *rest.Client, loop *dispatch.Loop, tokens TokenStore, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		loop:   loop,
		tokens: tokens,
		cfg:    cfg,
		logger: logger.With("component", "oauth"),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ExchangeCode posts the authorization code to the token endpoint, stores
// the returned token, and completes on the loop with the token string or
// a classified failure.
func (s *Service) ExchangeCode(code string, complete func(token string, err error)) {
	form := url.Values{}
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	form.Set("redirect_uri", s.cfg.RedirectURI)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")

	req, err := rest.NewRequest(http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		s.logger.Error("build token request", "error", err)
		s.loop.Post(func() { complete("", err) })
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rest.Object(s.client, req, func(res tokenResponse, err error) {
		if err != nil {
			s.logger.Error("token exchange failed", "error", err)
			complete("", err)
			return
		}
		if err := s.tokens.Set(res.AccessToken); err != nil {
			complete("", err)
			return
		}
		s.logger.Info("token exchanged")
		complete(res.AccessToken, nil)
	})
}
