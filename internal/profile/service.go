// Package profile fetches and caches the authenticated user's profile.
package profile

import (
	"log/slog"
	"net/http"
	"strings"

	"photofeed/internal/dispatch"
	"photofeed/internal/domain"
	"photofeed/internal/rest"
)

type Service struct {
	client  *rest.Client
	loop    *dispatch.Loop
	baseURL string
	logger  *slog.Logger

	// Mutated only on the loop.
	profile  *domain.Profile
	inFlight *rest.Call
}

func NewService(client *rest.Client, loop *dispatch.Loop, baseURL string, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		loop:    loop,
		baseURL: baseURL,
		logger:  logger.With("component", "profile"),
	}
}

type profileResult struct {
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio"`
}

// FetchProfile loads the current user, replaces the cached profile
// wholesale, and completes on the loop. A new fetch cancels the prior
// one; the superseded completion is suppressed.
func (s *Service) FetchProfile(token string, complete func(domain.Profile, error)) {
	req, err := rest.NewRequest(http.MethodGet, s.baseURL+"/me", nil)
	if err != nil {
		s.loop.Post(func() { complete(domain.Profile{}, err) })
		return
	}
	rest.Authorize(req, token)

	s.loop.Post(func() {
		if s.inFlight != nil {
			s.inFlight.Cancel()
		}

		var call *rest.Call
		call = rest.Object(s.client, req, func(res profileResult, err error) {
			// Superseded by a newer fetch or a Reset; suppressed
			// outright, even when the transport succeeded.
			if s.inFlight != call {
				return
			}
			s.inFlight = nil

			if err != nil {
				if rest.IsCancelled(err) {
					return
				}
				s.logger.Error("fetch profile failed", "error", err)
				complete(domain.Profile{}, err)
				return
			}

			p := domain.Profile{
				Username:  res.Username,
				Name:      strings.TrimSpace(res.FirstName + " " + res.LastName),
				LoginName: "@" + res.Username,
			}
			if res.Bio != nil {
				p.Bio = *res.Bio
			}

			s.profile = &p
			s.logger.Info("profile fetched", "username", p.Username)
			complete(p, nil)
		})
		s.inFlight = call
	})
}

// Profile returns the cached profile, if any.
func (s *Service) Profile() (domain.Profile, bool) {
	var (
		p  domain.Profile
		ok bool
	)
	s.loop.Do(func() {
		if s.profile != nil {
			p, ok = *s.profile, true
		}
	})
	return p, ok
}

// Reset drops the cached profile and cancels any outstanding fetch.
func (s *Service) Reset() {
	s.loop.Post(func() {
		if s.inFlight != nil {
			s.inFlight.Cancel()
			s.inFlight = nil
		}
		s.profile = nil
	})
}
