// Package session coordinates logout across the services that hold
// session state.
package session

import "log/slog"

type LogoutService struct {
	web     WebDataCleaner
	feed    FeedResetter
	profile ProfileResetter
	tokens  TokenClearer
	router  EntryPointRouter
	logger  *slog.Logger
}

func NewLogoutService(
	web WebDataCleaner,
	feed FeedResetter,
	profile ProfileResetter,
	tokens TokenClearer,
	router EntryPointRouter,
	logger *slog.Logger,
) *LogoutService {
	return &LogoutService{
		web:     web,
		feed:    feed,
		profile: profile,
		tokens:  tokens,
		router:  router,
		logger:  logger.With("component", "session"),
	}
}

// Logout wipes web session data, clears the feed and profile caches,
// removes the stored token, and routes back to the unauthenticated entry
// point. Collaborator failures are logged but do not stop the teardown:
// a half-cleared session must still end up logged out.
func (s *LogoutService) Logout() {
	if err := s.web.CleanWebsiteData(); err != nil {
		s.logger.Warn("clean website data", "error", err)
	}

	s.feed.Reset()
	s.profile.Reset()

	if err := s.tokens.Clear(); err != nil {
		s.logger.Error("clear token", "error", err)
	}

	s.logger.Info("logged out")
	s.router.ShowEntryPoint()
}
