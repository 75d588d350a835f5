// Package feed owns the paginated, deduplicated photo collection and the
// two asynchronous actors that mutate it: page fetching and like
// toggling. All state lives on the dispatch loop; every public method may
// be called from any goroutine and hops onto it.
package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"photofeed/internal/dispatch"
	"photofeed/internal/domain"
	"photofeed/internal/rest"
)

// ErrNoToken resolves an operation attempted without a stored credential.
var ErrNoToken = errors.New("no token stored")

type Config struct {
	BaseURL  string
	PageSize int
}

type Service struct {
	client *rest.Client
	loop   *dispatch.Loop
	tokens TokenProvider
	cfg    Config
	logger *slog.Logger

	// Mutated only on the loop.
	photos         []domain.Photo
	index          map[string]int // photo id -> position in photos
	lastLoadedPage int            // 0 before the first successful fetch
	fetching       bool
	inFlight       *rest.Call
	likeCalls      map[string]*rest.Call
	observers      map[uuid.UUID]func(domain.FeedChange)
}

func NewService(client *rest.Client, loop *dispatch.Loop, tokens TokenProvider, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		client:    client,
		loop:      loop,
		tokens:    tokens,
		cfg:       cfg,
		logger:    logger.With("component", "feed"),
		index:     make(map[string]int),
		likeCalls: make(map[string]*rest.Call),
		observers: make(map[uuid.UUID]func(domain.FeedChange)),
	}
}

// Subscribe registers an observer for feed changes. Observers run on the
// loop and must not block or call back into snapshot reads.
func (s *Service) Subscribe(fn func(domain.FeedChange)) uuid.UUID {
	id := uuid.New()
	s.loop.Post(func() {
		s.observers[id] = fn
	})
	return id
}

func (s *Service) Unsubscribe(id uuid.UUID) {
	s.loop.Post(func() {
		delete(s.observers, id)
	})
}

// Photos returns a snapshot of the feed. Not for use inside observer
// callbacks; they receive the snapshot in the change event instead.
func (s *Service) Photos() []domain.Photo {
	var out []domain.Photo
	s.loop.Do(func() {
		out = append(out, s.photos...)
	})
	return out
}

// LastLoadedPage returns the highest page merged so far, 0 when none.
func (s *Service) LastLoadedPage() int {
	var page int
	s.loop.Do(func() {
		page = s.lastLoadedPage
	})
	return page
}

// Fetching reports whether a page request is outstanding.
func (s *Service) Fetching() bool {
	var fetching bool
	s.loop.Do(func() {
		fetching = s.fetching
	})
	return fetching
}

// FetchNextPage requests the page after the last one merged. A no-op
// while a fetch is outstanding or when no token is stored. complete is
// optional; when given it runs on the loop once the attempt settles,
// whether the page merged, failed, was declined, or was discarded by a
// Reset.
func (s *Service) FetchNextPage(complete func(err error)) {
	s.loop.Post(func() { s.fetchNextPage(complete) })
}

func (s *Service) fetchNextPage(complete func(error)) {
	finish := func(err error) {
		if complete != nil {
			complete(err)
		}
	}

	if s.fetching {
		finish(nil)
		return
	}

	token := s.tokens.Token()
	if token == "" {
		s.logger.Debug("fetch declined: no token stored")
		finish(ErrNoToken)
		return
	}

	page := s.lastLoadedPage + 1
	req, err := rest.NewRequest(http.MethodGet,
		fmt.Sprintf("%s/photos?page=%d&per_page=%d", s.cfg.BaseURL, page, s.cfg.PageSize), nil)
	if err != nil {
		s.logger.Error("build photos request", "error", err)
		finish(err)
		return
	}
	rest.Authorize(req, token)

	if s.inFlight != nil {
		s.inFlight.Cancel()
	}
	s.fetching = true

	var call *rest.Call
	call = rest.Object(s.client, req, func(results []photoResult, err error) {
		// A completion that lost its handle was cancelled by Reset; it
		// must not touch the feed even when its transport finished
		// successfully before the cancel landed.
		if s.inFlight != call {
			finish(rest.ErrCancelled)
			return
		}
		s.fetching = false
		s.inFlight = nil

		if err != nil {
			if !rest.IsCancelled(err) {
				s.logger.Error("fetch page failed", "page", page, "error", err)
			}
			finish(err)
			return
		}

		oldCount := len(s.photos)
		for _, r := range results {
			if _, dup := s.index[r.ID]; dup {
				continue
			}
			s.index[r.ID] = len(s.photos)
			s.photos = append(s.photos, r.toDomain())
		}

		// The cursor advances even when every record was a duplicate,
		// otherwise an overlapping upstream page would be refetched
		// forever. Observers only hear about pages that added photos.
		s.lastLoadedPage = page
		added := len(s.photos) - oldCount
		s.logger.Info("page merged", "page", page, "fetched", len(results), "added", added, "total", len(s.photos))
		if added > 0 {
			s.notify(oldCount)
		}
		finish(nil)
	})
	s.inFlight = call
}

// ToggleLike flips the liked state of a photo. liked is the current
// state: a liked photo is unliked and vice versa. The stored record takes
// the server-confirmed value, never the requested one, and complete runs
// on the loop with that confirmed value. A second toggle on the same
// photo supersedes the first; toggles on different photos are
// independent.
func (s *Service) ToggleLike(photoID string, liked bool, complete func(liked bool, err error)) {
	s.loop.Post(func() {
		s.toggleLike(photoID, liked, complete)
	})
}

func (s *Service) toggleLike(photoID string, liked bool, complete func(bool, error)) {
	token := s.tokens.Token()
	if token == "" {
		s.logger.Debug("like declined: no token stored", "photo_id", photoID)
		complete(liked, ErrNoToken)
		return
	}

	method := http.MethodPost
	if liked {
		method = http.MethodDelete
	}

	req, err := rest.NewRequest(method,
		fmt.Sprintf("%s/photos/%s/like", s.cfg.BaseURL, url.PathEscape(photoID)), nil)
	if err != nil {
		complete(liked, err)
		return
	}
	rest.Authorize(req, token)

	if prior := s.likeCalls[photoID]; prior != nil {
		prior.Cancel()
	}

	var call *rest.Call
	call = rest.Object(s.client, req, func(res likeResult, err error) {
		// Superseded by a newer toggle or a Reset; the completion is
		// suppressed outright, even when the transport succeeded.
		if s.likeCalls[photoID] != call {
			return
		}
		delete(s.likeCalls, photoID)

		if err != nil {
			if rest.IsCancelled(err) {
				return
			}
			s.logger.Error("toggle like failed", "photo_id", photoID, "error", err)
			complete(liked, err)
			return
		}

		if idx, ok := s.index[res.Photo.ID]; ok {
			p := s.photos[idx]
			p.Liked = res.Photo.LikedByUser
			s.photos[idx] = p
			s.notify(len(s.photos))
		}
		complete(res.Photo.LikedByUser, nil)
	})
	s.likeCalls[photoID] = call
}

// Reset clears the feed and cancels anything in flight so a stale page
// cannot repopulate the cleared state.
func (s *Service) Reset() {
	s.loop.Post(s.reset)
}

func (s *Service) reset() {
	if s.inFlight != nil {
		s.inFlight.Cancel()
		s.inFlight = nil
	}
	for id, call := range s.likeCalls {
		call.Cancel()
		delete(s.likeCalls, id)
	}
	s.fetching = false
	s.photos = nil
	s.index = make(map[string]int)
	s.lastLoadedPage = 0
	s.logger.Info("feed reset")
}

func (s *Service) notify(oldCount int) {
	change := domain.FeedChange{
		Photos:         append([]domain.Photo(nil), s.photos...),
		LastLoadedPage: s.lastLoadedPage,
		OldCount:       oldCount,
		NewCount:       len(s.photos),
	}
	for _, fn := range s.observers {
		fn(change)
	}
}
