package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"photofeed/internal/dispatch"
	"photofeed/internal/domain"
	"photofeed/internal/feed/mocks"
	"photofeed/internal/rest"
)

type FeedServiceTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	tokens *mocks.MockTokenProvider

	loop    *dispatch.Loop
	server  *httptest.Server
	service *Service

	mu            sync.Mutex
	pages         map[int][]photoResult
	likeResponses map[string]bool
	failPages     map[int]int // page -> status code to fail with
	release       chan struct{}
	likeRelease   chan struct{}
	pageRequests  int
	pagesServed   int
	likeRequests  int
	likesServed   int
}

func (s *FeedServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tokens = mocks.NewMockTokenProvider(s.ctrl)

	s.loop = dispatch.NewLoop()
	s.pages = make(map[int][]photoResult)
	s.likeResponses = make(map[string]bool)
	s.failPages = make(map[int]int)
	s.release = nil
	s.likeRelease = nil
	s.pageRequests = 0
	s.pagesServed = 0
	s.likeRequests = 0
	s.likesServed = 0

	s.server = httptest.NewServer(http.HandlerFunc(s.handle))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client := rest.NewClient(5*time.Second, s.loop, logger)
	s.service = NewService(client, s.loop, s.tokens, Config{
		BaseURL:  s.server.URL,
		PageSize: 10,
	}, logger)
}

func (s *FeedServiceTestSuite) TearDownTest() {
	s.server.Close()
	s.loop.Close()
	s.ctrl.Finish()
}

func TestFeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeedServiceTestSuite))
}

func (s *FeedServiceTestSuite) handle(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/like") {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		id := parts[len(parts)-2]
		s.mu.Lock()
		s.likeRequests++
		release := s.likeRelease
		liked := s.likeResponses[id]
		s.mu.Unlock()

		if release != nil {
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
		}
		json.NewEncoder(w).Encode(likeResult{Photo: likePhoto{ID: id, LikedByUser: liked}})
		s.mu.Lock()
		s.likesServed++
		s.mu.Unlock()
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	s.mu.Lock()
	s.pageRequests++
	release := s.release
	status := s.failPages[page]
	body := s.pages[page]
	s.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
	}
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	json.NewEncoder(w).Encode(body)
	s.mu.Lock()
	s.pagesServed++
	s.mu.Unlock()
}

func (s *FeedServiceTestSuite) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageRequests
}

func (s *FeedServiceTestSuite) pagesServedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagesServed
}

func (s *FeedServiceTestSuite) likeRequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likeRequests
}

func (s *FeedServiceTestSuite) likesServedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likesServed
}

// fetchPage runs one fetch attempt to completion and flushes the loop so
// observer deliveries are visible to the test goroutine.
func (s *FeedServiceTestSuite) fetchPage() error {
	done := make(chan error, 1)
	s.service.FetchNextPage(func(err error) {
		done <- err
	})
	err := <-done
	s.loop.Flush()
	return err
}

func (s *FeedServiceTestSuite) recordEvents() *[]domain.FeedChange {
	events := &[]domain.FeedChange{}
	s.service.Subscribe(func(c domain.FeedChange) {
		*events = append(*events, c)
	})
	return events
}

// makePhotos builds records P<start>..P<start+count-1>.
func makePhotos(start, count int) []photoResult {
	out := make([]photoResult, 0, count)
	for i := start; i < start+count; i++ {
		desc := fmt.Sprintf("photo %d", i)
		out = append(out, photoResult{
			ID:          fmt.Sprintf("P%d", i),
			Width:       1080,
			Height:      720,
			Description: &desc,
			URLs: urlsResult{
				Thumb:   fmt.Sprintf("https://img.test/P%d/thumb", i),
				Regular: fmt.Sprintf("https://img.test/P%d/regular", i),
				Full:    fmt.Sprintf("https://img.test/P%d/full", i),
			},
		})
	}
	return out
}

func (s *FeedServiceTestSuite) TestFetchFirstPage() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	events := s.recordEvents()

	s.Require().NoError(s.fetchPage())

	photos := s.service.Photos()
	s.Len(photos, 10)
	s.Equal("P1", photos[0].ID)
	s.Equal("photo 1", photos[0].Description)
	s.Equal(1, s.service.LastLoadedPage())

	s.Require().Len(*events, 1)
	s.Equal(0, (*events)[0].OldCount)
	s.Equal(10, (*events)[0].NewCount)
}

func (s *FeedServiceTestSuite) TestOverlappingPagesDeduplicated() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10) // P1..P10
	s.pages[2] = makePhotos(6, 10) // P6..P15
	events := s.recordEvents()

	s.Require().NoError(s.fetchPage())
	s.Require().NoError(s.fetchPage())

	photos := s.service.Photos()
	s.Require().Len(photos, 15)
	seen := make(map[string]bool)
	for i, p := range photos {
		s.False(seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		s.Equal(fmt.Sprintf("P%d", i+1), p.ID)
	}
	s.Equal(2, s.service.LastLoadedPage())
	s.Len(*events, 2)
}

func (s *FeedServiceTestSuite) TestAllDuplicatePageAdvancesCursorSilently() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	s.pages[2] = makePhotos(1, 10)
	events := s.recordEvents()

	s.Require().NoError(s.fetchPage())
	s.Require().NoError(s.fetchPage())

	s.Len(s.service.Photos(), 10)
	// The cursor still advances so the same page is not refetched forever.
	s.Equal(2, s.service.LastLoadedPage())
	s.Len(*events, 1)
}

func (s *FeedServiceTestSuite) TestSecondFetchWhileInFlightIsNoOp() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	release := make(chan struct{})
	s.mu.Lock()
	s.release = release
	s.mu.Unlock()
	events := s.recordEvents()

	first := make(chan error, 1)
	s.service.FetchNextPage(func(err error) {
		first <- err
	})
	s.Require().Eventually(func() bool {
		return s.requestCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// The second attempt settles immediately without a request.
	s.NoError(s.fetchPage())

	close(release)
	s.NoError(<-first)
	s.loop.Flush()

	s.Equal(1, s.requestCount())
	s.Len(s.service.Photos(), 10)
	s.Len(*events, 1)
}

func (s *FeedServiceTestSuite) TestNoTokenDeclinesFetch() {
	s.tokens.EXPECT().Token().Return("").AnyTimes()
	events := s.recordEvents()

	s.ErrorIs(s.fetchPage(), ErrNoToken)

	s.False(s.service.Fetching())
	s.Equal(0, s.requestCount())
	s.Empty(*events)
	s.Equal(0, s.service.LastLoadedPage())
}

func (s *FeedServiceTestSuite) TestToggleLikeStoresServerConfirmedValue() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	s.Require().NoError(s.fetchPage())

	// Server disagrees with the request: the toggle asks to like P1, the
	// response says it is not liked. The stored record must follow the
	// server.
	s.likeResponses["P1"] = false

	var (
		confirmed bool
		likeErr   error
	)
	done := make(chan struct{})
	s.service.ToggleLike("P1", false, func(liked bool, err error) {
		confirmed, likeErr = liked, err
		close(done)
	})
	<-done

	s.NoError(likeErr)
	s.False(confirmed)
	s.False(s.service.Photos()[0].Liked)
}

func (s *FeedServiceTestSuite) TestToggleLikeConfirmedUpdatesPhoto() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	s.Require().NoError(s.fetchPage())
	events := s.recordEvents()

	s.likeResponses["P3"] = true

	var confirmed bool
	done := make(chan struct{})
	s.service.ToggleLike("P3", false, func(liked bool, err error) {
		s.NoError(err)
		confirmed = liked
		close(done)
	})
	<-done
	s.loop.Flush()

	s.True(confirmed)
	s.True(s.service.Photos()[2].Liked)
	s.Len(*events, 1)
}

func (s *FeedServiceTestSuite) TestToggleLikeNoToken() {
	s.tokens.EXPECT().Token().Return("").AnyTimes()

	done := make(chan error, 1)
	s.service.ToggleLike("P1", false, func(_ bool, err error) {
		done <- err
	})
	s.ErrorIs(<-done, ErrNoToken)
}

func (s *FeedServiceTestSuite) TestToggleLikeFailureLeavesStateUntouched() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	s.Require().NoError(s.fetchPage())
	events := s.recordEvents()

	s.server.Close()

	done := make(chan error, 1)
	s.service.ToggleLike("P1", false, func(_ bool, err error) {
		done <- err
	})

	err := <-done
	s.Error(err)
	var transport *rest.TransportError
	s.ErrorAs(err, &transport)
	s.False(s.service.Photos()[0].Liked)
	s.Empty(*events)
}

func (s *FeedServiceTestSuite) TestCancelledFetchSuppressed() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	release := make(chan struct{})
	s.mu.Lock()
	s.release = release
	s.mu.Unlock()
	events := s.recordEvents()

	done := make(chan error, 1)
	s.service.FetchNextPage(func(err error) {
		done <- err
	})
	s.Require().Eventually(func() bool {
		return s.requestCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	s.service.Reset()
	close(release)
	s.ErrorIs(<-done, rest.ErrCancelled)
	s.loop.Flush()

	s.Empty(*events)
	s.Empty(s.service.Photos())
	s.False(s.service.Fetching())

	// The guard is released: a fresh fetch goes through.
	s.mu.Lock()
	s.release = nil
	s.mu.Unlock()
	s.Require().NoError(s.fetchPage())
	s.Len(s.service.Photos(), 10)
	s.Len(*events, 1)
}

// A page request can succeed before Reset's cancel lands, leaving its
// completion queued behind the reset. That completion must be discarded,
// not merged into the cleared feed.
func (s *FeedServiceTestSuite) TestResetDiscardsFetchCompletedBehindIt() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	release := make(chan struct{})
	s.mu.Lock()
	s.release = release
	s.mu.Unlock()
	events := s.recordEvents()

	done := make(chan error, 1)
	s.service.FetchNextPage(func(err error) {
		done <- err
	})
	s.Require().Eventually(func() bool {
		return s.requestCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Hold the loop so the reset is queued ahead of the fetch completion,
	// then let the transport finish successfully.
	gate := make(chan struct{})
	s.loop.Post(func() { <-gate })
	s.service.Reset()
	close(release)
	s.Require().Eventually(func() bool {
		return s.pagesServedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
	close(gate)

	s.ErrorIs(<-done, rest.ErrCancelled)
	s.loop.Flush()

	s.Empty(s.service.Photos())
	s.Equal(0, s.service.LastLoadedPage())
	s.False(s.service.Fetching())
	s.Empty(*events)
}

// A like call whose transport succeeds after a newer toggle superseded it
// must neither mutate the photo nor invoke its completion.
func (s *FeedServiceTestSuite) TestSupersededLikeCompletionSuppressed() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	s.Require().NoError(s.fetchPage())
	s.likeResponses["P1"] = true

	likeRelease := make(chan struct{})
	s.mu.Lock()
	s.likeRelease = likeRelease
	s.mu.Unlock()

	firstCalled := false
	s.service.ToggleLike("P1", false, func(bool, error) {
		firstCalled = true
	})
	s.Require().Eventually(func() bool {
		return s.likeRequestCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Hold the loop so the second toggle is queued ahead of the first
	// call's completion, then let that transport finish successfully.
	gate := make(chan struct{})
	s.loop.Post(func() { <-gate })

	var confirmed bool
	done := make(chan struct{})
	s.service.ToggleLike("P1", false, func(liked bool, err error) {
		s.NoError(err)
		confirmed = liked
		close(done)
	})

	s.mu.Lock()
	s.likeRelease = nil // the second request goes straight through
	s.mu.Unlock()
	close(likeRelease)
	s.Require().Eventually(func() bool {
		return s.likesServedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
	close(gate)

	<-done
	s.loop.Flush()

	s.True(confirmed)
	s.True(s.service.Photos()[0].Liked)

	var got bool
	s.loop.Do(func() { got = firstCalled })
	s.False(got)
}

func (s *FeedServiceTestSuite) TestFetchFailureLeavesStateUntouched() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)
	s.failPages[2] = http.StatusInternalServerError
	events := s.recordEvents()

	s.Require().NoError(s.fetchPage())

	err := s.fetchPage()
	var status *rest.StatusError
	s.ErrorAs(err, &status)

	s.Len(s.service.Photos(), 10)
	s.Equal(1, s.service.LastLoadedPage())
	s.Len(*events, 1)
	s.False(s.service.Fetching())
}

func (s *FeedServiceTestSuite) TestUnsubscribeStopsDelivery() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10)

	var calls int
	id := s.service.Subscribe(func(domain.FeedChange) { calls++ })
	s.service.Unsubscribe(id)

	s.Require().NoError(s.fetchPage())

	s.Equal(0, calls)
}

// TestFeedScenario runs the full flow: two overlapping pages, a like with
// a server-confirmed value, then a session reset.
func (s *FeedServiceTestSuite) TestFeedScenario() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.pages[1] = makePhotos(1, 10) // P1..P10
	s.pages[2] = makePhotos(6, 10) // P6..P15
	events := s.recordEvents()

	s.Require().NoError(s.fetchPage())
	s.Len(s.service.Photos(), 10)
	s.Equal(1, s.service.LastLoadedPage())
	s.Len(*events, 1)

	s.Require().NoError(s.fetchPage())
	s.Len(s.service.Photos(), 15)
	s.Equal(2, s.service.LastLoadedPage())
	s.Len(*events, 2)

	s.likeResponses["P1"] = true
	done := make(chan struct{})
	s.service.ToggleLike("P1", false, func(liked bool, err error) {
		s.NoError(err)
		s.True(liked)
		close(done)
	})
	<-done
	s.True(s.service.Photos()[0].Liked)

	s.service.Reset()
	s.loop.Flush()
	s.Empty(s.service.Photos())
	s.Equal(0, s.service.LastLoadedPage())
}

func (s *FeedServiceTestSuite) TestPhotoMappingDefaults() {
	raw := photoResult{
		ID:     "X1",
		Width:  900,
		Height: 600,
		URLs:   urlsResult{Thumb: "t", Regular: "r", Full: "f"},
	}
	p := raw.toDomain()
	s.Equal(defaultDescription, p.Description)
	s.Nil(p.CreatedAt)
	s.InDelta(1.5, p.AspectRatio(), 1e-9)

	created := "2025-10-08T12:30:00Z"
	desc := "sunset"
	raw.CreatedAt = &created
	raw.Description = &desc
	p = raw.toDomain()
	s.Equal("sunset", p.Description)
	s.Require().NotNil(p.CreatedAt)
	s.Equal(2025, p.CreatedAt.Year())
}

func (s *FeedServiceTestSuite) TestUnauthorizedFetchLeavesFeedEmpty() {
	s.tokens.EXPECT().Token().Return("tok").AnyTimes()
	s.failPages[1] = http.StatusUnauthorized
	events := s.recordEvents()

	err := s.fetchPage()
	var status *rest.StatusError
	s.Require().ErrorAs(err, &status)
	s.Equal(http.StatusUnauthorized, status.Code)

	s.Empty(s.service.Photos())
	s.Equal(0, s.service.LastLoadedPage())
	s.Empty(*events)
}
