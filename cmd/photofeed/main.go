package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"photofeed/internal/authurl"
	"photofeed/internal/config"
	"photofeed/internal/dispatch"
	"photofeed/internal/domain"
	"photofeed/internal/feed"
	"photofeed/internal/oauth"
	"photofeed/internal/profile"
	"photofeed/internal/rest"
	"photofeed/internal/session"
	"photofeed/internal/tokenstore"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	store, err := tokenstore.Open(cfg.Storage.TokenPath)
	if err != nil {
		logger.Error("failed to open token store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	loop := dispatch.NewLoop()
	defer loop.Close()

	client := rest.NewClient(cfg.API.Timeout, loop, logger)

	// Initialize services
	oauthService := oauth.NewService(client, loop, store, oauth.Config{
		TokenURL:     cfg.Auth.TokenURL,
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
		RedirectURI:  cfg.Auth.RedirectURI,
	}, logger)

	feedService := feed.NewService(client, loop, store, feed.Config{
		BaseURL:  cfg.API.BaseURL,
		PageSize: cfg.API.PageSize,
	}, logger)

	profileService := profile.NewService(client, loop, cfg.API.BaseURL, logger)

	app := &app{
		cfg:     cfg,
		store:   store,
		oauth:   oauthService,
		feed:    feedService,
		profile: profileService,
		stdin:   bufio.NewScanner(os.Stdin),
	}
	app.logout = session.NewLogoutService(noopWebCleaner{}, feedService, profileService, store, app, logger)

	feedService.Subscribe(func(change domain.FeedChange) {
		for i := change.OldCount; i < change.NewCount; i++ {
			p := change.Photos[i]
			fmt.Printf("%3d  %-12s %dx%d  liked=%-5v %s\n", i, p.ID, p.Width, p.Height, p.Liked, p.Description)
		}
	})

	app.run()
}

type app struct {
	cfg     *config.Config
	store   *tokenstore.Store
	oauth   *oauth.Service
	feed    *feed.Service
	profile *profile.Service
	logout  *session.LogoutService
	stdin   *bufio.Scanner
}

func (a *app) run() {
	if a.store.Token() == "" && !a.authenticate() {
		return
	}

	fmt.Println("commands: next, like <n>, unlike <n>, profile, logout, quit")
	for {
		fmt.Print("> ")
		if !a.stdin.Scan() {
			return
		}
		line := strings.Fields(strings.TrimSpace(a.stdin.Text()))
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case "next":
			a.fetchNext()
		case "like", "unlike":
			if len(line) < 2 {
				fmt.Printf("usage: %s <n>\n", line[0])
				continue
			}
			a.setLike(line[1], line[0] == "like")
		case "profile":
			a.showProfile()
		case "logout":
			a.logout.Logout()
			if !a.authenticate() {
				return
			}
		case "quit":
			return
		default:
			fmt.Println("commands: next, like <n>, unlike <n>, profile, logout, quit")
		}
	}
}

// authenticate walks the OAuth code flow: print the authorize URL, read
// the pasted callback URL, exchange the code. Returns false when stdin
// closes.
func (a *app) authenticate() bool {
	authURL, err := authurl.AuthorizeURL(authurl.Config{
		AuthorizeURL: a.cfg.Auth.AuthorizeURL,
		ClientID:     a.cfg.Auth.ClientID,
		RedirectURI:  a.cfg.Auth.RedirectURI,
		Scope:        a.cfg.Auth.Scope,
	})
	if err != nil {
		fmt.Println("bad authorize url:", err)
		return false
	}

	fmt.Println("open this URL in a browser and authorize:")
	fmt.Println(" ", authURL)

	for {
		fmt.Print("paste the callback URL: ")
		if !a.stdin.Scan() {
			return false
		}
		callback, err := url.Parse(strings.TrimSpace(a.stdin.Text()))
		if err != nil {
			fmt.Println("not a URL:", err)
			continue
		}
		code, ok := authurl.Code(callback)
		if !ok {
			fmt.Println("no authorization code in that URL, try again")
			continue
		}

		done := make(chan error, 1)
		a.oauth.ExchangeCode(code, func(_ string, err error) {
			done <- err
		})
		if err := <-done; err != nil {
			fmt.Println("token exchange failed:", err)
			continue
		}
		fmt.Println("authorized")
		return true
	}
}

func (a *app) fetchNext() {
	done := make(chan error, 1)
	a.feed.FetchNextPage(func(err error) {
		done <- err
	})
	if err := <-done; err != nil && !rest.IsCancelled(err) {
		fmt.Println("fetch failed:", err)
	}
}

// setLike drives the photo at index arg toward the wanted liked state.
// The underlying operation is a toggle, so an already-satisfied request
// is reported instead of flipped back.
func (a *app) setLike(arg string, want bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("usage: like|unlike <n>")
		return
	}
	photos := a.feed.Photos()
	if n < 0 || n >= len(photos) {
		fmt.Println("no photo at index", n)
		return
	}
	p := photos[n]
	if p.Liked == want {
		fmt.Printf("%s already liked=%v\n", p.ID, p.Liked)
		return
	}

	done := make(chan struct{})
	a.feed.ToggleLike(p.ID, p.Liked, func(liked bool, err error) {
		defer close(done)
		if err != nil {
			fmt.Println("toggle like failed:", err)
			return
		}
		fmt.Printf("%s liked=%v\n", p.ID, liked)
	})
	<-done
}

func (a *app) showProfile() {
	done := make(chan struct{})
	a.profile.FetchProfile(a.store.Token(), func(p domain.Profile, err error) {
		defer close(done)
		if err != nil {
			fmt.Println("fetch profile failed:", err)
			return
		}
		fmt.Printf("%s (%s)\n", p.Name, p.LoginName)
		if p.Bio != "" {
			fmt.Println(p.Bio)
		}
	})
	<-done
}

// ShowEntryPoint implements session.EntryPointRouter.
func (a *app) ShowEntryPoint() {
	fmt.Println("session ended")
}

// noopWebCleaner stands in for the platform web-storage collaborator; a
// terminal client has no browser session of its own to wipe.
type noopWebCleaner struct{}

func (noopWebCleaner) CleanWebsiteData() error { return nil }

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
