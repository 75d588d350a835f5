package session

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// FeedResetter clears the photo feed.
type FeedResetter interface {
	Reset()
}

// ProfileResetter clears the cached profile.
type ProfileResetter interface {
	Reset()
}

// TokenClearer removes the stored bearer token.
type TokenClearer interface {
	Clear() error
}

// WebDataCleaner wipes provider cookies and site data so the next login
// starts from a clean browser session. Implemented by the platform
// web-storage collaborator.
type WebDataCleaner interface {
	CleanWebsiteData() error
}

// EntryPointRouter returns the presentation layer to the unauthenticated
// entry point.
type EntryPointRouter interface {
	ShowEntryPoint()
}
