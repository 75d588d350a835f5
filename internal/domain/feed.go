package domain

// FeedChange is broadcast by the feed service after every visible mutation.
// It carries a snapshot of the feed so observers never have to read back
// into the service from inside a callback.
type FeedChange struct {
	Photos         []Photo
	LastLoadedPage int
	OldCount       int
	NewCount       int
}
