package domain

// Profile is the authenticated user's account summary.
type Profile struct {
	Username  string
	Name      string
	LoginName string // "@username"
	Bio       string
}
