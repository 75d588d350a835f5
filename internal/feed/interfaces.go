package feed

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// TokenProvider supplies the bearer token, or "" when the session has no
// credential. A missing token is a precondition failure, not an error:
// the service declines to fetch.
type TokenProvider interface {
	Token() string
}
