package domain

// TokenVerifier validates a bearer token and returns the authenticated user ID.
// Token issuance and user management belong to the surrounding application.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
