package auth

import "errors"

var (
	// ErrMissingToken is returned when a request carries no token.
	ErrMissingToken = errors.New("no bearer token found")

	// ErrInvalidToken is returned when a token matches no credential.
	ErrInvalidToken = errors.New("invalid token")

	// ErrDisabledToken is returned when the matching credential is disabled.
	ErrDisabledToken = errors.New("token disabled")
)

// Credential is a token allowed to read the watch endpoints.
type Credential struct {
	// Name identifies the credential in logs, never the token itself
	Name    string
	Token   string
	Enabled bool
}

// TokenStore validates bearer tokens.
type TokenStore interface {
	Validate(token string) (*Credential, error)
}
