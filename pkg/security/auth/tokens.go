package auth

import (
	"crypto/subtle"
	"sync"
)

// TokenValidator checks tokens against a fixed set of credentials.
// Comparisons run in constant time per credential.
type TokenValidator struct {
	mu    sync.RWMutex
	creds []*Credential
}

// NewTokenValidator creates a validator over creds. Credentials with an
// empty token are ignored.
func NewTokenValidator(creds ...*Credential) *TokenValidator {
	v := &TokenValidator{}
	for _, c := range creds {
		v.Add(c)
	}
	return v
}

// Validate returns the credential matching token.
func (v *TokenValidator) Validate(token string) (*Credential, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	var match *Credential
	for _, c := range v.creds {
		if subtle.ConstantTimeCompare([]byte(c.Token), []byte(token)) == 1 {
			match = c
		}
	}
	if match == nil {
		return nil, ErrInvalidToken
	}
	if !match.Enabled {
		return nil, ErrDisabledToken
	}
	return match, nil
}

// Add registers a credential, replacing any with the same name.
func (v *TokenValidator) Add(c *Credential) {
	if c == nil || c.Token == "" {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for i, existing := range v.creds {
		if existing.Name == c.Name {
			v.creds[i] = c
			return
		}
	}
	v.creds = append(v.creds, c)
}

// Remove drops the credential with the given name.
func (v *TokenValidator) Remove(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, existing := range v.creds {
		if existing.Name == name {
			v.creds = append(v.creds[:i], v.creds[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered credentials.
func (v *TokenValidator) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.creds)
}
