package auth

import (
	"errors"
	"sync"
	"testing"
)

// ===== TokenValidator Tests =====

func TestTokenValidator_Validate(t *testing.T) {
	validator := NewTokenValidator(
		&Credential{Name: "metrics", Token: "tt-metrics-123", Enabled: true},
		&Credential{Name: "old", Token: "tt-old-456", Enabled: false},
		&Credential{Name: "blank", Token: "", Enabled: true},
	)

	tests := []struct {
		name     string
		token    string
		wantName string
		wantErr  error
	}{
		{name: "valid token", token: "tt-metrics-123", wantName: "metrics"},
		{name: "disabled token", token: "tt-old-456", wantErr: ErrDisabledToken},
		{name: "unknown token", token: "tt-nope", wantErr: ErrInvalidToken},
		{name: "prefix of valid token", token: "tt-metrics", wantErr: ErrInvalidToken},
		{name: "empty token", token: "", wantErr: ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := validator.Validate(tt.token)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if cred.Name != tt.wantName {
				t.Errorf("Validate() name = %q, want %q", cred.Name, tt.wantName)
			}
		})
	}
}

func TestTokenValidator_IgnoresEmptyTokens(t *testing.T) {
	validator := NewTokenValidator(&Credential{Name: "blank", Enabled: true}, nil)
	if validator.Len() != 0 {
		t.Errorf("Len() = %d, want 0", validator.Len())
	}
}

func TestTokenValidator_AddReplacesByName(t *testing.T) {
	validator := NewTokenValidator(&Credential{Name: "metrics", Token: "first", Enabled: true})
	validator.Add(&Credential{Name: "metrics", Token: "second", Enabled: true})

	if validator.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", validator.Len())
	}
	if _, err := validator.Validate("first"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("old token error = %v, want ErrInvalidToken", err)
	}
	if _, err := validator.Validate("second"); err != nil {
		t.Errorf("new token error = %v", err)
	}
}

func TestTokenValidator_Remove(t *testing.T) {
	validator := NewTokenValidator(
		&Credential{Name: "a", Token: "token-a", Enabled: true},
		&Credential{Name: "b", Token: "token-b", Enabled: true},
	)
	validator.Remove("a")
	validator.Remove("missing")

	if validator.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", validator.Len())
	}
	if _, err := validator.Validate("token-a"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("removed token error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenValidator_Concurrent(t *testing.T) {
	validator := NewTokenValidator(&Credential{Name: "metrics", Token: "tok", Enabled: true})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = validator.Validate("tok")
		}()
		go func() {
			defer wg.Done()
			validator.Add(&Credential{Name: "metrics", Token: "tok", Enabled: true})
		}()
	}
	wg.Wait()
}
