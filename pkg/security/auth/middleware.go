package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenSource says where a request carries its token.
type TokenSource struct {
	Type   string // header, query
	Name   string // header name or query param
	Scheme string // "Bearer", etc. (optional)
}

// DefaultSources accepts "Authorization: Bearer <token>" only.
var DefaultSources = []TokenSource{
	{Type: "header", Name: "Authorization", Scheme: "Bearer"},
}

// Middleware rejects requests without a valid token.
type Middleware struct {
	store   TokenStore
	sources []TokenSource
	exempt  map[string]bool
}

// NewMiddleware creates the middleware. Requests whose path is listed in
// exempt pass through unauthenticated.
func NewMiddleware(store TokenStore, sources []TokenSource, exempt ...string) *Middleware {
	if len(sources) == 0 {
		sources = DefaultSources
	}
	m := &Middleware{
		store:   store,
		sources: sources,
		exempt:  make(map[string]bool, len(exempt)),
	}
	for _, path := range exempt {
		m.exempt[path] = true
	}
	return m
}

// Handle wraps next with token authentication.
func (m *Middleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exempt[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		cred, err := m.store.Validate(m.extractToken(r))
		if err != nil {
			slog.Warn("auth.rejected",
				"error", err,
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="tokentotem"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		slog.Debug("auth.accepted",
			"credential", cred.Name,
			"path", r.URL.Path,
		)

		ctx := context.WithValue(r.Context(), credentialKey, cred)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) extractToken(r *http.Request) string {
	for _, source := range m.sources {
		switch source.Type {
		case "header":
			value := strings.TrimSpace(r.Header.Get(source.Name))
			if value == "" {
				continue
			}
			if source.Scheme == "" {
				return value
			}
			scheme, token, ok := strings.Cut(value, " ")
			if ok && strings.EqualFold(scheme, source.Scheme) {
				return strings.TrimSpace(token)
			}

		case "query":
			if value := r.URL.Query().Get(source.Name); value != "" {
				return value
			}
		}
	}
	return ""
}

type contextKey string

// #nosec G101 - This is a context key constant, not a credential
const credentialKey contextKey = "auth_credential"

// CredentialFromContext returns the credential that authenticated the request.
func CredentialFromContext(ctx context.Context) (*Credential, bool) {
	cred, ok := ctx.Value(credentialKey).(*Credential)
	return cred, ok
}
