package tls

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"
)

// DefaultReloadInterval is how often certificate files are checked for changes.
const DefaultReloadInterval = 5 * time.Minute

// ServerConfig enables HTTPS on the watch endpoints.
type ServerConfig struct {
	// CertFile is the path to the PEM-encoded certificate chain
	CertFile string

	// KeyFile is the path to the PEM-encoded private key
	KeyFile string

	// MinVersion is "1.2" or "1.3" (default)
	MinVersion string

	// ReloadInterval defaults to DefaultReloadInterval
	ReloadInterval time.Duration
}

// Enabled reports whether a certificate was configured.
func (c ServerConfig) Enabled() bool {
	return c.CertFile != "" || c.KeyFile != ""
}

// Validate checks that the certificate and key are given together and the
// version is known.
func (c ServerConfig) Validate() error {
	var errs []error
	if c.CertFile == "" && c.KeyFile != "" {
		errs = append(errs, errors.New("tls: key file given without certificate file"))
	}
	if c.KeyFile == "" && c.CertFile != "" {
		errs = append(errs, errors.New("tls: certificate file given without key file"))
	}
	if _, err := parseTLSVersion(c.MinVersion); err != nil {
		errs = append(errs, err)
	}
	if c.ReloadInterval < 0 {
		errs = append(errs, fmt.Errorf("tls: reload interval must not be negative, got %s", c.ReloadInterval))
	}
	return errors.Join(errs...)
}

// ServerTLSConfig loads the certificate and returns a tls.Config that picks up
// renewed certificates until ctx is done. It returns nil when TLS is not
// enabled.
func (c ServerConfig) ServerTLSConfig(ctx context.Context) (*tls.Config, error) {
	if !c.Enabled() {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	interval := c.ReloadInterval
	if interval == 0 {
		interval = DefaultReloadInterval
	}

	reloader := NewCertificateReloader(c.CertFile, c.KeyFile, interval)
	if err := reloader.Start(ctx); err != nil {
		return nil, fmt.Errorf("tls: failed to load certificate: %w", err)
	}

	version, _ := parseTLSVersion(c.MinVersion)
	// #nosec G402 - MinVersion is limited to TLS 1.2 and 1.3
	return &tls.Config{
		MinVersion:     version,
		GetCertificate: reloader.GetCertificateFunc(),
	}, nil
}

func parseTLSVersion(v string) (uint16, error) {
	switch v {
	case "1.3", "":
		return tls.VersionTLS13, nil
	case "1.2":
		return tls.VersionTLS12, nil
	default:
		return 0, fmt.Errorf("tls: unsupported minimum version %q (want 1.2 or 1.3)", v)
	}
}
