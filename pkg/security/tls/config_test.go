package tls

import (
	"context"
	"crypto/tls"
	"strings"
	"testing"
	"time"
)

// ===== ServerConfig Tests =====

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  ServerConfig
		wantErr string
	}{
		{name: "disabled", config: ServerConfig{}},
		{name: "cert and key", config: ServerConfig{CertFile: "a.crt", KeyFile: "a.key", MinVersion: "1.2"}},
		{name: "cert only", config: ServerConfig{CertFile: "a.crt"}, wantErr: "without key file"},
		{name: "key only", config: ServerConfig{KeyFile: "a.key"}, wantErr: "without certificate file"},
		{name: "tls 1.1", config: ServerConfig{MinVersion: "1.1"}, wantErr: "unsupported minimum version"},
		{name: "negative interval", config: ServerConfig{ReloadInterval: -time.Second}, wantErr: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_ServerTLSConfig_Disabled(t *testing.T) {
	cfg, err := ServerConfig{}.ServerTLSConfig(context.Background())
	if err != nil {
		t.Fatalf("ServerTLSConfig() error: %v", err)
	}
	if cfg != nil {
		t.Errorf("ServerTLSConfig() = %+v, want nil", cfg)
	}
}

func TestServerConfig_ServerTLSConfig(t *testing.T) {
	certFile, keyFile := validCert(t, t.TempDir(), "tokentotem.local")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tests := []struct {
		minVersion string
		want       uint16
	}{
		{"", tls.VersionTLS13},
		{"1.3", tls.VersionTLS13},
		{"1.2", tls.VersionTLS12},
	}

	for _, tt := range tests {
		t.Run("min "+tt.minVersion, func(t *testing.T) {
			cfg, err := ServerConfig{CertFile: certFile, KeyFile: keyFile, MinVersion: tt.minVersion}.ServerTLSConfig(ctx)
			if err != nil {
				t.Fatalf("ServerTLSConfig() error: %v", err)
			}
			if cfg.MinVersion != tt.want {
				t.Errorf("MinVersion = %x, want %x", cfg.MinVersion, tt.want)
			}
			cert, err := cfg.GetCertificate(&tls.ClientHelloInfo{})
			if err != nil || cert == nil {
				t.Fatalf("GetCertificate() = %v, %v", cert, err)
			}
		})
	}
}

func TestServerConfig_ServerTLSConfig_MissingFiles(t *testing.T) {
	_, err := ServerConfig{CertFile: "missing.crt", KeyFile: "missing.key"}.ServerTLSConfig(context.Background())
	if err == nil {
		t.Fatal("ServerTLSConfig() expected error for missing files")
	}
}
