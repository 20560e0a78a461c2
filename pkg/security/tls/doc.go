/*
Package tls serves the "tokentotem watch" endpoints over HTTPS.

A ServerConfig names a PEM certificate and key. ServerTLSConfig loads them
and returns a crypto/tls configuration whose certificate is swapped in place
when the files change, so a renewed certificate is picked up without a
restart.

	cfg := tls.ServerConfig{
		CertFile: "/etc/tokentotem/server.crt",
		KeyFile:  "/etc/tokentotem/server.key",
	}

	tlsConfig, err := cfg.ServerTLSConfig(ctx)
	if err != nil {
		return err
	}
	server.TLSConfig = tlsConfig
	err = server.ListenAndServeTLS("", "")

Only TLS 1.2 and 1.3 are accepted; 1.3 is the default.
*/
package tls
