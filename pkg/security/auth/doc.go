/*
Package auth guards the HTTP endpoints served by "tokentotem watch" with a
bearer token.

The token is read from the secret chain under secrets.MetricsTokenKey
(TOKENTOTEM_METRICS_TOKEN in the environment). When no token is configured
the endpoints are served without authentication.

# Basic Usage

	validator := auth.NewTokenValidator(&auth.Credential{
		Name:    "metrics",
		Token:   token,
		Enabled: true,
	})

	mw := auth.NewMiddleware(validator, auth.DefaultSources, "/healthz")
	server.Handler = mw.Handle(mux)

Clients send the token in the Authorization header:

	curl -H "Authorization: Bearer $TOKENTOTEM_METRICS_TOKEN" http://localhost:9464/metrics

Liveness probes usually cannot send headers, so callers list such paths as
exempt.
*/
package auth
