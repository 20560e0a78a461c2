/*
Package security groups the credential handling of TokenTotem.

  - secrets: the provider admin keys and the metrics token, resolved from
    the environment, a JSON secrets file or the macOS keychain
  - auth: bearer-token middleware in front of the "tokentotem watch" endpoints
  - tls: HTTPS for those endpoints with in-place certificate renewal

Secrets are never logged. The logging package redacts attributes whose
keys look like credentials, and the secrets package logs keys by name only.
*/
package security
