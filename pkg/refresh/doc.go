// Package refresh runs one TokenTotem pass: load configuration and cache,
// fetch every enabled provider, aggregate with the stale fallback, evaluate
// budget thresholds, notify, and persist the new cache.
//
// The Report returned by Run is what the render package draws. Run itself
// never writes to stdout.
package refresh
