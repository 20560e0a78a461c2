// Package state persists the user configuration and the last cost snapshot
// between invocations.
//
// Two stores are involved: a ConfigStore for the user-editable document and
// a CacheStore for the snapshot and budget watermark written after every
// refresh. FileStore keeps both as JSON files under the XDG config and cache
// directories. SQLiteCache keeps the snapshot in a single-row table instead.
//
// Loading never fails. A missing or unreadable cache is an empty cache, and a
// missing or unreadable config is the default config.
package state
