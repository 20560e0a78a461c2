package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tokentotem/tokentotem/pkg/costs"
)

// ErrNoRefresh is returned by FreshnessCheck before the first refresh.
var ErrNoRefresh = errors.New("no refresh completed yet")

// FreshnessCheck fails when the last refresh is older than maxAge.
func FreshnessCheck(lastRefresh func() time.Time, maxAge time.Duration, now func() time.Time) CheckFunc {
	return func(ctx context.Context) error {
		last := lastRefresh()
		if last.IsZero() {
			return ErrNoRefresh
		}
		if age := now().Sub(last); age > maxAge {
			return fmt.Errorf("last refresh %s ago exceeds %s", age.Round(time.Second), maxAge)
		}
		return nil
	}
}

// ProvidersCheck fails when any provider in the latest snapshot is stale or
// reported an error.
func ProvidersCheck(latest func() (costs.Snapshot, bool)) CheckFunc {
	return func(ctx context.Context) error {
		snap, ok := latest()
		if !ok {
			return ErrNoRefresh
		}

		var failing []string
		for id, r := range snap.Providers {
			if r.Stale || r.Error != "" {
				failing = append(failing, fmt.Sprintf("%s: %s", id, r.Error))
			}
		}
		if len(failing) == 0 {
			return nil
		}
		sort.Strings(failing)
		return errors.New(strings.Join(failing, "; "))
	}
}
