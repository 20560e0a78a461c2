package costs

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"tokentotem/tokentotem/pkg/providers"
)

// ProviderResult is one provider's spend as reported to the user.
type ProviderResult struct {
	Today       decimal.Decimal `json:"today"`
	MonthToDate decimal.Decimal `json:"mtd"`

	// Stale is set when the values were carried over from a previous run.
	Stale bool `json:"stale,omitempty"`

	// Error is the latest fetch failure, if any.
	Error string `json:"error,omitempty"`
}

// Snapshot is the output of one aggregation.
type Snapshot struct {
	Providers        map[string]ProviderResult `json:"providers"`
	TotalToday       decimal.Decimal           `json:"total_today"`
	TotalMonthToDate decimal.Decimal           `json:"total_mtd"`
	LastUpdated      time.Time                 `json:"last_updated"`
}

// Outcome is the result of fetching one provider: either costs or a
// *providers.FetchError, never both.
type Outcome struct {
	costs providers.Costs
	err   *providers.FetchError
}

// Ok wraps a successful fetch.
func Ok(c providers.Costs) Outcome {
	return Outcome{costs: c}
}

// Failed wraps a failed fetch. Errors that are not a *providers.FetchError
// are wrapped in one without an HTTP status.
func Failed(provider string, err error) Outcome {
	var fetchErr *providers.FetchError
	if !errors.As(err, &fetchErr) {
		msg := "unknown error"
		if err != nil {
			msg = err.Error()
		}
		fetchErr = &providers.FetchError{
			Provider: provider,
			Kind:     providers.KindTransport,
			Message:  msg,
			Cause:    err,
		}
	}
	return Outcome{err: fetchErr}
}

// OK reports whether the fetch succeeded.
func (o Outcome) OK() bool {
	return o.err == nil
}

// Costs returns the fetched costs; zero when the fetch failed.
func (o Outcome) Costs() providers.Costs {
	return o.costs
}

// Err returns the fetch failure, or nil.
func (o Outcome) Err() *providers.FetchError {
	return o.err
}
