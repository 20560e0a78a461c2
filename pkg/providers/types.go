package providers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Provider ids.
const (
	OpenAI    = "openai"
	Anthropic = "anthropic"
)

// UserAgent is sent with every cost request.
const UserAgent = "TokenTotem/0.1"

// DefaultTimeout bounds a single cost request.
const DefaultTimeout = 20 * time.Second

// Window is the reporting interval [Start, End]. End is the caller's "now".
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthToDate returns the window from the start of now's UTC calendar month
// up to now.
func MonthToDate(now time.Time) Window {
	n := now.UTC()
	return Window{
		Start: time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   n,
	}
}

// IsToday reports whether t falls on the same UTC date as the window end.
func (w Window) IsToday(t time.Time) bool {
	ty, tm, td := t.UTC().Date()
	ey, em, ed := w.End.UTC().Date()
	return ty == ey && tm == em && td == ed
}

// Filters narrows a cost report. Providers ignore filters they do not support.
type Filters struct {
	// ProjectIDs restricts OpenAI costs to these projects. Empty means all.
	ProjectIDs []string
}

// Costs is one provider's normalized spend in major currency units.
type Costs struct {
	Today       decimal.Decimal
	MonthToDate decimal.Decimal
}

// Fetcher is implemented by each provider cost client.
type Fetcher interface {
	// Name returns the provider id.
	Name() string

	// FetchCosts returns the spend within w. Failures are *FetchError.
	FetchCosts(ctx context.Context, secret string, w Window, f Filters) (Costs, error)
}
