package costs

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate builds a Snapshot from the enabled providers' live outcomes and
// the previous snapshot's per-provider results. Providers absent from enabled
// are ignored even when live or previous mention them; an enabled provider
// with no outcome is omitted as well.
func Aggregate(enabled []string, live map[string]Outcome, previous map[string]ProviderResult, now time.Time) Snapshot {
	results := make(map[string]ProviderResult, len(enabled))

	for _, id := range enabled {
		outcome, ok := live[id]
		if !ok {
			continue
		}

		if outcome.OK() {
			c := outcome.Costs()
			results[id] = ProviderResult{
				Today:       c.Today,
				MonthToDate: c.MonthToDate,
			}
			continue
		}

		message := outcome.Err().Error()
		if prior, ok := previous[id]; ok {
			prior.Stale = true
			prior.Error = message
			results[id] = prior
			continue
		}

		results[id] = ProviderResult{
			Today:       decimal.Zero,
			MonthToDate: decimal.Zero,
			Error:       message,
		}
	}

	return newSnapshot(results, now)
}

func newSnapshot(results map[string]ProviderResult, now time.Time) Snapshot {
	totalToday := decimal.Zero
	totalMTD := decimal.Zero
	for _, r := range results {
		totalToday = totalToday.Add(r.Today)
		totalMTD = totalMTD.Add(r.MonthToDate)
	}

	return Snapshot{
		Providers:        results,
		TotalToday:       totalToday,
		TotalMonthToDate: totalMTD,
		LastUpdated:      now.UTC(),
	}
}
