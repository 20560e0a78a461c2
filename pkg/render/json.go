package render

import (
	"encoding/json"
	"io"
	"time"

	"tokentotem/tokentotem/pkg/budget"
	"tokentotem/tokentotem/pkg/refresh"
)

type providerJSON struct {
	ID          string `json:"id"`
	Today       string `json:"today"`
	MonthToDate string `json:"mtd"`
	Stale       bool   `json:"stale"`
	Error       string `json:"error,omitempty"`
}

type budgetJSON struct {
	MonthlyUSD   *float64         `json:"monthly_usd"`
	UsagePercent *string          `json:"usage_percent,omitempty"`
	Thresholds   []float64        `json:"warning_thresholds"`
	Watermark    budget.Watermark `json:"watermark"`
	Event        *budget.Event    `json:"event,omitempty"`
}

type reportJSON struct {
	Today       string         `json:"today"`
	MonthToDate string         `json:"mtd"`
	Providers   []providerJSON `json:"providers"`
	Budget      budgetJSON     `json:"budget"`
	LastUpdated string         `json:"last_updated"`
	RunID       string         `json:"run_id,omitempty"`
}

// JSON writes report as an indented JSON document. Amounts are strings with
// full precision.
func JSON(w io.Writer, report *refresh.Report) error {
	snap := report.Snapshot
	out := reportJSON{
		Today:       snap.TotalToday.String(),
		MonthToDate: snap.TotalMonthToDate.String(),
		Providers:   []providerJSON{},
		LastUpdated: report.Now.UTC().Format(time.RFC3339),
		RunID:       report.RunID,
		Budget: budgetJSON{
			Thresholds: []float64{},
			Watermark:  report.Watermark,
			Event:      report.Event,
		},
	}

	for _, id := range refresh.ProviderOrder {
		r, ok := snap.Providers[id]
		if !ok {
			continue
		}
		out.Providers = append(out.Providers, providerJSON{
			ID:          id,
			Today:       r.Today.String(),
			MonthToDate: r.MonthToDate.String(),
			Stale:       r.Stale,
			Error:       r.Error,
		})
	}

	if cfg := report.Config; cfg != nil {
		out.Budget.MonthlyUSD = cfg.MonthlyBudgetUSD
		if len(cfg.WarningThresholds) > 0 {
			out.Budget.Thresholds = cfg.WarningThresholds
		}
		if usage, ok := budget.Usage(snap.TotalMonthToDate, cfg.Budget()); ok {
			pct := usage.Shift(2).StringFixed(1)
			out.Budget.UsagePercent = &pct
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
