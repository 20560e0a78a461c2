package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckThresholds returns the updated watermark and, if a threshold not yet
// notified has been reached, the event for the highest such threshold.
//
// sortedThresholds must be ascending. It is a no-op when budget is not
// positive or there are no thresholds. The returned event has no ID or time;
// Notifier.Evaluate fills those in.
func CheckThresholds(totalMonthToDate, budget decimal.Decimal, sortedThresholds []float64, wm Watermark) (Watermark, *Event) {
	if len(sortedThresholds) == 0 {
		return wm, nil
	}
	percent, ok := Usage(totalMonthToDate, budget)
	if !ok {
		return wm, nil
	}

	crossed := -1.0
	for _, t := range sortedThresholds {
		if t > wm.LastNotifiedThreshold && percent.GreaterThanOrEqual(decimal.NewFromFloat(t)) {
			crossed = t
		}
	}
	if crossed < 0 {
		return wm, nil
	}

	next := wm
	next.LastNotifiedThreshold = crossed
	return next, &Event{
		Threshold:        crossed,
		TotalMonthToDate: totalMonthToDate,
		Budget:           budget,
		Month:            wm.Month,
	}
}

// Notifier wraps CheckThresholds with month rollover and event identity.
type Notifier struct {
	newID func() string
}

// NewNotifier creates a notifier that assigns random UUIDs to events.
func NewNotifier() *Notifier {
	return &Notifier{newID: uuid.NewString}
}

// Evaluate resets the watermark when now is in a later UTC month than the one
// it was recorded in, then checks thresholds. The returned watermark is
// always stamped with now's month.
func (n *Notifier) Evaluate(ctx context.Context, now time.Time, totalMonthToDate, budget decimal.Decimal, sortedThresholds []float64, wm Watermark) (Watermark, *Event) {
	month := now.UTC().Format(MonthLayout)

	switch {
	case wm.Month == "":
		wm.Month = month
	case wm.Month != month:
		slog.InfoContext(ctx, "budget.watermark.reset",
			"previous_month", wm.Month,
			"previous_threshold", wm.LastNotifiedThreshold,
			"month", month,
		)
		wm = Watermark{Month: month}
	}

	next, event := CheckThresholds(totalMonthToDate, budget, sortedThresholds, wm)
	if event == nil {
		return next, nil
	}

	event.ID = n.newID()
	event.Month = month
	event.At = now.UTC()

	slog.InfoContext(ctx, "budget.threshold.crossed",
		"threshold", event.Threshold,
		"total_mtd", totalMonthToDate.StringFixed(2),
		"budget", budget.StringFixed(2),
		"previous_threshold", wm.LastNotifiedThreshold,
	)
	return next, event
}
