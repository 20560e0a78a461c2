// Package budget decides when a monthly budget warning should be shown.
//
// # Thresholds
//
// Thresholds are fractions of the monthly budget (0.5 = 50%). CheckThresholds
// compares month-to-date spend against the sorted thresholds and the
// Watermark, the highest threshold already notified this month. Only the
// highest newly crossed threshold fires; lower ones crossed in the same step
// are absorbed. Calling it again with the same total never fires twice, and
// the watermark never decreases.
//
// # Month Rollover
//
// The watermark records the UTC month it belongs to. Notifier.Evaluate resets
// it to zero when a new month starts, so every threshold can fire once per
// month. A watermark without a month (written by an older version) is adopted
// as the current month rather than reset.
//
// # Usage
//
//	n := budget.NewNotifier()
//	wm, event := n.Evaluate(ctx, now, snapshot.TotalMonthToDate, budgetUSD, cfg.WarningThresholds, cache.Budget)
//	if event != nil {
//	    desktop.Notify(ctx, "TokenTotem", event.Message())
//	}
package budget
