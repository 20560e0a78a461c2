package render

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"tokentotem/tokentotem/pkg/budget"
	"tokentotem/tokentotem/pkg/money"
	"tokentotem/tokentotem/pkg/providers"
	"tokentotem/tokentotem/pkg/refresh"
)

// AppName titles the error block.
const AppName = "TokenTotem"

const separator = "---"

var providerTitles = map[string]string{
	providers.OpenAI:    "OpenAI",
	providers.Anthropic: "Anthropic",
}

// Action is a dropdown item that re-invokes the executable with
// "--action <Name>".
type Action struct {
	Label   string
	Name    string
	Refresh bool
}

// Actions are the configuration items of the dropdown, in display order.
var Actions = []Action{
	{Label: "Set OpenAI admin key...", Name: "set_openai_key", Refresh: true},
	{Label: "Set Anthropic admin key...", Name: "set_anthropic_key", Refresh: true},
	{Label: "Set monthly budget...", Name: "set_budget", Refresh: true},
	{Label: "Set warning thresholds...", Name: "set_thresholds", Refresh: true},
	{Label: "Open config file...", Name: "open_config", Refresh: false},
}

// Options controls StatusBar.
type Options struct {
	// Executable is the absolute path the action items invoke.
	Executable string
}

// Money formats an amount for display.
func Money(d decimal.Decimal) string {
	return money.Format(d)
}

// StatusBar writes the plugin output for report.
func StatusBar(w io.Writer, report *refresh.Report, opts Options) error {
	bw := bufio.NewWriter(w)
	snap := report.Snapshot

	fmt.Fprintf(bw, "Today %s • MTD %s\n", Money(snap.TotalToday), Money(snap.TotalMonthToDate))
	fmt.Fprintln(bw, separator)

	for _, id := range refresh.ProviderOrder {
		result, ok := snap.Providers[id]
		if !ok {
			continue
		}
		fmt.Fprintln(bw, providerTitles[id])
		fmt.Fprintf(bw, "Today (UTC): %s\n", Money(result.Today))
		fmt.Fprintf(bw, "Month-to-date (UTC): %s\n", Money(result.MonthToDate))
		fmt.Fprintln(bw, "Scope: Org-wide spend (provider cost APIs are org-level)")
		if result.Stale {
			fmt.Fprintln(bw, "Status: Stale (using cached data)")
		}
		if result.Error != "" {
			fmt.Fprintf(bw, "Error: %s\n", result.Error)
		}
		fmt.Fprintln(bw, separator)
	}

	writeBudgetLine(bw, report)
	fmt.Fprintf(bw, "Last updated: %s\n", report.Now.UTC().Format(time.RFC3339))
	fmt.Fprintln(bw, separator)

	fmt.Fprintln(bw, "Refresh now | refresh=true")
	fmt.Fprintln(bw, separator)

	for _, a := range Actions {
		fmt.Fprintf(bw, "%s | bash=\"%s\" param1=--action param2=%s terminal=false refresh=%t\n",
			a.Label, opts.Executable, a.Name, a.Refresh)
	}

	return bw.Flush()
}

// writeBudgetLine prints the budget usage. A missing, zero or negative
// budget prints "Budget: Not set".
func writeBudgetLine(w io.Writer, report *refresh.Report) {
	cfg := report.Config
	if cfg == nil || !cfg.HasBudget() {
		fmt.Fprintln(w, "Budget: Not set")
		return
	}

	monthly := cfg.Budget()
	usage, ok := budget.Usage(report.Snapshot.TotalMonthToDate, monthly)
	if !ok {
		fmt.Fprintln(w, "Budget: Not set")
		return
	}
	fmt.Fprintf(w, "Budget: %s / %s (%s%%)\n",
		Money(report.Snapshot.TotalMonthToDate), Money(monthly),
		usage.Shift(2).StringFixed(1))
}

// ErrorBlock writes the output shown when a pass cannot run at all.
func ErrorBlock(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "%s: Error\n%s\n%v\n", AppName, separator, err)
	return werr
}
