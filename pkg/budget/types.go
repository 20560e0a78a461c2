package budget

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tokentotem/tokentotem/pkg/money"
)

// MonthLayout formats the month a watermark belongs to.
const MonthLayout = "2006-01"

// Watermark is the highest threshold already notified in Month.
type Watermark struct {
	// LastNotifiedThreshold is 0 when nothing has been notified.
	LastNotifiedThreshold float64 `json:"last_notified_threshold,omitempty"`

	// Month is the UTC month ("2006-01") the threshold was notified in.
	Month string `json:"month,omitempty"`
}

// Event is a threshold crossing to show to the user.
type Event struct {
	ID               string          `json:"id"`
	Threshold        float64         `json:"threshold"`
	TotalMonthToDate decimal.Decimal `json:"total_mtd"`
	Budget           decimal.Decimal `json:"budget"`
	Month            string          `json:"month,omitempty"`
	At               time.Time       `json:"at,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// Percent returns the threshold as a whole percentage, truncated.
func (e *Event) Percent() int64 {
	return decimal.NewFromFloat(e.Threshold).Mul(hundred).IntPart()
}

// Message is the notification body.
func (e *Event) Message() string {
	return fmt.Sprintf("Monthly spend hit %d%% of budget (%s / %s).",
		e.Percent(), money.Format(e.TotalMonthToDate), money.Format(e.Budget))
}

// Usage returns spend as a fraction of budget. ok is false when the budget is
// not positive.
func Usage(totalMonthToDate, budget decimal.Decimal) (fraction decimal.Decimal, ok bool) {
	if !budget.IsPositive() {
		return decimal.Zero, false
	}
	return totalMonthToDate.Div(budget), true
}
