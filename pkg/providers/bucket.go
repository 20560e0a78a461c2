package providers

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Bucket is one daily cost entry after decoding.
type Bucket struct {
	// Start is the bucket start; zero when the provider omitted it or it
	// could not be parsed.
	Start time.Time

	// Total is the bucket's spend in major units.
	Total decimal.Decimal
}

// Summarize folds buckets into Costs for window w. Every bucket counts toward
// MonthToDate; only buckets dated today count toward Today.
func Summarize(buckets []Bucket, w Window) Costs {
	today := decimal.Zero
	mtd := decimal.Zero

	for _, b := range buckets {
		mtd = mtd.Add(b.Total)
		if !b.Start.IsZero() && w.IsToday(b.Start) {
			today = today.Add(b.Total)
		}
	}

	return Costs{Today: today, MonthToDate: mtd}
}

// Objects returns the JSON objects in a decoded list. Entries that are not
// objects are skipped, and a value that is not a list yields none.
func Objects(v interface{}) []map[string]interface{} {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	objects := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]interface{}); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}

// ParseAmount converts a decoded JSON value to a decimal. Numbers and numeric
// strings are accepted; anything else, including nil, is zero.
func ParseAmount(v interface{}) decimal.Decimal {
	switch x := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// ParseUnixTime converts a decoded JSON unix timestamp (seconds) to UTC.
func ParseUnixTime(v interface{}) (time.Time, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return time.Unix(i, 0).UTC(), true
		}
		if f, err := x.Float64(); err == nil {
			return unixFloat(f)
		}
	case float64:
		return unixFloat(x)
	case int64:
		return time.Unix(x, 0).UTC(), true
	}
	return time.Time{}, false
}

func unixFloat(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}

// ParseTimestamp parses an RFC 3339 timestamp ("Z" or numeric offset).
func ParseTimestamp(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// FormatTimestamp renders t as RFC 3339 in UTC with a "Z" suffix.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
