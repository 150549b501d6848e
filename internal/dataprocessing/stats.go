package dataprocessing

import (
	"math"
	"time"

	"srdash/pkg/contracts/domain"
)

// MerchantStats holds the derived metrics for one merchant, or for the
// whole table when no merchant filter was applied. It is recomputed on
// demand and never cached.
type MerchantStats struct {
	MerchantID    string                     `json:"merchant_id,omitempty"`
	TotalTxns     int                        `json:"total_txns"`
	SuccessTxns   int                        `json:"success_txns"`
	SuccessRate   float64                    `json:"success_rate"`
	TotalAmount   float64                    `json:"total_amount"`
	SuccessAmount float64                    `json:"success_amount"`
	StateCounts   map[domain.TxState]int     `json:"state_counts"`
	StateAmounts  map[domain.TxState]float64 `json:"state_amounts"`
}

// ComputeMerchantStats computes statistics over the rows whose merchant ID
// matches exactly (case-sensitive). A merchant with zero rows yields zero
// counts and a 0 success rate, never an error.
func ComputeMerchantStats(t *domain.Table, merchantID string) MerchantStats {
	stats := computeStats(t, func(r domain.TxRecord) bool {
		return r.MerchantID == merchantID
	})
	stats.MerchantID = merchantID
	return stats
}

// ComputeOverallStats computes the same statistics over the whole table.
func ComputeOverallStats(t *domain.Table) MerchantStats {
	return computeStats(t, func(domain.TxRecord) bool { return true })
}

func computeStats(t *domain.Table, match func(domain.TxRecord) bool) MerchantStats {
	stats := MerchantStats{
		StateCounts:  make(map[domain.TxState]int),
		StateAmounts: make(map[domain.TxState]float64),
	}
	if t == nil {
		return stats
	}

	for _, row := range t.Rows {
		if !match(row) {
			continue
		}
		stats.TotalTxns++
		stats.TotalAmount += row.Amount
		stats.StateCounts[row.State]++
		stats.StateAmounts[row.State] += row.Amount

		// Success means Remitted and nothing else; Published, In process
		// and the rest all count toward the total only.
		if row.State == domain.StateRemitted {
			stats.SuccessTxns++
			stats.SuccessAmount += row.Amount
		}
	}

	if stats.TotalTxns > 0 {
		stats.SuccessRate = round2(float64(stats.SuccessTxns) / float64(stats.TotalTxns) * 100)
	}
	return stats
}

// Merchants returns the distinct merchant IDs in first-seen order.
func Merchants(t *domain.Table) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{}, 16)
	var out []string
	for _, row := range t.Rows {
		if _, ok := seen[row.MerchantID]; ok {
			continue
		}
		seen[row.MerchantID] = struct{}{}
		out = append(out, row.MerchantID)
	}
	return out
}

// TopState returns the most frequent state in the stats, breaking count
// ties by label so the result is deterministic. Returns "N/A" when the
// merchant has no rows.
func TopState(stats MerchantStats) string {
	top := ""
	best := -1
	for state, count := range stats.StateCounts {
		if count > best || (count == best && string(state) < top) {
			top = string(state)
			best = count
		}
	}
	if top == "" {
		return "N/A"
	}
	return top
}

// issueLayouts are tried in order when parsing issue timestamps. Exports
// arrive from several upstream systems, so the set is deliberately wide.
// Ambiguous numeric dates ("03/04/2024") read month-first, matching the
// historical exports.
var issueLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1-2-2006 15:04:05",
	"1-2-2006",
	"02-Jan-2006 15:04:05",
	"02-Jan-2006",
}

// ParseIssueTimestamp parses an issue timestamp string against the known
// layouts. The boolean is false when the value is blank or matches none.
func ParseIssueTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range issueLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// DateRange returns the min and max parseable issue timestamp for the
// merchant's rows. ok is false when the merchant has no rows or none of its
// issue timestamps parse; such rows stay in every other statistic.
func DateRange(t *domain.Table, merchantID string) (min, max time.Time, ok bool) {
	return dateRange(t, func(r domain.TxRecord) bool {
		return r.MerchantID == merchantID
	})
}

// OverallDateRange is DateRange across every merchant in the table.
func OverallDateRange(t *domain.Table) (min, max time.Time, ok bool) {
	return dateRange(t, func(domain.TxRecord) bool { return true })
}

func dateRange(t *domain.Table, match func(domain.TxRecord) bool) (min, max time.Time, ok bool) {
	if t == nil {
		return time.Time{}, time.Time{}, false
	}
	for _, row := range t.Rows {
		if !match(row) {
			continue
		}
		ts, parsed := ParseIssueTimestamp(row.IssueTimestamp)
		if !parsed {
			continue
		}
		if !ok {
			min, max, ok = ts, ts, true
			continue
		}
		if ts.Before(min) {
			min = ts
		}
		if ts.After(max) {
			max = ts
		}
	}
	return min, max, ok
}

const rangeDateFormat = "02-Jan-2006"

// FormatDateRange renders a date range for display. A range within a single
// calendar day collapses to one date; an absent range renders as "N/A".
func FormatDateRange(min, max time.Time, ok bool) string {
	if !ok {
		return "N/A"
	}
	minStr := min.Format(rangeDateFormat)
	maxStr := max.Format(rangeDateFormat)
	if minStr == maxStr {
		return minStr
	}
	return minStr + " to " + maxStr
}

// DaySpan returns the inclusive number of calendar days the range covers.
// Zero when the range is absent.
func DaySpan(min, max time.Time, ok bool) int {
	if !ok {
		return 0
	}
	minDay := time.Date(min.Year(), min.Month(), min.Day(), 0, 0, 0, 0, time.UTC)
	maxDay := time.Date(max.Year(), max.Month(), max.Day(), 0, 0, 0, 0, time.UTC)
	return int(maxDay.Sub(minDay).Hours()/24) + 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
