package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srdash/pkg/contracts/domain"
)

func sampleTable() *domain.Table {
	return &domain.Table{Rows: []domain.TxRecord{
		{MerchantID: "M-1", Amount: 100, State: domain.StateRemitted, IssueTimestamp: "2024-03-01 10:00:00"},
		{MerchantID: "M-1", Amount: 200, State: domain.StateRemitted, IssueTimestamp: "2024-03-03 09:15:00"},
		{MerchantID: "M-1", Amount: 50, State: domain.StateRejected, IssueTimestamp: "2024-03-02 18:40:00"},
		{MerchantID: "M-1", Amount: 25, State: domain.StateOnHold, IssueTimestamp: "not a date"},
		{MerchantID: "M-2", Amount: 10, State: domain.StatePublished, IssueTimestamp: "2024-02-20"},
		{MerchantID: "M-2", Amount: 30, State: domain.StatePublished, IssueTimestamp: "2024-02-20"},
	}}
}

func TestComputeMerchantStats(t *testing.T) {
	table := sampleTable()
	stats := ComputeMerchantStats(table, "M-1")

	assert.Equal(t, "M-1", stats.MerchantID)
	assert.Equal(t, 4, stats.TotalTxns)
	assert.Equal(t, 2, stats.SuccessTxns)
	assert.Equal(t, 50.0, stats.SuccessRate)
	assert.Equal(t, 375.0, stats.TotalAmount)
	assert.Equal(t, 300.0, stats.SuccessAmount)
	assert.Equal(t, map[domain.TxState]int{
		domain.StateRemitted: 2,
		domain.StateRejected: 1,
		domain.StateOnHold:   1,
	}, stats.StateCounts)
	assert.Equal(t, 300.0, stats.StateAmounts[domain.StateRemitted])
}

func TestComputeMerchantStatsZeroRows(t *testing.T) {
	stats := ComputeMerchantStats(sampleTable(), "M-404")

	assert.Equal(t, 0, stats.TotalTxns)
	assert.Equal(t, 0.0, stats.SuccessRate)
	assert.Empty(t, stats.StateCounts)
	assert.Empty(t, stats.StateAmounts)
}

func TestComputeMerchantStatsExactMatch(t *testing.T) {
	// Merchant matching is exact and case-sensitive; "m-1" is a different
	// merchant from "M-1".
	stats := ComputeMerchantStats(sampleTable(), "m-1")
	assert.Equal(t, 0, stats.TotalTxns)
}

func TestComputeOverallStats(t *testing.T) {
	stats := ComputeOverallStats(sampleTable())

	assert.Equal(t, 6, stats.TotalTxns)
	assert.Equal(t, 2, stats.SuccessTxns)
	assert.Equal(t, 33.33, stats.SuccessRate)
	assert.Equal(t, 415.0, stats.TotalAmount)
}

func TestStatsInvariants(t *testing.T) {
	table := sampleTable()
	for _, id := range append(Merchants(table), "M-404") {
		stats := ComputeMerchantStats(table, id)

		assert.GreaterOrEqual(t, stats.SuccessRate, 0.0)
		assert.LessOrEqual(t, stats.SuccessRate, 100.0)
		if stats.TotalTxns == 0 {
			assert.Equal(t, 0.0, stats.SuccessRate)
		}

		countSum := 0
		amountSum := 0.0
		for _, c := range stats.StateCounts {
			countSum += c
		}
		for _, a := range stats.StateAmounts {
			amountSum += a
		}
		assert.Equal(t, stats.TotalTxns, countSum)
		assert.InDelta(t, stats.TotalAmount, amountSum, 1e-9)
	}
}

func TestStateVariantsCountTogether(t *testing.T) {
	table := &domain.Table{Rows: []domain.TxRecord{
		{MerchantID: "M-1", State: NormalizeState("OnHold")},
		{MerchantID: "M-1", State: NormalizeState("on hold")},
		{MerchantID: "M-1", State: NormalizeState("On Hold")},
	}}
	stats := ComputeMerchantStats(table, "M-1")

	assert.Equal(t, 3, stats.StateCounts[domain.StateOnHold])
	assert.Len(t, stats.StateCounts, 1)
}

func TestMerchants(t *testing.T) {
	assert.Equal(t, []string{"M-1", "M-2"}, Merchants(sampleTable()))
	assert.Nil(t, Merchants(&domain.Table{}))
	assert.Nil(t, Merchants(nil))
}

func TestTopState(t *testing.T) {
	table := sampleTable()

	assert.Equal(t, "Remitted", TopState(ComputeMerchantStats(table, "M-1")))
	assert.Equal(t, "Published", TopState(ComputeMerchantStats(table, "M-2")))
	assert.Equal(t, "N/A", TopState(ComputeMerchantStats(table, "M-404")))
}

func TestDateRange(t *testing.T) {
	table := sampleTable()

	t.Run("min and max over parseable rows", func(t *testing.T) {
		min, max, ok := DateRange(table, "M-1")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), min)
		assert.Equal(t, time.Date(2024, 3, 3, 9, 15, 0, 0, time.UTC), max)
	})

	t.Run("no rows", func(t *testing.T) {
		_, _, ok := DateRange(table, "M-404")
		assert.False(t, ok)
	})

	t.Run("all timestamps unparseable", func(t *testing.T) {
		bad := &domain.Table{Rows: []domain.TxRecord{
			{MerchantID: "M-9", IssueTimestamp: "yesterday-ish"},
			{MerchantID: "M-9", IssueTimestamp: ""},
		}}
		_, _, ok := DateRange(bad, "M-9")
		assert.False(t, ok)
	})
}

func TestOverallDateRange(t *testing.T) {
	min, max, ok := OverallDateRange(sampleTable())
	require.True(t, ok)
	assert.Equal(t, "20-Feb-2024", min.Format("02-Jan-2006"))
	assert.Equal(t, "03-Mar-2024", max.Format("02-Jan-2006"))

	_, _, ok = OverallDateRange(&domain.Table{})
	assert.False(t, ok)
}

func TestFormatDateRange(t *testing.T) {
	mar1 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	mar3 := time.Date(2024, 3, 3, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, "01-Mar-2024 to 03-Mar-2024", FormatDateRange(mar1, mar3, true))
	assert.Equal(t, "01-Mar-2024", FormatDateRange(mar1, mar1.Add(4*time.Hour), true), "same calendar day collapses")
	assert.Equal(t, "N/A", FormatDateRange(time.Time{}, time.Time{}, false))
}

func TestDaySpan(t *testing.T) {
	mar1 := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	mar3 := time.Date(2024, 3, 3, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaySpan(mar1, mar3, true))
	assert.Equal(t, 1, DaySpan(mar1, mar1, true))
	assert.Equal(t, 0, DaySpan(time.Time{}, time.Time{}, false))
}

func TestParseIssueTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{raw: "2024-03-01 10:00:00", ok: true, want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{raw: "2024-03-01", ok: true, want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{raw: "01/03/2024 10:00", ok: true, want: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)},
		{raw: "03/04/2024", ok: true, want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{raw: "3-4-2024 09:30:00", ok: true, want: time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)},
		{raw: "02-Mar-2024", ok: true, want: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{raw: "", ok: false},
		{raw: "garbage", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseIssueTimestamp(tt.raw)
		assert.Equal(t, tt.ok, ok, "input %q", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.raw)
		}
	}
}
