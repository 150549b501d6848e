package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"srdash/internal/dataprocessing"
	"srdash/pkg/contracts/domain"
)

// Row is one merchant line in the report, in display order.
type Row struct {
	MerchantID    string  `json:"merchant_id"`
	DateRange     string  `json:"date_range"`
	TotalTxns     int     `json:"total_txns"`
	SuccessTxns   int     `json:"success_txns"`
	SuccessRate   float64 `json:"success_rate"`
	TotalAmount   float64 `json:"total_amount"`
	SuccessAmount float64 `json:"success_amount"`
	TopState      string  `json:"top_state"`
}

// Summary is everything a report rendering needs: the overall figures
// plus one row per merchant, sorted by merchant ID.
type Summary struct {
	GeneratedAt    time.Time
	Title          string
	TotalMerchants int
	Overall        dataprocessing.MerchantStats
	OverallRange   string
	Rows           []Row
}

// rowWorkers caps the number of goroutines computing merchant rows.
const rowWorkers = 8

// BuildSummary computes the overall figures and one row per merchant.
// Rows are computed concurrently and returned sorted by merchant ID.
func BuildSummary(ctx context.Context, table *domain.Table, title string) (*Summary, error) {
	merchants := dataprocessing.Merchants(table)
	sort.Strings(merchants)

	rows := make([]Row, len(merchants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rowWorkers)
	for i, id := range merchants {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			rows[i] = buildRow(table, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building merchant rows: %w", err)
	}

	overall := dataprocessing.ComputeOverallStats(table)
	min, max, ok := dataprocessing.OverallDateRange(table)
	return &Summary{
		GeneratedAt:    time.Now(),
		Title:          title,
		TotalMerchants: len(merchants),
		Overall:        overall,
		OverallRange:   dataprocessing.FormatDateRange(min, max, ok),
		Rows:           rows,
	}, nil
}

func buildRow(table *domain.Table, merchantID string) Row {
	stats := dataprocessing.ComputeMerchantStats(table, merchantID)
	min, max, ok := dataprocessing.DateRange(table, merchantID)
	return Row{
		MerchantID:    merchantID,
		DateRange:     dataprocessing.FormatDateRange(min, max, ok),
		TotalTxns:     stats.TotalTxns,
		SuccessTxns:   stats.SuccessTxns,
		SuccessRate:   stats.SuccessRate,
		TotalAmount:   stats.TotalAmount,
		SuccessAmount: stats.SuccessAmount,
		TopState:      dataprocessing.TopState(stats),
	}
}

// CSVHeaders returns the column headers for the CSV rendering of a summary.
func CSVHeaders() []string {
	return []string{
		"Merchant ID", "Date Range", "Total Txns", "Success Txns",
		"Success Rate (%)", "Total Amount", "Remitted Amount", "Top State",
	}
}

// CSVRecords renders the summary rows as CSV records matching CSVHeaders.
func CSVRecords(s *Summary) [][]string {
	records := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		records = append(records, []string{
			r.MerchantID,
			r.DateRange,
			fmt.Sprintf("%d", r.TotalTxns),
			fmt.Sprintf("%d", r.SuccessTxns),
			fmt.Sprintf("%.2f", r.SuccessRate),
			fmt.Sprintf("%.2f", r.TotalAmount),
			fmt.Sprintf("%.2f", r.SuccessAmount),
			r.TopState,
		})
	}
	return records
}
