package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"srdash/internal/dataprocessing"
	"srdash/pkg/contracts/domain"
)

// DashboardService owns the session's unified transaction table and answers
// every statistics query against it. Uploads replace the table wholesale.
type DashboardService struct {
	merger *dataprocessing.Merger
	logger *slog.Logger

	mu    sync.RWMutex
	table *domain.Table
}

// NewDashboardService creates a dashboard service with the given logger.
func NewDashboardService(logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		merger: dataprocessing.NewMerger(logger),
		logger: logger,
	}
}

// UploadSummary reports the outcome of an upload batch.
type UploadSummary struct {
	Rows           int                         `json:"rows"`
	Merchants      int                         `json:"merchants"`
	FilesParsed    int                         `json:"files_parsed"`
	FileErrors     []dataprocessing.FileError  `json:"file_errors,omitempty"`
	CoercedAmounts int                         `json:"coerced_amounts"`
	DateRange      string                      `json:"date_range"`
}

// ProcessUpload parses and merges the uploaded files and replaces the
// session table with the result. On dataprocessing.ErrNoValidData the
// previous table is kept and the error is returned with the per-file
// failures attached.
func (s *DashboardService) ProcessUpload(ctx context.Context, files []dataprocessing.UploadFile) (*UploadSummary, error) {
	res, err := s.merger.Merge(ctx, files)
	if err != nil {
		if res == nil {
			return nil, err
		}
		// Keep the previous session table and surface the per-file
		// failures alongside the error.
		return &UploadSummary{
			FilesParsed:    res.FilesParsed,
			FileErrors:     res.FileErrors,
			CoercedAmounts: res.CoercedAmounts,
			DateRange:      "N/A",
		}, err
	}

	s.mu.Lock()
	s.table = res.Table
	s.mu.Unlock()

	min, max, ok := dataprocessing.OverallDateRange(res.Table)
	summary := &UploadSummary{
		Rows:           res.Table.Len(),
		Merchants:      len(dataprocessing.Merchants(res.Table)),
		FilesParsed:    res.FilesParsed,
		FileErrors:     res.FileErrors,
		CoercedAmounts: res.CoercedAmounts,
		DateRange:      dataprocessing.FormatDateRange(min, max, ok),
	}

	s.logger.InfoContext(ctx, "upload processed",
		slog.Int("rows", summary.Rows),
		slog.Int("merchants", summary.Merchants),
		slog.Int("files_parsed", summary.FilesParsed),
		slog.Int("file_errors", len(summary.FileErrors)))
	return summary, nil
}

// Table returns the current session table, or ErrNoSession when no upload
// has succeeded yet.
func (s *DashboardService) Table() (*domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil || s.table.Len() == 0 {
		return nil, ErrNoSession
	}
	return s.table, nil
}

// HasData reports whether a session table is loaded.
func (s *DashboardService) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table != nil && s.table.Len() > 0
}

// StateBreakdownEntry is one state's share of a transaction set.
type StateBreakdownEntry struct {
	State   string  `json:"state"`
	Count   int     `json:"count"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// Overview is the dashboard's top-level banner: overall figures across
// every merchant in the session.
type Overview struct {
	TotalMerchants int                   `json:"total_merchants"`
	TotalTxns      int                   `json:"total_txns"`
	SuccessTxns    int                   `json:"success_txns"`
	SuccessRate    float64               `json:"success_rate"`
	TotalAmount    float64               `json:"total_amount"`
	SuccessAmount  float64               `json:"success_amount"`
	DateRange      string                `json:"date_range"`
	DaySpan        int                   `json:"day_span"`
	DailyAvgTxns   float64               `json:"daily_avg_txns"`
	States         []StateBreakdownEntry `json:"states"`
}

// Overview computes overall statistics for the loaded table.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	table, err := s.Table()
	if err != nil {
		return nil, err
	}

	stats := dataprocessing.ComputeOverallStats(table)
	min, max, ok := dataprocessing.OverallDateRange(table)
	span := dataprocessing.DaySpan(min, max, ok)

	return &Overview{
		TotalMerchants: len(dataprocessing.Merchants(table)),
		TotalTxns:      stats.TotalTxns,
		SuccessTxns:    stats.SuccessTxns,
		SuccessRate:    stats.SuccessRate,
		TotalAmount:    stats.TotalAmount,
		SuccessAmount:  stats.SuccessAmount,
		DateRange:      dataprocessing.FormatDateRange(min, max, ok),
		DaySpan:        span,
		DailyAvgTxns:   dailyAverage(stats.TotalTxns, span),
		States:         stateBreakdown(stats),
	}, nil
}

// Merchants returns merchant IDs in first-seen order.
func (s *DashboardService) Merchants(ctx context.Context) ([]string, error) {
	table, err := s.Table()
	if err != nil {
		return nil, err
	}
	return dataprocessing.Merchants(table), nil
}

// MerchantDetail is the full statistics view for one merchant.
type MerchantDetail struct {
	MerchantID    string                `json:"merchant_id"`
	TotalTxns     int                   `json:"total_txns"`
	SuccessTxns   int                   `json:"success_txns"`
	SuccessRate   float64               `json:"success_rate"`
	TotalAmount   float64               `json:"total_amount"`
	SuccessAmount float64               `json:"success_amount"`
	TopState      string                `json:"top_state"`
	DateRange     string                `json:"date_range"`
	DaySpan       int                   `json:"day_span"`
	DailyAvgTxns  float64               `json:"daily_avg_txns"`
	States        []StateBreakdownEntry `json:"states"`
}

// MerchantDetail computes statistics for one merchant. Merchant matching is
// exact and case sensitive.
func (s *DashboardService) MerchantDetail(ctx context.Context, merchantID string) (*MerchantDetail, error) {
	table, err := s.Table()
	if err != nil {
		return nil, err
	}

	stats := dataprocessing.ComputeMerchantStats(table, merchantID)
	if stats.TotalTxns == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMerchantNotFound, merchantID)
	}

	min, max, ok := dataprocessing.DateRange(table, merchantID)
	span := dataprocessing.DaySpan(min, max, ok)

	return &MerchantDetail{
		MerchantID:    merchantID,
		TotalTxns:     stats.TotalTxns,
		SuccessTxns:   stats.SuccessTxns,
		SuccessRate:   stats.SuccessRate,
		TotalAmount:   stats.TotalAmount,
		SuccessAmount: stats.SuccessAmount,
		TopState:      dataprocessing.TopState(stats),
		DateRange:     dataprocessing.FormatDateRange(min, max, ok),
		DaySpan:       span,
		DailyAvgTxns:  dailyAverage(stats.TotalTxns, span),
		States:        stateBreakdown(stats),
	}, nil
}

// MerchantRange is the resolved issue-timestamp range for one merchant.
type MerchantRange struct {
	MerchantID string `json:"merchant_id"`
	DateRange  string `json:"date_range"`
	DaySpan    int    `json:"day_span"`
	HasDates   bool   `json:"has_dates"`
}

// MerchantRange resolves the issue-timestamp range for one merchant.
func (s *DashboardService) MerchantRange(ctx context.Context, merchantID string) (*MerchantRange, error) {
	table, err := s.Table()
	if err != nil {
		return nil, err
	}
	if dataprocessing.ComputeMerchantStats(table, merchantID).TotalTxns == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMerchantNotFound, merchantID)
	}

	min, max, ok := dataprocessing.DateRange(table, merchantID)
	return &MerchantRange{
		MerchantID: merchantID,
		DateRange:  dataprocessing.FormatDateRange(min, max, ok),
		DaySpan:    dataprocessing.DaySpan(min, max, ok),
		HasDates:   ok,
	}, nil
}

// StateInfo describes one canonical state and its display color.
type StateInfo struct {
	State string `json:"state"`
	Color string `json:"color"`
}

// States returns the canonical state vocabulary with display colors. It
// needs no session data.
func (s *DashboardService) States() []StateInfo {
	canonical := domain.CanonicalStates()
	out := make([]StateInfo, 0, len(canonical))
	for _, st := range canonical {
		out = append(out, StateInfo{State: string(st), Color: st.HexColor()})
	}
	return out
}

func stateBreakdown(stats dataprocessing.MerchantStats) []StateBreakdownEntry {
	out := make([]StateBreakdownEntry, 0, len(stats.StateCounts))
	for _, st := range statesInOrder(stats) {
		count := stats.StateCounts[st]
		pct := 0.0
		if stats.TotalTxns > 0 {
			pct = float64(count) / float64(stats.TotalTxns) * 100
		}
		out = append(out, StateBreakdownEntry{
			State:   string(st),
			Count:   count,
			Amount:  stats.StateAmounts[st],
			Percent: pct,
			Color:   st.HexColor(),
		})
	}
	return out
}

// statesInOrder lists the present states with canonical ones first, then
// any fallback-capitalized extras sorted by label.
func statesInOrder(stats dataprocessing.MerchantStats) []domain.TxState {
	var out []domain.TxState
	seen := make(map[domain.TxState]struct{}, len(stats.StateCounts))
	for _, st := range domain.CanonicalStates() {
		if _, present := stats.StateCounts[st]; present {
			out = append(out, st)
			seen[st] = struct{}{}
		}
	}
	var extras []domain.TxState
	for st := range stats.StateCounts {
		if _, done := seen[st]; !done {
			extras = append(extras, st)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	return append(out, extras...)
}

func dailyAverage(total, span int) float64 {
	if span <= 0 {
		return 0
	}
	return float64(total) / float64(span)
}
