package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"srdash/pkg/contracts/domain"
)

// ErrNoValidData is returned when no uploaded file could be parsed or the
// merged table ended up empty. Callers must surface this as a distinct
// "no usable data" outcome instead of computing statistics over it.
var ErrNoValidData = errors.New("no valid transaction data in batch")

// UploadFile is one uploaded export: its original filename (the extension
// selects the parser) and raw content.
type UploadFile struct {
	Name string
	Data []byte
}

// FileError reports a single file that failed to parse. It never aborts
// the batch; the remaining files still contribute rows.
type FileError struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
}

// MergeResult is the outcome of ingesting one upload batch.
type MergeResult struct {
	Table       *domain.Table
	FilesParsed int
	FileErrors  []FileError
	// CoercedAmounts counts rows whose Amount could not be parsed and was
	// zeroed. The totals are unchanged; this exists so operators can see
	// how much bad data a batch silently absorbed.
	CoercedAmounts int
}

// Merger builds the unified transaction table from uploaded files.
type Merger struct {
	logger *slog.Logger
}

// NewMerger creates a merger. A nil logger falls back to slog.Default.
func NewMerger(logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{logger: logger.With(slog.String("component", "merger"))}
}

// Merge parses every file, reconciles each one onto the required schema and
// concatenates the results row-wise in arrival order. States are normalized
// and amounts coerced to numeric after concatenation. A file that fails to
// parse is recorded in FileErrors and skipped. Returns ErrNoValidData
// (alongside the partial result, so per-file errors stay reportable) when
// nothing parsed or the combined table is empty.
func (m *Merger) Merge(ctx context.Context, files []UploadFile) (*MergeResult, error) {
	res := &MergeResult{Table: &domain.Table{}}

	for _, file := range files {
		rows, err := ParseTabular(file.Name, file.Data)
		if err != nil {
			m.logger.WarnContext(ctx, "skipping unreadable file",
				slog.String("filename", file.Name),
				slog.String("error", err.Error()))
			res.FileErrors = append(res.FileErrors, FileError{Filename: file.Name, Reason: err.Error()})
			continue
		}

		sm := ReconcileSchema(rows[0])
		if len(sm.Collisions) > 0 {
			m.logger.WarnContext(ctx, "duplicate headers map to the same column; last occurrence wins",
				slog.String("filename", file.Name),
				slog.Any("columns", sm.Collisions))
		}
		if len(sm.Dropped) > 0 {
			m.logger.DebugContext(ctx, "dropping unrecognized columns",
				slog.String("filename", file.Name),
				slog.Any("columns", sm.Dropped))
		}

		added := 0
		for _, row := range rows[1:] {
			if rowEmpty(sm, row) {
				continue
			}

			amount, coerced := coerceAmount(sm.cell(row, domain.ColAmount))
			if coerced {
				res.CoercedAmounts++
			}

			res.Table.Rows = append(res.Table.Rows, domain.TxRecord{
				Account:        strings.TrimSpace(sm.cell(row, domain.ColAccount)),
				MerchantID:     strings.TrimSpace(sm.cell(row, domain.ColMerchantID)),
				Amount:         amount,
				RemitTimestamp: strings.TrimSpace(sm.cell(row, domain.ColRemitTimestamp)),
				IssueTimestamp: strings.TrimSpace(sm.cell(row, domain.ColIssueTimestamp)),
				State:          NormalizeState(sm.cell(row, domain.ColState)),
			})
			added++
		}

		res.FilesParsed++
		m.logger.InfoContext(ctx, "file merged",
			slog.String("filename", file.Name),
			slog.Int("rows", added),
			slog.Any("columns", sm.Retained))
	}

	if res.FilesParsed == 0 || res.Table.Len() == 0 {
		return res, ErrNoValidData
	}

	if res.CoercedAmounts > 0 {
		m.logger.WarnContext(ctx, "batch contained unparseable amounts, coerced to zero",
			slog.Int("rows", res.CoercedAmounts))
	}

	return res, nil
}

// rowEmpty reports whether every retained cell of the row is blank.
func rowEmpty(sm SchemaMap, row []string) bool {
	for _, col := range sm.Retained {
		if strings.TrimSpace(sm.cell(row, col)) != "" {
			return false
		}
	}
	return true
}

// coerceAmount converts a raw amount cell to a finite float64. Thousands
// separators are stripped. Unparseable or non-finite values become 0; the
// second return reports whether a non-empty value was zeroed.
func coerceAmount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true
	}
	return v, false
}
