package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFGenerator renders a Summary as a one-page landscape PDF.
type PDFGenerator struct {
	logger *slog.Logger
}

// NewPDFGenerator creates a PDF generator with the given logger.
func NewPDFGenerator(logger *slog.Logger) *PDFGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFGenerator{logger: logger}
}

const maxMerchantIDLen = 18

// Generate renders the summary and returns the PDF bytes.
func (g *PDFGenerator) Generate(ctx context.Context, s *Summary) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := fpdf.New("L", "mm", "Letter", "")
	doc.SetTitle(s.Title, true)
	doc.SetAutoPageBreak(true, 12)
	doc.AddPage()

	g.writeHeader(doc, s)
	g.writeOverallTable(doc, s)
	g.writeMerchantTable(doc, s)
	g.writeFooter(doc)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	g.logger.InfoContext(ctx, "pdf report generated",
		slog.Int("merchants", s.TotalMerchants),
		slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (g *PDFGenerator) writeHeader(doc *fpdf.Fpdf, s *Summary) {
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(31, 41, 55)
	doc.CellFormat(0, 9, s.Title, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(107, 114, 128)
	sub := fmt.Sprintf("Generated on %s  |  Period: %s",
		s.GeneratedAt.Format("02-Jan-2006 15:04"), s.OverallRange)
	doc.CellFormat(0, 6, sub, "", 1, "C", false, 0, "")
	doc.Ln(3)
}

func (g *PDFGenerator) writeOverallTable(doc *fpdf.Fpdf, s *Summary) {
	doc.SetFont("Helvetica", "B", 11)
	doc.SetTextColor(31, 41, 55)
	doc.CellFormat(0, 7, "Overall Summary", "", 1, "L", false, 0, "")

	labels := []string{
		"Total Merchants", "Total Transactions", "Overall Success Rate",
		"Total Amount", "Remitted Amount",
	}
	values := []string{
		fmt.Sprintf("%d", s.TotalMerchants),
		fmt.Sprintf("%d", s.Overall.TotalTxns),
		fmt.Sprintf("%.2f%%", s.Overall.SuccessRate),
		formatAmount(s.Overall.TotalAmount),
		formatAmount(s.Overall.SuccessAmount),
	}

	colW := 48.0
	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(31, 41, 55)
	doc.SetTextColor(255, 255, 255)
	for _, l := range labels {
		doc.CellFormat(colW, 7, l, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8)
	doc.SetFillColor(243, 244, 246)
	doc.SetTextColor(31, 41, 55)
	for _, v := range values {
		doc.CellFormat(colW, 7, v, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)
	doc.Ln(4)
}

func (g *PDFGenerator) writeMerchantTable(doc *fpdf.Fpdf, s *Summary) {
	doc.SetFont("Helvetica", "B", 11)
	doc.SetTextColor(31, 41, 55)
	doc.CellFormat(0, 7, "Per-Merchant Breakdown", "", 1, "L", false, 0, "")

	headers := CSVHeaders()
	widths := []float64{34, 42, 22, 26, 28, 32, 34, 26}

	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(16, 185, 129)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(31, 41, 55)
	fill := false
	for _, r := range s.Rows {
		if fill {
			doc.SetFillColor(243, 244, 246)
		} else {
			doc.SetFillColor(255, 255, 255)
		}
		cells := []string{
			truncate(r.MerchantID, maxMerchantIDLen),
			r.DateRange,
			fmt.Sprintf("%d", r.TotalTxns),
			fmt.Sprintf("%d", r.SuccessTxns),
			fmt.Sprintf("%.2f%%", r.SuccessRate),
			formatAmount(r.TotalAmount),
			formatAmount(r.SuccessAmount),
			r.TopState,
		}
		for i, c := range cells {
			align := "C"
			if i == 0 {
				align = "L"
			}
			doc.CellFormat(widths[i], 6, c, "1", 0, align, true, 0, "")
		}
		doc.Ln(-1)
		fill = !fill
	}
}

func (g *PDFGenerator) writeFooter(doc *fpdf.Fpdf) {
	doc.Ln(4)
	doc.SetFont("Helvetica", "I", 7)
	doc.SetTextColor(107, 114, 128)
	doc.CellFormat(0, 5, "Confidential - For Internal Use Only", "", 1, "C", false, 0, "")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "~"
}

// formatAmount renders an amount with thousands separators and two decimals.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
