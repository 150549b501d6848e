package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"srdash/internal/config"
	"srdash/internal/exporter"
	"srdash/internal/mailer"
	"srdash/internal/report"
)

// ReportService turns the current session table into deliverables: the PDF
// report, its CSV companion, and the email that carries them.
type ReportService struct {
	dashboard *DashboardService
	pdf       *report.PDFGenerator
	csv       *exporter.CSVWriter
	mail      *mailer.Mailer
	cfg       config.ReportConfig
	logger    *slog.Logger
}

// NewReportService wires the report pipeline around the dashboard session.
func NewReportService(dashboard *DashboardService, mail *mailer.Mailer, cfg config.ReportConfig, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		dashboard: dashboard,
		pdf:       report.NewPDFGenerator(logger),
		csv:       exporter.NewCSVWriter(logger),
		mail:      mail,
		cfg:       cfg,
		logger:    logger,
	}
}

// ReportArtifact is a generated report ready for download or delivery.
type ReportArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
	GeneratedAt time.Time
}

// GeneratePDF builds the one-page PDF report from the session table.
func (s *ReportService) GeneratePDF(ctx context.Context) (*ReportArtifact, error) {
	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.Generate(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("generating pdf report: %w", err)
	}
	return &ReportArtifact{
		Filename:    fmt.Sprintf("merchant_sr_report_%s.pdf", summary.GeneratedAt.Format("2006-01-02")),
		ContentType: "application/pdf",
		Data:        data,
		GeneratedAt: summary.GeneratedAt,
	}, nil
}

// GenerateCSV builds the per-merchant breakdown as a CSV export.
func (s *ReportService) GenerateCSV(ctx context.Context) (*ReportArtifact, error) {
	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = s.csv.Write(&buf, exporter.WriteOptions{
		Headers:   report.CSVHeaders(),
		Records:   report.CSVRecords(summary),
		BOMPrefix: true,
	})
	if err != nil {
		return nil, fmt.Errorf("generating csv export: %w", err)
	}
	return &ReportArtifact{
		Filename:    fmt.Sprintf("merchant_sr_report_%s.csv", summary.GeneratedAt.Format("2006-01-02")),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
		GeneratedAt: summary.GeneratedAt,
	}, nil
}

// SaveReports writes the PDF and CSV into the configured output directory
// and returns their paths.
func (s *ReportService) SaveReports(ctx context.Context) ([]string, error) {
	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}

	stamp := summary.GeneratedAt.Format("2006-01-02")
	pdfPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("merchant_sr_report_%s.pdf", stamp))
	csvPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("merchant_sr_report_%s.csv", stamp))

	pdfData, err := s.pdf.Generate(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("generating pdf report: %w", err)
	}
	if err := exporter.WriteBytes(pdfPath, pdfData); err != nil {
		return nil, err
	}
	err = s.csv.WriteFile(csvPath, exporter.WriteOptions{
		Headers:   report.CSVHeaders(),
		Records:   report.CSVRecords(summary),
		BOMPrefix: true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "reports written",
		slog.String("pdf", pdfPath),
		slog.String("csv", csvPath))
	return []string{pdfPath, csvPath}, nil
}

// EmailReport generates the PDF and emails it. Recipients and cc override
// the configured lists when non-empty.
func (s *ReportService) EmailReport(ctx context.Context, recipients, cc []string) error {
	if !s.mail.Configured() {
		return ErrEmailNotConfigured
	}

	artifact, err := s.GeneratePDF(ctx)
	if err != nil {
		return err
	}
	return s.mail.SendReport(ctx, mailer.ReportEmail{
		Title:       s.cfg.Title,
		GeneratedAt: artifact.GeneratedAt,
		PDF:         artifact.Data,
		Recipients:  recipients,
		CC:          cc,
	})
}

// EmailConfigured reports whether email delivery can be attempted.
func (s *ReportService) EmailConfigured() bool {
	return s.mail.Configured()
}

func (s *ReportService) buildSummary(ctx context.Context) (*report.Summary, error) {
	table, err := s.dashboard.Table()
	if err != nil {
		return nil, err
	}
	return report.BuildSummary(ctx, table, s.cfg.Title)
}
