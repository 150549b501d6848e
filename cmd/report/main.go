// Command report ingests transaction export files from disk and writes the
// PDF and CSV reports without starting the web server. With -email it also
// delivers the PDF over SMTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"srdash/internal/config"
	"srdash/internal/dataprocessing"
	"srdash/internal/infrastructure"
	"srdash/internal/mailer"
	"srdash/internal/services"
)

func main() {
	outDir := flag.String("out", "", "output directory for reports (defaults to the configured reports dir)")
	sendEmail := flag.Bool("email", false, "email the PDF report to the configured recipients")
	recipients := flag.String("to", "", "comma-separated recipient override for -email")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: report [-out dir] [-email] [-to a@x,b@y] FILE...")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := infrastructure.InitializeLogger(cfg.Logging)
	if *outDir != "" {
		cfg.Report.OutputDir = *outDir
	}

	ctx := context.Background()
	files := make([]dataprocessing.UploadFile, 0, flag.NArg())
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("failed to read input file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		files = append(files, dataprocessing.UploadFile{Name: path, Data: data})
	}

	dashboard := services.NewDashboardService(logger)
	summary, err := dashboard.ProcessUpload(ctx, files)
	if err != nil {
		logger.Error("ingestion failed", slog.String("error", err.Error()))
		if summary != nil {
			for _, fe := range summary.FileErrors {
				logger.Error("file error",
					slog.String("filename", fe.Filename),
					slog.String("reason", fe.Reason))
			}
		}
		os.Exit(1)
	}
	logger.Info("batch ingested",
		slog.Int("rows", summary.Rows),
		slog.Int("merchants", summary.Merchants),
		slog.String("date_range", summary.DateRange))

	reports := services.NewReportService(dashboard, mailer.New(cfg.Email, logger), cfg.Report, logger)
	paths, err := reports.SaveReports(ctx)
	if err != nil {
		logger.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println(p)
	}

	if *sendEmail {
		var to []string
		if *recipients != "" {
			for _, addr := range strings.Split(*recipients, ",") {
				if addr = strings.TrimSpace(addr); addr != "" {
					to = append(to, addr)
				}
			}
		}
		if err := reports.EmailReport(ctx, to, nil); err != nil {
			logger.Error("report email failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("report email sent")
	}
}
