// Package mailer delivers generated reports over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"srdash/internal/config"
)

// subjectDateFormat matches the date style used throughout the reports.
const subjectDateFormat = "02-Jan-2006"

// Mailer sends report emails using the configured SMTP account.
type Mailer struct {
	cfg    config.EmailConfig
	logger *slog.Logger
}

// New creates a Mailer. Configuration completeness is checked at send time
// so callers can construct one unconditionally.
func New(cfg config.EmailConfig, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// Configured reports whether the SMTP account has enough settings to send.
func (m *Mailer) Configured() bool {
	return m.cfg.Configured()
}

// ReportEmail describes one outgoing report delivery.
type ReportEmail struct {
	Title       string
	GeneratedAt time.Time
	PDF         []byte
	Recipients  []string
	CC          []string
}

// SendReport emails the PDF report to the configured or overridden
// recipients. The message uses STARTTLS against the configured SMTP host.
func (m *Mailer) SendReport(ctx context.Context, rpt ReportEmail) error {
	if !m.cfg.Configured() {
		return fmt.Errorf("smtp account is not configured")
	}

	recipients := rpt.Recipients
	if len(recipients) == 0 {
		recipients = m.cfg.Recipients
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients for report email")
	}
	cc := rpt.CC
	if len(cc) == 0 {
		cc = m.cfg.CC
	}

	msg, err := m.buildMessage(rpt, recipients, cc)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.Sender),
		mail.WithPassword(m.cfg.AppPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending report email: %w", err)
	}

	m.logger.InfoContext(ctx, "report email sent",
		slog.Int("recipients", len(recipients)),
		slog.Int("cc", len(cc)),
		slog.Int("attachment_bytes", len(rpt.PDF)))
	return nil
}

func (m *Mailer) buildMessage(rpt ReportEmail, recipients, cc []string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	if len(cc) > 0 {
		if err := msg.Cc(cc...); err != nil {
			return nil, fmt.Errorf("invalid cc address: %w", err)
		}
	}

	dateStr := rpt.GeneratedAt.Format(subjectDateFormat)
	msg.Subject(fmt.Sprintf("%s Report - %s", rpt.Title, dateStr))
	msg.SetBodyString(mail.TypeTextPlain, reportBody(rpt.Title, dateStr))

	filename := fmt.Sprintf("merchant_sr_report_%s.pdf", rpt.GeneratedAt.Format("2006-01-02"))
	if err := msg.AttachReader(filename, bytes.NewReader(rpt.PDF)); err != nil {
		return nil, fmt.Errorf("attaching report pdf: %w", err)
	}
	return msg, nil
}

func reportBody(title, dateStr string) string {
	return fmt.Sprintf(
		"Hi,\n\nPlease find attached the %s generated on %s.\n\n"+
			"This is an automated message.\n",
		title, dateStr)
}
