package mailer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"srdash/internal/config"
)

func configuredAccount() config.EmailConfig {
	return config.EmailConfig{
		SMTPHost:    "smtp.office365.com",
		SMTPPort:    587,
		Sender:      "reports@example.com",
		AppPassword: "app-secret",
		Recipients:  []string{"ops@example.com"},
	}
}

func TestSendReportNotConfigured(t *testing.T) {
	m := New(config.EmailConfig{}, nil)
	assert.False(t, m.Configured())

	err := m.SendReport(context.Background(), ReportEmail{PDF: []byte("%PDF")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSendReportNoRecipients(t *testing.T) {
	cfg := configuredAccount()
	cfg.Recipients = nil
	m := New(cfg, nil)

	err := m.SendReport(context.Background(), ReportEmail{PDF: []byte("%PDF")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recipients")
}

func TestBuildMessage(t *testing.T) {
	m := New(configuredAccount(), nil)
	generated := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	msg, err := m.buildMessage(ReportEmail{
		Title:       "Merchant SR Dashboard",
		GeneratedAt: generated,
		PDF:         []byte("%PDF-1.4 fake"),
	}, []string{"ops@example.com"}, []string{"lead@example.com"})
	require.NoError(t, err)

	subject := msg.GetGenHeader(mail.HeaderSubject)
	require.Len(t, subject, 1)
	assert.Equal(t, "Merchant SR Dashboard Report - 05-Mar-2024", subject[0])

	attachments := msg.GetAttachments()
	require.Len(t, attachments, 1)
	assert.Equal(t, "merchant_sr_report_2024-03-05.pdf", attachments[0].Name)
}

func TestBuildMessageInvalidAddress(t *testing.T) {
	m := New(configuredAccount(), nil)
	_, err := m.buildMessage(ReportEmail{
		Title:       "T",
		GeneratedAt: time.Now(),
	}, []string{"not-an-address"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient")
}

func TestReportBody(t *testing.T) {
	body := reportBody("Merchant SR Dashboard", "05-Mar-2024")
	assert.True(t, strings.HasPrefix(body, "Hi,"))
	assert.Contains(t, body, "05-Mar-2024")
	assert.Contains(t, body, "automated message")
}
