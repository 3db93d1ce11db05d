package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gridironhq/sportwire/internal/config"
	"github.com/gridironhq/sportwire/internal/logger"
	"github.com/gridironhq/sportwire/internal/models"
	"github.com/gridironhq/sportwire/internal/report"
)

const maxMailItems = 50

// Mailer delivers the aggregated report over SMTP. An unconfigured mailer
// is a no-op so the pipeline never fails just because delivery is off.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether enough SMTP configuration exists to deliver.
func (m *Mailer) Enabled() bool {
	return m.cfg.SMTPHost != "" && m.cfg.EmailFrom != "" && len(m.cfg.EmailTo) > 0
}

// SendReport formats the items as a multipart HTML and plain-text message
// and delivers it to the configured recipients.
func (m *Mailer) SendReport(items []models.NewsItem, meta report.Metadata) error {
	if !m.Enabled() {
		logger.Info().Msg("Email delivery not configured, skipping")
		return nil
	}

	msg := m.buildMessage(items, meta)
	addr := net.JoinHostPort(m.cfg.SMTPHost, fmt.Sprintf("%d", m.cfg.SMTPPort))

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}

	var err error
	if m.cfg.SMTPUseTLS {
		err = m.sendTLS(addr, auth, msg)
	} else {
		err = smtp.SendMail(addr, auth, m.cfg.EmailFrom, m.cfg.EmailTo, msg)
	}
	if err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	logger.Info().
		Int("recipients", len(m.cfg.EmailTo)).
		Int("items", len(items)).
		Msg("Report email sent")
	return nil
}

// sendTLS delivers over an implicit-TLS connection (SMTPS).
func (m *Mailer) sendTLS(addr string, auth smtp.Auth, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.SMTPHost})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(m.cfg.EmailFrom); err != nil {
		return err
	}
	for _, rcpt := range m.cfg.EmailTo {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (m *Mailer) buildMessage(items []models.NewsItem, meta report.Metadata) []byte {
	const boundary = "sportwire-report-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.EmailFrom)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.cfg.EmailTo, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", m.cfg.EmailSubject)
	fmt.Fprintf(&b, "Date: %s\r\n", meta.GeneratedAt.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n", boundary)
	b.WriteString(formatText(items, meta))

	fmt.Fprintf(&b, "\r\n--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n", boundary)
	b.WriteString(formatHTML(items, meta))

	fmt.Fprintf(&b, "\r\n--%s--\r\n", boundary)
	return []byte(b.String())
}

func formatText(items []models.NewsItem, meta report.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sports News Report\r\nGenerated: %s\r\nItems: %d\r\n\r\n",
		meta.GeneratedAt.Format(time.RFC3339), meta.TotalItems)

	for i, item := range items {
		if i >= maxMailItems {
			fmt.Fprintf(&b, "... and %d more items\r\n", len(items)-maxMailItems)
			break
		}
		fmt.Fprintf(&b, "%d. %s\r\n", i+1, item.Title)
		if item.Source != "" {
			fmt.Fprintf(&b, "   Source: %s\r\n", item.Source)
		}
		if item.Position != "" {
			fmt.Fprintf(&b, "   %s, %s (%s)\r\n", item.Player, item.Team, item.Position)
		}
		if item.Link != "" {
			fmt.Fprintf(&b, "   %s\r\n", item.Link)
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

func formatHTML(items []models.NewsItem, meta report.Metadata) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h1>Sports News Report</h1>")
	fmt.Fprintf(&b, "<p><strong>Generated:</strong> %s<br><strong>Items:</strong> %d</p><hr>",
		meta.GeneratedAt.Format(time.RFC3339), meta.TotalItems)

	for i, item := range items {
		if i >= maxMailItems {
			fmt.Fprintf(&b, "<p><em>... and %d more items</em></p>", len(items)-maxMailItems)
			break
		}
		fmt.Fprintf(&b, "<h3>%s</h3>", html.EscapeString(item.Title))
		fmt.Fprintf(&b, "<p><strong>Source:</strong> %s", html.EscapeString(item.Source))
		if item.Published != "" {
			fmt.Fprintf(&b, " | <strong>Published:</strong> %s", html.EscapeString(item.Published))
		}
		if item.Position != "" {
			fmt.Fprintf(&b, " | <strong>Position:</strong> %s", html.EscapeString(item.Position))
		}
		b.WriteString("</p>")
		if item.Description != "" {
			fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(truncate(item.Description, 500)))
		}
		if item.Link != "" {
			fmt.Fprintf(&b, `<p><a href=%q>Read full article</a></p>`, item.Link)
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}

// truncate shortens s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
