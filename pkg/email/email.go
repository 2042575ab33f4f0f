package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"rentit/internal/config"
	"rentit/pkg/logger"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends transactional email over SMTP. A disabled mailer drops
// every message.
type Mailer struct {
	dialer   dialer
	from     string
	fromName string
	enabled  bool
	logger   *logger.Logger
}

func NewMailer(cfg *config.SMTPConfig, log *logger.Logger) *Mailer {
	m := &Mailer{
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
		enabled:  cfg.Enabled,
		logger:   log,
	}
	if cfg.Enabled {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !m.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.WithError(err).WithField("to", to).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// BookingEmail carries the fields rendered into booking templates.
type BookingEmail struct {
	RecipientName string
	OtherName     string
	ItemTitle     string
	Start         time.Time
	End           time.Time
	Price         float64
	Message       string
}

var bookingReceivedTmpl = template.Must(template.New("booking_received").Parse(`
<p>Hi {{.RecipientName}},</p>
<p>{{.OtherName}} wants to rent <strong>{{.ItemTitle}}</strong> from {{.Start.Format "Jan 2, 2006 15:04"}} to {{.End.Format "Jan 2, 2006 15:04"}} for {{printf "%.2f" .Price}}.</p>
{{if .Message}}<p>Message: {{.Message}}</p>{{end}}
<p>Open RentIt to accept or decline the offer.</p>
`))

var bookingAcceptedTmpl = template.Must(template.New("booking_accepted").Parse(`
<p>Hi {{.RecipientName}},</p>
<p>{{.OtherName}} accepted your booking for <strong>{{.ItemTitle}}</strong> from {{.Start.Format "Jan 2, 2006 15:04"}} to {{.End.Format "Jan 2, 2006 15:04"}}.</p>
<p>Agreed price: {{printf "%.2f" .Price}}</p>
`))

func (m *Mailer) SendBookingReceived(ctx context.Context, to string, data BookingEmail) error {
	return m.sendTemplate(ctx, to, "New booking request for "+data.ItemTitle, bookingReceivedTmpl, data)
}

func (m *Mailer) SendBookingAccepted(ctx context.Context, to string, data BookingEmail) error {
	return m.sendTemplate(ctx, to, "Your booking for "+data.ItemTitle+" was accepted", bookingAcceptedTmpl, data)
}

func (m *Mailer) sendTemplate(ctx context.Context, to, subject string, tmpl *template.Template, data interface{}) error {
	if !m.Enabled() {
		return nil
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	return m.Send(ctx, to, subject, body.String())
}
