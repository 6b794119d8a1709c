package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"muthawwif-booking/pkg/utils"

	"go.uber.org/zap"
)

// Mailer sends plain-text notification emails over SMTP. When the SMTP
// config is absent it logs the message instead of sending, so local
// environments work without a mail account.
type Mailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func New(config utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

// BookingConfirmation carries everything the confirmation mails need.
type BookingConfirmation struct {
	BookingID       string
	CustomerName    string
	CustomerEmail   string
	MuthawwifName   string
	MuthawwifEmail  string
	BookingDates    []string
	NumberCompanion int
	TotalAmount     float64
}

// SendBookingConfirmation mails both parties of a committed booking.
// Failures are reported to the caller for logging only; a booking is
// never rolled back because a mail did not go out.
func (m *Mailer) SendBookingConfirmation(bc BookingConfirmation) error {
	dates := strings.Join(bc.BookingDates, ", ")

	customerBody := fmt.Sprintf(
		"Dear %s,\n\nYour booking %s is confirmed as pending.\n\nMuthawwif: %s\nDates: %s\nCompanions: %d\nTotal amount: %.2f\n\nYou can cancel while the booking is pending.\n",
		bc.CustomerName, bc.BookingID, bc.MuthawwifName, dates, bc.NumberCompanion, bc.TotalAmount,
	)
	if err := m.send(bc.CustomerEmail, "Your muthawwif booking", customerBody); err != nil {
		return fmt.Errorf("send customer confirmation: %w", err)
	}

	muthawwifBody := fmt.Sprintf(
		"Dear %s,\n\nYou have a new pending booking %s.\n\nCustomer: %s\nDates: %s\nCompanions: %d\nTotal amount: %.2f\n",
		bc.MuthawwifName, bc.BookingID, bc.CustomerName, dates, bc.NumberCompanion, bc.TotalAmount,
	)
	if err := m.send(bc.MuthawwifEmail, "New booking received", muthawwifBody); err != nil {
		return fmt.Errorf("send muthawwif confirmation: %w", err)
	}

	return nil
}

func (m *Mailer) send(to, subject, body string) error {
	if m.config.Host == "" || m.config.User == "" || m.config.Password == "" {
		m.log.Info("SMTP not configured, logging mail instead",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	from := m.config.From
	if from == "" {
		from = m.config.User
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
