package mailer

import (
	"context"
	"fmt"

	"drive-booking/internal/notify"
	"drive-booking/internal/pkg/config"
	"drive-booking/internal/pkg/errs"

	gomail "gopkg.in/gomail.v2"
)

// SMTPMailer delivers the confirmation directly instead of going through
// a relay webhook. Same Mailer contract: one attempt, errors reported to
// the dispatcher for logging only.
type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" || cfg.From == "" {
		return nil, errs.New("smtp mailer requires SMTP_HOST and MAIL_FROM")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, payload notify.EmailPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", payload.ToEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Booking Confirmed - Ref %s", payload.RefID))
	msg.SetBody("text/plain", renderBody(payload))

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPassword)
	d.SSL = m.cfg.SMTPPort == 465

	if err := d.DialAndSend(msg); err != nil {
		return errs.Wrap(err, "smtp delivery failed")
	}
	return nil
}

func renderBody(p notify.EmailPayload) string {
	return fmt.Sprintf(`Hi %s,

Your booking is confirmed.

Ref ID:    %s
Vehicle:   %s
Dates:     %s to %s
Pickup:    %s
Total:     %s
Advance:   %s

Please bring your ID at pickup. For queries call %s.
`,
		p.CustomerName,
		p.RefID,
		p.VehicleName,
		p.StartDate, p.EndDate,
		p.PickupLocation,
		p.TotalCost,
		p.AdvanceAmount,
		p.OwnerPhone,
	)
}
