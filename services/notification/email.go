package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"meddirect/config"
	"meddirect/models"
	"meddirect/utils"

	"go.uber.org/zap"
)

// EmailSender delivers notification emails to users.
type EmailSender interface {
	Send(payload models.EmailPayload) error
}

// SMTPSender sends mail through the configured SMTP relay.
type SMTPSender struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// NewSMTPSender builds a sender from configuration.
func NewSMTPSender() *SMTPSender {
	return &SMTPSender{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		User:     config.AppConfig.SMTPUser,
		Password: config.AppConfig.SMTPPassword,
		From:     config.AppConfig.SMTPFrom,
	}
}

// Send renders the payload into a message and delivers it. When SMTP
// credentials are placeholders the message is logged instead of sent so
// local development works without a relay.
func (s *SMTPSender) Send(payload models.EmailPayload) error {
	subject, body := renderEmail(payload)

	if config.IsPlaceholderCredential(s.Password) {
		utils.GetLogger().Info("SMTP not configured, logging email instead",
			zap.String("to", payload.To),
			zap.String("subject", subject))
		return nil
	}

	msg := buildMessage(s.From, payload.To, subject, body)
	addr := s.Host + ":" + s.Port
	auth := smtp.PlainAuth("", s.User, s.Password, s.Host)

	if err := smtp.SendMail(addr, auth, s.From, []string{payload.To}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", payload.To, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func renderEmail(p models.EmailPayload) (subject, body string) {
	switch p.Kind {
	case models.EmailBookingConfirmation:
		subject = "Your appointment is booked"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour appointment with Dr. %s is confirmed for %s at %s.\n\nPlease complete the payment to secure your slot.\n\nAppointment ID: %s\n",
			p.UserName, p.DoctorName, p.SlotDate, p.SlotTime, p.AppointmentID)
	case models.EmailPaymentReceipt:
		subject = "Payment received for your appointment"
		body = fmt.Sprintf(
			"Hi %s,\n\nWe received your payment of %.2f via %s for your appointment with Dr. %s on %s at %s.\n\nAppointment ID: %s\n",
			p.UserName, p.Amount, p.PaymentMethod, p.DoctorName, p.SlotDate, p.SlotTime, p.AppointmentID)
	case models.EmailAppointmentReminder:
		subject = "Reminder: upcoming appointment"
		body = fmt.Sprintf(
			"Hi %s,\n\nThis is a reminder of your appointment with Dr. %s today, %s at %s.\n\nAppointment ID: %s\n",
			p.UserName, p.DoctorName, p.SlotDate, p.SlotTime, p.AppointmentID)
	default:
		subject = "Notification"
		body = fmt.Sprintf("Hi %s,\n\nYou have a new notification.\n", p.UserName)
	}
	return subject, body
}
