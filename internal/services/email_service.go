package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOTPEmail(email, code string, ttl time.Duration) error
	SendResponseEmail(email, reference, response string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOTPEmail(email, code string, ttl time.Duration) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your ProFix login code")

	body := fmt.Sprintf(`
		<h3>ProFix manager portal</h3>
		<p>Your one-time login code: <strong>%s</strong></p>
		<p>The code is valid for %d minutes. Requesting a new code invalidates this one.</p>
		<p>If you did not try to log in, you can ignore this email.</p>
	`, code, int(ttl.Minutes()))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	return nil
}

func (s *emailService) SendResponseEmail(email, reference, response string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Update on your service request")

	body := fmt.Sprintf(`
                <h3>There is an update on your request</h3>
                <p>Request reference: <strong>%s</strong></p>
                <p>%s</p>
                <p>Best regards,<br>The ProFix Team</p>
        `, reference, response)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send response email: %w", err)
	}

	return nil
}
