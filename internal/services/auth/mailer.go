package auth

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
)

// Mailer delivers OTP codes. Delivery is a collaborator concern; ledger
// correctness never depends on it.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
}

type SMTPMailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	var a smtp.Auth
	if username != "" {
		a = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{host: host, port: port, from: from, auth: a}
}

func (m *SMTPMailer) SendOTP(_ context.Context, email, code string) error {
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your verification code\r\n\r\nYour verification code is %s. It expires in 10 minutes.\r\n",
		m.from, email, code)
	if err := smtp.SendMail(m.host+":"+m.port, m.auth, m.from, []string{email}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}
	return nil
}

// LogMailer writes codes to the log instead of sending mail. Development
// only.
type LogMailer struct {
	Logger *logrus.Logger
}

func (m *LogMailer) SendOTP(_ context.Context, email, code string) error {
	m.Logger.WithFields(logrus.Fields{"email": email, "code": code}).Info("otp issued")
	return nil
}
