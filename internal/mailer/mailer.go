package mailer

import (
	"context"
	"fmt"

	"github.com/2beens/runanalysis/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/gomail.v2"
)

const recoverySubject = "Password Recovery"

// Sender delivers account emails. Delivery is attempted once, callers report failures to the user.
type Sender interface {
	SendRecovery(ctx context.Context, to, username, link string) error
}

var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = (*LogSender)(nil)
)

type SMTPParams struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPSender struct {
	from string
	send func(m *gomail.Message) error
}

func NewSMTPSender(params SMTPParams) *SMTPSender {
	dialer := gomail.NewDialer(params.Host, params.Port, params.Username, params.Password)
	return &SMTPSender{
		from: params.From,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

func (s *SMTPSender) SendRecovery(ctx context.Context, to, username, link string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "mailer.smtp.recovery")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	m := NewRecoveryMessage(s.from, to, username, link)
	if err := s.send(m); err != nil {
		return fmt.Errorf("send recovery email: %w", err)
	}

	log.Debugf("recovery email sent to user [%s]", username)
	return nil
}

func NewRecoveryMessage(from, to, username, link string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", recoverySubject)
	m.SetBody("text/plain", recoveryBody(username, link))
	return m
}

func recoveryBody(username, link string) string {
	return fmt.Sprintf("Hello %s,\n\nClick here to reset your password: %s", username, link)
}

// LogSender is used when SMTP is not configured (development), it only logs the link.
type LogSender struct{}

func (LogSender) SendRecovery(_ context.Context, _, username, link string) error {
	log.Warnf("smtp not configured, recovery link for [%s]: %s", username, link)
	return nil
}
