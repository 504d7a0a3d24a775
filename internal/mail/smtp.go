package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"
)

const bodyTemplate = `Hi {{.RecipientName}},

Your {{.AppTitle}} access expires on {{.ExpiryDate}} ({{.DaysRemaining}} day(s) remaining).

Visit {{.AppURL}} for details.
`

var bodyTmpl = template.Must(template.New("expirywarning").Parse(bodyTemplate))

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers messages through a plain SMTP relay. Auth is only
// used when a username is configured.
type SMTPSender struct {
	cfg SMTPConfig
	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, send: smtp.SendMail}
}

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("smtp: empty recipient")
	}

	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, msg); err != nil {
		return fmt.Errorf("smtp: render body: %w", err)
	}

	subject := msg.Subject
	if subject == "" {
		subject = fmt.Sprintf("%s: your access expires soon", msg.AppTitle)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.Write(body.Bytes())

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.From, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp: send to %s: %w", msg.To, err)
	}
	return nil
}
