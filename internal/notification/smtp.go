package notification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"

	"go-leave/internal/config"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPDispatcher sends one mail per message. net/smtp upgrades the
// connection with STARTTLS when the server offers it.
type SMTPDispatcher struct {
	addr string
	from string
	auth smtp.Auth
	send sendFunc
}

func NewSMTPDispatcher(cfg config.MailConfig) *SMTPDispatcher {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPDispatcher{
		addr: net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		from: from,
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost),
		send: smtp.SendMail,
	}
}

func (d *SMTPDispatcher) Dispatch(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return errors.New("smtp: recipient is required")
	}
	if err := d.send(d.addr, d.auth, d.from, []string{msg.To}, d.compose(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (d *SMTPDispatcher) compose(msg Message) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", d.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return b.Bytes()
}
