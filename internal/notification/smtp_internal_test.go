package notification

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"go-leave/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestSMTPDispatcher_Dispatch(t *testing.T) {
	cfg := config.MailConfig{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		Username: "noreply@example.com",
		Password: "app-password",
	}

	t.Run("composes utf-8 mail", func(t *testing.T) {
		d := NewSMTPDispatcher(cfg)
		var gotAddr, gotFrom string
		var gotTo []string
		var gotBody string
		d.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotBody = addr, from, to, string(msg)
			return nil
		}

		err := d.Dispatch(context.Background(), ApprovedMessage("ali@example.com", "Ali Veli"))

		assert.NoError(t, err)
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, "noreply@example.com", gotFrom)
		assert.Equal(t, []string{"ali@example.com"}, gotTo)
		assert.Contains(t, gotBody, "Subject: =?utf-8?q?")
		assert.True(t, strings.HasSuffix(gotBody, "\r\n\r\nSayın Ali Veli, izniniz onaylanmıştır.\r\n"))
	})

	t.Run("wraps transport error", func(t *testing.T) {
		d := NewSMTPDispatcher(cfg)
		d.send = func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("535 auth failed")
		}

		err := d.Dispatch(context.Background(), RejectedMessage("ali@example.com", "Ali Veli"))

		assert.ErrorContains(t, err, "535 auth failed")
	})

	t.Run("cancelled context", func(t *testing.T) {
		d := NewSMTPDispatcher(cfg)
		d.send = func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("send must not be called")
			return nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, d.Dispatch(ctx, RejectedMessage("ali@example.com", "Ali Veli")), context.Canceled)
	})
}
