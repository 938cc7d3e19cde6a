// Package mailer sends HTML mail over SMTP, implementing
// notify.EmailTransport.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"mesa-notification-service/internal/notify"
)

type Client struct {
	server   string
	port     int
	username string
	password string
}

func NewClient(server string, port int, username, password string) *Client {
	return &Client{server: server, port: port, username: username, password: password}
}

// Send delivers one HTML email. The connection is dialed with ctx so a
// transport timeout set by the caller actually bounds the call.
func (c *Client) Send(ctx context.Context, msg notify.EmailMessage) error {
	if !strings.Contains(msg.To, "@") {
		return fmt.Errorf("invalid email address: %s", msg.To)
	}

	addr := fmt.Sprintf("%s:%d", c.server, c.port)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, c.server)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SMTP handshake with %s failed: %w", addr, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: c.server}); err != nil {
			return fmt.Errorf("STARTTLS with %s failed: %w", addr, err)
		}
	}
	if c.username != "" {
		auth := smtp.PlainAuth("", c.username, c.password, c.server)
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("SMTP auth failed: %w", err)
			}
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("RCPT TO %s rejected: %w", msg.To, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA rejected: %w", err)
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		msg.From, msg.To, msg.Subject, msg.HTML,
	)
	if _, err := w.Write([]byte(body)); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}
