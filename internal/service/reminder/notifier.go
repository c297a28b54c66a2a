package reminder

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/Fakhri-abraar/taskdeck/internal/config"
)

// Notifier delivers a due-date reminder for one task.
type Notifier interface {
	SendTaskReminder(ctx context.Context, to, taskTitle string, dueDate time.Time) error
}

// SMTPNotifier implements Notifier over plain SMTP.
type SMTPNotifier struct {
	addr string
	auth smtp.Auth
	from string
}

var _ Notifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier creates a Notifier from the SMTP configuration.
func NewSMTPNotifier(cfg config.SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, fmt.Errorf("smtp host and port are required")
	}

	from := cfg.From
	if from == "" {
		from = "noreply@taskdeck.local"
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPNotifier{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: from,
	}, nil
}

// SendTaskReminder sends a single reminder mail.
func (n *SMTPNotifier) SendTaskReminder(
	ctx context.Context,
	to, taskTitle string,
	dueDate time.Time,
) error {
	subject := fmt.Sprintf("[REMINDER] Task: %s is due tomorrow!", taskTitle)
	body := fmt.Sprintf(
		"Hi, your task %q is due on %s. Finish it on time!",
		taskTitle, dueDate.Format("Mon Jan 2 2006"),
	)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: Todo Reminders <%s>\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	return smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(msg.String()))
}
