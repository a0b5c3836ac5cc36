package mailer

import (
	"fmt"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/logger"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends mail in the background. Sends are fire-and-forget:
// failures are logged, never surfaced to the request that queued them.
type Mailer struct {
	cfg   *config.Config
	queue chan Message
}

func New(cfg *config.Config) *Mailer {
	m := &Mailer{
		cfg:   cfg,
		queue: make(chan Message, 100),
	}

	go m.worker()
	return m
}

func (m *Mailer) worker() {
	for msg := range m.queue {
		if err := m.send(msg); err != nil {
			logger.L.Warnw("email send failed",
				"to", msg.To, "subject", msg.Subject, "err", err)
		}
	}
}

// SendIfConfigured queues the message when email is enabled and the
// recipient is non-empty; otherwise it is a silent no-op.
func (m *Mailer) SendIfConfigured(msg Message) {
	if !m.cfg.EmailEnabled || m.cfg.SMTPHost == "" || msg.To == "" {
		return
	}

	select {
	case m.queue <- msg:
	default:
		logger.L.Warnw("email queue full, dropping message",
			"to", msg.To, "subject", msg.Subject)
	}
}

func (m *Mailer) send(msg Message) error {
	em := gomail.NewMessage()
	em.SetAddressHeader("From", m.cfg.SMTPFromEmail, m.cfg.SMTPFromName)
	em.SetHeader("To", msg.To)
	em.SetHeader("Subject", msg.Subject)
	em.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), m.cfg.SMTPHost))
	em.SetBody("text/plain", msg.Body)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUsername, m.cfg.SMTPPassword)
	return d.DialAndSend(em)
}
