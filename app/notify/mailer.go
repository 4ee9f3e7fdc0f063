package notify

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer is any transport that can deliver one message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type sendgridMailer struct {
	key  string
	from *sgmail.Email
}

var _ Mailer = (*sendgridMailer)(nil)

func NewSendgridMailer(key, fromName, fromEmail string) Mailer {
	return &sendgridMailer{
		key:  key,
		from: sgmail.NewEmail(fromName, fromEmail),
	}
}

func (m *sendgridMailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail("", msg.To))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/html", msg.HTML))
	return v3
}

func (m *sendgridMailer) Send(ctx context.Context, msg Message) error {
	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return errors.Wrap(err, "sendgrid request")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// ConsoleMailer logs messages instead of sending them and keeps a copy of each.
type ConsoleMailer struct {
	log zerolog.Logger

	mu   sync.Mutex
	sent []Message
}

var _ Mailer = (*ConsoleMailer)(nil)

func NewConsoleMailer(log zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("bytes", len(msg.HTML)).Msg("mail")
	m.log.Debug().Str("to", msg.To).Msg(msg.HTML)

	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return nil
}

func (m *ConsoleMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
