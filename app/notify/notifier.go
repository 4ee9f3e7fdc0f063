package notify

import (
	"context"
	"sync"
	"time"

	"fiber/wof/app/metrics"
	"fiber/wof/app/model"

	"github.com/rs/zerolog"
)

const sendTimeout = 30 * time.Second

// Notifier delivers mail without blocking the action that triggered it.
// Failures are logged as NotificationError and never returned.
type Notifier struct {
	mailer  Mailer
	log     zerolog.Logger
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

func NewNotifier(mailer Mailer, log zerolog.Logger, m *metrics.Metrics) *Notifier {
	return &Notifier{
		mailer:  mailer,
		log:     log.With().Str("component", "notify").Logger(),
		metrics: m,
	}
}

// Notify sends in the background. A render error is passed in as err and only logged.
func (n *Notifier) Notify(msg Message, err error) {
	if err != nil {
		n.fail(context.Background(), msg.To, err)
		return
	}
	if msg.To == "" {
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := n.mailer.Send(ctx, msg); err != nil {
			n.fail(ctx, msg.To, err)
		}
	}()
}

// Send delivers synchronously for callers that must report the outcome.
func (n *Notifier) Send(ctx context.Context, msg Message) error {
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.fail(ctx, msg.To, err)
		return &model.NotificationError{To: msg.To, Err: err}
	}
	return nil
}

// Wait blocks until every background send has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) fail(ctx context.Context, to string, err error) {
	n.log.Error().Err(&model.NotificationError{To: to, Err: err}).Msg("mail not sent")
	n.metrics.RecordNotificationFailure(ctx)
}
