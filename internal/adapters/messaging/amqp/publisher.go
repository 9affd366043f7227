// Package amqp publishes expense ledger events to a RabbitMQ topic exchange.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/ports/messaging"
	"github.com/rabbitmq/amqp091-go"
)

const (
	publishTimeout = 5 * time.Second
	// redialInterval is the minimum gap between two reconnect attempts.
	redialInterval = 5 * time.Second
)

var (
	errPublisherClosed = errors.New("ledger publisher is closed")
	errRedialBackoff   = errors.New("broker unavailable, waiting before redial")
)

// channel is the part of *amqp091.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// session is one broker connection and its publishing channel.
type session struct {
	conn    io.Closer
	channel channel
	lost    <-chan *amqp091.Error // from Connection.NotifyClose
}

func (s *session) close() {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}

type dialFunc func(url, exchange string) (*session, error)

// Publisher sends each ledger event with its event type as the routing key.
// When the broker drops the connection the session is discarded and the next
// publish dials again.
type Publisher struct {
	url      string
	exchange string
	dial     dialFunc
	now      func() time.Time

	mu       sync.Mutex
	sess     *session
	lastDial time.Time
	shutdown bool
}

var _ messaging.LedgerEventPublisher = (*Publisher)(nil)

// NewPublisher dials the broker and declares a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	return newPublisher(url, exchange, dialSession, time.Now)
}

func newPublisher(url, exchange string, dial dialFunc, now func() time.Time) (*Publisher, error) {
	sess, err := dial(url, exchange)
	if err != nil {
		return nil, err
	}
	p := &Publisher{url: url, exchange: exchange, dial: dial, now: now}
	p.mu.Lock()
	p.attach(sess)
	p.mu.Unlock()
	return p, nil
}

func dialSession(url, exchange string) (*session, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	lost := conn.NotifyClose(make(chan *amqp091.Error, 1))
	return &session{conn: conn, channel: ch, lost: lost}, nil
}

// attach installs sess. Callers hold p.mu.
func (p *Publisher) attach(sess *session) {
	p.sess = sess
	if sess.lost != nil {
		go p.watch(sess)
	}
}

// watch drops sess once the broker closes its connection.
func (p *Publisher) watch(sess *session) {
	amqpErr, ok := <-sess.lost

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess != sess {
		return
	}
	p.sess = nil
	if ok && amqpErr != nil {
		slog.Warn("AMQP connection lost, redialing on next publish",
			"code", amqpErr.Code,
			"reason", amqpErr.Reason,
			"exchange", p.exchange)
	}
}

// currentChannel returns the live channel, dialing a new session when the
// previous one was lost.
func (p *Publisher) currentChannel() (channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shutdown {
		return nil, errPublisherClosed
	}
	if p.sess != nil {
		return p.sess.channel, nil
	}

	now := p.now()
	if !p.lastDial.IsZero() && now.Sub(p.lastDial) < redialInterval {
		return nil, errRedialBackoff
	}
	p.lastDial = now

	sess, err := p.dial(p.url, p.exchange)
	if err != nil {
		return nil, fmt.Errorf("redial AMQP: %w", err)
	}
	slog.Info("AMQP connection re-established", "exchange", p.exchange)
	p.attach(sess)
	return sess.channel, nil
}

// discard closes the session owning ch if it is still current.
func (p *Publisher) discard(ch channel) {
	p.mu.Lock()
	sess := p.sess
	if sess == nil || sess.channel != ch {
		p.mu.Unlock()
		return
	}
	p.sess = nil
	p.mu.Unlock()
	sess.close()
}

// PublishLedgerEvent publishes a persistent JSON message. A publish on a
// closed channel is retried once on a fresh session.
func (p *Publisher) PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ledger event: %w", err)
	}

	for attempt := 0; ; attempt++ {
		ch, err := p.currentChannel()
		if err != nil {
			return fmt.Errorf("publish ledger event %s: %w", event.EventID, err)
		}

		err = p.publish(ctx, ch, event, body)
		if err == nil {
			break
		}
		if !errors.Is(err, amqp091.ErrClosed) {
			return fmt.Errorf("publish ledger event %s: %w", event.EventID, err)
		}
		p.discard(ch)
		if attempt > 0 {
			return fmt.Errorf("publish ledger event %s: %w", event.EventID, err)
		}
	}

	slog.DebugContext(ctx, "Published ledger event",
		"eventID", event.EventID,
		"type", event.Type,
		"expenseID", event.ExpenseID,
		"exchange", p.exchange)
	return nil
}

func (p *Publisher) publish(ctx context.Context, ch channel, event domain.LedgerEvent, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return ch.PublishWithContext(ctx,
		p.exchange,         // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	p.shutdown = true
	sess := p.sess
	p.sess = nil
	p.mu.Unlock()

	if sess == nil {
		return nil
	}
	if sess.channel != nil {
		sess.channel.Close()
	}
	if sess.conn != nil {
		return sess.conn.Close()
	}
	return nil
}

// NoopPublisher drops every event. It stands in when no broker is configured.
type NoopPublisher struct{}

var _ messaging.LedgerEventPublisher = NoopPublisher{}

func (NoopPublisher) PublishLedgerEvent(context.Context, domain.LedgerEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
