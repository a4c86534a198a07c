package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

const TypeTransactionRecorded = "transaction.recorded"

// TransactionRecorded is published after a ledger operation commits.
type TransactionRecorded struct {
	EventID         string    `json:"event_id"`
	Type            string    `json:"type"`
	UserID          int64     `json:"user_id"`
	TransactionID   int64     `json:"transaction_id"`
	TransactionType string    `json:"transaction_type"`
	AccountID       int64     `json:"account_id"`
	ToAccountID     *int64    `json:"to_account_id,omitempty"`
	CategoryID      *int64    `json:"category_id,omitempty"`
	Amount          string    `json:"amount"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewTransactionRecorded(txn *models.Transaction) TransactionRecorded {
	return TransactionRecorded{
		EventID:         uuid.NewString(),
		Type:            TypeTransactionRecorded,
		UserID:          txn.UserID,
		TransactionID:   txn.TransactionID,
		TransactionType: string(txn.TransactionType),
		AccountID:       txn.AccountID,
		ToAccountID:     txn.ToAccountID,
		CategoryID:      txn.CategoryID,
		Amount:          txn.Amount.StringFixed(models.MinorUnitExponent),
		OccurredAt:      txn.TransactionDate,
	}
}

type Publisher interface {
	PublishTransactionRecorded(ctx context.Context, evt TransactionRecorded) error
	Close() error
}

// NopPublisher drops events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishTransactionRecorded(context.Context, TransactionRecorded) error { return nil }
func (NopPublisher) Close() error { return nil }

// channel is the subset of *amqp091.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	queue    string
	log      logrus.FieldLogger
}

func NewAMQPPublisher(url, exchange, queue string, log logrus.FieldLogger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchange, queue, log)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange, queue string, log logrus.FieldLogger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{channel: ch, exchange: exchange, queue: queue, log: log}
	if err := p.setup(); err != nil {
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return p, nil
}

func (p *AMQPPublisher) setup() error {
	if err := p.channel.ExchangeDeclare(p.exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := p.channel.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	// Direct exchange: the routing key is the queue name.
	if err := p.channel.QueueBind(p.queue, p.queue, p.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (p *AMQPPublisher) PublishTransactionRecorded(ctx context.Context, evt TransactionRecorded) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, p.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    evt.EventID,
		Type:         evt.Type,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"event_id":       evt.EventID,
		"transaction_id": evt.TransactionID,
		"exchange":       p.exchange,
	}).Debug("Published transaction event")
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
