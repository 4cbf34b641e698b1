// Package events publishes ledger entries to Kafka for the notification
// collaborator. Publishing is fire-and-forget relative to wallet
// operations: the writer is async and errors only reach the log.
package events

import (
	"context"
	"encoding/json"
	"time"

	"kudi/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// TransactionEvent is the wire shape consumed by the notification service.
type TransactionEvent struct {
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"type"`
	Reference     string    `json:"reference"`
	FromCurrency  string    `json:"from_currency,omitempty"`
	ToCurrency    string    `json:"to_currency"`
	Amount        int64     `json:"amount"`
	Rate          string    `json:"rate"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

type Producer struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewProducer(brokers []string, topic string, logger *logrus.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Compression:  kafka.Snappy,
		BatchTimeout: 10 * time.Millisecond,
	}

	logger.Infof("kafka producer initialized for topic %s", topic)

	return &Producer{writer: writer, logger: logger}
}

// PublishTransaction sends one ledger entry. Implements
// wallet.EventPublisher.
func (p *Producer) PublishTransaction(ctx context.Context, entry *models.Transaction) {
	event := TransactionEvent{
		TransactionID: entry.ID,
		UserID:        entry.UserID,
		Type:          entry.Type,
		Reference:     entry.Reference,
		ToCurrency:    string(entry.ToCurrency),
		Amount:        entry.Amount,
		Rate:          entry.Rate.String(),
		Status:        entry.Status,
		Timestamp:     time.Now(),
	}
	if entry.FromCurrency != nil {
		event.FromCurrency = string(*entry.FromCurrency)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Error("failed to marshal transaction event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(entry.UserID),
		Value: payload,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithError(err).WithField("reference", entry.Reference).
			Warn("failed to publish transaction event")
	}
}

func (p *Producer) Close() error {
	if p.writer != nil {
		p.logger.Info("closing kafka producer")
		return p.writer.Close()
	}
	return nil
}
