package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/refset/ticketsim/internal/sim"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes ticket results to Kafka, one topic per worker variant
type Producer struct {
	humanWriter messageWriter
	aiWriter    messageWriter
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, humanTopic, aiTopic string) *Producer {
	return &Producer{
		humanWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    humanTopic,
			Balancer: &kafka.LeastBytes{},
		},
		aiWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    aiTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Producer) Name() string { return "kafka" }

// Write sends every record of the batch, keyed by run and ticket id
func (p *Producer) Write(ctx context.Context, b *sim.Batch) error {
	human, err := buildMessages(b.RunID, b.Human)
	if err != nil {
		return err
	}
	if err := p.humanWriter.WriteMessages(ctx, human...); err != nil {
		return fmt.Errorf("publish human results: %w", err)
	}

	ai, err := buildMessages(b.RunID, b.AI)
	if err != nil {
		return err
	}
	if err := p.aiWriter.WriteMessages(ctx, ai...); err != nil {
		return fmt.Errorf("publish ai results: %w", err)
	}

	slog.Info("published results to Kafka",
		slog.String("run_id", b.RunID),
		slog.Int("human", len(human)),
		slog.Int("ai", len(ai)))
	return nil
}

// envelope is the message value: the ticket record plus its run.
type envelope struct {
	RunID string `json:"run_id"`
	sim.TicketResult
}

func buildMessages(runID string, records []sim.TicketResult) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(envelope{RunID: runID, TicketResult: rec})
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", rec.TicketID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(runID + "/" + rec.TicketID),
			Value: data,
		})
	}
	return msgs, nil
}

// Close closes both Kafka writers, even if the first one fails
func (p *Producer) Close() error {
	return errors.Join(p.humanWriter.Close(), p.aiWriter.Close())
}
