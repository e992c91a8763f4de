package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"restoran-backoffice/internal/models"
)

type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion:             reportBatch,
	}}
}

// reportBatch runs after each async batch; WriteMessages never sees these errors.
func reportBatch(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		log.Printf("[AUDIT] kafka'ya gönderilemedi (store=%s): %v", m.Key, err)
	}
}

// Publish keys messages by store so a store's entries stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, entry models.AuditLog) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("audit kaydı kodlanamadı: %w", err)
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.StoreID),
		Value: value,
		Time:  entry.CreatedAt,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
