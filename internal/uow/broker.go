package uow

import (
	"context"

	"github.com/Skotchmaster/health_account/internal/repo"
)

// KafkaUOW binds the producer to the session-events topic. A sent event is
// final; there is no rollback.
type KafkaUOW struct {
	publisher repo.EventPublisher
	topic     string
}

func NewKafkaUOW(p repo.EventPublisher, topic string) *KafkaUOW {
	return &KafkaUOW{publisher: p, topic: topic}
}

func (w *KafkaUOW) Do(ctx context.Context, fn func(ctx context.Context, u *BrokerUnit) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &BrokerUnit{Sessions: repo.NewSessionRepository(w.publisher, w.topic)})
}
