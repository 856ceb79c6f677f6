package repo

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/health_account/internal/models"
)

const DefaultSessionTopic = "sessions"

type KafkaSessionRepository struct {
	Publisher EventPublisher
	Topic     string
}

func NewSessionRepository(p EventPublisher, topic string) *KafkaSessionRepository {
	if topic == "" {
		topic = DefaultSessionTopic
	}
	return &KafkaSessionRepository{Publisher: p, Topic: topic}
}

// Send hands the event to the broker keyed by user id.
func (r *KafkaSessionRepository) Send(ctx context.Context, s models.Session) error {
	var key string
	if s.UserID != 0 {
		key = strconv.FormatInt(s.UserID, 10)
	}
	return r.Publisher.PublishEvent(ctx, r.Topic, key, s)
}
