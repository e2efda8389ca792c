package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IConsumerService drains turn events off the in-process bus and writes them
// to an isolated usage log, keeping accounting out of the request path.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	usageLog   logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, usageLog logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		usageLog:   usageLog,
	}
}

type turnEventPayload struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt string                 `json:"occurred_at"`
}

func (s *consumerService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, constant.TopicTurnEvents)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", constant.TopicTurnEvents, err)
	}

	for msg := range messages {
		var payload turnEventPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.usageLog.Warn("consumer", "malformed turn event", map[string]interface{}{
				"error": err.Error(),
			})
			msg.Ack()
			continue
		}

		s.usageLog.Info("consumer", payload.Type, payload.Data)
		msg.Ack()
	}
	return nil
}
