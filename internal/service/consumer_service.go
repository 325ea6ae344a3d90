package service

import (
	"context"
	"encoding/json"
	"log"

	"textrec-be/internal/dto"
	"textrec-be/internal/pkg/logger"
	"textrec-be/pkg/events"
	pktNats "textrec-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	auditLogger    logger.ILogger
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	auditLogger logger.ILogger,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		auditLogger:    auditLogger,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RecognitionCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.auditLogger.Info("recognition", "document processed", map[string]interface{}{
		"key":      payload.Key,
		"language": payload.Language,
		"accuracy": payload.Accuracy,
		"user_id":  payload.UserId,
	})

	if cs.eventPublisher != nil {
		evt := events.RecognitionCompleted(payload.Key, payload.Language, payload.UserId, payload.Accuracy)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			// Broadcast is best effort, the document is already stored.
			log.Printf("[WARN] Failed to forward event to NATS: %v", err)
		}
	}

	msg.Ack()
}
