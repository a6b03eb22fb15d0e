package service

import (
	"context"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/message-queue/kafka"
	"github.com/rs/zerolog/log"
)

// publishUserEvent is best effort: the change is already committed when it runs.
func publishUserEvent(ctx context.Context, publisher kafka.Publisher, eventType string, user domain.User) {
	if publisher == nil {
		return
	}

	msg := dto.KafkaMessage{
		EventType: eventType,
		Data: dto.UserEvent{
			ID:          user.ID,
			ExternalID:  user.ExternalID,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			IsSuspended: user.IsSuspended,
		},
	}

	if err := publisher.Publish(ctx, user.ExternalID, msg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishUserEvent").Str("event_type", eventType).Msg("")
	}
}
