package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	failures int
	calls    int
	written  []kafka.Message
}

func (w *fakeWriter) WriteMessages(msgs ...kafka.Message) (int, error) {
	w.calls++
	if w.calls <= w.failures {
		return 0, errors.New("broker unavailable")
	}
	w.written = append(w.written, msgs...)
	return len(msgs), nil
}

func TestPublish_RetriesThenSucceeds(t *testing.T) {
	w := &fakeWriter{failures: 2}
	p := CreateNewPublisher(w, 0)

	err := p.Publish(context.Background(), "01J", dto.KafkaMessage{EventType: dto.EventUserCreated, Data: dto.UserEvent{ID: 1}})
	require.NoError(t, err)
	assert.Equal(t, 3, w.calls)
	require.Len(t, w.written, 1)
	assert.Equal(t, "01J", string(w.written[0].Key))

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(w.written[0].Value, &msg))
	assert.Equal(t, "user_created", msg["event_type"])
}

func TestPublish_GivesUp(t *testing.T) {
	w := &fakeWriter{failures: 5}
	p := CreateNewPublisher(w, 0)

	err := p.Publish(context.Background(), "k", dto.KafkaMessage{EventType: dto.EventUserUpdated})
	assert.Error(t, err)
	assert.Equal(t, defaultMaxRetries, w.calls)
}

func TestPublish_StopsOnCancelledContext(t *testing.T) {
	w := &fakeWriter{failures: 5}
	p := CreateNewPublisher(w, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Publish(ctx, "k", dto.KafkaMessage{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, w.calls)
}
