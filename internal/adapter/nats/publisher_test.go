package nats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/port/events"
)

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", 200*time.Millisecond, logger.NewNop())
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p events.Publisher = NopPublisher{}
	assert.NoError(t, p.PublishPredictionCompleted(context.Background(), events.PredictionCompleted{ID: "x"}))
}
