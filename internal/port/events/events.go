package events

import (
	"context"
	"time"

	"github.com/ymoumine/RentalAI/internal/prediction/domain"
)

// PredictionCompleted is emitted after the ML service answered a prediction.
type PredictionCompleted struct {
	ID          string         `json:"id"`
	Request     domain.Request `json:"request"`
	Prediction  float64        `json:"prediction"`
	Accuracy    *float64       `json:"accuracy,omitempty"`
	CompletedAt time.Time      `json:"completedAt"`
}

type Publisher interface {
	PublishPredictionCompleted(ctx context.Context, event PredictionCompleted) error
}
