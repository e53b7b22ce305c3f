package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/platform/metrics"
	"github.com/ymoumine/RentalAI/internal/platform/validator"
	"github.com/ymoumine/RentalAI/internal/port/events"
	"github.com/ymoumine/RentalAI/internal/port/upstream"
	"github.com/ymoumine/RentalAI/internal/prediction/domain"
)

// ErrInvalidRequest wraps validation failures of a prediction request.
var ErrInvalidRequest = errors.New("invalid prediction request")

type PredictionUsecase struct {
	predictor upstream.Predictor
	publisher events.Publisher
	validator *validator.Validator
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
	now       func() time.Time
}

func NewPredictionUsecase(
	predictor upstream.Predictor,
	publisher events.Publisher,
	v *validator.Validator,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *PredictionUsecase {
	return &PredictionUsecase{
		predictor: predictor,
		publisher: publisher,
		validator: v,
		metrics:   m,
		logger:    log.Named("prediction_usecase"),
		now:       time.Now,
	}
}

// Predict validates req, asks the ML service for a rent estimate and announces
// the result. Publishing is best effort.
func (uc *PredictionUsecase) Predict(ctx context.Context, req domain.Request) (domain.Result, error) {
	if err := uc.validator.Struct(req); err != nil {
		uc.metrics.PredictionsTotal.WithLabelValues("invalid").Inc()
		return domain.Result{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	result, err := uc.predictor.Predict(ctx, req)
	if err != nil {
		uc.metrics.PredictionsTotal.WithLabelValues("error").Inc()
		uc.logger.Error("Prediction request failed", zap.Error(err), zap.Any("request", req))
		return domain.Result{}, fmt.Errorf("PredictionUsecase.Predict: %w", err)
	}
	uc.metrics.PredictionsTotal.WithLabelValues("ok").Inc()

	if uc.publisher != nil {
		event := events.PredictionCompleted{
			ID:          uuid.NewString(),
			Request:     req,
			Prediction:  result.Prediction,
			Accuracy:    result.Accuracy,
			CompletedAt: uc.now().UTC(),
		}
		if err := uc.publisher.PublishPredictionCompleted(ctx, event); err != nil {
			uc.logger.Warn("Failed to publish prediction event", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
	return result, nil
}
