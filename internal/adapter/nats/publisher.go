package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/port/events"
)

const PredictionCompletedSubject = "rentalai.prediction.completed"

type Publisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

func NewNATSPublisher(url string, connectTimeout time.Duration, log *logger.Logger) (*Publisher, error) {
	log = log.Named("nats")
	opts := []nats.Option{
		nats.Name("rentalai-web"),
		nats.Timeout(connectTimeout),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			log.Error("NATS error", zap.String("subject", subject), zap.Error(err))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: log}, nil
}

func (p *Publisher) PublishPredictionCompleted(ctx context.Context, event events.PredictionCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal prediction event",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.String("subject", PredictionCompletedSubject),
		)
		return fmt.Errorf("failed to marshal event for %s: %w", PredictionCompletedSubject, err)
	}

	if err := p.nc.Publish(PredictionCompletedSubject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", PredictionCompletedSubject),
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish NATS message for %s: %w", PredictionCompletedSubject, err)
	}
	p.logger.Debug("Published NATS message",
		zap.String("subject", PredictionCompletedSubject),
		zap.String("event_id", event.ID),
	)
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}

// NopPublisher drops every event. Used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishPredictionCompleted(context.Context, events.PredictionCompleted) error {
	return nil
}
