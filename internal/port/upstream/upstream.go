package upstream

import (
	"context"

	"github.com/ymoumine/RentalAI/internal/prediction/domain"
)

// ListingSource returns the raw body of the listings endpoint.
type ListingSource interface {
	FetchListings(ctx context.Context) ([]byte, error)
}

// ChartSource resolves the image URLs of the pre-rendered charts.
type ChartSource interface {
	FetchRentByMonth(ctx context.Context) (string, error)
	FetchRentDistribution(ctx context.Context) (string, error)
	FetchFeatureImportance(ctx context.Context) (string, error)
}

type Predictor interface {
	Predict(ctx context.Context, req domain.Request) (domain.Result, error)
}
