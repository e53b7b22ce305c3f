package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/ymoumine/RentalAI/internal/listing/domain"
	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/platform/metrics"
	"github.com/ymoumine/RentalAI/internal/port/upstream"
)

// ListingUsecase serves the listing views. Upstream failures degrade to an
// empty sequence instead of surfacing as errors.
type ListingUsecase struct {
	source     upstream.ListingSource
	normalizer *Normalizer
	pageSize   int
	metrics    *metrics.MetricsManager
	logger     *logger.Logger
}

func NewListingUsecase(
	source upstream.ListingSource,
	normalizer *Normalizer,
	pageSize int,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *ListingUsecase {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListingUsecase{
		source:     source,
		normalizer: normalizer,
		pageSize:   pageSize,
		metrics:    m,
		logger:     log.Named("listing_usecase"),
	}
}

// All fetches and decodes every listing in upstream order.
func (uc *ListingUsecase) All(ctx context.Context) []domain.Listing {
	body, err := uc.source.FetchListings(ctx)
	if err != nil {
		uc.logger.Error("Error fetching listings", zap.Error(err))
		return []domain.Listing{}
	}

	raws := uc.normalizer.NormalizeBody(body)
	uc.metrics.ListingsNormalized.Set(float64(len(raws)))
	return domain.FromRawAll(raws)
}

// Browse returns one page of listings. Out-of-range pages are clamped.
func (uc *ListingUsecase) Browse(ctx context.Context, page int) domain.Page {
	return Paginate(uc.All(ctx), page, uc.pageSize)
}

// Get finds the first listing carrying id.
func (uc *ListingUsecase) Get(ctx context.Context, id string) (domain.Listing, bool) {
	for _, l := range uc.All(ctx) {
		if l.ID.Valid && l.ID.Value == id {
			return l, true
		}
	}
	return domain.Listing{}, false
}

func (uc *ListingUsecase) Stats(ctx context.Context) domain.Stats {
	return ComputeStats(uc.All(ctx))
}
