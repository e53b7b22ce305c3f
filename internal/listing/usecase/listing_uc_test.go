package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/platform/metrics"
)

type MockListingSource struct{ mock.Mock }

func (m *MockListingSource) FetchListings(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

const sixListings = `{"listings": [
	{"Id": "a", "Property.LeaseRentUnformattedValue": 1000, "Building.Bedrooms": "1"},
	{"Id": "b", "Property.LeaseRentUnformattedValue": 2000},
	{"Id": "c", "Property.LeaseRentUnformattedValue": NaN},
	{"Id": "d", "Property.LeaseRentUnformattedValue": 3000},
	{"Id": 5, "Property.LeaseRentUnformattedValue": 0},
	{"Id": "f", "Property.LeaseRentUnformattedValue": "4000"}
]}`

func newTestListingUsecase(source *MockListingSource, m *metrics.MetricsManager) *ListingUsecase {
	log := logger.NewNop()
	return NewListingUsecase(source, NewNormalizer(log), 4, m, log)
}

func TestListingUsecase_Browse(t *testing.T) {
	source := new(MockListingSource)
	source.On("FetchListings", mock.Anything).Return([]byte(sixListings), nil)
	m := metrics.NewMetricsManager("test")
	uc := newTestListingUsecase(source, m)

	page := uc.Browse(context.Background(), 2)

	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, []string{"5", "f"}, ids(page.Items))
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
	assert.Equal(t, 6.0, testutil.ToFloat64(m.ListingsNormalized))
	source.AssertExpectations(t)
}

func TestListingUsecase_Browse_UpstreamFailure(t *testing.T) {
	source := new(MockListingSource)
	source.On("FetchListings", mock.Anything).Return(nil, errors.New("connection refused"))
	uc := newTestListingUsecase(source, metrics.NewMetricsManager("test"))

	page := uc.Browse(context.Background(), 1)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
}

func TestListingUsecase_Get(t *testing.T) {
	source := new(MockListingSource)
	source.On("FetchListings", mock.Anything).Return([]byte(sixListings), nil)
	uc := newTestListingUsecase(source, metrics.NewMetricsManager("test"))
	ctx := context.Background()

	l, ok := uc.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "1", l.BedroomsLabel())

	numeric, ok := uc.Get(ctx, "5")
	assert.True(t, ok)
	assert.Equal(t, "5", numeric.ID.Value)

	_, ok = uc.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestListingUsecase_Stats(t *testing.T) {
	source := new(MockListingSource)
	source.On("FetchListings", mock.Anything).Return([]byte(sixListings), nil)
	uc := newTestListingUsecase(source, metrics.NewMetricsManager("test"))

	stats := uc.Stats(context.Background())

	assert.Equal(t, 6, stats.Count)
	assert.Equal(t, 2500, stats.Mean)
	assert.Equal(t, 2500, stats.Median)
}

func TestListingUsecase_MalformedBody(t *testing.T) {
	source := new(MockListingSource)
	source.On("FetchListings", mock.Anything).Return([]byte(`{bad json`), nil)
	uc := newTestListingUsecase(source, metrics.NewMetricsManager("test"))

	assert.Empty(t, uc.All(context.Background()))
	assert.Equal(t, 0, uc.Stats(context.Background()).Count)
}
