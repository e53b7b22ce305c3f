package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ymoumine/RentalAI/internal/dashboard/domain"
	listingdomain "github.com/ymoumine/RentalAI/internal/listing/domain"
	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/port/upstream"
)

// StatsSource computes rent statistics over the current listings.
type StatsSource interface {
	Stats(ctx context.Context) listingdomain.Stats
}

type DashboardUsecase struct {
	stats  StatsSource
	charts upstream.ChartSource
	logger *logger.Logger
}

func NewDashboardUsecase(stats StatsSource, charts upstream.ChartSource, log *logger.Logger) *DashboardUsecase {
	return &DashboardUsecase{
		stats:  stats,
		charts: charts,
		logger: log.Named("dashboard_usecase"),
	}
}

// Load gathers stats and chart URLs concurrently. A failing chart leaves its
// URL empty; the rest of the dashboard is still returned.
func (uc *DashboardUsecase) Load(ctx context.Context) domain.Dashboard {
	var (
		dash domain.Dashboard
		g    errgroup.Group
	)
	g.Go(func() error {
		dash.Stats = uc.stats.Stats(ctx)
		return nil
	})
	g.Go(func() error {
		dash.Charts = uc.Charts(ctx)
		return nil
	})
	_ = g.Wait()
	return dash
}

// Charts fetches the three chart URLs concurrently.
func (uc *DashboardUsecase) Charts(ctx context.Context) domain.Charts {
	var (
		charts domain.Charts
		g      errgroup.Group
	)
	g.Go(uc.fetch(ctx, "rent_by_month", uc.charts.FetchRentByMonth, &charts.RentByMonthURL))
	g.Go(uc.fetch(ctx, "rent_distribution", uc.charts.FetchRentDistribution, &charts.RentDistributionURL))
	g.Go(uc.fetch(ctx, "feature_importance", uc.charts.FetchFeatureImportance, &charts.FeatureImportanceURL))
	_ = g.Wait()
	return charts
}

func (uc *DashboardUsecase) fetch(ctx context.Context, chart string, get func(context.Context) (string, error), dst *string) func() error {
	return func() error {
		url, err := get(ctx)
		if err != nil {
			uc.logger.Error("Error fetching chart", zap.String("chart", chart), zap.Error(err))
			return nil
		}
		*dst = url
		return nil
	}
}
