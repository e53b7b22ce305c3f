package handler

import (
	"context"
	"net/http"

	"github.com/ymoumine/RentalAI/internal/dashboard/domain"
	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/web"
)

type DashboardService interface {
	Load(ctx context.Context) domain.Dashboard
	Charts(ctx context.Context) domain.Charts
}

type DashboardHandler struct {
	dashboard DashboardService
	pages     pageWriter
	logger    *logger.Logger
}

func NewDashboardHandler(dashboard DashboardService, r Renderer, log *logger.Logger) *DashboardHandler {
	log = log.Named("dashboard_handler")
	return &DashboardHandler{
		dashboard: dashboard,
		pages:     pageWriter{renderer: r, logger: log},
		logger:    log,
	}
}

func (h *DashboardHandler) HandleDashboardPage(w http.ResponseWriter, r *http.Request) {
	dash := h.dashboard.Load(r.Context())
	h.pages.render(w, http.StatusOK, web.PageDashboard, web.View{Title: "Dashboard", Nav: "dashboard", Body: dash})
}

func (h *DashboardHandler) HandleDataPage(w http.ResponseWriter, r *http.Request) {
	charts := h.dashboard.Charts(r.Context())
	h.pages.render(w, http.StatusOK, web.PageData, web.View{Title: "Data", Nav: "data", Body: charts})
}

func (h *DashboardHandler) HandleDashboardAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.dashboard.Load(r.Context()))
}
