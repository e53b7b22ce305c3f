package handler

import (
	"net/http"

	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/web"
)

type feature struct {
	Name        string
	Description string
}

type serviceInfo struct {
	Name        string
	Port        string
	Description string
}

type homeView struct {
	Features []feature
}

type aboutView struct {
	Services []serviceInfo
}

var homeFeatures = []feature{
	{"Find the perfect rent.", "Discover your ideal rental property with accurate predictions based on your criteria and preferences."},
	{"Secure and reliable.", "Enjoy a secure and reliable platform with advanced SSL certificates to protect your information."},
	{"Data-driven predictions.", "Benefit from database backups and data-driven insights to make informed rental decisions."},
}

var architecture = []serviceInfo{
	{"Web Frontend", "Port 3000", "Server-rendered pages for listings, dashboards and predictions."},
	{"Backend API", "Port 5000", "Serves scraped listings and pre-rendered market charts."},
	{"ML Prediction Service", "Port 5001", "Scores rental features and reports feature importance."},
}

// PageHandler serves the static informational pages.
type PageHandler struct {
	pages pageWriter
}

func NewPageHandler(r Renderer, log *logger.Logger) *PageHandler {
	return &PageHandler{pages: pageWriter{renderer: r, logger: log.Named("page_handler")}}
}

func (h *PageHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/home", http.StatusFound)
}

func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, web.PageHome, web.View{Title: "Home", Nav: "home", Body: homeView{Features: homeFeatures}})
}

func (h *PageHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, web.PageAbout, web.View{Title: "About", Nav: "about", Body: aboutView{Services: architecture}})
}

func (h *PageHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusNotFound, web.PageNotFound, web.View{Title: "Not Found"})
}

func (h *PageHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.pages.logger, http.StatusOK, map[string]string{"status": "ok"})
}
