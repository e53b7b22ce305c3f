package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ymoumine/RentalAI/internal/listing/domain"
	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/web"
)

type ListingService interface {
	Browse(ctx context.Context, page int) domain.Page
	Get(ctx context.Context, id string) (domain.Listing, bool)
}

type listingView struct {
	ID          string
	Address     string
	Province    string
	Rent        string
	Bedrooms    string
	ExternalURL string
}

type listingsPageView struct {
	Page  domain.Page
	Items []listingView
}

type propertyPageView struct {
	ID      string
	Listing *listingView
}

// ListingHandler serves the listing pages and their JSON counterparts.
type ListingHandler struct {
	listings ListingService
	baseURL  string
	pages    pageWriter
	logger   *logger.Logger
}

func NewListingHandler(listings ListingService, listingBaseURL string, r Renderer, log *logger.Logger) *ListingHandler {
	log = log.Named("listing_handler")
	return &ListingHandler{
		listings: listings,
		baseURL:  listingBaseURL,
		pages:    pageWriter{renderer: r, logger: log},
		logger:   log,
	}
}

func (h *ListingHandler) toView(l domain.Listing) listingView {
	bedrooms := l.BedroomsLabel()
	if bedrooms != domain.StudioLabel {
		bedrooms = "Bedrooms: " + bedrooms
	}
	return listingView{
		ID:          l.ID.Or(""),
		Address:     l.AddressText.Or(""),
		Province:    l.ProvinceName.Or(""),
		Rent:        l.LeaseRentRaw.Or(""),
		Bedrooms:    bedrooms,
		ExternalURL: l.ExternalURL(h.baseURL),
	}
}

// pageParam reads ?page=N. Missing or malformed values mean page 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

func (h *ListingHandler) HandleListingsPage(w http.ResponseWriter, r *http.Request) {
	page := h.listings.Browse(r.Context(), pageParam(r))

	items := make([]listingView, 0, len(page.Items))
	for _, l := range page.Items {
		items = append(items, h.toView(l))
	}
	h.pages.render(w, http.StatusOK, web.PageListings, web.View{
		Title: "Listings",
		Nav:   "listings",
		Body:  listingsPageView{Page: page, Items: items},
	})
}

func (h *ListingHandler) HandlePropertyPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view := propertyPageView{ID: id}
	if l, ok := h.listings.Get(r.Context(), id); ok {
		lv := h.toView(l)
		view.Listing = &lv
	} else {
		h.logger.Debug("Property not found in current listings", zap.String("id", id))
	}
	h.pages.render(w, http.StatusOK, web.PageProperty, web.View{Title: "Property " + id, Nav: "listings", Body: view})
}

func (h *ListingHandler) HandleListAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.listings.Browse(r.Context(), pageParam(r)))
}

func (h *ListingHandler) HandleGetAPI(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, ok := h.listings.Get(r.Context(), id)
	if !ok {
		writeJSON(w, h.logger, http.StatusNotFound, errorResponse{Error: "listing not found"})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, l)
}
