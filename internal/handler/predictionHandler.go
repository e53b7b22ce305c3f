package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/platform/validator"
	"github.com/ymoumine/RentalAI/internal/prediction/domain"
	"github.com/ymoumine/RentalAI/internal/prediction/usecase"
	"github.com/ymoumine/RentalAI/internal/web"
)

const maxPredictionBody = 64 << 10

type PredictionService interface {
	Predict(ctx context.Context, req domain.Request) (domain.Result, error)
}

type option struct {
	Value int
	Label string
}

type checkbox struct {
	Name    string
	Label   string
	Checked bool
}

var amenityOptions = []option{
	{7, "None"},
	{1, "Furnished, Laundry Facility"},
	{2, "Laundry - In Suite"},
	{3, "Laundry - In Suite, Exercise Centre"},
	{4, "Laundry Facility"},
	{5, "Party Room, Laundry Facility, Exercise Centre"},
	{6, "Storage - Locker"},
}

var parkingOptions = []option{
	{domain.ParkingNone, "None"},
	{domain.ParkingSmall, "Small (0-5)"},
	{domain.ParkingBig, "Big (6-10)"},
	{domain.ParkingHuge, "Huge (>10)"},
}

type predictionPageView struct {
	Form           domain.Request
	Result         *domain.Result
	Errors         []string
	Failed         bool
	AmenityOptions []option
	ParkingOptions []option
	Nearby         []checkbox
}

func newPredictionPageView(form domain.Request) predictionPageView {
	return predictionPageView{
		Form:           form,
		AmenityOptions: amenityOptions,
		ParkingOptions: parkingOptions,
		Nearby: []checkbox{
			{"publicTransit", "Public Transit", form.PublicTransit},
			{"recreation", "Recreation", form.Recreation},
			{"shops", "Shops", form.Shops},
			{"highway", "Highway", form.Highway},
			{"park", "Park", form.Park},
			{"schools", "Schools", form.Schools},
			{"college", "College", form.College},
			{"hospital", "Hospital", form.Hospital},
			{"university", "University", form.University},
		},
	}
}

// PredictionHandler serves the rent prediction form and API.
type PredictionHandler struct {
	predictions PredictionService
	pages       pageWriter
	logger      *logger.Logger
}

func NewPredictionHandler(predictions PredictionService, r Renderer, log *logger.Logger) *PredictionHandler {
	log = log.Named("prediction_handler")
	return &PredictionHandler{
		predictions: predictions,
		pages:       pageWriter{renderer: r, logger: log},
		logger:      log,
	}
}

func (h *PredictionHandler) renderForm(w http.ResponseWriter, status int, view predictionPageView) {
	h.pages.render(w, status, web.PagePredictions, web.View{Title: "Predictions", Nav: "predictions", Body: view})
}

func (h *PredictionHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, newPredictionPageView(domain.DefaultRequest()))
}

func (h *PredictionHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPredictionBody)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("Invalid prediction form", zap.Error(err))
		view := newPredictionPageView(domain.DefaultRequest())
		view.Errors = []string{"The form could not be read."}
		h.renderForm(w, http.StatusBadRequest, view)
		return
	}

	req, formErrs := requestFromForm(r)
	view := newPredictionPageView(req)
	if len(formErrs) > 0 {
		view.Errors = formErrs
		h.renderForm(w, http.StatusBadRequest, view)
		return
	}

	result, err := h.predictions.Predict(r.Context(), req)
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		view.Errors = validator.Messages(err)
		h.renderForm(w, http.StatusBadRequest, view)
	case err != nil:
		view.Failed = true
		h.renderForm(w, http.StatusBadGateway, view)
	default:
		view.Result = &result
		h.renderForm(w, http.StatusOK, view)
	}
}

func (h *PredictionHandler) HandlePredictAPI(w http.ResponseWriter, r *http.Request) {
	req := domain.DefaultRequest()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPredictionBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := h.predictions.Predict(r.Context(), req)
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "invalid prediction request", Details: validator.Messages(err)})
	case err != nil:
		writeJSON(w, h.logger, http.StatusBadGateway, errorResponse{Error: "prediction service unavailable"})
	default:
		writeJSON(w, h.logger, http.StatusOK, result)
	}
}

// requestFromForm overlays the posted fields on the form defaults.
// Unchecked checkboxes are absent from a form post and therefore false.
func requestFromForm(r *http.Request) (domain.Request, []string) {
	req := domain.DefaultRequest()
	var errs []string

	intField := func(name string, dst *int) {
		raw := strings.TrimSpace(r.PostForm.Get(name))
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be a whole number", name))
			return
		}
		*dst = v
	}
	boolField := func(name string) bool {
		v, err := strconv.ParseBool(r.PostForm.Get(name))
		return err == nil && v
	}

	intField("bedNumb", &req.BedNumb)
	intField("storyNumb", &req.StoryNumb)
	intField("province", &req.Province)
	intField("buildingType", &req.BuildingType)
	intField("amenities", &req.Amenities)
	intField("parkingSize", &req.ParkingSize)

	req.City = strings.TrimSpace(r.PostForm.Get("city"))
	if date := strings.TrimSpace(r.PostForm.Get("postedDate")); date != "" {
		req.PostedDate = date
	}

	req.PublicTransit = boolField("publicTransit")
	req.Recreation = boolField("recreation")
	req.Shops = boolField("shops")
	req.Highway = boolField("highway")
	req.Park = boolField("park")
	req.Schools = boolField("schools")
	req.College = boolField("college")
	req.Hospital = boolField("hospital")
	req.University = boolField("university")
	req.HasParking = boolField("hasParking")

	return req, errs
}
