package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	ProvinceOntario = 0
	ProvinceQuebec  = 1

	BuildingApartment = 0
	BuildingHome      = 1

	AmenitiesNone = 7

	ParkingNone  = 0
	ParkingSmall = 1
	ParkingBig   = 2
	ParkingHuge  = 3

	DefaultPostedDate = "2024-01-01"
)

// Request is the feature vector the ML service scores.
type Request struct {
	BedNumb       int    `json:"bedNumb" validate:"gte=0,lte=20"`
	StoryNumb     int    `json:"storyNumb" validate:"gte=0,lte=200"`
	City          string `json:"city" validate:"max=100"`
	Province      int    `json:"province" validate:"oneof=0 1"`
	BuildingType  int    `json:"buildingType" validate:"oneof=0 1"`
	Amenities     int    `json:"amenities" validate:"gte=1,lte=7"`
	PublicTransit bool   `json:"publicTransit"`
	Recreation    bool   `json:"recreation"`
	Shops         bool   `json:"shops"`
	Highway       bool   `json:"highway"`
	Park          bool   `json:"park"`
	Schools       bool   `json:"schools"`
	College       bool   `json:"college"`
	Hospital      bool   `json:"hospital"`
	University    bool   `json:"university"`
	HasParking    bool   `json:"hasParking"`
	ParkingSize   int    `json:"parkingSize" validate:"gte=0,lte=3"`
	PostedDate    string `json:"postedDate" validate:"required,isodate"`
}

// DefaultRequest is the form's initial state.
func DefaultRequest() Request {
	return Request{
		BedNumb:    1,
		StoryNumb:  1,
		Amenities:  AmenitiesNone,
		PostedDate: DefaultPostedDate,
	}
}

// Result is the ML service's answer.
type Result struct {
	Prediction float64  `json:"prediction"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
}

var ErrNoPrediction = errors.New("prediction missing from response")

// UnmarshalJSON accepts a prediction given as a number, a numeric string or a
// list whose first element is used, and an accuracy given as number or string.
func (r *Result) UnmarshalJSON(data []byte) error {
	var wire struct {
		Prediction json.RawMessage `json:"prediction"`
		Accuracy   json.RawMessage `json:"accuracy"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	prediction, ok, err := flexibleNumber(wire.Prediction)
	if err != nil {
		return fmt.Errorf("prediction: %w", err)
	}
	if !ok {
		return ErrNoPrediction
	}
	r.Prediction = prediction

	r.Accuracy = nil
	accuracy, ok, err := flexibleNumber(wire.Accuracy)
	if err != nil {
		return fmt.Errorf("accuracy: %w", err)
	}
	if ok {
		r.Accuracy = &accuracy
	}
	return nil
}

func flexibleNumber(raw json.RawMessage) (float64, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}

	switch raw[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return 0, false, err
		}
		if len(list) == 0 {
			return 0, false, nil
		}
		return flexibleNumber(list[0])
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, err
		}
		return f, true, nil
	default:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return 0, false, err
		}
		return f, true, nil
	}
}

// PredictionLabel formats the predicted rent, e.g. "$1850.5".
func (r Result) PredictionLabel() string {
	return "$" + strconv.FormatFloat(r.Prediction, 'f', -1, 64)
}

// AccuracyLabel formats the model accuracy with two decimals, or "" when unknown.
func (r Result) AccuracyLabel() string {
	if r.Accuracy == nil {
		return ""
	}
	return fmt.Sprintf("%.2f%%", *r.Accuracy)
}
