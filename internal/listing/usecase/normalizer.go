package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"regexp"

	"go.uber.org/zap"

	"github.com/ymoumine/RentalAI/internal/listing/domain"
	"github.com/ymoumine/RentalAI/internal/platform/logger"
)

// nonFiniteToken matches the bare NaN/Infinity values some Python JSON encoders emit.
var nonFiniteToken = regexp.MustCompile(`:\s*(?:-Infinity|Infinity|NaN)\b`)

// wrapperKeys are tried in order when the payload is an object.
var wrapperKeys = []string{"listings", "properties"}

const logSampleLen = 200

// Normalizer turns whatever the listings endpoint returned into an ordered
// sequence of raw records. It never fails; unusable input yields an empty sequence.
type Normalizer struct {
	logger *logger.Logger
}

func NewNormalizer(log *logger.Logger) *Normalizer {
	return &Normalizer{logger: log.Named("normalizer")}
}

// Normalize accepts decoded JSON values, raw text or bytes.
// The result is never nil.
func (n *Normalizer) Normalize(payload any) []domain.RawListing {
	switch p := payload.(type) {
	case nil:
		return []domain.RawListing{}
	case string:
		return n.fromText(p, false)
	case []byte:
		return n.fromText(string(p), false)
	case json.RawMessage:
		return n.fromText(string(p), false)
	case []domain.RawListing:
		if p == nil {
			return []domain.RawListing{}
		}
		return p
	case []map[string]any:
		out := make([]domain.RawListing, 0, len(p))
		for _, m := range p {
			out = append(out, domain.RawListing(m))
		}
		return out
	case []any:
		return n.fromSequence(p)
	case domain.RawListing:
		return n.fromObject(p)
	case map[string]any:
		return n.fromObject(p)
	default:
		n.logger.Warn("Unsupported listings payload type", zap.String("type", typeName(payload)))
		return []domain.RawListing{}
	}
}

// NormalizeBody handles an HTTP response body. A body that is itself a JSON
// string literal is unwrapped once before parsing.
func (n *Normalizer) NormalizeBody(body []byte) []domain.RawListing {
	return n.fromText(string(body), true)
}

func (n *Normalizer) fromText(text string, unwrap bool) []domain.RawListing {
	cleaned := nonFiniteToken.ReplaceAllString(text, ": null")

	value, err := decodeJSON(cleaned)
	if err != nil {
		n.logger.Error("Failed to parse listings payload",
			zap.Error(err),
			zap.String("sample", sample(text)),
		)
		return []domain.RawListing{}
	}

	if inner, ok := value.(string); ok {
		if unwrap {
			return n.fromText(inner, false)
		}
		return []domain.RawListing{}
	}
	return n.fromDecoded(value)
}

func (n *Normalizer) fromDecoded(value any) []domain.RawListing {
	switch v := value.(type) {
	case []any:
		return n.fromSequence(v)
	case map[string]any:
		return n.fromObject(v)
	default:
		return []domain.RawListing{}
	}
}

func (n *Normalizer) fromObject(obj map[string]any) []domain.RawListing {
	for _, key := range wrapperKeys {
		v, ok := obj[key]
		if !ok || !truthy(v) {
			continue
		}
		switch seq := v.(type) {
		case []any:
			return n.fromSequence(seq)
		case []domain.RawListing, []map[string]any:
			return n.Normalize(seq)
		default:
			n.logger.Warn("Listings wrapper is not a sequence", zap.String("key", key), zap.String("type", typeName(v)))
			return []domain.RawListing{}
		}
	}
	return []domain.RawListing{}
}

func (n *Normalizer) fromSequence(seq []any) []domain.RawListing {
	out := make([]domain.RawListing, 0, len(seq))
	for i, el := range seq {
		switch m := el.(type) {
		case map[string]any:
			out = append(out, domain.RawListing(m))
		case domain.RawListing:
			out = append(out, m)
		default:
			n.logger.Debug("Listing element is not an object", zap.Int("index", i), zap.String("type", typeName(el)))
			out = append(out, domain.RawListing{})
		}
	}
	return out
}

func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return value, nil
}

// truthy mirrors loose truthiness: null, false, zero and "" are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

func sample(text string) string {
	if len(text) <= logSampleLen {
		return text
	}
	return text[:logSampleLen]
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "other"
	}
}
