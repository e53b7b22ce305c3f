package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/web"
)

// Renderer renders a named HTML page.
type Renderer interface {
	Render(w io.Writer, name string, view web.View) error
}

type pageWriter struct {
	renderer Renderer
	logger   *logger.Logger
}

// render writes status and page together; a failed render becomes a 500.
func (p pageWriter) render(w http.ResponseWriter, status int, name string, view web.View) {
	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, name, view); err != nil {
		p.logger.Error("Failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		p.logger.Warn("Failed to write page", zap.String("page", name), zap.Error(err))
	}
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode JSON response", zap.Error(err))
	}
}
