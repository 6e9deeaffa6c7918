package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fatura/internal/export"
	"github.com/MrJamesThe3rd/fatura/internal/state"
)

// Loader provides the current application state.
type Loader interface {
	State(ctx context.Context) (*state.State, error)
}

type Handler struct {
	loader Loader
	svc    *export.Service
	now    func() time.Time
}

func NewHandler(loader Loader, svc *export.Service) *Handler {
	return &Handler{loader: loader, svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/json", h.downloadJSON)
	r.Get("/csv", h.downloadCSV)
}

func (h *Handler) downloadJSON(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "application/json", "json", h.svc.WriteJSON)
}

func (h *Handler) downloadCSV(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "text/csv; charset=utf-8", "csv", h.svc.WriteCSV)
}

func (h *Handler) download(
	w http.ResponseWriter,
	r *http.Request,
	contentType, ext string,
	write func(io.Writer, *state.State) error,
) {
	st, err := h.loader.State(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("fatura_%s.%s", h.now().Format("20060102"), ext)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := write(w, st); err != nil {
		slog.Error("failed to write export", "error", err, "format", ext)
	}
}
