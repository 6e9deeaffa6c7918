package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fatura/internal/render"
	"github.com/MrJamesThe3rd/fatura/internal/state"
	"github.com/MrJamesThe3rd/fatura/internal/totals"
)

// Loader provides the current application state. The preview server loads
// fresh on every request so it always reflects the latest saved data.
type Loader interface {
	State(ctx context.Context) (*state.State, error)
}

// PDFRenderer writes an invoice as a PDF document.
type PDFRenderer interface {
	Render(w io.Writer, in render.Input) error
}

type Handler struct {
	loader Loader
	html   render.Renderer
	pdf    PDFRenderer
}

func NewHandler(loader Loader, html render.Renderer, pdf PDFRenderer) *Handler {
	return &Handler{loader: loader, html: html, pdf: pdf}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}/print", h.print)
	r.Get("/{id}/pdf", h.downloadPDF)
}

type invoiceResponse struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	IssueDate string `json:"issueDate"`
	DueDate   string `json:"dueDate"`
	Client    string `json:"client"`
	Status    string `json:"status"`
	Gross     string `json:"gross"`
	Currency  string `json:"currency"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	st, err := h.loader.State(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]invoiceResponse, 0, len(st.Invoices))

	for i := range st.Invoices {
		inv := &st.Invoices[i]
		b := totals.Calculate(inv)

		clientName := ""
		if c := st.ClientByID(inv.ClientID); c != nil {
			clientName = c.Name
		}

		resp = append(resp, invoiceResponse{
			ID:        inv.ID,
			Number:    inv.Number,
			IssueDate: inv.IssueDate.String(),
			DueDate:   inv.DueDate.String(),
			Client:    clientName,
			Status:    string(inv.Status),
			Gross:     b.Gross.StringFixed(2),
			Currency:  st.Settings.Currency,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) print(w http.ResponseWriter, r *http.Request) {
	st, inv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	doc, err := h.html.RenderHTML(render.BuildInput(st, inv))
	if err != nil {
		slog.Error("failed to render invoice", "error", err, "invoice", inv.Number)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if _, err := io.WriteString(w, doc); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func (h *Handler) downloadPDF(w http.ResponseWriter, r *http.Request) {
	st, inv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", inv.Number+".pdf"))

	if err := h.pdf.Render(w, render.BuildInput(st, inv)); err != nil {
		slog.Error("failed to render pdf", "error", err, "invoice", inv.Number)
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*state.State, *state.Invoice, bool) {
	st, err := h.loader.State(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil, false
	}

	inv := st.InvoiceByID(chi.URLParam(r, "id"))
	if inv == nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return nil, nil, false
	}

	return st, inv, true
}
