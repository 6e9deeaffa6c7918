package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fatura/internal/app"
	"github.com/MrJamesThe3rd/fatura/internal/config"
	"github.com/MrJamesThe3rd/fatura/internal/export"
	faturaHttp "github.com/MrJamesThe3rd/fatura/internal/http"
	backupHandler "github.com/MrJamesThe3rd/fatura/internal/http/backup"
	invoiceHandler "github.com/MrJamesThe3rd/fatura/internal/http/invoice"
	"github.com/MrJamesThe3rd/fatura/internal/pdf"
	"github.com/MrJamesThe3rd/fatura/internal/render"
	"github.com/MrJamesThe3rd/fatura/internal/state"
	"github.com/MrJamesThe3rd/fatura/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	statePath, err := cfg.StatePath()
	if err != nil {
		slog.Error("failed to resolve state path", "error", err)
		os.Exit(1)
	}

	htmlRenderer, err := render.NewHTMLRenderer()
	if err != nil {
		slog.Error("failed to load invoice template", "error", err)
		os.Exit(1)
	}

	loader := app.NewLoader(store.New(statePath), state.UUIDGenerator{}, time.Now)

	var (
		invoiceH = invoiceHandler.NewHandler(loader, htmlRenderer, pdf.NewRenderer())
		backupH  = backupHandler.NewHandler(loader, export.NewService())
	)

	router := faturaHttp.New(invoiceH, backupH)

	addr := cfg.PreviewAddr()
	slog.Info("starting preview server", "addr", addr, "state", statePath)

	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
