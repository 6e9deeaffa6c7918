package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fatura/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/fatura/internal/app"
	"github.com/MrJamesThe3rd/fatura/internal/config"
	"github.com/MrJamesThe3rd/fatura/internal/export"
	"github.com/MrJamesThe3rd/fatura/internal/importer"
	"github.com/MrJamesThe3rd/fatura/internal/state"
	"github.com/MrJamesThe3rd/fatura/internal/store"
)

type model struct {
	appService    *app.Service
	importService *importer.Service
	exportService *export.Service

	currentView View

	invoicesView view.InvoicesModel
	clientsView  view.ClientsModel
	settingsView view.SettingsModel
	profileView  view.ProfileModel
	exportView   view.ExportModel
	importView   view.ImportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewInvoices View = 1
	ViewClients  View = 2
	ViewSettings View = 3
	ViewProfile  View = 4
	ViewExport   View = 5
	ViewImport   View = 6
)

func initialModel() model {
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

	appSvc := app.NewService(store.New(statePath), state.UUIDGenerator{}, time.Now)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := appSvc.Open(ctx); err != nil {
		slog.Error("failed to open state", "error", err, "path", statePath)
		os.Exit(1)
	}

	impSvc := importer.NewService()
	expSvc := export.NewService()

	return model{
		appService:    appSvc,
		importService: impSvc,
		exportService: expSvc,
		currentView:   ViewMenu,
		invoicesView:  view.NewInvoicesModel(appSvc),
		clientsView:   view.NewClientsModel(appSvc),
		settingsView:  view.NewSettingsModel(appSvc),
		profileView:   view.NewProfileModel(appSvc),
		exportView:    view.NewExportModel(appSvc, expSvc),
		importView:    view.NewImportModel(appSvc, impSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.appService)

				return m, m.invoicesView.Init()
			case "2":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.appService)

				return m, m.clientsView.Init()
			case "3":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.appService)

				return m, m.settingsView.Init()
			case "4":
				m.currentView = ViewProfile
				m.profileView = view.NewProfileModel(m.appService)

				return m, m.profileView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.appService, m.exportService)

				return m, m.exportView.Init()
			case "6":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.appService, m.importService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	case ViewProfile:
		var newModel tea.Model
		newModel, cmd = m.profileView.Update(msg)
		m.profileView = newModel.(view.ProfileModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Fatura\n\n" +
				"1. Invoices\n" +
				"2. Clients\n" +
				"3. Settings\n" +
				"4. Business Profile\n" +
				"5. Export\n" +
				"6. Import Backup\n\n" +
				"q. Quit",
		)
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewProfile:
		return m.profileView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
