package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fatura/internal/app"
	"github.com/MrJamesThe3rd/fatura/internal/export"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateResult
)

type ExportModel struct {
	CommonModel
	appService    *app.Service
	exportService *export.Service

	state exportState
	form  *huh.Form

	formFormat string
	formPath   string

	err    error
	status string
}

func NewExportModel(appSvc *app.Service, expSvc *export.Service) ExportModel {
	m := ExportModel{
		appService:    appSvc,
		exportService: expSvc,
		formFormat:    "json",
		formPath:      ".",
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("JSON backup (full state)", "json"),
					huh.NewOption("CSV summary (one row per invoice)", "csv"),
				).
				Value(&m.formFormat),

			huh.NewInput().
				Key("path").
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder(".").
				Value(&m.formPath),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export" }

func (m ExportModel) ShortHelp() string {
	if m.state == exportStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case exportDoneMsg:
		m.state = exportStateResult
		m.err = msg.err
		m.status = msg.path

		return m, nil
	}

	if m.state == exportStateResult {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.runExportCmd(m.form.GetString("format"), m.form.GetString("path"))
}

func (m ExportModel) runExportCmd(format, dir string) tea.Cmd {
	return func() tea.Msg {
		if dir == "" {
			dir = "."
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportDoneMsg{err: err}
		}

		name := fmt.Sprintf("fatura_%s.%s", time.Now().Format("20060102"), format)
		path := filepath.Join(dir, name)

		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()

		st := m.appService.State()

		switch format {
		case "csv":
			err = m.exportService.WriteCSV(f, st)
		default:
			err = m.exportService.WriteJSON(f, st)
		}

		if err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{path: path}
	}
}

func (m ExportModel) View() string {
	if m.state == exportStateResult {
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Export Complete!")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", "Written to "+m.status),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type exportDoneMsg struct {
	path string
	err  error
}
