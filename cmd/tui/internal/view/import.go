package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fatura/internal/app"
	"github.com/MrJamesThe3rd/fatura/internal/importer"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateConfirm
	importStateResult
)

// ImportModel restores a JSON backup. The imported document replaces the
// whole state, so a confirmation step sits between picking and applying.
type ImportModel struct {
	CommonModel
	appService    *app.Service
	importService *importer.Service

	state      importState
	filePicker filepicker.Model

	selectedPath string
	parsed       any

	form        *huh.Form
	formConfirm bool

	status string
	err    error
}

func NewImportModel(appSvc *app.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		appService:    appSvc,
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Backup" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateConfirm:
		return "Enter: confirm | Esc: cancel"
	case importStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: select file"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			switch m.state {
			case importStateConfirm:
				m.state = importStateFilePick
				m.form = nil

				return m, nil
			default:
				return m, Back
			}
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.parsed = msg.raw
		m.formConfirm = false
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Key("replace").
					Title("Replace all current data?").
					Description(m.selectedPath).
					Affirmative("Import").
					Negative("Cancel").
					Value(&m.formConfirm),
			),
		).WithWidth(60).WithShowHelp(false)
		m.state = importStateConfirm

		return m, m.form.Init()

	case importAppliedMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Imported %d clients and %d invoices.", msg.clients, msg.invoices)
		}

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		return m.updateFilePick(msg)
	case importStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if ok, path := m.filePicker.DidSelectFile(msg); ok {
		m.selectedPath = path
		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.form.GetBool("replace") {
		m.state = importStateFilePick
		m.form = nil

		return m, nil
	}

	m.form = nil

	return m, m.applyCmd()
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Pick a backup file\n\n" + m.filePicker.View(),
		)

	case importStateConfirm:
		if m.form != nil {
			return lipgloss.NewStyle().Padding(1).Render(m.form.View())
		}

	case importStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
					"\n\n(Esc to back)",
			)
		}

		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	return ""
}

type parseResultMsg struct {
	raw any
	err error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		raw, err := m.importService.Parse(f)

		return parseResultMsg{raw: raw, err: err}
	}
}

type importAppliedMsg struct {
	clients  int
	invoices int
	err      error
}

func (m ImportModel) applyCmd() tea.Cmd {
	raw := m.parsed

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.appService.Replace(ctx, raw); err != nil {
			return importAppliedMsg{err: err}
		}

		st := m.appService.State()

		return importAppliedMsg{clients: len(st.Clients), invoices: len(st.Invoices)}
	}
}
