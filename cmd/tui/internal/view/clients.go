package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fatura/internal/app"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateEdit
)

type ClientsModel struct {
	CommonModel
	appService *app.Service

	state clientsState
	table table.Model
	rowID []string
	form  *huh.Form

	// editID is empty while creating a new client.
	editID string

	formName    string
	formAddress string
	formEmail   string
	formPhone   string
	formContact string
	formNotes   string

	status string
}

func NewClientsModel(appSvc *app.Service) ClientsModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Email", Width: 26},
		{Title: "Phone", Width: 16},
		{Title: "Contact", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	m := ClientsModel{
		appService: appSvc,
		table:      t,
	}
	m.refreshTable()

	return m
}

func (m ClientsModel) Title() string { return "Clients" }

func (m ClientsModel) ShortHelp() string {
	if m.state == clientsStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete"
}

func (m ClientsModel) Init() tea.Cmd {
	return nil
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientOpMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case clientsStateBrowse:
		return m.updateBrowse(msg)
	case clientsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.enterEditMode("")
		case "e":
			if id := m.selectedID(); id != "" {
				return m.enterEditMode(id)
			}
		case "x":
			if id := m.selectedID(); id != "" {
				return m, m.deleteCmd(id)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) selectedID() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rowID) {
		return ""
	}

	return m.rowID[idx]
}

func (m ClientsModel) enterEditMode(id string) (tea.Model, tea.Cmd) {
	m.editID = id
	m.formName = ""
	m.formAddress = ""
	m.formEmail = ""
	m.formPhone = ""
	m.formContact = ""
	m.formNotes = ""

	if id != "" {
		c := m.appService.State().ClientByID(id)
		if c == nil {
			return m, nil
		}

		m.formName = c.Name
		m.formAddress = c.Address
		m.formEmail = c.Email
		m.formPhone = c.Phone
		m.formContact = c.Contact
		m.formNotes = c.Notes
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().Key("address").Title("Address").Value(&m.formAddress),
			huh.NewInput().Key("email").Title("Email").Value(&m.formEmail),
			huh.NewInput().Key("phone").Title("Phone").Value(&m.formPhone),
			huh.NewInput().Key("contact").Title("Contact Person").Value(&m.formContact),
			huh.NewInput().Key("notes").Title("Notes").Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = clientsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	save := m.saveCmd()

	m.state = clientsStateBrowse
	m.form = nil
	m.table.Focus()

	return m, save
}

func (m ClientsModel) saveCmd() tea.Cmd {
	id := m.editID

	name := strings.TrimSpace(m.form.GetString("name"))
	address := m.form.GetString("address")
	email := m.form.GetString("email")
	phone := m.form.GetString("phone")
	contact := m.form.GetString("contact")
	notes := m.form.GetString("notes")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if id == "" {
			c, err := m.appService.CreateClient(ctx, app.ClientParams{
				Name:    name,
				Address: address,
				Email:   email,
				Phone:   phone,
				Contact: contact,
				Notes:   notes,
			})
			if err != nil {
				return clientOpMsg{err: err}
			}

			return clientOpMsg{status: fmt.Sprintf("Created %s", c.Name)}
		}

		c, err := m.appService.UpdateClient(ctx, id, app.ClientPatch{
			Name:    &name,
			Address: &address,
			Email:   &email,
			Phone:   &phone,
			Contact: &contact,
			Notes:   &notes,
		})
		if err != nil {
			return clientOpMsg{err: err}
		}

		return clientOpMsg{status: fmt.Sprintf("Saved %s", c.Name)}
	}
}

func (m ClientsModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.appService.DeleteClient(ctx, id); err != nil {
			return clientOpMsg{err: err}
		}

		return clientOpMsg{status: "Client deleted; their invoices were kept"}
	}
}

func (m ClientsModel) View() string {
	if m.state == clientsStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.form.View())

		return lipgloss.NewStyle().Padding(1).Render(panel)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ClientsModel) refreshTable() {
	st := m.appService.State()
	if st == nil {
		return
	}

	rows := make([]table.Row, 0, len(st.Clients))
	m.rowID = m.rowID[:0]

	for _, c := range st.Clients {
		rows = append(rows, table.Row{c.Name, c.Email, c.Phone, c.Contact})
		m.rowID = append(m.rowID, c.ID)
	}

	m.table.SetRows(rows)
}

type clientOpMsg struct {
	status string
	err    error
}
