package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fatura/internal/app"
	"github.com/MrJamesThe3rd/fatura/internal/pdf"
	"github.com/MrJamesThe3rd/fatura/internal/render"
	"github.com/MrJamesThe3rd/fatura/internal/state"
	"github.com/MrJamesThe3rd/fatura/internal/totals"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateEdit
	invoicesStateItems
	invoicesStateItemEdit
)

// statusCycle is the order the "s" key walks through.
var statusCycle = []state.Status{
	state.StatusDraft,
	state.StatusSent,
	state.StatusPaid,
	state.StatusOverdue,
}

type InvoicesModel struct {
	CommonModel
	appService *app.Service
	ids        state.Generator

	state invoicesState
	table table.Model
	rowID []string

	form   *huh.Form
	editID string

	formNumber string
	formIssue  string
	formDue    string
	formClient string
	formVat    string
	formNotes  string

	itemsTable table.Model
	items      []state.LineItem
	editItem   int

	formDesc  string
	formQty   string
	formUnit  string
	formPrice string

	status string
}

func NewInvoicesModel(appSvc *app.Service) InvoicesModel {
	columns := []table.Column{
		{Title: "Number", Width: 12},
		{Title: "Issued", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Client", Width: 24},
		{Title: "Status", Width: 9},
		{Title: "Total", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	m := InvoicesModel{
		appService: appSvc,
		ids:        state.UUIDGenerator{},
		table:      t,
	}
	m.refreshTable()

	return m
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	switch m.state {
	case invoicesStateEdit, invoicesStateItemEdit:
		return "Navigate form | Esc: cancel"
	case invoicesStateItems:
		return "a: add | e: edit | x: delete | Esc: save & back"
	}

	return "Esc: back | n: new | e: edit | i: items | s: status | d: duplicate | p: PDF | x: delete"
}

func (m InvoicesModel) Init() tea.Cmd {
	return nil
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceOpMsg:
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
	case invoicesStateBrowse:
		return m.updateBrowse(msg)
	case invoicesStateEdit:
		return m.updateEdit(msg)
	case invoicesStateItems:
		return m.updateItems(msg)
	case invoicesStateItemEdit:
		return m.updateItemEdit(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m, m.createCmd()
		case "e":
			return m.enterEditMode()
		case "i":
			return m.enterItemsMode()
		case "s":
			if id := m.selectedID(); id != "" {
				return m, m.cycleStatusCmd(id)
			}
		case "d":
			if id := m.selectedID(); id != "" {
				return m, m.duplicateCmd(id)
			}
		case "p":
			if id := m.selectedID(); id != "" {
				return m, m.writePDFCmd(id)
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

func (m InvoicesModel) selectedID() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rowID) {
		return ""
	}

	return m.rowID[idx]
}

func (m InvoicesModel) enterEditMode() (tea.Model, tea.Cmd) {
	id := m.selectedID()
	if id == "" {
		return m, nil
	}

	st := m.appService.State()

	inv := st.InvoiceByID(id)
	if inv == nil {
		return m, nil
	}

	m.editID = id
	m.formNumber = inv.Number
	m.formIssue = inv.IssueDate.String()
	m.formDue = inv.DueDate.String()
	m.formClient = inv.ClientID
	m.formVat = fmt.Sprintf("%g", inv.VatRate)
	m.formNotes = inv.Notes

	clientOpts := make([]huh.Option[string], 0, len(st.Clients)+1)
	clientOpts = append(clientOpts, huh.NewOption("(no client)", ""))

	for _, c := range st.Clients {
		clientOpts = append(clientOpts, huh.NewOption(c.Name, c.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("number").
				Title("Number").
				Value(&m.formNumber).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("number cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("issue_date").
				Title("Issue Date").
				Placeholder("2024-01-31").
				Value(&m.formIssue).
				Validate(validateDate),

			huh.NewInput().
				Key("due_date").
				Title("Due Date").
				Placeholder("2024-02-14").
				Value(&m.formDue).
				Validate(validateDate),

			huh.NewSelect[string]().
				Key("client").
				Title("Client").
				Options(clientOpts...).
				Value(&m.formClient),

			huh.NewInput().
				Key("vat_rate").
				Title("VAT Rate %").
				Value(&m.formVat),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = invoicesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func validateDate(s string) error {
	if _, err := state.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func (m InvoicesModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
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

	save := m.saveInvoiceCmd()

	m.state = invoicesStateBrowse
	m.form = nil
	m.table.Focus()

	return m, save
}

func (m InvoicesModel) saveInvoiceCmd() tea.Cmd {
	id := m.editID

	number := strings.TrimSpace(m.form.GetString("number"))
	issue, _ := state.ParseDate(strings.TrimSpace(m.form.GetString("issue_date")))
	due, _ := state.ParseDate(strings.TrimSpace(m.form.GetString("due_date")))
	client := m.form.GetString("client")
	vat := state.Number(m.form.GetString("vat_rate"), m.appService.State().Settings.DefaultVatRate)
	notes := m.form.GetString("notes")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		inv, err := m.appService.UpdateInvoice(ctx, id, app.InvoicePatch{
			Number:    &number,
			IssueDate: &issue,
			DueDate:   &due,
			ClientID:  &client,
			VatRate:   &vat,
			Notes:     &notes,
		})
		if err != nil {
			return invoiceOpMsg{err: err}
		}

		return invoiceOpMsg{status: fmt.Sprintf("Saved %s", inv.Number)}
	}
}

func (m InvoicesModel) enterItemsMode() (tea.Model, tea.Cmd) {
	id := m.selectedID()
	if id == "" {
		return m, nil
	}

	inv := m.appService.State().InvoiceByID(id)
	if inv == nil {
		return m, nil
	}

	m.editID = id
	m.items = make([]state.LineItem, len(inv.Items))
	copy(m.items, inv.Items)

	columns := []table.Column{
		{Title: "Description", Width: 32},
		{Title: "Qty", Width: 8},
		{Title: "Unit", Width: 8},
		{Title: "Price", Width: 12},
		{Title: "Amount", Width: 12},
	}

	m.itemsTable = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	m.itemsTable.SetStyles(tableStyles())
	m.refreshItemsTable()

	m.state = invoicesStateItems
	m.table.Blur()

	return m, nil
}

func (m InvoicesModel) updateItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = invoicesStateBrowse
			m.table.Focus()

			return m, m.saveItemsCmd()
		case "a":
			return m.enterItemEditMode(-1)
		case "e", "enter":
			idx := m.itemsTable.Cursor()
			if idx >= 0 && idx < len(m.items) {
				return m.enterItemEditMode(idx)
			}
		case "x":
			idx := m.itemsTable.Cursor()
			if idx >= 0 && idx < len(m.items) {
				m.items = append(m.items[:idx], m.items[idx+1:]...)
				m.refreshItemsTable()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.itemsTable, cmd = m.itemsTable.Update(msg)

	return m, cmd
}

func (m InvoicesModel) enterItemEditMode(idx int) (tea.Model, tea.Cmd) {
	m.editItem = idx

	if idx >= 0 {
		item := m.items[idx]
		m.formDesc = item.Description
		m.formQty = FormatQuantity(item.Quantity)
		m.formUnit = item.Unit
		m.formPrice = fmt.Sprintf("%g", item.UnitPrice)
	} else {
		m.formDesc = ""
		m.formQty = "1"
		m.formUnit = ""
		m.formPrice = "0"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("description").Title("Description").Value(&m.formDesc),
			huh.NewInput().Key("quantity").Title("Quantity").Value(&m.formQty),
			huh.NewInput().Key("unit").Title("Unit").Placeholder("h, pcs, days").Value(&m.formUnit),
			huh.NewInput().Key("unit_price").Title("Unit Price").Value(&m.formPrice),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateItemEdit

	return m, m.form.Init()
}

func (m InvoicesModel) updateItemEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateItems
			m.form = nil

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

	item := state.LineItem{
		Description: m.form.GetString("description"),
		Quantity:    state.Number(m.form.GetString("quantity"), 1),
		Unit:        m.form.GetString("unit"),
		UnitPrice:   state.Number(m.form.GetString("unit_price"), 0),
	}

	if m.editItem >= 0 && m.editItem < len(m.items) {
		item.ID = m.items[m.editItem].ID
		m.items[m.editItem] = item
	} else {
		item.ID = m.ids.Next()
		m.items = append(m.items, item)
	}

	m.state = invoicesStateItems
	m.form = nil
	m.refreshItemsTable()

	return m, nil
}

func (m InvoicesModel) saveItemsCmd() tea.Cmd {
	id := m.editID

	items := make([]state.LineItem, len(m.items))
	copy(items, m.items)

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		inv, err := m.appService.UpdateInvoice(ctx, id, app.InvoicePatch{Items: &items})
		if err != nil {
			return invoiceOpMsg{err: err}
		}

		return invoiceOpMsg{status: fmt.Sprintf("Saved items of %s", inv.Number)}
	}
}

func (m InvoicesModel) View() string {
	switch m.state {
	case invoicesStateEdit, invoicesStateItemEdit:
		if m.form != nil {
			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Render(m.form.View())

			return lipgloss.NewStyle().Padding(1).Render(panel)
		}
	case invoicesStateItems:
		tableView := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.itemsTable.View())

		return lipgloss.NewStyle().Padding(1).Render(tableView)
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

func (m *InvoicesModel) refreshTable() {
	st := m.appService.State()
	if st == nil {
		return
	}

	rows := make([]table.Row, 0, len(st.Invoices))
	m.rowID = m.rowID[:0]

	for i := range st.Invoices {
		inv := &st.Invoices[i]
		b := totals.Calculate(inv)

		clientName := ""
		if c := st.ClientByID(inv.ClientID); c != nil {
			clientName = c.Name
		}

		rows = append(rows, table.Row{
			inv.Number,
			FormatDate(inv.IssueDate),
			FormatDate(inv.DueDate),
			clientName,
			string(inv.Status),
			FormatMoney(b.Gross, st.Settings.Currency),
		})
		m.rowID = append(m.rowID, inv.ID)
	}

	m.table.SetRows(rows)
}

func (m *InvoicesModel) refreshItemsTable() {
	st := m.appService.State()

	rows := make([]table.Row, 0, len(m.items))

	for _, item := range m.items {
		line := totals.Calculate(&state.Invoice{Items: []state.LineItem{item}})

		rows = append(rows, table.Row{
			item.Description,
			FormatQuantity(item.Quantity),
			item.Unit,
			FormatMoney(line.Net, st.Settings.Currency),
			FormatMoney(line.Net, st.Settings.Currency),
		})
	}

	m.itemsTable.SetRows(rows)
}

// Messages

type invoiceOpMsg struct {
	status string
	err    error
}

func (m InvoicesModel) createCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		inv, err := m.appService.CreateInvoice(ctx)
		if err != nil {
			return invoiceOpMsg{err: err}
		}

		return invoiceOpMsg{status: fmt.Sprintf("Created %s", inv.Number)}
	}
}

func (m InvoicesModel) cycleStatusCmd(id string) tea.Cmd {
	return func() tea.Msg {
		inv := m.appService.State().InvoiceByID(id)
		if inv == nil {
			return invoiceOpMsg{err: app.ErrNotFound}
		}

		next := statusCycle[0]
		for i, s := range statusCycle {
			if s == inv.Status {
				next = statusCycle[(i+1)%len(statusCycle)]
				break
			}
		}

		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.appService.SetInvoiceStatus(ctx, id, next); err != nil {
			return invoiceOpMsg{err: err}
		}

		return invoiceOpMsg{status: fmt.Sprintf("%s is now %s", inv.Number, next)}
	}
}

func (m InvoicesModel) duplicateCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		dup, err := m.appService.DuplicateInvoice(ctx, id)
		if err != nil {
			return invoiceOpMsg{err: err}
		}

		return invoiceOpMsg{status: fmt.Sprintf("Duplicated as %s", dup.Number)}
	}
}

func (m InvoicesModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.appService.DeleteInvoice(ctx, id); err != nil {
			return invoiceOpMsg{err: err}
		}

		return invoiceOpMsg{status: "Invoice deleted"}
	}
}

func (m InvoicesModel) writePDFCmd(id string) tea.Cmd {
	return func() tea.Msg {
		st := m.appService.State()

		inv := st.InvoiceByID(id)
		if inv == nil {
			return invoiceOpMsg{err: app.ErrNotFound}
		}

		name := inv.Number + ".pdf"

		f, err := os.Create(name)
		if err != nil {
			return invoiceOpMsg{err: err}
		}
		defer f.Close()

		if err := pdf.NewRenderer().Render(f, render.BuildInput(st, inv)); err != nil {
			return invoiceOpMsg{err: err}
		}

		return invoiceOpMsg{status: "Wrote " + name}
	}
}
