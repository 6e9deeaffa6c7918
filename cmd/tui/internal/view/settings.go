package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fatura/internal/app"
	"github.com/MrJamesThe3rd/fatura/internal/state"
)

type SettingsModel struct {
	CommonModel
	appService *app.Service

	form *huh.Form
	done bool

	formCurrency string
	formVatRate  string
	formPrefix   string
	formNext     string
	formDueDays  string

	status string
}

func NewSettingsModel(appSvc *app.Service) SettingsModel {
	s := appSvc.State().Settings

	m := SettingsModel{
		appService:   appSvc,
		formCurrency: s.Currency,
		formVatRate:  fmt.Sprintf("%g", s.DefaultVatRate),
		formPrefix:   s.InvoicePrefix,
		formNext:     strconv.Itoa(s.NextInvoiceNumber),
		formDueDays:  strconv.Itoa(s.DefaultDueDays),
	}
	m.form = m.buildForm()

	return m
}

func (m SettingsModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("currency").
				Title("Currency").
				Description("ISO code, e.g. EUR").
				Value(&m.formCurrency),

			huh.NewInput().
				Key("default_vat_rate").
				Title("Default VAT Rate %").
				Value(&m.formVatRate),

			huh.NewInput().
				Key("invoice_prefix").
				Title("Invoice Prefix").
				Value(&m.formPrefix),

			huh.NewInput().
				Key("next_invoice_number").
				Title("Next Invoice Number").
				Value(&m.formNext).
				Validate(validateInt),

			huh.NewInput().
				Key("default_due_days").
				Title("Default Due Days").
				Value(&m.formDueDays).
				Validate(validateInt),
		),
	).WithWidth(50).WithShowHelp(false)
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be a whole number")
	}

	return nil
}

func (m SettingsModel) Title() string { return "Settings" }

func (m SettingsModel) ShortHelp() string {
	if m.done {
		return "Esc: back"
	}

	return "Navigate form | Esc: back"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case settingsSavedMsg:
		m.done = true
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Settings saved."
		}

		return m, nil
	}

	if m.done {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m SettingsModel) saveCmd() tea.Cmd {
	currency := strings.TrimSpace(strings.ToUpper(m.form.GetString("currency")))
	vat := state.Number(m.form.GetString("default_vat_rate"), state.DefaultVatRate)
	prefix := m.form.GetString("invoice_prefix")
	next, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("next_invoice_number")))
	dueDays, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("default_due_days")))

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		err := m.appService.UpdateSettings(ctx, app.SettingsPatch{
			Currency:          &currency,
			DefaultVatRate:    &vat,
			InvoicePrefix:     &prefix,
			NextInvoiceNumber: &next,
			DefaultDueDays:    &dueDays,
		})

		return settingsSavedMsg{err: err}
	}
}

func (m SettingsModel) View() string {
	if m.done {
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type settingsSavedMsg struct {
	err error
}
