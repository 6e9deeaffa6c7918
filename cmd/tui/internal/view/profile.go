package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fatura/internal/app"
)

// ProfileModel edits the business details printed on every invoice.
type ProfileModel struct {
	CommonModel
	appService *app.Service

	form *huh.Form
	done bool

	formName    string
	formAddress string
	formEmail   string
	formPhone   string
	formTaxID   string
	formVatID   string
	formBank    string
	formIBAN    string
	formBIC     string
	formFooter  string

	status string
}

func NewProfileModel(appSvc *app.Service) ProfileModel {
	p := appSvc.State().Profile

	m := ProfileModel{
		appService:  appSvc,
		formName:    p.BusinessName,
		formAddress: p.Address,
		formEmail:   p.Email,
		formPhone:   p.Phone,
		formTaxID:   p.TaxID,
		formVatID:   p.VatID,
		formBank:    p.Bank,
		formIBAN:    p.IBAN,
		formBIC:     p.BIC,
		formFooter:  p.FooterNotes,
	}
	m.form = m.buildForm()

	return m
}

func (m ProfileModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("business_name").Title("Business Name").Value(&m.formName),
			huh.NewInput().Key("address").Title("Address").Value(&m.formAddress),
			huh.NewInput().Key("email").Title("Email").Value(&m.formEmail),
			huh.NewInput().Key("phone").Title("Phone").Value(&m.formPhone),
			huh.NewInput().Key("tax_id").Title("Tax ID").Value(&m.formTaxID),
			huh.NewInput().Key("vat_id").Title("VAT ID").Value(&m.formVatID),
		),
		huh.NewGroup(
			huh.NewInput().Key("bank").Title("Bank").Value(&m.formBank),
			huh.NewInput().Key("iban").Title("IBAN").Value(&m.formIBAN),
			huh.NewInput().Key("bic").Title("BIC").Value(&m.formBIC),
			huh.NewInput().Key("footer_notes").Title("Footer Notes").Value(&m.formFooter),
		),
	).WithWidth(56).WithShowHelp(false)
}

func (m ProfileModel) Title() string { return "Business Profile" }

func (m ProfileModel) ShortHelp() string {
	if m.done {
		return "Esc: back"
	}

	return "Navigate form | Esc: back"
}

func (m ProfileModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case profileSavedMsg:
		m.done = true
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Profile saved."
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

func (m ProfileModel) saveCmd() tea.Cmd {
	name := m.form.GetString("business_name")
	address := m.form.GetString("address")
	email := m.form.GetString("email")
	phone := m.form.GetString("phone")
	taxID := m.form.GetString("tax_id")
	vatID := m.form.GetString("vat_id")
	bank := m.form.GetString("bank")
	iban := m.form.GetString("iban")
	bic := m.form.GetString("bic")
	footer := m.form.GetString("footer_notes")

	patch := app.ProfilePatch{
		BusinessName: &name,
		Address:      &address,
		Email:        &email,
		Phone:        &phone,
		TaxID:        &taxID,
		VatID:        &vatID,
		Bank:         &bank,
		IBAN:         &iban,
		BIC:          &bic,
		FooterNotes:  &footer,
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		return profileSavedMsg{err: m.appService.UpdateProfile(ctx, patch)}
	}
}

func (m ProfileModel) View() string {
	if m.done {
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type profileSavedMsg struct {
	err error
}
