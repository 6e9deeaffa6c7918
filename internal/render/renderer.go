// Package render builds printable representations of a single invoice.
// The HTML document is meant to be opened in a browser and printed to PDF.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fatura/internal/state"
	"github.com/MrJamesThe3rd/fatura/internal/totals"
)

// Input is the deterministic view model for invoice rendering. All money
// values are pre-formatted strings so templates and the PDF renderer never
// do arithmetic.
type Input struct {
	Profile  ProfileView
	Client   ClientView
	Invoice  InvoiceView
	Items    []ItemView
	Totals   TotalsView
	Currency string
}

type ProfileView struct {
	BusinessName string
	Address      string
	Email        string
	Phone        string
	TaxID        string
	VatID        string
	Bank         string
	IBAN         string
	BIC          string
	FooterNotes  string
}

type ClientView struct {
	Name    string
	Address string
	Contact string
}

type InvoiceView struct {
	Number    string
	IssueDate string
	DueDate   string
	Status    string
	Notes     string
}

type ItemView struct {
	Description string
	Quantity    string
	Unit        string
	UnitPrice   string
	Amount      string
}

type TotalsView struct {
	Net     string
	VatRate string
	Vat     string
	Gross   string
}

// Renderer turns a render input into a printable document.
type Renderer interface {
	RenderHTML(input Input) (string, error)
}

//go:embed invoice.html.tmpl
var templates embed.FS

// HTMLRenderer renders the embedded print template.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templates, "invoice.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing invoice template: %w", err)
	}

	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) RenderHTML(input Input) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, input); err != nil {
		return "", fmt.Errorf("rendering invoice: %w", err)
	}

	return buf.String(), nil
}

// BuildInput assembles the view model for one invoice from the application
// state, computing totals and formatting all amounts to two decimals.
func BuildInput(st *state.State, inv *state.Invoice) Input {
	b := totals.Calculate(inv)

	in := Input{
		Profile: ProfileView{
			BusinessName: st.Profile.BusinessName,
			Address:      st.Profile.Address,
			Email:        st.Profile.Email,
			Phone:        st.Profile.Phone,
			TaxID:        st.Profile.TaxID,
			VatID:        st.Profile.VatID,
			Bank:         st.Profile.Bank,
			IBAN:         st.Profile.IBAN,
			BIC:          st.Profile.BIC,
			FooterNotes:  st.Profile.FooterNotes,
		},
		Invoice: InvoiceView{
			Number:    inv.Number,
			IssueDate: inv.IssueDate.String(),
			DueDate:   inv.DueDate.String(),
			Status:    string(inv.Status),
			Notes:     inv.Notes,
		},
		Totals: TotalsView{
			Net:     b.Net.StringFixed(2),
			VatRate: b.TaxRate.String(),
			Vat:     b.Tax.StringFixed(2),
			Gross:   b.Gross.StringFixed(2),
		},
		Currency: st.Settings.Currency,
	}

	if c := st.ClientByID(inv.ClientID); c != nil {
		in.Client = ClientView{Name: c.Name, Address: c.Address, Contact: c.Contact}
	}

	in.Items = make([]ItemView, len(inv.Items))
	for i, item := range inv.Items {
		price := money(item.UnitPrice)

		in.Items[i] = ItemView{
			Description: item.Description,
			Quantity:    trimFloat(item.Quantity),
			Unit:        item.Unit,
			UnitPrice:   price.StringFixed(2),
			Amount:      money(item.Quantity).Mul(price).StringFixed(2),
		}
	}

	return in
}

func money(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}

	return decimal.NewFromFloat(f)
}

func trimFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
