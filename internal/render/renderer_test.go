package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fatura/internal/render"
	"github.com/MrJamesThe3rd/fatura/internal/state"
)

func mustDate(t *testing.T, s string) state.Date {
	t.Helper()

	d, err := state.ParseDate(s)
	require.NoError(t, err)

	return d
}

func sampleState(t *testing.T) (*state.State, *state.Invoice) {
	t.Helper()

	st := &state.State{
		Settings: state.Settings{Currency: "EUR", DefaultVatRate: 19},
		Profile: state.Profile{
			BusinessName: "Jansen Consulting",
			Address:      "Hauptstr. 1\n10115 Berlin",
			IBAN:         "DE89370400440532013000",
		},
		Clients: []state.Client{
			{ID: "c-1", Name: "Acme GmbH", Address: "Nebenweg 2\n20095 Hamburg"},
		},
		Invoices: []state.Invoice{
			{
				ID:        "i-1",
				Number:    "INV-7",
				IssueDate: mustDate(t, "2024-03-15"),
				DueDate:   mustDate(t, "2024-03-29"),
				ClientID:  "c-1",
				Status:    state.StatusSent,
				VatRate:   19,
				Items: []state.LineItem{
					{ID: "li-1", Description: "Design & review", Quantity: 2, Unit: "h", UnitPrice: 50},
					{ID: "li-2", Description: "Hosting", Quantity: 1, UnitPrice: 10},
				},
			},
		},
	}

	return st, &st.Invoices[0]
}

func TestBuildInput(t *testing.T) {
	st, inv := sampleState(t)

	in := render.BuildInput(st, inv)

	assert.Equal(t, "INV-7", in.Invoice.Number)
	assert.Equal(t, "2024-03-15", in.Invoice.IssueDate)
	assert.Equal(t, "Acme GmbH", in.Client.Name)
	assert.Equal(t, "EUR", in.Currency)

	require.Len(t, in.Items, 2)
	assert.Equal(t, "2", in.Items[0].Quantity)
	assert.Equal(t, "50.00", in.Items[0].UnitPrice)
	assert.Equal(t, "100.00", in.Items[0].Amount)

	assert.Equal(t, "110.00", in.Totals.Net)
	assert.Equal(t, "19", in.Totals.VatRate)
	assert.Equal(t, "20.90", in.Totals.Vat)
	assert.Equal(t, "130.90", in.Totals.Gross)
}

func TestBuildInput_DanglingClient(t *testing.T) {
	st, inv := sampleState(t)
	inv.ClientID = "gone"

	in := render.BuildInput(st, inv)

	assert.Empty(t, in.Client.Name)
	assert.Empty(t, in.Client.Address)
}

func TestRenderHTML(t *testing.T) {
	st, inv := sampleState(t)

	r, err := render.NewHTMLRenderer()
	require.NoError(t, err)

	html, err := r.RenderHTML(render.BuildInput(st, inv))
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Invoice INV-7</title>")
	assert.Contains(t, html, "Jansen Consulting")
	assert.Contains(t, html, "Acme GmbH")
	assert.Contains(t, html, "Design &amp; review")
	assert.Contains(t, html, "130.90 EUR")
	assert.Contains(t, html, "IBAN DE89370400440532013000")
}
