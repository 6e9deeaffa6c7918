package pdf_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fatura/internal/pdf"
	"github.com/MrJamesThe3rd/fatura/internal/render"
)

func sampleInput() render.Input {
	return render.Input{
		Profile: render.ProfileView{
			BusinessName: "Jansen Consulting",
			Address:      "Hauptstr. 1\n10115 Berlin",
			IBAN:         "DE89370400440532013000",
		},
		Client: render.ClientView{Name: "Acme GmbH", Address: "Nebenweg 2\n20095 Hamburg"},
		Invoice: render.InvoiceView{
			Number:    "INV-7",
			IssueDate: "2024-03-15",
			DueDate:   "2024-03-29",
			Status:    "sent",
		},
		Items: []render.ItemView{
			{Description: "Design", Quantity: "2", Unit: "h", UnitPrice: "50.00", Amount: "100.00"},
			{Description: "Hosting", Quantity: "1", UnitPrice: "10.00", Amount: "10.00"},
		},
		Totals:   render.TotalsView{Net: "110.00", VatRate: "19", Vat: "20.90", Gross: "130.90"},
		Currency: "EUR",
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pdf.NewRenderer().Render(&buf, sampleInput()))

	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"), "starts with PDF magic")
	assert.Greater(t, buf.Len(), 1000)
}

func TestRender_ManyItemsSpansPages(t *testing.T) {
	in := sampleInput()

	for i := 0; i < 80; i++ {
		in.Items = append(in.Items, render.ItemView{
			Description: "Recurring service", Quantity: "1", UnitPrice: "5.00", Amount: "5.00",
		})
	}

	var small, big bytes.Buffer
	require.NoError(t, pdf.NewRenderer().Render(&small, sampleInput()))
	require.NoError(t, pdf.NewRenderer().Render(&big, in))

	assert.True(t, strings.HasPrefix(big.String(), "%PDF-"))
	assert.Greater(t, big.Len(), small.Len())
}
