package state_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

// seqGenerator hands out "id-1", "id-2", ... so tests are deterministic.
type seqGenerator struct {
	n int
}

func (g *seqGenerator) Next() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

func newNormalizer() *state.Normalizer {
	return state.NewNormalizer(&seqGenerator{}, fixedClock)
}

func TestNormalize_Totality(t *testing.T) {
	inputs := map[string]any{
		"nil":          nil,
		"number":       42.5,
		"string":       "not a document",
		"bool":         true,
		"array":        []any{1.0, "two"},
		"empty object": map[string]any{},
		"wrong shapes": map[string]any{
			"settings": "nope",
			"profile":  7.0,
			"clients":  map[string]any{},
			"invoices": "also nope",
		},
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			st := newNormalizer().Normalize(raw)
			require.NotNil(t, st)

			assert.Equal(t, state.DefaultCurrency, st.Settings.Currency)
			assert.Equal(t, state.DefaultVatRate, st.Settings.DefaultVatRate)
			assert.Equal(t, 1, st.Settings.NextInvoiceNumber)
			assert.NotNil(t, st.Clients)
			assert.NotNil(t, st.Invoices)
			assert.Empty(t, st.Clients)
			assert.Empty(t, st.Invoices)
		})
	}
}

func TestNormalize_DefaultRepair(t *testing.T) {
	st := newNormalizer().Normalize(map[string]any{
		"invoices": []any{map[string]any{}},
	})

	require.Len(t, st.Invoices, 1)
	inv := st.Invoices[0]

	assert.NotEmpty(t, inv.ID)
	assert.Empty(t, inv.Number, "numbers are assigned at creation, not repair")
	assert.Equal(t, state.StatusDraft, inv.Status)
	assert.Equal(t, state.DefaultVatRate, inv.VatRate)
	assert.Equal(t, "2024-03-15", inv.IssueDate.String())
	assert.Equal(t, "2024-03-29", inv.DueDate.String())

	require.Len(t, inv.Items, 1)
	assert.Equal(t, 1.0, inv.Items[0].Quantity)
	assert.Equal(t, 0.0, inv.Items[0].UnitPrice)
	assert.NotEmpty(t, inv.Items[0].ID)
}

func TestNormalize_Idempotent(t *testing.T) {
	messy := map[string]any{
		"settings": map[string]any{
			"currency":          "USD",
			"defaultVatRate":    "23,5",
			"nextInvoiceNumber": -4.0,
		},
		"profile": map[string]any{
			"businessName": "Acme Studio",
			"iban":         12345.0,
		},
		"clients": []any{
			map[string]any{"name": "Alpha"},
			"garbage",
		},
		"invoices": []any{
			map[string]any{
				"number":  "INV-7",
				"status":  "SENT",
				"vatRate": "abc",
				"items": []any{
					map[string]any{"desc": "Work", "qty": "2,5", "unitPrice": 40.0},
				},
			},
		},
	}

	first := newNormalizer().Normalize(messy)

	data, err := json.Marshal(first)
	require.NoError(t, err)

	var roundTrip any
	require.NoError(t, json.Unmarshal(data, &roundTrip))

	second := newNormalizer().Normalize(roundTrip)
	assert.Equal(t, first, second)
}

func TestNormalize_SettingsMerge(t *testing.T) {
	st := newNormalizer().Normalize(map[string]any{
		"settings": map[string]any{
			"currency":          "CHF",
			"defaultVatRate":    "7,7",
			"nextInvoiceNumber": 0.0,
			"defaultDueDays":    30.0,
		},
	})

	assert.Equal(t, "CHF", st.Settings.Currency)
	assert.Equal(t, 7.7, st.Settings.DefaultVatRate)
	assert.Equal(t, 1, st.Settings.NextInvoiceNumber, "counter clamps to 1")
	assert.Equal(t, 30, st.Settings.DefaultDueDays)
	assert.Equal(t, state.DefaultInvoicePrefix, st.Settings.InvoicePrefix, "missing key keeps default")
}

func TestNormalize_InvoiceFieldRepair(t *testing.T) {
	st := newNormalizer().Normalize(map[string]any{
		"settings": map[string]any{"defaultDueDays": 10.0},
		"invoices": []any{
			map[string]any{
				"id":        "inv-1",
				"issueDate": "2024-01-02",
				"status":    "paid",
				"vatRate":   "19,0",
				"notes":     7.0,
				"items":     "not a list",
			},
			map[string]any{
				"issueDate": "not a date",
				"dueDate":   "2024-06-01",
				"status":    "cancelled",
			},
		},
	})

	require.Len(t, st.Invoices, 2)

	first := st.Invoices[0]
	assert.Equal(t, "inv-1", first.ID)
	assert.Equal(t, state.StatusPaid, first.Status)
	assert.Equal(t, 19.0, first.VatRate)
	assert.Equal(t, "2024-01-02", first.IssueDate.String())
	assert.Equal(t, "2024-01-12", first.DueDate.String(), "due date derives from issue date")
	assert.Empty(t, first.Notes)
	require.Len(t, first.Items, 1, "non-array items become a single blank item")

	second := st.Invoices[1]
	assert.Equal(t, state.StatusDraft, second.Status, "unknown status coerces to draft")
	assert.Equal(t, "2024-03-15", second.IssueDate.String(), "bad issue date becomes today")
	assert.Equal(t, "2024-06-01", second.DueDate.String(), "valid due date survives")
}

func TestNormalize_ItemRepair(t *testing.T) {
	st := newNormalizer().Normalize(map[string]any{
		"invoices": []any{
			map[string]any{
				"items": []any{
					map[string]any{"desc": "Design", "qty": "3", "unit": "h", "unitPrice": "85,5"},
					map[string]any{"qty": "abc", "unitPrice": []any{}},
					"junk",
				},
			},
		},
	})

	require.Len(t, st.Invoices, 1)
	items := st.Invoices[0].Items
	require.Len(t, items, 3)

	assert.Equal(t, 3.0, items[0].Quantity)
	assert.Equal(t, 85.5, items[0].UnitPrice)
	assert.Equal(t, "h", items[0].Unit)

	assert.Equal(t, 1.0, items[1].Quantity, "unparseable quantity falls back to 1")
	assert.Equal(t, 0.0, items[1].UnitPrice, "unparseable price falls back to 0")

	assert.NotEmpty(t, items[2].ID, "non-object entries repair to blank rows")
	assert.Equal(t, 1.0, items[2].Quantity)
}

func TestNormalize_ClientRepair(t *testing.T) {
	st := newNormalizer().Normalize(map[string]any{
		"clients": []any{
			map[string]any{"id": "c-1", "name": "Acme, Inc.", "email": "billing@acme.test"},
			map[string]any{"name": 12.0},
			nil,
		},
	})

	require.Len(t, st.Clients, 3)

	assert.Equal(t, "c-1", st.Clients[0].ID)
	assert.Equal(t, "Acme, Inc.", st.Clients[0].Name)

	assert.NotEmpty(t, st.Clients[1].ID, "missing id gets generated")
	assert.Empty(t, st.Clients[1].Name, "non-string name becomes empty")

	assert.NotEmpty(t, st.Clients[2].ID)
}

func TestNormalize_EmptyItemListStaysEmpty(t *testing.T) {
	st := newNormalizer().Normalize(map[string]any{
		"invoices": []any{map[string]any{"items": []any{}}},
	})

	require.Len(t, st.Invoices, 1)
	assert.Empty(t, st.Invoices[0].Items, "an explicit empty list is respected")
}
