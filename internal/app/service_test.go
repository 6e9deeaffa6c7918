package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fatura/internal/app"
	"github.com/MrJamesThe3rd/fatura/internal/state"
)

type seqGenerator struct {
	n int
}

func (g *seqGenerator) Next() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
}

// openService returns a service over an empty stored document with saves
// accepted silently.
func openService(t *testing.T) (*app.Service, *app.MockStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := app.NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(nil, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := app.NewService(store, &seqGenerator{}, fixedClock)
	require.NoError(t, svc.Open(context.Background()))

	return svc, store
}

func TestService_CreateInvoice(t *testing.T) {
	svc, _ := openService(t)

	inv, err := svc.CreateInvoice(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "INV-1", inv.Number)
	assert.Equal(t, state.StatusDraft, inv.Status)
	assert.Equal(t, "2024-03-15", inv.IssueDate.String())
	assert.Equal(t, "2024-03-29", inv.DueDate.String())
	assert.Equal(t, state.DefaultVatRate, inv.VatRate)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, 1.0, inv.Items[0].Quantity)
	assert.Equal(t, 0.0, inv.Items[0].UnitPrice)

	assert.Equal(t, 2, svc.State().Settings.NextInvoiceNumber, "counter advances")

	second, err := svc.CreateInvoice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INV-2", second.Number)
	assert.NotEqual(t, inv.ID, second.ID)
}

func TestService_UpdateInvoice(t *testing.T) {
	svc, _ := openService(t)

	inv, err := svc.CreateInvoice(context.Background())
	require.NoError(t, err)

	notes := "payable in 30 days"
	rate := 7.7
	items := []state.LineItem{
		{ID: "li-1", Description: "Consulting", Quantity: 4, Unit: "h", UnitPrice: 120},
	}

	updated, err := svc.UpdateInvoice(context.Background(), inv.ID, app.InvoicePatch{
		Notes:   &notes,
		VatRate: &rate,
		Items:   &items,
	})
	require.NoError(t, err)

	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, rate, updated.VatRate)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Consulting", updated.Items[0].Description)
	assert.Equal(t, inv.Number, updated.Number, "unpatched fields survive")

	_, err = svc.UpdateInvoice(context.Background(), "missing", app.InvoicePatch{Notes: &notes})
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestService_DuplicateInvoice(t *testing.T) {
	svc, _ := openService(t)

	inv, err := svc.CreateInvoice(context.Background())
	require.NoError(t, err)

	issue, err := state.ParseDate("2023-01-10")
	require.NoError(t, err)
	due := issue.AddDays(30)
	items := []state.LineItem{
		{ID: "li-1", Description: "Hosting", Quantity: 12, Unit: "mo", UnitPrice: 25},
	}

	_, err = svc.UpdateInvoice(context.Background(), inv.ID, app.InvoicePatch{
		IssueDate: &issue,
		DueDate:   &due,
		Items:     &items,
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetInvoiceStatus(context.Background(), inv.ID, state.StatusPaid))

	dup, err := svc.DuplicateInvoice(context.Background(), inv.ID)
	require.NoError(t, err)

	assert.NotEqual(t, inv.ID, dup.ID)
	assert.Equal(t, "INV-2", dup.Number)
	assert.Equal(t, state.StatusDraft, dup.Status, "copy starts over as draft")
	assert.Equal(t, "2024-03-15", dup.IssueDate.String())
	assert.Equal(t, "2024-03-29", dup.DueDate.String())

	require.Len(t, dup.Items, 1)
	assert.Equal(t, "Hosting", dup.Items[0].Description)
	assert.NotEqual(t, "li-1", dup.Items[0].ID, "cloned items get fresh ids")

	original := svc.State().InvoiceByID(inv.ID)
	assert.Equal(t, state.StatusPaid, original.Status, "source invoice untouched")
	assert.Equal(t, 3, svc.State().Settings.NextInvoiceNumber)
}

func TestService_DeleteInvoice(t *testing.T) {
	svc, _ := openService(t)

	inv, err := svc.CreateInvoice(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoice(context.Background(), inv.ID))
	assert.Empty(t, svc.State().Invoices)

	assert.ErrorIs(t, svc.DeleteInvoice(context.Background(), inv.ID), app.ErrNotFound)
}

func TestService_SetInvoiceStatus_Invalid(t *testing.T) {
	svc, _ := openService(t)

	inv, err := svc.CreateInvoice(context.Background())
	require.NoError(t, err)

	err = svc.SetInvoiceStatus(context.Background(), inv.ID, state.Status("cancelled"))
	assert.ErrorIs(t, err, app.ErrInvalidStatus)
	assert.Equal(t, state.StatusDraft, svc.State().InvoiceByID(inv.ID).Status)
}

func TestService_DeleteClient_DoesNotCascade(t *testing.T) {
	svc, _ := openService(t)

	client, err := svc.CreateClient(context.Background(), app.ClientParams{Name: "Acme, Inc."})
	require.NoError(t, err)

	inv, err := svc.CreateInvoice(context.Background())
	require.NoError(t, err)

	_, err = svc.UpdateInvoice(context.Background(), inv.ID, app.InvoicePatch{ClientID: &client.ID})
	require.NoError(t, err)

	before := *svc.State().InvoiceByID(inv.ID)

	require.NoError(t, svc.DeleteClient(context.Background(), client.ID))

	assert.Empty(t, svc.State().Clients)
	require.Len(t, svc.State().Invoices, 1, "invoice survives client deletion")

	after := svc.State().InvoiceByID(inv.ID)
	assert.Empty(t, after.ClientID, "reference cleared to none")

	before.ClientID = ""
	assert.Equal(t, before, *after, "everything else unchanged")
}

func TestService_SaveFailureKeepsPriorState(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := app.NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(nil, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := app.NewService(store, &seqGenerator{}, fixedClock)
	require.NoError(t, svc.Open(context.Background()))

	_, err := svc.CreateInvoice(context.Background())
	require.Error(t, err)

	assert.Empty(t, svc.State().Invoices)
	assert.Equal(t, 1, svc.State().Settings.NextInvoiceNumber)
}

func TestService_Replace(t *testing.T) {
	svc, _ := openService(t)

	_, err := svc.CreateInvoice(context.Background())
	require.NoError(t, err)

	raw := map[string]any{
		"settings": map[string]any{"currency": "USD"},
		"invoices": []any{map[string]any{"number": "INV-99"}},
	}

	require.NoError(t, svc.Replace(context.Background(), raw))

	st := svc.State()
	assert.Equal(t, "USD", st.Settings.Currency)
	require.Len(t, st.Invoices, 1)
	assert.Equal(t, "INV-99", st.Invoices[0].Number)
}

func TestService_UpdateSettings_ClampsCounter(t *testing.T) {
	svc, _ := openService(t)

	zero := 0
	require.NoError(t, svc.UpdateSettings(context.Background(), app.SettingsPatch{NextInvoiceNumber: &zero}))
	assert.Equal(t, 1, svc.State().Settings.NextInvoiceNumber)

	seven := 7
	prefix := "F-"
	require.NoError(t, svc.UpdateSettings(context.Background(), app.SettingsPatch{
		NextInvoiceNumber: &seven,
		InvoicePrefix:     &prefix,
	}))

	inv, err := svc.CreateInvoice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "F-7", inv.Number)
}
