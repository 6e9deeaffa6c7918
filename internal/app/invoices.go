package app

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

// InvoicePatch updates individual invoice fields; nil fields are left
// untouched. Items, when set, replace the whole item list.
type InvoicePatch struct {
	Number    *string
	IssueDate *state.Date
	DueDate   *state.Date
	ClientID  *string
	VatRate   *float64
	Notes     *string
	Items     *[]state.LineItem
}

// CreateInvoice appends a new draft invoice: sequence-assigned number, one
// blank line item, issue date today, due date today plus the default term.
func (s *Service) CreateInvoice(ctx context.Context) (*state.Invoice, error) {
	var id string

	err := s.apply(ctx, func(st *state.State) error {
		id = s.ids.Next()
		today := s.today()

		inv := state.Invoice{
			ID:        id,
			Number:    fmt.Sprintf("%s%d", st.Settings.InvoicePrefix, st.Settings.NextInvoiceNumber),
			IssueDate: today,
			DueDate:   today.AddDays(st.Settings.DefaultDueDays),
			Status:    state.StatusDraft,
			VatRate:   st.Settings.DefaultVatRate,
			Items: []state.LineItem{
				{ID: s.ids.Next(), Quantity: 1},
			},
		}

		st.Settings.NextInvoiceNumber++
		st.Invoices = append(st.Invoices, inv)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.st.InvoiceByID(id), nil
}

// UpdateInvoice applies a field patch to an existing invoice.
func (s *Service) UpdateInvoice(ctx context.Context, id string, patch InvoicePatch) (*state.Invoice, error) {
	err := s.apply(ctx, func(st *state.State) error {
		inv := st.InvoiceByID(id)
		if inv == nil {
			return fmt.Errorf("invoice %s: %w", id, ErrNotFound)
		}

		if patch.Number != nil {
			inv.Number = *patch.Number
		}

		if patch.IssueDate != nil {
			inv.IssueDate = *patch.IssueDate
		}

		if patch.DueDate != nil {
			inv.DueDate = *patch.DueDate
		}

		if patch.ClientID != nil {
			inv.ClientID = *patch.ClientID
		}

		if patch.VatRate != nil {
			inv.VatRate = *patch.VatRate
		}

		if patch.Notes != nil {
			inv.Notes = *patch.Notes
		}

		if patch.Items != nil {
			inv.Items = *patch.Items
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.st.InvoiceByID(id), nil
}

// SetInvoiceStatus moves an invoice to another lifecycle status.
func (s *Service) SetInvoiceStatus(ctx context.Context, id string, status state.Status) error {
	if !status.Valid() {
		return fmt.Errorf("status %q: %w", status, ErrInvalidStatus)
	}

	return s.apply(ctx, func(st *state.State) error {
		inv := st.InvoiceByID(id)
		if inv == nil {
			return fmt.Errorf("invoice %s: %w", id, ErrNotFound)
		}

		inv.Status = status

		return nil
	})
}

// DeleteInvoice removes an invoice outright.
func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	return s.apply(ctx, func(st *state.State) error {
		for i := range st.Invoices {
			if st.Invoices[i].ID == id {
				st.Invoices = append(st.Invoices[:i], st.Invoices[i+1:]...)
				return nil
			}
		}

		return fmt.Errorf("invoice %s: %w", id, ErrNotFound)
	})
}

// DuplicateInvoice copies an invoice under a fresh id and sequence number.
// The copy starts over as a draft: dates reset to today plus the default
// term, and every line item gets a fresh id.
func (s *Service) DuplicateInvoice(ctx context.Context, id string) (*state.Invoice, error) {
	var newID string

	err := s.apply(ctx, func(st *state.State) error {
		src := st.InvoiceByID(id)
		if src == nil {
			return fmt.Errorf("invoice %s: %w", id, ErrNotFound)
		}

		newID = s.ids.Next()
		today := s.today()

		dup := *src
		dup.ID = newID
		dup.Number = fmt.Sprintf("%s%d", st.Settings.InvoicePrefix, st.Settings.NextInvoiceNumber)
		dup.Status = state.StatusDraft
		dup.IssueDate = today
		dup.DueDate = today.AddDays(st.Settings.DefaultDueDays)

		dup.Items = make([]state.LineItem, len(src.Items))
		for i, item := range src.Items {
			item.ID = s.ids.Next()
			dup.Items[i] = item
		}

		st.Settings.NextInvoiceNumber++
		st.Invoices = append(st.Invoices, dup)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.st.InvoiceByID(newID), nil
}
