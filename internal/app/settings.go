package app

import (
	"context"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

// SettingsPatch updates individual settings; nil fields are untouched.
type SettingsPatch struct {
	Currency          *string
	DefaultVatRate    *float64
	InvoicePrefix     *string
	NextInvoiceNumber *int
	DefaultDueDays    *int
}

// ProfilePatch updates individual business profile fields.
type ProfilePatch struct {
	BusinessName *string
	Address      *string
	Email        *string
	Phone        *string
	TaxID        *string
	VatID        *string
	Bank         *string
	IBAN         *string
	BIC          *string
	FooterNotes  *string
}

// UpdateSettings applies a settings patch. The sequence counter is clamped
// to stay at least 1.
func (s *Service) UpdateSettings(ctx context.Context, patch SettingsPatch) error {
	return s.apply(ctx, func(st *state.State) error {
		if patch.Currency != nil {
			st.Settings.Currency = *patch.Currency
		}

		if patch.DefaultVatRate != nil {
			st.Settings.DefaultVatRate = *patch.DefaultVatRate
		}

		if patch.InvoicePrefix != nil {
			st.Settings.InvoicePrefix = *patch.InvoicePrefix
		}

		if patch.NextInvoiceNumber != nil {
			st.Settings.NextInvoiceNumber = *patch.NextInvoiceNumber
			if st.Settings.NextInvoiceNumber < 1 {
				st.Settings.NextInvoiceNumber = 1
			}
		}

		if patch.DefaultDueDays != nil {
			st.Settings.DefaultDueDays = *patch.DefaultDueDays
		}

		return nil
	})
}

// UpdateProfile applies a business profile patch.
func (s *Service) UpdateProfile(ctx context.Context, patch ProfilePatch) error {
	return s.apply(ctx, func(st *state.State) error {
		if patch.BusinessName != nil {
			st.Profile.BusinessName = *patch.BusinessName
		}

		if patch.Address != nil {
			st.Profile.Address = *patch.Address
		}

		if patch.Email != nil {
			st.Profile.Email = *patch.Email
		}

		if patch.Phone != nil {
			st.Profile.Phone = *patch.Phone
		}

		if patch.TaxID != nil {
			st.Profile.TaxID = *patch.TaxID
		}

		if patch.VatID != nil {
			st.Profile.VatID = *patch.VatID
		}

		if patch.Bank != nil {
			st.Profile.Bank = *patch.Bank
		}

		if patch.IBAN != nil {
			st.Profile.IBAN = *patch.IBAN
		}

		if patch.BIC != nil {
			st.Profile.BIC = *patch.BIC
		}

		if patch.FooterNotes != nil {
			st.Profile.FooterNotes = *patch.FooterNotes
		}

		return nil
	})
}
