package app

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

// ClientParams holds the fields of a new client.
type ClientParams struct {
	Name    string
	Address string
	Email   string
	Phone   string
	Contact string
	Notes   string
}

// ClientPatch updates individual client fields; nil fields are untouched.
type ClientPatch struct {
	Name    *string
	Address *string
	Email   *string
	Phone   *string
	Contact *string
	Notes   *string
}

// CreateClient adds a new client with a generated id.
func (s *Service) CreateClient(ctx context.Context, params ClientParams) (*state.Client, error) {
	var id string

	err := s.apply(ctx, func(st *state.State) error {
		id = s.ids.Next()

		st.Clients = append(st.Clients, state.Client{
			ID:      id,
			Name:    params.Name,
			Address: params.Address,
			Email:   params.Email,
			Phone:   params.Phone,
			Contact: params.Contact,
			Notes:   params.Notes,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.st.ClientByID(id), nil
}

// UpdateClient applies a field patch to an existing client.
func (s *Service) UpdateClient(ctx context.Context, id string, patch ClientPatch) (*state.Client, error) {
	err := s.apply(ctx, func(st *state.State) error {
		c := st.ClientByID(id)
		if c == nil {
			return fmt.Errorf("client %s: %w", id, ErrNotFound)
		}

		if patch.Name != nil {
			c.Name = *patch.Name
		}

		if patch.Address != nil {
			c.Address = *patch.Address
		}

		if patch.Email != nil {
			c.Email = *patch.Email
		}

		if patch.Phone != nil {
			c.Phone = *patch.Phone
		}

		if patch.Contact != nil {
			c.Contact = *patch.Contact
		}

		if patch.Notes != nil {
			c.Notes = *patch.Notes
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.st.ClientByID(id), nil
}

// DeleteClient removes a client. Invoices referencing it keep existing and
// have their client reference cleared to "no client".
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	return s.apply(ctx, func(st *state.State) error {
		found := false

		for i := range st.Clients {
			if st.Clients[i].ID == id {
				st.Clients = append(st.Clients[:i], st.Clients[i+1:]...)
				found = true

				break
			}
		}

		if !found {
			return fmt.Errorf("client %s: %w", id, ErrNotFound)
		}

		for i := range st.Invoices {
			if st.Invoices[i].ClientID == id {
				st.Invoices[i].ClientID = ""
			}
		}

		return nil
	})
}
