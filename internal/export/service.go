// Package export produces the two backup/reporting representations of the
// application state: the full JSON document and a per-invoice CSV summary.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/MrJamesThe3rd/fatura/internal/state"
	"github.com/MrJamesThe3rd/fatura/internal/totals"
)

// csvHeader is the fixed column order of the CSV export.
var csvHeader = []string{
	"invoiceNumber", "issueDate", "dueDate", "client", "status",
	"net", "vatRate", "vat", "gross", "currency",
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// WriteJSON writes the full state document, pretty-printed, in the exact
// shape of the persisted schema.
func (s *Service) WriteJSON(w io.Writer, st *state.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing json export: %w", err)
	}

	return nil
}

// WriteCSV writes one row per invoice, newest issue date first. Monetary
// columns carry exactly two decimals; quoting follows standard CSV rules.
func (s *Service) WriteCSV(w io.Writer, st *state.State) error {
	invoices := make([]state.Invoice, len(st.Invoices))
	copy(invoices, st.Invoices)

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[j].IssueDate.Before(invoices[i].IssueDate)
	})

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for i := range invoices {
		inv := &invoices[i]
		b := totals.Calculate(inv)

		clientName := ""
		if c := st.ClientByID(inv.ClientID); c != nil {
			clientName = c.Name
		}

		row := []string{
			inv.Number,
			inv.IssueDate.String(),
			inv.DueDate.String(),
			clientName,
			string(inv.Status),
			b.Net.StringFixed(2),
			strconv.FormatFloat(inv.VatRate, 'f', -1, 64),
			b.Tax.StringFixed(2),
			b.Gross.StringFixed(2),
			st.Settings.Currency,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
