package state

import "time"

// Defaults used when a stored document is missing or malformed.
const (
	DefaultCurrency      = "EUR"
	DefaultVatRate       = 19.0
	DefaultInvoicePrefix = "INV-"
	DefaultDueDays       = 14

	defaultItemQuantity  = 1.0
	defaultItemUnitPrice = 0.0
)

// Normalizer repairs an arbitrary decoded JSON document into a valid State.
// Normalize is total: for any input, including nil or wrongly typed values,
// it returns a state satisfying every documented invariant, and it never
// panics. Normalizing an already-normalized document yields an equal state.
type Normalizer struct {
	ids Generator
	now func() time.Time
}

func NewNormalizer(ids Generator, now func() time.Time) *Normalizer {
	return &Normalizer{ids: ids, now: now}
}

// Normalize repairs raw into a well-formed state. Field-level defects are
// repaired silently; only the persistence and import layers decide whether a
// document is recognizable at all.
func (n *Normalizer) Normalize(raw any) *State {
	st := baseState()

	obj, ok := raw.(map[string]any)
	if !ok {
		return st
	}

	if m, ok := obj["settings"].(map[string]any); ok {
		mergeSettings(&st.Settings, m)
	}

	if m, ok := obj["profile"].(map[string]any); ok {
		mergeProfile(&st.Profile, m)
	}

	if arr, ok := obj["clients"].([]any); ok {
		st.Clients = make([]Client, 0, len(arr))
		for _, entry := range arr {
			st.Clients = append(st.Clients, n.normalizeClient(entry))
		}
	}

	if arr, ok := obj["invoices"].([]any); ok {
		st.Invoices = make([]Invoice, 0, len(arr))
		for _, entry := range arr {
			st.Invoices = append(st.Invoices, n.normalizeInvoice(entry, st.Settings))
		}
	}

	return st
}

func baseState() *State {
	return &State{
		Settings: Settings{
			Currency:          DefaultCurrency,
			DefaultVatRate:    DefaultVatRate,
			InvoicePrefix:     DefaultInvoicePrefix,
			NextInvoiceNumber: 1,
			DefaultDueDays:    DefaultDueDays,
		},
		Clients:  []Client{},
		Invoices: []Invoice{},
	}
}

// mergeSettings overlays recognized keys from the raw document onto the
// defaults. Values that fail to coerce keep the default.
func mergeSettings(s *Settings, m map[string]any) {
	if v, ok := m["currency"].(string); ok {
		s.Currency = v
	}

	if v, ok := m["invoicePrefix"].(string); ok {
		s.InvoicePrefix = v
	}

	s.DefaultVatRate = Number(m["defaultVatRate"], s.DefaultVatRate)
	s.DefaultDueDays = Integer(m["defaultDueDays"], s.DefaultDueDays)

	s.NextInvoiceNumber = Integer(m["nextInvoiceNumber"], s.NextInvoiceNumber)
	if s.NextInvoiceNumber < 1 {
		s.NextInvoiceNumber = 1
	}
}

func mergeProfile(p *Profile, m map[string]any) {
	p.BusinessName = str(m["businessName"])
	p.Address = str(m["address"])
	p.Email = str(m["email"])
	p.Phone = str(m["phone"])
	p.TaxID = str(m["taxId"])
	p.VatID = str(m["vatId"])
	p.Bank = str(m["bank"])
	p.IBAN = str(m["iban"])
	p.BIC = str(m["bic"])
	p.FooterNotes = str(m["footerNotes"])
}

func (n *Normalizer) normalizeClient(raw any) Client {
	m, _ := raw.(map[string]any)

	c := Client{
		ID:      str(m["id"]),
		Name:    str(m["name"]),
		Address: str(m["address"]),
		Email:   str(m["email"]),
		Phone:   str(m["phone"]),
		Contact: str(m["contact"]),
		Notes:   str(m["notes"]),
	}

	if c.ID == "" {
		c.ID = n.ids.Next()
	}

	return c
}

func (n *Normalizer) normalizeInvoice(raw any, settings Settings) Invoice {
	m, _ := raw.(map[string]any)

	inv := Invoice{
		ID:       str(m["id"]),
		Number:   str(m["number"]),
		ClientID: str(m["clientId"]),
		Notes:    str(m["notes"]),
		VatRate:  Number(m["vatRate"], settings.DefaultVatRate),
	}

	if inv.ID == "" {
		inv.ID = n.ids.Next()
	}

	// A missing invoice number stays empty: numbers are assigned from the
	// sequence counter at creation time only, never during repair.

	issue, err := ParseDate(str(m["issueDate"]))
	if err != nil {
		issue = DateOf(n.now())
	}

	inv.IssueDate = issue

	due, err := ParseDate(str(m["dueDate"]))
	if err != nil {
		due = issue.AddDays(settings.DefaultDueDays)
	}

	inv.DueDate = due

	inv.Status = Status(str(m["status"]))
	if !inv.Status.Valid() {
		inv.Status = StatusDraft
	}

	items, ok := m["items"].([]any)
	if !ok {
		inv.Items = []LineItem{n.blankItem()}
		return inv
	}

	inv.Items = make([]LineItem, 0, len(items))
	for _, entry := range items {
		inv.Items = append(inv.Items, n.normalizeItem(entry))
	}

	return inv
}

func (n *Normalizer) normalizeItem(raw any) LineItem {
	m, _ := raw.(map[string]any)

	item := LineItem{
		ID:          str(m["id"]),
		Description: str(m["desc"]),
		Unit:        str(m["unit"]),
		Quantity:    Number(m["qty"], defaultItemQuantity),
		UnitPrice:   Number(m["unitPrice"], defaultItemUnitPrice),
	}

	if item.ID == "" {
		item.ID = n.ids.Next()
	}

	return item
}

// blankItem is the single placeholder row given to invoices without a usable
// item list.
func (n *Normalizer) blankItem() LineItem {
	return LineItem{
		ID:        n.ids.Next(),
		Quantity:  defaultItemQuantity,
		UnitPrice: defaultItemUnitPrice,
	}
}

// str returns raw if it is a string, otherwise "".
func str(raw any) string {
	s, _ := raw.(string)
	return s
}
