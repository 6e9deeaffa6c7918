package state

// Status represents the lifecycle state of an invoice.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}

	return false
}

// Settings holds process-wide defaults applied to new invoices.
type Settings struct {
	Currency          string  `json:"currency"`
	DefaultVatRate    float64 `json:"defaultVatRate"`
	InvoicePrefix     string  `json:"invoicePrefix"`
	NextInvoiceNumber int     `json:"nextInvoiceNumber"`
	DefaultDueDays    int     `json:"defaultDueDays"`
}

// Profile is the business's own identity and payment details.
// All fields are free text.
type Profile struct {
	BusinessName string `json:"businessName"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	TaxID        string `json:"taxId"`
	VatID        string `json:"vatId"`
	Bank         string `json:"bank"`
	IBAN         string `json:"iban"`
	BIC          string `json:"bic"`
	FooterNotes  string `json:"footerNotes"`
}

// Client is a billable party. Invoices reference clients by ID only;
// deleting a client never deletes invoices.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Contact string `json:"contact"`
	Notes   string `json:"notes"`
}

// LineItem is one billable row on an invoice.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"desc"`
	Quantity    float64 `json:"qty"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Invoice is a single invoice document. ClientID may be empty or dangling;
// both mean "no client".
type Invoice struct {
	ID        string     `json:"id"`
	Number    string     `json:"number"`
	IssueDate Date       `json:"issueDate"`
	DueDate   Date       `json:"dueDate"`
	ClientID  string     `json:"clientId"`
	Status    Status     `json:"status"`
	VatRate   float64    `json:"vatRate"`
	Items     []LineItem `json:"items"`
	Notes     string     `json:"notes"`
}

// State is the whole application state, mirroring the persisted document.
type State struct {
	Settings Settings  `json:"settings"`
	Profile  Profile   `json:"profile"`
	Clients  []Client  `json:"clients"`
	Invoices []Invoice `json:"invoices"`
}

// Clone returns a deep copy of the state. Mutations on the copy never leak
// into the original.
func (s *State) Clone() *State {
	next := &State{
		Settings: s.Settings,
		Profile:  s.Profile,
		Clients:  make([]Client, len(s.Clients)),
		Invoices: make([]Invoice, len(s.Invoices)),
	}

	copy(next.Clients, s.Clients)

	for i, inv := range s.Invoices {
		items := make([]LineItem, len(inv.Items))
		copy(items, inv.Items)
		inv.Items = items
		next.Invoices[i] = inv
	}

	return next
}

// ClientByID returns the client with the given id, or nil.
func (s *State) ClientByID(id string) *Client {
	if id == "" {
		return nil
	}

	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return &s.Clients[i]
		}
	}

	return nil
}

// InvoiceByID returns the invoice with the given id, or nil.
func (s *State) InvoiceByID(id string) *Invoice {
	for i := range s.Invoices {
		if s.Invoices[i].ID == id {
			return &s.Invoices[i]
		}
	}

	return nil
}
