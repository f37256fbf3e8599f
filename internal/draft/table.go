package draft

import (
	"github.com/shopspring/decimal"

	"invoicegen/internal/domain"
)

// Row is one line-item row. ID is a session-unique, monotonically increasing
// identifier that survives removals; Display is the 1-based position shown
// to the user and is renumbered after every removal.
type Row struct {
	ID          int64
	Display     int
	Item        domain.LineItem
	FromCatalog bool
}

// Table is the ordered line-item collection of a form. Row identifiers are
// never reused within a session.
type Table struct {
	nextID int64
	rows   []*Row
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// AddRow appends a row with catalog defaults and returns it.
func (t *Table) AddRow() *Row {
	t.nextID++
	row := &Row{
		ID: t.nextID,
		Item: domain.LineItem{
			HSNCode:  domain.DefaultHSNCode,
			Quantity: 1,
			Rate:     decimal.Zero,
		},
	}
	row.Item.Recompute()
	t.rows = append(t.rows, row)
	t.renumber()
	return row
}

// RemoveRow removes a row by identifier and renumbers the remaining rows'
// display indexes.
func (t *Table) RemoveRow(id int64) error {
	for i, row := range t.rows {
		if row.ID == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			t.renumber()
			return nil
		}
	}
	return domain.ErrRowNotFound
}

// Row finds a row by identifier.
func (t *Table) Row(id int64) (*Row, bool) {
	for _, row := range t.rows {
		if row.ID == id {
			return row, true
		}
	}
	return nil, false
}

// Rows returns the rows in display order.
func (t *Table) Rows() []*Row {
	return append([]*Row(nil), t.rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Clear removes all rows. Identifiers keep increasing across a clear.
func (t *Table) Clear() {
	t.rows = nil
}

// SetName updates a row's product name. Typing a name clears any active
// catalog selection; the row is manual entry again.
func (t *Table) SetName(id int64, name string) {
	if row, ok := t.Row(id); ok {
		row.Item.Name = name
		row.FromCatalog = false
	}
}

// SetHSNCode updates a row's HSN code.
func (t *Table) SetHSNCode(id int64, hsn string) {
	if row, ok := t.Row(id); ok {
		row.Item.HSNCode = hsn
	}
}

// SetQuantity updates a row's quantity and recomputes its amount.
func (t *Table) SetQuantity(id int64, qty int) {
	if row, ok := t.Row(id); ok {
		row.Item.Quantity = qty
		row.Item.Recompute()
	}
}

// SetRate updates a row's rate and recomputes its amount.
func (t *Table) SetRate(id int64, rate decimal.Decimal) {
	if row, ok := t.Row(id); ok {
		row.Item.Rate = rate
		row.Item.Recompute()
	}
}

// LineItems returns a copy of the row items in display order, amounts
// recomputed.
func (t *Table) LineItems() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(t.rows))
	for _, row := range t.rows {
		li := row.Item
		li.Recompute()
		items = append(items, li)
	}
	return items
}

// ValidLineItems returns only the submittable rows, in display order.
func (t *Table) ValidLineItems() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(t.rows))
	for _, li := range t.LineItems() {
		if li.Valid() {
			items = append(items, li)
		}
	}
	return items
}

func (t *Table) applyCatalogProduct(id int64, p *domain.Product) {
	if row, ok := t.Row(id); ok {
		row.Item.Name = p.Name
		row.Item.HSNCode = p.HSNCode
		row.FromCatalog = true
	}
}

func (t *Table) renumber() {
	for i, row := range t.rows {
		row.Display = i + 1
	}
}
