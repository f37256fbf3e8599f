// Package draft implements the invoice form session: a line-item table with
// stable row identity, catalog synchronization, extraction-preview
// reconciliation, and assembly of the invoice generation payload.
//
// One Session is shared across all request goroutines, so the catalog cache
// is guarded by a lock. Tables, forms, and reconcilers are per-request and
// never shared.
package draft

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"invoicegen/internal/domain"
	"invoicegen/internal/gst"
	"invoicegen/internal/port"
)

// Session holds the shared session state: the immutable state registry and
// company profile, the catalog cache, and the tax calculator. It replaces
// the module-level globals of the original client with an explicit object.
type Session struct {
	registry *domain.StateRegistry
	company  domain.CompanyProfile
	calc     *gst.Calculator
	catalog  port.CatalogStore

	mu       sync.RWMutex
	products []domain.Product
}

// NewSession loads the state registry, product catalog, and company profile
// through the given stores and returns a ready session.
func NewSession(ctx context.Context, states port.StateStore, catalog port.CatalogStore, company port.CompanyStore, calc *gst.Calculator) (*Session, error) {
	entries, err := states.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state registry: %w", err)
	}
	products, err := catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading product catalog: %w", err)
	}
	profile, err := company.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading company profile: %w", err)
	}
	return &Session{
		registry: domain.NewStateRegistry(entries),
		company:  *profile,
		calc:     calc,
		catalog:  catalog,
		products: products,
	}, nil
}

// Company returns the supplier profile.
func (s *Session) Company() domain.CompanyProfile { return s.company }

// States returns the state registry.
func (s *Session) States() *domain.StateRegistry { return s.registry }

// Products returns a copy of the current catalog cache in load order.
func (s *Session) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// FindProduct resolves a catalog product by ID. The returned product is a
// copy, never a pointer into the cache.
func (s *Session) FindProduct(id int64) (*domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, true
		}
	}
	return nil, false
}

// FindProductByName resolves a catalog product by name, case-insensitively.
func (s *Session) FindProductByName(name string) (*domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByNameLocked(name)
}

func (s *Session) findByNameLocked(name string) (*domain.Product, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range s.products {
		if strings.ToLower(s.products[i].Name) == needle {
			p := s.products[i]
			return &p, true
		}
	}
	return nil, false
}

// ProposeSaveToCatalog saves a manually typed product to the catalog.
// Duplicates are rejected against the cache before any store call; on store
// success the canonical product is appended to the cache. On failure the
// cache is untouched so the caller can re-enable its save control and retry.
func (s *Session) ProposeSaveToCatalog(ctx context.Context, name, hsnCode string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	hsnCode = strings.TrimSpace(hsnCode)
	if name == "" {
		return nil, domain.ErrProductNameRequired
	}
	if hsnCode == "" {
		return nil, domain.ErrHSNCodeRequired
	}
	if _, exists := s.FindProductByName(name); exists {
		return nil, domain.ErrDuplicateProduct
	}

	// The store call runs outside the lock. Two concurrent saves of the same
	// name can both pass the cache check; the catalog's unique index rejects
	// the loser, and the re-check below keeps the winner's entry unduplicated.
	p, err := s.catalog.Create(ctx, name, hsnCode)
	if err != nil {
		log.Printf("draft.ProposeSaveToCatalog: store rejected %q: %v", name, err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.findByNameLocked(p.Name); exists {
		return p, nil
	}
	s.products = append(s.products, *p)
	return p, nil
}

// OfferSave reports whether the given row should offer a save-to-catalog
// affordance: manual entry, both name and HSN present, and no existing
// catalog entry with the same name.
func (s *Session) OfferSave(t *Table, rowID int64) bool {
	row, ok := t.Row(rowID)
	if !ok || row.FromCatalog {
		return false
	}
	if strings.TrimSpace(row.Item.Name) == "" || strings.TrimSpace(row.Item.HSNCode) == "" {
		return false
	}
	_, exists := s.FindProductByName(row.Item.Name)
	return !exists
}

// SelectFromCatalog applies a catalog product to a row. An unresolved
// product ID leaves the row's manual entry untouched.
func (s *Session) SelectFromCatalog(t *Table, rowID, productID int64) {
	p, ok := s.FindProduct(productID)
	if !ok {
		return
	}
	t.applyCatalogProduct(rowID, p)
}

// StateCodeFor derives the registry code for a state name, or empty when the
// state is unknown.
func (s *Session) StateCodeFor(state string) string {
	code, _ := s.registry.CodeFor(state)
	return code
}

// Totals computes the tax breakdown for the form's current content. The
// supplier state comes from the company profile, the customer state from the
// billing party.
func (s *Session) Totals(f *Form) domain.TaxBreakdown {
	return s.calc.ComputeTotals(f.Items.LineItems(), f.PackingCharges, s.company.State, f.Billing.State)
}
