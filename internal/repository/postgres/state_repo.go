package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type stateRepo struct {
	db *sqlx.DB
}

// NewStateRepo creates a new PostgreSQL-backed StateStore.
func NewStateRepo(db *sqlx.DB) port.StateStore {
	return &stateRepo{db: db}
}

func (r *stateRepo) LoadAll(ctx context.Context) ([]domain.StateEntry, error) {
	var entries []domain.StateEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT name, code FROM states ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("stateRepo.LoadAll: %w", err)
	}
	return entries, nil
}
