package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyStore.
func NewCompanyRepo(db *sqlx.DB) port.CompanyStore {
	return &companyRepo{db: db}
}

// Get returns the supplier profile. The table holds exactly one row.
func (r *companyRepo) Get(ctx context.Context) (*domain.CompanyProfile, error) {
	var row struct {
		Name          string `db:"name"`
		Address       string `db:"address"`
		GSTIN         string `db:"gstin"`
		State         string `db:"state"`
		StateCode     string `db:"state_code"`
		Phone         string `db:"phone"`
		Email         string `db:"email"`
		BankName      string `db:"bank_name"`
		AccountNumber string `db:"account_number"`
		IFSCCode      string `db:"ifsc_code"`
		Branch        string `db:"branch"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT name, address, gstin, state, state_code, phone, email,
		        bank_name, account_number, ifsc_code, branch
		 FROM company_profile
		 LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companyRepo.Get: %w", err)
	}

	return &domain.CompanyProfile{
		Name:      row.Name,
		Address:   row.Address,
		GSTIN:     row.GSTIN,
		State:     row.State,
		StateCode: row.StateCode,
		Phone:     row.Phone,
		Email:     row.Email,
		Bank: domain.BankDetails{
			BankName:      row.BankName,
			AccountNumber: row.AccountNumber,
			IFSCCode:      row.IFSCCode,
			Branch:        row.Branch,
		},
	}, nil
}
