package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const defaultItemizedTable = "itemized_deductions"

// ItemizedRepository is a Postgres implementation for the one-per-return
// Schedule A category amounts.
type ItemizedRepository struct {
	db    DBTX
	table string
}

// NewItemizedRepository constructs a repository.
func NewItemizedRepository(db DBTX) *ItemizedRepository {
	return &ItemizedRepository{db: db, table: defaultItemizedTable}
}

// Save upserts the itemized categories for a return.
func (r *ItemizedRepository) Save(ctx context.Context, rec *ItemizedRecord) error {
	if r == nil || r.db == nil {
		return errors.New("itemized repo: nil db")
	}
	if rec == nil {
		return errors.New("itemized repo: nil record")
	}
	if rec.ReturnID == "" {
		return errors.New("itemized repo: return id is required")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	return_id,
	medical_expenses,
	state_local_income_taxes,
	real_estate_taxes,
	personal_property_taxes,
	mortgage_interest,
	charitable_contributions_cash,
	charitable_contributions_noncash,
	casualty_losses
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9
)
ON CONFLICT (return_id)
DO UPDATE SET
	medical_expenses = EXCLUDED.medical_expenses,
	state_local_income_taxes = EXCLUDED.state_local_income_taxes,
	real_estate_taxes = EXCLUDED.real_estate_taxes,
	personal_property_taxes = EXCLUDED.personal_property_taxes,
	mortgage_interest = EXCLUDED.mortgage_interest,
	charitable_contributions_cash = EXCLUDED.charitable_contributions_cash,
	charitable_contributions_noncash = EXCLUDED.charitable_contributions_noncash,
	casualty_losses = EXCLUDED.casualty_losses,
	updated_at = NOW()`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		rec.ReturnID,
		rec.MedicalExpenses,
		rec.StateLocalIncomeTaxes,
		rec.RealEstateTaxes,
		rec.PersonalPropertyTaxes,
		rec.MortgageInterest,
		rec.CharitableContributionsCash,
		rec.CharitableContributionsNoncash,
		rec.CasualtyLosses,
	)
	return err
}

// Get loads the itemized categories for a return. Returns (nil, nil)
// when the return has none, which means the standard deduction applies.
func (r *ItemizedRepository) Get(ctx context.Context, returnID string) (*ItemizedRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("itemized repo: nil db")
	}
	if returnID == "" {
		return nil, errors.New("itemized repo: empty return id")
	}

	query := fmt.Sprintf(`
SELECT return_id, medical_expenses, state_local_income_taxes, real_estate_taxes,
       personal_property_taxes, mortgage_interest, charitable_contributions_cash,
       charitable_contributions_noncash, casualty_losses
FROM %s
WHERE return_id = $1
LIMIT 1`, r.table)

	var rec ItemizedRecord
	if err := r.db.QueryRowContext(ctx, query, returnID).Scan(
		&rec.ReturnID,
		&rec.MedicalExpenses,
		&rec.StateLocalIncomeTaxes,
		&rec.RealEstateTaxes,
		&rec.PersonalPropertyTaxes,
		&rec.MortgageInterest,
		&rec.CharitableContributionsCash,
		&rec.CharitableContributionsNoncash,
		&rec.CasualtyLosses,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Delete removes the itemized categories for a return, reverting it to
// the standard deduction.
func (r *ItemizedRepository) Delete(ctx context.Context, returnID string) error {
	if r == nil || r.db == nil {
		return errors.New("itemized repo: nil db")
	}
	if returnID == "" {
		return errors.New("itemized repo: empty return id")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE return_id = $1`, r.table)
	_, err := r.db.ExecContext(ctx, query, returnID)
	return err
}
