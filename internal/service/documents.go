package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sthanna/UsTaxesFree/internal/audit"
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/internal/storage/postgres"
)

// Document-level operations. Every method re-checks ownership of the
// parent return; the return id in the URL is attacker-controlled.

// AddW2 attaches a W-2 to an owned return.
func (s *ReturnService) AddW2(ctx context.Context, userID, returnID, employer string, wages, withheld float64) (*postgres.W2Record, error) {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return nil, err
	}
	rec := &postgres.W2Record{
		ID:                 uuid.NewString(),
		ReturnID:           returnID,
		Employer:           employer,
		Wages:              wages,
		FederalTaxWithheld: withheld,
	}
	if err := s.W2s.Save(ctx, rec); err != nil {
		return nil, err
	}
	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionUpdate, Resource: returnID, Detail: "w2 added"})
	return rec, nil
}

// ListW2s lists W-2s on an owned return.
func (s *ReturnService) ListW2s(ctx context.Context, userID, returnID string) ([]postgres.W2Record, error) {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return nil, err
	}
	return s.W2s.ListByReturn(ctx, returnID)
}

// DeleteW2 removes a W-2 from an owned return.
func (s *ReturnService) DeleteW2(ctx context.Context, userID, returnID, w2ID string) error {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return err
	}
	return s.W2s.Delete(ctx, w2ID)
}

// Add1099 attaches a 1099-INT or 1099-DIV to an owned return.
func (s *ReturnService) Add1099(ctx context.Context, userID, returnID, payer, kind string, amount float64) (*postgres.Form1099Record, error) {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return nil, err
	}
	rec := &postgres.Form1099Record{
		ID:       uuid.NewString(),
		ReturnID: returnID,
		Payer:    payer,
		Kind:     kind,
		Amount:   amount,
	}
	if err := s.Forms1099.Save(ctx, rec); err != nil {
		return nil, err
	}
	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionUpdate, Resource: returnID, Detail: "1099 added"})
	return rec, nil
}

// List1099s lists 1099s on an owned return.
func (s *ReturnService) List1099s(ctx context.Context, userID, returnID string) ([]postgres.Form1099Record, error) {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return nil, err
	}
	return s.Forms1099.ListByReturn(ctx, returnID)
}

// Delete1099 removes a 1099 from an owned return.
func (s *ReturnService) Delete1099(ctx context.Context, userID, returnID, formID string) error {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return err
	}
	return s.Forms1099.Delete(ctx, formID)
}

// AddTransaction attaches a 1099-B sale to an owned return.
func (s *ReturnService) AddTransaction(ctx context.Context, userID, returnID string, tx domain.StockTransaction) (*postgres.TransactionRecord, error) {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return nil, err
	}
	rec := &postgres.TransactionRecord{
		ID:          uuid.NewString(),
		ReturnID:    returnID,
		Description: tx.Description,
		Proceeds:    tx.Proceeds,
		CostBasis:   tx.CostBasis,
		IsLongTerm:  tx.IsLongTerm,
	}
	if err := s.Transactions.Add(ctx, rec); err != nil {
		return nil, err
	}
	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionUpdate, Resource: returnID, Detail: "transaction added"})
	return rec, nil
}

// ListTransactions lists 1099-B sales on an owned return.
func (s *ReturnService) ListTransactions(ctx context.Context, userID, returnID string) ([]postgres.TransactionRecord, error) {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return nil, err
	}
	return s.Transactions.ListByReturn(ctx, returnID)
}

// DeleteTransaction removes a sale from an owned return.
func (s *ReturnService) DeleteTransaction(ctx context.Context, userID, returnID, txID string) error {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return err
	}
	return s.Transactions.Delete(ctx, txID)
}

// AddDependent attaches a dependent to an owned return.
func (s *ReturnService) AddDependent(ctx context.Context, userID, returnID, firstName, lastName, relationship string, dateOfBirth time.Time) (*postgres.DependentRecord, error) {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return nil, err
	}
	if firstName == "" || lastName == "" || relationship == "" {
		return nil, fmt.Errorf("dependent name and relationship are required")
	}
	if dateOfBirth.IsZero() {
		return nil, fmt.Errorf("dependent date of birth is required")
	}
	rec := &postgres.DependentRecord{
		ID:           uuid.NewString(),
		ReturnID:     returnID,
		FirstName:    firstName,
		LastName:     lastName,
		DateOfBirth:  dateOfBirth,
		Relationship: relationship,
	}
	if err := s.Dependents.Add(ctx, rec); err != nil {
		return nil, err
	}
	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionUpdate, Resource: returnID, Detail: "dependent added"})
	return rec, nil
}

// ListDependents lists dependents on an owned return.
func (s *ReturnService) ListDependents(ctx context.Context, userID, returnID string) ([]postgres.DependentRecord, error) {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return nil, err
	}
	return s.Dependents.ListByReturn(ctx, returnID)
}

// DeleteDependent removes a dependent from an owned return.
func (s *ReturnService) DeleteDependent(ctx context.Context, userID, returnID, depID string) error {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return err
	}
	return s.Dependents.Delete(ctx, depID)
}

// SetItemized stores the Schedule A categories on an owned return,
// switching it from the standard deduction to itemizing.
func (s *ReturnService) SetItemized(ctx context.Context, userID, returnID string, ded domain.ItemizedDeductions) error {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return err
	}
	rec := &postgres.ItemizedRecord{
		ReturnID:                       returnID,
		MedicalExpenses:                ded.MedicalExpenses,
		StateLocalIncomeTaxes:          ded.StateLocalIncomeTaxes,
		RealEstateTaxes:                ded.RealEstateTaxes,
		PersonalPropertyTaxes:          ded.PersonalPropertyTaxes,
		MortgageInterest:               ded.MortgageInterest,
		CharitableContributionsCash:    ded.CharitableContributionsCash,
		CharitableContributionsNoncash: ded.CharitableContributionsNoncash,
		CasualtyLosses:                 ded.CasualtyLosses,
	}
	if err := s.Itemized.Save(ctx, rec); err != nil {
		return err
	}
	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionUpdate, Resource: returnID, Detail: "itemized deductions set"})
	return nil
}

// ClearItemized reverts an owned return to the standard deduction.
func (s *ReturnService) ClearItemized(ctx context.Context, userID, returnID string) error {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return err
	}
	return s.Itemized.Delete(ctx, returnID)
}

// UpdateSchedule1 stores the Schedule 1 totals on an owned return.
func (s *ReturnService) UpdateSchedule1(ctx context.Context, userID, returnID string, additionalIncome, adjustments float64) error {
	ret, err := s.GetOwned(ctx, userID, returnID)
	if err != nil {
		return err
	}
	ret.AdditionalIncome = additionalIncome
	ret.Adjustments = adjustments
	if err := s.Returns.Save(ctx, ret); err != nil {
		return err
	}
	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionUpdate, Resource: returnID, Detail: "schedule 1 updated"})
	return nil
}

// UpdatePayments stores the non-withholding payment total on an owned
// return.
func (s *ReturnService) UpdatePayments(ctx context.Context, userID, returnID string, taxPayments float64) error {
	ret, err := s.GetOwned(ctx, userID, returnID)
	if err != nil {
		return err
	}
	ret.TaxPayments = taxPayments
	if err := s.Returns.Save(ctx, ret); err != nil {
		return err
	}
	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionUpdate, Resource: returnID, Detail: "payments updated"})
	return nil
}
