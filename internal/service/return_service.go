// Package service sits between the HTTP layer and the repositories: it
// enforces return ownership, assembles the engine's input snapshot from
// stored records, and runs calculations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sthanna/UsTaxesFree/internal/audit"
	"github.com/sthanna/UsTaxesFree/internal/calculation"
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/internal/observability/metrics"
	"github.com/sthanna/UsTaxesFree/internal/storage/postgres"
	"github.com/sthanna/UsTaxesFree/pkg/taxmath"
)

var (
	// ErrNotFound is returned when a return does not exist.
	ErrNotFound = errors.New("return not found")
	// ErrForbidden is returned when a return belongs to another user.
	ErrForbidden = errors.New("return does not belong to user")
)

// ReturnStore is the persistence surface the service needs. The
// concrete repositories in storage/postgres satisfy it; tests swap in
// fakes.
type ReturnStore interface {
	Save(ctx context.Context, ret *postgres.TaxReturn) error
	Get(ctx context.Context, id string) (*postgres.TaxReturn, error)
	ListByUser(ctx context.Context, userID string) ([]postgres.TaxReturn, error)
	Delete(ctx context.Context, id string) error
}

// W2Store lists stored W-2s per return.
type W2Store interface {
	Save(ctx context.Context, w2 *postgres.W2Record) error
	ListByReturn(ctx context.Context, returnID string) ([]postgres.W2Record, error)
	Delete(ctx context.Context, id string) error
}

// Form1099Store lists stored 1099s per return.
type Form1099Store interface {
	Save(ctx context.Context, form *postgres.Form1099Record) error
	ListByReturn(ctx context.Context, returnID string) ([]postgres.Form1099Record, error)
	Delete(ctx context.Context, id string) error
}

// TransactionStore lists stored 1099-B sales per return.
type TransactionStore interface {
	Add(ctx context.Context, tx *postgres.TransactionRecord) error
	ListByReturn(ctx context.Context, returnID string) ([]postgres.TransactionRecord, error)
	Delete(ctx context.Context, id string) error
}

// DependentStore lists stored dependents per return.
type DependentStore interface {
	Add(ctx context.Context, dep *postgres.DependentRecord) error
	ListByReturn(ctx context.Context, returnID string) ([]postgres.DependentRecord, error)
	Delete(ctx context.Context, id string) error
}

// ItemizedStore holds the per-return Schedule A categories.
type ItemizedStore interface {
	Save(ctx context.Context, rec *postgres.ItemizedRecord) error
	Get(ctx context.Context, returnID string) (*postgres.ItemizedRecord, error)
	Delete(ctx context.Context, returnID string) error
}

// ReturnService owns the return lifecycle and calculation entry point.
type ReturnService struct {
	Returns      ReturnStore
	W2s          W2Store
	Forms1099    Form1099Store
	Transactions TransactionStore
	Dependents   DependentStore
	Itemized     ItemizedStore

	Engine *calculation.CalculationEngine
	Audit  audit.Logger
}

// NewReturnService wires a service over the given stores. A nil audit
// logger degrades to a no-op.
func NewReturnService(
	returns ReturnStore,
	w2s W2Store,
	forms1099 Form1099Store,
	transactions TransactionStore,
	dependents DependentStore,
	itemized ItemizedStore,
	engine *calculation.CalculationEngine,
	auditLogger audit.Logger,
) *ReturnService {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if auditLogger == nil {
		auditLogger = audit.NopLogger{}
	}
	return &ReturnService{
		Returns:      returns,
		W2s:          w2s,
		Forms1099:    forms1099,
		Transactions: transactions,
		Dependents:   dependents,
		Itemized:     itemized,
		Engine:       engine,
		Audit:        auditLogger,
	}
}

// Create stores a new return for the user and returns it.
func (s *ReturnService) Create(ctx context.Context, userID string, taxYear int, status domain.FilingStatus, residentState string) (*postgres.TaxReturn, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid filing status %q", status)
	}

	ret := &postgres.TaxReturn{
		ID:            uuid.NewString(),
		UserID:        userID,
		TaxYear:       taxYear,
		FilingStatus:  string(status),
		ResidentState: residentState,
	}
	if err := s.Returns.Save(ctx, ret); err != nil {
		return nil, err
	}
	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionCreate, Resource: ret.ID})
	return ret, nil
}

// GetOwned loads a return and verifies the caller owns it.
func (s *ReturnService) GetOwned(ctx context.Context, userID, returnID string) (*postgres.TaxReturn, error) {
	ret, err := s.Returns.Get(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, ErrNotFound
	}
	if ret.UserID != userID {
		return nil, ErrForbidden
	}
	return ret, nil
}

// List returns all of the user's returns.
func (s *ReturnService) List(ctx context.Context, userID string) ([]postgres.TaxReturn, error) {
	return s.Returns.ListByUser(ctx, userID)
}

// Delete removes an owned return and everything attached to it.
func (s *ReturnService) Delete(ctx context.Context, userID, returnID string) error {
	if _, err := s.GetOwned(ctx, userID, returnID); err != nil {
		return err
	}
	if err := s.Returns.Delete(ctx, returnID); err != nil {
		return err
	}
	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionDelete, Resource: returnID})
	return nil
}

// AssembleInput builds the engine input from everything stored against
// the return. 1099 amounts and estimated payments are summed with the
// engine's own rounding so stored cents never drift.
func (s *ReturnService) AssembleInput(ctx context.Context, ret *postgres.TaxReturn) (*domain.TaxInput, error) {
	if ret == nil {
		return nil, errors.New("assemble input: nil return")
	}

	w2Records, err := s.W2s.ListByReturn(ctx, ret.ID)
	if err != nil {
		return nil, fmt.Errorf("load w2s: %w", err)
	}
	formRecords, err := s.Forms1099.ListByReturn(ctx, ret.ID)
	if err != nil {
		return nil, fmt.Errorf("load 1099s: %w", err)
	}
	txRecords, err := s.Transactions.ListByReturn(ctx, ret.ID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	depRecords, err := s.Dependents.ListByReturn(ctx, ret.ID)
	if err != nil {
		return nil, fmt.Errorf("load dependents: %w", err)
	}
	itemizedRecord, err := s.Itemized.Get(ctx, ret.ID)
	if err != nil {
		return nil, fmt.Errorf("load itemized deductions: %w", err)
	}

	input := &domain.TaxInput{
		AdditionalIncome: ret.AdditionalIncome,
		Adjustments:      ret.Adjustments,
		TaxPayments:      ret.TaxPayments,
		ResidentState:    ret.ResidentState,
	}

	for _, rec := range w2Records {
		input.W2s = append(input.W2s, domain.W2Form{
			ID:                 rec.ID,
			Employer:           rec.Employer,
			Wages:              rec.Wages,
			FederalTaxWithheld: rec.FederalTaxWithheld,
		})
	}

	var interestAmounts, dividendAmounts []float64
	for _, rec := range formRecords {
		switch rec.Kind {
		case postgres.Form1099KindInterest:
			interestAmounts = append(interestAmounts, rec.Amount)
		case postgres.Form1099KindDividends:
			dividendAmounts = append(dividendAmounts, rec.Amount)
		}
	}
	input.TaxableInterest = taxmath.Add(interestAmounts...)
	input.OrdinaryDividends = taxmath.Add(dividendAmounts...)

	for _, rec := range txRecords {
		input.CapitalGainsTransactions = append(input.CapitalGainsTransactions, domain.StockTransaction{
			Description: rec.Description,
			Proceeds:    rec.Proceeds,
			CostBasis:   rec.CostBasis,
			IsLongTerm:  rec.IsLongTerm,
		})
	}

	for _, rec := range depRecords {
		input.Dependents = append(input.Dependents, domain.Dependent{
			FirstName:    rec.FirstName,
			LastName:     rec.LastName,
			DateOfBirth:  rec.DateOfBirth,
			Relationship: rec.Relationship,
		})
	}

	if itemizedRecord != nil {
		input.ItemizedDeductions = &domain.ItemizedDeductions{
			MedicalExpenses:                itemizedRecord.MedicalExpenses,
			StateLocalIncomeTaxes:          itemizedRecord.StateLocalIncomeTaxes,
			RealEstateTaxes:                itemizedRecord.RealEstateTaxes,
			PersonalPropertyTaxes:          itemizedRecord.PersonalPropertyTaxes,
			MortgageInterest:               itemizedRecord.MortgageInterest,
			CharitableContributionsCash:    itemizedRecord.CharitableContributionsCash,
			CharitableContributionsNoncash: itemizedRecord.CharitableContributionsNoncash,
			CasualtyLosses:                 itemizedRecord.CasualtyLosses,
		}
	}

	return input, nil
}

// Calculate assembles the input for an owned return and runs the engine.
// residentStateOverride, when non-empty, wins over the stored state for
// this run only.
func (s *ReturnService) Calculate(ctx context.Context, userID, returnID, residentStateOverride string) (*domain.CalculationResult, error) {
	ret, err := s.GetOwned(ctx, userID, returnID)
	if err != nil {
		return nil, err
	}

	input, err := s.AssembleInput(ctx, ret)
	if err != nil {
		return nil, err
	}
	if residentStateOverride != "" {
		input.ResidentState = residentStateOverride
	}

	start := time.Now()
	result, err := s.Engine.Run(input, domain.FilingStatus(ret.FilingStatus), ret.TaxYear)
	if err != nil {
		metrics.ObserveCalculation(ret.TaxYear, input.ResidentStateOrDefault(), metrics.ResultError, time.Since(start))
		return nil, err
	}
	metrics.ObserveCalculation(ret.TaxYear, input.ResidentStateOrDefault(), metrics.ResultSuccess, time.Since(start))

	_ = s.Audit.Log(ctx, audit.Entry{UserID: userID, Action: audit.ActionCalculate, Resource: returnID})
	return result, nil
}
