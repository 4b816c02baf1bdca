package calculation

import (
	"github.com/sthanna/UsTaxesFree/internal/domain"
)

// FederalFormStrategy computes a full federal return for one supported tax
// year. Each year is its own strategy instance; the line sequence is shared,
// only the deduction tables and the flat tax rate differ.
type FederalFormStrategy interface {
	Calculate(input *domain.TaxInput, status domain.FilingStatus) []domain.TaxLine
}

// StateComputation is the typed result of a state strategy: the state's own
// line list plus its bottom-line tax. Carrying TotalTax as a named field
// keeps the orchestrator off fragile per-state line-number lookups.
type StateComputation struct {
	State    string
	Lines    []domain.TaxLine
	TotalTax float64
}

// StateFormStrategy computes a state return from the already-computed
// federal lines plus the raw input. State strategies re-derive their own
// income base; in particular each applies its own capital-loss policy
// rather than reusing the federal Schedule D figure.
type StateFormStrategy interface {
	Calculate(federalLines []domain.TaxLine, input *domain.TaxInput, status domain.FilingStatus) StateComputation
}
