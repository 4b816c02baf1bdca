package calculation

import (
	"fmt"

	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/pkg/taxmath"
)

// CalculationEngine orchestrates a single tax-year calculation: it resolves
// the federal and state strategies, runs both, and reconciles total tax
// against total payments. Run is a pure function of its arguments — no
// I/O, no shared mutable state — so one engine instance is safe for any
// number of concurrent calls.
type CalculationEngine struct {
	Registry *Registry
	Logger   Logger
}

// NewCalculationEngine creates an engine over the default registry with a
// no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Registry: NewRegistry(),
		Logger:   NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Run computes the federal return and, when the resident state is
// supported, the state return. An unsupported tax year aborts with an
// error; an unsupported state silently produces no state result.
func (ce *CalculationEngine) Run(input *domain.TaxInput, status domain.FilingStatus, taxYear int) (*domain.CalculationResult, error) {
	strategy, err := ce.Registry.FederalStrategy(taxYear)
	if err != nil {
		return nil, fmt.Errorf("resolve federal strategy: %w", err)
	}

	federalLines := strategy.Calculate(input, status)
	allLines := make([]domain.TaxLine, len(federalLines))
	copy(allLines, federalLines)

	// The authoritative refund/owed figures are recomputed here from the
	// federal totals; the per-line 34/37 values are presentational only.
	totalTax := domain.LineValue(allLines, "1040", "24")
	totalPayments := domain.LineValue(allLines, "1040", "33")

	amountOwed := taxmath.Max(0, taxmath.Sub(totalTax, totalPayments))
	refund := taxmath.Max(0, taxmath.Sub(totalPayments, totalTax))

	stateCode := input.ResidentStateOrDefault()
	var stateResult *domain.StateTaxResult
	if stateStrategy, ok := ce.Registry.StateStrategy(stateCode); ok {
		computation := stateStrategy.Calculate(allLines, input, status)
		stateResult = &domain.StateTaxResult{
			State: stateCode,
			Lines: computation.Lines,
			// No state withholding logic yet: owed mirrors the tax.
			AmountOwed: computation.TotalTax,
			Refund:     0,
			TotalTax:   computation.TotalTax,
		}
		ce.Logger.Debugf("state %s total tax %.2f", stateCode, computation.TotalTax)
	} else {
		ce.Logger.Debugf("no state strategy for %q, skipping state result", stateCode)
	}

	return &domain.CalculationResult{
		TaxYear:      taxYear,
		FilingStatus: status,
		Lines:        allLines,
		Refund:       refund,
		AmountOwed:   amountOwed,
		StateResult:  stateResult,
		Errors:       []string{},
	}, nil
}
