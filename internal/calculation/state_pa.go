package calculation

import (
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/pkg/taxmath"
)

// paFlatTaxRate is Pennsylvania's flat income tax rate.
const paFlatTaxRate = 0.0307

// FormPA40 is the Pennsylvania resident return strategy.
//
// Capital-gain policy: same floor-at-zero as NJ. PA income classes cannot
// offset one another, and the gains class itself cannot go negative, so a
// net loss from the raw transactions contributes nothing. PA applies no
// deduction or exemption at all.
type FormPA40 struct{}

// NewFormPA40 creates the PA strategy.
func NewFormPA40() *FormPA40 {
	return &FormPA40{}
}

// Calculate sums compensation, interest, dividends and the floored net
// gain, then applies the flat 3.07% rate.
func (s *FormPA40) Calculate(federalLines []domain.TaxLine, input *domain.TaxInput, status domain.FilingStatus) StateComputation {
	wageAmounts := make([]float64, 0, len(input.W2s))
	for _, w2 := range input.W2s {
		wageAmounts = append(wageAmounts, w2.Wages)
	}
	compensation := taxmath.Add(wageAmounts...)
	interest := input.TaxableInterest
	dividends := input.OrdinaryDividends

	// PA does not distinguish short from long term; all transactions
	// aggregate into one class, floored at zero.
	var totalProceeds, totalBasis float64
	for _, tx := range input.CapitalGainsTransactions {
		totalProceeds = taxmath.Add(totalProceeds, tx.Proceeds)
		totalBasis = taxmath.Add(totalBasis, tx.CostBasis)
	}
	rawGain := taxmath.Sub(totalProceeds, totalBasis)
	netGain := 0.0
	if rawGain > 0 {
		netGain = rawGain
	}

	totalIncome := taxmath.Add(compensation, interest, dividends, netGain)
	tax := taxmath.Mul(totalIncome, paFlatTaxRate)

	lines := []domain.TaxLine{
		{ID: "PA_1", Description: "Compensation", Value: compensation, Form: "PA-40", LineNumber: "1a"},
		{ID: "PA_2", Description: "Interest", Value: interest, Form: "PA-40", LineNumber: "2"},
		{ID: "PA_3", Description: "Dividends", Value: dividends, Form: "PA-40", LineNumber: "3"},
		{ID: "PA_4", Description: "Net Gains", Value: netGain, Form: "PA-40", LineNumber: "4"},
		{ID: "PA_9", Description: "Total PA Taxable Income", Value: totalIncome, Form: "PA-40", LineNumber: "9"},
		{ID: "PA_12", Description: "PA Tax Liability (3.07%)", Value: tax, Form: "PA-40", LineNumber: "12"},
	}

	return StateComputation{State: "PA", Lines: lines, TotalTax: tax}
}
