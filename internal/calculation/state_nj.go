package calculation

import (
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/pkg/taxmath"
)

// NJ per-person exemptions.
const (
	njExemptionSingle = 1000.0
	njExemptionJoint  = 2000.0
)

// FormNJ1040 is the New Jersey resident return strategy.
//
// Capital-gain policy: NJ recomputes the net gain from the raw
// transactions and floors it at zero. A net loss cannot offset wages or
// other income classes, unlike the federal treatment.
type FormNJ1040 struct{}

// NewFormNJ1040 creates the NJ strategy.
func NewFormNJ1040() *FormNJ1040 {
	return &FormNJ1040{}
}

// Calculate derives NJ gross income (wages + interest + dividends +
// floored net gain), subtracts the exemption, and taxes the remainder
// through NJ's five-bracket progressive table.
func (s *FormNJ1040) Calculate(federalLines []domain.TaxLine, input *domain.TaxInput, status domain.FilingStatus) StateComputation {
	wageAmounts := make([]float64, 0, len(input.W2s))
	for _, w2 := range input.W2s {
		wageAmounts = append(wageAmounts, w2.Wages)
	}
	wages := taxmath.Add(wageAmounts...)
	interest := input.TaxableInterest
	dividends := input.OrdinaryDividends

	// NJ gain class: aggregate all transactions; a net loss becomes 0.
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

	grossIncome := taxmath.Add(wages, interest, dividends, netGain)

	exemptions := njExemptionSingle
	if status == domain.FilingStatusMarriedJoint || status == domain.FilingStatusWidow {
		exemptions = njExemptionJoint
	}

	taxableIncome := taxmath.Max(0, taxmath.Sub(grossIncome, exemptions))
	tax := s.bracketTax(taxableIncome)

	lines := []domain.TaxLine{
		{ID: "NJ_1", Description: "Wages", Value: wages, Form: "NJ-1040", LineNumber: "15"},
		{ID: "NJ_2", Description: "Interest", Value: interest, Form: "NJ-1040", LineNumber: "16"},
		{ID: "NJ_29", Description: "Total Gross Income", Value: grossIncome, Form: "NJ-1040", LineNumber: "29"},
		{ID: "NJ_30", Description: "Total Exemptions", Value: exemptions, Form: "NJ-1040", LineNumber: "30"},
		{ID: "NJ_39", Description: "Total Tax", Value: tax, Form: "NJ-1040", LineNumber: "39"},
	}

	return StateComputation{State: "NJ", Lines: lines, TotalTax: tax}
}

// bracketTax applies the simplified NJ table. Thresholds and base amounts
// are deliberately literal rather than a generic table loop:
//
//	1.4%   up to 20,000
//	1.75%  20,000 - 35,000   (base 280)
//	3.5%   35,000 - 40,000   (base 542.50)
//	5.525% 40,000 - 75,000   (base 717.50)
//	6.37%  over 75,000       (base 2,651.25)
func (s *FormNJ1040) bracketTax(taxableIncome float64) float64 {
	switch {
	case taxableIncome <= 20000:
		return taxmath.Mul(taxableIncome, 0.014)
	case taxableIncome <= 35000:
		return taxmath.Add(280, taxmath.Mul(taxableIncome-20000, 0.0175))
	case taxableIncome <= 40000:
		return taxmath.Add(542.50, taxmath.Mul(taxableIncome-35000, 0.035))
	case taxableIncome <= 75000:
		return taxmath.Add(717.50, taxmath.Mul(taxableIncome-40000, 0.05525))
	default:
		return taxmath.Add(2651.25, taxmath.Mul(taxableIncome-75000, 0.0637))
	}
}
