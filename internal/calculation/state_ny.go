package calculation

import (
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/pkg/taxmath"
)

// nyFlatTaxRate approximates NY's bracket table with a single rate.
const nyFlatTaxRate = 0.05

// FormIT201 is the New York resident return strategy.
//
// Capital-gain policy: NY's income base here is wages + interest +
// dividends taken from the federal lines; capital gains are excluded
// entirely. That differs from NJ and PA, which recompute a floored gain
// from the raw transactions.
type FormIT201 struct{}

// NewFormIT201 creates the NY strategy.
func NewFormIT201() *FormIT201 {
	return &FormIT201{}
}

// Calculate derives the IT-201 from the federal wage, interest and
// dividend lines (1z, 2b, 3b), applies NY's flat standard deduction for
// the filing status, and taxes the remainder at a flat 5%.
func (s *FormIT201) Calculate(federalLines []domain.TaxLine, input *domain.TaxInput, status domain.FilingStatus) StateComputation {
	var lines []domain.TaxLine
	addLine := func(id, lineNumber string, value float64, description string) {
		lines = append(lines, domain.TaxLine{
			ID:          id,
			Description: description,
			Value:       value,
			Form:        "IT-201",
			LineNumber:  lineNumber,
		})
	}

	wages := domain.LineValue(federalLines, "1040", "1z")
	interest := domain.LineValue(federalLines, "1040", "2b")
	dividends := domain.LineValue(federalLines, "1040", "3b")

	stateAGI := taxmath.Add(wages, interest, dividends)
	addLine("IT201_fed_agi", "19", stateAGI, "Federal AGI (Simulated)")

	deduction := s.standardDeduction(status)
	addLine("IT201_34", "34", deduction, "NY Standard Deduction")

	taxable := taxmath.Max(0, taxmath.Sub(stateAGI, deduction))
	addLine("IT201_37", "37", taxable, "NY Taxable Income")

	tax := taxmath.Mul(taxable, nyFlatTaxRate)
	addLine("IT201_39", "39", tax, "NY Tax")

	return StateComputation{State: "NY", Lines: lines, TotalTax: tax}
}

func (s *FormIT201) standardDeduction(status domain.FilingStatus) float64 {
	switch status {
	case domain.FilingStatusSingle:
		return 8000
	case domain.FilingStatusMarriedJoint:
		return 16050
	case domain.FilingStatusMarriedSeparate:
		return 8000
	case domain.FilingStatusHeadOfHousehold:
		return 11200
	case domain.FilingStatusWidow:
		return 16050
	default:
		return 0
	}
}
