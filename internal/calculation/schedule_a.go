package calculation

import (
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/pkg/taxmath"
)

// SALT deduction cap on state and local taxes (income + real estate +
// personal property), halved for Married Filing Separately.
const (
	saltCap    = 10000.0
	saltCapMFS = 5000.0
)

// medicalExpenseFloorRate is the AGI percentage below which medical
// expenses are not deductible.
const medicalExpenseFloorRate = 0.075

// ScheduleAResult carries the total itemized deduction consumed by the
// Form 1040 deduction comparison, alongside the presentational lines.
type ScheduleAResult struct {
	TotalItemized float64
	Lines         []domain.TaxLine
}

// CalculateScheduleA computes itemized deductions. AGI must already be
// computed by the caller (the medical floor depends on it), which is why
// the federal strategy runs this schedule after line 11.
//
// Simplifications carried over deliberately: no AGI percentage ceiling on
// charity, no acquisition-debt tracing on mortgage interest, and casualty
// losses are assumed pre-filtered to federally declared disasters.
func CalculateScheduleA(ded *domain.ItemizedDeductions, agi float64, status domain.FilingStatus) ScheduleAResult {
	var lines []domain.TaxLine
	addLine := func(lineNumber string, value float64, description string) {
		lines = append(lines, domain.TaxLine{
			ID:          "SchA_" + lineNumber,
			Description: description,
			Value:       value,
			Form:        "Schedule A",
			LineNumber:  lineNumber,
		})
	}

	// Medical and dental: only the portion above 7.5% of AGI.
	medicalFloor := taxmath.Mul(agi, medicalExpenseFloorRate)
	medicalDeductible := taxmath.Max(0, taxmath.Sub(ded.MedicalExpenses, medicalFloor))

	addLine("1", ded.MedicalExpenses, "Medical and dental expenses")
	addLine("2", agi, "Enter AGI")
	addLine("3", medicalFloor, "Multiply line 2 by 7.5%")
	addLine("4", medicalDeductible, "Subtract line 3 from line 1")

	// Taxes you paid, subject to the SALT cap.
	totalTaxes := taxmath.Add(ded.StateLocalIncomeTaxes, ded.RealEstateTaxes, ded.PersonalPropertyTaxes)
	cap := saltCap
	if status == domain.FilingStatusMarriedSeparate {
		cap = saltCapMFS
	}
	taxesDeductible := taxmath.Min(totalTaxes, cap)

	addLine("5", ded.StateLocalIncomeTaxes, "State and local income taxes")
	addLine("6", ded.RealEstateTaxes, "Real estate taxes")
	addLine("7", ded.PersonalPropertyTaxes, "Personal property taxes")
	addLine("5d", totalTaxes, "Add lines 5 through 7")
	addLine("7e", taxesDeductible, "Total taxes (limited to $10,000)")

	// Interest you paid: mortgage interest passes through unchanged.
	interestDeductible := ded.MortgageInterest
	addLine("8", ded.MortgageInterest, "Home mortgage interest")
	addLine("10", interestDeductible, "Add lines 8 and 9")

	// Gifts to charity.
	charityTotal := taxmath.Add(ded.CharitableContributionsCash, ded.CharitableContributionsNoncash)
	addLine("11", ded.CharitableContributionsCash, "Gifts by cash or check")
	addLine("12", ded.CharitableContributionsNoncash, "Other than by cash or check")
	addLine("14", charityTotal, "Add lines 11 through 13")

	// Casualty and theft losses.
	addLine("15", ded.CasualtyLosses, "Casualty and theft losses")

	totalItemized := taxmath.Add(
		medicalDeductible,
		taxesDeductible,
		interestDeductible,
		charityTotal,
		ded.CasualtyLosses,
	)
	addLine("17", totalItemized, "Total itemized deductions")

	return ScheduleAResult{
		TotalItemized: totalItemized,
		Lines:         lines,
	}
}
