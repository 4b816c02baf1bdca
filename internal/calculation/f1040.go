package calculation

import (
	"math"

	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/pkg/dateutil"
	"github.com/sthanna/UsTaxesFree/pkg/taxmath"
)

// Child Tax Credit constants shared by every supported year.
const (
	ctcPerChild          = 2000.0
	ctcPerOtherDependent = 500.0
	ctcChildAgeLimit     = 17
	// AGI thresholds above which the credit phases out.
	ctcPhaseOutThresholdMFJ = 400000.0
	ctcPhaseOutThreshold    = 200000.0
	// Reduction per (ceiling-rounded) $1,000 of excess AGI.
	ctcPhaseOutStep = 50.0
)

// StandardDeductionTable maps filing status to the year's standard
// deduction. Statuses without an entry deduct zero.
type StandardDeductionTable map[domain.FilingStatus]float64

// Form1040 computes the full federal Form 1040 line sequence for one tax
// year. The sequence itself is part of the contract (every later line
// depends on specific earlier lines by value); years differ only in the
// standard-deduction table and the flat tax rate.
type Form1040 struct {
	Year               int
	StandardDeductions StandardDeductionTable
	// Flat-rate approximation of the tax tables; not real progressive
	// brackets.
	FlatTaxRate float64
}

// NewForm1040For2024 creates the 2024 federal strategy (final 2024
// standard-deduction values, 12% flat rate).
func NewForm1040For2024() *Form1040 {
	return &Form1040{
		Year: 2024,
		StandardDeductions: StandardDeductionTable{
			domain.FilingStatusSingle:          14600,
			domain.FilingStatusMarriedSeparate: 14600,
			domain.FilingStatusMarriedJoint:    29200,
			domain.FilingStatusWidow:           29200,
			domain.FilingStatusHeadOfHousehold: 21900,
		},
		FlatTaxRate: 0.12,
	}
}

// NewForm1040For2025 creates the 2025 federal strategy (estimated 2025
// standard-deduction values, 15% flat rate).
func NewForm1040For2025() *Form1040 {
	return &Form1040{
		Year: 2025,
		StandardDeductions: StandardDeductionTable{
			domain.FilingStatusSingle:          15000,
			domain.FilingStatusMarriedSeparate: 15000,
			domain.FilingStatusMarriedJoint:    30000,
			domain.FilingStatusWidow:           30000,
			domain.FilingStatusHeadOfHousehold: 22500,
		},
		FlatTaxRate: 0.15,
	}
}

// Calculate runs the ordered Form 1040 derivation. Later lines consume the
// typed results of earlier stages directly; the emitted line list is the
// presentational record of the same values.
func (f *Form1040) Calculate(input *domain.TaxInput, status domain.FilingStatus) []domain.TaxLine {
	var lines []domain.TaxLine
	addLine := func(lineNumber string, value float64, description string) {
		lines = append(lines, domain.TaxLine{
			ID:          "1040_" + lineNumber,
			Description: description,
			Value:       value,
			Form:        "1040",
			LineNumber:  lineNumber,
		})
	}

	// Line 1z: wages across all W-2s.
	wageAmounts := make([]float64, 0, len(input.W2s))
	for _, w2 := range input.W2s {
		wageAmounts = append(wageAmounts, w2.Wages)
	}
	wages := taxmath.Add(wageAmounts...)
	addLine("1z", wages, "Wages, salaries, tips, etc.")

	// Schedule B feeds lines 2b and 3b.
	schB := CalculateScheduleB(input)
	lines = append(lines, schB.Lines...)
	addLine("2b", schB.TotalInterest, "Taxable Interest")
	addLine("3b", schB.TotalDividends, "Ordinary Dividends")

	// Schedule D feeds line 7.
	schD := CalculateScheduleD(input)
	lines = append(lines, schD.Lines...)
	addLine("7", schD.AllowableGainLoss, "Capital Gain/Loss")

	// Line 8: Schedule 1 Part I total, passed through.
	addLine("8", input.AdditionalIncome, "Other Income from Schedule 1")

	// Line 9: total income.
	totalIncome := taxmath.Add(wages, schB.TotalInterest, schB.TotalDividends, schD.AllowableGainLoss, input.AdditionalIncome)
	addLine("9", totalIncome, "Total Income")

	// Line 10: Schedule 1 Part II total, passed through.
	addLine("10", input.Adjustments, "Adjustments from Schedule 1")

	// Line 11: AGI, floored at zero.
	agi := taxmath.Max(0, taxmath.Sub(totalIncome, input.Adjustments))
	addLine("11", agi, "Adjusted Gross Income")

	// Schedule A needs the AGI computed above, hence the two-pass order.
	itemized := 0.0
	if input.ItemizedDeductions != nil {
		schA := CalculateScheduleA(input.ItemizedDeductions, agi, status)
		lines = append(lines, schA.Lines...)
		itemized = schA.TotalItemized
	}

	// Line 12: the larger of standard and itemized. The same figure is
	// subtracted on line 15; line 12 and the taxable-income subtraction
	// share one source of truth.
	stdDeduction := f.standardDeduction(status)
	deductionUsed := taxmath.Max(stdDeduction, itemized)
	deductionDesc := "Standard Deduction"
	if itemized > stdDeduction {
		deductionDesc = "Itemized Deductions (Schedule A)"
	}
	addLine("12", deductionUsed, deductionDesc)

	// Line 15: taxable income.
	taxableIncome := taxmath.Max(0, taxmath.Sub(agi, deductionUsed))
	addLine("15", taxableIncome, "Taxable Income")

	// Line 16: tax at the year's flat rate.
	tax := taxmath.Mul(taxableIncome, f.FlatTaxRate)
	addLine("16", tax, "Tax")

	// Line 19: Child Tax Credit / Other Dependent Credit.
	ctc := f.childTaxCredit(input.Dependents, agi, status)
	addLine("19", ctc, "Child Tax Credit / Credit for Other Dependents")

	// Line 24: total tax, floored at zero.
	totalTax := taxmath.Max(0, taxmath.Sub(tax, ctc))
	addLine("24", totalTax, "Total Tax")

	// Line 25d: withholding across all W-2s.
	withheldAmounts := make([]float64, 0, len(input.W2s))
	for _, w2 := range input.W2s {
		withheldAmounts = append(withheldAmounts, w2.FederalTaxWithheld)
	}
	withheld := taxmath.Add(withheldAmounts...)
	addLine("25d", withheld, "Federal income tax withheld")

	// Line 26: estimated payments, passed through.
	addLine("26", input.TaxPayments, "Estimated tax payments and amount applied from prior year return")

	// Line 33: total payments.
	totalPayments := taxmath.Add(withheld, input.TaxPayments)
	addLine("33", totalPayments, "Total Payments")

	// Exactly one of lines 34/37 is emitted, neither at exact equality.
	if totalPayments > totalTax {
		addLine("34", taxmath.Sub(totalPayments, totalTax), "Amount Overpaid")
	}
	if totalTax > totalPayments {
		addLine("37", taxmath.Sub(totalTax, totalPayments), "Amount You Owe")
	}

	return lines
}

// standardDeduction looks up the year's standard deduction; a status with
// no table entry deducts zero.
func (f *Form1040) standardDeduction(status domain.FilingStatus) float64 {
	return f.StandardDeductions[status]
}

// childTaxCredit awards $2,000 per qualifying child (under 17 at year-end,
// relationship Child or Stepchild) and $500 per other dependent, then
// phases the credit out by $50 per ceiling-rounded $1,000 of AGI over the
// status threshold.
func (f *Form1040) childTaxCredit(dependents []domain.Dependent, agi float64, status domain.FilingStatus) float64 {
	credit := 0.0
	for _, dep := range dependents {
		age := dateutil.AgeAtYearEnd(dep.DateOfBirth, f.Year)
		if age < ctcChildAgeLimit && (dep.Relationship == "Child" || dep.Relationship == "Stepchild") {
			credit += ctcPerChild
		} else {
			credit += ctcPerOtherDependent
		}
	}

	threshold := ctcPhaseOutThreshold
	if status == domain.FilingStatusMarriedJoint {
		threshold = ctcPhaseOutThresholdMFJ
	}
	if agi > threshold {
		excess := agi - threshold
		reduction := math.Ceil(excess/1000) * ctcPhaseOutStep
		credit = taxmath.Max(0, credit-reduction)
	}

	return credit
}
