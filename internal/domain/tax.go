// Package domain holds the shared vocabulary of the tax engine: the input
// snapshot the calculation runs over, the line model every form and schedule
// writes, and the final calculation result.
package domain

import "time"

// FilingStatus is the taxpayer's federal filing status. It drives every
// bracket, deduction and exemption table lookup.
type FilingStatus string

const (
	FilingStatusSingle          FilingStatus = "SINGLE"
	FilingStatusMarriedJoint    FilingStatus = "MARRIED_JOINT"
	FilingStatusMarriedSeparate FilingStatus = "MARRIED_SEPARATE"
	FilingStatusHeadOfHousehold FilingStatus = "HEAD_OF_HOUSEHOLD"
	FilingStatusWidow           FilingStatus = "WIDOW"
)

// Valid reports whether the status is one of the five supported values.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case FilingStatusSingle, FilingStatusMarriedJoint, FilingStatusMarriedSeparate,
		FilingStatusHeadOfHousehold, FilingStatusWidow:
		return true
	}
	return false
}

// W2Form is one employer's W-2 for the tax year.
type W2Form struct {
	ID       string  `json:"id" yaml:"id"`
	Employer string  `json:"employer" yaml:"employer"`
	// Box 1 wages and Box 2 federal withholding.
	Wages              float64 `json:"wages" yaml:"wages"`
	FederalTaxWithheld float64 `json:"federalTaxWithheld" yaml:"federal_tax_withheld"`
}

// StockTransaction is one 1099-B sale.
type StockTransaction struct {
	Description string  `json:"description" yaml:"description"`
	Proceeds    float64 `json:"proceeds" yaml:"proceeds"`
	CostBasis   float64 `json:"costBasis" yaml:"cost_basis"`
	IsLongTerm  bool    `json:"isLongTerm" yaml:"is_long_term"`
}

// Dependent is a claimed dependent; relationship and date of birth decide
// Child Tax Credit versus Other Dependent Credit.
type Dependent struct {
	FirstName    string    `json:"firstName" yaml:"first_name"`
	LastName     string    `json:"lastName" yaml:"last_name"`
	DateOfBirth  time.Time `json:"dateOfBirth" yaml:"date_of_birth"`
	Relationship string    `json:"relationship" yaml:"relationship"`
}

// ItemizedDeductions carries the eight raw Schedule A categories. Floors and
// caps are applied by the Schedule A calculator, not here.
type ItemizedDeductions struct {
	MedicalExpenses                 float64 `json:"medicalExpenses" yaml:"medical_expenses"`
	StateLocalIncomeTaxes           float64 `json:"stateLocalIncomeTaxes" yaml:"state_local_income_taxes"`
	RealEstateTaxes                 float64 `json:"realEstateTaxes" yaml:"real_estate_taxes"`
	PersonalPropertyTaxes           float64 `json:"personalPropertyTaxes" yaml:"personal_property_taxes"`
	MortgageInterest                float64 `json:"mortgageInterest" yaml:"mortgage_interest"`
	CharitableContributionsCash     float64 `json:"charitableContributionsCash" yaml:"charitable_contributions_cash"`
	CharitableContributionsNoncash  float64 `json:"charitableContributionsNoncash" yaml:"charitable_contributions_noncash"`
	CasualtyLosses                  float64 `json:"casualtyLosses" yaml:"casualty_losses"`
}

// TaxInput is the normalized snapshot of a taxpayer's facts for one tax
// year. It is assembled fresh per calculation by the caller; the engine
// never mutates it and never retains a reference past the call.
type TaxInput struct {
	W2s []W2Form `json:"w2s" yaml:"w2s"`

	// Already summed across 1099-INT / 1099-DIV documents upstream.
	TaxableInterest   float64 `json:"taxableInterest" yaml:"taxable_interest"`
	OrdinaryDividends float64 `json:"ordinaryDividends" yaml:"ordinary_dividends"`

	CapitalGainsTransactions []StockTransaction `json:"capitalGainsTransactions" yaml:"capital_gains_transactions"`

	// Schedule 1 Part I and Part II totals.
	AdditionalIncome float64 `json:"additionalIncome" yaml:"additional_income"`
	Adjustments      float64 `json:"adjustments" yaml:"adjustments"`

	Dependents []Dependent `json:"dependents" yaml:"dependents"`

	// Estimated and other payments, excluding withholding (withholding is
	// summed from the W-2 records separately).
	TaxPayments float64 `json:"taxPayments" yaml:"tax_payments"`

	ItemizedDeductions *ItemizedDeductions `json:"itemizedDeductions,omitempty" yaml:"itemized_deductions,omitempty"`

	// Two-letter state code; empty defaults to NY.
	ResidentState string `json:"residentState,omitempty" yaml:"resident_state,omitempty"`
}

// ResidentStateOrDefault returns the resident state, defaulting to NY when
// the input carries none.
func (in *TaxInput) ResidentStateOrDefault() string {
	if in.ResidentState == "" {
		return "NY"
	}
	return in.ResidentState
}

// TaxLine is one computed line of a form or schedule. Lines are immutable
// after creation and already rounded to the cent.
type TaxLine struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	// Owning form, e.g. "1040", "Schedule A", "NJ-1040".
	Form string `json:"form"`
	// Line label matching the printed form, e.g. "1z", "15".
	LineNumber string `json:"lineNumber"`
}

// LineValue scans lines for a (form, lineNumber) match and returns its
// value, defaulting to 0 when absent. The silent default is the engine's
// long-standing cross-stage contract; downstream consumers rely on it.
func LineValue(lines []TaxLine, form, lineNumber string) float64 {
	for _, l := range lines {
		if l.Form == form && l.LineNumber == lineNumber {
			return l.Value
		}
	}
	return 0
}

// FindLine returns the first (form, lineNumber) match, if any.
func FindLine(lines []TaxLine, form, lineNumber string) (TaxLine, bool) {
	for _, l := range lines {
		if l.Form == form && l.LineNumber == lineNumber {
			return l, true
		}
	}
	return TaxLine{}, false
}

// StateTaxResult is the state portion of a calculation. Refund and
// AmountOwed exist for interface symmetry; state withholding is not netted
// in the current design, so AmountOwed simply mirrors the total tax.
type StateTaxResult struct {
	State      string    `json:"state"`
	Lines      []TaxLine `json:"lines"`
	AmountOwed float64   `json:"amountOwed"`
	Refund     float64   `json:"refund"`
	TotalTax   float64   `json:"totalTax"`
}

// CalculationResult is the engine's sole output for one run.
type CalculationResult struct {
	TaxYear      int             `json:"taxYear"`
	FilingStatus FilingStatus    `json:"filingStatus"`
	Lines        []TaxLine       `json:"lines"`
	Refund       float64         `json:"refund"`
	AmountOwed   float64         `json:"amountOwed"`
	StateResult  *StateTaxResult `json:"stateResult,omitempty"`
	// Reserved for partial-failure reporting; currently always empty.
	Errors []string `json:"errors"`
}
