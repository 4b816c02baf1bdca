package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sthanna/UsTaxesFree/internal/domain"
)

// ReturnFile is the on-disk representation of a tax return for the CLI:
// the year and filing status the calculation runs under plus the full
// taxpayer input snapshot.
type ReturnFile struct {
	TaxYear      int                 `yaml:"tax_year"`
	FilingStatus domain.FilingStatus `yaml:"filing_status"`
	Input        domain.TaxInput     `yaml:"input"`
}

// InputParser handles parsing of tax return input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a tax return from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*ReturnFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var ret ReturnFile
	if err := yaml.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateReturn(&ret); err != nil {
		return nil, fmt.Errorf("return validation failed: %w", err)
	}

	return &ret, nil
}

// ValidateReturn validates the loaded return file
func (ip *InputParser) ValidateReturn(ret *ReturnFile) error {
	if ret.TaxYear == 0 {
		return fmt.Errorf("tax year is required")
	}
	if !ret.FilingStatus.Valid() {
		return fmt.Errorf("filing status %q is not one of SINGLE, MARRIED_JOINT, MARRIED_SEPARATE, HEAD_OF_HOUSEHOLD, WIDOW", ret.FilingStatus)
	}

	for i, w2 := range ret.Input.W2s {
		if err := ip.validateW2(&w2); err != nil {
			return fmt.Errorf("w2 %d validation failed: %w", i, err)
		}
	}

	for i, tx := range ret.Input.CapitalGainsTransactions {
		if err := ip.validateTransaction(&tx); err != nil {
			return fmt.Errorf("transaction %d validation failed: %w", i, err)
		}
	}

	for i, dep := range ret.Input.Dependents {
		if err := ip.validateDependent(&dep); err != nil {
			return fmt.Errorf("dependent %d validation failed: %w", i, err)
		}
	}

	if ret.Input.TaxableInterest < 0 {
		return fmt.Errorf("taxable interest cannot be negative")
	}
	if ret.Input.OrdinaryDividends < 0 {
		return fmt.Errorf("ordinary dividends cannot be negative")
	}
	if ret.Input.TaxPayments < 0 {
		return fmt.Errorf("tax payments cannot be negative")
	}

	if ded := ret.Input.ItemizedDeductions; ded != nil {
		if err := ip.validateItemized(ded); err != nil {
			return fmt.Errorf("itemized deductions validation failed: %w", err)
		}
	}

	return nil
}

// validateW2 validates a single W-2 record
func (ip *InputParser) validateW2(w2 *domain.W2Form) error {
	if w2.Employer == "" {
		return fmt.Errorf("employer is required")
	}
	if w2.Wages < 0 {
		return fmt.Errorf("wages cannot be negative")
	}
	if w2.FederalTaxWithheld < 0 {
		return fmt.Errorf("federal tax withheld cannot be negative")
	}
	return nil
}

// validateTransaction validates a single 1099-B sale
func (ip *InputParser) validateTransaction(tx *domain.StockTransaction) error {
	if tx.Proceeds < 0 {
		return fmt.Errorf("proceeds cannot be negative")
	}
	if tx.CostBasis < 0 {
		return fmt.Errorf("cost basis cannot be negative")
	}
	return nil
}

// validateDependent validates a single dependent
func (ip *InputParser) validateDependent(dep *domain.Dependent) error {
	if dep.FirstName == "" || dep.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	if dep.DateOfBirth.IsZero() {
		return fmt.Errorf("date of birth is required")
	}
	if dep.Relationship == "" {
		return fmt.Errorf("relationship is required")
	}
	return nil
}

// validateItemized rejects negative category amounts; floors and caps are
// applied later by the Schedule A calculator.
func (ip *InputParser) validateItemized(ded *domain.ItemizedDeductions) error {
	categories := map[string]float64{
		"medical expenses":                 ded.MedicalExpenses,
		"state and local income taxes":     ded.StateLocalIncomeTaxes,
		"real estate taxes":                ded.RealEstateTaxes,
		"personal property taxes":          ded.PersonalPropertyTaxes,
		"mortgage interest":                ded.MortgageInterest,
		"charitable contributions cash":    ded.CharitableContributionsCash,
		"charitable contributions noncash": ded.CharitableContributionsNoncash,
		"casualty losses":                  ded.CasualtyLosses,
	}
	for name, amount := range categories {
		if amount < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	return nil
}

// CreateExampleReturn creates an example return file, used by the CLI's
// init command to give users a starting point.
func (ip *InputParser) CreateExampleReturn() *ReturnFile {
	childBirthDate, _ := time.Parse("2006-01-02", "2015-04-12")

	return &ReturnFile{
		TaxYear:      2025,
		FilingStatus: domain.FilingStatusMarriedJoint,
		Input: domain.TaxInput{
			W2s: []domain.W2Form{
				{
					ID:                 "w2-1",
					Employer:           "Acme Corp",
					Wages:              95000,
					FederalTaxWithheld: 11200,
				},
				{
					ID:                 "w2-2",
					Employer:           "Globex LLC",
					Wages:              62000,
					FederalTaxWithheld: 6800,
				},
			},
			TaxableInterest:   420.50,
			OrdinaryDividends: 1375,
			CapitalGainsTransactions: []domain.StockTransaction{
				{Description: "100 VTI", Proceeds: 24500, CostBasis: 21000, IsLongTerm: true},
				{Description: "50 AAPL", Proceeds: 9800, CostBasis: 10400, IsLongTerm: false},
			},
			Dependents: []domain.Dependent{
				{
					FirstName:    "Jamie",
					LastName:     "Example",
					DateOfBirth:  childBirthDate,
					Relationship: "Child",
				},
			},
			TaxPayments:   1500,
			ResidentState: "NY",
		},
	}
}
