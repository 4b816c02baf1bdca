package postgres

import "time"

// User is a stored account record.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaxReturn is the root record one calculation is assembled from. The
// scalar Schedule 1 totals and estimated payments live directly on it;
// W-2s, 1099s, sales, dependents and itemized deductions hang off it in
// their own tables.
type TaxReturn struct {
	ID               string
	UserID           string
	TaxYear          int
	FilingStatus     string
	ResidentState    string
	AdditionalIncome float64
	Adjustments      float64
	TaxPayments      float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// W2Record is a stored W-2.
type W2Record struct {
	ID                 string
	ReturnID           string
	Employer           string
	Wages              float64
	FederalTaxWithheld float64
}

// Form1099 kinds.
const (
	Form1099KindInterest  = "INT"
	Form1099KindDividends = "DIV"
)

// Form1099Record is a stored 1099-INT or 1099-DIV.
type Form1099Record struct {
	ID       string
	ReturnID string
	Payer    string
	Kind     string
	Amount   float64
}

// TransactionRecord is a stored 1099-B sale.
type TransactionRecord struct {
	ID          string
	ReturnID    string
	Description string
	Proceeds    float64
	CostBasis   float64
	IsLongTerm  bool
}

// DependentRecord is a stored dependent.
type DependentRecord struct {
	ID           string
	ReturnID     string
	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	Relationship string
}

// ItemizedRecord stores the raw Schedule A categories for a return,
// keyed one-to-one by return id.
type ItemizedRecord struct {
	ReturnID                       string
	MedicalExpenses                float64
	StateLocalIncomeTaxes          float64
	RealEstateTaxes                float64
	PersonalPropertyTaxes          float64
	MortgageInterest               float64
	CharitableContributionsCash    float64
	CharitableContributionsNoncash float64
	CasualtyLosses                 float64
}
