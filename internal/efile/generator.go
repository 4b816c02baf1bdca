// Package efile renders a calculation as an IRS MeF-style XML return.
// Amounts are whole dollars, rounded half up the same way the engine
// rounds cents.
package efile

import (
	"encoding/xml"
	"fmt"
	"math"

	"github.com/sthanna/UsTaxesFree/internal/domain"
)

const (
	efileNamespace = "http://www.irs.gov/efile"
	returnVersion  = "2025v1.0"

	// Real SSNs never enter the system; the transmission carries a
	// placeholder until an actual MeF onboarding exists.
	placeholderSSN = "000-00-0000"
)

// Return is the document root.
type Return struct {
	XMLName       xml.Name     `xml:"Return"`
	Xmlns         string       `xml:"xmlns,attr"`
	ReturnVersion string       `xml:"returnVersion,attr"`
	Header        ReturnHeader `xml:"ReturnHeader"`
	Data          ReturnData   `xml:"ReturnData"`
}

// ReturnHeader identifies the filing and the filer.
type ReturnHeader struct {
	TaxYear int   `xml:"TaxYear"`
	Filer   Filer `xml:"Filer"`
}

// Filer is the primary taxpayer block.
type Filer struct {
	PrimarySSN string `xml:"PrimarySSN"`
	NameLine1  string `xml:"NameLine1"`
}

// ReturnData wraps the form documents.
type ReturnData struct {
	DocumentCount int     `xml:"documentCount,attr"`
	IRS1040       IRS1040 `xml:"IRS1040"`
}

// IRS1040 carries the whole-dollar line amounts.
type IRS1040 struct {
	DocumentID           string `xml:"documentId,attr"`
	WagesSalariesAndTips int64  `xml:"WagesSalariesAndTips"`
	TaxableInterest      int64  `xml:"TaxableInterest"`
	OrdinaryDividends    int64  `xml:"OrdinaryDividends"`
	CapitalGainLoss      int64  `xml:"CapitalGainLoss"`
	TaxableIncome        int64  `xml:"TaxableIncome"`
	Tax                  int64  `xml:"Tax"`
	TotalTax             int64  `xml:"TotalTax"`
	TotalPayments        int64  `xml:"TotalPayments"`
	RefundAmount         *int64 `xml:"RefundAmount,omitempty"`
	AmountOwed           *int64 `xml:"AmountOwed,omitempty"`
}

// Generate renders the result as indented XML, prefixed with the XML
// declaration.
func Generate(result *domain.CalculationResult, filerName string) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("efile: nil result")
	}

	wholeDollar := func(lineNumber string) int64 {
		return roundWhole(domain.LineValue(result.Lines, "1040", lineNumber))
	}

	doc := Return{
		Xmlns:         efileNamespace,
		ReturnVersion: returnVersion,
		Header: ReturnHeader{
			TaxYear: result.TaxYear,
			Filer: Filer{
				PrimarySSN: placeholderSSN,
				NameLine1:  filerName,
			},
		},
		Data: ReturnData{
			DocumentCount: 1,
			IRS1040: IRS1040{
				DocumentID:           "DOC001",
				WagesSalariesAndTips: wholeDollar("1z"),
				TaxableInterest:      wholeDollar("2b"),
				OrdinaryDividends:    wholeDollar("3b"),
				CapitalGainLoss:      wholeDollar("7"),
				TaxableIncome:        wholeDollar("15"),
				Tax:                  wholeDollar("16"),
				TotalTax:             wholeDollar("24"),
				TotalPayments:        wholeDollar("25d"),
			},
		},
	}

	if result.Refund > 0 {
		refund := roundWhole(result.Refund)
		doc.Data.IRS1040.RefundAmount = &refund
	} else {
		owed := roundWhole(result.AmountOwed)
		doc.Data.IRS1040.AmountOwed = &owed
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("efile: marshal: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// roundWhole rounds half up toward positive infinity, matching the
// engine's cent rounding at whole-dollar granularity.
func roundWhole(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
