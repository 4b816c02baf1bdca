// Package report renders a calculation as a downloadable PDF summary or
// an XLSX line export.
package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/internal/output"
)

type pdfSection struct {
	title string
	lines []string
}

var summarySections = []pdfSection{
	{title: "Income", lines: []string{"1z", "2b", "3b", "7", "8", "9", "11"}},
	{title: "Deductions", lines: []string{"12", "15"}},
	{title: "Tax and Credits", lines: []string{"16", "19", "24"}},
	{title: "Payments", lines: []string{"25d", "26", "33"}},
}

// BuildReturnPDF renders the 1040 summary as a one-page PDF.
func BuildReturnPDF(result *domain.CalculationResult, filerName string) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("report: nil result")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("Tax Return Summary %d", result.TaxYear))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Filing Status: %s", result.FilingStatus))
	pdf.Ln(6)
	if filerName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Taxpayer: %s", filerName))
		pdf.Ln(6)
	}
	pdf.Ln(2)

	for _, section := range summarySections {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, section.title+":")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		for _, lineNumber := range section.lines {
			line, ok := domain.FindLine(result.Lines, "1040", lineNumber)
			if !ok {
				continue
			}
			pdf.Cell(10, 5, "")
			pdf.Cell(0, 5, fmt.Sprintf("%s - %s: %s", line.LineNumber, line.Description, output.FormatCurrency(line.Value)))
			pdf.Ln(5)
		}
		pdf.Ln(3)
	}

	if state := result.StateResult; state != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, fmt.Sprintf("State (%s):", state.State))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range state.Lines {
			pdf.Cell(10, 5, "")
			pdf.Cell(0, 5, fmt.Sprintf("%s - %s: %s", line.LineNumber, line.Description, output.FormatCurrency(line.Value)))
			pdf.Ln(5)
		}
		pdf.Ln(3)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 16)
	if result.Refund > 0 {
		pdf.SetTextColor(0, 128, 0)
		pdf.Cell(0, 10, fmt.Sprintf("REFUND: %s", output.FormatCurrency(result.Refund)))
	} else {
		pdf.SetTextColor(192, 0, 0)
		pdf.Cell(0, 10, fmt.Sprintf("AMOUNT YOU OWE: %s", output.FormatCurrency(result.AmountOwed)))
	}
	pdf.SetTextColor(0, 0, 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReturnXLSX renders every computed line as a workbook: a summary
// sheet plus one row per line.
func BuildReturnXLSX(result *domain.CalculationResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("report: nil result")
	}

	f := excelize.NewFile()
	summarySheet := "summary"
	linesSheet := "lines"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(linesSheet)

	_ = f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Tax Return Summary %d", result.TaxYear))
	_ = f.SetCellValue(summarySheet, "A3", "Filing Status")
	_ = f.SetCellValue(summarySheet, "B3", string(result.FilingStatus))
	_ = f.SetCellValue(summarySheet, "A4", "Refund")
	_ = f.SetCellValue(summarySheet, "B4", result.Refund)
	_ = f.SetCellValue(summarySheet, "A5", "Amount Owed")
	_ = f.SetCellValue(summarySheet, "B5", result.AmountOwed)
	if state := result.StateResult; state != nil {
		_ = f.SetCellValue(summarySheet, "A6", "State")
		_ = f.SetCellValue(summarySheet, "B6", state.State)
		_ = f.SetCellValue(summarySheet, "A7", "State Tax")
		_ = f.SetCellValue(summarySheet, "B7", state.TotalTax)
	}

	_ = f.SetCellValue(linesSheet, "A1", "Form")
	_ = f.SetCellValue(linesSheet, "B1", "Line")
	_ = f.SetCellValue(linesSheet, "C1", "Description")
	_ = f.SetCellValue(linesSheet, "D1", "Value")

	all := make([]domain.TaxLine, 0, len(result.Lines))
	all = append(all, result.Lines...)
	if result.StateResult != nil {
		all = append(all, result.StateResult.Lines...)
	}
	for i, line := range all {
		r := i + 2
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("A%d", r), line.Form)
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("B%d", r), line.LineNumber)
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("C%d", r), line.Description)
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("D%d", r), line.Value)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
