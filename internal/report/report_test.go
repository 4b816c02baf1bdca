package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sthanna/UsTaxesFree/internal/domain"
)

func sampleResult() *domain.CalculationResult {
	return &domain.CalculationResult{
		TaxYear:      2025,
		FilingStatus: domain.FilingStatusSingle,
		Lines: []domain.TaxLine{
			{Description: "Wages, salaries, tips, etc.", Value: 50000, Form: "1040", LineNumber: "1z"},
			{Description: "Standard Deduction", Value: 15000, Form: "1040", LineNumber: "12"},
			{Description: "Taxable Income", Value: 35000, Form: "1040", LineNumber: "15"},
			{Description: "Tax", Value: 5250, Form: "1040", LineNumber: "16"},
			{Description: "Total Tax", Value: 5250, Form: "1040", LineNumber: "24"},
			{Description: "Federal income tax withheld", Value: 6000, Form: "1040", LineNumber: "25d"},
		},
		Refund: 750,
		StateResult: &domain.StateTaxResult{
			State:    "NY",
			Lines:    []domain.TaxLine{{Description: "NY Tax", Value: 2100, Form: "IT-201", LineNumber: "39"}},
			TotalTax: 2100,
		},
	}
}

func TestBuildReturnPDF(t *testing.T) {
	data, err := BuildReturnPDF(sampleResult(), "Jane Filer")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBuildReturnPDFNilResult(t *testing.T) {
	_, err := BuildReturnPDF(nil, "x")
	assert.Error(t, err)
}

func TestBuildReturnXLSX(t *testing.T) {
	data, err := BuildReturnXLSX(sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	status, err := f.GetCellValue("summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "SINGLE", status)

	state, err := f.GetCellValue("summary", "B6")
	require.NoError(t, err)
	assert.Equal(t, "NY", state)

	rows, err := f.GetRows("lines")
	require.NoError(t, err)
	// header + 6 federal + 1 state
	require.Len(t, rows, 8)
	assert.Equal(t, []string{"Form", "Line", "Description", "Value"}, rows[0])
	assert.Equal(t, "IT-201", rows[7][0])
}
