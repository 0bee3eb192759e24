package extractors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/finsift/src/models"
)

const sample1099INT = `Form 1099-INT
Payer: First National Bank
Interest Income: $123.45
Federal Tax Withheld: $12.00
Calendar Year: 2023`

func TestTaxExtract1099INT(t *testing.T) {
	doc := NewTaxExtractor().Extract(sample1099INT, "1099_int.txt")
	require.NotNil(t, doc)

	assert.Equal(t, models.Form1099INT, doc.FormKind)
	assert.Equal(t, 2023, doc.TaxYear)
	assert.Equal(t, "First National Bank", doc.Payer)
	assert.Equal(t, "123.45", doc.Fields["interest_income"].StringFixed(2))
	assert.Equal(t, "12.00", doc.Fields["federal_tax_withheld"].StringFixed(2))
}

func TestTaxExtractW2(t *testing.T) {
	text := `Wage and Tax Statement
Employer: Acme Corporation
Wages: $85,000.00
Federal Income Tax: $12,750.00
Social Security Wages: $85,000.00
Medicare Tax: $1,232.50
Tax Year: 2023`

	doc := NewTaxExtractor().Extract(text, "w2.txt")
	require.NotNil(t, doc)

	assert.Equal(t, models.FormW2, doc.FormKind)
	assert.Equal(t, "85000.00", doc.Fields["wages"].StringFixed(2))
	assert.Equal(t, "12750.00", doc.Fields["federal_tax_withheld"].StringFixed(2))
	assert.Equal(t, "Acme Corporation", doc.Payer)
}

func TestTaxDetectFormKindFromFilename(t *testing.T) {
	e := NewTaxExtractor()
	assert.Equal(t, models.Form1099DIV, e.DetectFormKind("dividend summary attached", "1099_div_2023.txt"))
	assert.Equal(t, models.FormW2, e.DetectFormKind("", "w2_2023.txt"))
	assert.Equal(t, "", e.DetectFormKind("just a grocery list", "notes.txt"))
}

func TestTaxYearFallsBackToFilename(t *testing.T) {
	doc := NewTaxExtractor().Extract("Form 1099-INT\nInterest Income: $50.00", "1099_int_2022.txt")
	require.NotNil(t, doc)
	assert.Equal(t, 2022, doc.TaxYear)
}

func TestTaxYearFallsBackToCurrentYear(t *testing.T) {
	e := NewTaxExtractor()
	e.now = func() time.Time { return time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC) }

	doc := e.Extract("Form 1099-INT\nInterest Income: $50.00", "interest.txt")
	require.NotNil(t, doc)
	assert.Equal(t, 2021, doc.TaxYear)
}

func TestTaxExtractRejectsNonTaxDocument(t *testing.T) {
	assert.Nil(t, NewTaxExtractor().Extract("Ending Balance: $2,500.00", "statement.txt"))
	assert.Nil(t, NewTaxExtractor().Extract("", "1099_int.txt"))
}
