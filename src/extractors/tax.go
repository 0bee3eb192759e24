package extractors

import (
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/finsift/src/classifier"
	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/utils"
)

// fieldPatterns maps a field name to its ordered alternatives; the first
// pattern that matches wins, like every other extraction table here.
type fieldPatterns struct {
	field    string
	patterns []*regexp.Regexp
}

var taxFormRules = []struct {
	form     string
	patterns []*regexp.Regexp
}{
	{models.Form1099INT, compileAll(
		`form\s+1099[-\s]?int`,
		`1099[-\s]?int`,
		`interest\s+income`,
	)},
	{models.Form1099DIV, compileAll(
		`form\s+1099[-\s]?div`,
		`1099[-\s]?div`,
		`dividend\s+income`,
	)},
	{models.Form1099B, compileAll(
		`form\s+1099[-\s]?b`,
		`1099[-\s]?b`,
		`proceeds\s+from\s+broker`,
		`broker\s+transactions`,
	)},
	{models.FormW2, compileAll(
		`form\s+w[-\s]?2`,
		`\bw[-\s]?2\b`,
		`wage\s+and\s+tax\s+statement`,
	)},
}

var taxFieldTables = map[string][]fieldPatterns{
	models.Form1099INT: {
		{"interest_income", compileAll(
			`interest\s+income[:\s]+\$?([\d,]+\.?\d*)`,
			`total\s+interest[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+1[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"federal_tax_withheld", compileAll(
			`federal\s+tax\s+withheld[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+4[:\s]+\$?([\d,]+\.?\d*)`,
		)},
	},
	models.Form1099DIV: {
		{"ordinary_dividends", compileAll(
			`ordinary\s+dividends[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+1a[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"qualified_dividends", compileAll(
			`qualified\s+dividends[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+1b[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"total_capital_gain", compileAll(
			`total\s+capital\s+gain[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+2a[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"federal_tax_withheld", compileAll(
			`federal\s+tax\s+withheld[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+4[:\s]+\$?([\d,]+\.?\d*)`,
		)},
	},
	models.Form1099B: {
		{"proceeds", compileAll(
			`total\s+proceeds[:\s]+\$?([\d,]+\.?\d*)`,
			`proceeds[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"cost_basis", compileAll(
			`cost\s+basis[:\s]+\$?([\d,]+\.?\d*)`,
			`basis[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"gain_loss", compileAll(
			`net\s+gain[:\s]+\$?([\d,]+\.?\d*)`,
			`gain[:\s]+\$?([\d,]+\.?\d*)`,
			`loss[:\s]+\$?([\d,]+\.?\d*)`,
		)},
	},
	models.FormW2: {
		{"wages", compileAll(
			`wages[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+1[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"federal_tax_withheld", compileAll(
			`federal\s+income\s+tax[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+2[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"social_security_wages", compileAll(
			`social\s+security\s+wages[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+3[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"social_security_tax", compileAll(
			`social\s+security\s+tax[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+4[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"medicare_wages", compileAll(
			`medicare\s+wages[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+5[:\s]+\$?([\d,]+\.?\d*)`,
		)},
		{"medicare_tax", compileAll(
			`medicare\s+tax[:\s]+\$?([\d,]+\.?\d*)`,
			`box\s+6[:\s]+\$?([\d,]+\.?\d*)`,
		)},
	},
}

var (
	// The capture stays on one line so a payer never swallows the next
	// label.
	taxPayerPatterns = compileAll(
		`payer'?s?\s+name[: ]+([A-Z][A-Za-z0-9 &,\.]+)`,
		`payer[: ]+([A-Z][A-Za-z0-9 &,\.]+)`,
		`broker[: ]+([A-Z][A-Za-z0-9 &,\.]+)`,
		`employer'?s?\s+name[: ]+([A-Z][A-Za-z0-9 &,\.]+)`,
		`employer[: ]+([A-Z][A-Za-z0-9 &,\.]+)`,
	)
	taxYearPatterns = compileAll(
		`calendar\s+year[:\s]+(\d{4})`,
		`tax\s+year[:\s]+(\d{4})`,
		`year[:\s]+(\d{4})`,
	)
	// Constrained to 19xx/20xx so the "1099" in a filename is never read
	// as a year.
	filenameYearPattern = regexp.MustCompile(`((?:19|20)\d{2})`)
)

// TaxExtractor pulls box amounts from 1099 and W-2 forms.
type TaxExtractor struct {
	now func() time.Time
}

func NewTaxExtractor() *TaxExtractor {
	return &TaxExtractor{now: time.Now}
}

// DetectFormKind identifies the form from filename first, then content.
// Empty string means the document is not a tax form.
func (e *TaxExtractor) DetectFormKind(text, filename string) string {
	name := classifier.NormalizeFilename(filename)
	for _, rule := range taxFormRules {
		for _, re := range rule.patterns {
			if re.MatchString(name) {
				return rule.form
			}
		}
	}
	for _, rule := range taxFormRules {
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				return rule.form
			}
		}
	}
	return ""
}

// Extract returns the tax document found in text, or nil when the document
// is not a recognized tax form. Extraction never errors; missing boxes are
// simply absent from Fields.
func (e *TaxExtractor) Extract(text, filename string) *models.TaxDocument {
	if text == "" {
		return nil
	}
	form := e.DetectFormKind(text, filename)
	if form == "" {
		return nil
	}

	doc := &models.TaxDocument{
		FormKind:   form,
		Fields:     make(map[string]decimal.Decimal),
		SourceFile: filename,
	}
	for _, fp := range taxFieldTables[form] {
		for _, re := range fp.patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if v, ok := utils.ParseAmount(m[1]); ok {
				doc.Fields[fp.field] = v
			}
			break
		}
	}
	doc.Payer = firstSubmatch(taxPayerPatterns, text)
	doc.TaxYear = e.resolveTaxYear(text, filename)
	return doc
}

// resolveTaxYear prefers the year printed on the form, then a 4-digit year
// in the filename, then the current year.
func (e *TaxExtractor) resolveTaxYear(text, filename string) int {
	if m := firstSubmatch(taxYearPatterns, text); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			return y
		}
	}
	if m := filenameYearPattern.FindStringSubmatch(filename); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			return y
		}
	}
	return e.now().Year()
}
