package extractors

import (
	"regexp"

	"github.com/shopspring/decimal"
	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/utils"
)

var paystubKeywords = []string{
	"pay stub", "paystub", "pay statement", "earnings statement",
	"payroll", "gross pay", "net pay", "take home", "pay period",
	"federal tax", "social security", "medicare",
}

var (
	payDatePatterns = compileAll(
		`pay\s+date[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		`date[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
	)
	payPeriodPattern = regexp.MustCompile(
		`(?i)(?:pay\s+)?period[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s*[-–]\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	// Matched against the raw segment; the capture stays on one line so an
	// employer never swallows the next label.
	employerPatterns = compileAll(
		`employer[: ]+([A-Z][A-Za-z0-9 &,\.]+)`,
		`company[: ]+([A-Z][A-Za-z0-9 &,\.]+)`,
	)
	grossPayPatterns = compileAll(
		`gross\s+pay[:\s]+\$?([\d,]+\.?\d*)`,
		`gross\s+earnings[:\s]+\$?([\d,]+\.?\d*)`,
		`total\s+gross[:\s]+\$?([\d,]+\.?\d*)`,
	)
	netPayPatterns = compileAll(
		`net\s+pay[:\s]+\$?([\d,]+\.?\d*)`,
		`take\s+home[:\s]+\$?([\d,]+\.?\d*)`,
	)
	totalDeductionsPatterns = compileAll(
		`total\s+deductions?[:\s]+\$?([\d,]+\.?\d*)`,
		`deductions?\s+total[:\s]+\$?([\d,]+\.?\d*)`,
	)
	ytdGrossPatterns = compileAll(
		`ytd\s+gross[:\s]+\$?([\d,]+\.?\d*)`,
		`year\s+to\s+date\s+gross[:\s]+\$?([\d,]+\.?\d*)`,
	)
	ytdNetPatterns = compileAll(
		`ytd\s+net[:\s]+\$?([\d,]+\.?\d*)`,
		`year\s+to\s+date\s+net[:\s]+\$?([\d,]+\.?\d*)`,
	)
	// A new "Pay Date" marker starts the next stub when one file carries a
	// whole pay history.
	paystubBoundary = regexp.MustCompile(`(?i)pay\s+date[:\s]`)
)

// deductionTables holds one ordered pattern list per deduction category.
var deductionTables = []fieldPatterns{
	{"federal_tax", compileAll(
		`federal\s+tax[:\s]+\$?([\d,]+\.?\d*)`,
		`fed\s+tax[:\s]+\$?([\d,]+\.?\d*)`,
		`federal\s+withholding[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"state_tax", compileAll(
		`state\s+tax[:\s]+\$?([\d,]+\.?\d*)`,
		`state\s+withholding[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"local_tax", compileAll(
		`local\s+tax[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"social_security", compileAll(
		`social\s+security[:\s]+\$?([\d,]+\.?\d*)`,
		`fica[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"medicare", compileAll(
		`medicare[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"health_insurance", compileAll(
		`health\s+insurance[:\s]+\$?([\d,]+\.?\d*)`,
		`medical[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"dental_insurance", compileAll(
		`dental[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"vision_insurance", compileAll(
		`vision[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"retirement_401k", compileAll(
		`401\(?k\)?[:\s]+\$?([\d,]+\.?\d*)`,
		`retirement[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"hsa", compileAll(
		`hsa[:\s]+\$?([\d,]+\.?\d*)`,
		`health\s+savings[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{"fsa", compileAll(
		`fsa[:\s]+\$?([\d,]+\.?\d*)`,
		`flexible\s+spending[:\s]+\$?([\d,]+\.?\d*)`,
	)},
}

// PaystubExtractor pulls per-pay-period earnings and deductions.
type PaystubExtractor struct{}

func NewPaystubExtractor() *PaystubExtractor {
	return &PaystubExtractor{}
}

// IsPaystub gates recognition: at least three paystub keywords must occur
// before the extractor claims the document.
func (e *PaystubExtractor) IsPaystub(text string) bool {
	return countKeywords(text, paystubKeywords) >= 3
}

// Extract returns every paystub found in text. One file can carry several
// pay periods; each "Pay Date" marker opens a new stub. Empty slice when
// the document is not a paystub.
func (e *PaystubExtractor) Extract(text, filename string) []models.Paystub {
	if text == "" || !e.IsPaystub(text) {
		return nil
	}

	var stubs []models.Paystub
	for _, segment := range splitOnBoundary(text, paystubBoundary) {
		if stub, ok := e.extractOne(segment, filename); ok {
			stubs = append(stubs, stub)
		}
	}
	return stubs
}

func (e *PaystubExtractor) extractOne(raw, filename string) (models.Paystub, bool) {
	text := flatten(raw)
	stub := models.Paystub{
		Deductions: make(map[string]decimal.Decimal),
		SourceFile: filename,
	}

	if d := firstSubmatch(payDatePatterns, text); d != "" {
		if iso, ok := utils.NormalizeDate(d); ok {
			stub.PayDate = iso
		}
	}
	if m := payPeriodPattern.FindStringSubmatch(text); m != nil {
		if iso, ok := utils.NormalizeDate(m[1]); ok {
			stub.PayPeriodStart = iso
		}
		if iso, ok := utils.NormalizeDate(m[2]); ok {
			stub.PayPeriodEnd = iso
		}
	}
	stub.Employer = firstSubmatch(employerPatterns, raw)
	stub.GrossPay = matchDecimal(grossPayPatterns, text)
	stub.NetPay = matchDecimal(netPayPatterns, text)
	stub.YTDGross = matchDecimal(ytdGrossPatterns, text)
	stub.YTDNet = matchDecimal(ytdNetPatterns, text)

	for _, fp := range deductionTables {
		for _, re := range fp.patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if v, ok := utils.ParseAmount(m[1]); ok {
				stub.Deductions[fp.field] = v
			}
			break
		}
	}

	stub.TotalDeductions = matchDecimal(totalDeductionsPatterns, text)
	if !stub.TotalDeductions.Valid && len(stub.Deductions) > 0 {
		sum := decimal.Zero
		for _, v := range stub.Deductions {
			sum = sum.Add(v)
		}
		stub.TotalDeductions = decimal.NewNullDecimal(sum)
	}

	// A stub with no date and no pay amounts is noise, not a paystub.
	if stub.PayDate == "" && !stub.GrossPay.Valid && !stub.NetPay.Valid {
		return models.Paystub{}, false
	}
	return stub, true
}

func matchDecimal(patterns []*regexp.Regexp, text string) decimal.NullDecimal {
	if m := firstSubmatch(patterns, text); m != "" {
		if v, ok := utils.ParseAmount(m); ok {
			return decimal.NewNullDecimal(v)
		}
	}
	return decimal.NullDecimal{}
}

// splitOnBoundary cuts text into segments, each starting at a boundary
// match. Text before the first marker stays attached to the first segment.
func splitOnBoundary(text string, boundary *regexp.Regexp) []string {
	locs := boundary.FindAllStringIndex(text, -1)
	if len(locs) <= 1 {
		return []string{text}
	}
	segments := make([]string, 0, len(locs))
	for i, loc := range locs {
		start := loc[0]
		if i == 0 {
			start = 0
		}
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, text[start:end])
	}
	return segments
}
