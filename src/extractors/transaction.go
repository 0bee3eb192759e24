package extractors

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/utils"
)

var (
	txnDatePattern   = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	txnMonthDay      = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}\b`)
	txnAmountPattern = regexp.MustCompile(`\(?-?\$[\d,]+\.\d{2}\)?|\(?-?[\d,]+\.\d{2}\)?`)

	// Summary rows belong to the balance extractor; treating them as money
	// movements would double-count the statement.
	summaryLinePattern = regexp.MustCompile(
		`(?i)^(?:new|current|ending|beginning|previous|total|account|available|outstanding)\s+balance\b|` +
			`^credit\s+(?:limit|line)\b|^available\s+credit\b|^minimum\s+payment\b|^payment\s+due\b|^statement\s+date\b`)
)

// Column aliases for pre-parsed tabular statements. The first alias
// present in a row wins.
var (
	dateColumns   = []string{"date", "transaction_date", "post_date", "posted_date"}
	amountColumns = []string{"amount", "transaction_amount", "debit", "credit"}
	descColumns   = []string{"description", "memo", "details", "transaction_description"}
)

// TransactionExtractor pulls ordinary dated money movements from statement
// text and from pre-parsed tabular rows. Merchant extraction and keyword
// categorization are applied inline so every transaction leaves here fully
// annotated.
type TransactionExtractor struct{}

func NewTransactionExtractor() *TransactionExtractor {
	return &TransactionExtractor{}
}

// ExtractText walks statement text line by line. A line's date updates the
// running date; month/day fragments like "03/15" borrow the running date's
// year. Each line with an amount becomes one transaction. Redaction markers
// are skipped wholesale.
func (e *TransactionExtractor) ExtractText(text, filename string, cls models.Classification) []models.Transaction {
	var out []models.Transaction
	currentDate := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") || strings.Contains(line, "REDACTED") {
			continue
		}
		if summaryLinePattern.MatchString(line) {
			continue
		}

		if m := txnDatePattern.FindString(line); m != "" {
			if iso, ok := utils.NormalizeDate(m); ok {
				currentDate = iso
			}
		} else if currentDate != "" {
			if m := txnMonthDay.FindString(line); m != "" {
				year, _ := strconv.Atoi(currentDate[:4])
				if iso, ok := utils.ResolveDayMonth(m, year); ok {
					currentDate = iso
				}
			}
		}
		if currentDate == "" {
			continue
		}

		m := txnAmountPattern.FindString(txnDatePattern.ReplaceAllString(line, ""))
		if m == "" {
			continue
		}
		amount, ok := utils.ParseAmount(m)
		if !ok || amount.IsZero() {
			continue
		}

		desc := cleanDescription(line)
		out = append(out, e.annotate(models.Transaction{
			Date:        currentDate,
			Amount:      amount,
			Description: desc,
		}, filename, cls))
	}
	return out
}

// ExtractRows converts pre-parsed tabular rows (lowercased column names)
// into transactions. Rows missing both a date and an amount are dropped;
// everything else is kept best-effort.
func (e *TransactionExtractor) ExtractRows(rows []map[string]string, filename string, cls models.Classification) []models.Transaction {
	var out []models.Transaction
	for _, row := range rows {
		var txn models.Transaction

		for _, col := range dateColumns {
			if v := strings.TrimSpace(row[col]); v != "" {
				if iso, ok := utils.NormalizeDate(v); ok {
					txn.Date = iso
				}
				break
			}
		}
		hasAmount := false
		for _, col := range amountColumns {
			if v := strings.TrimSpace(row[col]); v != "" {
				if amt, ok := utils.ParseAmount(v); ok {
					txn.Amount = amt
					hasAmount = true
				}
				break
			}
		}
		for _, col := range descColumns {
			if v := strings.TrimSpace(row[col]); v != "" {
				txn.Description = v
				break
			}
		}

		if txn.Date == "" && !hasAmount {
			continue
		}
		out = append(out, e.annotate(txn, filename, cls))
	}
	return out
}

func (e *TransactionExtractor) annotate(txn models.Transaction, filename string, cls models.Classification) models.Transaction {
	txn.Merchant = ExtractMerchant(txn.Description)
	txn.Category = Categorize(txn.Description)
	txn.BankName = cls.BankName
	txn.AccountType = cls.AccountType
	txn.SourceFile = filename
	return txn
}

// cleanDescription keeps the line minus its date and amount noise, capped
// to a sane length for storage.
func cleanDescription(line string) string {
	desc := txnDatePattern.ReplaceAllString(line, "")
	desc = txnMonthDay.ReplaceAllString(desc, "")
	desc = txnAmountPattern.ReplaceAllString(desc, "")
	desc = strings.TrimSpace(merchantSpacePattern.ReplaceAllString(desc, " "))
	if len(desc) > 200 {
		desc = desc[:200]
	}
	return desc
}
