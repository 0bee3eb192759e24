package extractors

import (
	"github.com/shopspring/decimal"
	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/utils"
)

var (
	creditCardBalancePatterns = compileAll(
		`new\s+balance[:\s]+\$?([\d,]+\.?\d*)`,
		`current\s+balance[:\s]+\$?([\d,]+\.?\d*)`,
		`account\s+balance[:\s]+\$?([\d,]+\.?\d*)`,
		`total\s+balance[:\s]+\$?([\d,]+\.?\d*)`,
		`outstanding\s+balance[:\s]+\$?([\d,]+\.?\d*)`,
	)
	availableCreditPatterns = compileAll(
		`available\s+credit[:\s]+\$?([\d,]+\.?\d*)`,
		`credit\s+available[:\s]+\$?([\d,]+\.?\d*)`,
		`available\s+to\s+spend[:\s]+\$?([\d,]+\.?\d*)`,
	)
	creditLimitPatterns = compileAll(
		`credit\s+limit[:\s]+\$?([\d,]+\.?\d*)`,
		`credit\s+line[:\s]+\$?([\d,]+\.?\d*)`,
		`total\s+credit\s+limit[:\s]+\$?([\d,]+\.?\d*)`,
	)
	accountBalancePatterns = compileAll(
		`ending\s+balance[:\s]+\$?([\d,]+\.?\d*)`,
		`account\s+balance[:\s]+\$?([\d,]+\.?\d*)`,
		`current\s+balance[:\s]+\$?([\d,]+\.?\d*)`,
		`available\s+balance[:\s]+\$?([\d,]+\.?\d*)`,
		`balance[:\s]+\$?([\d,]+\.?\d*)`,
	)
	statementDatePatterns = compileAll(
		`statement\s+date[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		`as\s+of[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		`period\s+ending[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
	)
	minimumPaymentPatterns = compileAll(
		`minimum\s+payment[:\s]+\$?([\d,]+\.?\d*)`,
		`min\s+payment[:\s]+\$?([\d,]+\.?\d*)`,
	)
	paymentDueDatePatterns = compileAll(
		`payment\s+due\s+date[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		`due\s+date[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
	)
	aprPatterns = compileAll(
		`apr[:\s]+([\d,]+\.?\d*)%?`,
		`annual\s+percentage\s+rate[:\s]+([\d,]+\.?\d*)%?`,
		`interest\s+rate[:\s]+([\d,]+\.?\d*)%?`,
	)
)

// BalanceExtractor pulls the point-in-time balance snapshot from a
// statement. Credit-card statements additionally yield limit, minimum
// payment, due date and APR.
type BalanceExtractor struct{}

func NewBalanceExtractor() *BalanceExtractor {
	return &BalanceExtractor{}
}

// Extract returns the balance snapshot found in text, or nil when no
// balance figure is present. The account type decides which pattern set
// applies; a credit card with no explicit balance falls back to
// limit minus available credit.
func (e *BalanceExtractor) Extract(text, filename string, cls models.Classification) *models.AccountBalance {
	if text == "" {
		return nil
	}
	text = flatten(text)

	bal := &models.AccountBalance{
		BankName:    cls.BankName,
		AccountType: cls.AccountType,
		SourceFile:  filename,
	}

	if d := firstSubmatch(statementDatePatterns, text); d != "" {
		if iso, ok := utils.NormalizeDate(d); ok {
			bal.StatementDate = iso
		}
	}

	var balance decimal.NullDecimal
	if cls.AccountType == models.AccountCreditCard {
		balance = matchDecimal(creditCardBalancePatterns, text)
		bal.AvailableCredit = matchDecimal(availableCreditPatterns, text)
		bal.CreditLimit = matchDecimal(creditLimitPatterns, text)
		if !balance.Valid && bal.AvailableCredit.Valid && bal.CreditLimit.Valid {
			balance = decimal.NewNullDecimal(
				bal.CreditLimit.Decimal.Sub(bal.AvailableCredit.Decimal))
		}
	} else {
		balance = matchDecimal(accountBalancePatterns, text)
	}
	if !balance.Valid {
		return nil
	}
	bal.Balance = balance.Decimal

	bal.MinimumPayment = matchDecimal(minimumPaymentPatterns, text)
	if d := firstSubmatch(paymentDueDatePatterns, text); d != "" {
		if iso, ok := utils.NormalizeDate(d); ok {
			bal.PaymentDueDate = iso
		}
	}
	bal.APR = matchDecimal(aprPatterns, text)
	return bal
}
