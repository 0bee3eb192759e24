package extractors

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/finsift/src/classifier"
	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/utils"
)

var investmentKeywords = []string{
	"portfolio", "securities", "stocks", "shares", "holdings",
	"dividend", "capital gains", "cost basis", "market value",
	"brokerage", "trading", "equity", "mutual fund", "etf",
}

// Account-type rules are ordered so roth wins before the traditional
// fallback ("rollover ira" counts as traditional).
var investmentAccountRules = []struct {
	accountType string
	patterns    []*regexp.Regexp
}{
	{models.AccountRothIRA, compileAll(
		`roth\s+ira`,
		`roth\s+individual\s+retirement`,
	)},
	{models.AccountTraditionalIRA, compileAll(
		`traditional\s+ira`,
		`rollover\s+ira`,
		`ira\s+account`,
		`individual\s+retirement\s+account`,
	)},
	{models.AccountInvestment, compileAll(
		`investment\s+account`,
		`brokerage\s+account`,
		`securities\s+account`,
		`trading\s+account`,
	)},
}

var (
	portfolioValuePatterns = compileAll(
		`portfolio\s+value[:\s]+\$?([\d,]+\.?\d*)`,
		`account\s+value[:\s]+\$?([\d,]+\.?\d*)`,
		`total\s+value[:\s]+\$?([\d,]+\.?\d*)`,
		`total\s+assets[:\s]+\$?([\d,]+\.?\d*)`,
	)

	// NAME (TICKER) QTY $VALUE, then bare TICKER QTY $VALUE.
	holdingNamedPattern = regexp.MustCompile(
		`([A-Z][A-Za-z\s&,\.]+?)\s+\(([A-Z]{1,5})\)\s+([\d,]+\.?\d*)\s+\$?([\d,]+\.?\d*)`)
	holdingBarePattern = regexp.MustCompile(
		`\b([A-Z]{1,5})\s+([\d]+\.?\d*)\s+\$([\d,]+\.?\d*)`)

	investBuyPattern = regexp.MustCompile(
		`(?i)(?:buy|bought|purchase)\s+([\d,]+\.?\d*)\s+(?:shares\s+)?([A-Z]{1,5})\s+@\s+\$?([\d,]+\.?\d*)`)
	investSellPattern = regexp.MustCompile(
		`(?i)(?:sell|sold)\s+([\d,]+\.?\d*)\s+(?:shares\s+)?([A-Z]{1,5})\s+@\s+\$?([\d,]+\.?\d*)`)
	investDividendPattern = regexp.MustCompile(
		`(?i)dividend\s+(?:([A-Z]{1,5})\s+)?\$?([\d,]+\.?\d*)`)
	investContributionPattern = regexp.MustCompile(
		`(?i)(?:ira\s+)?contribut(?:ion|ed)\s+\$?([\d,]+\.?\d*)`)
	investWithdrawalPattern = regexp.MustCompile(
		`(?i)(?:withdrawal|withdrew|distribution)\s+\$?([\d,]+\.?\d*)`)

	lineDatePattern = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
)

// InvestmentExtractor pulls portfolio value, holdings and investment
// transactions from brokerage and retirement statements.
type InvestmentExtractor struct{}

func NewInvestmentExtractor() *InvestmentExtractor {
	return &InvestmentExtractor{}
}

// DetectAccountType identifies the investment account type, filename
// first. Empty string when no rule matches.
func (e *InvestmentExtractor) DetectAccountType(text, filename string) string {
	name := classifier.NormalizeFilename(filename)
	lower := strings.ToLower(text)
	for _, rule := range investmentAccountRules {
		for _, re := range rule.patterns {
			if re.MatchString(name) {
				return rule.accountType
			}
		}
	}
	for _, rule := range investmentAccountRules {
		for _, re := range rule.patterns {
			if re.MatchString(lower) {
				return rule.accountType
			}
		}
	}
	return ""
}

// IsInvestmentDocument reports whether the document belongs to an
// investment account: an account-type rule match, or at least three
// investment keywords.
func (e *InvestmentExtractor) IsInvestmentDocument(text, filename string) bool {
	if e.DetectAccountType(text, filename) != "" {
		return true
	}
	return countKeywords(text, investmentKeywords) >= 3
}

// Extract returns the investment account found in text, or nil when the
// document is not an investment statement or yields no value, holdings or
// transactions.
func (e *InvestmentExtractor) Extract(text, filename string, cls models.Classification) *models.InvestmentAccount {
	if text == "" || !e.IsInvestmentDocument(text, filename) {
		return nil
	}

	accountType := e.DetectAccountType(text, filename)
	if accountType == "" {
		accountType = models.AccountInvestment
	}

	acct := &models.InvestmentAccount{
		BankName:    cls.BankName,
		AccountType: accountType,
		SourceFile:  filename,
	}
	flat := flatten(text)
	if d := firstSubmatch(statementDatePatterns, flat); d != "" {
		if iso, ok := utils.NormalizeDate(d); ok {
			acct.StatementDate = iso
		}
	}
	acct.PortfolioValue = matchDecimal(portfolioValuePatterns, flat)
	acct.Holdings = e.extractHoldings(text)
	acct.Transactions = e.extractTransactions(text, acct.StatementDate)

	if !acct.PortfolioValue.Valid && len(acct.Holdings) == 0 && len(acct.Transactions) == 0 {
		return nil
	}
	return acct
}

func (e *InvestmentExtractor) extractHoldings(text string) []models.Holding {
	var holdings []models.Holding
	seen := make(map[string]bool)

	add := func(ticker, name, qty, value string) {
		q, okQ := utils.ParseAmount(qty)
		v, okV := utils.ParseAmount(value)
		if !okQ || !okV || seen[ticker] {
			return
		}
		seen[ticker] = true
		holdings = append(holdings, models.Holding{
			Ticker:   ticker,
			Name:     name,
			Quantity: q,
			Value:    v,
		})
	}

	for _, m := range holdingNamedPattern.FindAllStringSubmatch(text, -1) {
		add(m[2], strings.TrimSpace(m[1]), m[3], m[4])
	}
	for _, m := range holdingBarePattern.FindAllStringSubmatch(text, -1) {
		add(m[1], m[1], m[2], m[3])
	}
	return holdings
}

// extractTransactions walks the statement line by line, carrying the most
// recent date forward for lines that omit one.
func (e *InvestmentExtractor) extractTransactions(text, statementDate string) []models.InvestmentTransaction {
	var out []models.InvestmentTransaction
	currentDate := statementDate

	for _, line := range strings.Split(text, "\n") {
		if m := lineDatePattern.FindString(line); m != "" {
			if iso, ok := utils.NormalizeDate(m); ok {
				currentDate = iso
			}
		}

		if m := investBuyPattern.FindStringSubmatch(line); m != nil {
			out = appendTrade(out, currentDate, models.InvestBuy, m[2], m[1], m[3])
			continue
		}
		if m := investSellPattern.FindStringSubmatch(line); m != nil {
			out = appendTrade(out, currentDate, models.InvestSell, m[2], m[1], m[3])
			continue
		}
		if m := investDividendPattern.FindStringSubmatch(line); m != nil {
			if amt, ok := utils.ParseAmount(m[2]); ok {
				out = append(out, models.InvestmentTransaction{
					Date:   currentDate,
					Type:   models.InvestDividend,
					Ticker: strings.ToUpper(m[1]),
					Amount: decimal.NewNullDecimal(amt),
				})
			}
			continue
		}
		if m := investContributionPattern.FindStringSubmatch(line); m != nil {
			if amt, ok := utils.ParseAmount(m[1]); ok {
				out = append(out, models.InvestmentTransaction{
					Date:   currentDate,
					Type:   models.InvestContribution,
					Amount: decimal.NewNullDecimal(amt),
				})
			}
			continue
		}
		if m := investWithdrawalPattern.FindStringSubmatch(line); m != nil {
			if amt, ok := utils.ParseAmount(m[1]); ok {
				out = append(out, models.InvestmentTransaction{
					Date:   currentDate,
					Type:   models.InvestWithdrawal,
					Amount: decimal.NewNullDecimal(amt),
				})
			}
		}
	}
	return out
}

func appendTrade(out []models.InvestmentTransaction, date, kind, ticker, qty, price string) []models.InvestmentTransaction {
	q, okQ := utils.ParseAmount(qty)
	p, okP := utils.ParseAmount(price)
	if !okQ || !okP {
		return out
	}
	return append(out, models.InvestmentTransaction{
		Date:     date,
		Type:     kind,
		Ticker:   strings.ToUpper(ticker),
		Quantity: decimal.NewNullDecimal(q),
		Price:    decimal.NewNullDecimal(p),
		Amount:   decimal.NewNullDecimal(q.Mul(p)),
	})
}
