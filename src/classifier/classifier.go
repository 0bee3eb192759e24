package classifier

import (
	"regexp"
	"strings"

	"github.com/username/finsift/src/models"
)

type rule struct {
	re    *regexp.Regexp
	value string
}

// Bank rules are ordered; the first match wins. Filename is tested before
// document content so "chase_statement.txt" beats a Chase ad inside a
// competitor's statement.
var bankRules = []rule{
	{regexp.MustCompile(`(?i)bank\s*of\s*america|bofa`), "bank_of_america"},
	{regexp.MustCompile(`(?i)wells\s*fargo`), "wells_fargo"},
	{regexp.MustCompile(`(?i)capital\s*one`), "capital_one"},
	{regexp.MustCompile(`(?i)american\s*express|amex`), "american_express"},
	{regexp.MustCompile(`(?i)charles\s*schwab|schwab`), "charles_schwab"},
	{regexp.MustCompile(`(?i)jpmorgan|chase`), "chase"},
	{regexp.MustCompile(`(?i)discover`), "discover"},
	{regexp.MustCompile(`(?i)citibank|citi\b`), "citi"},
	{regexp.MustCompile(`(?i)fidelity`), "fidelity"},
	{regexp.MustCompile(`(?i)vanguard`), "vanguard"},
	{regexp.MustCompile(`(?i)e\*?trade`), "etrade"},
	{regexp.MustCompile(`(?i)robinhood`), "robinhood"},
	{regexp.MustCompile(`(?i)us\s*bank`), "us_bank"},
	{regexp.MustCompile(`(?i)ally\s*(bank|financial)`), "ally"},
	{regexp.MustCompile(`(?i)navy\s*federal`), "navy_federal"},
}

// Account-type rules are ordered so the more specific IRA variants win
// before the generic investment fallback. "Rollover IRA" normalizes to
// traditional_ira.
var accountRules = []rule{
	{regexp.MustCompile(`(?i)roth\s*ira`), models.AccountRothIRA},
	{regexp.MustCompile(`(?i)(traditional|rollover)\s*ira`), models.AccountTraditionalIRA},
	{regexp.MustCompile(`(?i)\bira\b`), models.AccountTraditionalIRA},
	{regexp.MustCompile(`(?i)401\s*\(?k\)?`), models.AccountInvestment},
	{regexp.MustCompile(`(?i)brokerage`), models.AccountInvestment},
	{regexp.MustCompile(`(?i)credit\s*card`), models.AccountCreditCard},
	{regexp.MustCompile(`(?i)credit\s*limit`), models.AccountCreditCard},
	{regexp.MustCompile(`(?i)minimum\s*payment\s*due`), models.AccountCreditCard},
	{regexp.MustCompile(`(?i)savings\s*account|\bsavings\b`), models.AccountSavings},
	{regexp.MustCompile(`(?i)checking\s*account|\bchecking\b`), models.AccountChecking},
	{regexp.MustCompile(`(?i)portfolio\s*(value|summary)`), models.AccountInvestment},
}

func matchOrdered(rules []rule, filename, text string) (string, bool) {
	for _, r := range rules {
		if r.re.MatchString(filename) {
			return r.value, true
		}
	}
	for _, r := range rules {
		if r.re.MatchString(text) {
			return r.value, true
		}
	}
	return "", false
}

// Filename separators become spaces so "roth_ira_fidelity.txt" matches
// the same patterns the document text does.
var separatorReplacer = strings.NewReplacer("_", " ", "-", " ", ".", " ")

// NormalizeFilename lowercases a filename and turns its separators into
// spaces for pattern matching.
func NormalizeFilename(filename string) string {
	return separatorReplacer.Replace(strings.ToLower(filename))
}

// Classify derives the bank and account type of a document from its
// filename and extracted text. Unmatched dimensions fall back to
// "unknown"; classification never fails.
func Classify(filename, text string) models.Classification {
	cls := models.Classification{
		BankName:    models.UnknownValue,
		AccountType: models.UnknownValue,
	}
	name := NormalizeFilename(filename)
	if bank, ok := matchOrdered(bankRules, name, text); ok {
		cls.BankName = bank
	}
	if acct, ok := matchOrdered(accountRules, name, text); ok {
		cls.AccountType = acct
	}
	return cls
}
