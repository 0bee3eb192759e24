package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/finsift/src/models"
)

func TestClassifyFilenameWinsOverContent(t *testing.T) {
	// The filename names one bank, the content mentions another; the
	// filename rule fires first.
	cls := Classify("chase_statement.txt", "Special offer from Discover inside!")
	assert.Equal(t, "chase", cls.BankName)
}

func TestClassifyFromContent(t *testing.T) {
	cls := Classify("stmt_2024_01.txt", "Wells Fargo Checking Account\nEnding Balance: $2,500.00")
	assert.Equal(t, "wells_fargo", cls.BankName)
	assert.Equal(t, models.AccountChecking, cls.AccountType)
}

func TestClassifyAccountTypes(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		text     string
		want     string
	}{
		{"credit card keyword", "bill.txt", "Credit Card Statement", models.AccountCreditCard},
		{"credit limit implies card", "bill.txt", "Credit Limit: $5,000", models.AccountCreditCard},
		{"savings", "acct.txt", "Savings Account summary", models.AccountSavings},
		{"roth ira beats generic ira", "acct.txt", "Roth IRA year-end summary", models.AccountRothIRA},
		{"rollover normalizes to traditional", "acct.txt", "Rollover IRA statement", models.AccountTraditionalIRA},
		{"brokerage", "acct.txt", "Brokerage account positions", models.AccountInvestment},
		{"from filename", "roth_ira_fidelity_2024.txt", "quarterly summary", models.AccountRothIRA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := Classify(tt.filename, tt.text)
			assert.Equal(t, tt.want, cls.AccountType)
		})
	}
}

func TestClassifyUnknownFallback(t *testing.T) {
	cls := Classify("mystery.txt", "nothing recognizable in here")
	assert.Equal(t, models.UnknownValue, cls.BankName)
	assert.Equal(t, models.UnknownValue, cls.AccountType)
}
