package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/finsift/src/models"
)

var creditCardCls = models.Classification{BankName: "chase", AccountType: models.AccountCreditCard}

func TestBalanceExtractCreditCard(t *testing.T) {
	text := `Chase Credit Card Statement
Statement Date: 01/20/2024
New Balance: $1,250.00
Credit Limit: $5,000.00
Available Credit: $3,750.00
Minimum Payment: $35.00
Payment Due Date: 02/15/2024
APR: 24.99%`

	bal := NewBalanceExtractor().Extract(text, "cc_jan.txt", creditCardCls)
	require.NotNil(t, bal)

	assert.Equal(t, "2024-01-20", bal.StatementDate)
	assert.Equal(t, "1250.00", bal.Balance.StringFixed(2))
	assert.Equal(t, "5000.00", bal.CreditLimit.Decimal.StringFixed(2))
	assert.Equal(t, "3750.00", bal.AvailableCredit.Decimal.StringFixed(2))
	assert.Equal(t, "35.00", bal.MinimumPayment.Decimal.StringFixed(2))
	assert.Equal(t, "2024-02-15", bal.PaymentDueDate)
	assert.Equal(t, "24.99", bal.APR.Decimal.StringFixed(2))
	assert.Equal(t, "chase", bal.BankName)
}

func TestBalanceCreditCardFallsBackToLimitMinusAvailable(t *testing.T) {
	text := "Credit Limit: $5,000.00\nAvailable Credit: $3,750.00"
	bal := NewBalanceExtractor().Extract(text, "cc.txt", creditCardCls)
	require.NotNil(t, bal)
	assert.Equal(t, "1250.00", bal.Balance.StringFixed(2))
}

func TestBalanceExtractChecking(t *testing.T) {
	text := "Wells Fargo Checking\nStatement Date: 01/31/2024\nEnding Balance: $2,500.00"
	cls := models.Classification{BankName: "wells_fargo", AccountType: models.AccountChecking}

	bal := NewBalanceExtractor().Extract(text, "checking_jan.txt", cls)
	require.NotNil(t, bal)
	assert.Equal(t, "2024-01-31", bal.StatementDate)
	assert.Equal(t, "2500.00", bal.Balance.StringFixed(2))
	assert.False(t, bal.CreditLimit.Valid)
}

func TestBalanceExtractNoFigure(t *testing.T) {
	assert.Nil(t, NewBalanceExtractor().Extract("Monthly newsletter, no figures here", "news.txt", checkingCls))
	assert.Nil(t, NewBalanceExtractor().Extract("", "empty.txt", checkingCls))
}
