package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/finsift/src/models"
)

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	}
}

func TestDebtsFromBalancesKeepsRevolvingDebtOnly(t *testing.T) {
	balances := []models.AccountBalance{
		{BankName: "amex", AccountType: models.AccountCreditCard, Balance: decimal.RequireFromString("1000.00")},
		{BankName: "chase", AccountType: models.AccountChecking, Balance: decimal.RequireFromString("2500.00")},
		{BankName: "discover", AccountType: models.AccountCreditCard, Balance: decimal.Zero},
	}

	debts := DebtsFromBalances(balances)
	require.Len(t, debts, 1)
	assert.Equal(t, "amex", debts[0].BankName)
}

func TestPayoffSingleDebtNoInterest(t *testing.T) {
	calc := &PayoffCalculator{now: fixedClock()}
	debts := []Debt{
		{BankName: "amex", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("300.00"), MinimumPayment: nullDec("25.00")},
	}

	plan, err := calc.Snowball(debts, decimal.RequireFromString("100.00"))
	require.NoError(t, err)

	assert.Equal(t, 3, plan.MonthsToPayoff)
	assert.Equal(t, "0.00", plan.TotalInterest.StringFixed(2))
	assert.Equal(t, "300.00", plan.TotalPaid.StringFixed(2))
	assert.Equal(t, "2024-04-15", plan.PayoffDate)
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, 3, plan.Entries[0].MonthsToPayoff)
}

func TestPayoffAccruesMonthlyInterest(t *testing.T) {
	calc := &PayoffCalculator{now: fixedClock()}
	// 12% APR is a 1% monthly rate: one month of interest on 1200 is 12.
	debts := []Debt{
		{BankName: "chase", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("1200.00"), APR: nullDec("12.00")},
	}

	plan, err := calc.Snowball(debts, decimal.RequireFromString("1212.00"))
	require.NoError(t, err)

	assert.Equal(t, 1, plan.MonthsToPayoff)
	assert.Equal(t, "12.00", plan.TotalInterest.StringFixed(2))
	assert.Equal(t, "1212.00", plan.TotalPaid.StringFixed(2))
}

func TestPayoffFreedBudgetRollsToNextDebt(t *testing.T) {
	calc := &PayoffCalculator{now: fixedClock()}
	debts := []Debt{
		{BankName: "discover", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("500.00"), MinimumPayment: nullDec("20.00")},
		{BankName: "amex", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("100.00"), MinimumPayment: nullDec("10.00")},
	}

	plan, err := calc.Snowball(debts, decimal.RequireFromString("200.00"))
	require.NoError(t, err)

	// Smallest balance first: amex clears in month one and its budget share
	// moves to discover the same month.
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, "amex", plan.Entries[0].BankName)
	assert.Equal(t, 1, plan.Entries[0].MonthsToPayoff)
	assert.Equal(t, "discover", plan.Entries[1].BankName)
	assert.Equal(t, 3, plan.Entries[1].MonthsToPayoff)
	assert.Equal(t, 3, plan.MonthsToPayoff)
	assert.Equal(t, "600.00", plan.TotalDebt.StringFixed(2))
	assert.Equal(t, "600.00", plan.TotalPaid.StringFixed(2))
}

func TestStrategiesOrderDebtsDifferently(t *testing.T) {
	calc := &PayoffCalculator{now: fixedClock()}
	debts := []Debt{
		{BankName: "amex", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("1000.00"), APR: nullDec("25.00"), MinimumPayment: nullDec("25.00")},
		{BankName: "chase", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("500.00"), APR: nullDec("10.00"), MinimumPayment: nullDec("15.00")},
	}
	payment := decimal.RequireFromString("200.00")

	snowball, err := calc.Snowball(debts, payment)
	require.NoError(t, err)
	avalanche, err := calc.Avalanche(debts, payment)
	require.NoError(t, err)

	assert.Equal(t, "chase", snowball.Entries[0].BankName)
	assert.Equal(t, "amex", avalanche.Entries[0].BankName)
	assert.True(t, avalanche.TotalInterest.LessThan(snowball.TotalInterest),
		"paying the high-APR card first must cost less interest")
}

func TestCompareRecommendsAvalancheWhenCheaper(t *testing.T) {
	calc := &PayoffCalculator{now: fixedClock()}
	debts := []Debt{
		{BankName: "amex", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("1000.00"), APR: nullDec("25.00"), MinimumPayment: nullDec("25.00")},
		{BankName: "chase", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("500.00"), APR: nullDec("10.00"), MinimumPayment: nullDec("15.00")},
	}

	comparison, err := calc.Compare(debts, decimal.RequireFromString("200.00"))
	require.NoError(t, err)
	assert.Contains(t, comparison.Recommendation, "Avalanche saves")
}

func TestPayoffRejectsBadBudgets(t *testing.T) {
	calc := &PayoffCalculator{now: fixedClock()}
	debts := []Debt{
		{BankName: "amex", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("1000.00"), MinimumPayment: nullDec("100.00")},
		{BankName: "chase", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("1000.00"), MinimumPayment: nullDec("100.00")},
	}

	_, err := calc.Snowball(debts, decimal.Zero)
	assert.ErrorIs(t, err, ErrNoPayment)

	_, err = calc.Snowball(debts, decimal.RequireFromString("150.00"))
	assert.ErrorIs(t, err, ErrPaymentTooSmall)
}

func TestPayoffDetectsUnpayableDebt(t *testing.T) {
	calc := &PayoffCalculator{now: fixedClock()}
	// 120% APR accrues 100 a month while the full budget covers only 50.
	debts := []Debt{
		{BankName: "amex", AccountType: models.AccountCreditCard,
			Balance: decimal.RequireFromString("1000.00"), APR: nullDec("120.00"), MinimumPayment: nullDec("50.00")},
	}

	_, err := calc.Snowball(debts, decimal.RequireFromString("50.00"))
	assert.ErrorIs(t, err, ErrPayoffOutOfReach)
}

func TestPayoffEmptyDebtsYieldsZeroPlan(t *testing.T) {
	calc := &PayoffCalculator{now: fixedClock()}
	plan, err := calc.Snowball(nil, decimal.RequireFromString("200.00"))
	require.NoError(t, err)
	assert.Equal(t, 0, plan.MonthsToPayoff)
	assert.True(t, plan.TotalDebt.IsZero())
	assert.Empty(t, plan.Entries)
}

func TestWriteDebtReport(t *testing.T) {
	s := newSeededStore(t)
	cls := models.Classification{BankName: "amex", AccountType: models.AccountCreditCard}
	_, err := s.PersistDocument(&models.RoutedDocument{
		Kind:           models.KindStatement,
		Classification: cls,
		SourceFile:     "amex.txt",
		Balance: &models.AccountBalance{
			StatementDate:  "2024-01-31",
			Balance:        decimal.RequireFromString("1000.00"),
			APR:            nullDec("25.00"),
			MinimumPayment: nullDec("25.00"),
			BankName:       cls.BankName, AccountType: cls.AccountType, SourceFile: "amex.txt",
		},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDebtReport(&buf, s, decimal.RequireFromString("200.00")))

	out := buf.String()
	assert.Contains(t, out, "DEBT PAYOFF PLAN")
	assert.Contains(t, out, "Total Debt: 1000.00")
	assert.Contains(t, out, "Monthly Payment: 200.00")
	assert.Contains(t, out, "SNOWBALL (smallest balance first)")
	assert.Contains(t, out, "AVALANCHE (highest APR first)")
	assert.Contains(t, out, "RECOMMENDATION")
	assert.Contains(t, out, "amex")
	assert.NotContains(t, out, "chase", "checking balances are not debts")
}

func TestWriteDebtReportWithoutDebts(t *testing.T) {
	s := newSeededStore(t)
	var buf bytes.Buffer
	require.NoError(t, WriteDebtReport(&buf, s, decimal.RequireFromString("200.00")))
	assert.Contains(t, buf.String(), "No revolving debt found")
}
