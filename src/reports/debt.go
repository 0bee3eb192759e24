package reports

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/store"
)

// monthsCap bounds the amortization loop; a plan that cannot clear the
// debts inside it is reported as infeasible instead of spinning.
const monthsCap = 600

var (
	ErrNoPayment        = errors.New("monthly payment must be positive")
	ErrPaymentTooSmall  = errors.New("monthly payment does not cover the minimum payments")
	ErrPayoffOutOfReach = errors.New("debts are not payable within the planning horizon")
)

// APR percent to monthly rate: apr / 100 / 12.
var monthlyRateDivisor = decimal.NewFromInt(1200)

// Debt is one revolving balance fed into the payoff planner.
type Debt struct {
	BankName       string
	AccountType    string
	Balance        decimal.Decimal
	APR            decimal.NullDecimal
	MinimumPayment decimal.NullDecimal
}

// DebtsFromBalances picks the revolving debts out of the latest balance
// snapshots: credit-card accounts still carrying a positive balance.
func DebtsFromBalances(balances []models.AccountBalance) []Debt {
	var debts []Debt
	for _, b := range balances {
		if b.AccountType != models.AccountCreditCard || !b.Balance.IsPositive() {
			continue
		}
		debts = append(debts, Debt{
			BankName:       b.BankName,
			AccountType:    b.AccountType,
			Balance:        b.Balance,
			APR:            b.APR,
			MinimumPayment: b.MinimumPayment,
		})
	}
	return debts
}

// PayoffEntry is one debt's line in a payoff plan.
type PayoffEntry struct {
	BankName        string
	AccountType     string
	StartingBalance decimal.Decimal
	MonthsToPayoff  int
	TotalInterest   decimal.Decimal
	PayoffDate      string
}

// PayoffPlan is the simulated outcome of one payoff strategy.
type PayoffPlan struct {
	Strategy       string
	TotalDebt      decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalPaid      decimal.Decimal
	MonthsToPayoff int
	PayoffDate     string
	Entries        []PayoffEntry
}

// PayoffComparison holds both strategies over the same debts and budget.
type PayoffComparison struct {
	Snowball       *PayoffPlan
	Avalanche      *PayoffPlan
	Recommendation string
}

// PayoffCalculator simulates debt payoff strategies month by month.
// Minimum payments go to every open debt; whatever budget is left goes to
// the strategy's priority debt.
type PayoffCalculator struct {
	now func() time.Time
}

func NewPayoffCalculator() *PayoffCalculator {
	return &PayoffCalculator{now: time.Now}
}

// Snowball orders the debts smallest balance first.
func (c *PayoffCalculator) Snowball(debts []Debt, monthlyPayment decimal.Decimal) (*PayoffPlan, error) {
	ordered := append([]Debt(nil), debts...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Balance.LessThan(ordered[j].Balance)
	})
	return c.computePlan(ordered, monthlyPayment, "snowball")
}

// Avalanche orders the debts highest APR first; ties go to the smaller
// balance.
func (c *PayoffCalculator) Avalanche(debts []Debt, monthlyPayment decimal.Decimal) (*PayoffPlan, error) {
	ordered := append([]Debt(nil), debts...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ai, aj := aprOf(ordered[i]), aprOf(ordered[j])
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return ordered[i].Balance.LessThan(ordered[j].Balance)
	})
	return c.computePlan(ordered, monthlyPayment, "avalanche")
}

// Compare runs both strategies and recommends one.
func (c *PayoffCalculator) Compare(debts []Debt, monthlyPayment decimal.Decimal) (*PayoffComparison, error) {
	snowball, err := c.Snowball(debts, monthlyPayment)
	if err != nil {
		return nil, err
	}
	avalanche, err := c.Avalanche(debts, monthlyPayment)
	if err != nil {
		return nil, err
	}
	return &PayoffComparison{
		Snowball:       snowball,
		Avalanche:      avalanche,
		Recommendation: recommendStrategy(snowball, avalanche),
	}, nil
}

func aprOf(d Debt) decimal.Decimal {
	if d.APR.Valid {
		return d.APR.Decimal
	}
	return decimal.Zero
}

func minimumOf(d Debt) decimal.Decimal {
	if d.MinimumPayment.Valid {
		return d.MinimumPayment.Decimal
	}
	return decimal.Zero
}

// computePlan runs the month-by-month amortization over the debts in
// priority order. Interest accrues first, then every open debt receives
// its minimum, then the leftover budget hits the highest-priority open
// balance.
func (c *PayoffCalculator) computePlan(ordered []Debt, monthlyPayment decimal.Decimal, strategy string) (*PayoffPlan, error) {
	plan := &PayoffPlan{Strategy: strategy}
	if len(ordered) == 0 {
		return plan, nil
	}
	if !monthlyPayment.IsPositive() {
		return nil, ErrNoPayment
	}

	type account struct {
		debt     Debt
		balance  decimal.Decimal
		rate     decimal.Decimal
		interest decimal.Decimal
		months   int
	}
	accounts := make([]*account, len(ordered))
	for i, d := range ordered {
		accounts[i] = &account{
			debt:    d,
			balance: d.Balance,
			rate:    aprOf(d).Div(monthlyRateDivisor),
		}
		plan.TotalDebt = plan.TotalDebt.Add(d.Balance)
	}

	open := func() int {
		n := 0
		for _, a := range accounts {
			if a.balance.IsPositive() {
				n++
			}
		}
		return n
	}

	month := 0
	for open() > 0 {
		month++
		if month > monthsCap {
			return nil, fmt.Errorf("%w: %d months at %s per month", ErrPayoffOutOfReach, monthsCap, monthlyPayment)
		}

		for _, a := range accounts {
			if !a.balance.IsPositive() || a.rate.IsZero() {
				continue
			}
			interest := a.balance.Mul(a.rate)
			a.balance = a.balance.Add(interest)
			a.interest = a.interest.Add(interest)
			plan.TotalInterest = plan.TotalInterest.Add(interest)
		}

		budget := monthlyPayment
		for _, a := range accounts {
			if !a.balance.IsPositive() {
				continue
			}
			payment := decimal.Min(minimumOf(a.debt), a.balance)
			a.balance = a.balance.Sub(payment)
			budget = budget.Sub(payment)
		}
		if budget.IsNegative() {
			return nil, fmt.Errorf("%w: %s per month", ErrPaymentTooSmall, monthlyPayment)
		}

		for _, a := range accounts {
			if !budget.IsPositive() {
				break
			}
			if !a.balance.IsPositive() {
				continue
			}
			extra := decimal.Min(budget, a.balance)
			a.balance = a.balance.Sub(extra)
			budget = budget.Sub(extra)
		}

		for _, a := range accounts {
			if a.months == 0 && !a.balance.IsPositive() {
				a.months = month
			}
		}
	}

	now := c.now()
	for _, a := range accounts {
		plan.Entries = append(plan.Entries, PayoffEntry{
			BankName:        a.debt.BankName,
			AccountType:     a.debt.AccountType,
			StartingBalance: a.debt.Balance,
			MonthsToPayoff:  a.months,
			TotalInterest:   a.interest,
			PayoffDate:      now.AddDate(0, a.months, 0).Format("2006-01-02"),
		})
		if a.months > plan.MonthsToPayoff {
			plan.MonthsToPayoff = a.months
		}
	}
	plan.TotalPaid = plan.TotalDebt.Add(plan.TotalInterest)
	plan.PayoffDate = now.AddDate(0, plan.MonthsToPayoff, 0).Format("2006-01-02")
	return plan, nil
}

func recommendStrategy(snowball, avalanche *PayoffPlan) string {
	switch {
	case avalanche.MonthsToPayoff < snowball.MonthsToPayoff &&
		avalanche.TotalInterest.LessThan(snowball.TotalInterest):
		return "Avalanche saves both time and interest"
	case snowball.MonthsToPayoff < avalanche.MonthsToPayoff:
		return "Snowball pays off faster"
	case avalanche.TotalInterest.LessThan(snowball.TotalInterest):
		return "Avalanche saves interest"
	default:
		return "Both strategies perform the same; pick either"
	}
}

// WriteDebtReport renders the payoff comparison over the latest credit-card
// balances.
func WriteDebtReport(w io.Writer, s *store.Store, monthlyPayment decimal.Decimal) error {
	balances, err := s.LatestBalances()
	if err != nil {
		return err
	}
	debts := DebtsFromBalances(balances)

	rule := strings.Repeat("=", reportRule)
	thin := strings.Repeat("-", reportRule)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "DEBT PAYOFF PLAN")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	if len(debts) == 0 {
		fmt.Fprintln(w, "No revolving debt found in the latest balances.")
		return nil
	}

	comparison, err := NewPayoffCalculator().Compare(debts, monthlyPayment)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Total Debt: %s\n", comparison.Snowball.TotalDebt.StringFixed(2))
	fmt.Fprintf(w, "Monthly Payment: %s\n", monthlyPayment.StringFixed(2))
	fmt.Fprintln(w)

	writePlan(w, thin, "SNOWBALL (smallest balance first)", comparison.Snowball)
	writePlan(w, thin, "AVALANCHE (highest APR first)", comparison.Avalanche)

	fmt.Fprintln(w, "RECOMMENDATION")
	fmt.Fprintln(w, thin)
	fmt.Fprintln(w, comparison.Recommendation)
	return nil
}

func writePlan(w io.Writer, thin, title string, plan *PayoffPlan) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, thin)
	for _, e := range plan.Entries {
		fmt.Fprintf(w, "%-20s %-14s %12s  paid off in %d month(s)  interest %s\n",
			e.BankName, e.AccountType, e.StartingBalance.StringFixed(2),
			e.MonthsToPayoff, e.TotalInterest.StringFixed(2))
	}
	fmt.Fprintf(w, "Debt-free in %d month(s) (%s), total interest %s, total paid %s\n",
		plan.MonthsToPayoff, plan.PayoffDate,
		plan.TotalInterest.StringFixed(2), plan.TotalPaid.StringFixed(2))
	fmt.Fprintln(w)
}
