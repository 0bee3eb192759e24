// Package enrich holds post-commit enrichment passes. Enrichment runs in
// its own failure boundary: a detector error is logged by the caller and
// never touches already-committed primary records.
package enrich

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/finsift/src/extractors"
	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/store"
)

// Detector is a pluggable enrichment pass over the committed store.
// It returns the number of records it touched.
type Detector interface {
	Apply(s *store.Store) (int, error)
}

// RecurringDetector flags recurring bills: at least minOccurrences
// transactions with the same normalized merchant and near-equal amount in
// the same account, spaced at a weekly or monthly cadence.
type RecurringDetector struct {
	minOccurrences  int
	amountTolerance decimal.Decimal
}

func NewRecurringDetector() *RecurringDetector {
	return &RecurringDetector{
		minOccurrences:  3,
		amountTolerance: decimal.NewFromFloat(0.05), // 5% spread allowed
	}
}

type seriesKey struct {
	merchant    string
	bankName    string
	accountType string
}

// Apply scans all committed transactions and flags recurring series.
func (d *RecurringDetector) Apply(s *store.Store) (int, error) {
	txns, err := s.QueryTransactions(store.TransactionFilter{})
	if err != nil {
		return 0, fmt.Errorf("loading transactions for recurring detection: %w", err)
	}

	groups := make(map[seriesKey][]models.Transaction)
	for _, t := range txns {
		identity := t.Merchant
		if identity == "" {
			identity = t.Description
		}
		key := seriesKey{
			merchant:    extractors.NormalizeMerchant(identity),
			bankName:    t.BankName,
			accountType: t.AccountType,
		}
		if key.merchant == "" {
			continue
		}
		groups[key] = append(groups[key], t)
	}

	var flagged []int64
	for _, group := range groups {
		if len(group) < d.minOccurrences {
			continue
		}
		if !d.amountsNearEqual(group) {
			continue
		}
		if !d.cadenceRegular(group) {
			continue
		}
		for _, t := range group {
			if !t.IsRecurring {
				flagged = append(flagged, t.ID)
			}
		}
	}

	if err := s.UpdateRecurring(flagged); err != nil {
		return 0, err
	}
	return len(flagged), nil
}

// amountsNearEqual allows a small percentage spread around the median so a
// utility bill that drifts a few cents still counts.
func (d *RecurringDetector) amountsNearEqual(group []models.Transaction) bool {
	amounts := make([]decimal.Decimal, len(group))
	for i, t := range group {
		amounts[i] = t.Amount.Abs()
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })
	median := amounts[len(amounts)/2]
	if median.IsZero() {
		return false
	}
	tolerance := median.Mul(d.amountTolerance)
	for _, a := range amounts {
		if a.Sub(median).Abs().GreaterThan(tolerance) {
			return false
		}
	}
	return true
}

// cadenceRegular accepts a median gap in the monthly (25-35 day) or weekly
// (6-8 day) window.
func (d *RecurringDetector) cadenceRegular(group []models.Transaction) bool {
	dates := make([]time.Time, 0, len(group))
	for _, t := range group {
		parsed, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			continue
		}
		dates = append(dates, parsed)
	}
	if len(dates) < d.minOccurrences {
		return false
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	gaps := make([]int, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		gaps = append(gaps, int(dates[i].Sub(dates[i-1]).Hours()/24))
	}
	sort.Ints(gaps)
	median := gaps[len(gaps)/2]
	return (median >= 25 && median <= 35) || (median >= 6 && median <= 8)
}
