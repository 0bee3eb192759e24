package pipeline

import (
	"github.com/username/finsift/src/extractors"
	"github.com/username/finsift/src/ingest"
	"github.com/username/finsift/src/models"
)

// Router decides which single document kind a file resolves to. The branch
// order is a strict priority: tax beats paystub beats investment beats the
// statement branch, and a match terminates routing. A tax form full of
// transaction-looking lines still produces exactly one tax document.
type Router struct {
	tax         *extractors.TaxExtractor
	paystub     *extractors.PaystubExtractor
	investment  *extractors.InvestmentExtractor
	balance     *extractors.BalanceExtractor
	transaction *extractors.TransactionExtractor
}

func NewRouter() *Router {
	return &Router{
		tax:         extractors.NewTaxExtractor(),
		paystub:     extractors.NewPaystubExtractor(),
		investment:  extractors.NewInvestmentExtractor(),
		balance:     extractors.NewBalanceExtractor(),
		transaction: extractors.NewTransactionExtractor(),
	}
}

// Route runs the priority chain over one document and returns the tagged
// result. A document nothing claims comes back as KindUnknown with no
// records.
func (r *Router) Route(doc *ingest.Document, cls models.Classification) *models.RoutedDocument {
	routed := &models.RoutedDocument{
		Classification: cls,
		SourceFile:     doc.Name,
	}

	if tax := r.tax.Extract(doc.Text, doc.Name); tax != nil {
		tax.BankName = cls.BankName
		tax.AccountType = cls.AccountType
		routed.Kind = models.KindTax
		routed.Tax = tax
		return routed
	}

	if stubs := r.paystub.Extract(doc.Text, doc.Name); len(stubs) > 0 {
		for i := range stubs {
			stubs[i].BankName = cls.BankName
			stubs[i].AccountType = cls.AccountType
		}
		routed.Kind = models.KindPaystub
		routed.Paystubs = stubs
		return routed
	}

	if acct := r.investment.Extract(doc.Text, doc.Name, cls); acct != nil {
		routed.Kind = models.KindInvestment
		routed.Investment = acct
		return routed
	}

	// Statement branch: balance and transactions are independent attempts
	// and a statement may yield both.
	if !cls.IsInvestment() {
		routed.Balance = r.balance.Extract(doc.Text, doc.Name, cls)
	}
	if doc.IsTabular() {
		routed.Transactions = r.transaction.ExtractRows(doc.Rows, doc.Name, cls)
	} else {
		routed.Transactions = r.transaction.ExtractText(doc.Text, doc.Name, cls)
	}

	if routed.Balance == nil && len(routed.Transactions) == 0 {
		routed.Kind = models.KindUnknown
		return routed
	}
	routed.Kind = models.KindStatement
	return routed
}
