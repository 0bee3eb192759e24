package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind is the mutually-exclusive category a document resolves to.
// Exactly one kind of record set is produced per document.
type DocumentKind string

const (
	KindTax        DocumentKind = "tax"
	KindPaystub    DocumentKind = "paystub"
	KindInvestment DocumentKind = "investment"
	KindStatement  DocumentKind = "statement"
	KindUnknown    DocumentKind = "unknown"
)

// Account types. UnknownValue doubles as the fallback for bank names.
const (
	AccountCreditCard     = "credit_card"
	AccountChecking       = "checking"
	AccountSavings        = "savings"
	AccountRothIRA        = "roth_ira"
	AccountTraditionalIRA = "traditional_ira"
	AccountInvestment     = "investment_account"
	UnknownValue          = "unknown"
)

// Investment transaction types.
const (
	InvestBuy          = "buy"
	InvestSell         = "sell"
	InvestDividend     = "dividend"
	InvestContribution = "contribution"
	InvestWithdrawal   = "withdrawal"
)

// Tax form kinds.
const (
	Form1099INT = "1099-INT"
	Form1099DIV = "1099-DIV"
	Form1099B   = "1099-B"
	FormW2      = "W-2"
)

// Classification is derived per document and stamped onto every record
// produced from it. It is never persisted on its own.
type Classification struct {
	BankName    string `json:"bank_name"`
	AccountType string `json:"account_type"`
}

// IsInvestment reports whether the account type is an investment account.
func (c Classification) IsInvestment() bool {
	switch c.AccountType {
	case AccountRothIRA, AccountTraditionalIRA, AccountInvestment:
		return true
	}
	return false
}

// ImportedFile tracks a processed source file by content identity.
type ImportedFile struct {
	ID           int64        `json:"id"`
	FileIdentity string       `json:"file_identity"`
	SourcePath   string       `json:"source_path"`
	DocumentKind DocumentKind `json:"document_kind"`
	RecordCount  int          `json:"record_count"`
	ImportedAt   time.Time    `json:"imported_at"`
}

// Transaction is a single dated money movement on an account.
type Transaction struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"` // ISO 2006-01-02
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Merchant    string          `json:"merchant"`
	Category    string          `json:"category"`
	BankName    string          `json:"bank_name"`
	AccountType string          `json:"account_type"`
	SourceFile  string          `json:"source_file"`
	IsRecurring bool            `json:"is_recurring"`
}

// AccountBalance is a point-in-time balance snapshot from one statement.
type AccountBalance struct {
	ID              int64               `json:"id"`
	StatementDate   string              `json:"statement_date"`
	Balance         decimal.Decimal     `json:"balance"`
	CreditLimit     decimal.NullDecimal `json:"credit_limit"`
	AvailableCredit decimal.NullDecimal `json:"available_credit"`
	MinimumPayment  decimal.NullDecimal `json:"minimum_payment"`
	PaymentDueDate  string              `json:"payment_due_date"`
	APR             decimal.NullDecimal `json:"apr"`
	BankName        string              `json:"bank_name"`
	AccountType     string              `json:"account_type"`
	SourceFile      string              `json:"source_file"`
}

// InvestmentAccount owns the holdings and investment transactions pulled
// from a single brokerage or retirement statement.
type InvestmentAccount struct {
	ID             int64                   `json:"id"`
	BankName       string                  `json:"bank_name"`
	AccountType    string                  `json:"account_type"`
	PortfolioValue decimal.NullDecimal     `json:"portfolio_value"`
	StatementDate  string                  `json:"statement_date"`
	SourceFile     string                  `json:"source_file"`
	Holdings       []Holding               `json:"holdings"`
	Transactions   []InvestmentTransaction `json:"transactions"`
}

// Holding is one security position inside an InvestmentAccount.
type Holding struct {
	ID       int64           `json:"id"`
	Ticker   string          `json:"ticker"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// InvestmentTransaction is a buy/sell/dividend/contribution/withdrawal event.
type InvestmentTransaction struct {
	ID       int64               `json:"id"`
	Date     string              `json:"date"`
	Type     string              `json:"type"`
	Ticker   string              `json:"ticker"`
	Quantity decimal.NullDecimal `json:"quantity"`
	Price    decimal.NullDecimal `json:"price"`
	Amount   decimal.NullDecimal `json:"amount"`
}

// Paystub holds one pay period's earnings and deductions. A single file can
// carry several paystubs, so the identity key is (pay_date, source_file).
type Paystub struct {
	ID              int64                      `json:"id"`
	PayDate         string                     `json:"pay_date"`
	PayPeriodStart  string                     `json:"pay_period_start"`
	PayPeriodEnd    string                     `json:"pay_period_end"`
	Employer        string                     `json:"employer"`
	GrossPay        decimal.NullDecimal        `json:"gross_pay"`
	NetPay          decimal.NullDecimal        `json:"net_pay"`
	Deductions      map[string]decimal.Decimal `json:"deductions"`
	TotalDeductions decimal.NullDecimal        `json:"total_deductions"`
	YTDGross        decimal.NullDecimal        `json:"ytd_gross"`
	YTDNet          decimal.NullDecimal        `json:"ytd_net"`
	BankName        string                     `json:"bank_name"`
	AccountType     string                     `json:"account_type"`
	SourceFile      string                     `json:"source_file"`
}

// TaxDocument holds the box amounts extracted from one tax form.
type TaxDocument struct {
	ID          int64                      `json:"id"`
	TaxYear     int                        `json:"tax_year"`
	FormKind    string                     `json:"form_kind"`
	Payer       string                     `json:"payer"`
	Fields      map[string]decimal.Decimal `json:"fields"`
	BankName    string                     `json:"bank_name"`
	AccountType string                     `json:"account_type"`
	SourceFile  string                     `json:"source_file"`
}

// RoutedDocument is the tagged outcome of document-type routing. Exactly one
// of the record groups is populated according to Kind; a statement may carry
// both a balance and transactions.
type RoutedDocument struct {
	Kind           DocumentKind
	Classification Classification
	SourceFile     string
	Tax            *TaxDocument
	Paystubs       []Paystub
	Investment     *InvestmentAccount
	Balance        *AccountBalance
	Transactions   []Transaction
}

// RecordCount returns the number of primary records the document produced.
func (d *RoutedDocument) RecordCount() int {
	switch d.Kind {
	case KindTax:
		if d.Tax != nil {
			return 1
		}
	case KindPaystub:
		return len(d.Paystubs)
	case KindInvestment:
		if d.Investment != nil {
			return 1 + len(d.Investment.Holdings) + len(d.Investment.Transactions)
		}
	case KindStatement:
		n := len(d.Transactions)
		if d.Balance != nil {
			n++
		}
		return n
	}
	return 0
}
