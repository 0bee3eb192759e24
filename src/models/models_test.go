package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutedDocumentRecordCount(t *testing.T) {
	tests := []struct {
		name string
		doc  RoutedDocument
		want int
	}{
		{"tax form", RoutedDocument{Kind: KindTax, Tax: &TaxDocument{}}, 1},
		{"tax without payload", RoutedDocument{Kind: KindTax}, 0},
		{"paystubs", RoutedDocument{Kind: KindPaystub, Paystubs: []Paystub{{}, {}}}, 2},
		{"investment with children", RoutedDocument{Kind: KindInvestment, Investment: &InvestmentAccount{
			Holdings:     []Holding{{}, {}},
			Transactions: []InvestmentTransaction{{}},
		}}, 4},
		{"statement balance plus transactions", RoutedDocument{Kind: KindStatement,
			Balance: &AccountBalance{}, Transactions: []Transaction{{}, {}, {}}}, 4},
		{"statement transactions only", RoutedDocument{Kind: KindStatement,
			Transactions: []Transaction{{}}}, 1},
		{"unknown", RoutedDocument{Kind: KindUnknown}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.RecordCount())
		})
	}
}
