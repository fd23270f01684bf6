package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// NewPriceFormatter returns a formatter rendering amounts with symbol,
// thousands separated by commas and two decimals.
func NewPriceFormatter(symbol string) func(decimal.Decimal) string {
	ac := accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}
	return func(amount decimal.Decimal) string {
		return ac.FormatMoney(amount.Round(2).InexactFloat64())
	}
}
