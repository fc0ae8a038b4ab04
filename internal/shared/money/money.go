// Package money renders monetary amounts for transport.
package money

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept on every amount.
const Places = 2

// Number renders an amount as a JSON number with exactly two fractional
// digits, so 200 travels as 200.00.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(Places))
}
