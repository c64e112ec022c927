package entity

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, both on the wire and inside JSON columns.
	decimal.MarshalJSONWithoutQuotes = true
}

// DecimalOrZero unwraps a nullable amount.
func DecimalOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func NewNullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
