package valueobject

import (
	"github.com/shopspring/decimal"
)

// Amount is a value in reais as exposed to clients. It always carries two
// decimal places on the wire ("25.20", never "25.2") so totals line up with
// the printed reports. Arithmetic stays on the embedded decimal.
type Amount struct {
	decimal.Decimal
}

// NewAmount rounds d to cents with banker's rounding
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d.RoundBank(2)}
}

// String returns the value with exactly two decimals
func (a Amount) String() string {
	return a.StringFixedBank(2)
}

// MarshalJSON follows decimal.MarshalJSONWithoutQuotes for quoting and
// always writes two decimals
func (a Amount) MarshalJSON() ([]byte, error) {
	s := a.String()
	if decimal.MarshalJSONWithoutQuotes {
		return []byte(s), nil
	}
	return []byte(`"` + s + `"`), nil
}
