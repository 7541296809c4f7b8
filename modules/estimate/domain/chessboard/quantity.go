package chessboard

import (
	"strings"

	"github.com/shopspring/decimal"
)

// QuantityKind distinguishes the three states a source quantity can be
// in. Blank or unparseable text is Unset, an explicit zero is Zero,
// anything else is Value. Keeping them apart matters during
// distribution arithmetic: neither Unset nor Zero may silently turn
// into a stored 0.
type QuantityKind int

const (
	QuantityUnset QuantityKind = iota
	QuantityZero
	QuantityValue
)

type Quantity struct {
	kind  QuantityKind
	value decimal.Decimal
}

// ParseQuantity reads a raw spreadsheet cell. Comma decimal separators
// are accepted because the source documents use them.
func ParseQuantity(raw string) Quantity {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return Quantity{kind: QuantityUnset}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Quantity{kind: QuantityUnset}
	}
	if d.IsZero() {
		return Quantity{kind: QuantityZero}
	}
	return Quantity{kind: QuantityValue, value: d}
}

func NewQuantity(d decimal.Decimal) Quantity {
	if d.IsZero() {
		return Quantity{kind: QuantityZero}
	}
	return Quantity{kind: QuantityValue, value: d}
}

func (q Quantity) Kind() QuantityKind { return q.kind }

func (q Quantity) Decimal() decimal.Decimal { return q.value }

// DivideBy splits the quantity evenly across n shares. Unset and Zero
// pass through unchanged; a non-positive n yields Unset.
func (q Quantity) DivideBy(n int) Quantity {
	if q.kind != QuantityValue {
		return q
	}
	if n <= 0 {
		return Quantity{kind: QuantityUnset}
	}
	return Quantity{kind: QuantityValue, value: q.value.Div(decimal.NewFromInt(int64(n)))}
}

// Nullable renders the quantity for storage: only a real value becomes
// a number, Unset and Zero both store NULL, never 0.
func (q Quantity) Nullable() *decimal.Decimal {
	if q.kind != QuantityValue {
		return nil
	}
	v := q.value
	return &v
}
