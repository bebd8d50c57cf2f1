package domain

import "strconv"

// ProgramIDLength is the fixed length of an affiliate program id.
const ProgramIDLength = 15

// Currency is one of the fixed set of supported settlement currencies.
type Currency string

const (
	CurrencyJPY Currency = "JPY"
	CurrencyAUD Currency = "AUD"
	CurrencyCHF Currency = "CHF"
)

// AmountPriorityTotalPrice is the literal marker a caller sets on
// amount_priority to force its raw total_price through verbatim,
// bypassing the floor-to-JPY rule.
const AmountPriorityTotalPrice = "total_price"

const (
	maxFieldLength  = 50
	maxQuantity     = 9999
	defaultItemCode = "none"
)

// Order is the caller-supplied conversion payload. Price and Quantity
// are pointers so the validator can tell a missing field from zero.
type Order struct {
	ProgramID      string   `json:"pid"`
	Items          []Item   `json:"items"`
	OrderNumber    string   `json:"order_number,omitempty"`
	Currency       string   `json:"currency,omitempty"`
	TotalPrice     *float64 `json:"total_price,omitempty"`
	Repeat         bool     `json:"repeat,omitempty"`
	AmountPriority string   `json:"amount_priority,omitempty"`
	Coupon         string   `json:"coupon,omitempty"`
}

// Item is one order line.
type Item struct {
	Code     string   `json:"code,omitempty"`
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
}

// Violation describes one payload validation failure.
type Violation struct {
	Field  string
	Reason string
}

// Validate checks payload shape only; normalization happens later and
// never runs when violations exist.
func (o Order) Validate() []Violation {
	var out []Violation
	if len(o.ProgramID) != ProgramIDLength {
		out = append(out, Violation{Field: "pid", Reason: "must be a 15 character string"})
	}
	if len(o.Items) == 0 {
		out = append(out, Violation{Field: "items", Reason: "must be a non-empty array"})
	}
	for i, item := range o.Items {
		if item.Price == nil {
			out = append(out, Violation{Field: itemField(i, "price"), Reason: "must be numeric"})
		}
		if item.Quantity == nil {
			out = append(out, Violation{Field: itemField(i, "quantity"), Reason: "must be numeric"})
		}
	}
	return out
}

func itemField(i int, name string) string {
	return "items[" + strconv.Itoa(i) + "]." + name
}
