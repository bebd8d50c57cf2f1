package domain

import (
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Normalized is the cleaned copy of an Order the tracking query is
// built from. The caller's Order is never mutated.
type Normalized struct {
	OrderNumber string
	Currency    Currency
	Items       []NormalizedItem
	Total       float64
	Repeat      bool
	Coupon      string
}

// NormalizedItem has every field coerced into range.
type NormalizedItem struct {
	Code     string
	Price    float64
	Quantity int
}

// Normalize produces the cleaned copy. now feeds the synthesized order
// number, which is a ULID (millisecond timestamp plus random suffix).
func Normalize(o Order, now time.Time) Normalized {
	n := Normalized{
		OrderNumber: normalizeOrderNumber(o.OrderNumber, now),
		Currency:    NormalizeCurrency(o.Currency),
		Items:       make([]NormalizedItem, 0, len(o.Items)),
		Repeat:      o.Repeat,
		Coupon:      truncate(o.Coupon, maxFieldLength),
	}

	for _, item := range o.Items {
		n.Items = append(n.Items, NormalizedItem{
			Code:     normalizeCode(item.Code),
			Price:    deref(item.Price),
			Quantity: normalizeQuantity(item.Quantity),
		})
	}

	if o.TotalPrice != nil {
		n.Total = *o.TotalPrice
		return n
	}

	var sum float64
	for _, item := range n.Items {
		sum += item.Price * float64(item.Quantity)
	}
	if n.Currency == CurrencyJPY {
		sum = math.Floor(sum)
	}
	n.Total = sum
	return n
}

// FinalAmount resolves the reported amount. The caller's original
// total_price wins verbatim when amount_priority carries the marker,
// which is the documented escape hatch from the floor-to-JPY rule.
func FinalAmount(original Order, n Normalized) float64 {
	if original.AmountPriority == AmountPriorityTotalPrice && original.TotalPrice != nil {
		return *original.TotalPrice
	}
	return n.Total
}

// NormalizeCurrency folds a case-insensitive match into the canonical
// code and defaults everything else to JPY.
func NormalizeCurrency(s string) Currency {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrencyJPY:
		return CurrencyJPY
	case CurrencyAUD:
		return CurrencyAUD
	case CurrencyCHF:
		return CurrencyCHF
	default:
		return CurrencyJPY
	}
}

func normalizeOrderNumber(s string, now time.Time) string {
	if strings.TrimSpace(s) != "" {
		return truncate(s, maxFieldLength)
	}
	return ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
}

func normalizeCode(s string) string {
	if s == "" {
		return defaultItemCode
	}
	return truncate(s, maxFieldLength)
}

func normalizeQuantity(q *float64) int {
	if q == nil {
		return 1
	}
	v := *q
	if v != math.Trunc(v) {
		return 1
	}
	n := int(v)
	if n < 1 || n > maxQuantity {
		return 1
	}
	return n
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
