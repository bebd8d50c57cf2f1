package domain

import (
	"net/url"
	"strconv"
)

// Tracking query keys. The indexed item sub-fields follow the wire
// convention i[<index>][sc|p|q] for code, price and quantity.
const (
	KeyProgramID   = "pid"
	KeyClickID     = "xid"
	KeyOrderNumber = "on"
	KeyCurrency    = "cur"
	KeyAmount      = "amount"
	KeyCoupon      = "coupon"
	KeyRepeat      = "repeat"
)

// BuildQuery flattens the normalized order into the primary tracking
// query. Serialization through url.Values percent-encodes every key
// and value.
func BuildQuery(pid, clickID string, n Normalized, amount float64) url.Values {
	q := url.Values{}
	q.Set(KeyProgramID, pid)
	q.Set(KeyClickID, clickID)
	q.Set(KeyOrderNumber, n.OrderNumber)
	q.Set(KeyCurrency, string(n.Currency))
	q.Set(KeyAmount, FormatAmount(amount))

	for i, item := range n.Items {
		prefix := "i[" + strconv.Itoa(i) + "]"
		q.Set(prefix+"[sc]", item.Code)
		q.Set(prefix+"[p]", FormatAmount(item.Price))
		q.Set(prefix+"[q]", strconv.Itoa(item.Quantity))
	}

	if n.Coupon != "" {
		q.Set(KeyCoupon, n.Coupon)
	}
	if n.Repeat {
		q.Set(KeyRepeat, "1")
	}
	return q
}

// BuildPostbackQuery carries the subset the partner postback needs.
func BuildPostbackQuery(clickID string, amount float64, orderNumber string) url.Values {
	q := url.Values{}
	q.Set(KeyClickID, clickID)
	q.Set(KeyAmount, FormatAmount(amount))
	q.Set(KeyOrderNumber, orderNumber)
	return q
}

// FormatAmount renders amounts without a trailing decimal point:
// 2500 stays "2500", 999.9 stays "999.9".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
