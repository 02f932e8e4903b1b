package ctp

import (
	"fmt"
	"strings"
)

// NotAvailable is shown for absent optional values.
const NotAvailable = "N/A"

// FormatMoney renders m as centAmount/100 with two decimals followed by the
// currency code, e.g. "10.50 EUR". A nil value renders as NotAvailable.
func FormatMoney(m *Money) string {
	if m == nil {
		return NotAvailable
	}

	cents := m.CentAmount
	sign := ""

	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return strings.TrimSpace(fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, m.CurrencyCode))
}
