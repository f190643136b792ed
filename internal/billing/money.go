package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
}

// FormatAmount renders an amount in minor units as a display string, e.g.
// 1250/"usd" -> "$12.50". Unknown currencies fall back to an ISO prefix.
func FormatAmount(amount int64, currency string) string {
	value := decimal.NewFromInt(amount).Div(decimal.NewFromInt(100))
	code := strings.ToLower(currency)
	if symbol, ok := currencySymbols[code]; ok {
		return symbol + value.StringFixed(2)
	}
	return strings.ToUpper(currency) + " " + value.StringFixed(2)
}
