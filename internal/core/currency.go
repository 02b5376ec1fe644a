package core

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is used for profiles created without a preference.
const DefaultCurrency = "USD"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"NGN": "₦",
	"BRL": "R$",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "CHF ",
	"ZAR": "R",
	"MXN": "MX$",
	"RUB": "₽",
	"TRY": "₺",
	"KES": "KSh",
	"GHS": "GH₵",
	"PHP": "₱",
	"PLN": "zł",
}

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// ParseCurrency normalizes and validates an ISO 4217 code.
func ParseCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrInvalidCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCurrency, code)
	}
	return unit.String(), nil
}

// CurrencySymbol returns the display symbol for code, "$" when unknown.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return sym
	}
	return "$"
}

// FormatMoney renders m with the currency symbol and en-US grouping, e.g.
// "€1,234.50". The currency drives display only.
func FormatMoney(m Money, code string) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	units := amountPrinter.Sprintf("%d", cents/100)
	return fmt.Sprintf("%s%s%s.%02d", sign, CurrencySymbol(code), units, cents%100)
}
