package domain

import "github.com/shopspring/decimal"

// BaseCurrency is the accounting currency all sale amounts are normalized to
// before splitting.
const BaseCurrency = "INR"

// conversionRates is the flat conversion table to INR.
var conversionRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromFloat(83.5),
	"EUR": decimal.NewFromFloat(90.2),
	"GBP": decimal.NewFromFloat(105.8),
	"AED": decimal.NewFromFloat(22.7),
	"AUD": decimal.NewFromFloat(54.3),
	"CAD": decimal.NewFromFloat(60.5),
	"INR": decimal.NewFromInt(1),
}

// RateFor returns the conversion rate to the base currency. Unknown codes
// resolve to 1.0, treating the amount as already being in the base currency;
// the second return value reports whether the code was recognized.
func RateFor(code string) (decimal.Decimal, bool) {
	if rate, ok := conversionRates[code]; ok {
		return rate, true
	}
	return decimal.NewFromInt(1), false
}
