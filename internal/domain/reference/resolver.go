// Package reference declares the lookups the lifecycle needs from static
// reference tables.
package reference

import "github.com/shopspring/decimal"

// DefaultCurrency is used for countries missing from the currency table
const DefaultCurrency = "USD"

// Resolver answers reference-data lookups. Implementations never fail:
// a missing or unreadable table degrades to the defaults.
type Resolver interface {
	// CurrencyForCountry returns the currency code for a country name,
	// or DefaultCurrency when the country is unknown
	CurrencyForCountry(country string) string

	// DiscountForAssociation returns the discount percentage for an
	// association and whether one is defined
	DiscountForAssociation(association string) (decimal.Decimal, bool)
}
