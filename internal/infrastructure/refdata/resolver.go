// Package refdata loads the country-to-currency and association discount
// tables and answers lookups against them.
package refdata

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/campmanager/backend/internal/domain/reference"
	"github.com/campmanager/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed tables/*.json
var tables embed.FS

const (
	currencyTable = "country_currency_map.json"
	discountTable = "discounts.json"
)

// Resolver answers lookups from tables loaded at construction time.
// It is read-only after construction and safe for concurrent use.
type Resolver struct {
	currencies map[string]string
	discounts  map[string]decimal.Decimal
}

var _ reference.Resolver = (*Resolver)(nil)

// NewResolver loads both tables. A configured file that is missing or
// unreadable is logged and replaced by the table compiled into the binary.
func NewResolver(cfg config.ReferenceConfig, logger *zap.Logger) *Resolver {
	logger = logger.Named("reference")
	r := &Resolver{
		currencies: map[string]string{},
		discounts:  map[string]decimal.Decimal{},
	}

	if doc, ok := loadTable(cfg.CountryCurrencyPath, currencyTable, logger); ok {
		r.currencies = parseCurrencies(doc, logger)
	}
	if doc, ok := loadTable(cfg.DiscountsPath, discountTable, logger); ok {
		r.discounts = parseDiscounts(doc, logger)
	}

	logger.Debug("reference tables loaded",
		zap.Int("countries", len(r.currencies)),
		zap.Int("associations", len(r.discounts)),
	)
	return r
}

// NewResolverFromJSON builds a resolver from raw table documents
func NewResolverFromJSON(currencyJSON, discountJSON []byte, logger *zap.Logger) (*Resolver, error) {
	if !gjson.ValidBytes(currencyJSON) {
		return nil, fmt.Errorf("%s: invalid JSON", currencyTable)
	}
	if !gjson.ValidBytes(discountJSON) {
		return nil, fmt.Errorf("%s: invalid JSON", discountTable)
	}
	return &Resolver{
		currencies: parseCurrencies(gjson.ParseBytes(currencyJSON), logger),
		discounts:  parseDiscounts(gjson.ParseBytes(discountJSON), logger),
	}, nil
}

// CurrencyForCountry returns the currency for a country name, matched
// case-insensitively, or the default currency
func (r *Resolver) CurrencyForCountry(country string) string {
	if cur, ok := r.currencies[foldKey(country)]; ok {
		return cur
	}
	return reference.DefaultCurrency
}

// DiscountForAssociation returns the discount configured for an association
func (r *Resolver) DiscountForAssociation(association string) (decimal.Decimal, bool) {
	d, ok := r.discounts[strings.TrimSpace(association)]
	return d, ok
}

// foldKey lower-cases with Unicode rules; a Caser is not safe to share
func foldKey(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

func loadTable(path, name string, logger *zap.Logger) (gjson.Result, bool) {
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil:
			logger.Warn("reference table unreadable, using built-in table",
				zap.String("table", name), zap.String("path", path), zap.Error(err))
		case !gjson.ValidBytes(data):
			logger.Warn("reference table is not valid JSON, using built-in table",
				zap.String("table", name), zap.String("path", path))
		default:
			return gjson.ParseBytes(data), true
		}
	}

	data, err := tables.ReadFile("tables/" + name)
	if err != nil || !gjson.ValidBytes(data) {
		logger.Error("built-in reference table unavailable", zap.String("table", name), zap.Error(err))
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(data), true
}

func parseCurrencies(doc gjson.Result, logger *zap.Logger) map[string]string {
	out := map[string]string{}
	if !doc.IsObject() {
		logger.Warn("currency table is not an object")
		return out
	}
	doc.ForEach(func(key, value gjson.Result) bool {
		code := strings.ToUpper(strings.TrimSpace(value.String()))
		if value.Type != gjson.String || code == "" {
			logger.Warn("skipping currency entry", zap.String("country", key.String()))
			return true
		}
		out[foldKey(key.String())] = code
		return true
	})
	return out
}

func parseDiscounts(doc gjson.Result, logger *zap.Logger) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	if !doc.IsObject() {
		logger.Warn("discount table is not an object")
		return out
	}
	doc.ForEach(func(key, value gjson.Result) bool {
		var raw string
		switch value.Type {
		case gjson.Number:
			raw = value.Raw
		case gjson.String:
			raw = value.String()
		}
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			logger.Warn("skipping discount entry", zap.String("association", key.String()))
			return true
		}
		out[strings.TrimSpace(key.String())] = d
		return true
	})
	return out
}
