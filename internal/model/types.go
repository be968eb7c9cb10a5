package model

import (
	"encoding/json"
	"fmt"
)

// SuccessCode is the envelope code Bitget returns on a successful call.
const SuccessCode = "00000"

// Credentials is the Bitget API key triple. Never logged.
type Credentials struct {
	APIKey     string
	SecretKey  string
	Passphrase string
}

// Payload is a decoded Bitget response body. No schema is enforced.
type Payload map[string]any

func (p Payload) Code() string {
	return stringOf(p["code"])
}

func (p Payload) Msg() string {
	return stringOf(p["msg"])
}

// OK reports whether the envelope code signals success.
func (p Payload) OK() bool {
	return p.Code() == SuccessCode
}

// Data returns the object items of the "data" array. Non-object items are skipped
// and a missing or non-array "data" yields nil.
func (p Payload) Data() []map[string]any {
	raw, ok := p["data"].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

// LeveragePair is one row of /api/v2/spot/leverage/info.
type LeveragePair struct {
	Symbol   string
	Leverage string
}

func LeveragePairs(p Payload) []LeveragePair {
	var pairs []LeveragePair
	for _, item := range p.Data() {
		pairs = append(pairs, LeveragePair{
			Symbol:   stringOf(item["symbol"]),
			Leverage: stringOf(item["leverage"]),
		})
	}
	return pairs
}

// IsolatedMarginRate is one row of /api/v2/margin/isolated/interest-rate-and-limit.
type IsolatedMarginRate struct {
	Symbol                    string
	BaseCoin                  string
	QuoteCoin                 string
	Leverage                  string
	BaseDailyInterestRate     string
	BaseAnnuallyInterestRate  string
	BaseMaxBorrowableAmount   string
	QuoteDailyInterestRate    string
	QuoteAnnuallyInterestRate string
	QuoteMaxBorrowableAmount  string
}

func IsolatedMarginRates(p Payload) []IsolatedMarginRate {
	var rates []IsolatedMarginRate
	for _, item := range p.Data() {
		rates = append(rates, IsolatedMarginRate{
			Symbol:                    stringOf(item["symbol"]),
			BaseCoin:                  stringOf(item["baseCoin"]),
			QuoteCoin:                 stringOf(item["quoteCoin"]),
			Leverage:                  stringOf(item["leverage"]),
			BaseDailyInterestRate:     stringOf(item["baseDailyInterestRate"]),
			BaseAnnuallyInterestRate:  stringOf(item["baseAnnuallyInterestRate"]),
			BaseMaxBorrowableAmount:   stringOf(item["baseMaxBorrowableAmount"]),
			QuoteDailyInterestRate:    stringOf(item["quoteDailyInterestRate"]),
			QuoteAnnuallyInterestRate: stringOf(item["quoteAnnuallyInterestRate"]),
			QuoteMaxBorrowableAmount:  stringOf(item["quoteMaxBorrowableAmount"]),
		})
	}
	return rates
}

// MarginCurrency is one row of /api/v2/margin/currencies.
type MarginCurrency struct {
	Symbol                    string
	BaseCoin                  string
	QuoteCoin                 string
	MaxCrossedLeverage        string
	MaxIsolatedLeverage       string
	IsBorrowable              bool
	IsIsolatedBaseBorrowable  bool
	IsIsolatedQuoteBorrowable bool
}

func MarginCurrencies(p Payload) []MarginCurrency {
	var currencies []MarginCurrency
	for _, item := range p.Data() {
		currencies = append(currencies, MarginCurrency{
			Symbol:                    stringOf(item["symbol"]),
			BaseCoin:                  stringOf(item["baseCoin"]),
			QuoteCoin:                 stringOf(item["quoteCoin"]),
			MaxCrossedLeverage:        stringOf(item["maxCrossedLeverage"]),
			MaxIsolatedLeverage:       stringOf(item["maxIsolatedLeverage"]),
			IsBorrowable:              boolOf(item["isBorrowable"]),
			IsIsolatedBaseBorrowable:  boolOf(item["isIsolatedBaseBorrowable"]),
			IsIsolatedQuoteBorrowable: boolOf(item["isIsolatedQuoteBorrowable"]),
		})
	}
	return currencies
}

// stringOf renders scalar JSON values as text. Bitget sends most numbers as strings.
func stringOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool, float64, int64, int:
		return fmt.Sprint(t)
	case fmt.Stringer:
		return t.String()
	default:
		return ""
	}
}

func boolOf(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}
