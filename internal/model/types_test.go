package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayload_Envelope(t *testing.T) {
	p := Payload{"code": "00000", "msg": "success"}
	assert.True(t, p.OK())
	assert.Equal(t, "success", p.Msg())

	assert.False(t, Payload{"code": "40006"}.OK())
	assert.False(t, Payload{}.OK())
	assert.Equal(t, "", Payload{}.Code())
}

func TestPayload_DataSkipsNonObjects(t *testing.T) {
	p := Payload{"data": []any{map[string]any{"symbol": "BTCUSDT"}, "junk", 3.0}}
	assert.Len(t, p.Data(), 1)

	assert.Nil(t, Payload{"data": map[string]any{"symbol": "BTCUSDT"}}.Data())
	assert.Nil(t, Payload{}.Data())
}

func TestLeveragePairs_OptionalKeys(t *testing.T) {
	p := Payload{"data": []any{
		map[string]any{"symbol": "BTCUSDT", "leverage": json.Number("10")},
		map[string]any{"symbol": "ETHUSDT"},
	}}

	assert.Equal(t, []LeveragePair{
		{Symbol: "BTCUSDT", Leverage: "10"},
		{Symbol: "ETHUSDT", Leverage: ""},
	}, LeveragePairs(p))
}

func TestIsolatedMarginRates(t *testing.T) {
	p := Payload{"data": []any{map[string]any{
		"symbol":                "BTCUSDT",
		"baseCoin":              "BTC",
		"quoteCoin":             "USDT",
		"leverage":              "10",
		"baseDailyInterestRate": "0.00012",
	}}}

	rates := IsolatedMarginRates(p)
	assert.Len(t, rates, 1)
	assert.Equal(t, "BTC", rates[0].BaseCoin)
	assert.Equal(t, "0.00012", rates[0].BaseDailyInterestRate)
	assert.Empty(t, rates[0].QuoteMaxBorrowableAmount)
}

func TestMarginCurrencies_BoolFlags(t *testing.T) {
	p := Payload{"data": []any{
		map[string]any{"symbol": "BTCUSDT", "isIsolatedBaseBorrowable": true, "isBorrowable": "true"},
		map[string]any{"symbol": "ETHUSDT", "isIsolatedBaseBorrowable": "false"},
	}}

	currencies := MarginCurrencies(p)
	assert.True(t, currencies[0].IsIsolatedBaseBorrowable)
	assert.True(t, currencies[0].IsBorrowable)
	assert.False(t, currencies[1].IsIsolatedBaseBorrowable)
}
