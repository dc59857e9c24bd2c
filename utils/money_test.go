package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("19.99")
	require.NoError(t, err)
	assert.Equal(t, "19.99", FormatAmount(amount))

	_, err = ParseAmount("0")
	assert.Error(t, err)
	_, err = ParseAmount("-3")
	assert.Error(t, err)
	_, err = ParseAmount("1.999")
	assert.Error(t, err)
	_, err = ParseAmount("abc")
	assert.Error(t, err)
}

func TestQuoteDepositBTC(t *testing.T) {
	usd := decimal.RequireFromString("100")
	rate := decimal.RequireFromString("50000")
	fee := decimal.RequireFromString("5")

	btc, err := QuoteDepositBTC(usd, rate, fee)
	require.NoError(t, err)
	// 105 USD at 50000 USD/BTC
	assert.True(t, decimal.RequireFromString("0.0021").Equal(btc), "got %s", btc)

	_, err = QuoteDepositBTC(usd, decimal.Zero, fee)
	assert.Error(t, err)
}

func TestValidateBTCAddress(t *testing.T) {
	// genesis block coinbase address
	assert.NoError(t, ValidateBTCAddress("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"))
	assert.Error(t, ValidateBTCAddress(""))
	assert.Error(t, ValidateBTCAddress("not-an-address"))
}
