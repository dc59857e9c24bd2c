package utils

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/shopspring/decimal"
)

// ValidateBTCAddress checks that the address decodes for Bitcoin mainnet.
func ValidateBTCAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address is required")
	}
	if _, err := btcutil.DecodeAddress(address, &chaincfg.MainNetParams); err != nil {
		return fmt.Errorf("invalid bitcoin address: %v", err)
	}
	return nil
}

// QuoteDepositBTC converts a USD deposit amount into the BTC the depositor
// must send, applying the exchange fee percentage on top of the amount.
// rate is USD per BTC.
func QuoteDepositBTC(usd, rate, feePercent decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("BTC rate is not configured")
	}
	gross := usd.Mul(decimal.NewFromInt(100).Add(feePercent)).Div(decimal.NewFromInt(100))
	return gross.DivRound(rate, 8), nil
}
