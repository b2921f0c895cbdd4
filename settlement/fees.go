package settlement

import "github.com/Ngipiek/rair-dapp/addr"

// FeeDenominator is the fixed denominator for fee rates. A rate of 9000
// over this denominator is 9%.
const FeeDenominator = 100000

// Default fee rates over FeeDenominator.
const (
	DefaultTreasuryFeeRate = 9000 // 9%
	DefaultNodeFeeRate     = 1000 // 1%
)

// PriceDecimals is the decimal precision used when formatting native
// currency prices for display. It has no effect on settlement arithmetic,
// which operates on smallest-unit integers throughout.
const PriceDecimals = 18

// FeeConfig holds the treasury payee and the fee rates applied to every sale.
type FeeConfig struct {
	Treasury        addr.Address
	TreasuryFeeRate uint64
	NodeFeeRate     uint64
}

// DefaultFees returns a FeeConfig with the default rates.
func DefaultFees(treasury addr.Address) FeeConfig {
	return FeeConfig{
		Treasury:        treasury,
		TreasuryFeeRate: DefaultTreasuryFeeRate,
		NodeFeeRate:     DefaultNodeFeeRate,
	}
}
