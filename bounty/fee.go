package bounty

import (
	"fmt"
	"math"
)

// Token amount precision for the escrow mint (USDC, 6 decimals).
const (
	MintDecimals  = 6
	AtomsPerToken = 1_000_000
	FeeDivisor    = 10 // platform keeps 1/10 of the gross amount
)

// SplitFee split a gross bounty amount into the platform fee and the net
// amount escrowed in the vault. Integer division floors the fee, so the net
// never loses more than gross/10.
func SplitFee(gross uint64) (fee, net uint64, err error) {
	fee = gross / FeeDivisor
	net = gross - fee
	if net == 0 {
		return 0, 0, fmt.Errorf("%w: gross %d atoms", ErrAmountTooSmall, gross)
	}
	return fee, net, nil
}

// AtomsFromUi convert a user-facing token amount to atoms. Rejects
// non-finite and non-positive inputs before the multiply so garbage never
// becomes a plausible amount.
func AtomsFromUi(ui float64) (uint64, error) {
	if math.IsNaN(ui) || math.IsInf(ui, 0) {
		return 0, fmt.Errorf("%w: non-finite value", ErrAmountInvalid)
	}
	if ui <= 0 {
		return 0, fmt.Errorf("%w: %f", ErrAmountInvalid, ui)
	}
	atoms := math.Floor(ui * AtomsPerToken)
	// float64(MaxUint64) rounds up to 2^64, so >= also rejects the boundary
	// where uint64 conversion would wrap.
	if atoms >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: overflows u64", ErrAmountInvalid)
	}
	return uint64(atoms), nil
}
