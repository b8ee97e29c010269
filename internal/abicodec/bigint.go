package abicodec

import "math/big"

// MaxUint256 is the maximum representable uint256, the canonical "infinite
// approval" sentinel ERC-20 approve/permit calls use.
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// unlimitedThreshold is 2^255: any amount at or above this is treated as
// "effectively unlimited" even when it is not exactly MaxUint256 (some
// wallets/integrations approve large-but-not-maximal sentinels).
var unlimitedThreshold = new(big.Int).Lsh(big.NewInt(1), 255)

// IsMaxUint256 reports whether v is exactly the maximum uint256 value.
func IsMaxUint256(v *big.Int) bool {
	return v != nil && v.Cmp(MaxUint256) == 0
}

// IsEffectivelyUnlimited reports whether v is large enough to be treated as
// an unbounded approval, per the ≥2^255 sentinel rule.
func IsEffectivelyUnlimited(v *big.Int) bool {
	return v != nil && v.Cmp(unlimitedThreshold) >= 0
}

// IsZero reports whether v is the zero value (nil is not zero; it is
// "absent").
func IsZero(v *big.Int) bool {
	return v != nil && v.Sign() == 0
}
