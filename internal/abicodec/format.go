package abicodec

import (
	"fmt"
	"math/big"

	"github.com/signguard/signguard/internal/domain"
)

// BuildParamAmount classifies a decoded uint256-ish value into the shared
// ParamAmount shape the effect analyzer and renderer both consume, so
// neither has to re-run big.Int sentinel comparisons itself.
func BuildParamAmount(v *big.Int) *domain.ParamAmount {
	if v == nil {
		return nil
	}
	return &domain.ParamAmount{
		Raw:          addCommas(v.String()),
		IsMaxUint256: IsMaxUint256(v),
		IsZero:       IsZero(v),
	}
}

// addCommas inserts thousands separators into a decimal string, preserving
// a leading minus sign.
func addCommas(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i != 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// AbbreviateAddress renders a full lowercase address as "0xabcd…1234" for
// compact display; full addresses are always retained on the underlying
// AnalysisResult for technical/JSON output.
func AbbreviateAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// AbbreviateBytes renders raw bytes as hex, truncating anything longer than
// 32 bytes with a trailing length annotation so prompt/log output never
// embeds an unbounded hex blob.
func AbbreviateBytes(b []byte) string {
	if len(b) == 0 {
		return "0x"
	}
	if len(b) <= 32 {
		return fmt.Sprintf("0x%x", b)
	}
	return fmt.Sprintf("0x%x…(%d bytes)", b[:16], len(b))
}
