package registry

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/abicodec"
	"github.com/signguard/signguard/internal/domain"
)

func selectorFromHex(t *testing.T, s string) domain.Selector {
	t.Helper()
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	require.NoError(t, err)
	require.Len(t, raw, 4)
	var sel domain.Selector
	copy(sel[:], raw)
	return sel
}

func TestLookup_KnownSelectors(t *testing.T) {
	tests := []struct {
		selectorHex string
		wantName    string
		wantFound   bool
	}{
		{"0x095ea7b3", "approve", true},
		{"0xa9059cbb", "transfer", true},
		{"0x8d80ff0a", "", false}, // MultiSend selector belongs to internal/multisend, not curated here
		{"0x6a761202", "execTransaction", true},
		{"0xd505accf", "permit", true},
	}

	for _, tt := range tests {
		t.Run(tt.selectorHex, func(t *testing.T) {
			sel := selectorFromHex(t, tt.selectorHex)
			rec, ok := Lookup(sel)
			assert.Equal(t, tt.wantFound, ok)
			if tt.wantFound {
				assert.Equal(t, tt.wantName, rec.Name)
			}
		})
	}
}

func TestAnalyzeApprove_ZeroIsRevocation(t *testing.T) {
	spender := "0xdef1c0ded9bec7f1a1670819833240f027b25eff"
	params := []domain.DecodedParam{
		{Name: "spender", Type: "address", Address: spender},
		{Name: "amount", Type: "uint256", BigInt: big.NewInt(0)},
	}
	attrs := analyzeApprove(params)
	assert.True(t, attrs.IsRevocation)
	assert.Equal(t, domain.ScopeNone, attrs.Scope)
}

func TestAnalyzeApprove_MaxIsUnlimited(t *testing.T) {
	params := []domain.DecodedParam{
		{Name: "spender", Type: "address", Address: "0xdef1c0ded9bec7f1a1670819833240f027b25eff"},
		{Name: "amount", Type: "uint256", BigInt: abicodec.MaxUint256},
	}
	attrs := analyzeApprove(params)
	assert.False(t, attrs.IsRevocation)
	assert.Equal(t, domain.ScopeUnlimited, attrs.Scope)
}
