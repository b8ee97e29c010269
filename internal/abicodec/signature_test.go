package abicodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/domain"
)

func TestParseSignature(t *testing.T) {
	tests := []struct {
		name      string
		sig       string
		wantName  string
		wantTypes []string
	}{
		{
			name:      "no arguments",
			sig:       "nonce()",
			wantName:  "nonce",
			wantTypes: nil,
		},
		{
			name:      "simple arguments",
			sig:       "approve(address,uint256)",
			wantName:  "approve",
			wantTypes: []string{"address", "uint256"},
		},
		{
			name:      "nested tuple does not split on internal commas",
			sig:       "execTransaction(address,uint256,bytes,uint8,(address,uint256),uint256)",
			wantName:  "execTransaction",
			wantTypes: []string{"address", "uint256", "bytes", "uint8", "(address,uint256)", "uint256"},
		},
		{
			name:      "array of tuples",
			sig:       "multiSend((address,uint256,bytes)[])",
			wantName:  "multiSend",
			wantTypes: []string{"(address,uint256,bytes)[]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, err := ParseSignature(tt.sig)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, fs.Name)
			assert.Equal(t, tt.wantTypes, fs.Types)
		})
	}
}

func TestParseSignature_Invalid(t *testing.T) {
	_, err := ParseSignature("notASignature")
	assert.Error(t, err)
}

func TestCanonicalSignatureRoundTrip(t *testing.T) {
	fs := &domain.FunctionSignature{Name: "approve", Types: []string{"address", "uint256"}}
	assert.Equal(t, "approve(address,uint256)", CanonicalSignature(fs))
}

func TestKeccak256Selector(t *testing.T) {
	// approve(address,uint256) is a well-known selector.
	sel := Keccak256Selector("approve(address,uint256)")
	assert.Equal(t, "0x095ea7b3", sel.String())
}
