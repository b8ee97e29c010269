package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/domain"
)

const validProfile = `{
	"version": 1,
	"safeAddress": "0xSAFE0000000000000000000000000000000001",
	"trustedContracts": {
		"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2": {
			"label": "WETH",
			"trustLevel": "PROTOCOL",
			"allowedSelectors": ["0x095ea7b3"],
			"selectorLabels": {"0x095ea7b3": "approve"}
		}
	},
	"trustedAssets": {
		"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2": {"symbol": "WETH", "name": "Wrapped Ether", "decimals": 18}
	},
	"trustedDelegateCalls": {
		"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2": {"allowedSelectors": ["0x095ea7b3"]}
	},
	"selectorUsageHistory": {
		"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": {"0x095ea7b3": {"count": 50, "lastUsed": "2026-01-01T00:00:00Z"}}
	}
}`

func TestLoadProfile_NormalizesAndValidates(t *testing.T) {
	profile, err := LoadProfile([]byte(validProfile))
	require.NoError(t, err)

	weth := "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	require.Contains(t, profile.TrustedContracts, weth)
	assert.Equal(t, "WETH", profile.TrustedContracts[weth].Label)
	assert.Equal(t, domain.TrustLevelProtocol, profile.TrustedContracts[weth].TrustLevel)
	assert.False(t, profile.TrustedContracts[weth].AllowAllSelectors)
	_, ok := profile.TrustedContracts[weth].AllowedSelectors["0x095ea7b3"]
	assert.True(t, ok)
}

func TestLoadProfile_RejectsMissingVersion(t *testing.T) {
	_, err := LoadProfile([]byte(`{"trustedContracts": {}}`))
	assert.ErrorContains(t, err, "version")
}

func TestLoadProfile_RejectsBadAddress(t *testing.T) {
	_, err := LoadProfile([]byte(`{"version":1,"trustedContracts":{"not-an-address":{"trustLevel":"PROTOCOL","allowedSelectors":"*"}}}`))
	assert.Error(t, err)
}

func TestLoadProfile_RejectsBadTrustLevel(t *testing.T) {
	_, err := LoadProfile([]byte(`{"version":1,"trustedContracts":{"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2":{"trustLevel":"BOGUS","allowedSelectors":"*"}}}`))
	assert.Error(t, err)
}

func TestQueries_IsSelectorAllowed(t *testing.T) {
	profile, err := LoadProfile([]byte(validProfile))
	require.NoError(t, err)
	q := NewQueries(profile)

	weth := "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

	tests := []struct {
		name       string
		addr, sel  string
		wantAllow  bool
		wantReason domain.SelectorAllowedReason
	}{
		{"untrusted contract", "0x9999999999999999999999999999999999999", "0x095ea7b3", false, domain.ReasonContractNotTrusted},
		{"whitelisted selector", weth, "0x095ea7b3", true, domain.ReasonSelectorWhitelisted},
		{"not whitelisted selector", weth, "0xdeadbeef", false, domain.ReasonSelectorNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.IsSelectorAllowed(tt.addr, tt.sel)
			assert.Equal(t, tt.wantAllow, got.Allowed)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestQueries_IsDelegatecallAllowed(t *testing.T) {
	profile, err := LoadProfile([]byte(validProfile))
	require.NoError(t, err)
	q := NewQueries(profile)
	weth := "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

	allowed := q.IsDelegatecallAllowed(weth, "0x095ea7b3")
	assert.True(t, allowed.Allowed)
	assert.Equal(t, domain.ReasonDelegatecallWhitelisted, allowed.Reason)

	notAllowed := q.IsDelegatecallAllowed(weth, "0xdeadbeef")
	assert.False(t, notAllowed.Allowed)
	assert.Equal(t, domain.ReasonDelegatecallSelectorNotAllowed, notAllowed.Reason)
}

func TestQueries_GetAddressLabel_ContractTakesPrecedence(t *testing.T) {
	profile, err := LoadProfile([]byte(validProfile))
	require.NoError(t, err)
	q := NewQueries(profile)

	label := q.GetAddressLabel("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	require.NotNil(t, label)
	assert.Equal(t, domain.AddressLabelContract, label.Type)
}
