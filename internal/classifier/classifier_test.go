package classifier

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/trust"
)

const wethProfile = `{
	"version": 1,
	"safeAddress": "0xsafe",
	"trustedContracts": {
		"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": {
			"label": "WETH",
			"trustLevel": "PROTOCOL",
			"allowedSelectors": ["0x095ea7b3"]
		}
	},
	"trustedDelegateCalls": {
		"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": {"allowedSelectors": ["0x095ea7b3"]}
	},
	"selectorUsageHistory": {
		"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": {"0x095ea7b3": {"count": 50}}
	}
}`

func loadTestProfile(t *testing.T) *domain.TrustProfile {
	t.Helper()
	p, err := trust.LoadProfile([]byte(wethProfile))
	require.NoError(t, err)
	return p
}

func sel(t *testing.T, s string) domain.Selector {
	t.Helper()
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	require.NoError(t, err)
	var out domain.Selector
	copy(out[:], raw)
	return out
}

func TestClassify_TrustedExpected(t *testing.T) {
	profile := loadTestProfile(t)
	ctx := Classify(profile, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", sel(t, "0x095ea7b3"), domain.OpCall)

	assert.True(t, ctx.ProfileLoaded)
	assert.Equal(t, domain.ContractTrusted, ctx.ContractClassification)
	assert.Equal(t, domain.SelectorExpected, ctx.SelectorClassification)
	assert.True(t, ctx.CanInterpretSelector())

	severity := HeaderSeverity(ctx, domain.OpCall)
	require.NotNil(t, severity)
	assert.Equal(t, domain.SeverityLow, *severity)
}

func TestClassify_UnknownContract(t *testing.T) {
	profile := loadTestProfile(t)
	ctx := Classify(profile, "0x9999999999999999999999999999999999999", sel(t, "0x095ea7b3"), domain.OpCall)

	assert.Equal(t, domain.ContractUnknown, ctx.ContractClassification)
	assert.False(t, ctx.CanInterpretSelector())

	severity := HeaderSeverity(ctx, domain.OpCall)
	require.NotNil(t, severity)
	assert.Equal(t, domain.SeverityUnknown, *severity)
}

func TestClassify_DelegatecallUnwhitelisted(t *testing.T) {
	ctx := Classify(nil, "0x9999999999999999999999999999999999999", sel(t, "0xdeadbeef"), domain.OpDelegateCall)
	severity := HeaderSeverity(ctx, domain.OpDelegateCall)
	require.NotNil(t, severity)
	assert.Equal(t, domain.SeverityCritical, *severity)
}

func TestClassify_NoProfile(t *testing.T) {
	ctx := Classify(nil, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", sel(t, "0x095ea7b3"), domain.OpCall)
	assert.False(t, ctx.ProfileLoaded)
	assert.Nil(t, HeaderSeverity(ctx, domain.OpCall))
}

func TestBatchHeaderSeverity_AllTrusted(t *testing.T) {
	profile := loadTestProfile(t)
	ctx := Classify(profile, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", sel(t, "0x095ea7b3"), domain.OpCall)

	severity := BatchHeaderSeverity(true, []SubCallHeaderInput{{Ctx: ctx, Operation: domain.OpCall}})
	require.NotNil(t, severity)
	assert.Equal(t, domain.SeverityLow, *severity)
}

func TestBatchHeaderSeverity_AnyUnknownForcesCritical(t *testing.T) {
	profile := loadTestProfile(t)
	trusted := Classify(profile, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", sel(t, "0x095ea7b3"), domain.OpCall)
	unknown := Classify(profile, "0x9999999999999999999999999999999999999", sel(t, "0xdeadbeef"), domain.OpCall)

	severity := BatchHeaderSeverity(true, []SubCallHeaderInput{
		{Ctx: trusted, Operation: domain.OpCall},
		{Ctx: unknown, Operation: domain.OpCall},
	})
	require.NotNil(t, severity)
	assert.Equal(t, domain.SeverityCritical, *severity)
}
