package decode

import (
	"context"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/multisend"
	"github.com/signguard/signguard/internal/trust"
)

const weth = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
const stranger = "0x1111111111111111111111111111111111111111"
const spender = "0x2222222222222222222222222222222222222222"

func leftPad32(b []byte) []byte {
	out := make([]byte, 32)
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(out[32-len(b):], b)
	return out
}

func addressWord(addr string) []byte {
	trimmed := strings.TrimPrefix(addr, "0x")
	b, err := hex.DecodeString(trimmed)
	if err != nil {
		panic(err)
	}
	return leftPad32(b)
}

func encodeApprove(spender string, amount *big.Int) []byte {
	selector := []byte{0x09, 0x5e, 0xa7, 0xb3}
	out := append([]byte{}, selector...)
	out = append(out, addressWord(spender)...)
	out = append(out, leftPad32(amount.Bytes())...)
	return out
}

func maxUint256() *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), 256)
	return max.Sub(max, big.NewInt(1))
}

// stubABIResolver lets a test control the local ABI registry's answer
// without touching the filesystem-backed implementation.
type stubABIResolver struct {
	abi  *domain.ContractABI
	frag *domain.FunctionFragment
	names []string
}

func (s stubABIResolver) FindByAddress(chain, address, abiPath string) (*domain.ContractABI, error) {
	if s.abi == nil {
		return nil, nil
	}
	return s.abi, nil
}

func (s stubABIResolver) MatchSelector(abi *domain.ContractABI, sel domain.Selector) (*domain.FunctionFragment, []string) {
	return s.frag, s.names
}

func wethTrustedProfile(t *testing.T, extraJSON string) *domain.TrustProfile {
	t.Helper()
	body := `{
		"version": 1,
		"trustedContracts": {
			"` + weth + `": {
				"label": "WETH",
				"trustLevel": "PROTOCOL",
				"allowedSelectors": ["0x095ea7b3"],
				"selectorLabels": {"0x095ea7b3": "approve"}
			}
		},
		"selectorUsageHistory": {
			"` + weth + `": {"0x095ea7b3": {"count": 50, "lastUsed": "2026-01-01T00:00:00Z"}}
		}` + extraJSON + `
	}`
	profile, err := trust.LoadProfile([]byte(body))
	require.NoError(t, err)
	return profile
}

func TestRun_TrustedApproveUnlimited(t *testing.T) {
	profile := wethTrustedProfile(t, "")
	d := New(nil, nil)

	req := domain.DecodeRequest{
		Calldata: encodeApprove(spender, maxUint256()),
		Target:   strPtr(weth),
		Profile:  profile,
		Offline:  true,
	}
	result, err := d.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceVerifiedDB, result.Source)
	require.NotNil(t, result.HeaderSeverity)
	assert.Equal(t, domain.SeverityLow, *result.HeaderSeverity)
	assert.Equal(t, domain.SeverityCritical, result.Effect.Severity, "an unlimited approve elevates to CRITICAL regardless of trust")
	assert.False(t, result.Effect.TrustOverride)
}

func TestRun_UnknownContractKnownSelectorShape(t *testing.T) {
	profile := wethTrustedProfile(t, "")
	d := New(nil, nil)

	req := domain.DecodeRequest{
		Calldata: encodeApprove(spender, big.NewInt(1000)),
		Target:   strPtr(stranger),
		Profile:  profile,
		Offline:  true,
	}
	result, err := d.Run(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, result.TrustContext)
	assert.Equal(t, domain.ContractUnknown, result.TrustContext.ContractClassification)
	assert.False(t, result.TrustContext.CanInterpretSelector())
	require.NotNil(t, result.HeaderSeverity)
	assert.Equal(t, domain.SeverityUnknown, *result.HeaderSeverity)
	assert.True(t, result.Effect.TrustOverride)
	assert.Equal(t, domain.SeverityUnknown, result.Effect.Severity)
	assert.Contains(t, result.TrustContext.Warnings, "Target contract is NOT in your Safe's trust profile")
}

func TestRun_DelegatecallToUnwhitelistedTarget(t *testing.T) {
	profile := wethTrustedProfile(t, "")
	d := New(nil, nil)

	req := domain.DecodeRequest{
		Calldata:  encodeApprove(spender, big.NewInt(1)),
		Target:    strPtr(weth), // trusted contract, but no trustedDelegateCalls entry
		Operation: domain.OpDelegateCall,
		Profile:   profile,
		Offline:   true,
	}
	result, err := d.Run(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, result.HeaderSeverity)
	assert.Equal(t, domain.SeverityCritical, *result.HeaderSeverity, "unwhitelisted DELEGATECALL is always CRITICAL")
	assert.Equal(t, domain.EffectDelegatecallExecution, result.Effect.EffectType)
	assert.Equal(t, domain.SeverityCritical, result.Effect.Severity)
}

func TestRun_DelegatecallWithNoProfileIsStillCritical(t *testing.T) {
	d := New(nil, nil)
	req := domain.DecodeRequest{
		Calldata:  encodeApprove(spender, big.NewInt(1)),
		Target:    strPtr(weth),
		Operation: domain.OpDelegateCall,
		Offline:   true,
	}
	result, err := d.Run(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result.HeaderSeverity)
	assert.Equal(t, domain.SeverityCritical, *result.HeaderSeverity)
}

func TestRun_MixedBatchTrustedAndUnknown(t *testing.T) {
	profile := wethTrustedProfile(t, "")
	d := New(nil, nil)

	subCalls := []domain.SubCall{
		{Operation: domain.OpCall, To: weth, Value: big.NewInt(0), Data: encodeApprove(spender, big.NewInt(5))},
		{Operation: domain.OpCall, To: stranger, Value: big.NewInt(0), Data: encodeApprove(spender, big.NewInt(5))},
	}
	tail := multisend.Encode(subCalls)
	calldata := append(append([]byte{}, multisend.Selector[:]...), tail...)

	req := domain.DecodeRequest{Calldata: calldata, Profile: profile, Offline: true}
	result, err := d.Run(context.Background(), req)
	require.NoError(t, err)

	require.True(t, result.IsBatch)
	require.NotNil(t, result.BatchInfo)
	assert.Equal(t, domain.BatchMultiSend, result.BatchInfo.BatchType)
	require.Len(t, result.BatchInfo.Calls, 2)
	require.NotNil(t, result.HeaderSeverity)
	assert.Equal(t, domain.SeverityCritical, *result.HeaderSeverity, "any unknown-contract sub-call forces the batch header to CRITICAL")
}

func TestRun_LocalABIAaveSupply(t *testing.T) {
	aave := "0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2"
	frag := &domain.FunctionFragment{
		Type: "function",
		Name: "supply",
		Inputs: []domain.ABIInput{
			{Name: "asset", Type: "address"},
			{Name: "amount", Type: "uint256"},
			{Name: "onBehalfOf", Type: "address"},
			{Name: "referralCode", Type: "uint16"},
		},
	}
	resolver := stubABIResolver{
		abi:   &domain.ContractABI{ChainID: "ethereum", Address: aave},
		frag:  frag,
		names: []string{"asset", "amount", "onBehalfOf", "referralCode"},
	}
	d := New(resolver, nil)

	selector := []byte{0x61, 0x7b, 0xa0, 0x37}
	calldata := append([]byte{}, selector...)
	calldata = append(calldata, addressWord(weth)...)
	calldata = append(calldata, leftPad32(big.NewInt(1_000000).Bytes())...)
	calldata = append(calldata, addressWord(spender)...)
	calldata = append(calldata, leftPad32(big.NewInt(0).Bytes())...)

	req := domain.DecodeRequest{Calldata: calldata, Target: strPtr(aave), Offline: true}
	result, err := d.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceLocalABI, result.Source)
	require.NotNil(t, result.FunctionName)
	assert.Equal(t, "supply", *result.FunctionName)
	require.Len(t, result.Params, 4)
	assert.Equal(t, "asset", result.Params[0].Name)
}

func TestRun_TrustProfileLabelWithoutABI(t *testing.T) {
	// deadbeef is not a curated selector and no local ABI is supplied, so
	// the only signal available is the trust profile's selector label.
	body := `{
		"version": 1,
		"trustedContracts": {
			"` + weth + `": {
				"label": "WETH",
				"trustLevel": "PROTOCOL",
				"allowedSelectors": ["0xdeadbeef"],
				"selectorLabels": {"0xdeadbeef": "claimRewards"}
			}
		}
	}`
	profile, err := trust.LoadProfile([]byte(body))
	require.NoError(t, err)

	d := New(nil, nil)
	calldata := []byte{0xde, 0xad, 0xbe, 0xef}
	req := domain.DecodeRequest{Calldata: calldata, Target: strPtr(weth), Profile: profile, Offline: true}
	result, err := d.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceTrustProfile, result.Source)
	require.NotNil(t, result.FunctionName)
	assert.Equal(t, "claimRewards", *result.FunctionName)
	assert.Equal(t, domain.EffectTrustProfileSemantic, result.Effect.EffectType)
}

func TestRun_MalformedBatchIsUnparseableButDecodeSucceeds(t *testing.T) {
	d := New(nil, nil)
	tail := make([]byte, 64) // offset/length header only, no records, length lies
	tail[31] = 32
	tail[63] = 200 // declares 200 bytes of packed records that don't exist
	calldata := append(append([]byte{}, multisend.Selector[:]...), tail...)

	req := domain.DecodeRequest{Calldata: calldata, Offline: true}
	result, err := d.Run(context.Background(), req)
	require.NoError(t, err, "a malformed batch is a successful decode carrying an UNPARSEABLE_BATCH result")

	require.NotNil(t, result.BatchInfo)
	assert.Equal(t, domain.BatchUnparseableBatch, result.BatchInfo.BatchType)
	assert.NotEmpty(t, result.BatchInfo.Error)
	assert.Empty(t, result.BatchInfo.Calls)
	assert.Equal(t, result.Calldata, result.BatchInfo.RawCalldata)
}
