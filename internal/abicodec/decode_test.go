package abicodec

import (
	"math/big"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/domain"
)

func packTail(t *testing.T, types []string, values ...any) []byte {
	t.Helper()
	args := make(gethabi.Arguments, len(types))
	for i, ty := range types {
		abiType, err := gethabi.NewType(ty, "", nil)
		require.NoError(t, err)
		args[i] = gethabi.Argument{Type: abiType}
	}
	packed, err := args.Pack(values...)
	require.NoError(t, err)
	return packed
}

func TestDecodeParameters_ApproveMax(t *testing.T) {
	spender := common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3")
	tail := packTail(t, []string{"address", "uint256"}, spender, MaxUint256)

	fs := &domain.FunctionSignature{Name: "approve", Types: []string{"address", "uint256"}}
	params, err := DecodeParameters(fs, tail, []string{"spender", "amount"})
	require.NoError(t, err)
	require.Len(t, params, 2)

	require.Equal(t, "spender", params[0].Name)
	require.Equal(t, "0x000000000022d473030f116ddee9f6b43ac78ba3", params[0].Address)

	require.Equal(t, "amount", params[1].Name)
	require.True(t, IsMaxUint256(params[1].BigInt))
	require.True(t, IsEffectivelyUnlimited(params[1].BigInt))
}

func TestDecodeParameters_ZeroArguments(t *testing.T) {
	fs := &domain.FunctionSignature{Name: "nonce", Types: nil}
	params, err := DecodeParameters(fs, nil, nil)
	require.NoError(t, err)
	require.Nil(t, params)
}

func TestDecodeParameters_BytesParam(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	tail := packTail(t, []string{"bytes"}, payload)

	fs := &domain.FunctionSignature{Name: "exec", Types: []string{"bytes"}}
	params, err := DecodeParameters(fs, tail, []string{"data"})
	require.NoError(t, err)
	require.Len(t, params, 1)
	require.Equal(t, payload, params[0].RawBytes)
}

func TestBuildParamAmount(t *testing.T) {
	require.Nil(t, BuildParamAmount(nil))

	amt := BuildParamAmount(big.NewInt(1000000))
	require.Equal(t, "1,000,000", amt.Raw)
	require.False(t, amt.IsZero)
	require.False(t, amt.IsMaxUint256)

	zero := BuildParamAmount(big.NewInt(0))
	require.True(t, zero.IsZero)
}
