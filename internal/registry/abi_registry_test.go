package registry

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/domain"
)

const aaveSupplyABI = `[
	{"type":"function","name":"supply","inputs":[
		{"name":"asset","type":"address"},
		{"name":"amount","type":"uint256"},
		{"name":"onBehalfOf","type":"address"},
		{"name":"referralCode","type":"uint16"}
	]}
]`

func TestABIRegistry_FindByAddress(t *testing.T) {
	fsys := fstest.MapFS{
		"ethereum/0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2.json": &fstest.MapFile{Data: []byte(aaveSupplyABI)},
	}
	reg := NewABIRegistry("", fsys)

	abi, err := reg.FindByAddress("ethereum", "0x8787FB5C4C4cB2F3E1c4F6c1234567890ABCDEF2", "")
	require.NoError(t, err)
	require.Len(t, abi.Fragments, 1)
	assert.Equal(t, "supply", abi.Fragments[0].Name)

	sel, names := reg.MatchSelector(abi, mustSelector(t, "0x617ba037"))
	require.NotNil(t, sel)
	assert.Equal(t, []string{"asset", "amount", "onBehalfOf", "referralCode"}, names)
}

func TestABIRegistry_RejectsPathEscape(t *testing.T) {
	reg := NewABIRegistry("", fstest.MapFS{})

	_, err := reg.FindByAddress("../etc", "0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2", "")
	assert.Error(t, err)

	_, err = reg.FindByAddress("ethereum", "not-an-address", "")
	assert.Error(t, err)
}

func TestABIRegistry_CacheIsAtomicallyReplaced(t *testing.T) {
	fsys := fstest.MapFS{
		"ethereum/0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2.json": &fstest.MapFile{Data: []byte(aaveSupplyABI)},
	}
	reg := NewABIRegistry("", fsys)

	abi1, err := reg.FindByAddress("ethereum", "0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2", "")
	require.NoError(t, err)

	reg.ClearCache()

	abi2, err := reg.FindByAddress("ethereum", "0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2", "")
	require.NoError(t, err)

	assert.Equal(t, abi1.Address, abi2.Address)
	assert.NotSame(t, abi1, abi2)
}

func TestABIRegistry_AbiPathFromTrustProfileTakesPrecedence(t *testing.T) {
	fsys := fstest.MapFS{
		"custom/aave-supply.json":                                  &fstest.MapFile{Data: []byte(aaveSupplyABI)},
		"ethereum/0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2.json": &fstest.MapFile{Data: []byte(`[]`)},
	}
	reg := NewABIRegistry("", fsys)

	abi, err := reg.FindByAddress("ethereum", "0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2", "custom/aave-supply.json")
	require.NoError(t, err)
	require.Len(t, abi.Fragments, 1, "abiPath must win over the default <chain>/<address>.json layout")
	assert.Equal(t, "supply", abi.Fragments[0].Name)
}

func TestABIRegistry_AbiPathEscapingRootFallsBackToDefault(t *testing.T) {
	fsys := fstest.MapFS{
		"ethereum/0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2.json": &fstest.MapFile{Data: []byte(aaveSupplyABI)},
	}
	reg := NewABIRegistry("abis", fsys)

	abi, err := reg.FindByAddress("ethereum", "0x8787fb5c4c4cb2f3e1c4f6c1234567890abcdef2", "../../etc/passwd")
	require.NoError(t, err, "an escaping abiPath is rejected silently, not surfaced as an error")
	require.Len(t, abi.Fragments, 1, "resolution must fall through to the default chain/address.json path")
}

func mustSelector(t *testing.T, hexSel string) domain.Selector {
	t.Helper()
	return selectorFromHex(t, hexSel)
}
