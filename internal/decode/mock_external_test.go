package decode_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/decode"
	"github.com/signguard/signguard/internal/domain"
)

// MockSelectorLookupService is a mock implementation of SelectorLookupService
type MockSelectorLookupService struct {
	mock.Mock
}

func (m *MockSelectorLookupService) Lookup(ctx context.Context, sel domain.Selector) (*decode.ExternalLookupResult, error) {
	args := m.Called(ctx, sel)
	if res := args.Get(0); res != nil {
		return res.(*decode.ExternalLookupResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// nilABIResolver never finds a local ABI, forcing the cascade down to
// the external lookup tier under test.
type nilABIResolver struct{}

func (nilABIResolver) FindByAddress(chain, address, abiPath string) (*domain.ContractABI, error) {
	return nil, nil
}

func (nilABIResolver) MatchSelector(abi *domain.ContractABI, sel domain.Selector) (*domain.FunctionFragment, []string) {
	return nil, nil
}

func TestRun_UsesExternalLookupOnCascadeMiss(t *testing.T) {
	external := new(MockSelectorLookupService)
	sel := domain.Selector{0xde, 0xad, 0xbe, 0xef}
	external.On("Lookup", mock.Anything, sel).Return(&decode.ExternalLookupResult{
		Signature:  "mysteryCall(uint256)",
		AllMatches: []string{"mysteryCall(uint256)"},
	}, nil)

	calldata := append([]byte{0xde, 0xad, 0xbe, 0xef}, make([]byte, 32)...)
	calldata[4+31] = 1 // uint256 argument, value 1

	d := decode.New(nilABIResolver{}, external)
	result, err := d.Run(context.Background(), domain.DecodeRequest{
		Calldata: calldata,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Signature)
	assert.Equal(t, "mysteryCall(uint256)", *result.Signature)
	assert.Equal(t, domain.SourceExternalUnverified, result.Source)
	external.AssertExpectations(t)
}

func TestRun_TreatsExternalLookupMissAsUnresolved(t *testing.T) {
	external := new(MockSelectorLookupService)
	sel := domain.Selector{0x00, 0x00, 0x00, 0x01}
	external.On("Lookup", mock.Anything, sel).Return(nil, nil)

	d := decode.New(nilABIResolver{}, external)
	result, err := d.Run(context.Background(), domain.DecodeRequest{
		Calldata: []byte{0x00, 0x00, 0x00, 0x01},
	})
	require.NoError(t, err)
	assert.Nil(t, result.Signature)
	assert.Equal(t, domain.SourceUnknown, result.Source)
	external.AssertExpectations(t)
}
