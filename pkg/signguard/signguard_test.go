package signguard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/pkg/signguard"
)

func TestEngine_OfflineDecodesFromVerifiedRegistry(t *testing.T) {
	engine := signguard.NewOffline(t.TempDir())

	data := append([]byte{0x09, 0x5e, 0xa7, 0xb3}, make([]byte, 64)...)
	result, err := engine.Decode(context.Background(), domain.DecodeRequest{
		Calldata: data,
		Offline:  true,
	})
	require.NoError(t, err)
	require.NotNil(t, result.FunctionName)
	assert.Equal(t, "approve", *result.FunctionName)
	assert.Equal(t, domain.SourceVerifiedDB, result.Source)
}

func TestLoadTrustProfile_MissingFileErrors(t *testing.T) {
	_, err := signguard.LoadTrustProfile("/nonexistent/profile.json")
	assert.Error(t, err)
}
