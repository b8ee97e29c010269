package lookup4byte

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/domain/errs"
)

func TestLookup_TakesLowestIDAndCarriesAllMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id": 91, "text_signature": "guess_two(uint256)"},
			{"id": 12, "text_signature": "guess_one(uint256)"}
		]}`))
	}))
	defer server.Close()

	client := New(5 * time.Second)
	client.baseURL = server.URL

	result, err := client.Lookup(context.Background(), domain.Selector{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "guess_one(uint256)", result.Signature)
	assert.ElementsMatch(t, []string{"guess_one(uint256)", "guess_two(uint256)"}, result.AllMatches)
}

func TestLookup_EmptyResultsIsANonFatalMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := New(5 * time.Second)
	client.baseURL = server.URL

	result, err := client.Lookup(context.Background(), domain.Selector{0x00, 0x00, 0x00, 0x01})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestLookup_TimeoutIsWrappedAsExternalLookupTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(5 * time.Second)
	client.baseURL = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
	defer cancel()

	_, err := client.Lookup(ctx, domain.Selector{0x00, 0x00, 0x00, 0x01})
	assert.ErrorIs(t, err, errs.ErrExternalLookupTimeout)
}
