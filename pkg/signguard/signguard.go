// Package signguard is the small importable facade over the internal
// decode pipeline: a library consumer that wants to embed the calldata
// decoder in its own tool should depend on this package, not reach into
// internal/decode directly.
package signguard

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/signguard/signguard/internal/adapters/lookup4byte"
	"github.com/signguard/signguard/internal/decode"
	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/domain/errs"
	"github.com/signguard/signguard/internal/registry"
	"github.com/signguard/signguard/internal/trust"
)

// Engine decodes and scores calldata. It is safe for concurrent use: it
// holds no per-request mutable state, the same guarantee decode.Decoder
// itself gives.
type Engine struct {
	decoder *decode.Decoder
}

// New builds an Engine rooted at abiRoot's local ABI registry, reaching
// out to 4byte.directory (bounded by lookupTimeout) on a cascade miss.
func New(abiRoot string, lookupTimeout time.Duration) *Engine {
	return &Engine{
		decoder: decode.New(registry.NewABIRegistry(abiRoot, os.DirFS(abiRoot)), lookup4byte.New(lookupTimeout)),
	}
}

// NewOffline builds an Engine that never performs a network call: a
// cascade miss resolves no further than the local ABI registry.
func NewOffline(abiRoot string) *Engine {
	return &Engine{
		decoder: decode.New(registry.NewABIRegistry(abiRoot, os.DirFS(abiRoot)), nil),
	}
}

// Decode runs the full pipeline for one request.
func (e *Engine) Decode(ctx context.Context, req domain.DecodeRequest) (*domain.AnalysisResult, error) {
	return e.decoder.Run(ctx, req)
}

// LoadTrustProfile reads and validates a trust profile document from
// disk, ready to attach to a DecodeRequest. A ProfileValidationFailure
// (§7) does not fail the read: it is returned as a profile carrying
// LoadError, so a caller can still pass it to Decode and get back a
// result decoded as though no profile were supplied, with the error
// recorded in the result's trust context.
func LoadTrustProfile(path string) (*domain.TrustProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	profile, err := trust.LoadProfile(data)
	if err != nil {
		if errors.Is(err, errs.ErrProfileValidation) {
			return &domain.TrustProfile{LoadError: err}, nil
		}
		return nil, err
	}
	return profile, nil
}
