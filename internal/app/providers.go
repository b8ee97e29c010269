package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/signguard/signguard/internal/adapters/lookup4byte"
	"github.com/signguard/signguard/internal/adapters/safeapi"
	"github.com/signguard/signguard/internal/adapters/txfetch"
	"github.com/signguard/signguard/internal/cli/render"
	"github.com/signguard/signguard/internal/config"
	"github.com/signguard/signguard/internal/decode"
	"github.com/signguard/signguard/internal/registry"
)

// ProvideABIResolver builds the local ABI registry (C1) rooted at
// cfg.ABIRoot. A root that does not exist yet is not an error — the
// registry simply never finds a local ABI and the cascade falls through
// to the trust profile / external lookup tiers.
func ProvideABIResolver(cfg *config.RuntimeConfig) decode.ABIResolver {
	return registry.NewABIRegistry(cfg.ABIRoot, os.DirFS(cfg.ABIRoot))
}

// ProvideSelectorLookupService builds the external 4byte.directory client,
// or a NopExternalLookup when the run is offline — every caller downstream
// of the Decoder stays unaware of which one it got.
func ProvideSelectorLookupService(cfg *config.RuntimeConfig) decode.SelectorLookupService {
	if cfg.Offline {
		return decode.NopExternalLookup{}
	}
	return lookup4byte.New(cfg.FourByteTimeout)
}

// ProvideDecoder builds the C7 orchestrator, wiring in the ambient logger
// so absorbed errors (external lookup misses, ABI decode failures) are
// recorded at Debug/Warn instead of silently dropped.
func ProvideDecoder(abi decode.ABIResolver, external decode.SelectorLookupService, logger *slog.Logger) *decode.Decoder {
	d := decode.New(abi, external)
	d.Logger = logger
	return d
}

// ProvideTransactionFetcher dials the configured chain's RPC endpoint, or
// returns nil when offline or no endpoint is configured for the chain —
// the "fetch a mined Safe transaction by hash" command simply becomes
// unavailable rather than the whole app failing to start.
func ProvideTransactionFetcher(cfg *config.RuntimeConfig) TransactionFetcher {
	if cfg.Offline {
		return nil
	}
	rpcURL, ok := cfg.RPCURLs[cfg.Chain]
	if !ok || rpcURL == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	fetcher, err := txfetch.Dial(ctx, rpcURL)
	if err != nil {
		return nil
	}
	return fetcher
}

// ProvideSafeTransactionClient builds the Safe Transaction Service client
// for cfg.SafeChainID, or nil when offline or the chain is unsupported.
func ProvideSafeTransactionClient(cfg *config.RuntimeConfig) SafeTransactionClient {
	if cfg.Offline {
		return nil
	}
	client, err := safeapi.NewClient(cfg.SafeChainID)
	if err != nil {
		return nil
	}
	return client
}

// ProvideDecodeRenderer builds the decode-result renderer bound to cmd's
// output stream. Note this only knows about render.Renderer[*DecodeOutput]
// because DecodeOutput is an alias of domain.AnalysisResult.
func ProvideDecodeRenderer(out io.Writer) render.Renderer[*DecodeOutput] {
	return render.NewDecodeRenderer(out)
}
