// Package config resolves signguard's runtime configuration: the ABI
// registry root, per-chain RPC endpoints, the 4byte.directory lookup
// timeout, and the Safe Transaction Service chain ID — layered
// flag > env > signguard.toml > default.
package config

import "time"

// RuntimeConfig is the fully resolved configuration injected into the
// CLI's use cases.
type RuntimeConfig struct {
	// ABIRoot is the filesystem root the local ABI registry (C1) reads
	// contract ABIs from, laid out <chain>/<address>.json.
	ABIRoot string

	// ProfilePath points at the trust profile JSON document to load for
	// the current multisig, if any. Empty means "no profile".
	ProfilePath string

	// Chain is the default chain directory name used when a request
	// does not specify one.
	Chain string

	// RPCURLs maps a chain name to the JSON-RPC endpoint txfetch dials
	// when decoding a mined transaction.
	RPCURLs map[string]string

	// SafeChainID selects which Safe Transaction Service host safeapi
	// talks to.
	SafeChainID uint64

	// FourByteTimeout bounds the external 4byte.directory lookup.
	FourByteTimeout time.Duration

	// Offline disables every network-suspending path (external lookup,
	// mined/pending transaction fetch) and forces the orchestrator to
	// resolve purely from the verified registry, local ABIs, and the
	// trust profile.
	Offline bool

	// Debug raises the logger to slog.LevelDebug.
	Debug bool

	// JSON selects machine-readable output over the colored renderer.
	JSON bool
}
