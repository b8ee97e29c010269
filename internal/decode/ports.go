// Package decode implements the decode orchestrator (C7): the pipeline
// that ties the selector registries, trust classifier, MultiSend parser,
// and effect analyzer together into one analysis result.
package decode

import (
	"context"

	"github.com/signguard/signguard/internal/domain"
)

// ABIResolver is the narrow port the orchestrator needs from the local ABI
// registry (C1's second table) — it never depends on registry.ABIRegistry
// directly so tests can substitute a stub.
type ABIResolver interface {
	FindByAddress(chain, address, abiPath string) (*domain.ContractABI, error)
	MatchSelector(abi *domain.ContractABI, sel domain.Selector) (*domain.FunctionFragment, []string)
}

// ExternalLookupResult is what a SelectorLookupService returns on a hit.
type ExternalLookupResult struct {
	Signature  string
	AllMatches []string
}

// SelectorLookupService is the external, unverified selector-signature
// lookup (4byte.directory in production, a stub in tests). A miss is
// (nil, nil). A timeout or HTTP failure may come back as a wrapped error;
// the orchestrator logs it and leaves the selector unresolved, never
// turning it into a pipeline error.
type SelectorLookupService interface {
	Lookup(ctx context.Context, sel domain.Selector) (*ExternalLookupResult, error)
}

// NopExternalLookup always misses; New installs it when no external lookup
// was configured. Offline requests (batch sub-call recursion) skip the
// external lookup altogether.
type NopExternalLookup struct{}

func (NopExternalLookup) Lookup(context.Context, domain.Selector) (*ExternalLookupResult, error) {
	return nil, nil
}
