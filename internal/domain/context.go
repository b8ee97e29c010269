package domain

// ContractClassification is the contract axis of the trust classifier (C4).
type ContractClassification string

const (
	ContractTrusted ContractClassification = "TRUSTED"
	ContractWatched ContractClassification = "WATCHED"
	ContractUnknown ContractClassification = "UNKNOWN"
)

// SelectorClassification is the selector axis of the trust classifier (C4).
type SelectorClassification string

const (
	SelectorExpected   SelectorClassification = "EXPECTED"
	SelectorUnusual    SelectorClassification = "UNUSUAL"
	SelectorNeverUsed  SelectorClassification = "NEVER_USED"
	SelectorNotAllowed SelectorClassification = "NOT_ALLOWED"
	SelectorNoContext  SelectorClassification = "NO_CONTEXT"
)

// DelegatecallClassification is the DELEGATECALL axis, only populated when
// the request operation is DELEGATECALL.
type DelegatecallClassification string

const (
	DelegatecallTrusted    DelegatecallClassification = "TRUSTED"
	DelegatecallNotTrusted DelegatecallClassification = "NOT_TRUSTED"
)

// DelegatecallContext is TrustContext's optional DELEGATECALL axis result.
type DelegatecallContext struct {
	Classification DelegatecallClassification
}

// TrustContext is the trust classifier's output (C4) for one
// (contract, selector, operation) triple.
type TrustContext struct {
	ProfileLoaded          bool
	ContractClassification ContractClassification
	SelectorClassification SelectorClassification
	TrustLevel             TrustLevel // zero value when contract is UNKNOWN
	ContractLabel          string
	SelectorLabel          string
	Usage                  *SelectorUsage // nil when no history
	Warnings               []string
	DelegatecallContext    *DelegatecallContext // nil unless operation is DELEGATECALL
	ProfileError           error                 // set when the supplied profile failed validation
}

// CanInterpretSelector is the central gate: true iff a profile is
// loaded, the contract is TRUSTED, and the selector classification permits
// treating the trust profile's label as a semantic source.
func (tc TrustContext) CanInterpretSelector() bool {
	if !tc.ProfileLoaded {
		return false
	}
	if tc.ContractClassification != ContractTrusted {
		return false
	}
	switch tc.SelectorClassification {
	case SelectorExpected, SelectorUnusual, SelectorNeverUsed:
		return true
	default:
		return false
	}
}
