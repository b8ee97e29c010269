package trust

import "github.com/signguard/signguard/internal/domain"

// Queries wraps a loaded TrustProfile with case-insensitive lookup
// methods. All keys are lowercased before map access so
// callers never have to normalize addresses or selectors themselves.
type Queries struct {
	Profile *domain.TrustProfile
}

func NewQueries(profile *domain.TrustProfile) Queries {
	return Queries{Profile: profile}
}

func (q Queries) GetTrustedContract(addr string) *domain.TrustedContract {
	return q.Profile.TrustedContracts[lower(addr)]
}

func (q Queries) GetTrustedAsset(addr string) *domain.TrustedAsset {
	return q.Profile.TrustedAssets[lower(addr)]
}

// GetAddressLabel resolves a label for addr, preferring a trusted-contract
// label over a trusted-asset label when both exist.
func (q Queries) GetAddressLabel(addr string) *domain.AddressLabel {
	a := lower(addr)
	if c := q.Profile.TrustedContracts[a]; c != nil && c.Label != "" {
		return &domain.AddressLabel{Label: c.Label, Type: domain.AddressLabelContract}
	}
	if asset := q.Profile.TrustedAssets[a]; asset != nil {
		return &domain.AddressLabel{Label: asset.Symbol, Type: domain.AddressLabelAsset}
	}
	return nil
}

func (q Queries) GetSelectorUsage(addr, sel string) *domain.SelectorUsage {
	bySelector, ok := q.Profile.SelectorUsageHistory[lower(addr)]
	if !ok {
		return nil
	}
	return bySelector[lower(sel)]
}

func (q Queries) GetSelectorLabel(addr, sel string) string {
	contract := q.Profile.TrustedContracts[lower(addr)]
	if contract == nil || contract.SelectorLabels == nil {
		return ""
	}
	return contract.SelectorLabels[lower(sel)]
}

// IsSelectorAllowed implements isSelectorAllowed(addr, sel).
func (q Queries) IsSelectorAllowed(addr, sel string) domain.SelectorAllowance {
	contract := q.Profile.TrustedContracts[lower(addr)]
	if contract == nil {
		return domain.SelectorAllowance{Allowed: false, Reason: domain.ReasonContractNotTrusted}
	}
	if contract.AllowAllSelectors {
		return domain.SelectorAllowance{Allowed: true, Reason: domain.ReasonAllSelectorsAllowed}
	}
	if _, ok := contract.AllowedSelectors[lower(sel)]; ok {
		return domain.SelectorAllowance{Allowed: true, Reason: domain.ReasonSelectorWhitelisted}
	}
	return domain.SelectorAllowance{Allowed: false, Reason: domain.ReasonSelectorNotAllowed}
}

// IsDelegatecallAllowed implements isDelegatecallAllowed(addr, sel).
// A DELEGATECALL target must both be a trusted contract AND carry
// the selector in trustedDelegateCalls — being a trusted contract for
// ordinary CALLs confers no DELEGATECALL trust by itself.
func (q Queries) IsDelegatecallAllowed(addr, sel string) domain.DelegatecallAllowance {
	a := lower(addr)
	if _, trusted := q.Profile.TrustedContracts[a]; !trusted {
		return domain.DelegatecallAllowance{Allowed: false, Reason: domain.ReasonDelegatecallContractNotTrusted}
	}
	dc := q.Profile.TrustedDelegateCalls[a]
	if dc == nil {
		return domain.DelegatecallAllowance{Allowed: false, Reason: domain.ReasonDelegatecallNotWhitelisted}
	}
	if _, ok := dc.AllowedSelectors[lower(sel)]; !ok {
		return domain.DelegatecallAllowance{Allowed: false, Reason: domain.ReasonDelegatecallSelectorNotAllowed}
	}
	return domain.DelegatecallAllowance{Allowed: true, Reason: domain.ReasonDelegatecallWhitelisted}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
