// Package trust loads and queries the per-multisig trust profile document
// (C2): the only place the system learns which contracts and selectors a
// given Safe has decided to consider legitimate.
package trust

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/domain/errs"
)

var (
	addressPattern  = regexp.MustCompile(`^0x[0-9a-f]{40}$`)
	selectorPattern = regexp.MustCompile(`^0x[0-9a-f]{8}$`)
)

// profileDocument mirrors the on-disk JSON shape before normalization.
type profileDocument struct {
	Version              int                                  `json:"version"`
	SafeAddress           string                              `json:"safeAddress"`
	TrustedContracts       map[string]trustedContractDocument `json:"trustedContracts"`
	TrustedAssets          map[string]trustedAssetDocument     `json:"trustedAssets"`
	TrustedDelegateCalls   map[string]delegateCallDocument     `json:"trustedDelegateCalls"`
	SelectorUsageHistory   map[string]map[string]usageDocument `json:"selectorUsageHistory"`
}

type trustedContractDocument struct {
	Label            string            `json:"label"`
	TrustLevel       string            `json:"trustLevel"`
	AllowedSelectors json.RawMessage   `json:"allowedSelectors"`
	SelectorLabels   map[string]string `json:"selectorLabels"`
	Notes            string            `json:"notes"`
	ABIPath          string            `json:"abiPath"`
}

type trustedAssetDocument struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

type delegateCallDocument struct {
	AllowedSelectors []string `json:"allowedSelectors"`
}

type usageDocument struct {
	Count    int       `json:"count"`
	LastUsed time.Time `json:"lastUsed"`
}

// LoadProfile parses and validates a trust-profile JSON document, returning
// a fully normalized TrustProfile (every address/selector key lowercased)
// or a wrapped ErrProfileValidation describing the first violation found.
// The input byte slice is never mutated.
func LoadProfile(data []byte) (*domain.TrustProfile, error) {
	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", errs.ErrProfileValidation, err)
	}
	if doc.Version == 0 {
		return nil, fmt.Errorf("%w: missing version", errs.ErrProfileValidation)
	}
	if doc.TrustedContracts == nil {
		return nil, fmt.Errorf("%w: missing trustedContracts", errs.ErrProfileValidation)
	}

	profile := &domain.TrustProfile{
		SafeAddress:          strings.ToLower(doc.SafeAddress),
		TrustedContracts:     make(map[string]*domain.TrustedContract, len(doc.TrustedContracts)),
		TrustedAssets:        make(map[string]*domain.TrustedAsset, len(doc.TrustedAssets)),
		TrustedDelegateCalls: make(map[string]*domain.TrustedDelegateCall, len(doc.TrustedDelegateCalls)),
		SelectorUsageHistory: make(map[string]map[string]*domain.SelectorUsage, len(doc.SelectorUsageHistory)),
	}

	for addr, c := range doc.TrustedContracts {
		lowerAddr := strings.ToLower(addr)
		if !addressPattern.MatchString(lowerAddr) {
			return nil, fmt.Errorf("%w: trustedContracts key %q is not a valid address", errs.ErrProfileValidation, addr)
		}
		level := domain.TrustLevel(strings.ToUpper(c.TrustLevel))
		if !validTrustLevel(level) {
			return nil, fmt.Errorf("%w: trustedContracts[%s].trustLevel %q is not a recognized level", errs.ErrProfileValidation, lowerAddr, c.TrustLevel)
		}

		entry := &domain.TrustedContract{
			Label:      c.Label,
			TrustLevel: level,
			Notes:      c.Notes,
			ABIPath:    c.ABIPath,
		}

		allowAll, selectors, err := parseAllowedSelectors(c.AllowedSelectors)
		if err != nil {
			return nil, fmt.Errorf("%w: trustedContracts[%s].allowedSelectors: %v", errs.ErrProfileValidation, lowerAddr, err)
		}
		entry.AllowAllSelectors = allowAll
		entry.AllowedSelectors = selectors

		if c.SelectorLabels != nil {
			entry.SelectorLabels = make(map[string]string, len(c.SelectorLabels))
			for sel, label := range c.SelectorLabels {
				lowerSel := strings.ToLower(sel)
				if !selectorPattern.MatchString(lowerSel) {
					return nil, fmt.Errorf("%w: trustedContracts[%s].selectorLabels key %q is not a valid selector", errs.ErrProfileValidation, lowerAddr, sel)
				}
				entry.SelectorLabels[lowerSel] = label
			}
		}

		profile.TrustedContracts[lowerAddr] = entry
	}

	for addr, a := range doc.TrustedAssets {
		lowerAddr := strings.ToLower(addr)
		if !addressPattern.MatchString(lowerAddr) {
			return nil, fmt.Errorf("%w: trustedAssets key %q is not a valid address", errs.ErrProfileValidation, addr)
		}
		profile.TrustedAssets[lowerAddr] = &domain.TrustedAsset{
			Symbol:   a.Symbol,
			Name:     a.Name,
			Decimals: a.Decimals,
		}
	}

	for addr, d := range doc.TrustedDelegateCalls {
		lowerAddr := strings.ToLower(addr)
		if !addressPattern.MatchString(lowerAddr) {
			return nil, fmt.Errorf("%w: trustedDelegateCalls key %q is not a valid address", errs.ErrProfileValidation, addr)
		}
		selectors := make(map[string]struct{}, len(d.AllowedSelectors))
		for _, sel := range d.AllowedSelectors {
			lowerSel := strings.ToLower(sel)
			if !selectorPattern.MatchString(lowerSel) {
				return nil, fmt.Errorf("%w: trustedDelegateCalls[%s].allowedSelectors entry %q is not a valid selector", errs.ErrProfileValidation, lowerAddr, sel)
			}
			selectors[lowerSel] = struct{}{}
		}
		profile.TrustedDelegateCalls[lowerAddr] = &domain.TrustedDelegateCall{AllowedSelectors: selectors}
	}

	for addr, bySelector := range doc.SelectorUsageHistory {
		lowerAddr := strings.ToLower(addr)
		usage := make(map[string]*domain.SelectorUsage, len(bySelector))
		for sel, u := range bySelector {
			usage[strings.ToLower(sel)] = &domain.SelectorUsage{Count: u.Count, LastUsed: u.LastUsed}
		}
		profile.SelectorUsageHistory[lowerAddr] = usage
	}

	return profile, nil
}

func validTrustLevel(level domain.TrustLevel) bool {
	switch level {
	case domain.TrustLevelInternal, domain.TrustLevelProtocol, domain.TrustLevelPartner, domain.TrustLevelWatched:
		return true
	default:
		return false
	}
}

// parseAllowedSelectors accepts either the JSON literal "*" or a JSON array
// of 4-byte hex selector strings.
func parseAllowedSelectors(raw json.RawMessage) (allowAll bool, selectors map[string]struct{}, err error) {
	if len(raw) == 0 {
		return false, map[string]struct{}{}, nil
	}
	var wildcard string
	if err := json.Unmarshal(raw, &wildcard); err == nil {
		if wildcard != "*" {
			return false, nil, fmt.Errorf("string value must be \"*\", got %q", wildcard)
		}
		return true, nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return false, nil, fmt.Errorf("must be \"*\" or an array of selectors: %w", err)
	}
	selectors = make(map[string]struct{}, len(list))
	for _, sel := range list {
		lowerSel := strings.ToLower(sel)
		if !selectorPattern.MatchString(lowerSel) {
			return false, nil, fmt.Errorf("entry %q is not a valid selector", sel)
		}
		selectors[lowerSel] = struct{}{}
	}
	return false, selectors, nil
}
