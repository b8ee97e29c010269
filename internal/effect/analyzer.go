package effect

import (
	"github.com/signguard/signguard/internal/domain"
)

// BuildInput is everything the effect analyzer needs to produce an Effect:
// the resolved effect type, a resolved display label for heuristic-based
// types, the parameter attributes the selector's analyzer (or ABI-based
// fallback) computed, the signature source, and whether a trust profile
// backed this call at all (only relevant to the label-severity floor).
type BuildInput struct {
	EffectType      domain.EffectType
	Label           string
	Attrs           domain.ParamAttributes
	Source          domain.SignatureSource
	HasTrustProfile bool

	// BeneficiaryLabel is the trust-registry label for Attrs.Beneficiary,
	// if any was resolved; nil means the human summary must fall back to a
	// generic noun rather than ever printing the raw address.
	BeneficiaryLabel *string
	// TokenSymbol is populated only from trustedAssets; empty means the
	// consequence text refers to "tokens" rather than guessing a symbol.
	TokenSymbol string
}

// Build composes the full Effect: base severity/permanence from
// the taxonomy, elevation and force-critical rules from parameter
// attributes, the PERMISSION_GRANT-with-zero-amount rewrite to
// PERMISSION_REVOKE, and label-pattern heuristics for the two
// context-dependent effect types.
func Build(in BuildInput) domain.Effect {
	effectType := in.EffectType

	// PERMISSION_GRANT with amount = 0 is semantically a revocation, not a
	// grant — rewritten before the taxonomy lookup so its severity and
	// permanence come from PERMISSION_REVOKE's row, not an elevated GRANT.
	if effectType == domain.EffectPermissionGrant && in.Attrs.Amount != nil && in.Attrs.Amount.IsZero {
		effectType = domain.EffectPermissionRevoke
		in.Attrs.IsRevocation = true
	}

	base := baseFor(effectType)
	severity := base.BaseSeverity

	switch effectType {
	case domain.EffectTrustProfileSemantic, domain.EffectABIVerified:
		severity = SeverityFromLabel(in.Label, in.HasTrustProfile)
	default:
		if in.Attrs.Scope == domain.ScopeUnlimited {
			severity = severity.Elevate()
		}
		if in.Attrs.Irreversible {
			severity = severity.Elevate()
		}
		if in.Attrs.BypassesSignatures {
			severity = severity.Elevate()
		}
		if in.Attrs.IsDelegateCall || in.Attrs.GrantsAutonomousExec {
			severity = domain.SeverityCritical
		}
	}

	eff := domain.Effect{
		EffectType:  effectType,
		Severity:    severity,
		Permanence:  base.Permanence,
		Scope:       in.Attrs.Scope,
		Beneficiary: in.Attrs.Beneficiary,
		Source:      in.Source,
	}
	eff.Consequences, eff.Warnings, eff.Mitigations = BuildNarrative(effectType, in.Attrs, in.Label, in.BeneficiaryLabel, in.TokenSymbol)
	return eff
}
