// Package effect implements the effect analyzer (C6): deriving the
// semantic consequence of a decoded call — independent of trust
// confidence — from its effect-type tag and decoded parameter attributes.
package effect

import "github.com/signguard/signguard/internal/domain"

type taxonomyEntry struct {
	BaseSeverity domain.Severity
	Permanence   domain.Permanence
}

// taxonomy is the effect-type ↦ (base severity, permanence) table.
var taxonomy = map[domain.EffectType]taxonomyEntry{
	domain.EffectPermissionGrant:       {domain.SeverityHigh, domain.PermanencePermanentUntilRevoked},
	domain.EffectPermissionRevoke:      {domain.SeverityLow, domain.PermanenceImmediate},
	domain.EffectAssetTransfer:         {domain.SeverityHigh, domain.PermanenceImmediateIrreversible},
	domain.EffectControlTransfer:       {domain.SeverityCritical, domain.PermanencePermanent},
	domain.EffectUpgradeAuthority:      {domain.SeverityCritical, domain.PermanencePermanent},
	domain.EffectExecutionGrant:        {domain.SeverityCritical, domain.PermanencePermanentUntilRevoked},
	domain.EffectBatchOperation:        {domain.SeverityHigh, domain.PermanenceVaries},
	domain.EffectSafeExecution:         {domain.SeverityHigh, domain.PermanenceImmediate},
	domain.EffectSafeModuleChange:      {domain.SeverityCritical, domain.PermanencePermanentUntilRevoked},
	domain.EffectSafeModuleExecution:   {domain.SeverityCritical, domain.PermanenceImmediate},
	domain.EffectSafeOwnerChange:       {domain.SeverityCritical, domain.PermanencePermanentUntilChanged},
	domain.EffectSafeThresholdChange:   {domain.SeverityCritical, domain.PermanencePermanentUntilChanged},
	domain.EffectSafeFallbackChange:    {domain.SeverityHigh, domain.PermanencePermanentUntilChanged},
	domain.EffectSafeGuardChange:       {domain.SeverityCritical, domain.PermanencePermanentUntilChanged},
	domain.EffectDelegatecallExecution: {domain.SeverityCritical, domain.PermanenceImmediate},
	domain.EffectTrustProfileSemantic:  {domain.SeverityContextDependent, domain.PermanenceContextDependent},
	domain.EffectABIVerified:           {domain.SeverityContextDependent, domain.PermanenceContextDependent},
	domain.EffectUnknown:               {domain.SeverityUnknown, domain.PermanenceUnknown},
}

func baseFor(t domain.EffectType) taxonomyEntry {
	if e, ok := taxonomy[t]; ok {
		return e
	}
	return taxonomy[domain.EffectUnknown]
}
