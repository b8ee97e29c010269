package decode

import (
	"strings"

	"github.com/signguard/signguard/internal/domain"
)

// ApplyOverrides implements the three mandatory overrides, run by
// the orchestrator immediately after the effect analyzer produces its
// result. Overrides are applied in a fixed order: a
// DELEGATECALL override takes precedence over a trustBlocked rewrite
// (DELEGATECALL_EXECUTION's severity is CRITICAL either way, so ordering
// only matters for which effect type survives).
func ApplyOverrides(eff *domain.Effect, trustCtx *domain.TrustContext, op domain.Operation, source domain.SignatureSource) {
	if op == domain.OpDelegateCall {
		delegatecallWhitelisted := trustCtx != nil && trustCtx.DelegatecallContext != nil &&
			trustCtx.DelegatecallContext.Classification == domain.DelegatecallTrusted
		if !delegatecallWhitelisted {
			eff.EffectType = domain.EffectDelegatecallExecution
			eff.Severity = domain.SeverityCritical
			eff.Permanence = domain.PermanenceImmediate
			return
		}
	}

	if trustCtx != nil && trustCtx.ProfileLoaded && !trustCtx.CanInterpretSelector() {
		eff.OriginalSeverity = eff.Severity
		eff.Severity = domain.SeverityUnknown
		eff.TrustOverride = true
	}

	if trustCtx != nil && source == domain.SourceLocalABI {
		trustCtx.Warnings = filterFirstTimeWarnings(trustCtx.Warnings)
	}
}

func filterFirstTimeWarnings(warnings []string) []string {
	if len(warnings) == 0 {
		return warnings
	}
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		if strings.Contains(strings.ToLower(w), "first time") {
			continue
		}
		out = append(out, w)
	}
	return out
}
