// Package classifier implements the trust classifier (C4): the two-axis
// (contract, selector), optionally three-axis (plus DELEGATECALL) state
// machine that gates whether a trust profile's label may ever be treated
// as a semantic source, and that computes the trust-confidence header
// severity independently of the effect analyzer's impact severity.
package classifier

import (
	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/trust"
)

// Classify produces the TrustContext for one (contractAddr, selector,
// operation) triple. profile may be nil, meaning no trust profile was
// supplied for this decode call.
func Classify(profile *domain.TrustProfile, contractAddr string, sel domain.Selector, op domain.Operation) domain.TrustContext {
	if profile == nil {
		ctx := domain.TrustContext{
			ProfileLoaded:          false,
			ContractClassification: domain.ContractUnknown,
			SelectorClassification: domain.SelectorNoContext,
		}
		if op == domain.OpDelegateCall {
			ctx.DelegatecallContext = &domain.DelegatecallContext{Classification: domain.DelegatecallNotTrusted}
			ctx.Warnings = append(ctx.Warnings, "DELEGATECALL executes external code with YOUR wallet's full permissions")
		}
		return ctx
	}

	q := trust.NewQueries(profile)
	selHex := sel.String()
	contract := q.GetTrustedContract(contractAddr)

	ctx := domain.TrustContext{ProfileLoaded: true}

	switch {
	case contract == nil:
		ctx.ContractClassification = domain.ContractUnknown
	case contract.TrustLevel == domain.TrustLevelWatched:
		ctx.ContractClassification = domain.ContractWatched
		ctx.TrustLevel = contract.TrustLevel
		ctx.ContractLabel = contract.Label
	default:
		ctx.ContractClassification = domain.ContractTrusted
		ctx.TrustLevel = contract.TrustLevel
		ctx.ContractLabel = contract.Label
	}

	if ctx.ContractClassification != domain.ContractTrusted {
		ctx.SelectorClassification = domain.SelectorNoContext
		ctx.Warnings = append(ctx.Warnings, "Target contract is NOT in your Safe's trust profile", "Do NOT trust the function name")
	} else {
		allowance := q.IsSelectorAllowed(contractAddr, selHex)
		if !allowance.Allowed {
			ctx.SelectorClassification = domain.SelectorNotAllowed
			ctx.Warnings = append(ctx.Warnings, "Selector is not in this contract's allowed list")
		} else {
			usage := q.GetSelectorUsage(contractAddr, selHex)
			ctx.Usage = usage
			switch {
			case usage == nil:
				ctx.SelectorClassification = domain.SelectorNeverUsed
				ctx.Warnings = append(ctx.Warnings, "first time using this function with this contract")
			case usage.Count <= 2:
				ctx.SelectorClassification = domain.SelectorUnusual
				ctx.Warnings = append(ctx.Warnings, "this function has only been used a handful of times with this contract")
			default:
				ctx.SelectorClassification = domain.SelectorExpected
			}
		}
		ctx.SelectorLabel = q.GetSelectorLabel(contractAddr, selHex)
	}

	if op == domain.OpDelegateCall {
		dc := q.IsDelegatecallAllowed(contractAddr, selHex)
		classification := domain.DelegatecallNotTrusted
		if dc.Allowed {
			classification = domain.DelegatecallTrusted
		} else {
			ctx.Warnings = append(ctx.Warnings, "DELEGATECALL executes external code with YOUR wallet's full permissions")
		}
		ctx.DelegatecallContext = &domain.DelegatecallContext{Classification: classification}
	}

	return ctx
}

// HeaderSeverity computes the trust-confidence severity for a single
// call. It returns nil exactly when no profile was loaded and the call is
// not an unwhitelisted DELEGATECALL (the one severity the absence of a
// profile cannot excuse).
func HeaderSeverity(ctx domain.TrustContext, op domain.Operation) *domain.Severity {
	delegatecallUnwhitelisted := op == domain.OpDelegateCall &&
		(ctx.DelegatecallContext == nil || ctx.DelegatecallContext.Classification != domain.DelegatecallTrusted)

	if delegatecallUnwhitelisted {
		return severityPtr(domain.SeverityCritical)
	}
	if !ctx.ProfileLoaded {
		return nil
	}
	if ctx.ContractClassification != domain.ContractTrusted {
		return severityPtr(domain.SeverityUnknown)
	}
	switch ctx.SelectorClassification {
	case domain.SelectorNotAllowed:
		return severityPtr(domain.SeverityCritical)
	case domain.SelectorNoContext:
		return severityPtr(domain.SeverityUnknown)
	default:
		return severityPtr(domain.SeverityLow)
	}
}

// SubCallHeaderInput is the per-sub-call information BatchHeaderSeverity
// needs: its trust context and the operation it was executed with.
type SubCallHeaderInput struct {
	Ctx       domain.TrustContext
	Operation domain.Operation
}

// BatchHeaderSeverity aggregates per-sub-call trust contexts into the
// batch's overall trust-confidence severity: any sub-call that is
// an unwhitelisted DELEGATECALL, trust-blocked (canInterpretSelector
// false), against an unknown contract, or NOT_ALLOWED forces CRITICAL;
// if every sub-call is against a TRUSTED contract the batch is LOW;
// otherwise UNKNOWN.
func BatchHeaderSeverity(profileLoaded bool, subs []SubCallHeaderInput) *domain.Severity {
	if !profileLoaded {
		return nil
	}
	if len(subs) == 0 {
		return severityPtr(domain.SeverityUnknown)
	}

	allTrusted := true
	anyCritical := false
	for _, s := range subs {
		delegatecallUnwhitelisted := s.Operation == domain.OpDelegateCall &&
			(s.Ctx.DelegatecallContext == nil || s.Ctx.DelegatecallContext.Classification != domain.DelegatecallTrusted)
		trustBlocked := !s.Ctx.CanInterpretSelector()
		unknownContract := s.Ctx.ContractClassification == domain.ContractUnknown
		notAllowed := s.Ctx.SelectorClassification == domain.SelectorNotAllowed

		if delegatecallUnwhitelisted || trustBlocked || unknownContract || notAllowed {
			anyCritical = true
		}
		if s.Ctx.ContractClassification != domain.ContractTrusted {
			allTrusted = false
		}
	}
	switch {
	case anyCritical:
		return severityPtr(domain.SeverityCritical)
	case allTrusted:
		return severityPtr(domain.SeverityLow)
	default:
		return severityPtr(domain.SeverityUnknown)
	}
}

func severityPtr(s domain.Severity) *domain.Severity { return &s }
