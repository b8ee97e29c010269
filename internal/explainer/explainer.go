// Package explainer implements the explainer adapter (C8): converting a
// finished analysis into a sanitized natural-language prompt payload. It
// never calls a model or a provider SDK — that is explicitly out of scope
// — and it never lets raw calldata or any hex run longer than an address
// reach the payload it returns.
package explainer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/domain/errs"
)

var hexRun = regexp.MustCompile(`0[xX][0-9a-fA-F]+`)

// BuildPrompt converts an AnalysisResult into the sanitized payload an
// external renderer or model front end consumes. It returns
// errs.ErrUnsafePrompt if the constructed payload still embeds a hex run
// longer than a 42-character address after assembly.
func BuildPrompt(result *domain.AnalysisResult) (*domain.PromptPayload, error) {
	shape := shapeFor(result)
	payload := &domain.PromptPayload{
		Shape:        shape,
		Selector:     result.Selector,
		FunctionName: result.FunctionName,
		Severity:     effectiveSeverity(result),
		Summary:      summaryFor(shape, result),
		Warnings:     append([]string{}, result.Warnings...),
		Caveats:      caveatsFor(shape),
	}

	if err := scanForLeakedHex(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// shapeFor picks exactly one of the five disjoint prompt shapes.
// DELEGATECALL_UNTRUSTED takes precedence over every other shape: an
// untrusted DELEGATECALL's risk is never downgraded by whatever source
// happened to resolve its selector.
func shapeFor(r *domain.AnalysisResult) domain.PromptShape {
	if isUntrustedDelegatecall(r) {
		return domain.PromptDelegatecallUntrusted
	}
	switch r.Source {
	case domain.SourceUnknown, domain.SourceExternalUnverified:
		return domain.PromptUnverified
	case domain.SourceTrustProfile:
		return domain.PromptTrustProfile
	case domain.SourceLocalABI:
		return domain.PromptABIVerified
	default:
		return domain.PromptStandard
	}
}

func isUntrustedDelegatecall(r *domain.AnalysisResult) bool {
	if r.Effect.EffectType != domain.EffectDelegatecallExecution {
		return false
	}
	tc := r.TrustContext
	return tc == nil || tc.DelegatecallContext == nil ||
		tc.DelegatecallContext.Classification != domain.DelegatecallTrusted
}

// effectiveSeverity reports the higher of the header (trust) and effect
// (impact) severities — the prompt always states the more cautious of the
// two rather than forcing a caller to reconcile them.
func effectiveSeverity(r *domain.AnalysisResult) domain.Severity {
	if r.HeaderSeverity == nil {
		return r.Effect.Severity
	}
	return domain.MaxSeverity(*r.HeaderSeverity, r.Effect.Severity)
}

// summaryFor produces the fixed text for the two scripted shapes and a
// templated one-paragraph summary for the three verified shapes. Severity
// is stated, never something the prompt asks a model to assess.
func summaryFor(shape domain.PromptShape, r *domain.AnalysisResult) string {
	switch shape {
	case domain.PromptUnverified:
		return "This function selector could not be verified against any trusted source. " +
			"The displayed name, if any, is an unverified external guess and must not be relied on."
	case domain.PromptDelegatecallUntrusted:
		return "This transaction executes DELEGATECALL against a contract that is not " +
			"whitelisted for DELEGATECALL on this Safe. The called code would run with this " +
			"wallet's own storage and signing permissions and could move any asset or change " +
			"any owner."
	default:
		name := "this function"
		if r.FunctionName != nil && *r.FunctionName != "" {
			name = *r.FunctionName
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Calling %s.", name)
		for _, c := range r.Effect.Consequences {
			b.WriteString(" ")
			b.WriteString(c)
		}
		return b.String()
	}
}

// caveatsFor attaches the provenance disclaimer appropriate to a shape, so
// a downstream renderer never implies a stronger guarantee than the source
// actually carries.
func caveatsFor(shape domain.PromptShape) []string {
	caveats := []string{"Severity is a stated fact from the trust and effect analyzers; do not ask a model to re-derive it."}
	switch shape {
	case domain.PromptTrustProfile:
		caveats = append(caveats, "This function name comes from a manually curated trust profile, not an on-chain verified source.")
	case domain.PromptABIVerified:
		caveats = append(caveats, "This signature was matched against a locally supplied ABI, which has not been independently verified against on-chain bytecode.")
	case domain.PromptUnverified:
		caveats = append(caveats, "No model assessment should be requested for an unverified call; present the fixed warning text only.")
	}
	return caveats
}

// scanForLeakedHex is the mandatory post-build safety check: any
// 0x-prefixed hex run longer than a 42-character address anywhere in the
// payload's text fields aborts the build.
func scanForLeakedHex(p *domain.PromptPayload) error {
	fields := make([]string, 0, len(p.Warnings)+len(p.Caveats)+1)
	fields = append(fields, p.Summary)
	fields = append(fields, p.Warnings...)
	fields = append(fields, p.Caveats...)

	for _, f := range fields {
		for _, match := range hexRun.FindAllString(f, -1) {
			if len(match) > 42 {
				return fmt.Errorf("%w: payload embeds a %d-character hex run", errs.ErrUnsafePrompt, len(match))
			}
		}
	}
	return nil
}
