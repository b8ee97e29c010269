package domain

// Severity is the shared severity scale used independently by both the
// header (trust-confidence) and effect (impact) axes. Ordered low to high
// for comparisons; UNKNOWN sorts above CRITICAL, since an unresolvable
// call must never be treated as safer than a known critical one, and
// CONTEXT_DEPENDENT ranks with HIGH.
type Severity string

const (
	SeverityLow             Severity = "LOW"
	SeverityMedium          Severity = "MEDIUM"
	SeverityHigh            Severity = "HIGH"
	SeverityCritical        Severity = "CRITICAL"
	SeverityContextDependent Severity = "CONTEXT_DEPENDENT"
	SeverityUnknown         Severity = "UNKNOWN"
)

// severityRank gives the total order used by MaxSeverity and batch aggregation:
// UNKNOWN > CRITICAL > HIGH > MEDIUM > LOW, with CONTEXT_DEPENDENT treated
// as HIGH-equivalent until resolved by the heuristic pass (it never
// survives to a final result unresolved).
var severityRank = map[Severity]int{
	SeverityLow:              0,
	SeverityMedium:           1,
	SeverityContextDependent: 2,
	SeverityHigh:             2,
	SeverityCritical:         3,
	SeverityUnknown:          4,
}

// MaxSeverity returns the higher-ranked of two severities.
func MaxSeverity(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// Rank exposes the total order for callers that need to reduce over more
// than two values (e.g. batch aggregation).
func (s Severity) Rank() int { return severityRank[s] }

// Elevate bumps a severity one level, capped at CRITICAL. UNKNOWN and
// CONTEXT_DEPENDENT are left untouched — elevation only applies to the
// four ordered impact tiers.
func (s Severity) Elevate() Severity {
	switch s {
	case SeverityLow:
		return SeverityMedium
	case SeverityMedium:
		return SeverityHigh
	case SeverityHigh, SeverityCritical:
		return SeverityCritical
	default:
		return s
	}
}

// Permanence tags how durable an effect's consequence is.
type Permanence string

const (
	PermanenceImmediate             Permanence = "IMMEDIATE"
	PermanenceImmediateIrreversible Permanence = "IMMEDIATE_IRREVERSIBLE"
	PermanencePermanent             Permanence = "PERMANENT"
	PermanencePermanentUntilRevoked Permanence = "PERMANENT_UNTIL_REVOKED"
	PermanencePermanentUntilChanged Permanence = "PERMANENT_UNTIL_CHANGED"
	PermanenceVaries                Permanence = "VARIES"
	PermanenceContextDependent      Permanence = "CONTEXT_DEPENDENT"
	PermanenceUnknown               Permanence = "UNKNOWN"
)

// Scope tags the breadth of an effect's reach.
type Scope string

const (
	ScopeNone      Scope = "NONE"
	ScopeLimited   Scope = "LIMITED"
	ScopeUnlimited Scope = "UNLIMITED"
	ScopeUnknown   Scope = "UNKNOWN"
)

// Effect is the effect analyzer's output (C6): the semantic consequence of
// signing a decoded call, independent of trust confidence.
type Effect struct {
	EffectType    EffectType
	Severity      Severity
	Permanence    Permanence
	Scope         Scope
	Beneficiary   *string // lowercased address, nil if none
	Consequences  []string
	Warnings      []string
	Mitigations   []string
	Source        SignatureSource

	// Override bookkeeping, applied by C7.
	TrustOverride    bool     // true when trustBlocked rewrote severity to UNKNOWN
	OriginalSeverity Severity // the pre-override severity, only meaningful when TrustOverride
}
