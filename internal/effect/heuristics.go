package effect

import (
	"strings"

	"github.com/samber/lo"

	"github.com/signguard/signguard/internal/domain"
)

// labelSeverityTiers is consulted in order; the first tier whose patterns
// appear in the label wins. Tiers are expressed as substrings rather than
// a regex table since the vocabulary is small and fixed.
var labelSeverityTiers = []struct {
	severity domain.Severity
	patterns []string
}{
	{domain.SeverityCritical, []string{"delegatecall", "selfdestruct", "upgrade"}},
	{domain.SeverityHigh, []string{"transfer", "approve", "owner", "admin", "execute"}},
	{domain.SeverityMedium, []string{"deposit", "withdraw", "swap", "stake"}},
	{domain.SeverityLow, []string{"claim", "view", "get"}},
}

// SeverityFromLabel derives a severity for TRUST_PROFILE_SEMANTIC and
// ABI_VERIFIED effects by pattern-matching the resolved function label.
// hasTrustProfile controls the floor for the LOW tier: read-only-looking
// labels are only trusted down to LOW when a trust profile backs them,
// otherwise they are floored at MEDIUM (an unverified "getOwner"-looking
// name could just as easily be a disguised mutator).
func SeverityFromLabel(label string, hasTrustProfile bool) domain.Severity {
	lowerLabel := strings.ToLower(label)
	for _, tier := range labelSeverityTiers {
		if lo.SomeBy(tier.patterns, func(p string) bool { return strings.Contains(lowerLabel, p) }) {
			if tier.severity == domain.SeverityLow && !hasTrustProfile {
				return domain.SeverityMedium
			}
			return tier.severity
		}
	}
	return domain.SeverityMedium
}
