package effect

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/signguard/signguard/internal/domain"
)

// genericNounFor is the fallback noun the human summary uses when an
// address carries no trust-registry label — raw addresses are never
// printed outside technical sections.
func genericNounFor(effectType domain.EffectType) string {
	switch effectType {
	case domain.EffectPermissionGrant, domain.EffectPermissionRevoke:
		return "a spender address"
	case domain.EffectAssetTransfer:
		return "a recipient address"
	case domain.EffectSafeModuleChange, domain.EffectSafeModuleExecution:
		return "a module"
	default:
		return "a target contract"
	}
}

func beneficiaryPhrase(effectType domain.EffectType, label *string) string {
	if label != nil && *label != "" {
		return *label
	}
	return genericNounFor(effectType)
}

func tokenPhrase(symbol string) string {
	if symbol == "" {
		return "tokens"
	}
	return symbol
}

// BuildNarrative produces the ordered consequence/warning/mitigation
// sentences for an effect. It never embeds a raw beneficiary address —
// only a resolved label or a generic noun — per the address-display rule.
func BuildNarrative(effectType domain.EffectType, attrs domain.ParamAttributes, label string, beneficiaryLabel *string, tokenSymbol string) (consequences, warnings, mitigations []string) {
	who := beneficiaryPhrase(effectType, beneficiaryLabel)
	token := tokenPhrase(tokenSymbol)

	switch effectType {
	case domain.EffectPermissionGrant:
		amount := "an amount of"
		if attrs.Amount != nil {
			amount = attrs.Amount.Raw
		}
		if attrs.Scope == domain.ScopeUnlimited {
			consequences = append(consequences, fmt.Sprintf("Grants %s an UNLIMITED allowance over your %s", who, token))
			warnings = append(warnings, "This approval has no spending cap")
			mitigations = append(mitigations, "Consider approving only the exact amount needed")
		} else {
			consequences = append(consequences, fmt.Sprintf("Grants %s an allowance of %s %s", who, amount, token))
		}
	case domain.EffectPermissionRevoke:
		consequences = append(consequences, fmt.Sprintf("Revokes %s's allowance over your %s", who, token))
	case domain.EffectAssetTransfer:
		consequences = append(consequences, fmt.Sprintf("Sends %s to %s immediately and irreversibly", token, who))
	case domain.EffectControlTransfer:
		consequences = append(consequences, fmt.Sprintf("Transfers contract ownership to %s permanently", who))
		warnings = append(warnings, "Ownership transfers cannot be undone by this wallet alone")
	case domain.EffectUpgradeAuthority:
		consequences = append(consequences, fmt.Sprintf("Replaces the contract's logic with %s's implementation", who))
		warnings = append(warnings, "A malicious implementation can do anything the proxy is permitted to do")
	case domain.EffectDelegatecallExecution:
		consequences = append(consequences, fmt.Sprintf("Executes %s's code with this wallet's own storage and permissions", who))
		warnings = append(warnings, "DELEGATECALL executes external code with YOUR wallet's full permissions")
	case domain.EffectSafeModuleChange:
		consequences = append(consequences, fmt.Sprintf("Grants %s the ability to execute transactions without owner signatures", who))
		warnings = append(warnings, "A malicious module can drain the Safe without further approvals")
	case domain.EffectSafeModuleExecution:
		consequences = append(consequences, fmt.Sprintf("%s is executing a transaction on the Safe's behalf", who))
	case domain.EffectSafeOwnerChange:
		consequences = append(consequences, "Changes the Safe's set of signing owners")
	case domain.EffectSafeThresholdChange:
		consequences = append(consequences, "Changes the number of signatures required to execute transactions")
	case domain.EffectSafeFallbackChange, domain.EffectSafeGuardChange:
		consequences = append(consequences, fmt.Sprintf("Installs %s as the Safe's %s", who, guardOrHandler(effectType)))
	case domain.EffectSafeExecution:
		consequences = append(consequences, "Submits a fully-signed Safe transaction for execution")
	case domain.EffectBatchOperation:
		consequences = append(consequences, "Executes a batch of calls in a single transaction")
	case domain.EffectTrustProfileSemantic, domain.EffectABIVerified:
		if label != "" {
			consequences = append(consequences, fmt.Sprintf("Calls %q on %s", label, who))
		}
	case domain.EffectUnknown:
		warnings = append(warnings, "The function being called could not be identified")
	}

	if attrs.BypassesSignatures && effectType != domain.EffectDelegatecallExecution {
		warnings = lo.Uniq(append(warnings, "This action bypasses the normal multisig signature flow"))
	}

	return consequences, warnings, mitigations
}

func guardOrHandler(effectType domain.EffectType) string {
	if effectType == domain.EffectSafeGuardChange {
		return "transaction guard"
	}
	return "fallback handler"
}
