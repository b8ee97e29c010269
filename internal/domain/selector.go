package domain

// EffectType tags the semantic consequence of a decoded call, per the
// effect taxonomy table.
type EffectType string

const (
	EffectPermissionGrant       EffectType = "PERMISSION_GRANT"
	EffectPermissionRevoke      EffectType = "PERMISSION_REVOKE"
	EffectAssetTransfer         EffectType = "ASSET_TRANSFER"
	EffectControlTransfer       EffectType = "CONTROL_TRANSFER"
	EffectUpgradeAuthority      EffectType = "UPGRADE_AUTHORITY"
	EffectExecutionGrant        EffectType = "EXECUTION_GRANT"
	EffectBatchOperation        EffectType = "BATCH_OPERATION"
	EffectSafeExecution         EffectType = "SAFE_EXECUTION"
	EffectSafeModuleChange      EffectType = "SAFE_MODULE_CHANGE"
	EffectSafeModuleExecution   EffectType = "SAFE_MODULE_EXECUTION"
	EffectSafeOwnerChange       EffectType = "SAFE_OWNER_CHANGE"
	EffectSafeThresholdChange   EffectType = "SAFE_THRESHOLD_CHANGE"
	EffectSafeFallbackChange    EffectType = "SAFE_FALLBACK_CHANGE"
	EffectSafeGuardChange       EffectType = "SAFE_GUARD_CHANGE"
	EffectDelegatecallExecution EffectType = "DELEGATECALL_EXECUTION"
	EffectTrustProfileSemantic  EffectType = "TRUST_PROFILE_SEMANTIC"
	EffectABIVerified           EffectType = "ABI_VERIFIED"
	EffectUnknown               EffectType = "UNKNOWN"
)

// SignatureSource tags which cascade tier resolved a selector.
type SignatureSource string

const (
	SourceVerifiedDB        SignatureSource = "VERIFIED_DB"
	SourceLocalABI          SignatureSource = "LOCAL_ABI"
	SourceTrustProfile      SignatureSource = "TRUST_PROFILE"
	SourceExternalUnverified SignatureSource = "EXTERNAL_UNVERIFIED"
	SourceUnknown           SignatureSource = "UNKNOWN"
)

// ParamAttributes is the output of a selector record's parameter analyzer:
// a pure attribute bag derived from decoded parameters. It is a tagged
// struct rather than a closure-per-selector map,
// populated by a registry of named handler functions keyed by selector.
type ParamAttributes struct {
	Scope                  Scope
	Amount                 *ParamAmount
	Beneficiary            *string // lowercased address, nil if none
	IsRevocation           bool
	IsDelegateCall         bool
	BypassesSignatures     bool
	GrantsAutonomousExec   bool
	Irreversible           bool
	TrustedAssetSymbol     string // only ever populated from a trust profile lookup
}

// ParamAmount carries a decoded amount plus whatever scope classification
// the analyzer derived from it (e.g. an ERC-20 approve amount).
type ParamAmount struct {
	Raw         string // decimal string, arbitrary precision
	IsMaxUint256 bool
	IsZero      bool
}

// ParameterAnalyzer maps a selector's decoded parameters to ParamAttributes.
// Implementations are plain functions registered in a map keyed by
// Selector, never closures captured per-instance.
type ParameterAnalyzer func(params []DecodedParam) ParamAttributes

// SelectorRecord is a curated, verified entry in the selector registry
// (C1). Every record's verified flag is implicitly true because only
// curated records are ever inserted into the verified registry.
type SelectorRecord struct {
	Selector    Selector
	Signature   string // canonical "name(types…)"
	Name        string
	ParamNames  []string
	EffectType  EffectType
	Description string
	Analyzer    ParameterAnalyzer // optional, nil if none registered
}
