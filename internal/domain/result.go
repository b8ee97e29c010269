package domain

// AnalysisResult is the top-level, serializable output of one decode
// operation. A result is either a single-call result (BatchInfo nil)
// or a batch result, in which case Effect/TrustContext describe the
// MultiSend call itself and BatchInfo carries the per-sub-call breakdown.
type AnalysisResult struct {
	Calldata       string // original hex, 0x-prefixed
	Selector       Selector
	Signature      *string
	FunctionName   *string
	Params         []DecodedParam

	Effect         Effect
	TrustContext   *TrustContext // set for a profile plus target, a DELEGATECALL, or a profile that failed validation; nil otherwise
	HeaderSeverity *Severity     // nil when no profile applies and the call is not an unwhitelisted DELEGATECALL

	IsBatch        bool
	BatchInfo      *BatchInfo

	IsDelegatecall bool
	Source         SignatureSource

	// Warnings collects top-level, non-batch warning strings surfaced to
	// the renderer and the prompt builder.
	Warnings []string
}
