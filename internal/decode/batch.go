package decode

import (
	"context"

	"github.com/signguard/signguard/internal/classifier"
	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/multisend"
)

// runBatch parses a multiSend(bytes) call and recurses the orchestrator
// over each sub-call with offline set,
// then aggregating severities and header severity.
func (d *Decoder) runBatch(ctx context.Context, req domain.DecodeRequest, result *domain.AnalysisResult) (*domain.AnalysisResult, error) {
	result.IsBatch = true
	result.Source = domain.SourceVerifiedDB // the outer multiSend selector is the fixed multisend.Selector

	var outerKind *multisend.DeploymentKind
	if req.Target != nil {
		if kind, ok := multisend.DeploymentKindFor(*req.Target); ok {
			outerKind = &kind
		}
	}

	parsed := multisend.Parse(req.Calldata[4:], outerKind)
	if parsed.Err != nil {
		errMsg := parsed.Err.Error()
		result.BatchInfo = &domain.BatchInfo{
			BatchType:   domain.BatchUnparseableBatch,
			Calls:       nil,
			Error:       errMsg,
			RawCalldata: result.Calldata,
		}
		result.Effect = domain.Effect{EffectType: domain.EffectBatchOperation, Severity: domain.SeverityUnknown}
		return result, nil
	}

	subAnalyses := make([]domain.SubCallAnalysis, 0, len(parsed.SubCalls))
	headerInputs := make([]classifier.SubCallHeaderInput, 0, len(parsed.SubCalls))
	counts := map[domain.SubCallSeverityBand]int{}
	overall := domain.SeverityLow

	for _, sub := range parsed.SubCalls {
		var subResult *domain.AnalysisResult
		if len(sub.Data) == 0 {
			// Empty sub-call data is a plain ETH transfer, not an unknown
			// call: severity MEDIUM regardless of
			// what an all-zero selector would otherwise resolve to.
			subResult = &domain.AnalysisResult{
				Calldata: "0x",
				Effect:   domain.Effect{EffectType: domain.EffectAssetTransfer, Severity: domain.SeverityMedium, Permanence: domain.PermanenceImmediateIrreversible},
			}
			if req.Profile != nil {
				c := classifier.Classify(req.Profile, sub.To, domain.Selector{}, sub.Operation)
				subResult.TrustContext = &c
			}
		} else {
			subReq := domain.DecodeRequest{
				Calldata:  subCalldata(sub),
				Target:    strPtr(sub.To),
				Chain:     req.Chain,
				Operation: sub.Operation,
				Profile:   req.Profile,
				Offline:   true,
			}
			subResult, _ = d.Run(ctx, subReq)
		}
		subAnalyses = append(subAnalyses, domain.SubCallAnalysis{SubCall: sub, Analysis: subResult})

		band := domain.SeverityBand(subResult.Effect.Severity)
		counts[band]++
		overall = domain.MaxSeverity(overall, subResult.Effect.Severity)

		if subResult.TrustContext != nil {
			headerInputs = append(headerInputs, classifier.SubCallHeaderInput{Ctx: *subResult.TrustContext, Operation: sub.Operation})
		}
	}

	result.BatchInfo = &domain.BatchInfo{
		BatchType: domain.BatchMultiSend,
		Calls:     subAnalyses,
		Counts:    counts,
	}
	result.Effect = domain.Effect{EffectType: domain.EffectBatchOperation, Severity: overall, Permanence: domain.PermanenceVaries}
	result.HeaderSeverity = classifier.BatchHeaderSeverity(req.Profile != nil, headerInputs)

	return result, nil
}

// subCalldata re-prefixes a sub-call's inner data with its own 4-byte
// selector slot: the sub-call's Data already begins with its own selector
// (it is raw calldata for the target contract), so no transformation is
// needed beyond passing it through — this helper exists to make that
// non-transformation explicit at the call site.
func subCalldata(sub domain.SubCall) []byte {
	if len(sub.Data) == 0 {
		// An empty-data sub-call is a plain ETH transfer; synthesize a
		// zero selector so ExtractSelector has
		// something to read without panicking on a short slice.
		return []byte{0x00, 0x00, 0x00, 0x00}
	}
	if len(sub.Data) < 4 {
		padded := make([]byte, 4)
		copy(padded, sub.Data)
		return padded
	}
	return sub.Data
}

func strPtr(s string) *string { return &s }
