package decode

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"strings"

	"github.com/signguard/signguard/internal/abicodec"
	"github.com/signguard/signguard/internal/classifier"
	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/domain/errs"
	"github.com/signguard/signguard/internal/effect"
	"github.com/signguard/signguard/internal/multisend"
	"github.com/signguard/signguard/internal/registry"
	"github.com/signguard/signguard/internal/trust"
)

// Decoder is the C7 orchestrator. It is constructed once per process (or
// once per CLI invocation) and holds no per-request mutable state.
type Decoder struct {
	ABI      ABIResolver
	External SelectorLookupService
	Logger   *slog.Logger
}

// New builds a Decoder. external may be NopExternalLookup{} to run fully
// offline. Logger defaults to a discarding logger; callers that want the
// orchestrator's absorbed-error logging (external lookup misses, ABI
// decode failures) set Decoder.Logger after construction.
func New(abi ABIResolver, external SelectorLookupService) *Decoder {
	if external == nil {
		external = NopExternalLookup{}
	}
	return &Decoder{
		ABI:      abi,
		External: external,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (d *Decoder) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}

// Run executes the full decode pipeline for one decode request. Calldata
// shorter than a 4-byte selector is rejected with errs.ErrInvalidCalldata,
// the only error Run returns. A profile
// that failed validation (ProfileValidationFailure, §7) is carried in
// req.Profile.LoadError by convention: decode proceeds exactly as though
// no profile had been supplied, but the error survives into the result's
// trust context so a caller can still surface it.
func (d *Decoder) Run(ctx context.Context, req domain.DecodeRequest) (*domain.AnalysisResult, error) {
	if len(req.Calldata) < 4 {
		return nil, errs.ErrInvalidCalldata
	}
	sel := domain.ExtractSelector(req.Calldata)
	result := &domain.AnalysisResult{
		Calldata:       "0x" + hex.EncodeToString(req.Calldata),
		Selector:       sel,
		Source:         domain.SourceUnknown,
		IsDelegatecall: req.Operation == domain.OpDelegateCall,
	}

	var profileErr error
	if req.Profile != nil && req.Profile.LoadError != nil {
		profileErr = req.Profile.LoadError
		req.Profile = nil
	}

	if sel == multisend.Selector {
		res, err := d.runBatch(ctx, req, result)
		if res != nil {
			res.TrustContext = recordProfileError(res.TrustContext, profileErr)
		}
		return res, err
	}

	d.resolveSignature(ctx, req, result)
	d.applyTrustPromotion(req, sel, result)

	attrs, label := d.paramAttributes(sel, result)
	beneficiaryLabel, tokenSymbol := d.resolveBeneficiaryDisplay(req.Profile, attrs.Beneficiary)

	effectType := d.effectTypeFor(sel, result)
	eff := effect.Build(effect.BuildInput{
		EffectType:       effectType,
		Label:            label,
		Attrs:            attrs,
		Source:           result.Source,
		HasTrustProfile:  req.Profile != nil,
		BeneficiaryLabel: beneficiaryLabel,
		TokenSymbol:      tokenSymbol,
	})
	result.Effect = eff

	var trustCtx *domain.TrustContext
	if req.Profile != nil && req.Target != nil {
		c := classifier.Classify(req.Profile, *req.Target, sel, req.Operation)
		trustCtx = &c
	} else if req.Operation == domain.OpDelegateCall {
		c := classifier.Classify(nil, derefOr(req.Target, ""), sel, req.Operation)
		trustCtx = &c
	}

	ApplyOverrides(&result.Effect, trustCtx, req.Operation, result.Source)
	trustCtx = recordProfileError(trustCtx, profileErr)
	result.TrustContext = trustCtx
	if trustCtx != nil {
		result.Warnings = trustCtx.Warnings
	}
	result.HeaderSeverity = classifier.HeaderSeverity(derefCtx(trustCtx), req.Operation)

	return result, nil
}

// recordProfileError attaches a ProfileValidationFailure to ctx, building a
// bare "no profile" trust context when the pipeline never needed one for
// any other reason so the error is never silently dropped.
func recordProfileError(ctx *domain.TrustContext, err error) *domain.TrustContext {
	if err == nil {
		return ctx
	}
	if ctx == nil {
		ctx = &domain.TrustContext{
			ContractClassification: domain.ContractUnknown,
			SelectorClassification: domain.SelectorNoContext,
		}
	}
	ctx.ProfileError = err
	return ctx
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func derefCtx(c *domain.TrustContext) domain.TrustContext {
	if c == nil {
		return domain.TrustContext{}
	}
	return *c
}

// resolveSignature implements steps 4-6: verified registry, local ABI,
// external unverified lookup, in strict precedence.
func (d *Decoder) resolveSignature(ctx context.Context, req domain.DecodeRequest, result *domain.AnalysisResult) {
	sel := result.Selector

	if rec, ok := registry.Lookup(sel); ok {
		sig := rec.Signature
		result.Signature = &sig
		name := rec.Name
		result.FunctionName = &name
		result.Source = domain.SourceVerifiedDB
		d.decodeParamsFromSignature(rec.Signature, rec.ParamNames, req.Calldata, result)
		return
	}

	if req.Target != nil && d.ABI != nil {
		abiPath := ""
		if req.Profile != nil {
			if contract := trust.NewQueries(req.Profile).GetTrustedContract(*req.Target); contract != nil {
				abiPath = contract.ABIPath
			}
		}
		contractABI, err := d.ABI.FindByAddress(req.Chain, *req.Target, abiPath)
		if err == nil && contractABI != nil {
			frag, names := d.ABI.MatchSelector(contractABI, sel)
			if frag != nil {
				types := make([]string, len(frag.Inputs))
				for i, in := range frag.Inputs {
					types[i] = in.Type
				}
				sig := frag.Name + "(" + strings.Join(types, ",") + ")"
				result.Signature = &sig
				name := frag.Name
				result.FunctionName = &name
				result.Source = domain.SourceLocalABI
				d.decodeParamsFromSignature(sig, names, req.Calldata, result)
				return
			}
		}
	}

	if !req.Offline {
		lookup, err := d.External.Lookup(ctx, sel)
		switch {
		case err != nil:
			d.logger().Debug("external selector lookup failed, treating selector as unresolved",
				"selector", sel.String(), "error", err)
		case lookup != nil && lookup.Signature != "":
			sig := lookup.Signature
			result.Signature = &sig
			if fs, perr := abicodec.ParseSignature(sig); perr == nil {
				name := fs.Name
				result.FunctionName = &name
			}
			result.Source = domain.SourceExternalUnverified
			d.decodeParamsFromSignature(sig, nil, req.Calldata, result)
		}
	}
}

// decodeParamsFromSignature implements step 8's ABI-decode leg. A decode
// failure is non-fatal: the signature is cleared
// because it did not describe the calldata that was actually supplied.
func (d *Decoder) decodeParamsFromSignature(sig string, paramNames []string, calldata []byte, result *domain.AnalysisResult) {
	fs, err := abicodec.ParseSignature(sig)
	if err != nil || len(calldata) < 4 {
		return
	}
	params, err := abicodec.DecodeParameters(fs, calldata[4:], paramNames)
	if err != nil {
		d.logger().Warn("abi decode failed against resolved signature, clearing signature",
			"signature", sig, "source", result.Source, "error", err)
		result.Signature = nil
		result.FunctionName = nil
		result.Source = domain.SourceUnknown
		return
	}
	result.Params = params
}

// applyTrustPromotion implements step 7: promoting a trust-profile label
// to a semantic signature source when canInterpretSelector holds and no
// stronger source already resolved the call.
func (d *Decoder) applyTrustPromotion(req domain.DecodeRequest, sel domain.Selector, result *domain.AnalysisResult) {
	if req.Profile == nil || req.Target == nil {
		return
	}
	if result.Source == domain.SourceVerifiedDB || result.Source == domain.SourceLocalABI {
		return
	}
	ctx := classifier.Classify(req.Profile, *req.Target, sel, req.Operation)
	if !ctx.CanInterpretSelector() {
		return
	}
	q := trust.NewQueries(req.Profile)
	label := q.GetSelectorLabel(*req.Target, sel.String())
	if label == "" {
		return
	}

	externalMatchesLabel := result.Source == domain.SourceExternalUnverified &&
		result.FunctionName != nil && strings.EqualFold(*result.FunctionName, label)

	result.Source = domain.SourceTrustProfile
	result.FunctionName = &label
	if !externalMatchesLabel {
		result.Signature = nil
		result.Params = nil
	}
}

// paramAttributes runs the curated registry's parameter analyzer when one
// is registered for this selector and parameters were actually decoded.
func (d *Decoder) paramAttributes(sel domain.Selector, result *domain.AnalysisResult) (domain.ParamAttributes, string) {
	label := ""
	if result.FunctionName != nil {
		label = *result.FunctionName
	}
	rec, ok := registry.Lookup(sel)
	if !ok || rec.Analyzer == nil || result.Params == nil {
		return domain.ParamAttributes{}, label
	}
	return rec.Analyzer(result.Params), label
}

// effectTypeFor resolves the effect-type tag a curated record carries, or
// falls back to the source-derived context-dependent types.
func (d *Decoder) effectTypeFor(sel domain.Selector, result *domain.AnalysisResult) domain.EffectType {
	if rec, ok := registry.Lookup(sel); ok {
		return rec.EffectType
	}
	switch result.Source {
	case domain.SourceTrustProfile:
		return domain.EffectTrustProfileSemantic
	case domain.SourceLocalABI:
		return domain.EffectABIVerified
	default:
		return domain.EffectUnknown
	}
}

func (d *Decoder) resolveBeneficiaryDisplay(profile *domain.TrustProfile, beneficiary *string) (*string, string) {
	if profile == nil || beneficiary == nil {
		return nil, ""
	}
	q := trust.NewQueries(profile)
	label := q.GetAddressLabel(*beneficiary)
	if label == nil {
		return nil, ""
	}
	symbol := ""
	if asset := q.GetTrustedAsset(*beneficiary); asset != nil {
		symbol = asset.Symbol
	}
	return &label.Label, symbol
}
