package registry

import (
	"github.com/signguard/signguard/internal/abicodec"
	"github.com/signguard/signguard/internal/domain"
)

// The functions below are the named parameter-analyzer handlers referenced
// by buildCurated's SelectorRecord entries. Each is a plain function value
// registered once at init time — never a closure captured per call.

func analyzeApprove(params []domain.DecodedParam) domain.ParamAttributes {
	attrs := domain.ParamAttributes{Scope: domain.ScopeLimited}
	if len(params) < 2 {
		return attrs
	}
	spender := params[0].Address
	amount := params[1].BigInt
	attrs.Beneficiary = &spender
	attrs.Amount = abicodec.BuildParamAmount(amount)
	if attrs.Amount != nil {
		switch {
		case attrs.Amount.IsZero:
			attrs.Scope = domain.ScopeNone
			attrs.IsRevocation = true
		case abicodec.IsEffectivelyUnlimited(amount):
			attrs.Scope = domain.ScopeUnlimited
		}
	}
	return attrs
}

func analyzeTransfer(params []domain.DecodedParam) domain.ParamAttributes {
	attrs := domain.ParamAttributes{Scope: domain.ScopeLimited, Irreversible: true}
	if len(params) < 2 {
		return attrs
	}
	to := params[0].Address
	attrs.Beneficiary = &to
	attrs.Amount = abicodec.BuildParamAmount(params[1].BigInt)
	return attrs
}

func analyzeTransferFrom(params []domain.DecodedParam) domain.ParamAttributes {
	attrs := domain.ParamAttributes{Scope: domain.ScopeLimited, Irreversible: true}
	if len(params) < 3 {
		return attrs
	}
	to := params[1].Address
	attrs.Beneficiary = &to
	attrs.Amount = abicodec.BuildParamAmount(params[2].BigInt)
	return attrs
}

func analyzeSetApprovalForAll(params []domain.DecodedParam) domain.ParamAttributes {
	attrs := domain.ParamAttributes{Scope: domain.ScopeUnlimited}
	if len(params) < 2 {
		return attrs
	}
	operator := params[0].Address
	attrs.Beneficiary = &operator
	if approved, ok := params[1].Value.(bool); ok {
		attrs.IsRevocation = !approved
		if !approved {
			attrs.Scope = domain.ScopeNone
		}
	}
	return attrs
}

func analyzeTransferOwnership(params []domain.DecodedParam) domain.ParamAttributes {
	attrs := domain.ParamAttributes{Scope: domain.ScopeUnlimited, Irreversible: true}
	if len(params) < 1 {
		return attrs
	}
	newOwner := params[0].Address
	attrs.Beneficiary = &newOwner
	return attrs
}

func analyzeModuleExec(params []domain.DecodedParam) domain.ParamAttributes {
	attrs := domain.ParamAttributes{Scope: domain.ScopeUnlimited, GrantsAutonomousExec: true}
	if len(params) < 4 {
		return attrs
	}
	to := params[0].Address
	attrs.Beneficiary = &to
	if op, ok := params[3].Value.(uint8); ok && op == 1 {
		attrs.IsDelegateCall = true
	}
	attrs.BypassesSignatures = true
	return attrs
}

func analyzePermit(params []domain.DecodedParam) domain.ParamAttributes {
	attrs := domain.ParamAttributes{Scope: domain.ScopeLimited, BypassesSignatures: true}
	if len(params) < 3 {
		return attrs
	}
	spender := params[1].Address
	attrs.Beneficiary = &spender
	attrs.Amount = abicodec.BuildParamAmount(params[2].BigInt)
	if attrs.Amount != nil && abicodec.IsEffectivelyUnlimited(params[2].BigInt) {
		attrs.Scope = domain.ScopeUnlimited
	}
	return attrs
}
