package abicodec

import (
	"fmt"
	"math/big"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/domain/errs"
)

// buildArguments converts a signature's flat type-string list into
// go-ethereum's abi.Arguments, the shape its Unpack leg requires. Argument
// names are positional placeholders ("arg0", "arg1", …) because signature
// strings alone never carry parameter names — callers that have real names
// (from a curated SelectorRecord or a contract ABI) pass them to
// DecodeParameters as paramNames.
func buildArguments(types []string) (gethabi.Arguments, error) {
	args := make(gethabi.Arguments, 0, len(types))
	for i, t := range types {
		abiType, err := gethabi.NewType(t, "", nil)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d type %q: %v", errs.ErrABIDecodeFailure, i, t, err)
		}
		args = append(args, gethabi.Argument{Name: fmt.Sprintf("arg%d", i), Type: abiType})
	}
	return args, nil
}

// DecodeParameters unpacks the tail of calldata (everything after the
// 4-byte selector) against a parsed function signature, producing
// presentation-ready DecodedParam values. paramNames, if non-nil, supplies
// display names positionally; it may be shorter than fs.Types or nil.
func DecodeParameters(fs *domain.FunctionSignature, tail []byte, paramNames []string) ([]domain.DecodedParam, error) {
	args, err := buildArguments(fs.Types)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, nil
	}
	values, err := args.Unpack(tail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrABIDecodeFailure, err)
	}

	out := make([]domain.DecodedParam, len(values))
	for i, v := range values {
		name := fs.Types[i]
		if i < len(paramNames) && paramNames[i] != "" {
			name = paramNames[i]
		}
		out[i] = toDecodedParam(name, fs.Types[i], v)
	}
	return out, nil
}

// toDecodedParam classifies a go-ethereum unpacked value into the
// presentation-friendly DecodedParam shape, populating the BigInt/Address/
// RawBytes side channels sentinel checks and formatting operate on.
func toDecodedParam(name, typ string, v any) domain.DecodedParam {
	p := domain.DecodedParam{Name: name, Type: typ, Value: v}
	switch val := v.(type) {
	case *big.Int:
		p.BigInt = val
	case common.Address:
		p.Address = normalizeAddress(val.Hex())
	case [32]byte:
		p.RawBytes = val[:]
	case []byte:
		p.RawBytes = val
	}
	return p
}

func normalizeAddress(hexAddr string) string {
	b := []byte(hexAddr)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
