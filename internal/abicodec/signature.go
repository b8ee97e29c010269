// Package abicodec turns a canonical Solidity function signature into its
// 4-byte selector and, given calldata, into typed decoded parameters. The
// signature parser below is hand-written (signatures are a closed, simple
// grammar not worth pulling in a parser-combinator library for); the actual
// head/tail ABI decode is delegated to go-ethereum's accounts/abi package.
package abicodec

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/domain/errs"
)

// ParseSignature splits a canonical "name(t1,t2,(a,b)[])" signature into its
// name and top-level argument types, respecting parenthesis depth so that
// tuple and nested-tuple commas are never mistaken for argument separators.
func ParseSignature(sig string) (*domain.FunctionSignature, error) {
	open := strings.IndexByte(sig, '(')
	if open < 0 || !strings.HasSuffix(sig, ")") {
		return nil, errs.ErrInvalidCalldata
	}
	name := sig[:open]
	body := sig[open+1 : len(sig)-1]

	types := splitTopLevel(body)
	return &domain.FunctionSignature{Name: name, Types: types}, nil
}

// splitTopLevel splits a comma-separated argument-type list on commas that
// are not nested inside parentheses (tuples) or brackets (fixed arrays of
// tuples), returning nil for an empty (zero-argument) body.
func splitTopLevel(body string) []string {
	if body == "" {
		return nil
	}
	var (
		types []string
		depth int
		start int
	)
	for i, r := range body {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				types = append(types, body[start:i])
				start = i + 1
			}
		}
	}
	types = append(types, body[start:])
	return types
}

// CanonicalSignature reassembles a FunctionSignature back into the
// "name(t1,t2)" form Keccak256Selector and the verified registry key on.
func CanonicalSignature(fs *domain.FunctionSignature) string {
	return fs.Name + "(" + strings.Join(fs.Types, ",") + ")"
}

// Keccak256Selector computes the 4-byte selector of a canonical signature
// string, matching the on-chain "bytes4(keccak256(signature))" rule.
func Keccak256Selector(signature string) domain.Selector {
	hash := crypto.Keccak256([]byte(signature))
	var sel domain.Selector
	copy(sel[:], hash[:4])
	return sel
}
