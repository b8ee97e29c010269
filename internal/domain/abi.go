package domain

import "math/big"

// FunctionSignature is a parsed "name(t1,t2,(a,b)[],…)" string (C3).
type FunctionSignature struct {
	Name  string
	Types []string
}

// DecodedParam is one decoded function argument, carrying both the typed
// Go value go-ethereum's ABI decoder produced and presentation-friendly
// metadata computed from it (arbitrary-precision sentinel checks, raw
// bytes kept unabridged).
type DecodedParam struct {
	Name  string
	Type  string
	Value any

	// BigInt is populated when Type is an intN/uintN; Cmp-based sentinel
	// checks (MAX_UINT256, "effectively unlimited") are performed against
	// this field, never against a downcast machine integer.
	BigInt *big.Int

	// RawBytes is populated verbatim for bytes/bytesN params; formatting
	// code may abbreviate it for display, but the analysis object always
	// carries the full value.
	RawBytes []byte

	// Address is populated when Type is "address", lowercased.
	Address string
}

// FunctionFragment is one entry of a contract ABI's function list, in the
// standard {type, name, inputs} shape.
type FunctionFragment struct {
	Type   string
	Name   string
	Inputs []ABIInput
}

// ABIInput is one named, typed constructor/function parameter.
type ABIInput struct {
	Name string
	Type string
}

// ContractABI is the per-(chain, address) ABI the registry resolves (C1).
type ContractABI struct {
	ChainID  string
	Address  string // lowercase 0x address
	Raw      []byte // original JSON, kept for go-ethereum's abi.JSON parser
	Fragments []FunctionFragment
}
