package domain

import "math/big"

// SafeExecCall is the inner (to, value, data, operation) quadruple of a
// Safe transaction, however it was obtained: decoded out of a mined
// execTransaction call, or read directly off the Safe Transaction
// Service's pending-transaction API. It is the hand-off point between the
// external transaction-fetching adapters (internal/adapters) and the
// decode orchestrator — DecodeRequest is built from it.
type SafeExecCall struct {
	To         string
	Value      *big.Int
	Data       []byte
	Operation  Operation
	SafeTxHash string // populated only when fetched from the Transaction Service
}
