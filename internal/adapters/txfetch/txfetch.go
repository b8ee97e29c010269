// Package txfetch implements the mined-transaction fetching adapter
// exposed as an external interface: reading a confirmed
// execTransaction call over JSON-RPC and decoding it with the same
// signature table the decode orchestrator uses. It is a real, swappable
// adapter the CLI wires in — the decode orchestrator itself never imports
// it or calls out to a chain.
package txfetch

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/signguard/signguard/internal/abicodec"
	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/registry"
)

// TransactionFetcher is the narrow port the CLI depends on.
type TransactionFetcher interface {
	FetchSafeExecTransaction(ctx context.Context, txHash common.Hash) (*domain.SafeExecCall, error)
}

// MinedFetcher reads a mined transaction's input data over JSON-RPC and
// decodes its execTransaction call using the curated signature table.
type MinedFetcher struct {
	client *ethclient.Client
}

// Dial connects to an Ethereum JSON-RPC endpoint.
func Dial(ctx context.Context, rpcURL string) (*MinedFetcher, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("txfetch: dial %s: %w", rpcURL, err)
	}
	return &MinedFetcher{client: client}, nil
}

// FetchSafeExecTransaction retrieves txHash via eth_getTransactionByHash
// and decodes its input as an execTransaction call.
func (f *MinedFetcher) FetchSafeExecTransaction(ctx context.Context, txHash common.Hash) (*domain.SafeExecCall, error) {
	tx, isPending, err := f.client.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("txfetch: fetch %s: %w", txHash.Hex(), err)
	}
	if isPending {
		return nil, fmt.Errorf("txfetch: %s is still pending, no mined input to decode", txHash.Hex())
	}

	data := tx.Data()
	if len(data) < 4 {
		return nil, fmt.Errorf("txfetch: %s carries no function selector", txHash.Hex())
	}
	rec, ok := registry.Lookup(domain.ExtractSelector(data))
	if !ok || rec.Name != "execTransaction" {
		return nil, fmt.Errorf("txfetch: %s is not a Safe execTransaction call", txHash.Hex())
	}
	fs, err := abicodec.ParseSignature(rec.Signature)
	if err != nil {
		return nil, fmt.Errorf("txfetch: parse %s: %w", rec.Signature, err)
	}
	params, err := abicodec.DecodeParameters(fs, data[4:], rec.ParamNames)
	if err != nil {
		return nil, fmt.Errorf("txfetch: decode %s: %w", txHash.Hex(), err)
	}
	return execCallFromParams(params)
}

// execCallFromParams reads the (to, value, data, operation) quadruple off
// execTransaction's first four decoded parameters, in the order
// registry's curated record declares them.
func execCallFromParams(params []domain.DecodedParam) (*domain.SafeExecCall, error) {
	if len(params) < 4 {
		return nil, fmt.Errorf("txfetch: execTransaction decoded fewer than 4 parameters")
	}
	call := &domain.SafeExecCall{
		To:    params[0].Address,
		Value: params[1].BigInt,
		Data:  params[2].RawBytes,
	}
	if op, ok := params[3].Value.(uint8); ok && op == 1 {
		call.Operation = domain.OpDelegateCall
	}
	return call, nil
}
