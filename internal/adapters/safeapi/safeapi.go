// Package safeapi implements the Safe Transaction Service adapter: it
// fetches a transaction's (to, value, data, operation) quadruple —
// whether still pending owner signatures or already executed — so it can
// be handed to the decode orchestrator before anyone signs it.
package safeapi

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/signguard/signguard/internal/domain"
)

// transactionServiceURLs is the chain-ID-to-service-URL table; Safe's REST
// API is keyed by chain, not by a single fixed host.
var transactionServiceURLs = map[uint64]string{
	1:        "https://safe-transaction-mainnet.safe.global",
	5:        "https://safe-transaction-goerli.safe.global",
	10:       "https://safe-transaction-optimism.safe.global",
	100:      "https://safe-transaction-gnosis-chain.safe.global",
	137:      "https://safe-transaction-polygon.safe.global",
	42161:    "https://safe-transaction-arbitrum.safe.global",
	11155111: "https://safe-transaction-sepolia.safe.global",
	8453:     "https://safe-transaction-base.safe.global",
	56:       "https://safe-transaction-bsc.safe.global",
	43114:    "https://safe-transaction-avalanche.safe.global",
}

// multisigTransaction is the subset of the Transaction Service's
// multisig-transaction shape this adapter actually reads.
type multisigTransaction struct {
	To              string  `json:"to"`
	Value           string  `json:"value"`
	Data            string  `json:"data"`
	Operation       int     `json:"operation"`
	SafeTxHash      string  `json:"safeTxHash"`
	IsExecuted      bool    `json:"isExecuted"`
	TransactionHash *string `json:"transactionHash"`
}

// Client fetches Safe multisig transactions from the Safe Transaction
// Service's REST API.
type Client struct {
	serviceURL string
	httpClient *http.Client
}

// NewClient builds a Client for the given chain ID, defaulting to a 30s
// timeout for Transaction Service calls.
func NewClient(chainID uint64) (*Client, error) {
	serviceURL, ok := transactionServiceURLs[chainID]
	if !ok {
		return nil, fmt.Errorf("safeapi: unsupported chain ID %d", chainID)
	}
	return &Client{
		serviceURL: serviceURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// FetchPendingSafeTransaction retrieves a queued-or-executed Safe
// transaction by its safeTxHash and returns its (to, value, data,
// operation) quadruple, ready for the decode orchestrator — independent
// of whether it has collected enough owner signatures yet.
func (c *Client) FetchPendingSafeTransaction(ctx context.Context, safeTxHash common.Hash) (*domain.SafeExecCall, error) {
	url := fmt.Sprintf("%s/api/v1/multisig-transactions/%s/", c.serviceURL, safeTxHash.Hex())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("safeapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("safeapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("safeapi: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var tx multisigTransaction
	if err := json.NewDecoder(resp.Body).Decode(&tx); err != nil {
		return nil, fmt.Errorf("safeapi: decode response: %w", err)
	}

	return toSafeExecCall(tx)
}

func toSafeExecCall(tx multisigTransaction) (*domain.SafeExecCall, error) {
	value, ok := new(big.Int).SetString(tx.Value, 10)
	if !ok {
		return nil, fmt.Errorf("safeapi: transaction carries a non-numeric value %q", tx.Value)
	}
	data, err := hex.DecodeString(strings.TrimPrefix(tx.Data, "0x"))
	if err != nil {
		return nil, fmt.Errorf("safeapi: decode data: %w", err)
	}

	op := domain.OpCall
	if tx.Operation == 1 {
		op = domain.OpDelegateCall
	}

	return &domain.SafeExecCall{
		To:         tx.To,
		Value:      value,
		Data:       data,
		Operation:  op,
		SafeTxHash: tx.SafeTxHash,
	}, nil
}
