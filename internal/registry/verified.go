// Package registry holds the two C1 lookup tables: the compile-time
// curated selector table (no network access, no fallback) and the
// per-(chain, address) local ABI registry loaded from disk.
package registry

import (
	"sync"

	"github.com/signguard/signguard/internal/domain"
)

// curated is the compile-time verified selector table. Every
// entry here has verified = true implicitly: only hand-curated signatures
// are ever inserted.
var curated = buildCurated()

func rec(selHex string, signature, name string, paramNames []string, effect domain.EffectType, desc string, analyzer domain.ParameterAnalyzer) domain.SelectorRecord {
	var sel domain.Selector
	for i := 0; i < 4; i++ {
		sel[i] = hexByte(selHex[2+2*i : 4+2*i])
	}
	return domain.SelectorRecord{
		Selector:    sel,
		Signature:   signature,
		Name:        name,
		ParamNames:  paramNames,
		EffectType:  effect,
		Description: desc,
		Analyzer:    analyzer,
	}
}

func hexByte(s string) byte {
	hi := hexNibble(s[0])
	lo := hexNibble(s[1])
	return hi<<4 | lo
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func buildCurated() map[domain.Selector]domain.SelectorRecord {
	entries := []domain.SelectorRecord{
		// ERC-20
		rec("0x095ea7b3", "approve(address,uint256)", "approve",
			[]string{"spender", "amount"}, domain.EffectPermissionGrant,
			"Grants an ERC-20 spending allowance.", analyzeApprove),
		rec("0xa9059cbb", "transfer(address,uint256)", "transfer",
			[]string{"to", "amount"}, domain.EffectAssetTransfer,
			"Direct ERC-20 transfer out of the caller's balance.", analyzeTransfer),
		rec("0x23b872dd", "transferFrom(address,address,uint256)", "transferFrom",
			[]string{"from", "to", "amount"}, domain.EffectAssetTransfer,
			"ERC-20 transfer drawing down an existing allowance.", analyzeTransferFrom),

		// ERC-721 / ERC-1155
		rec("0xa22cb465", "setApprovalForAll(address,bool)", "setApprovalForAll",
			[]string{"operator", "approved"}, domain.EffectPermissionGrant,
			"Grants or revokes blanket operator approval over all NFTs.", analyzeSetApprovalForAll),
		rec("0x42842e0e", "safeTransferFrom(address,address,uint256)", "safeTransferFrom",
			[]string{"from", "to", "tokenId"}, domain.EffectAssetTransfer,
			"ERC-721 safe transfer (3-arg form).", nil),
		rec("0xb88d4fde", "safeTransferFrom(address,address,uint256,bytes)", "safeTransferFrom",
			[]string{"from", "to", "tokenId", "data"}, domain.EffectAssetTransfer,
			"ERC-721 safe transfer with receiver calldata.", nil),
		rec("0xf242432a", "safeTransferFrom(address,address,uint256,uint256,bytes)", "safeTransferFrom",
			[]string{"from", "to", "id", "amount", "data"}, domain.EffectAssetTransfer,
			"ERC-1155 single transfer.", nil),
		rec("0x2eb2c2d6", "safeBatchTransferFrom(address,address,uint256[],uint256[],bytes)", "safeBatchTransferFrom",
			[]string{"from", "to", "ids", "amounts", "data"}, domain.EffectAssetTransfer,
			"ERC-1155 batch transfer.", nil),

		// Ownership
		rec("0xf2fde38b", "transferOwnership(address)", "transferOwnership",
			[]string{"newOwner"}, domain.EffectControlTransfer,
			"Single-owner (Ownable) control transfer.", analyzeTransferOwnership),
		rec("0x715018a6", "renounceOwnership()", "renounceOwnership",
			nil, domain.EffectControlTransfer,
			"Permanently abandons Ownable control.", nil),

		// Proxy upgrade
		rec("0x3659cfe6", "upgradeTo(address)", "upgradeTo",
			[]string{"newImplementation"}, domain.EffectUpgradeAuthority,
			"UUPS/Transparent proxy implementation swap.", nil),
		rec("0x4f1ef286", "upgradeToAndCall(address,bytes)", "upgradeToAndCall",
			[]string{"newImplementation", "data"}, domain.EffectUpgradeAuthority,
			"Proxy implementation swap plus an initializer call.", nil),

		// Multicall / aggregate
		rec("0xac9650d8", "multicall(bytes[])", "multicall",
			[]string{"data"}, domain.EffectBatchOperation,
			"Generic multicall dispatching a list of encoded calls.", nil),
		rec("0x5ae401dc", "multicall(uint256,bytes[])", "multicall",
			[]string{"deadline", "data"}, domain.EffectBatchOperation,
			"Deadline-gated multicall (Uniswap-style router pattern).", nil),
		rec("0x252dba42", "aggregate((address,bytes)[])", "aggregate",
			[]string{"calls"}, domain.EffectBatchOperation,
			"Multicall-style aggregate of (target, calldata) pairs.", nil),

		// Safe admin
		rec("0x610b5925", "enableModule(address)", "enableModule",
			[]string{"module"}, domain.EffectSafeModuleChange,
			"Enables a Safe module, granting it execTransactionFromModule rights.", nil),
		rec("0xe009cfde", "disableModule(address,address)", "disableModule",
			[]string{"prevModule", "module"}, domain.EffectSafeModuleChange,
			"Disables a previously enabled Safe module.", nil),
		rec("0xf08a0323", "setFallbackHandler(address)", "setFallbackHandler",
			[]string{"handler"}, domain.EffectSafeFallbackChange,
			"Changes the Safe's fallback handler contract.", nil),
		rec("0xe19a9dd9", "setGuard(address)", "setGuard",
			[]string{"guard"}, domain.EffectSafeGuardChange,
			"Installs or removes a Safe transaction guard.", nil),
		rec("0x0d582f13", "addOwnerWithThreshold(address,uint256)", "addOwnerWithThreshold",
			[]string{"owner", "threshold"}, domain.EffectSafeOwnerChange,
			"Adds a Safe owner and sets the new signing threshold.", nil),
		rec("0xf8dc5dd9", "removeOwner(address,address,uint256)", "removeOwner",
			[]string{"prevOwner", "owner", "threshold"}, domain.EffectSafeOwnerChange,
			"Removes a Safe owner and sets the new signing threshold.", nil),
		rec("0xe318b52b", "swapOwner(address,address,address)", "swapOwner",
			[]string{"prevOwner", "oldOwner", "newOwner"}, domain.EffectSafeOwnerChange,
			"Replaces one Safe owner with another.", nil),
		rec("0x694e80c3", "changeThreshold(uint256)", "changeThreshold",
			[]string{"threshold"}, domain.EffectSafeThresholdChange,
			"Changes the Safe's signing threshold.", nil),
		rec("0x468721a7", "execTransactionFromModule(address,uint256,bytes,uint8)", "execTransactionFromModule",
			[]string{"to", "value", "data", "operation"}, domain.EffectSafeModuleExecution,
			"A Safe module executing a call on the Safe's behalf without owner signatures.", analyzeModuleExec),
		rec("0x5229073f", "execTransactionFromModuleReturnData(address,uint256,bytes,uint8)", "execTransactionFromModuleReturnData",
			[]string{"to", "value", "data", "operation"}, domain.EffectSafeModuleExecution,
			"Same as execTransactionFromModule, returning call output.", analyzeModuleExec),
		rec("0x6a761202",
			"execTransaction(address,uint256,bytes,uint8,uint256,uint256,uint256,address,address,bytes)",
			"execTransaction",
			[]string{"to", "value", "data", "operation", "safeTxGas", "baseGas", "gasPrice", "gasToken", "refundReceiver", "signatures"},
			domain.EffectSafeExecution,
			"A fully-signed Safe transaction being submitted for execution.", nil),

		// EIP-2612
		rec("0xd505accf", "permit(address,address,uint256,uint256,uint8,bytes32,bytes32)", "permit",
			[]string{"owner", "spender", "value", "deadline", "v", "r", "s"}, domain.EffectPermissionGrant,
			"Off-chain-signed ERC-20 allowance grant (EIP-2612).", analyzePermit),

		// Uniswap V2 router
		rec("0x38ed1739", "swapExactTokensForTokens(uint256,uint256,address[],address,uint256)", "swapExactTokensForTokens",
			[]string{"amountIn", "amountOutMin", "path", "to", "deadline"}, domain.EffectAssetTransfer,
			"Uniswap V2 exact-input token swap.", nil),
		rec("0x8803dbee", "swapTokensForExactTokens(uint256,uint256,address[],address,uint256)", "swapTokensForExactTokens",
			[]string{"amountOut", "amountInMax", "path", "to", "deadline"}, domain.EffectAssetTransfer,
			"Uniswap V2 exact-output token swap.", nil),
		rec("0x7ff36ab5", "swapExactETHForTokens(uint256,address[],address,uint256)", "swapExactETHForTokens",
			[]string{"amountOutMin", "path", "to", "deadline"}, domain.EffectAssetTransfer,
			"Uniswap V2 ETH-to-token swap.", nil),
		rec("0xf305d719", "addLiquidityETH(address,uint256,uint256,uint256,address,uint256)", "addLiquidityETH",
			[]string{"token", "amountTokenDesired", "amountTokenMin", "amountETHMin", "to", "deadline"}, domain.EffectAssetTransfer,
			"Uniswap V2 ETH/token liquidity provisioning.", nil),
		rec("0xbaa2abde", "removeLiquidity(address,address,uint256,uint256,uint256,address,uint256)", "removeLiquidity",
			[]string{"tokenA", "tokenB", "liquidity", "amountAMin", "amountBMin", "to", "deadline"}, domain.EffectAssetTransfer,
			"Uniswap V2 liquidity withdrawal.", nil),

		// WETH
		rec("0xd0e30db0", "deposit()", "deposit",
			nil, domain.EffectAssetTransfer,
			"Wraps ETH into WETH.", nil),
		rec("0x2e1a7d4d", "withdraw(uint256)", "withdraw",
			[]string{"amount"}, domain.EffectAssetTransfer,
			"Unwraps WETH back into ETH.", nil),
	}

	m := make(map[domain.Selector]domain.SelectorRecord, len(entries))
	for _, e := range entries {
		m[e.Selector] = e
	}
	return m
}

// verifiedMu guards nothing mutable today — curated is built once at
// package init and never written to again; the static verified-selector
// table is immutable after initialization.
var verifiedMu sync.RWMutex

// Lookup returns the curated record for a selector, if any. The lookup is
// case-insensitive by construction: selectors are compared as raw bytes,
// never as hex strings.
func Lookup(sel domain.Selector) (domain.SelectorRecord, bool) {
	verifiedMu.RLock()
	defer verifiedMu.RUnlock()
	rec, ok := curated[sel]
	return rec, ok
}
