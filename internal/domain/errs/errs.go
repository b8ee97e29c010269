// Package errs holds the sentinel error kinds the decode pipeline can
// surface. Every non-fatal kind is absorbed into the returned analysis
// result rather than propagated as a Go error; callers that need to
// distinguish kinds use errors.Is/errors.As against these sentinels.
package errs

import "errors"

var (
	// ErrInvalidCalldata means the input was not a hex string of at least
	// 4 bytes. This is the only kind that aborts decode outright.
	ErrInvalidCalldata = errors.New("signguard: invalid calldata")

	// ErrBatchParseFailure means a MultiSend payload was structurally
	// malformed. Absorbed into an UNPARSEABLE_BATCH result.
	ErrBatchParseFailure = errors.New("signguard: batch parse failure")

	// ErrProfileValidation means a trust profile document failed shape
	// validation. Decode continues as if no profile were supplied.
	ErrProfileValidation = errors.New("signguard: trust profile validation failed")

	// ErrExternalLookupTimeout means the 4byte.directory lookup exceeded
	// its deadline.
	ErrExternalLookupTimeout = errors.New("signguard: external selector lookup timed out")

	// ErrExternalLookupFailure means the 4byte.directory lookup failed for
	// a reason other than a timeout.
	ErrExternalLookupFailure = errors.New("signguard: external selector lookup failed")

	// ErrABIDecodeFailure means parameter decoding failed against a
	// resolved signature.
	ErrABIDecodeFailure = errors.New("signguard: abi decode failure")

	// ErrUnsafePrompt means the explainer adapter refused to emit a
	// payload because its safety scan found a disallowed hex substring.
	ErrUnsafePrompt = errors.New("signguard: unsafe explainer payload")
)
