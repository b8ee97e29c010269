// Package multisend parses and re-encodes Gnosis Safe MultiSend /
// MultiSendCallOnly packed batch payloads (C5).
package multisend

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/signguard/signguard/internal/domain"
)

// Selector is the outer multiSend(bytes) selector.
var Selector = domain.Selector{0x8d, 0x80, 0xff, 0x0a}

// DeploymentKind distinguishes the two canonical MultiSend contract
// families: full MultiSend permits DELEGATECALL sub-calls, CallOnly does
// not.
type DeploymentKind int

const (
	KindFullMultiSend DeploymentKind = iota
	KindCallOnly
)

// knownDeployments is the canonical address → kind table. It is built by
// addDeployment calls below rather than a single map literal so that the
// one address known to collide between buckets can be recorded with its
// collision explicitly, instead of silently overwriting one assignment
// with the other.
var (
	knownDeployments  = map[string]DeploymentKind{}
	ambiguousAddress  string
	ambiguousRecorded bool
)

func addDeployment(addr string, kind DeploymentKind) {
	addr = strings.ToLower(addr)
	if existing, ok := knownDeployments[addr]; ok && existing != kind {
		// Open question resolution: the known-address set lists this
		// address under both buckets. Full-MultiSend takes precedence;
		// the collision is flagged at load time rather than guessed at
		// silently.
		ambiguousAddress = addr
		ambiguousRecorded = true
		knownDeployments[addr] = KindFullMultiSend
		return
	}
	knownDeployments[addr] = kind
}

func init() {
	addDeployment("0x8d29be29923b68abfdd21e541b9374737b49cdad", KindFullMultiSend)    // v1.1.1
	addDeployment("0x998739bfdaadde7c933b942a68053933098f9eda", KindFullMultiSend)    // v1.3.0 canonical
	addDeployment("0x40a2accbd92bca938b02010e17a5b8929b49130d", KindFullMultiSend)    // v1.1.1 eip155, collides below
	addDeployment("0xa238cbeb142c10ef7ad8442c6d1f9e89e07e7761", KindCallOnly)         // v1.3.0 CallOnly
	addDeployment("0x40a2accbd92bca938b02010e17a5b8929b49130d", KindCallOnly)         // v1.1.1 eip155 CallOnly — the collision
}

// AmbiguousAddress reports the one known address listed under both
// deployment buckets, and whether it was found (it always is, given the
// init-time table above; exposed as a function rather than a package
// variable so callers go through a documented accessor).
func AmbiguousAddress() (addr string, found bool) {
	return ambiguousAddress, ambiguousRecorded
}

// DeploymentKindFor reports the known kind of a MultiSend-family address,
// if any.
func DeploymentKindFor(addr string) (DeploymentKind, bool) {
	kind, ok := knownDeployments[strings.ToLower(addr)]
	return kind, ok
}

// ParseResult is the outcome of Parse: either a well-formed list of
// sub-calls, or a structural failure rendered into domain.BatchInfo's
// UNPARSEABLE_BATCH shape by the caller.
type ParseResult struct {
	SubCalls []domain.SubCall
	Err      error
}

// Parse decodes the tail of a multiSend(bytes) call — everything after the
// 4-byte selector — into its packed sub-transactions. outerKind identifies
// which MultiSend family the outer call target resolved to, if known;
// KindCallOnly outer targets reject any DELEGATECALL sub-call.
func Parse(tail []byte, outerKind *DeploymentKind) ParseResult {
	if len(tail) < 64 {
		return ParseResult{Err: fmt.Errorf("multiSend payload too short for offset+length header")}
	}
	offset := new(big.Int).SetBytes(tail[:32])
	if offset.Cmp(big.NewInt(32)) != 0 {
		return ParseResult{Err: fmt.Errorf("multiSend bytes offset must be 32, got %s", offset.String())}
	}
	length := new(big.Int).SetBytes(tail[32:64])
	if !length.IsUint64() {
		return ParseResult{Err: fmt.Errorf("multiSend declared length overflows uint64")}
	}
	l := length.Uint64()
	packed := tail[64:]
	if uint64(len(packed)) < l {
		return ParseResult{Err: fmt.Errorf("multiSend declared length %d exceeds remaining %d bytes", l, len(packed))}
	}
	packed = packed[:l]

	var calls []domain.SubCall
	pos := uint64(0)
	for pos < l {
		if l-pos < 1+20+32+32 {
			return ParseResult{Err: fmt.Errorf("truncated multiSend record at offset %d", pos)}
		}
		opByte := packed[pos]
		var op domain.Operation
		switch opByte {
		case 0:
			op = domain.OpCall
		case 1:
			op = domain.OpDelegateCall
		default:
			return ParseResult{Err: fmt.Errorf("multiSend record at offset %d has invalid operation byte %d", pos, opByte)}
		}
		pos++

		to := fmt.Sprintf("0x%x", packed[pos:pos+20])
		pos += 20

		value := new(big.Int).SetBytes(packed[pos : pos+32])
		pos += 32

		dataLen := new(big.Int).SetBytes(packed[pos : pos+32])
		pos += 32
		if !dataLen.IsUint64() || l-pos < dataLen.Uint64() {
			return ParseResult{Err: fmt.Errorf("multiSend record at offset %d declares dataLength exceeding remaining bytes", pos)}
		}
		dl := dataLen.Uint64()

		data := make([]byte, dl)
		copy(data, packed[pos:pos+dl])
		pos += dl

		if outerKind != nil && *outerKind == KindCallOnly && op == domain.OpDelegateCall {
			return ParseResult{Err: fmt.Errorf("multiSend record at offset %d is DELEGATECALL but outer target is MultiSendCallOnly", pos)}
		}

		calls = append(calls, domain.SubCall{
			Operation: op,
			To:        strings.ToLower(to),
			Value:     value,
			Data:      data,
		})
	}

	return ParseResult{SubCalls: calls}
}

// Encode re-packs sub-calls into a multiSend(bytes) tail, the inverse of
// Parse. Used by the round-trip test and by any future authoring surface.
func Encode(calls []domain.SubCall) []byte {
	var packed []byte
	for _, c := range calls {
		opByte := byte(0)
		if c.Operation == domain.OpDelegateCall {
			opByte = 1
		}
		packed = append(packed, opByte)

		toBytes := addressBytes(c.To)
		packed = append(packed, toBytes[:]...)

		value := c.Value
		if value == nil {
			value = big.NewInt(0)
		}
		packed = append(packed, leftPad32(value.Bytes())...)

		dataLen := big.NewInt(int64(len(c.Data)))
		packed = append(packed, leftPad32(dataLen.Bytes())...)
		packed = append(packed, c.Data...)
	}

	out := make([]byte, 0, 64+len(packed))
	out = append(out, leftPad32(big.NewInt(32).Bytes())...)
	out = append(out, leftPad32(big.NewInt(int64(len(packed))).Bytes())...)
	out = append(out, packed...)
	return out
}

func leftPad32(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func addressBytes(addr string) [20]byte {
	var out [20]byte
	trimmed := strings.TrimPrefix(addr, "0x")
	for i := 0; i < 20 && 2*i+1 < len(trimmed); i++ {
		out[i] = hexByte(trimmed[2*i : 2*i+2])
	}
	return out
}

func hexByte(s string) byte {
	var v byte
	for i := 0; i < len(s); i++ {
		v <<= 4
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			v |= c - '0'
		case c >= 'a' && c <= 'f':
			v |= c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v |= c - 'A' + 10
		}
	}
	return v
}
