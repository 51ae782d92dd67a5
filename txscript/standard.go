// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// ScriptClass is an enumeration of the standard script patterns this
// module can recognize. Classification is purely a convenience for
// callers (and for tests/tooling) - the interpreter itself never
// consults ScriptClass, since consensus validity depends only on
// Engine execution.
type ScriptClass byte

// Recognized script classes.
const (
	NonStandardTy ScriptClass = iota
	PubKeyTy
	PubKeyHashTy
	ScriptHashTy
	MultiSigTy
	NullDataTy
)

var scriptClassToName = [...]string{
	NonStandardTy: "nonstandard",
	PubKeyTy:      "pubkey",
	PubKeyHashTy:  "pubkeyhash",
	ScriptHashTy:  "scripthash",
	MultiSigTy:    "multisig",
	NullDataTy:    "nulldata",
}

// String implements fmt.Stringer.
func (t ScriptClass) String() string {
	if int(t) < 0 || int(t) >= len(scriptClassToName) {
		return "invalid"
	}
	return scriptClassToName[t]
}

// isPubKey reports whether pops is <pubkey> OP_CHECKSIG.
func isPubKey(pops []parsedOpcode) bool {
	return len(pops) == 2 &&
		(len(pops[0].data) == 33 || len(pops[0].data) == 65) &&
		pops[1].opcode.value == OP_CHECKSIG
}

// isPubKeyHash reports whether pops is the canonical P2PKH pattern:
// OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG.
func isPubKeyHash(pops []parsedOpcode) bool {
	return len(pops) == 5 &&
		pops[0].opcode.value == OP_DUP &&
		pops[1].opcode.value == OP_HASH160 &&
		pops[2].opcode.value == OP_DATA_20 &&
		len(pops[2].data) == 20 &&
		pops[3].opcode.value == OP_EQUALVERIFY &&
		pops[4].opcode.value == OP_CHECKSIG
}

// isMultiSig reports whether pops is an m-of-n CHECKMULTISIG pattern:
// OP_m <pubkey>... OP_n OP_CHECKMULTISIG, with 1 <= m <= n <= 20.
func isMultiSig(pops []parsedOpcode) bool {
	sLen := len(pops)
	if sLen < 4 {
		return false
	}
	if !isSmallInt(pops[0].opcode.value) {
		return false
	}
	if !isSmallInt(pops[sLen-2].opcode.value) {
		return false
	}
	if pops[sLen-1].opcode.value != OP_CHECKMULTISIG {
		return false
	}

	numKeys := asSmallInt(pops[sLen-2].opcode.value)
	if numKeys != sLen-3 {
		return false
	}
	for _, pop := range pops[1 : sLen-2] {
		if len(pop.data) != 33 && len(pop.data) != 65 {
			return false
		}
	}

	numSigs := asSmallInt(pops[0].opcode.value)
	return numSigs >= 1 && numSigs <= numKeys
}

// isNullData reports whether pops is a provably-unspendable OP_RETURN
// output: OP_RETURN optionally followed by a single data push.
func isNullData(pops []parsedOpcode) bool {
	if len(pops) == 1 {
		return pops[0].opcode.value == OP_RETURN
	}
	return len(pops) == 2 &&
		pops[0].opcode.value == OP_RETURN &&
		pops[1].opcode.value <= OP_PUSHDATA4
}

// isSmallInt reports whether op encodes OP_0 or OP_1..OP_16 directly.
func isSmallInt(op byte) bool {
	return op == OP_0 || (op >= OP_1 && op <= OP_16)
}

// GetScriptClass classifies script by matching it against the
// recognized standard patterns, returning NonStandardTy if none match.
// An unparseable script is always NonStandardTy.
func GetScriptClass(script []byte) ScriptClass {
	pops, err := parseScript(script)
	if err != nil {
		return NonStandardTy
	}

	switch {
	case IsPayToScriptHash(pops):
		return ScriptHashTy
	case isPubKey(pops):
		return PubKeyTy
	case isPubKeyHash(pops):
		return PubKeyHashTy
	case isMultiSig(pops):
		return MultiSigTy
	case isNullData(pops):
		return NullDataTy
	default:
		return NonStandardTy
	}
}

// IsPushOnly reports whether script contains only data-push
// instructions. It is the exported, raw-bytes counterpart of the
// engine's internal isPushOnly(pops) check, for callers classifying
// candidate scriptSigs before ever constructing an Engine.
func IsPushOnly(script []byte) bool {
	pops, err := parseScript(script)
	if err != nil {
		return false
	}
	return isPushOnly(pops)
}

// IsUnspendable reports whether script can never be satisfied by any
// scriptSig, i.e. it is an OP_RETURN output or fails to parse at all.
func IsUnspendable(script []byte) bool {
	pops, err := parseScript(script)
	if err != nil {
		return true
	}
	return len(pops) > 0 && pops[0].opcode.value == OP_RETURN
}

// CalcScriptHash computes the HASH160 a P2SH scriptPubKey would embed
// for redeemScript.
func CalcScriptHash(redeemScript []byte) []byte {
	return calcHash160(redeemScript)
}
