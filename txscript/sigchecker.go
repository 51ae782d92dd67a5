// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SignatureVersion distinguishes the legacy pre-segwit signing scheme
// (the only one this interpreter implements) from later versions a
// caller's SignatureChecker might support; the core only ever needs to
// know whether find_and_delete applies.
type SignatureVersion int

// SignatureVersionBase is the original, pre-segwit signature scheme.
// find_and_delete runs against subscripts checked under this version.
const SignatureVersionBase SignatureVersion = 0

// SigHasher computes the signature hash a CHECKSIG/CHECKMULTISIG
// commits to. It is the one piece of "what does this signature
// actually sign" logic the engine delegates entirely to its caller -
// transaction (de)serialization and sighash computation are out of
// this module's scope.
type SigHasher interface {
	SigHash(subScript []byte, hashType SigHashType) ([]byte, error)
}

// SignatureChecker is the capability the engine calls out to for
// every signature-bearing opcode and for the two locktime opcodes. A
// SignatureChecker must be a pure function of its inputs.
type SignatureChecker interface {
	// CheckSignature reports whether sig is pubKey's valid signature
	// over subScript under hashType, at the given signature version.
	CheckSignature(sig, pubKey, subScript []byte, hashType SigHashType, sigVersion SignatureVersion) bool

	// CheckLockTime reports whether the enclosing transaction
	// satisfies an OP_CHECKLOCKTIMEVERIFY argument of lockTime.
	CheckLockTime(lockTime int64) bool

	// CheckSequence reports whether the input being verified
	// satisfies an OP_CHECKSEQUENCEVERIFY argument of sequence.
	CheckSequence(sequence int64) bool
}

// NoopSignatureChecker rejects every signature and every lock-time
// requirement. It is useful for exercising scripts that never reach a
// signature opcode, and as the zero-value SignatureChecker in tests
// that only care about stack-shape/arithmetic opcodes.
type NoopSignatureChecker struct{}

func (NoopSignatureChecker) CheckSignature(_, _, _ []byte, _ SigHashType, _ SignatureVersion) bool {
	return false
}

func (NoopSignatureChecker) CheckLockTime(_ int64) bool { return false }

func (NoopSignatureChecker) CheckSequence(_ int64) bool { return false }

// BaseSignatureChecker implements SignatureChecker against an
// injected SigHasher, the minimal amount of transaction context the
// two locktime opcodes need, and real secp256k1 ECDSA verification.
type BaseSignatureChecker struct {
	Hasher SigHasher

	// TxVersion is the enclosing transaction's version field; CSV is
	// only meaningful for version >= 2 transactions.
	TxVersion int32

	// TxLockTime is the enclosing transaction's nLockTime.
	TxLockTime uint32

	// InputSequence is the nSequence of the input being verified.
	InputSequence uint32
}

// sequenceLockTimeTypeFlag names the bit CheckSequence must mask on
// both sides of the comparison before it is safe to compare, matching
// the BIP 112 reference pseudocode.
const sequenceLockTimeTypeFlag = SequenceLockTimeIsSeconds

// CheckSignature verifies sig (including its trailing sighash-type
// byte) against pubKey over the hash Hasher computes for subScript.
func (c *BaseSignatureChecker) CheckSignature(sig, pubKey, subScript []byte, hashType SigHashType, _ SignatureVersion) bool {
	if len(sig) == 0 {
		return false
	}

	derSig := sig[:len(sig)-1]

	parsedSig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false
	}
	parsedKey, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false
	}

	hash, err := c.Hasher.SigHash(subScript, hashType)
	if err != nil {
		return false
	}

	return parsedSig.Verify(hash, parsedKey)
}

// CheckLockTime implements BIP 65's nLockTime comparison: the
// argument and the transaction's locktime must be the same kind
// (block height or Unix time), the argument must not exceed the
// transaction's locktime, and the input must not already be final.
func (c *BaseSignatureChecker) CheckLockTime(lockTime int64) bool {
	txLockTimeIsTime := int64(c.TxLockTime) >= LockTimeThreshold
	argIsTime := lockTime >= LockTimeThreshold
	if txLockTimeIsTime != argIsTime {
		return false
	}
	if lockTime > int64(c.TxLockTime) {
		return false
	}
	if c.InputSequence == 0xffffffff {
		return false
	}
	return true
}

// CheckSequence implements BIP 112's relative-locktime comparison.
func (c *BaseSignatureChecker) CheckSequence(sequence int64) bool {
	if c.TxVersion < 2 {
		return false
	}
	if c.InputSequence&SequenceLockTimeDisableFlag != 0 {
		return false
	}

	const mask = int64(sequenceLockTimeTypeFlag | SequenceLockTimeMask)
	txSequenceMasked := int64(c.InputSequence) & mask
	sequenceMasked := sequence & mask

	txIsTime := txSequenceMasked&int64(sequenceLockTimeTypeFlag) != 0
	argIsTime := sequenceMasked&int64(sequenceLockTimeTypeFlag) != 0
	if txIsTime != argIsTime {
		return false
	}
	if sequenceMasked > txSequenceMasked {
		return false
	}
	return true
}
