// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SigHashType represents the trailing sighash-type byte of a
// signature, naming which parts of the transaction it commits to.
type SigHashType byte

// Sighash types as defined by the reference implementation.
const (
	SigHashOld          SigHashType = 0x0
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80
)

// halfOrder is half the secp256k1 base-point order, used to enforce
// BIP 62's low-S rule.
var halfOrder = new(big.Int).Rsh(secp256k1.S256().N, 1)

// checkDERSignature validates sig as a strict DER-encoded ECDSA
// signature, with its trailing sighash-type byte still attached, as
// required by BIP 66: outer 0x30 sequence tag, a total-length byte
// matching the remaining DER bytes (i.e. excluding the hash-type
// byte), and two 0x02-tagged integer components with no unnecessary
// padding or negative values. It returns the ErrorCode of the first
// violated check, mirroring the per-rule errors a strict DER parser
// reports instead of collapsing every shape failure into one code.
func checkDERSignature(sig []byte) error {
	// Minimum length is when both R and S are 1 byte each, plus the
	// trailing sighash-type byte:
	// 0x30 <len> 0x02 0x01 <R> 0x02 0x01 <S> <hashType>
	if len(sig) < 9 {
		return scriptError(ErrSigTooShort, "signature too short")
	}

	// Maximum length is when both R and S are 33 bytes each (a leading
	// null pad byte may be required to keep the value non-negative),
	// plus the trailing sighash-type byte:
	// 0x30 <len> 0x02 0x21 <R> 0x02 0x21 <S> <hashType>
	if len(sig) > 73 {
		return scriptError(ErrSigTooLong, "signature too long")
	}

	if sig[0] != 0x30 {
		return scriptError(ErrSigInvalidSeqID,
			"signature does not start with an ASN.1 sequence id")
	}
	// sig[1] counts the DER payload only, so it is the total length
	// minus the 0x30/length header (2 bytes) and the trailing
	// hash-type byte (1 byte).
	if int(sig[1]) != len(sig)-3 {
		return scriptError(ErrSigInvalidDataLen,
			"signature length does not match its declared length")
	}

	if sig[2] != 0x02 {
		return scriptError(ErrSigInvalidRIntID, "R is not an ASN.1 integer")
	}
	rLen := int(sig[3])
	if rLen == 0 {
		return scriptError(ErrSigZeroRLen, "R length is zero")
	}
	if rLen+5 >= len(sig) {
		return scriptError(ErrSigMissingSLen,
			"signature is missing the length of S")
	}
	if sig[4]&0x80 != 0 {
		return scriptError(ErrSigNegativeR, "R value is negative")
	}
	if rLen > 1 && sig[4] == 0x00 && sig[5]&0x80 == 0 {
		return scriptError(ErrSigTooMuchRPadding,
			"R value has unnecessary leading padding")
	}

	if sig[rLen+4] != 0x02 {
		return scriptError(ErrSigInvalidSIntID, "S is not an ASN.1 integer")
	}
	sLen := int(sig[rLen+5])
	if sLen == 0 {
		return scriptError(ErrSigZeroSLen, "S length is zero")
	}
	if rLen+sLen+7 != len(sig) {
		return scriptError(ErrSigInvalidSLen,
			"S length does not match the remainder of the signature")
	}
	if sig[rLen+6]&0x80 != 0 {
		return scriptError(ErrSigNegativeS, "S value is negative")
	}
	if sLen > 1 && sig[rLen+6] == 0x00 && sig[rLen+7]&0x80 == 0 {
		return scriptError(ErrSigTooMuchSPadding,
			"S value has unnecessary leading padding")
	}

	return nil
}

// isValidSignatureEncoding reports whether sig passes checkDERSignature,
// discarding which specific rule would have failed.
func isValidSignatureEncoding(sig []byte) bool {
	return checkDERSignature(sig) == nil
}

// isLowDERSignature reports whether sig is strict-DER AND its S value
// is at most half the curve order (BIP 62).
func isLowDERSignature(sig []byte) bool {
	if !isValidSignatureEncoding(sig) {
		return false
	}

	rLen := int(sig[3])
	sLen := int(sig[rLen+5])
	sValue := new(big.Int).SetBytes(sig[rLen+6 : rLen+6+sLen])
	return sValue.Cmp(halfOrder) <= 0
}

// isDefinedHashTypeSignature reports whether the trailing sighash-type
// byte of sig names a recognized type.
func isDefinedHashTypeSignature(sig []byte) bool {
	if len(sig) == 0 {
		return false
	}
	sigHashType := SigHashType(sig[len(sig)-1]) &^ SigHashAnyOneCanPay
	return sigHashType >= SigHashAll && sigHashType <= SigHashSingle
}

// checkSignatureEncoding applies the encoding checks that flags
// enable, in order, and returns the first failure. An empty signature
// is always accepted here: the "known invalid sig" shortcut used by
// CHECKMULTISIG implementations to probe extra pubkeys without paying
// for a full signature check.
func checkSignatureEncoding(sig []byte, flags ScriptFlags) error {
	if len(sig) == 0 {
		return nil
	}

	if flags.hasAny(ScriptVerifyDERSignatures, ScriptVerifyLowS, ScriptVerifyStrictEncoding) {
		if err := checkDERSignature(sig); err != nil {
			return err
		}
	}

	if flags.hasFlag(ScriptVerifyLowS) {
		if !isLowDERSignature(sig) {
			return scriptError(ErrSigHighS,
				"signature is not canonical due to unnecessarily high S value")
		}
	}

	if flags.hasFlag(ScriptVerifyStrictEncoding) {
		if !isDefinedHashTypeSignature(sig) {
			return scriptError(ErrSigInvalidSigHashType,
				fmt.Sprintf("invalid hash type 0x%x", sig[len(sig)-1]))
		}
	}

	return nil
}

// checkPubKeyEncoding enforces the compressed/uncompressed canonical
// public key shapes under ScriptVerifyStrictEncoding.
func checkPubKeyEncoding(pubKey []byte, flags ScriptFlags) error {
	if !flags.hasFlag(ScriptVerifyStrictEncoding) {
		return nil
	}

	if len(pubKey) == 33 && (pubKey[0] == 0x02 || pubKey[0] == 0x03) {
		return nil
	}
	if len(pubKey) == 65 && pubKey[0] == 0x04 {
		return nil
	}

	return scriptError(ErrPubKeyType, "unsupported public key type")
}
