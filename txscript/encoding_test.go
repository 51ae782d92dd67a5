// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// derSig builds a minimal strict-DER signature from raw R/S magnitude
// bytes (each already correctly padded by the caller). The result does
// not include the trailing sighash-type byte; callers that exercise
// isValidSignatureEncoding/isLowDERSignature/checkSignatureEncoding
// directly must append one, since those predicates operate on the
// full signature as popped off the stack (engine.go, sigchecker.go).
func derSig(r, s []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte(0x30)
	buf.WriteByte(byte(4 + len(r) + len(s)))
	buf.WriteByte(0x02)
	buf.WriteByte(byte(len(r)))
	buf.Write(r)
	buf.WriteByte(0x02)
	buf.WriteByte(byte(len(s)))
	buf.Write(s)
	return buf.Bytes()
}

// derSigWithHashType appends a trailing sighash-type byte to a DER
// signature, matching the shape checkSig/checkMultiSig actually pass
// to the encoding checks.
func derSigWithHashType(r, s []byte, hashType SigHashType) []byte {
	return append(derSig(r, s), byte(hashType))
}

func TestIsValidSignatureEncoding(t *testing.T) {
	valid := derSigWithHashType([]byte{0x01}, []byte{0x01}, SigHashAll)
	require.True(t, isValidSignatureEncoding(valid))

	tooShort := []byte{0x30, 0x02, 0x02, 0x00}
	require.False(t, isValidSignatureEncoding(tooShort))

	badTag := derSigWithHashType([]byte{0x01}, []byte{0x01}, SigHashAll)
	badTag[0] = 0x31
	require.False(t, isValidSignatureEncoding(badTag))

	negativeR := derSigWithHashType([]byte{0x80}, []byte{0x01}, SigHashAll)
	require.False(t, isValidSignatureEncoding(negativeR))

	paddedR := derSigWithHashType([]byte{0x00, 0x01}, []byte{0x01}, SigHashAll)
	require.False(t, isValidSignatureEncoding(paddedR))

	// Missing the trailing sighash-type byte is just a short DER blob,
	// not a valid signature in the shape the interpreter deals in.
	bareDER := derSig([]byte{0x01}, []byte{0x01})
	require.False(t, isValidSignatureEncoding(bareDER))
}

func TestIsLowDERSignature(t *testing.T) {
	lowS := derSigWithHashType([]byte{0x01}, []byte{0x01}, SigHashAll)
	require.True(t, isLowDERSignature(lowS))

	highSBytes := append([]byte{0x00}, bytes.Repeat([]byte{0xff}, 32)...)
	highS := derSigWithHashType([]byte{0x01}, highSBytes, SigHashAll)
	require.True(t, isValidSignatureEncoding(highS))
	require.False(t, isLowDERSignature(highS))
}

func TestIsDefinedHashTypeSignature(t *testing.T) {
	base := derSig([]byte{0x01}, []byte{0x01})

	withType := func(ht byte) []byte {
		return append(append([]byte{}, base...), ht)
	}

	require.True(t, isDefinedHashTypeSignature(withType(byte(SigHashAll))))
	require.True(t, isDefinedHashTypeSignature(withType(byte(SigHashAll)|byte(SigHashAnyOneCanPay))))
	require.False(t, isDefinedHashTypeSignature(withType(0x00)))
	require.False(t, isDefinedHashTypeSignature(withType(0x04)))
	require.False(t, isDefinedHashTypeSignature(nil))
}

func TestCheckSignatureEncodingEmptyAlwaysOK(t *testing.T) {
	err := checkSignatureEncoding(nil, ScriptVerifyDERSignatures|ScriptVerifyLowS|ScriptVerifyStrictEncoding)
	require.NoError(t, err)
}

func TestCheckSignatureEncodingGatedByFlags(t *testing.T) {
	sig := derSigWithHashType([]byte{0x01}, []byte{0x01}, SigHashAll)

	require.NoError(t, checkSignatureEncoding(sig, ScriptVerifyNone))
	require.NoError(t, checkSignatureEncoding(sig, ScriptVerifyDERSignatures|ScriptVerifyLowS|ScriptVerifyStrictEncoding))

	badType := derSigWithHashType([]byte{0x01}, []byte{0x01}, 0x09)
	err := checkSignatureEncoding(badType, ScriptVerifyStrictEncoding)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrSigInvalidSigHashType))

	// Reaches isLowDERSignature: a strict-DER, defined-hash-type sig
	// with an unnecessarily high S value is rejected only when LowS is
	// requested.
	highSBytes := append([]byte{0x00}, bytes.Repeat([]byte{0xff}, 32)...)
	highS := derSigWithHashType([]byte{0x01}, highSBytes, SigHashAll)
	require.NoError(t, checkSignatureEncoding(highS, ScriptVerifyDERSignatures|ScriptVerifyStrictEncoding))
	err = checkSignatureEncoding(highS, ScriptVerifyLowS)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrSigHighS))
}

func TestCheckPubKeyEncoding(t *testing.T) {
	compressed := make([]byte, 33)
	compressed[0] = 0x02
	require.NoError(t, checkPubKeyEncoding(compressed, ScriptVerifyStrictEncoding))

	uncompressed := make([]byte, 65)
	uncompressed[0] = 0x04
	require.NoError(t, checkPubKeyEncoding(uncompressed, ScriptVerifyStrictEncoding))

	bogus := make([]byte, 10)
	err := checkPubKeyEncoding(bogus, ScriptVerifyStrictEncoding)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrPubKeyType))

	// Without the flag, anything goes.
	require.NoError(t, checkPubKeyEncoding(bogus, ScriptVerifyNone))
}
