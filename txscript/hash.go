// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha1"
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// calcRipemd160 implements OP_RIPEMD160.
func calcRipemd160(buf []byte) []byte {
	h := ripemd160.New()
	h.Write(buf)
	return h.Sum(nil)
}

// calcSha1 implements OP_SHA1.
func calcSha1(buf []byte) []byte {
	h := sha1.Sum(buf)
	return h[:]
}

// calcSha256 implements OP_SHA256.
func calcSha256(buf []byte) []byte {
	h := sha256.Sum256(buf)
	return h[:]
}

// calcHash160 implements OP_HASH160: RIPEMD160(SHA256(buf)).
func calcHash160(buf []byte) []byte {
	return calcRipemd160(calcSha256(buf))
}

// calcHash256 implements OP_HASH256: SHA256(SHA256(buf)).
func calcHash256(buf []byte) []byte {
	return calcSha256(calcSha256(buf))
}
