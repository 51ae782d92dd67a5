// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

const (
	maxInt32 = 1<<31 - 1
	minInt32 = -1 << 31

	// defaultScriptNumLen is the maximum number of bytes most opcodes
	// that interpret a stack value as an integer will accept.
	defaultScriptNumLen = 4

	// cltvMaxScriptNumLen is the maximum number of bytes accepted for
	// the locktime argument of OP_CHECKLOCKTIMEVERIFY and
	// OP_CHECKSEQUENCEVERIFY. nLockTime is a uint32, giving a maximum
	// locktime of 2^32-1; a signed 4-byte scriptNum only reaches
	// 2^31-1, so these two opcodes widen the accepted encoding to 5
	// bytes.
	cltvMaxScriptNumLen = 5
)

// scriptNum represents the decoded form of a minimally-encoded,
// little-endian, sign-magnitude byte string as used by the arithmetic
// and locktime opcodes.
//
// Arithmetic opcodes are only permitted to operate on 4-byte-wide
// operands (range [-2^31+1, 2^31-1]), but their *results* may legally
// overflow that range so long as they are never fed back into another
// numeric opcode without first being re-validated through
// makeScriptNum. Representing the decoded value as int64 lets a result
// like 2^31-1 + 2^31-1 survive on the stack (e.g. to be consumed by
// OP_VERIFY, which only cares about truthiness) without the decoder
// ever needing to special-case it.
type scriptNum int64

// checkMinimalDataEncoding returns an error if v is not the shortest
// possible encoding of the number it represents.
func checkMinimalDataEncoding(v []byte) error {
	if len(v) == 0 {
		return nil
	}

	// If the most-significant byte - excluding the sign bit - is zero
	// then the encoding is not minimal. This also rejects the
	// negative-zero encoding [0x80], unless a second-to-last byte with
	// its high bit set makes the trailing zero byte load-bearing (e.g.
	// +255 -> [0xff 0x00], -255 -> [0xff 0x80]).
	if v[len(v)-1]&0x7f == 0 {
		if len(v) == 1 || v[len(v)-2]&0x80 == 0 {
			return scriptError(ErrMinimalData,
				fmt.Sprintf("numeric value encoded as %x is not minimally encoded", v))
		}
	}
	return nil
}

// makeScriptNum interprets v as a minimally little-endian, sign-magnitude
// encoded integer subject to scriptNumLen and, when requireMinimal is
// set, the minimal-encoding rule.
func makeScriptNum(v []byte, requireMinimal bool, scriptNumLen int) (scriptNum, error) {
	if len(v) > scriptNumLen {
		return 0, scriptError(ErrNumberTooBig,
			fmt.Sprintf("numeric value encoded as %x is %d bytes which exceeds the max allowed of %d",
				v, len(v), scriptNumLen))
	}

	if requireMinimal {
		if err := checkMinimalDataEncoding(v); err != nil {
			return 0, err
		}
	}

	if len(v) == 0 {
		return 0, nil
	}

	var result int64
	for i, b := range v {
		result |= int64(b) << uint8(8*i)
	}

	// The MSB of the last byte is the sign bit, not part of the
	// magnitude; mask it out and negate if it was set.
	if v[len(v)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint8(8*(len(v)-1)))
		return scriptNum(-result), nil
	}
	return scriptNum(result), nil
}

// Bytes returns n serialized as a minimally-encoded, little-endian,
// sign-magnitude byte string. Zero encodes as the empty string.
func (n scriptNum) Bytes() []byte {
	if n == 0 {
		return nil
	}

	isNegative := n < 0
	if isNegative {
		n = -n
	}

	result := make([]byte, 0, 9)
	for n > 0 {
		result = append(result, byte(n&0xff))
		n >>= 8
	}

	// If the most significant byte already has its high bit set, an
	// extra byte carrying only the sign is required so the value isn't
	// misread as negative (or vice versa); otherwise the sign can be
	// folded into the existing top byte.
	if result[len(result)-1]&0x80 != 0 {
		extra := byte(0x00)
		if isNegative {
			extra = 0x80
		}
		result = append(result, extra)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// Int32 clamps n to the valid int32 range instead of wrapping, matching
// how Bitcoin Core's CScriptNum::getint behaves for values produced by
// earlier, wider-than-4-byte arithmetic.
func (n scriptNum) Int32() int32 {
	if n > maxInt32 {
		return maxInt32
	}
	if n < minInt32 {
		return minInt32
	}
	return int32(n)
}

// Int64 returns the carried 64-bit integer.
func (n scriptNum) Int64() int64 {
	return int64(n)
}

// fromBool converts b to a scriptNum following the standard
// "true -> 1, false -> 0" rule used everywhere a Num needs to be pushed
// as a boolean.
func fromBool(b bool) scriptNum {
	if b {
		return 1
	}
	return 0
}
