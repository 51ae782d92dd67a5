// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScriptNumRoundTrip(t *testing.T) {
	values := []int64{
		0, 1, -1, 16, -16, 17, -17,
		127, -127, 128, -128, 255, -255,
		32767, -32767, 1 << 31, -(1 << 31),
		maxInt32 - 1, minInt32 + 1,
	}
	for _, v := range values {
		encoded := scriptNum(v).Bytes()
		decoded, err := makeScriptNum(encoded, true, 8)
		require.NoErrorf(t, err, "round trip of %d", v)
		require.EqualValuesf(t, v, decoded, "round trip of %d", v)
	}
}

func TestScriptNumZeroIsEmpty(t *testing.T) {
	require.Empty(t, scriptNum(0).Bytes())

	n, err := makeScriptNum(nil, true, defaultScriptNumLen)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestScriptNumMinimalEncodingRejected(t *testing.T) {
	tests := []struct {
		name string
		v    []byte
	}{
		{"trailing-zero-byte-not-load-bearing", []byte{0x01, 0x00}},
		{"negative-zero", []byte{0x80}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := makeScriptNum(tc.v, true, defaultScriptNumLen)
			require.Error(t, err)
			require.True(t, IsErrorCode(err, ErrMinimalData))
		})
	}

	// The same bytes are accepted when minimality is not required.
	_, err := makeScriptNum([]byte{0x01, 0x00}, false, defaultScriptNumLen)
	require.NoError(t, err)
}

func TestScriptNumTooLong(t *testing.T) {
	_, err := makeScriptNum([]byte{1, 2, 3, 4, 5}, false, defaultScriptNumLen)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrNumberTooBig))

	// A 5-byte encoding is fine under the CLTV/CSV width.
	_, err = makeScriptNum([]byte{1, 2, 3, 4, 5}, false, cltvMaxScriptNumLen)
	require.NoError(t, err)
}

func TestScriptNumInt32Clamps(t *testing.T) {
	require.EqualValues(t, maxInt32, scriptNum(int64(maxInt32)+100).Int32())
	require.EqualValues(t, minInt32, scriptNum(int64(minInt32)-100).Int32())
}
