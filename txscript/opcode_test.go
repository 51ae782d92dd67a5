// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUnparseScriptRoundTrip(t *testing.T) {
	script, err := NewScriptBuilder().
		AddOp(OP_DUP).
		AddOp(OP_HASH160).
		AddData(make([]byte, 20)).
		AddOp(OP_EQUALVERIFY).
		AddOp(OP_CHECKSIG).
		Script()
	require.NoError(t, err)

	pops, err := parseScript(script)
	require.NoError(t, err)
	require.Len(t, pops, 5)

	reserialized, err := unparseScript(pops)
	require.NoError(t, err)
	require.Equal(t, script, reserialized)
}

func TestParseScriptTruncatedPush(t *testing.T) {
	_, err := parseScript([]byte{OP_PUSHDATA1, 10, 1, 2, 3})
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrBadOpcode))
}

func TestCheckMinimalDataPush(t *testing.T) {
	tests := []struct {
		name    string
		op      byte
		data    []byte
		wantErr bool
	}{
		{"OP_0 for empty", OP_0, nil, false},
		{"direct push for empty is non-minimal", OP_DATA_1, nil, true},
		{"OP_5 for value 5", OP_5, []byte{5}, false},
		{"direct push for small int is non-minimal", OP_DATA_1, []byte{5}, true},
		{"OP_1NEGATE for -1", OP_1NEGATE, []byte{0x81}, false},
		{"direct push of 3 bytes", OP_DATA_3, []byte{1, 2, 3}, false},
		{"PUSHDATA1 required above 75 bytes", OP_PUSHDATA1, make([]byte, 76), false},
		{"direct push claimed for 76 bytes is non-minimal", OP_DATA_75, make([]byte, 76), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pop := parsedOpcode{opcode: &opcodeArray[tc.op], data: tc.data}
			err := pop.checkMinimalDataPush()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIsDisabledVsAlwaysIllegal(t *testing.T) {
	disabled := parsedOpcode{opcode: &opcodeArray[OP_CAT]}
	require.True(t, disabled.isDisabled())
	require.False(t, disabled.alwaysIllegal())

	reserved := parsedOpcode{opcode: &opcodeArray[OP_RESERVED]}
	require.False(t, reserved.isDisabled())
	require.True(t, reserved.alwaysIllegal())

	verif := parsedOpcode{opcode: &opcodeArray[OP_VERIF]}
	require.True(t, verif.isDisabled())
}
