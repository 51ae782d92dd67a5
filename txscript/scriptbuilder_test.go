// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScriptBuilderSmallInts(t *testing.T) {
	script, err := NewScriptBuilder().AddInt64(0).AddInt64(1).AddInt64(16).AddInt64(-1).Script()
	require.NoError(t, err)
	require.Equal(t, []byte{OP_0, OP_1, OP_16, OP_1NEGATE}, script)
}

func TestScriptBuilderDataPushSizes(t *testing.T) {
	direct, err := NewScriptBuilder().AddData([]byte{1, 2, 3}).Script()
	require.NoError(t, err)
	require.Equal(t, []byte{OP_DATA_3, 1, 2, 3}, direct)

	pushdata1, err := NewScriptBuilder().AddData(make([]byte, 76)).Script()
	require.NoError(t, err)
	require.Equal(t, byte(OP_PUSHDATA1), pushdata1[0])
	require.Equal(t, byte(76), pushdata1[1])
	require.Len(t, pushdata1, 2+76)
}

func TestScriptBuilderRefusesOversizedElement(t *testing.T) {
	_, err := NewScriptBuilder().AddData(make([]byte, MaxScriptElementSize+1)).Script()
	require.Error(t, err)
}

func TestScriptBuilderErrorSticks(t *testing.T) {
	b := NewScriptBuilder()
	b.AddData(make([]byte, MaxScriptElementSize+1))
	b.AddOp(OP_1)
	_, err := b.Script()
	require.Error(t, err)
}
