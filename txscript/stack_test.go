// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func dumpStack(t *testing.T, s *stack) {
	t.Helper()
	t.Log(spew.Sdump(s.stk))
}

func TestStackPushPopByteArray(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1, 2, 3})
	s.PushByteArray([]byte{4, 5})
	require.EqualValues(t, 2, s.Depth())

	top, err := s.PopByteArray()
	require.NoError(t, err)
	require.Equal(t, []byte{4, 5}, top)

	bottom, err := s.PopByteArray()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, bottom)

	_, err = s.PopByteArray()
	require.Error(t, err)
}

func TestStackBoolEncoding(t *testing.T) {
	var s stack
	s.PushBool(true)
	s.PushBool(false)

	v, err := s.PopBool()
	require.NoError(t, err)
	require.False(t, v)

	v, err = s.PopBool()
	require.NoError(t, err)
	require.True(t, v)
}

func TestStackNegativeZeroIsFalse(t *testing.T) {
	require.False(t, asBool([]byte{0x80}))
	require.False(t, asBool(nil))
	require.True(t, asBool([]byte{0x01}))
	require.False(t, asBool([]byte{0x00, 0x80}))
}

func TestStackDupNRotNSwapN(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	s.PushByteArray([]byte{3})

	require.NoError(t, s.RotN(1))
	got := getStack(&s)
	require.Equal(t, [][]byte{{2}, {3}, {1}}, got)
	dumpStack(t, &s)

	require.NoError(t, s.SwapN(1))
	got = getStack(&s)
	require.Equal(t, [][]byte{{2}, {1}, {3}}, got)

	require.NoError(t, s.DupN(2))
	got = getStack(&s)
	require.Equal(t, [][]byte{{2}, {1}, {3}, {1}, {3}}, got)
}

func TestStackTuck(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	require.NoError(t, s.Tuck())
	require.Equal(t, [][]byte{{2}, {1}, {2}}, getStack(&s))
}

func TestStackPickRoll(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	s.PushByteArray([]byte{3})

	require.NoError(t, s.PickN(2))
	require.Equal(t, [][]byte{{1}, {2}, {3}, {1}}, getStack(&s))

	require.NoError(t, s.RollN(3))
	require.Equal(t, [][]byte{{2}, {3}, {1}, {1}}, getStack(&s))
}

func TestStackVerifyMinimalDataGatesPopInt(t *testing.T) {
	var s stack
	s.verifyMinimalData = true
	s.PushByteArray([]byte{0x01, 0x00})
	_, err := s.PopInt()
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrMinimalData))

	s.verifyMinimalData = false
	s.PushByteArray([]byte{0x01, 0x00})
	_, err = s.PopInt()
	require.NoError(t, err)
}
