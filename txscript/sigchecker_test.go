// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopSignatureChecker(t *testing.T) {
	var c NoopSignatureChecker
	require.False(t, c.CheckSignature(nil, nil, nil, SigHashAll, SignatureVersionBase))
	require.False(t, c.CheckLockTime(0))
	require.False(t, c.CheckSequence(0))
}

func TestBaseSignatureCheckerLockTime(t *testing.T) {
	tests := []struct {
		name       string
		lockTime   int64
		txLockTime uint32
		sequence   uint32
		want       bool
	}{
		{"height vs height satisfied", 100, 200, 0, true},
		{"height vs height not yet", 200, 100, 0, false},
		{"height vs time mismatch", 100, LockTimeThreshold + 100, 0, false},
		{"time vs time satisfied", LockTimeThreshold + 50, LockTimeThreshold + 100, 0, true},
		{"final input disables check", 100, 200, 0xffffffff, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &BaseSignatureChecker{TxLockTime: tc.txLockTime, InputSequence: tc.sequence}
			require.Equal(t, tc.want, c.CheckLockTime(tc.lockTime))
		})
	}
}

func TestBaseSignatureCheckerSequence(t *testing.T) {
	c := &BaseSignatureChecker{TxVersion: 2, InputSequence: 10}
	require.True(t, c.CheckSequence(5))
	require.False(t, c.CheckSequence(20))

	oldTx := &BaseSignatureChecker{TxVersion: 1, InputSequence: 10}
	require.False(t, oldTx.CheckSequence(5))

	disabled := &BaseSignatureChecker{TxVersion: 2, InputSequence: uint32(SequenceLockTimeDisableFlag)}
	require.False(t, disabled.CheckSequence(5))

	typeMismatch := &BaseSignatureChecker{TxVersion: 2, InputSequence: 10}
	require.False(t, typeMismatch.CheckSequence(int64(SequenceLockTimeIsSeconds) | 5))
}

type fakeSigHasher struct {
	hash []byte
	err  error
}

func (f fakeSigHasher) SigHash(_ []byte, _ SigHashType) ([]byte, error) {
	return f.hash, f.err
}

func TestBaseSignatureCheckerRejectsGarbageSignature(t *testing.T) {
	c := &BaseSignatureChecker{Hasher: fakeSigHasher{hash: make([]byte, 32)}}
	require.False(t, c.CheckSignature(nil, nil, nil, SigHashAll, SignatureVersionBase))
	require.False(t, c.CheckSignature([]byte{0x01}, []byte{0x02}, nil, SigHashAll, SignatureVersionBase))
}
