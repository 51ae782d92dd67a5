// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetScriptClass(t *testing.T) {
	p2pkh, err := NewScriptBuilder().
		AddOp(OP_DUP).AddOp(OP_HASH160).AddData(make([]byte, 20)).
		AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).Script()
	require.NoError(t, err)
	require.Equal(t, PubKeyHashTy, GetScriptClass(p2pkh))

	p2sh, err := NewScriptBuilder().
		AddOp(OP_HASH160).AddData(make([]byte, 20)).AddOp(OP_EQUAL).Script()
	require.NoError(t, err)
	require.Equal(t, ScriptHashTy, GetScriptClass(p2sh))
	pops, err := parseScript(p2sh)
	require.NoError(t, err)
	require.True(t, IsPayToScriptHash(pops))

	pubkey, err := NewScriptBuilder().
		AddData(make([]byte, 33)).AddOp(OP_CHECKSIG).Script()
	require.NoError(t, err)
	require.Equal(t, PubKeyTy, GetScriptClass(pubkey))

	multisig, err := NewScriptBuilder().
		AddOp(OP_2).AddData(make([]byte, 33)).AddData(make([]byte, 33)).
		AddData(make([]byte, 33)).AddOp(OP_3).AddOp(OP_CHECKMULTISIG).Script()
	require.NoError(t, err)
	require.Equal(t, MultiSigTy, GetScriptClass(multisig))

	nullData, err := NewScriptBuilder().AddOp(OP_RETURN).AddData([]byte("hi")).Script()
	require.NoError(t, err)
	require.Equal(t, NullDataTy, GetScriptClass(nullData))
	require.True(t, IsUnspendable(nullData))

	nonStandard, err := NewScriptBuilder().AddOp(OP_DROP).Script()
	require.NoError(t, err)
	require.Equal(t, NonStandardTy, GetScriptClass(nonStandard))
}

func TestIsPushOnly(t *testing.T) {
	pushOnly, err := NewScriptBuilder().AddData([]byte("a")).AddInt64(3).Script()
	require.NoError(t, err)
	require.True(t, IsPushOnly(pushOnly))

	notPushOnly, err := NewScriptBuilder().AddData([]byte("a")).AddOp(OP_DROP).Script()
	require.NoError(t, err)
	require.False(t, IsPushOnly(notPushOnly))
}

func TestCalcScriptHash(t *testing.T) {
	redeem, err := NewScriptBuilder().AddOp(OP_1).AddOp(OP_CHECKSIG).Script()
	require.NoError(t, err)

	hash := CalcScriptHash(redeem)
	require.Len(t, hash, 20)

	p2sh, err := NewScriptBuilder().AddOp(OP_HASH160).AddData(hash).AddOp(OP_EQUAL).Script()
	require.NoError(t, err)
	require.Equal(t, ScriptHashTy, GetScriptClass(p2sh))
}
