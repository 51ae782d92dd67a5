// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// opcodeInvalid is the handler for bytes with no defined meaning.
// parseScript decodes such a byte as a single-byte opcode; executing it
// inside an executing branch fails here with ErrBadOpcode, while a
// non-executing branch skips it like any other opcode.
func opcodeInvalid(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrBadOpcode,
		fmt.Sprintf("attempt to execute invalid opcode %s", op.opcode.name))
}

// opcodeDisabled is the nominal handler for the always-disabled
// opcodes; executeOpcode intercepts them earlier via isDisabled, so
// this only runs if invoked directly.
func opcodeDisabled(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrDisabledOpcode,
		fmt.Sprintf("attempt to execute disabled opcode %s", op.opcode.name))
}

// opcodeReserved is the nominal handler for the always-illegal
// reserved opcodes; executeOpcode intercepts them earlier, so this
// only runs if invoked directly.
func opcodeReserved(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrReservedOpcode,
		fmt.Sprintf("attempt to execute reserved opcode %s", op.opcode.name))
}

// opcodeNop is OP_NOP and the upgradable-NOP family's handler when
// ScriptVerifyDiscourageUpgradableNops is not set: literally no effect.
func opcodeNop(op *parsedOpcode, vm *Engine) error {
	switch op.opcode.value {
	case OP_NOP1, OP_NOP4, OP_NOP5, OP_NOP6, OP_NOP7, OP_NOP8, OP_NOP9, OP_NOP10:
		if vm.hasFlag(ScriptVerifyDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNops,
				fmt.Sprintf("%s reserved for soft-fork upgrades", op.opcode.name))
		}
	}
	return nil
}

// opcodePushData pushes the instruction's payload (OP_DATA_1..75,
// OP_PUSHDATA1/2/4) or the empty string for OP_0.
func opcodePushData(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushByteArray(op.data)
	return nil
}

// opcodeNegate is OP_1NEGATE: push the encoded integer -1.
func opcodeNegate(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(-1))
	return nil
}

// opcodeNOp16 is OP_1..OP_16: push the encoded small integer the
// opcode names.
func opcodeNOp16(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(asSmallInt(op.opcode.value)))
	return nil
}

// popIfBool pops the data stack and interprets it as a boolean for
// OP_IF/OP_NOTIF.
func popIfBool(vm *Engine) (bool, error) {
	return vm.dstack.PopBool()
}

// opcodeIf implements OP_IF.
func opcodeIf(op *parsedOpcode, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfBool(vm)
		if err != nil {
			return err
		}
		if ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

// opcodeNotIf implements OP_NOTIF.
func opcodeNotIf(op *parsedOpcode, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfBool(vm)
		if err != nil {
			return err
		}
		if !ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

// opcodeElse implements OP_ELSE: invert the top of the conditional
// stack (an OpCondSkip entry, tracking a branch nested inside an
// already-not-executing outer branch, stays skipped).
func opcodeElse(op *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional,
			"encountered OP_ELSE with no matching OP_IF")
	}

	switch vm.condStack[len(vm.condStack)-1] {
	case OpCondTrue:
		vm.condStack[len(vm.condStack)-1] = OpCondFalse
	case OpCondFalse:
		vm.condStack[len(vm.condStack)-1] = OpCondTrue
	case OpCondSkip:
		// Leave it skipped; nesting inside a dead branch doesn't un-skip.
	}
	return nil
}

// opcodeEndif implements OP_ENDIF.
func opcodeEndif(op *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional,
			"encountered OP_ENDIF with no matching OP_IF")
	}
	vm.condStack = vm.condStack[:len(vm.condStack)-1]
	return nil
}

// opcodeVerify implements OP_VERIFY.
func opcodeVerify(op *parsedOpcode, vm *Engine) error {
	verified, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !verified {
		return scriptError(ErrVerify, "OP_VERIFY failed")
	}
	return nil
}

// opcodeReturn implements OP_RETURN: always fails when reached, which
// executeOpcode only allows within an executing branch.
func opcodeReturn(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrReturn, "script hit an OP_RETURN opcode")
}

// opcodeToAltStack implements OP_TOALTSTACK.
func opcodeToAltStack(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.astack.PushByteArray(so)
	return nil
}

// opcodeFromAltStack implements OP_FROMALTSTACK.
func opcodeFromAltStack(op *parsedOpcode, vm *Engine) error {
	so, err := vm.astack.PopByteArray()
	if err != nil {
		return scriptError(ErrInvalidAltStackOperation, err.Error())
	}
	vm.dstack.PushByteArray(so)
	return nil
}

func opcode2Drop(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DropN(2)
}

func opcode2Dup(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DupN(2)
}

func opcode3Dup(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DupN(3)
}

func opcode2Over(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.OverN(2)
}

func opcode2Rot(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.RotN(2)
}

func opcode2Swap(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.SwapN(2)
}

// opcodeIfDup implements OP_IFDUP: duplicate the top stack item only
// if it is truthy, without popping it first.
func opcodeIfDup(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if asBool(so) {
		vm.dstack.PushByteArray(so)
	}
	return nil
}

// opcodeDepth implements OP_DEPTH: push the current stack depth.
func opcodeDepth(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(vm.dstack.Depth()))
	return nil
}

func opcodeDrop(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DropN(1)
}

func opcodeDup(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DupN(1)
}

func opcodeNip(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.NipN(1)
}

func opcodeOver(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.OverN(1)
}

// opcodePick implements OP_PICK: pop an index n and copy the nth item
// from the top (after the pop) to the top.
func opcodePick(op *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.PickN(n.Int32())
}

// opcodeRoll implements OP_ROLL: pop an index n and move the nth item
// from the top (after the pop) to the top.
func opcodeRoll(op *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.RollN(n.Int32())
}

func opcodeRot(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.RotN(1)
}

func opcodeSwap(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.SwapN(1)
}

func opcodeTuck(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.Tuck()
}

// opcodeSize implements OP_SIZE: push the byte length of the top
// stack item without popping it.
func opcodeSize(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(scriptNum(len(so)))
	return nil
}

// opcodeEqual implements OP_EQUAL.
func opcodeEqual(op *parsedOpcode, vm *Engine) error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(bytesEqual(a, b))
	return nil
}

// opcodeEqualVerify implements OP_EQUALVERIFY.
func opcodeEqualVerify(op *parsedOpcode, vm *Engine) error {
	if err := opcodeEqual(op, vm); err != nil {
		return err
	}
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrEqualVerify, "OP_EQUALVERIFY failed")
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// popArithArg pops the top stack item and interprets it as a 4-byte
// scriptNum per the default arithmetic operand width.
func popArithArg(vm *Engine) (scriptNum, error) {
	return vm.dstack.PopInt()
}

func opcode1Add(op *parsedOpcode, vm *Engine) error {
	n, err := popArithArg(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(n + 1)
	return nil
}

func opcode1Sub(op *parsedOpcode, vm *Engine) error {
	n, err := popArithArg(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(n - 1)
	return nil
}

func opcodeNegate1(op *parsedOpcode, vm *Engine) error {
	n, err := popArithArg(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(-n)
	return nil
}

func opcodeAbs(op *parsedOpcode, vm *Engine) error {
	n, err := popArithArg(vm)
	if err != nil {
		return err
	}
	if n < 0 {
		n = -n
	}
	vm.dstack.PushInt(n)
	return nil
}

func opcodeNot(op *parsedOpcode, vm *Engine) error {
	n, err := popArithArg(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(n == 0))
	return nil
}

func opcode0NotEqual(op *parsedOpcode, vm *Engine) error {
	n, err := popArithArg(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(n != 0))
	return nil
}

// popArithArgs pops two arithmetic operands and returns them as (a, b),
// matching the order most binary opcodes need: b is the one popped
// first (it was on top), a is the one beneath it (pushed first).
func popArithArgs(vm *Engine) (a, b scriptNum, err error) {
	b, err = popArithArg(vm)
	if err != nil {
		return 0, 0, err
	}
	a, err = popArithArg(vm)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func opcodeAdd(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(a + b)
	return nil
}

// opcodeSub implements OP_SUB: pop v1 then v2 (v1 was on top), push
// v2 - v1.
func opcodeSub(op *parsedOpcode, vm *Engine) error {
	v1, err := popArithArg(vm)
	if err != nil {
		return err
	}
	v2, err := popArithArg(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(v2 - v1)
	return nil
}

func opcodeBoolAnd(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(a != 0 && b != 0))
	return nil
}

func opcodeBoolOr(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(a != 0 || b != 0))
	return nil
}

func opcodeNumEqual(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(a == b))
	return nil
}

func opcodeNumEqualVerify(op *parsedOpcode, vm *Engine) error {
	if err := opcodeNumEqual(op, vm); err != nil {
		return err
	}
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrNumEqualVerify, "OP_NUMEQUALVERIFY failed")
	}
	return nil
}

func opcodeNumNotEqual(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(a != b))
	return nil
}

// opcodeLessThan implements OP_LESSTHAN: pop b, then a; push a < b.
func opcodeLessThan(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(a < b))
	return nil
}

// opcodeGreaterThan implements OP_GREATERTHAN: pop b, then a; push
// a > b.
func opcodeGreaterThan(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(a > b))
	return nil
}

func opcodeLessThanOrEqual(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(a <= b))
	return nil
}

func opcodeGreaterThanOrEqual(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fromBool(a >= b))
	return nil
}

func opcodeMin(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	if a < b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeMax(op *parsedOpcode, vm *Engine) error {
	a, b, err := popArithArgs(vm)
	if err != nil {
		return err
	}
	if a > b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

// opcodeWithin implements OP_WITHIN: pop v1 (max, exclusive), v2
// (min, inclusive), v3 (the value); push min <= value < max.
func opcodeWithin(op *parsedOpcode, vm *Engine) error {
	maxVal, err := popArithArg(vm)
	if err != nil {
		return err
	}
	minVal, err := popArithArg(vm)
	if err != nil {
		return err
	}
	x, err := popArithArg(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(x >= minVal && x < maxVal)
	return nil
}

func opcodeRipemd160(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcRipemd160(so))
	return nil
}

func opcodeSha1(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcSha1(so))
	return nil
}

func opcodeSha256(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcSha256(so))
	return nil
}

func opcodeHash160(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcHash160(so))
	return nil
}

func opcodeHash256(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcHash256(so))
	return nil
}

// opcodeCodeSeparator implements OP_CODESEPARATOR: subsequent
// signature checks in this script only commit to bytes from here on.
func opcodeCodeSeparator(op *parsedOpcode, vm *Engine) error {
	vm.lastCodeSep = vm.scriptOff
	return nil
}

func opcodeCheckSig(op *parsedOpcode, vm *Engine) error {
	return vm.checkSig(false)
}

func opcodeCheckSigVerify(op *parsedOpcode, vm *Engine) error {
	return vm.checkSig(true)
}

func opcodeCheckMultiSig(op *parsedOpcode, vm *Engine) error {
	return vm.checkMultiSig(false)
}

func opcodeCheckMultiSigVerify(op *parsedOpcode, vm *Engine) error {
	return vm.checkMultiSig(true)
}

// opcodeCheckLockTimeVerify implements OP_CHECKLOCKTIMEVERIFY (the
// former OP_NOP2). Gated off by ScriptVerifyCheckLockTimeVerify it
// behaves as an upgradable NOP instead.
func opcodeCheckLockTimeVerify(op *parsedOpcode, vm *Engine) error {
	if !vm.hasFlag(ScriptVerifyCheckLockTimeVerify) {
		if vm.hasFlag(ScriptVerifyDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNops,
				"OP_NOP2 reserved for soft-fork upgrades")
		}
		return nil
	}

	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	lockTime, err := makeScriptNum(so, vm.hasFlag(ScriptVerifyMinimalData), cltvMaxScriptNumLen)
	if err != nil {
		return err
	}
	if lockTime < 0 {
		return scriptError(ErrNegativeLockTime,
			fmt.Sprintf("negative locktime: %d", lockTime))
	}
	if !vm.sigChecker.CheckLockTime(int64(lockTime)) {
		return scriptError(ErrUnsatisfiedLockTime,
			fmt.Sprintf("locktime requirement not satisfied: %d", lockTime))
	}
	return nil
}

// opcodeCheckSequenceVerify implements OP_CHECKSEQUENCEVERIFY (the
// former OP_NOP3).
func opcodeCheckSequenceVerify(op *parsedOpcode, vm *Engine) error {
	if !vm.hasFlag(ScriptVerifyCheckSequenceVerify) {
		if vm.hasFlag(ScriptVerifyDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNops,
				"OP_NOP3 reserved for soft-fork upgrades")
		}
		return nil
	}

	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	sequence, err := makeScriptNum(so, vm.hasFlag(ScriptVerifyMinimalData), cltvMaxScriptNumLen)
	if err != nil {
		return err
	}
	if sequence < 0 {
		return scriptError(ErrNegativeLockTime,
			fmt.Sprintf("negative sequence: %d", sequence))
	}

	if int64(sequence)&SequenceLockTimeDisableFlag != 0 {
		return nil
	}

	if !vm.sigChecker.CheckSequence(int64(sequence)) {
		return scriptError(ErrUnsatisfiedLockTime,
			fmt.Sprintf("sequence requirement not satisfied: %d", sequence))
	}
	return nil
}
