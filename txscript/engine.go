// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"
)

// ScriptFlags is a bitmask of the soft-fork and policy gates that
// change the interpreter's behavior for a single verification.
type ScriptFlags uint32

// The defined script flags (§6 of the companion spec). Bit order
// follows no particular consensus-activation history; this module
// only needs the bits to be stable within a process.
const (
	ScriptVerifyNone ScriptFlags = 0

	// ScriptVerifyP2SH enables BIP 16 pay-to-script-hash re-evaluation.
	ScriptVerifyP2SH ScriptFlags = 1 << iota

	// ScriptVerifyDERSignatures requires strict DER signature encoding
	// (BIP 66).
	ScriptVerifyDERSignatures

	// ScriptVerifyLowS requires low-S signatures (BIP 62).
	ScriptVerifyLowS

	// ScriptVerifyStrictEncoding enforces defined sighash types and
	// canonical public key encodings.
	ScriptVerifyStrictEncoding

	// ScriptVerifyNullDummy requires the CHECKMULTISIG dummy element
	// to be empty.
	ScriptVerifyNullDummy

	// ScriptVerifySigPushOnly requires the signature script to contain
	// only data pushes.
	ScriptVerifySigPushOnly

	// ScriptVerifyMinimalData requires minimal push and Num encoding.
	ScriptVerifyMinimalData

	// ScriptVerifyDiscourageUpgradableNops turns the NOP1/NOP4..NOP10
	// family into errors when executed.
	ScriptVerifyDiscourageUpgradableNops

	// ScriptVerifyCleanStack requires exactly one element survive on
	// the stack after evaluation. Only meaningful together with
	// ScriptVerifyP2SH (and, were it implemented, witness evaluation);
	// enforcing that pairing is the caller's responsibility.
	ScriptVerifyCleanStack

	// ScriptVerifyCheckLockTimeVerify activates OP_CHECKLOCKTIMEVERIFY;
	// otherwise it behaves as an upgradable NOP (OP_NOP2).
	ScriptVerifyCheckLockTimeVerify

	// ScriptVerifyCheckSequenceVerify activates OP_CHECKSEQUENCEVERIFY;
	// otherwise it behaves as an upgradable NOP (OP_NOP3).
	ScriptVerifyCheckSequenceVerify

	// ScriptVerifyWitness is carried only as a flag bit: segwit
	// program evaluation itself is out of scope for this module, but
	// ScriptVerifyCleanStack's precondition references it.
	ScriptVerifyWitness
)

// hasFlag reports whether flag is set in flags.
func (flags ScriptFlags) hasFlag(flag ScriptFlags) bool {
	return flags&flag == flag
}

// hasAny reports whether any of the given flags are set in flags.
func (flags ScriptFlags) hasAny(check ...ScriptFlags) bool {
	for _, flag := range check {
		if flags.hasFlag(flag) {
			return true
		}
	}
	return false
}

// Engine is the virtual machine that evaluates a signature script and
// a public-key script against each other.
type Engine struct {
	scripts     [][]parsedOpcode
	scriptIdx   int
	scriptOff   int
	lastCodeSep int

	dstack stack
	astack stack

	condStack []int
	numOps    int

	flags      ScriptFlags
	sigChecker SignatureChecker

	isP2SH          bool
	savedFirstStack [][]byte
}

// hasFlag reports whether vm was constructed with flag set.
func (vm *Engine) hasFlag(flag ScriptFlags) bool {
	return vm.flags.hasFlag(flag)
}

// isBranchExecuting reports whether the innermost conditional branch
// is currently executing. An empty conditional stack means there is
// no enclosing IF at all, which counts as executing.
func (vm *Engine) isBranchExecuting() bool {
	if len(vm.condStack) == 0 {
		return true
	}
	return vm.condStack[len(vm.condStack)-1] == OpCondTrue
}

// currentScript returns the parsed opcode list currently executing.
func (vm *Engine) currentScript() []parsedOpcode {
	return vm.scripts[vm.scriptIdx]
}

// subScript returns the portion of the current script that a
// signature opcode commits to: everything from the last
// OP_CODESEPARATOR onward (or the whole script, if none occurred).
func (vm *Engine) subScript() []parsedOpcode {
	return vm.currentScript()[vm.lastCodeSep:]
}

// canonicalPush reports whether pop is a push-family opcode using its
// shortest possible encoding, the precondition find_and_delete applies
// to a candidate match.
func canonicalPush(pop parsedOpcode) bool {
	if pop.opcode.value > OP_PUSHDATA4 {
		return false
	}
	return pop.checkMinimalDataPush() == nil
}

// removeOpcodeByData implements find_and_delete: it returns a copy of
// pkscript with every canonical push opcode whose payload contains
// dataToRemove elided.
func removeOpcodeByData(pkscript []parsedOpcode, dataToRemove []byte) []parsedOpcode {
	retScript := make([]parsedOpcode, 0, len(pkscript))
	for _, pop := range pkscript {
		if !canonicalPush(pop) || !bytes.Contains(pop.data, dataToRemove) {
			retScript = append(retScript, pop)
		}
	}
	return retScript
}

// executeOpcode runs a single decoded instruction, applying the
// ordering the companion spec lays out: the op-count and element-size
// bounds are charged first, regardless of whether the surrounding
// branch executes, then the always-disabled check happens
// unconditionally, and only then does a non-executing branch
// short-circuit everything but the conditional-stack opcodes
// themselves.
func (vm *Engine) executeOpcode(pop *parsedOpcode) error {
	if pop.opcode.value > OP_16 {
		vm.numOps++
		if vm.numOps > MaxOpsPerScript {
			return scriptError(ErrTooManyOperations,
				fmt.Sprintf("exceeded max operation limit of %d", MaxOpsPerScript))
		}
	} else if len(pop.data) > MaxScriptElementSize {
		return scriptError(ErrElementTooBig,
			fmt.Sprintf("element size %d exceeds max allowed size %d",
				len(pop.data), MaxScriptElementSize))
	}

	if pop.isDisabled() {
		return scriptError(ErrDisabledOpcode,
			fmt.Sprintf("attempt to execute disabled opcode %s", pop.opcode.name))
	}

	if !vm.isBranchExecuting() && !pop.isConditional() {
		return nil
	}

	if vm.isBranchExecuting() && pop.opcode.value >= OP_0 && pop.opcode.value <= OP_PUSHDATA4 {
		if vm.hasFlag(ScriptVerifyMinimalData) {
			if err := pop.checkMinimalDataPush(); err != nil {
				return err
			}
		}
	}

	if pop.alwaysIllegal() {
		return scriptError(ErrReservedOpcode,
			fmt.Sprintf("attempt to execute reserved opcode %s", pop.opcode.name))
	}

	return pop.opcode.opfunc(pop, vm)
}

// disasm formats the instruction at scripts[scriptIdx][scriptOff].
func (vm *Engine) disasm(scriptIdx, scriptOff int) string {
	return fmt.Sprintf("%02x:%04x: %s", scriptIdx, scriptOff,
		vm.scripts[scriptIdx][scriptOff].print(false))
}

// validPC reports an error if the engine's program counter does not
// name an instruction that can be executed.
func (vm *Engine) validPC() error {
	if vm.scriptIdx >= len(vm.scripts) {
		return scriptError(ErrInvalidIndex,
			fmt.Sprintf("past input scripts %d:%d %d:xxxx",
				vm.scriptIdx, vm.scriptOff, len(vm.scripts)))
	}
	if vm.scriptOff >= len(vm.scripts[vm.scriptIdx]) {
		return scriptError(ErrInvalidIndex,
			fmt.Sprintf("past input scripts %d:%d %d:%04d",
				vm.scriptIdx, vm.scriptOff, vm.scriptIdx, len(vm.scripts[vm.scriptIdx])))
	}
	return nil
}

func (vm *Engine) curPC() (scriptIdx, scriptOff int, err error) {
	if err = vm.validPC(); err != nil {
		return 0, 0, err
	}
	return vm.scriptIdx, vm.scriptOff, nil
}

// DisasmPC returns the disassembly of the instruction Step will
// execute next.
func (vm *Engine) DisasmPC() (string, error) {
	scriptIdx, scriptOff, err := vm.curPC()
	if err != nil {
		return "", err
	}
	return vm.disasm(scriptIdx, scriptOff), nil
}

// DisasmScript returns the full disassembly of scripts[idx]: 0 is the
// signature script, 1 the public-key script, and 2 (when present) the
// P2SH redeem script.
func (vm *Engine) DisasmScript(idx int) (string, error) {
	if idx < 0 || idx >= len(vm.scripts) {
		return "", scriptError(ErrInvalidIndex,
			fmt.Sprintf("script index %d >= total scripts %d", idx, len(vm.scripts)))
	}

	var disstr string
	for i := range vm.scripts[idx] {
		disstr += vm.disasm(idx, i) + "\n"
	}
	return disstr, nil
}

// CheckErrorCondition reports whether a completed evaluation
// succeeded: the script array must be exhausted, and the top (only,
// when finalScript) stack element must be truthy.
func (vm *Engine) CheckErrorCondition(finalScript bool) error {
	if vm.scriptIdx < len(vm.scripts) {
		return scriptError(ErrScriptUnfinished,
			"error check when script unfinished")
	}

	if finalScript && vm.hasFlag(ScriptVerifyCleanStack) && vm.dstack.Depth() != 1 {
		return scriptError(ErrCleanStack,
			fmt.Sprintf("stack contains %d unexpected items", vm.dstack.Depth()-1))
	}

	if vm.dstack.Depth() == 0 {
		return scriptError(ErrEvalFalse,
			"stack empty at end of script execution")
	}

	v, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !v {
		log.Tracef("%v", newLogClosure(func() string {
			dis0, _ := vm.DisasmScript(0)
			dis1, _ := vm.DisasmScript(1)
			return fmt.Sprintf("scripts failed: script0: %s\nscript1: %s", dis0, dis1)
		}))
		return scriptError(ErrEvalFalse,
			"false stack entry at end of script execution")
	}
	return nil
}

// Step executes the next instruction and advances the program
// counter, moving on to the next script when the current one is
// exhausted. It reports done=true once every script (including, for
// P2SH, the redeem script) has executed.
func (vm *Engine) Step() (done bool, err error) {
	if err = vm.validPC(); err != nil {
		return true, err
	}
	opcode := &vm.scripts[vm.scriptIdx][vm.scriptOff]
	vm.scriptOff++

	if err = vm.executeOpcode(opcode); err != nil {
		return true, err
	}

	combinedStackSize := vm.dstack.Depth() + vm.astack.Depth()
	if combinedStackSize > MaxStackSize {
		return false, scriptError(ErrStackOverflow,
			fmt.Sprintf("combined stack size %d > max allowed %d", combinedStackSize, MaxStackSize))
	}

	if vm.scriptOff < len(vm.scripts[vm.scriptIdx]) {
		return false, nil
	}

	// The current script is exhausted. A conditional left open across
	// a script boundary is malformed.
	if len(vm.condStack) != 0 {
		return false, scriptError(ErrUnbalancedConditional,
			"end of script reached in conditional execution")
	}

	// The alt stack does not persist across scripts.
	_ = vm.astack.DropN(vm.astack.Depth())

	vm.numOps = 0
	vm.scriptOff = 0
	vm.lastCodeSep = 0

	switch {
	case vm.scriptIdx == 0 && vm.isP2SH:
		vm.scriptIdx++
		vm.savedFirstStack = vm.GetStack()
	case vm.scriptIdx == 1 && vm.isP2SH:
		vm.scriptIdx++
		if err := vm.CheckErrorCondition(false); err != nil {
			return false, err
		}

		script := vm.savedFirstStack[len(vm.savedFirstStack)-1]
		pops, err := parseScript(script)
		if err != nil {
			return false, err
		}
		vm.scripts = append(vm.scripts, pops)
		vm.SetStack(vm.savedFirstStack[:len(vm.savedFirstStack)-1])
	default:
		vm.scriptIdx++
	}

	// Zero-length scripts occur in the wild; skip straight past them.
	if vm.scriptIdx < len(vm.scripts) && len(vm.scripts[vm.scriptIdx]) == 0 {
		vm.scriptIdx++
	}
	if vm.scriptIdx >= len(vm.scripts) {
		return true, nil
	}
	return false, nil
}

// Execute runs every script to completion and reports the final
// verification result.
func (vm *Engine) Execute() error {
	done := false
	for !done {
		log.Tracef("%v", newLogClosure(func() string {
			dis, err := vm.DisasmPC()
			if err != nil {
				return fmt.Sprintf("stepping (%v)", err)
			}
			return fmt.Sprintf("stepping %v", dis)
		}))

		var err error
		done, err = vm.Step()
		if err != nil {
			return err
		}

		log.Tracef("%v", newLogClosure(func() string {
			var dstr, astr string
			if vm.dstack.Depth() != 0 {
				dstr = "Stack:\n" + vm.dstack.String()
			}
			if vm.astack.Depth() != 0 {
				astr = "AltStack:\n" + vm.astack.String()
			}
			return dstr + astr
		}))
	}

	return vm.CheckErrorCondition(true)
}

// getStack returns s's contents bottom-up.
func getStack(s *stack) [][]byte {
	array := make([][]byte, s.Depth())
	for i := range array {
		array[len(array)-i-1], _ = s.PeekByteArray(int32(i))
	}
	return array
}

// setStack replaces s's contents with data, bottom-up.
func setStack(s *stack, data [][]byte) {
	_ = s.DropN(s.Depth())
	for _, d := range data {
		s.PushByteArray(d)
	}
}

// GetStack returns the data stack's contents bottom-up.
func (vm *Engine) GetStack() [][]byte { return getStack(&vm.dstack) }

// SetStack replaces the data stack's contents.
func (vm *Engine) SetStack(data [][]byte) { setStack(&vm.dstack, data) }

// GetAltStack returns the alt stack's contents bottom-up.
func (vm *Engine) GetAltStack() [][]byte { return getStack(&vm.astack) }

// SetAltStack replaces the alt stack's contents.
func (vm *Engine) SetAltStack(data [][]byte) { setStack(&vm.astack, data) }

// checkSig implements OP_CHECKSIG and, when verify is set,
// OP_CHECKSIGVERIFY.
func (vm *Engine) checkSig(verify bool) error {
	pubKey, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	sig, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	subScript := vm.subScript()
	if len(sig) > 0 {
		subScript = removeOpcodeByData(subScript, sig)
	}

	if err := checkSignatureEncoding(sig, vm.flags); err != nil {
		return err
	}
	if err := checkPubKeyEncoding(pubKey, vm.flags); err != nil {
		return err
	}

	var valid bool
	if len(sig) > 0 {
		hashType := SigHashType(sig[len(sig)-1])
		scriptBytes, err := unparseScript(subScript)
		if err != nil {
			return err
		}
		valid = vm.sigChecker.CheckSignature(sig, pubKey, scriptBytes, hashType, SignatureVersionBase)
	}

	if verify {
		if !valid {
			return scriptError(ErrCheckSigVerify, "signature not valid")
		}
		return nil
	}

	vm.dstack.PushBool(valid)
	return nil
}

// checkMultiSig implements OP_CHECKMULTISIG and, when verify is set,
// OP_CHECKMULTISIGVERIFY.
func (vm *Engine) checkMultiSig(verify bool) error {
	numKeysNum, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numPubKeys := int(numKeysNum.Int32())
	if numPubKeys < 0 || numPubKeys > MaxPubKeysPerMultiSig {
		return scriptError(ErrPubKeyCount,
			fmt.Sprintf("invalid pubkey count %d", numPubKeys))
	}
	vm.numOps += numPubKeys
	if vm.numOps > MaxOpsPerScript {
		return scriptError(ErrTooManyOperations,
			fmt.Sprintf("exceeded max operation limit of %d", MaxOpsPerScript))
	}

	pubKeys := make([][]byte, 0, numPubKeys)
	for i := 0; i < numPubKeys; i++ {
		pubKey, err := vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
		pubKeys = append(pubKeys, pubKey)
	}

	numSigsNum, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numSignatures := int(numSigsNum.Int32())
	if numSignatures < 0 || numSignatures > numPubKeys {
		return scriptError(ErrSigCount,
			fmt.Sprintf("invalid signature count %d", numSignatures))
	}

	signatures := make([][]byte, 0, numSignatures)
	for i := 0; i < numSignatures; i++ {
		sig, err := vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
		signatures = append(signatures, sig)
	}

	subScript := vm.subScript()
	for _, sig := range signatures {
		if len(sig) > 0 {
			subScript = removeOpcodeByData(subScript, sig)
		}
	}
	scriptBytes, err := unparseScript(subScript)
	if err != nil {
		return err
	}

	success := true
	k, s := 0, 0
	sigsLeft, keysLeft := numSignatures, numPubKeys
	for sigsLeft > 0 {
		pubKey := pubKeys[k]
		sig := signatures[s]

		if err := checkSignatureEncoding(sig, vm.flags); err != nil {
			return err
		}
		if err := checkPubKeyEncoding(pubKey, vm.flags); err != nil {
			return err
		}

		var valid bool
		if len(sig) > 0 {
			hashType := SigHashType(sig[len(sig)-1])
			valid = vm.sigChecker.CheckSignature(sig, pubKey, scriptBytes, hashType, SignatureVersionBase)
		}

		if valid {
			s++
			sigsLeft--
		}
		k++
		keysLeft--

		if sigsLeft > keysLeft {
			success = false
			break
		}
	}

	// A long-standing consensus bug: CHECKMULTISIG consumes one extra,
	// otherwise-unused stack element.
	dummy, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	if vm.hasFlag(ScriptVerifyNullDummy) && len(dummy) != 0 {
		return scriptError(ErrSigNullDummy,
			"multisig dummy argument is not empty")
	}

	if verify {
		if !success {
			return scriptError(ErrCheckMultiSigVerify, "multisig signatures not valid")
		}
		return nil
	}

	vm.dstack.PushBool(success)
	return nil
}

// NewEngine builds an Engine ready to verify scriptSig against
// scriptPubKey under flags, consulting sigChecker for every
// signature-bearing and locktime opcode.
func NewEngine(scriptSig, scriptPubKey []byte, flags ScriptFlags, sigChecker SignatureChecker) (*Engine, error) {
	if len(scriptSig) == 0 && len(scriptPubKey) == 0 {
		return nil, scriptError(ErrEvalFalse,
			"false stack entry at end of script execution")
	}

	vm := Engine{flags: flags, sigChecker: sigChecker}
	vm.dstack.verifyMinimalData = flags.hasFlag(ScriptVerifyMinimalData)
	vm.astack.verifyMinimalData = flags.hasFlag(ScriptVerifyMinimalData)

	parsedSigScript, err := parseScriptAndVerifySize(scriptSig)
	if err != nil {
		return nil, err
	}
	if flags.hasFlag(ScriptVerifySigPushOnly) && !isPushOnly(parsedSigScript) {
		return nil, scriptError(ErrSigPushOnly,
			"signature script is not push only")
	}

	parsedPkScript, err := parseScriptAndVerifySize(scriptPubKey)
	if err != nil {
		return nil, err
	}

	vm.scripts = [][]parsedOpcode{parsedSigScript, parsedPkScript}
	if len(scriptSig) == 0 {
		vm.scriptIdx++
	}

	if flags.hasFlag(ScriptVerifyP2SH) && IsPayToScriptHash(parsedPkScript) {
		if !isPushOnly(parsedSigScript) {
			return nil, scriptError(ErrNotPushOnly,
				"signature script for pay-to-script-hash is not push only")
		}
		vm.isP2SH = true
	}

	return &vm, nil
}

func parseScriptAndVerifySize(script []byte) ([]parsedOpcode, error) {
	if len(script) > MaxScriptSize {
		return nil, scriptError(ErrScriptTooBig,
			fmt.Sprintf("script size %d is larger than max allowed size %d",
				len(script), MaxScriptSize))
	}
	return parseScript(script)
}
