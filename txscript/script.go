// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// isPushOnly reports whether every instruction in pops is part of the
// push family (OP_0..OP_16, including the data-push opcodes).
func isPushOnly(pops []parsedOpcode) bool {
	for _, pop := range pops {
		if pop.opcode.value > OP_16 {
			return false
		}
	}
	return true
}

// IsPayToScriptHash reports whether pops is the canonical BIP 16
// pattern: OP_HASH160 <20-byte hash> OP_EQUAL.
func IsPayToScriptHash(pops []parsedOpcode) bool {
	return len(pops) == 3 &&
		pops[0].opcode.value == OP_HASH160 &&
		pops[1].opcode.value == OP_DATA_20 &&
		len(pops[1].data) == 20 &&
		pops[2].opcode.value == OP_EQUAL
}

// VerifyScript is the top-level driver (spec §4.6): it builds an
// Engine for scriptSig/scriptPubKey under flags and runs it to
// completion, including the second, P2SH-triggered evaluation of the
// redeem script when ScriptVerifyP2SH is set and scriptPubKey matches
// the pay-to-script-hash pattern.
func VerifyScript(scriptSig, scriptPubKey []byte, flags ScriptFlags, sigChecker SignatureChecker) error {
	vm, err := NewEngine(scriptSig, scriptPubKey, flags, sigChecker)
	if err != nil {
		return err
	}
	return vm.Execute()
}
