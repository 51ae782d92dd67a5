// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// ErrorCode identifies a kind of script error.
type ErrorCode int

const (
	// ErrInvalidIndex indicates that an index passed to the engine was
	// out of range, such as a script index or program counter past the
	// end of the engine's scripts.
	ErrInvalidIndex ErrorCode = iota

	// ErrScriptTooBig indicates that a script exceeded MaxScriptSize.
	ErrScriptTooBig

	// ErrElementTooBig indicates that a data push exceeded
	// MaxScriptElementSize.
	ErrElementTooBig

	// ErrTooManyOperations indicates more than MaxOpsPerScript non-push
	// opcodes were encountered in a single script.
	ErrTooManyOperations

	// ErrStackOverflow indicates the combined data and alt stack
	// exceeded MaxStackSize at some instruction boundary.
	ErrStackOverflow

	// ErrInvalidStackOperation indicates an operation referenced a
	// stack element that does not exist.
	ErrInvalidStackOperation

	// ErrInvalidAltStackOperation indicates an operation referenced an
	// alt stack element that does not exist.
	ErrInvalidAltStackOperation

	// ErrUnbalancedConditional indicates an IF/NOTIF/ELSE/ENDIF
	// structure is malformed.
	ErrUnbalancedConditional

	// ErrBadOpcode indicates an opcode is malformed, or would read past
	// the end of the script.
	ErrBadOpcode

	// ErrDisabledOpcode indicates an always-disabled opcode was present
	// in the script, regardless of whether it executed.
	ErrDisabledOpcode

	// ErrReservedOpcode indicates an executed reserved opcode.
	ErrReservedOpcode

	// ErrNotPushOnly indicates a script that is required to contain
	// only push operations contains non-push opcodes.
	ErrNotPushOnly

	// ErrMinimalData indicates a data push violated the minimal push
	// encoding rule under ScriptVerifyMinimalData.
	ErrMinimalData

	// ErrVerify indicates OP_VERIFY failed because the top of stack was
	// false.
	ErrVerify

	// ErrEqualVerify indicates OP_EQUALVERIFY failed.
	ErrEqualVerify

	// ErrNumEqualVerify indicates OP_NUMEQUALVERIFY failed.
	ErrNumEqualVerify

	// ErrCheckSigVerify indicates OP_CHECKSIGVERIFY failed.
	ErrCheckSigVerify

	// ErrCheckMultiSigVerify indicates OP_CHECKMULTISIGVERIFY failed.
	ErrCheckMultiSigVerify

	// ErrReturn indicates an executed OP_RETURN.
	ErrReturn

	// ErrEvalFalse indicates the final stack value cast to false, or the
	// stack was left empty.
	ErrEvalFalse

	// ErrCleanStack indicates ScriptVerifyCleanStack was set and the
	// stack did not contain exactly one element at the end of
	// execution.
	ErrCleanStack

	// ErrScriptUnfinished indicates CheckErrorCondition was called
	// before script execution completed.
	ErrScriptUnfinished

	// ErrNumberTooBig indicates a byte string pulled off the stack
	// exceeded the allowed Num width.
	ErrNumberTooBig

	// ErrSigTooShort indicates a signature is shorter than the minimum
	// possible DER-encoded signature.
	ErrSigTooShort

	// ErrSigTooLong indicates a signature is longer than the maximum
	// possible DER-encoded signature.
	ErrSigTooLong

	// ErrSigInvalidSeqID indicates a signature does not start with the
	// ASN.1 sequence identifier.
	ErrSigInvalidSeqID

	// ErrSigInvalidDataLen indicates the declared length of a DER
	// signature does not match the length of the remaining data.
	ErrSigInvalidDataLen

	// ErrSigMissingSLen indicates a signature is missing the length of
	// the S value.
	ErrSigMissingSLen

	// ErrSigInvalidSLen indicates the length of S is not in bounds.
	ErrSigInvalidSLen

	// ErrSigInvalidRIntID indicates the R value is not an ASN.1 integer.
	ErrSigInvalidRIntID

	// ErrSigZeroRLen indicates R was declared with a zero length.
	ErrSigZeroRLen

	// ErrSigNegativeR indicates the R value was encoded as negative.
	ErrSigNegativeR

	// ErrSigTooMuchRPadding indicates the R value had unnecessary
	// leading zero bytes.
	ErrSigTooMuchRPadding

	// ErrSigInvalidSIntID indicates the S value is not an ASN.1
	// integer.
	ErrSigInvalidSIntID

	// ErrSigZeroSLen indicates S was declared with a zero length.
	ErrSigZeroSLen

	// ErrSigNegativeS indicates the S value was encoded as negative.
	ErrSigNegativeS

	// ErrSigTooMuchSPadding indicates the S value had unnecessary
	// leading zero bytes.
	ErrSigTooMuchSPadding

	// ErrSigHighS indicates a signature's S value is above half the
	// curve order, violating BIP 62.
	ErrSigHighS

	// ErrSigInvalidSigHashType indicates an undefined sighash type byte.
	ErrSigInvalidSigHashType

	// ErrPubKeyType indicates an incorrectly encoded public key under
	// ScriptVerifyStrictEncoding.
	ErrPubKeyType

	// ErrPubKeyCount indicates OP_CHECKMULTISIG was given a key count
	// outside [0, MaxPubKeysPerMultiSig].
	ErrPubKeyCount

	// ErrSigCount indicates OP_CHECKMULTISIG was given a signature
	// count outside [0, keyCount].
	ErrSigCount

	// ErrSigNullDummy indicates ScriptVerifyNullDummy was set and the
	// OP_CHECKMULTISIG dummy element was not empty.
	ErrSigNullDummy

	// ErrSigPushOnly indicates ScriptVerifySigPushOnly was set and the
	// signature script contained a non-push opcode.
	ErrSigPushOnly

	// ErrNegativeLockTime indicates a negative CLTV/CSV argument.
	ErrNegativeLockTime

	// ErrUnsatisfiedLockTime indicates the locktime/sequence check
	// against the SignatureChecker failed.
	ErrUnsatisfiedLockTime

	// ErrDiscourageUpgradableNops indicates ScriptVerifyDiscourageUpgradableNops
	// was set and an upgradable NOP opcode was executed.
	ErrDiscourageUpgradableNops

	// ErrNumOutOfRange indicates a script number was out of the range
	// a caller required.
	ErrNumOutOfRange
)

// errorCodeStrings is a map of ErrorCode values back to their
// constant names for human-readable formatting.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidIndex:              "ErrInvalidIndex",
	ErrScriptTooBig:              "ErrScriptTooBig",
	ErrElementTooBig:             "ErrElementTooBig",
	ErrTooManyOperations:         "ErrTooManyOperations",
	ErrStackOverflow:             "ErrStackOverflow",
	ErrInvalidStackOperation:     "ErrInvalidStackOperation",
	ErrInvalidAltStackOperation:  "ErrInvalidAltStackOperation",
	ErrUnbalancedConditional:     "ErrUnbalancedConditional",
	ErrBadOpcode:                 "ErrBadOpcode",
	ErrDisabledOpcode:            "ErrDisabledOpcode",
	ErrReservedOpcode:            "ErrReservedOpcode",
	ErrNotPushOnly:               "ErrNotPushOnly",
	ErrMinimalData:               "ErrMinimalData",
	ErrVerify:                    "ErrVerify",
	ErrEqualVerify:               "ErrEqualVerify",
	ErrNumEqualVerify:            "ErrNumEqualVerify",
	ErrCheckSigVerify:            "ErrCheckSigVerify",
	ErrCheckMultiSigVerify:       "ErrCheckMultiSigVerify",
	ErrReturn:                    "ErrReturn",
	ErrEvalFalse:                 "ErrEvalFalse",
	ErrCleanStack:                "ErrCleanStack",
	ErrScriptUnfinished:          "ErrScriptUnfinished",
	ErrNumberTooBig:              "ErrNumberTooBig",
	ErrSigTooShort:               "ErrSigTooShort",
	ErrSigTooLong:                "ErrSigTooLong",
	ErrSigInvalidSeqID:           "ErrSigInvalidSeqID",
	ErrSigInvalidDataLen:         "ErrSigInvalidDataLen",
	ErrSigMissingSLen:            "ErrSigMissingSLen",
	ErrSigInvalidSLen:            "ErrSigInvalidSLen",
	ErrSigInvalidRIntID:          "ErrSigInvalidRIntID",
	ErrSigZeroRLen:               "ErrSigZeroRLen",
	ErrSigNegativeR:              "ErrSigNegativeR",
	ErrSigTooMuchRPadding:        "ErrSigTooMuchRPadding",
	ErrSigInvalidSIntID:          "ErrSigInvalidSIntID",
	ErrSigZeroSLen:               "ErrSigZeroSLen",
	ErrSigNegativeS:              "ErrSigNegativeS",
	ErrSigTooMuchSPadding:        "ErrSigTooMuchSPadding",
	ErrSigHighS:                  "ErrSigHighS",
	ErrSigInvalidSigHashType:     "ErrSigInvalidSigHashType",
	ErrPubKeyType:                "ErrPubKeyType",
	ErrPubKeyCount:               "ErrPubKeyCount",
	ErrSigCount:                  "ErrSigCount",
	ErrSigNullDummy:              "ErrSigNullDummy",
	ErrSigPushOnly:               "ErrSigPushOnly",
	ErrNegativeLockTime:          "ErrNegativeLockTime",
	ErrUnsatisfiedLockTime:       "ErrUnsatisfiedLockTime",
	ErrDiscourageUpgradableNops:  "ErrDiscourageUpgradableNops",
	ErrNumOutOfRange:             "ErrNumOutOfRange",
}

// String returns the ErrorCode's constant name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a script failure, carrying both the taxonomy code
// callers key off of (differential testing, retry logic) and a
// human-readable description for logs.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether err is a script Error carrying the given
// code. Convenience for callers that only care about the taxonomy, not
// the message text.
func IsErrorCode(err error, c ErrorCode) bool {
	serr, ok := err.(Error)
	return ok && serr.ErrorCode == c
}
