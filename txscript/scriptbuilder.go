// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"
	"fmt"
)

// ScriptBuilder builds a script by appending opcodes and canonically
// encoded data pushes, tracking the first error encountered so callers
// can chain calls and check once at the end.
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder returns a ScriptBuilder ready for use.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{script: make([]byte, 0, 500)}
}

// AddOp appends op to the script, refusing to grow the script past
// MaxScriptSize.
func (b *ScriptBuilder) AddOp(op byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(b.script)+1 > MaxScriptSize {
		b.err = fmt.Errorf("adding an opcode would exceed the maximum "+
			"allowed canonical script length of %d", MaxScriptSize)
		return b
	}
	b.script = append(b.script, op)
	return b
}

// AddInt64 appends the canonical minimal-encoding push for val: a
// small-int opcode for -1 and 0..16, otherwise a scriptNum data push.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if val == 0 {
		return b.AddOp(OP_0)
	}
	if val == -1 || (val >= 1 && val <= 16) {
		return b.AddOp(byte((OP_1 - 1) + val))
	}
	return b.AddData(scriptNum(val).Bytes())
}

// AddData appends the canonical data-push instruction(s) for data,
// choosing OP_0, an OP_1..OP_16 small-int push, an OP_DATA_n direct
// push, or the shortest applicable OP_PUSHDATA# opcode. Pushes that
// would exceed MaxScriptElementSize or MaxScriptSize are refused.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(data) > MaxScriptElementSize {
		b.err = fmt.Errorf("adding a data element of %d bytes would "+
			"exceed the maximum allowed size of %d", len(data), MaxScriptElementSize)
		return b
	}

	dataLen := len(data)
	if dataLen == 0 || (dataLen == 1 && data[0] == 0) {
		return b.AddOp(OP_0)
	}
	if dataLen == 1 && data[0] <= 16 {
		return b.AddOp(byte((OP_1 - 1) + data[0]))
	}
	if dataLen == 1 && data[0] == 0x81 {
		return b.AddOp(OP_1NEGATE)
	}

	var encoded []byte
	switch {
	case dataLen < OP_PUSHDATA1:
		encoded = append(encoded, byte((OP_DATA_1-1)+dataLen))
	case dataLen <= 0xff:
		encoded = append(encoded, OP_PUSHDATA1, byte(dataLen))
	case dataLen <= 0xffff:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(dataLen))
		encoded = append(encoded, OP_PUSHDATA2)
		encoded = append(encoded, buf...)
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(dataLen))
		encoded = append(encoded, OP_PUSHDATA4)
		encoded = append(encoded, buf...)
	}

	if len(b.script)+len(encoded)+dataLen > MaxScriptSize {
		b.err = fmt.Errorf("adding %d bytes of data would exceed the "+
			"maximum allowed canonical script length of %d", dataLen, MaxScriptSize)
		return b
	}

	b.script = append(b.script, encoded...)
	b.script = append(b.script, data...)
	return b
}

// Script returns the script as built so far, or the first error any
// Add call encountered.
func (b *ScriptBuilder) Script() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.script, nil
}
