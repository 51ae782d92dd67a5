// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"strings"
)

// asBool converts a stack value to its boolean interpretation. Empty is
// false; any other value is false only when every byte is zero except
// possibly the last, and the last is 0x00 or 0x80 (negative zero).
func asBool(v []byte) bool {
	for i, b := range v {
		if b == 0 {
			continue
		}
		if i == len(v)-1 && (b == 0x80) {
			continue
		}
		return true
	}
	return false
}

// asBytes converts a boolean to its canonical stack encoding: true is
// [0x01], false is the empty byte string.
func asBytes(b bool) []byte {
	if b {
		return []byte{1}
	}
	return nil
}

// stack is an ordered sequence of byte strings with the positional
// operations the opcode dispatcher needs (push/pop/peek/nth-from-top
// manipulation). It backs both the data stack and the alt stack.
type stack struct {
	stk [][]byte

	// verifyMinimalData mirrors ScriptVerifyMinimalData: when set,
	// PopInt/PeekInt reject non-minimally-encoded Num values instead of
	// silently accepting them.
	verifyMinimalData bool
}

// Depth returns the number of elements on the stack.
func (s *stack) Depth() int32 {
	return int32(len(s.stk))
}

// PushByteArray pushes the given byte string onto the top of the
// stack.
func (s *stack) PushByteArray(so []byte) {
	s.stk = append(s.stk, so)
}

// PushInt pushes n, re-encoded minimally, onto the stack.
func (s *stack) PushInt(n scriptNum) {
	s.PushByteArray(n.Bytes())
}

// PushBool pushes the canonical encoding of b onto the stack.
func (s *stack) PushBool(b bool) {
	s.PushByteArray(asBytes(b))
}

// PopByteArray pops the value off the top of the stack and returns it.
func (s *stack) PopByteArray() ([]byte, error) {
	return s.nipN(0)
}

// PopInt pops the top stack value and interprets it as a scriptNum
// using the default 4-byte width.
func (s *stack) PopInt() (scriptNum, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}
	return makeScriptNum(so, s.verifyMinimalData, defaultScriptNumLen)
}

// PopBool pops the top stack value and interprets it as a boolean.
func (s *stack) PopBool() (bool, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return false, err
	}
	return asBool(so), nil
}

// PeekByteArray returns the Nth item on the stack without removing it,
// where 0 is the top.
func (s *stack) PeekByteArray(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx >= sz {
		return nil, scriptError(ErrInvalidStackOperation,
			"index out of range")
	}
	return s.stk[sz-idx-1], nil
}

// PeekInt returns the Nth item on the stack as a scriptNum without
// removing it.
func (s *stack) PeekInt(idx int32) (scriptNum, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return 0, err
	}
	return makeScriptNum(so, s.verifyMinimalData, defaultScriptNumLen)
}

// PeekBool returns the Nth item on the stack as a boolean without
// removing it.
func (s *stack) PeekBool(idx int32) (bool, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return false, err
	}
	return asBool(so), nil
}

// nipN removes the Nth item from the top of the stack (0 = the top
// item itself) and returns it.
func (s *stack) nipN(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx >= sz {
		return nil, scriptError(ErrInvalidStackOperation,
			"index out of range")
	}
	pos := sz - idx - 1
	so := s.stk[pos]
	s.stk = append(s.stk[:pos], s.stk[pos+1:]...)
	return so, nil
}

// NipN removes the Nth item from the top of the stack (OP_NIP uses
// NipN(1)).
func (s *stack) NipN(idx int32) error {
	_, err := s.nipN(idx)
	return err
}

// Tuck copies the top item and inserts the copy below the second item
// on the stack.
func (s *stack) Tuck() error {
	so2, err := s.PopByteArray()
	if err != nil {
		return err
	}
	so1, err := s.PopByteArray()
	if err != nil {
		return err
	}
	s.PushByteArray(so2)
	s.PushByteArray(so1)
	s.PushByteArray(so2)
	return nil
}

// DropN removes the top n items from the stack.
func (s *stack) DropN(n int32) error {
	if n < 0 {
		return scriptError(ErrInvalidStackOperation, "n must not be negative")
	}
	for ; n > 0; n-- {
		if _, err := s.PopByteArray(); err != nil {
			return err
		}
	}
	return nil
}

// DupN duplicates the top n items on the stack, preserving order.
func (s *stack) DupN(n int32) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	for i := n; i > 0; i-- {
		so, err := s.PeekByteArray(n - 1)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// RotN rotates the top 3n items on the stack, treating them as three
// groups of n: x1 x2 x3 -> x2 x3 x1, generalized so OP_2ROT is
// RotN(2).
func (s *stack) RotN(n int32) error {
	entry := 3*n - 1
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	if entry >= int32(len(s.stk)) || entry < 0 {
		return scriptError(ErrInvalidStackOperation, "index out of range")
	}

	for i := n; i > 0; i-- {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// SwapN swaps the top n items with the n items below them: x1 x2 -> x2
// x1 for SwapN(1), and x1 x2 y1 y2 -> y1 y2 x1 x2 for SwapN(2).
func (s *stack) SwapN(n int32) error {
	entry := 2*n - 1
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	if entry >= int32(len(s.stk)) || entry < 0 {
		return scriptError(ErrInvalidStackOperation, "index out of range")
	}

	for i := n; i > 0; i-- {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// OverN copies the n items starting a further n items back, to the
// top of the stack: x1 x2 -> x1 x2 x1 for OverN(1), and x1 x2 y1 y2 ->
// x1 x2 y1 y2 x1 x2 for OverN(2).
func (s *stack) OverN(n int32) error {
	entry := 2*n - 1
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	if entry >= int32(len(s.stk)) || entry < 0 {
		return scriptError(ErrInvalidStackOperation, "index out of range")
	}

	for ; n > 0; n-- {
		so, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// PickN copies the item n down from the top of the stack, to the top.
func (s *stack) PickN(n int32) error {
	return s.copyToTop(n)
}

// RollN moves the item n down from the top of the stack, to the top.
func (s *stack) RollN(n int32) error {
	so, err := s.nipN(n)
	if err != nil {
		return err
	}
	s.PushByteArray(so)
	return nil
}

func (s *stack) copyToTop(n int32) error {
	so, err := s.PeekByteArray(n)
	if err != nil {
		return err
	}
	s.PushByteArray(so)
	return nil
}

// String prints a human-readable dump of the stack, bottom first, used by
// trace logging and test failure output.
func (s *stack) String() string {
	var lines []string
	for i := range s.stk {
		idx := int32(len(s.stk) - i - 1)
		so, _ := s.PeekByteArray(idx)
		if len(so) == 0 {
			lines = append(lines, "00000000  <empty>")
			continue
		}
		lines = append(lines, fmt.Sprintf("%08x  %x", i, so))
	}
	return strings.Join(lines, "\n")
}
