// This file is part of Elfpack.
//
// Elfpack is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Elfpack is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Elfpack.  If not, see <https://www.gnu.org/licenses/>.

package arm

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Instruction words used by the PLT patcher.
const (
	// ldr ip, [pc]
	LdrIPPC uint32 = 0xe59fc000

	// bx ip
	BxIP uint32 = 0xe12fff1c

	// Thumb "bx pc; b .-6" as a single big-endian word
	ThumbVeneer uint32 = 0x4778e7fd
)

// TrampolineSize is the number of bytes in a trampoline.
const TrampolineSize = 12

// PLTHeaderWords is the number of words in the PLT header (PLT0) when it is not
// preceded by a Thumb veneer.
const PLTHeaderWords = 5

// Trampoline is the fixed PLT replacement sequence.
type Trampoline struct {
	Target uint32
}

func (tr Trampoline) String() string {
	return fmt.Sprintf("ldr ip, [pc]; bx ip; .word %#08x", tr.Target)
}

// Encode returns the trampoline as three words.
func (tr Trampoline) Encode() [3]uint32 {
	return [3]uint32{LdrIPPC, BxIP, tr.Target}
}

// DecodeTrampoline returns the trampoline encoded in the three words. The
// second return value is false if the words are not a trampoline.
func DecodeTrampoline(w [3]uint32) (Trampoline, bool) {
	if w[0] != LdrIPPC || w[1] != BxIP {
		return Trampoline{}, false
	}
	return Trampoline{Target: w[2]}, true
}

// ReadWords reads three words from the start of mem.
func ReadWords(mem []byte, order binary.ByteOrder) ([3]uint32, error) {
	var w [3]uint32
	if len(mem) < TrampolineSize {
		return w, fmt.Errorf("arm: %d bytes is too short for three words", len(mem))
	}
	for i := range w {
		w[i] = order.Uint32(mem[i*4:])
	}
	return w, nil
}

// PatchTrampoline writes a trampoline to target at the start of mem and
// returns the words that were replaced.
func PatchTrampoline(mem []byte, order binary.ByteOrder, target uint32) ([3]uint32, error) {
	old, err := ReadWords(mem, order)
	if err != nil {
		return old, err
	}
	for i, w := range (Trampoline{Target: target}).Encode() {
		order.PutUint32(mem[i*4:], w)
	}
	return old, nil
}

// immediate decodes the rotated 8 bit immediate of a data processing
// instruction.
func immediate(w uint32) uint32 {
	rot := int((w >> 8) & 0x0f)
	return bits.RotateLeft32(w&0xff, -2*rot)
}

// masks and values for the instructions of a GNU PLT entry.
const (
	addIPPC   uint32 = 0xe28fc000 // add ip, pc, #imm
	addIPIP   uint32 = 0xe28cc000 // add ip, ip, #imm
	ldrPCIPwb uint32 = 0xe5bcf000 // ldr pc, [ip, #imm]!
	maskImm   uint32 = 0xfffff000
)

// DecodePLTEntry decodes the GNU PLT entry in w, located at address slot, and
// returns the address of the GOT entry it loads from. The second return value
// is false if w is not a recognised PLT entry.
func DecodePLTEntry(slot uint32, w [3]uint32) (uint32, bool) {
	if w[0]&maskImm != addIPPC || w[1]&maskImm != addIPIP || w[2]&maskImm != ldrPCIPwb {
		return 0, false
	}

	// pc reads as the address of the instruction plus eight
	ip := slot + 8 + immediate(w[0])
	ip += immediate(w[1])
	return ip + (w[2] & 0xfff), true
}

// EncodePLTEntry creates a GNU PLT entry at address slot that loads from the
// GOT entry at address got. It is the inverse of DecodePLTEntry() and is
// useful for building test images. Only forward offsets are supported.
func EncodePLTEntry(slot uint32, got uint32) [3]uint32 {
	off := got - (slot + 8)
	return [3]uint32{
		addIPPC | 0x600 | ((off >> 20) & 0xff),
		addIPIP | 0xa00 | ((off >> 12) & 0xff),
		ldrPCIPwb | (off & 0xfff),
	}
}
