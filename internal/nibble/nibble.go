// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package nibble implements Ethereum's 4-bit nibble addressing scheme used
// to navigate a Modified Merkle-Patricia Trie, including the canonical
// hex-prefix path encoding used inside leaf and extension nodes.
package nibble

import (
	"fmt"
	"strings"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/errs"
)

// Nibbles is an ordered sequence of 4-bit values, packed two per byte, with
// a head offset recording whether the first nibble occupies the low half of
// data[0]. Offset is always 0 or 1. The invariant Len() == 2*len(data) -
// offset holds for every value produced by this package.
type Nibbles struct {
	data   []byte
	offset int
}

// FromBytes builds a Nibbles sequence from a byte string with offset 0: the
// first nibble is the high half of the first byte.
func FromBytes(b []byte) Nibbles {
	return Nibbles{data: b}
}

// Len returns the number of nibbles in the sequence.
func (n Nibbles) Len() int {
	if len(n.data) == 0 {
		return 0
	}
	return 2*len(n.data) - n.offset
}

// Offset returns the head offset (0 or 1).
func (n Nibbles) Offset() int {
	return n.offset
}

// Bytes returns the underlying packed bytes. Only meaningful to a caller
// that already knows Offset() == 0.
func (n Nibbles) Bytes() []byte {
	return n.data
}

// IsEmpty reports whether the sequence has zero nibbles.
func (n Nibbles) IsEmpty() bool {
	return n.Len() == 0
}

// Get returns the nibble value (0-15) at position i, 0 <= i < Len().
func (n Nibbles) Get(i int) byte {
	pos := i + n.offset
	b := n.data[pos/2]
	if pos%2 == 0 {
		return b >> 4
	}
	return b & 0x0f
}

// String renders the sequence as a lower-case hex digit string, one rune per
// nibble, matching the teacher's Nibble.Rune()/String() convention.
func (n Nibbles) String() string {
	var sb strings.Builder
	sb.Grow(n.Len())
	for i := 0; i < n.Len(); i++ {
		sb.WriteByte(hexDigit(n.Get(i)))
	}
	return sb.String()
}

func hexDigit(v byte) byte {
	if v < 10 {
		return '0' + v
	}
	return 'a' + v - 10
}

// Equal reports whether a and b denote the same nibble sequence.
func Equal(a, b Nibbles) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.Get(i) != b.Get(i) {
			return false
		}
	}
	return true
}

// build packs count logical nibbles, produced by get(0..count-1), into a
// freshly allocated, minimally-offset Nibbles value. Every public
// constructor in this package (SplitAt, Concat, FromHexPrefixBytes) routes
// through here so the packing rule has exactly one implementation.
func build(count int, get func(int) byte) Nibbles {
	if count == 0 {
		return Nibbles{}
	}
	offset := count % 2
	out := make([]byte, (count+offset)/2)
	for i := 0; i < count; i++ {
		p := i + offset
		if p%2 == 0 {
			out[p/2] |= get(i) << 4
		} else {
			out[p/2] |= get(i)
		}
	}
	return Nibbles{data: out, offset: offset}
}

// SplitAt splits n into [0,k) and [k,Len()), preserving nibble values. Each
// half is repacked into its own minimal byte slice with its own offset.
func (n Nibbles) SplitAt(k int) (head, tail Nibbles) {
	total := n.Len()
	if k < 0 || k > total {
		panic(fmt.Sprintf("nibble: split index %d out of range [0,%d]", k, total))
	}
	head = build(k, func(i int) byte { return n.Get(i) })
	tail = build(total-k, func(i int) byte { return n.Get(k + i) })
	return head, tail
}

// Concat appends b after a, producing a freshly packed sequence.
func Concat(a, b Nibbles) Nibbles {
	total := a.Len() + b.Len()
	return build(total, func(i int) byte {
		if i < a.Len() {
			return a.Get(i)
		}
		return b.Get(i - a.Len())
	})
}

// SharedPrefixLength returns the length of the longest nibble sequence that
// both a and b share starting at index 0.
func SharedPrefixLength(a, b Nibbles) int {
	m := a.Len()
	if b.Len() < m {
		m = b.Len()
	}
	for i := 0; i < m; i++ {
		if a.Get(i) != b.Get(i) {
			return i
		}
	}
	return m
}

// ToHexPrefixBytes produces the canonical hex-prefix encoding of n: a flag
// nibble (2*terminator + len(n)%2) followed by n, left-padded with a zero
// nibble when len(n) is even so the whole sequence packs to whole bytes.
func ToHexPrefixBytes(n Nibbles, terminator bool) []byte {
	l := n.Len()
	odd := l%2 == 1
	flag := byte(0)
	if terminator {
		flag = 2
	}
	if odd {
		flag |= 1
	}
	out := make([]byte, l/2+1)
	out[0] = flag << 4
	start := 0
	if odd {
		out[0] |= n.Get(0)
		start = 1
	}
	remaining := l - start
	for i := 0; i < remaining; i++ {
		p := i // remaining is always even, so this sub-sequence is offset-0
		v := n.Get(start + i)
		if p%2 == 0 {
			out[1+p/2] |= v << 4
		} else {
			out[1+p/2] |= v
		}
	}
	return out
}

// FromHexPrefixBytes is the inverse of ToHexPrefixBytes: it recovers the
// nibble sequence and the terminator flag, failing if the flag nibble has a
// reserved bit set (only the low two bits of the flag nibble are defined).
func FromHexPrefixBytes(b []byte) (Nibbles, bool, error) {
	if len(b) == 0 {
		return Nibbles{}, false, errs.New(errs.RlpMalformed, "hex-prefix: empty input", nil)
	}
	flag := b[0] >> 4
	if flag&^0x3 != 0 {
		return Nibbles{}, false, errs.New(errs.RlpMalformed, fmt.Sprintf("hex-prefix: reserved flag bits set: %#x", flag), nil)
	}
	terminator := flag&2 != 0
	odd := flag&1 != 0

	values := make([]byte, 0, 2*len(b))
	if odd {
		values = append(values, b[0]&0x0f)
	}
	for _, by := range b[1:] {
		values = append(values, by>>4, by&0x0f)
	}

	n := build(len(values), func(i int) byte { return values[i] })
	return n, terminator, nil
}
