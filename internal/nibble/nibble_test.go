// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package nibble

import (
	"testing"
)

func TestFromBytes_Len(t *testing.T) {
	n := FromBytes([]byte{0x12, 0x34})
	if got, want := n.Len(), 4; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	want := []byte{1, 2, 3, 4}
	for i, w := range want {
		if got := n.Get(i); got != w {
			t.Errorf("Get(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestSplitAt_ConcatRoundTrip(t *testing.T) {
	n := FromBytes([]byte{0xab, 0xcd, 0xef})
	for k := 0; k <= n.Len(); k++ {
		head, tail := n.SplitAt(k)
		if head.Len() != k || tail.Len() != n.Len()-k {
			t.Fatalf("split at %d: head.Len()=%d tail.Len()=%d", k, head.Len(), tail.Len())
		}
		joined := Concat(head, tail)
		if !Equal(joined, n) {
			t.Fatalf("split at %d: concat(head,tail)=%q, want %q", k, joined, n)
		}
	}
}

func TestSharedPrefixLength(t *testing.T) {
	a := FromBytes([]byte{0x12, 0x34})
	b := FromBytes([]byte{0x12, 0x3f})
	if got, want := SharedPrefixLength(a, b), 3; got != want {
		t.Fatalf("SharedPrefixLength = %d, want %d", got, want)
	}
}

func TestHexPrefixRoundTrip(t *testing.T) {
	cases := []struct {
		nibbles    []byte
		terminator bool
	}{
		{nil, false},
		{nil, true},
		{[]byte{0xa}, false},
		{[]byte{0xa}, true},
		{[]byte{0x1, 0x2}, false},
		{[]byte{0x1, 0x2, 0x3}, true},
		{[]byte{0x0, 0xf, 0x1, 0xc, 0xb, 0x8}, false},
	}
	for _, c := range cases {
		n := build(len(c.nibbles), func(i int) byte { return c.nibbles[i] })
		encoded := ToHexPrefixBytes(n, c.terminator)
		gotN, gotTerm, err := FromHexPrefixBytes(encoded)
		if err != nil {
			t.Fatalf("FromHexPrefixBytes(%x) failed: %v", encoded, err)
		}
		if gotTerm != c.terminator {
			t.Errorf("terminator = %v, want %v", gotTerm, c.terminator)
		}
		if !Equal(gotN, n) {
			t.Errorf("round trip nibbles = %q, want %q", gotN, n)
		}
	}
}

func TestFromHexPrefixBytes_RejectsReservedFlag(t *testing.T) {
	// flag nibble 0xc has bit 2 set, which is reserved.
	if _, _, err := FromHexPrefixBytes([]byte{0xc0}); err == nil {
		t.Fatalf("expected error for reserved flag bits")
	}
}

func TestFromHexPrefixBytes_RejectsEmpty(t *testing.T) {
	if _, _, err := FromHexPrefixBytes(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
