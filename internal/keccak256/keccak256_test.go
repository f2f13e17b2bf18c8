// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package keccak256

import (
	"encoding/hex"
	"testing"
)

func TestSum_KnownVector(t *testing.T) {
	// keccak256("") is a widely cited test vector.
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	got := hex.EncodeToString(Sum(nil)[:])
	if got != want {
		t.Fatalf("Sum(nil) = %s, want %s", got, want)
	}
}

func TestEmptyTrieRoot_MatchesWellKnownConstant(t *testing.T) {
	want := "56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421"
	got := hex.EncodeToString(EmptyTrieRoot[:])
	if got != want {
		t.Fatalf("EmptyTrieRoot = %s, want %s", got, want)
	}
	if recomputed := Sum([]byte{0x80}); recomputed != EmptyTrieRoot {
		t.Fatalf("Sum([0x80]) = %x, want EmptyTrieRoot %x", recomputed, EmptyTrieRoot)
	}
}
