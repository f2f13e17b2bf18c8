// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package trie

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/keccak256"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/nibble"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/receipt"
)

func TestExtractProof_InclusionRootRecovery(t *testing.T) {
	tr := New()
	values := map[uint64][]byte{
		0: bytes.Repeat([]byte{0x01}, 40),
		1: bytes.Repeat([]byte{0x02}, 40),
		2: bytes.Repeat([]byte{0x03}, 40),
	}
	for i := uint64(0); i < 3; i++ {
		if err := tr.Insert(receipt.TrieKey(i), values[i]); err != nil {
			t.Fatalf("Insert(%d) failed: %v", i, err)
		}
	}

	for i := uint64(0); i < 3; i++ {
		hexProof, found, err := ExtractProof(tr, receipt.TrieKey(i))
		if err != nil {
			t.Fatalf("ExtractProof(%d) errored: %v", i, err)
		}
		if !found {
			t.Fatalf("ExtractProof(%d) reported not found", i)
		}
		if !strings.HasPrefix(hexProof, "0x") {
			t.Fatalf("ExtractProof(%d) = %q, want 0x-prefixed", i, hexProof)
		}

		items, err := DecodeProofStack(hexProof)
		if err != nil {
			t.Fatalf("DecodeProofStack(%d) failed: %v", i, err)
		}
		if len(items) == 0 {
			t.Fatalf("DecodeProofStack(%d) returned no nodes", i)
		}
		if got := keccak256.Sum(items[0]); got != tr.Root {
			t.Fatalf("hash of proof's first node = %x, want root %x", got, tr.Root)
		}
	}
}

func TestExtractProof_ExclusionStillReturnsStack(t *testing.T) {
	tr := New()
	if err := tr.Insert(receipt.TrieKey(0), []byte("only receipt")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	hexProof, found, err := ExtractProof(tr, receipt.TrieKey(5))
	if err != nil {
		t.Fatalf("ExtractProof(miss) errored: %v", err)
	}
	if found {
		t.Fatalf("ExtractProof(miss) reported found")
	}
	if hexProof == "0x" {
		t.Fatalf("ExtractProof(miss) returned an empty proof")
	}
}

func TestExtractProof_SingleLeafTrie(t *testing.T) {
	// spec.md §8 scenario 2: transaction index 0 maps to the empty key.
	tr := New()
	if err := tr.Insert(nibble.Nibbles{}, []byte{0xaa}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	hexProof, found, err := ExtractProof(tr, nibble.Nibbles{})
	if err != nil || !found {
		t.Fatalf("ExtractProof = (%q, %v, %v)", hexProof, found, err)
	}
	items, err := DecodeProofStack(hexProof)
	if err != nil {
		t.Fatalf("DecodeProofStack failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single-node proof for a single-leaf trie, got %d", len(items))
	}
}
