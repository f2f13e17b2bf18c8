// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package receipt

import (
	"bytes"
	"testing"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func TestTrieKey_IndexZeroIsEmpty(t *testing.T) {
	key := TrieKey(0)
	if key.Len() != 0 {
		t.Fatalf("TrieKey(0).Len() = %d, want 0", key.Len())
	}
}

func TestTrieKey_IndexFourteen(t *testing.T) {
	key := TrieKey(14)
	if key.Len() != 2 {
		t.Fatalf("TrieKey(14).Len() = %d, want 2", key.Len())
	}
	if key.Get(0) != 0x0 || key.Get(1) != 0xe {
		t.Fatalf("TrieKey(14) = [%x %x], want [0 e]", key.Get(0), key.Get(1))
	}
}

func TestEncodeTransactionIndex_Minimal(t *testing.T) {
	cases := []struct {
		index uint64
		want  []byte
	}{
		{0, nil},
		{14, []byte{0x0e}},
		{255, []byte{0xff}},
		{256, []byte{0x01, 0x00}},
	}
	for _, c := range cases {
		got := EncodeTransactionIndex(c.index)
		if !bytes.Equal(got, c.want) {
			t.Fatalf("EncodeTransactionIndex(%d) = %x, want %x", c.index, got, c.want)
		}
	}
}

func TestEncodeReceipt_FourFieldList(t *testing.T) {
	r := Receipt{
		Type:              LegacyTxType,
		Status:            1,
		CumulativeGasUsed: uint256.NewInt(21000),
		Logs: []Log{
			{
				Address: gethcommon.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314"),
				Topics:  []gethcommon.Hash{gethcommon.HexToHash("0x01")},
				Data:    []byte{0xde, 0xad, 0xbe, 0xef},
			},
		},
	}
	encoded := EncodeReceipt(r)
	if len(encoded) == 0 {
		t.Fatalf("EncodeReceipt returned empty bytes")
	}
	// The RLP list header byte must mark a list, not a string.
	if encoded[0] < 0xc0 {
		t.Fatalf("EncodeReceipt did not produce a list: first byte %x", encoded[0])
	}
}

func TestEncodeReceiptEnvelope_TypedPrefix(t *testing.T) {
	r := Receipt{Type: DynamicFeeTxType, Status: 1, CumulativeGasUsed: uint256.NewInt(1)}
	envelope := EncodeReceiptEnvelope(r)
	if envelope[0] != byte(DynamicFeeTxType) {
		t.Fatalf("EncodeReceiptEnvelope did not prefix the EIP-2718 type byte: got %x", envelope[0])
	}
	legacy := EncodeReceipt(r)
	if !bytes.Equal(envelope[1:], legacy) {
		t.Fatalf("EncodeReceiptEnvelope body diverges from EncodeReceipt")
	}
}

func TestEncodeReceiptEnvelope_LegacyHasNoPrefix(t *testing.T) {
	r := Receipt{Type: LegacyTxType, Status: 1, CumulativeGasUsed: uint256.NewInt(1)}
	if !bytes.Equal(EncodeReceiptEnvelope(r), EncodeReceipt(r)) {
		t.Fatalf("legacy envelope must equal the bare RLP list")
	}
}

func TestBlock_IndexOf(t *testing.T) {
	target := gethcommon.HexToHash("0xaa")
	b := Block{Transactions: []gethcommon.Hash{gethcommon.HexToHash("0x01"), target, gethcommon.HexToHash("0x02")}}
	idx, ok := b.IndexOf(target)
	if !ok || idx != 1 {
		t.Fatalf("IndexOf = (%d, %v), want (1, true)", idx, ok)
	}
	if _, ok := b.IndexOf(gethcommon.HexToHash("0xff")); ok {
		t.Fatalf("IndexOf found a transaction that was not present")
	}
}
