// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package receipt holds the post-Byzantium Ethereum receipt and block
// records the trie is built over, plus the two specialized encoders
// (transaction index, receipt) the generic RLP codec in internal/rlp does
// not know how to derive on its own.
package receipt

import (
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/nibble"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/rlp"
)

// Log is a single EVM log entry attached to a receipt.
type Log struct {
	Address gethcommon.Address
	Topics  []gethcommon.Hash
	Data    []byte
}

// TxType identifies the EIP-2718 envelope a receipt was produced under.
// LegacyTxType receipts RLP-encode with no leading type byte; every later
// type prefixes the RLP list with a single type byte outside the list,
// per EIP-2718.
type TxType uint8

const (
	LegacyTxType     TxType = 0x00
	AccessListTxType TxType = 0x01
	DynamicFeeTxType TxType = 0x02
	BlobTxType       TxType = 0x03
)

// Receipt is a post-Byzantium Ethereum transaction receipt: the pre-Byzantium
// intermediate-state-root field is out of scope, matching every receipt a
// live JSON-RPC endpoint returns today.
type Receipt struct {
	Type              TxType
	Status            uint8
	CumulativeGasUsed *uint256.Int
	LogsBloom         [256]byte
	Logs              []Log
}

// Block is the minimal header and body slice the core needs: enough to
// locate a transaction's index and cross-check the computed trie root.
// BaseFeePerGas is carried but unused by the core; post-London JSON-RPC
// block responses always include it and dropping unknown fields silently
// at the boundary is worse than naming them.
type Block struct {
	Number        uint64
	Hash          gethcommon.Hash
	Transactions  []gethcommon.Hash
	ReceiptsRoot  gethcommon.Hash
	BaseFeePerGas *uint256.Int
}

// IndexOf returns the position of txHash within the block's transaction
// list, or false if the block does not contain it.
func (b Block) IndexOf(txHash gethcommon.Hash) (int, bool) {
	for i, h := range b.Transactions {
		if h == txHash {
			return i, true
		}
	}
	return 0, false
}

// minimalBigEndian returns v's big-endian representation with no leading
// zero byte; zero itself encodes as the empty slice. This is the numeric
// minimality rule spec.md §4.2/§9 calls out as the largest source of
// "almost works" bugs in third-party MPT ports.
func minimalBigEndian(v uint64) []byte {
	if v == 0 {
		return nil
	}
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	i := 0
	for i < len(buf) && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

// EncodeTransactionIndex returns the minimal big-endian byte representation
// of a transaction's position within its block. The trie key derived from
// it is this value's nibbles directly — see TrieKey — not the nibbles of
// its RLP string wire encoding; spec.md §8 scenario 2 pins index 0 to the
// empty key, which only holds under the former reading (see DESIGN.md's
// open-question resolution for the trie-key derivation).
func EncodeTransactionIndex(index uint64) []byte {
	return minimalBigEndian(index)
}

// TrieKey returns the nibble path a receipt at the given transaction index
// is stored under in the receipts trie.
func TrieKey(index uint64) nibble.Nibbles {
	return nibble.FromBytes(EncodeTransactionIndex(index))
}

func uint256ToMinimalBytes(v *uint256.Int) []byte {
	if v == nil || v.IsZero() {
		return nil
	}
	b := v.Bytes() // uint256.Int.Bytes() is already minimal big-endian.
	return b
}

// EncodeReceipt RLP-encodes r as the four-field list
// [status, cumulative_gas_used, logs_bloom, logs]. When r.Type is not
// LegacyTxType, the caller (see EncodeReceiptEnvelope) must prefix the
// result with the single EIP-2718 type byte outside the RLP list; this
// function only ever returns the inner list encoding.
func EncodeReceipt(r Receipt) []byte {
	logs := make([]rlp.Item, len(r.Logs))
	for i, l := range r.Logs {
		topics := make([]rlp.Item, len(l.Topics))
		for j, t := range l.Topics {
			topics[j] = rlp.Hash{Hash: t}
		}
		logs[i] = rlp.List{Items: []rlp.Item{
			rlp.String{Str: l.Address.Bytes()},
			rlp.List{Items: topics},
			rlp.String{Str: l.Data},
		}}
	}

	return rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.String{Str: minimalBigEndian(uint64(r.Status))},
		rlp.String{Str: uint256ToMinimalBytes(r.CumulativeGasUsed)},
		rlp.String{Str: r.LogsBloom[:]},
		rlp.List{Items: logs},
	}})
}

// EncodeReceiptEnvelope returns the bytes stored as the trie value: the
// plain RLP list for a legacy receipt, or the EIP-2718 typed envelope
// (type byte || RLP list) for every later transaction type.
func EncodeReceiptEnvelope(r Receipt) []byte {
	body := EncodeReceipt(r)
	if r.Type == LegacyTxType {
		return body
	}
	return append([]byte{byte(r.Type)}, body...)
}

// CumulativeGasUsedFromBig adapts a *big.Int (the shape most JSON-RPC
// decoders hand back) into the uint256 representation Receipt stores.
func CumulativeGasUsedFromBig(v *big.Int) *uint256.Int {
	u, _ := uint256.FromBig(v)
	return u
}
