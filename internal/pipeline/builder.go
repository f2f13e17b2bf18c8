// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package pipeline threads the proof-generation run's inputs and
// intermediate artifacts from one stage to the next. It offers two
// equivalent shapes over the same slots: the Started/WithEndpoint/.../Done
// chain, a type-state sequence where each completed stage is its own named
// type so a stage cannot be skipped or repeated without a compile error,
// and State, a dynamic tag-keyed container for the handful of call sites
// (the --verbose dumper, tests) that need to inspect an in-flight run
// generically.
package pipeline

import (
	gethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/receipt"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/trie"
)

// Started holds the pipeline's one required input: the transaction hash a
// proof is being generated for.
type Started struct {
	TxHash    gethcommon.Hash
	TxHashHex string
}

// New begins a pipeline run for txHash.
func New(txHash gethcommon.Hash, txHashHex string) Started {
	return Started{TxHash: txHash, TxHashHex: txHashHex}
}

// WithEndpoint records which JSON-RPC endpoint this run talks to.
type WithEndpoint struct {
	Started
	Endpoint string
}

func (s Started) WithEndpoint(endpoint string) WithEndpoint {
	return WithEndpoint{Started: s, Endpoint: endpoint}
}

// WithBlock records the block the target transaction was included in.
type WithBlock struct {
	WithEndpoint
	Block *receipt.Block
}

func (s WithEndpoint) WithBlock(block *receipt.Block) WithBlock {
	return WithBlock{WithEndpoint: s, Block: block}
}

// WithIndex records the transaction's position within Block.Transactions.
type WithIndex struct {
	WithBlock
	Index uint64
}

func (s WithBlock) WithIndex(index uint64) WithIndex {
	return WithIndex{WithBlock: s, Index: index}
}

// WithReceipts records every receipt belonging to Block, in
// transaction-index order.
type WithReceipts struct {
	WithIndex
	Receipts []*receipt.Receipt
}

func (s WithIndex) WithReceipts(receipts []*receipt.Receipt) WithReceipts {
	return WithReceipts{WithIndex: s, Receipts: receipts}
}

// WithTrie records the receipts trie built from Receipts.
type WithTrie struct {
	WithReceipts
	ReceiptsTrie *trie.Trie
}

func (s WithReceipts) WithTrie(t *trie.Trie) WithTrie {
	return WithTrie{WithReceipts: s, ReceiptsTrie: t}
}

// WithBranch records the node stack produced by walking ReceiptsTrie to
// Index's key.
type WithBranch struct {
	WithTrie
	Branch trie.NodeStack
}

func (s WithTrie) WithBranch(branch trie.NodeStack) WithBranch {
	return WithBranch{WithTrie: s, Branch: branch}
}

// Done is the terminal stage: the hex-encoded proof ready to emit.
type Done struct {
	WithBranch
	HexProof string
}

func (s WithBranch) WithHexProof(hexProof string) Done {
	return Done{WithBranch: s, HexProof: hexProof}
}
