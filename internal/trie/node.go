// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package trie implements a Modified Merkle-Patricia Trie restricted to
// this module's single use case: building the receipts trie of one block
// and extracting an inclusion proof from it. There is no persistence, no
// mutation after construction finishes, and no account/storage trie
// support — see the teacher's much larger state/mpt and database/mpt
// packages for that; this is the minimal, in-memory slice of the same
// ideas spec.md §9 recommends ("nodes as plain values... pure function
// from (old_root, key, value) to (new_root, updated store)").
package trie

import (
	gethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/nibble"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/rlp"
)

// Node is the sum type over the four MPT node variants. It is a closed set
// implemented by EmptyNode, LeafNode, ExtensionNode and BranchNode; callers
// switch on the concrete type.
type Node interface {
	// encode returns this node's RLP encoding.
	encode() []byte
	isNode()
}

// EmptyNode represents the null root. Its RLP encoding is the empty byte
// string; its hash is keccak256-of-that, the well-known EmptyTrieRoot.
type EmptyNode struct{}

func (EmptyNode) isNode() {}
func (EmptyNode) encode() []byte {
	return rlp.Encode(rlp.String{})
}

// LeafNode terminates a path at a value.
type LeafNode struct {
	Path  nibble.Nibbles
	Value []byte
}

func (LeafNode) isNode() {}
func (n LeafNode) encode() []byte {
	return rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.String{Str: nibble.ToHexPrefixBytes(n.Path, true)},
		rlp.String{Str: n.Value},
	}})
}

// ExtensionNode compresses a single-child chain of nibbles shared by every
// key passing through it.
type ExtensionNode struct {
	Path  nibble.Nibbles
	Child NodeRef
}

func (ExtensionNode) isNode() {}
func (n ExtensionNode) encode() []byte {
	return rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.String{Str: nibble.ToHexPrefixBytes(n.Path, false)},
		n.Child.item(),
	}})
}

// BranchNode is the 17-field fan-out node: one subtree reference per
// nibble value plus a value slot taken only when a key terminates exactly
// at this node.
type BranchNode struct {
	Slots [16]NodeRef
	Value []byte // nil means "no value here"
}

func (BranchNode) isNode() {}
func (n BranchNode) encode() []byte {
	items := make([]rlp.Item, 17)
	for i := 0; i < 16; i++ {
		items[i] = n.Slots[i].item()
	}
	items[16] = rlp.String{Str: n.Value}
	return rlp.Encode(rlp.List{Items: items})
}

// HasValue reports whether the branch terminates a key at this node.
func (n BranchNode) HasValue() bool { return n.Value != nil }

// refKind distinguishes the three states a NodeRef can be in. A plain
// zero-value comparison on an embedded common.Hash would conflate "empty"
// with the astronomically unlikely but not type-excluded all-zero hash, so
// the kind is tracked explicitly instead.
type refKind int

const (
	refEmpty refKind = iota
	refInline
	refHashed
)

// NodeRef is a reference to a child node: either the 32-byte Keccak-256
// hash of the child's RLP encoding, or — when that RLP is itself shorter
// than 32 bytes — the RLP bytes inlined directly. This is standard MPT
// referencing; inline children are still stored in, and resolved through,
// the trie's database under their inline bytes.
type NodeRef struct {
	kind   refKind
	hash   gethcommon.Hash
	inline []byte
}

// EmptyRef is the reference carried by an absent branch slot or an absent
// extension child; it encodes as the RLP empty string.
var EmptyRef = NodeRef{kind: refEmpty}

// IsEmpty reports whether this reference points at nothing.
func (r NodeRef) IsEmpty() bool { return r.kind == refEmpty }

// IsInline reports whether this reference carries its target's RLP bytes
// directly rather than a hash.
func (r NodeRef) IsInline() bool { return r.kind == refInline }

// Hash returns the referenced hash. Only meaningful when the reference is
// hashed (neither empty nor inline).
func (r NodeRef) Hash() gethcommon.Hash { return r.hash }

// item returns the RLP item this reference contributes to its parent's
// encoding: the raw inline bytes spliced in, or the 32-byte hash as a
// string.
func (r NodeRef) item() rlp.Item {
	switch r.kind {
	case refEmpty:
		return rlp.String{}
	case refInline:
		return rlp.Encoded{Data: r.inline}
	default:
		return rlp.Hash{Hash: r.hash}
	}
}

// makeRef computes the reference a newly-produced node should be stored
// and addressed under: inline if its RLP encoding is under 32 bytes, else
// its Keccak-256 hash.
func makeRef(n Node, hasher func([]byte) gethcommon.Hash) NodeRef {
	encoded := n.encode()
	if len(encoded) < 32 {
		return NodeRef{kind: refInline, inline: encoded}
	}
	return NodeRef{kind: refHashed, hash: hasher(encoded)}
}
