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
	"fmt"

	gethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/errs"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/keccak256"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/nibble"
)

// refKey is the content-address a node is stored under in the database: it
// folds NodeRef's two addressing modes (hash or inline bytes) into one
// comparable map key, since a child smaller than 32 bytes is referenced by
// its bytes rather than a hash and still needs to be resolvable when a
// lookup later descends through it.
type refKey string

func keyOf(r NodeRef) refKey {
	switch r.kind {
	case refInline:
		return refKey("i:" + string(r.inline))
	default:
		return refKey("h:" + string(r.hash[:]))
	}
}

// database is the content-addressed node store described in spec.md §3:
// every reachable child reference resolves to a stored node. Nodes are
// never edited in place; Insert always writes freshly built nodes under
// their own content address.
type database struct {
	nodes map[refKey]Node
}

func newDatabase() *database {
	return &database{nodes: make(map[refKey]Node)}
}

func (d *database) put(ref NodeRef, n Node) {
	d.nodes[keyOf(ref)] = n
}

func (d *database) get(ref NodeRef) (Node, bool) {
	if ref.IsEmpty() {
		return EmptyNode{}, true
	}
	n, ok := d.nodes[keyOf(ref)]
	return n, ok
}

func (d *database) size() int { return len(d.nodes) }

// store computes n's reference (hash, or inline if its RLP is under 32
// bytes), records n under that address, and returns the reference for the
// caller to embed in its parent.
func (d *database) store(n Node) NodeRef {
	ref := makeRef(n, keccak256.Sum)
	d.put(ref, n)
	return ref
}

// Trie is an immutable-per-version Modified Merkle-Patricia Trie: Root
// identifies the current structural root node, db is the shared,
// append-only content-addressed node store backing every version produced
// by successive Insert calls.
type Trie struct {
	Root gethcommon.Hash
	db   *database
}

// New returns an empty trie whose root is the well-known empty-trie
// constant keccak256(rlp("")).
func New() *Trie {
	return &Trie{Root: keccak256.EmptyTrieRoot, db: newDatabase()}
}

// Size returns the number of distinct nodes physically stored (root nodes
// across all historical versions plus every referenced child); purely a
// diagnostic accessor.
func (t *Trie) Size() int { return t.db.size() }

func (t *Trie) resolveRoot() (Node, error) {
	if t.Root == keccak256.EmptyTrieRoot {
		return EmptyNode{}, nil
	}
	n, ok := t.db.get(NodeRef{kind: refHashed, hash: t.Root})
	if !ok {
		return nil, errs.New(errs.TrieMismatch, fmt.Sprintf("root hash %x not present in database", t.Root), nil)
	}
	return n, nil
}

func (t *Trie) resolveChild(ref NodeRef) (Node, error) {
	n, ok := t.db.get(ref)
	if !ok {
		return nil, errs.New(errs.TrieMismatch, "dangling child reference", nil)
	}
	return n, nil
}

// Insert adds or overwrites the value stored at key and sets t.Root to the
// new root hash. Duplicate keys overwrite deterministically (last write wins).
// Receipts must be inserted in ascending transaction-index order per the
// module's ordering guarantee, though the resulting root does not depend
// on insertion order (see TestTrie_OrderIndependence).
func (t *Trie) Insert(key nibble.Nibbles, value []byte) error {
	root, err := t.resolveRoot()
	if err != nil {
		return err
	}
	newRoot, err := t.insertInto(root, key, value)
	if err != nil {
		return err
	}
	if _, ok := newRoot.(EmptyNode); ok {
		t.Root = keccak256.EmptyTrieRoot
		return nil
	}
	ref := t.db.store(newRoot)
	if ref.IsInline() {
		// The root is always addressed by hash regardless of its encoded
		// size; inlining is a child-reference-only optimization.
		t.Root = keccak256.Sum(newRoot.encode())
		t.db.put(NodeRef{kind: refHashed, hash: t.Root}, newRoot)
		return nil
	}
	t.Root = ref.Hash()
	return nil
}

func (t *Trie) insertInto(node Node, key nibble.Nibbles, value []byte) (Node, error) {
	switch n := node.(type) {
	case EmptyNode:
		return LeafNode{Path: key, Value: value}, nil

	case LeafNode:
		return t.insertIntoLeaf(n, key, value)

	case ExtensionNode:
		return t.insertIntoExtension(n, key, value)

	case BranchNode:
		return t.insertIntoBranch(n, key, value)

	default:
		return nil, errs.New(errs.TrieMismatch, fmt.Sprintf("unknown node type %T", node), nil)
	}
}

func (t *Trie) insertIntoLeaf(n LeafNode, key nibble.Nibbles, value []byte) (Node, error) {
	s := nibble.SharedPrefixLength(n.Path, key)
	if s == n.Path.Len() && s == key.Len() {
		return LeafNode{Path: n.Path, Value: value}, nil
	}

	_, pRem := n.Path.SplitAt(s)
	_, keyRem := key.SplitAt(s)

	branch := BranchNode{}
	if pRem.Len() == 0 {
		branch.Value = n.Value
	} else {
		idx := pRem.Get(0)
		_, rest := pRem.SplitAt(1)
		branch.Slots[idx] = t.db.store(LeafNode{Path: rest, Value: n.Value})
	}
	if keyRem.Len() == 0 {
		branch.Value = value
	} else {
		idx := keyRem.Get(0)
		_, rest := keyRem.SplitAt(1)
		branch.Slots[idx] = t.db.store(LeafNode{Path: rest, Value: value})
	}

	if s == 0 {
		return branch, nil
	}
	prefix, _ := n.Path.SplitAt(s)
	branchRef := t.db.store(branch)
	return ExtensionNode{Path: prefix, Child: branchRef}, nil
}

func (t *Trie) insertIntoExtension(n ExtensionNode, key nibble.Nibbles, value []byte) (Node, error) {
	s := nibble.SharedPrefixLength(n.Path, key)

	if s == n.Path.Len() {
		childNode, err := t.resolveChild(n.Child)
		if err != nil {
			return nil, err
		}
		_, keyTail := key.SplitAt(s)
		newChild, err := t.insertInto(childNode, keyTail, value)
		if err != nil {
			return nil, err
		}
		return ExtensionNode{Path: n.Path, Child: t.db.store(newChild)}, nil
	}

	// s < n.Path.Len(): split the extension at the shared prefix.
	_, pRest := n.Path.SplitAt(s)
	_, keyRest := key.SplitAt(s)

	branch := BranchNode{}

	// Side A: the original subtree, now addressed by the remaining suffix
	// of the extension's path (pRest always has at least one nibble here
	// since s < n.Path.Len()).
	idxA := pRest.Get(0)
	_, pRestTail := pRest.SplitAt(1)
	if pRestTail.Len() == 0 {
		branch.Slots[idxA] = n.Child
	} else {
		branch.Slots[idxA] = t.db.store(ExtensionNode{Path: pRestTail, Child: n.Child})
	}

	// Side B: the newly inserted value.
	if keyRest.Len() == 0 {
		branch.Value = value
	} else {
		idxB := keyRest.Get(0)
		_, keyRestTail := keyRest.SplitAt(1)
		branch.Slots[idxB] = t.db.store(LeafNode{Path: keyRestTail, Value: value})
	}

	if s == 0 {
		return branch, nil
	}
	prefix, _ := n.Path.SplitAt(s)
	branchRef := t.db.store(branch)
	return ExtensionNode{Path: prefix, Child: branchRef}, nil
}

func (t *Trie) insertIntoBranch(n BranchNode, key nibble.Nibbles, value []byte) (Node, error) {
	if key.Len() == 0 {
		n.Value = value
		return n, nil
	}
	idx := key.Get(0)
	_, rest := key.SplitAt(1)
	childNode, err := t.resolveChild(n.Slots[idx])
	if err != nil {
		return nil, err
	}
	newChild, err := t.insertInto(childNode, rest, value)
	if err != nil {
		return nil, err
	}
	n.Slots[idx] = t.db.store(newChild)
	return n, nil
}

// NodeStack is the ordered sequence of nodes visited from root to (and
// including, on a hit) the terminal node for a lookup.
type NodeStack []Node

// Find walks the trie from the root along key, returning the stored value
// (if any), whether it was found, the node stack traversed (returned
// regardless of hit/miss, enabling proof assembly either way), and the
// suffix of key left unconsumed on a miss.
func (t *Trie) Find(key nibble.Nibbles) (value []byte, found bool, stack NodeStack, remaining nibble.Nibbles, err error) {
	node, err := t.resolveRoot()
	if err != nil {
		return nil, false, nil, key, err
	}
	stack = NodeStack{node}
	remaining = key

	for {
		switch n := node.(type) {
		case EmptyNode:
			return nil, false, stack, remaining, nil

		case LeafNode:
			if nibble.Equal(n.Path, remaining) {
				return n.Value, true, stack, nibble.Nibbles{}, nil
			}
			return nil, false, stack, remaining, nil

		case ExtensionNode:
			if remaining.Len() < n.Path.Len() {
				return nil, false, stack, remaining, nil
			}
			prefix, rest := remaining.SplitAt(n.Path.Len())
			if !nibble.Equal(prefix, n.Path) {
				return nil, false, stack, remaining, nil
			}
			child, err := t.resolveChild(n.Child)
			if err != nil {
				return nil, false, stack, remaining, err
			}
			stack = append(stack, child)
			node = child
			remaining = rest

		case BranchNode:
			if remaining.Len() == 0 {
				if n.HasValue() {
					return n.Value, true, stack, nibble.Nibbles{}, nil
				}
				return nil, false, stack, remaining, nil
			}
			idx := remaining.Get(0)
			ref := n.Slots[idx]
			if ref.IsEmpty() {
				return nil, false, stack, remaining, nil
			}
			child, err := t.resolveChild(ref)
			if err != nil {
				return nil, false, stack, remaining, err
			}
			_, rest := remaining.SplitAt(1)
			stack = append(stack, child)
			node = child
			remaining = rest

		default:
			return nil, false, stack, remaining, errs.New(errs.TrieMismatch, fmt.Sprintf("unknown node type %T", node), nil)
		}
	}
}
