// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package keccak256 computes Ethereum's "sha3" hash — the pre-NIST Keccak
// variant, not the FIPS-202 SHA3-256 that shares its name with it.
package keccak256

import (
	"sync"

	"golang.org/x/crypto/sha3"

	gethcommon "github.com/ethereum/go-ethereum/common"
)

// keccakHasher is the minimal surface this package needs from a
// hash.Hash-like object, letting the pool hold concrete *sha3 states
// without importing hash.Hash's Sum/BlockSize/Size methods we never call.
type keccakHasher interface {
	Reset()
	Write(in []byte) (int, error)
	Read(out []byte) (int, error)
}

var pool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

// Sum computes the 256-bit Keccak hash of data. It is a pure function: the
// pooled hasher state never escapes this call.
func Sum(data []byte) gethcommon.Hash {
	h := pool.Get().(keccakHasher)
	h.Reset()
	h.Write(data)
	var res gethcommon.Hash
	h.Read(res[:])
	pool.Put(h)
	return res
}

// EmptyTrieRoot is the well-known root hash of an empty Modified
// Merkle-Patricia Trie: keccak256(rlp("")) == keccak256(0x80).
var EmptyTrieRoot = Sum([]byte{0x80})
