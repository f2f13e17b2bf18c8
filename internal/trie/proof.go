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
	"encoding/hex"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/errs"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/nibble"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/rlp"
)

// EncodeStackHex RLP-encodes each node of stack as raw bytes (not nested
// as a string) and hex-encodes the concatenation, lowercase and
// 0x-prefixed. The node encodings are not wrapped in an enclosing RLP
// list: the proof is the bare back-to-back sequence of node encodings.
func EncodeStackHex(stack NodeStack) string {
	var raw []byte
	for _, n := range stack {
		raw = append(raw, n.encode()...)
	}
	return "0x" + hex.EncodeToString(raw)
}

// ExtractProof walks t along key and returns the hex-encoded concatenation
// of the RLP encodings of every node visited, root first. The proof is
// self-verifying: hashing item 0 gives the root hash, and each item i+1
// matches the reference embedded in item i — by its hash, or, for a child
// whose encoding is under 32 bytes, by its bytes inlined in item i. A miss still returns a proof — of the exclusion — rather
// than an error; Find's own error return is reserved for database
// corruption (a referenced child missing from the store).
func ExtractProof(t *Trie, key nibble.Nibbles) (string, bool, error) {
	_, found, stack, _, err := t.Find(key)
	if err != nil {
		return "", false, err
	}
	return EncodeStackHex(stack), found, nil
}

// DecodeProofStack splits a proof's concatenated RLP encodings back into
// the individual node items, the inverse half of ExtractProof. It exists so
// a verifier that only has the hex proof string (not the original trie) can
// recover the per-node encodings needed to re-derive the root hash.
func DecodeProofStack(hexProof string) ([][]byte, error) {
	data := hexProof
	if len(data) >= 2 && data[0] == '0' && (data[1] == 'x' || data[1] == 'X') {
		data = data[2:]
	}
	raw, err := hex.DecodeString(data)
	if err != nil {
		return nil, errs.New(errs.RlpMalformed, "proof is not valid hex", err)
	}

	var items [][]byte
	for len(raw) > 0 {
		_, n, err := rlp.DecodePrefix(raw)
		if err != nil {
			return nil, errs.New(errs.RlpMalformed, "proof contains malformed RLP", err)
		}
		items = append(items, raw[:n])
		raw = raw[n:]
	}
	return items, nil
}
