// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package pipeline

import (
	"fmt"

	gethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/errs"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/receipt"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/trie"
)

// Slot names one of the pipeline's write-once fields.
type Slot string

const (
	SlotTxHash       Slot = "tx_hash"
	SlotEndpoint     Slot = "endpoint"
	SlotBlock        Slot = "block"
	SlotIndex        Slot = "index"
	SlotReceipts     Slot = "receipts"
	SlotReceiptsTrie Slot = "receipts_trie"
	SlotBranch       Slot = "branch"
	SlotHexProof     Slot = "hex_proof"
)

// State is the dynamic, tag-keyed alternative to the type-state chain:
// every slot lives in one map, set exactly once and read back by tag. It
// exists for call sites that need to inspect a run generically (the
// --verbose dumper, tests asserting mid-pipeline slot contents) rather
// than thread a specific named stage type through their own signatures.
type State struct {
	values map[Slot]any
}

// NewState begins a run, populating the one required slot.
func NewState(txHash gethcommon.Hash, txHashHex string) *State {
	s := &State{values: make(map[Slot]any, 8)}
	s.values[SlotTxHash] = txHash
	s.values[SlotTxHash+"_hex"] = txHashHex
	return s
}

// set records value under slot, failing if the slot is already populated.
func (s *State) set(slot Slot, value any) error {
	if _, ok := s.values[slot]; ok {
		return errs.New(errs.StateSlotOccupied, string(slot), nil)
	}
	s.values[slot] = value
	return nil
}

// get retrieves the value stored under slot, failing if it is empty.
func (s *State) get(slot Slot) (any, error) {
	v, ok := s.values[slot]
	if !ok {
		return nil, errs.New(errs.StateSlotEmpty, string(slot), nil)
	}
	return v, nil
}

// TxHash returns the required transaction hash and its hex form.
func (s *State) TxHash() (gethcommon.Hash, string) {
	hash, _ := s.values[SlotTxHash].(gethcommon.Hash)
	hex, _ := s.values[SlotTxHash+"_hex"].(string)
	return hash, hex
}

// SetEndpoint records the JSON-RPC endpoint for this run.
func (s *State) SetEndpoint(endpoint string) error { return s.set(SlotEndpoint, endpoint) }

// Endpoint returns the previously set endpoint.
func (s *State) Endpoint() (string, error) {
	v, err := s.get(SlotEndpoint)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// SetBlock records the block the target transaction belongs to.
func (s *State) SetBlock(block *receipt.Block) error { return s.set(SlotBlock, block) }

// Block returns the previously set block.
func (s *State) Block() (*receipt.Block, error) {
	v, err := s.get(SlotBlock)
	if err != nil {
		return nil, err
	}
	return v.(*receipt.Block), nil
}

// SetIndex records the transaction's position within its block.
func (s *State) SetIndex(index uint64) error { return s.set(SlotIndex, index) }

// Index returns the previously set transaction index.
func (s *State) Index() (uint64, error) {
	v, err := s.get(SlotIndex)
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}

// SetReceipts records every receipt of the target block, in
// transaction-index order.
func (s *State) SetReceipts(receipts []*receipt.Receipt) error {
	return s.set(SlotReceipts, receipts)
}

// Receipts returns the previously set receipt list.
func (s *State) Receipts() ([]*receipt.Receipt, error) {
	v, err := s.get(SlotReceipts)
	if err != nil {
		return nil, err
	}
	return v.([]*receipt.Receipt), nil
}

// SetReceiptsTrie records the trie built from Receipts.
func (s *State) SetReceiptsTrie(t *trie.Trie) error { return s.set(SlotReceiptsTrie, t) }

// ReceiptsTrie returns the previously set trie.
func (s *State) ReceiptsTrie() (*trie.Trie, error) {
	v, err := s.get(SlotReceiptsTrie)
	if err != nil {
		return nil, err
	}
	return v.(*trie.Trie), nil
}

// SetBranch records the node stack produced by the trie walk.
func (s *State) SetBranch(branch trie.NodeStack) error { return s.set(SlotBranch, branch) }

// Branch returns the previously set node stack.
func (s *State) Branch() (trie.NodeStack, error) {
	v, err := s.get(SlotBranch)
	if err != nil {
		return nil, err
	}
	return v.(trie.NodeStack), nil
}

// SetHexProof records the final hex-encoded proof.
func (s *State) SetHexProof(hexProof string) error { return s.set(SlotHexProof, hexProof) }

// HexProof returns the previously set proof.
func (s *State) HexProof() (string, error) {
	v, err := s.get(SlotHexProof)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Dump renders every populated slot as "name=value" lines, in a fixed
// order, for the CLI's --verbose diagnostic output.
func (s *State) Dump() []string {
	order := []Slot{SlotTxHash, SlotEndpoint, SlotBlock, SlotIndex, SlotReceipts, SlotReceiptsTrie, SlotBranch, SlotHexProof}
	var lines []string
	for _, slot := range order {
		if v, ok := s.values[slot]; ok {
			lines = append(lines, fmt.Sprintf("%s=%v", slot, v))
		}
	}
	return lines
}
