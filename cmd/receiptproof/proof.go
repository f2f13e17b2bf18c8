// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"context"
	"fmt"
	"strings"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/errs"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/ethrpc"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/pipeline"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/receipt"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/trie"
)

// parseTxHash validates the positional argument against spec.md §6's
// contract: a 0x-prefixed, case-insensitive, exactly-66-character hex
// string.
func parseTxHash(arg string) (gethcommon.Hash, error) {
	if len(arg) != 66 || arg[0] != '0' || (arg[1] != 'x' && arg[1] != 'X') {
		return gethcommon.Hash{}, errs.New(errs.InputMalformed, fmt.Sprintf("%q is not a 0x-prefixed 32-byte hash", arg), nil)
	}
	for _, c := range arg[2:] {
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !isHex {
			return gethcommon.Hash{}, errs.New(errs.InputMalformed, fmt.Sprintf("%q contains non-hex characters", arg), nil)
		}
	}
	return gethcommon.HexToHash(arg), nil
}

func generateProof(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errs.New(errs.InputMalformed, "expected exactly one positional argument: <tx-hash>", nil)
	}
	txHash, err := parseTxHash(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	logger := newLogger(ctx)
	endpoint := ctx.String(endpointFlag.Name)
	background := context.Background()

	client, err := ethrpc.Dial(background, endpoint)
	if err != nil {
		return err
	}

	hexProof, err := runPipeline(background, client, txHash, ctx.Args().Get(0), endpoint, logger)
	if err != nil {
		return err
	}
	fmt.Println(hexProof)
	return nil
}

// logger is the minimal surface generateProof's dependents need;
// satisfied by *log.Logger.
type logger interface {
	Printf(format string, v ...any)
}

// runPipeline drives the data flow spec.md §2 describes end to end,
// threading state through pipeline.Started's type-state chain one stage
// at a time so that each stage only ever sees the inputs the stages
// before it actually produced.
func runPipeline(ctx context.Context, client ethrpc.Client, txHash gethcommon.Hash, txHashHex, endpoint string, log logger) (string, error) {
	run := pipeline.New(txHash, txHashHex).WithEndpoint(endpoint)

	// state mirrors the type-state chain through the dynamic, tag-keyed
	// form so --verbose can dump slot contents generically instead of
	// hand-printing each typed stage.
	state := pipeline.NewState(txHash, txHashHex)
	_ = state.SetEndpoint(endpoint)

	log.Printf("fetching receipt for %s", run.TxHashHex)
	targetReceipt, blockNumber, err := client.Receipt(ctx, run.TxHash)
	if err != nil {
		return "", err
	}

	log.Printf("fetching block %d", blockNumber)
	block, err := client.BlockByNumberOrLatest(ctx, fmt.Sprintf("0x%x", blockNumber))
	if err != nil {
		return "", err
	}
	withBlock := run.WithBlock(block)
	_ = state.SetBlock(block)

	index, ok := block.IndexOf(withBlock.TxHash)
	if !ok {
		return "", errs.New(errs.NotFound, fmt.Sprintf("%s not found in block %d's transaction list", txHashHex, blockNumber), nil)
	}
	withIndex := withBlock.WithIndex(uint64(index))
	_ = state.SetIndex(withIndex.Index)

	log.Printf("fetching %d receipts for block %d", len(block.Transactions), blockNumber)
	receipts, err := client.ReceiptsForBlock(ctx, block)
	if err != nil {
		return "", err
	}
	if withIndex.Index < uint64(len(receipts)) {
		// Sanity-check the RPC's own receipt against the batch fetch; a
		// mismatch here means the node returned the batch out of order.
		if receipts[withIndex.Index].Status != targetReceipt.Status {
			log.Printf("warning: batch receipt at index %d disagrees with the direct fetch's status", withIndex.Index)
		}
	}
	withReceipts := withIndex.WithReceipts(receipts)
	_ = state.SetReceipts(receipts)

	receiptsTrie := trie.New()
	for i, r := range withReceipts.Receipts {
		key := receipt.TrieKey(uint64(i))
		if err := receiptsTrie.Insert(key, receipt.EncodeReceiptEnvelope(*r)); err != nil {
			return "", err
		}
	}
	withTrie := withReceipts.WithTrie(receiptsTrie)
	_ = state.SetReceiptsTrie(receiptsTrie)

	log.Printf("computed receipts root %s", withTrie.ReceiptsTrie.Root)
	if withTrie.ReceiptsTrie.Root != block.ReceiptsRoot {
		return "", errs.New(errs.TrieMismatch, fmt.Sprintf("computed root %s disagrees with block.receiptsRoot %s", withTrie.ReceiptsTrie.Root, block.ReceiptsRoot), nil)
	}

	_, found, stack, _, err := withTrie.ReceiptsTrie.Find(receipt.TrieKey(withTrie.Index))
	if err != nil {
		return "", err
	}
	if !found {
		return "", errs.New(errs.NotFound, fmt.Sprintf("no receipt at index %d", withTrie.Index), nil)
	}
	withBranch := withTrie.WithBranch(stack)
	_ = state.SetBranch(stack)
	done := withBranch.WithHexProof(trie.EncodeStackHex(withBranch.Branch))
	_ = state.SetHexProof(done.HexProof)

	for _, line := range state.Dump() {
		log.Printf("state: %s", line)
	}
	var dump strings.Builder
	if err := receiptsTrie.Dump(&dump); err == nil {
		log.Printf("trie dump:\n%s", dump.String())
	}

	return done.HexProof, nil
}
