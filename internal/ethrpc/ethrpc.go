// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package ethrpc is the JSON-RPC transport collaborator: it turns an
// Ethereum node's eth_getBlockByNumber/eth_getTransactionReceipt responses
// into the receipt.Block/receipt.Receipt records the trie core consumes.
// The core never imports this package; main wires it in as the concrete
// implementation of the Client interface.
package ethrpc

//go:generate mockgen -source=ethrpc.go -destination=ethrpcmock/mock_client.go -package=ethrpcmock

import (
	"context"
	"fmt"
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/errs"
	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/receipt"
)

// Client is the RPC collaborator contract spec.md §6 describes abstractly.
type Client interface {
	// BlockByNumberOrLatest resolves selector ("latest" or a decimal/hex
	// block number) to a Block.
	BlockByNumberOrLatest(ctx context.Context, selector string) (*receipt.Block, error)
	// Receipt fetches the receipt for txHash along with the number of the
	// block it was included in.
	Receipt(ctx context.Context, txHash gethcommon.Hash) (*receipt.Receipt, uint64, error)
	// ReceiptsForBlock fetches every receipt belonging to block, in
	// transaction-index order, batched into a single round trip.
	ReceiptsForBlock(ctx context.Context, block *receipt.Block) ([]*receipt.Receipt, error)
}

// client implements Client over a go-ethereum JSON-RPC connection.
type client struct {
	rpc *rpc.Client
}

// Dial connects to endpoint (http(s):// or ws(s)://) and returns a Client.
func Dial(ctx context.Context, endpoint string) (Client, error) {
	c, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errs.New(errs.TransportFailure, fmt.Sprintf("dial %s", endpoint), err)
	}
	return &client{rpc: c}, nil
}

// rpcBlock mirrors the subset of eth_getBlockByNumber's JSON result this
// module reads.
type rpcBlock struct {
	Number        hexutil.Uint64    `json:"number"`
	Hash          gethcommon.Hash   `json:"hash"`
	Transactions  []gethcommon.Hash `json:"transactions"`
	ReceiptsRoot  gethcommon.Hash   `json:"receiptsRoot"`
	BaseFeePerGas *hexutil.Big      `json:"baseFeePerGas"`
}

func (c *client) BlockByNumberOrLatest(ctx context.Context, selector string) (*receipt.Block, error) {
	var raw rpcBlock
	// The third positional argument (false) asks for transaction hashes
	// only, not full transaction objects; that is all IndexOf needs.
	if err := c.rpc.CallContext(ctx, &raw, "eth_getBlockByNumber", selector, false); err != nil {
		return nil, errs.New(errs.TransportFailure, "eth_getBlockByNumber", err)
	}
	if raw.Hash == (gethcommon.Hash{}) {
		return nil, errs.New(errs.NotFound, fmt.Sprintf("block %q not found", selector), nil)
	}
	var baseFee *uint256.Int
	if raw.BaseFeePerGas != nil {
		baseFee = receipt.CumulativeGasUsedFromBig((*big.Int)(raw.BaseFeePerGas))
	}
	return &receipt.Block{
		Number:        uint64(raw.Number),
		Hash:          raw.Hash,
		Transactions:  raw.Transactions,
		ReceiptsRoot:  raw.ReceiptsRoot,
		BaseFeePerGas: baseFee,
	}, nil
}

// rpcLog mirrors the JSON shape of a single log entry inside a receipt.
type rpcLog struct {
	Address gethcommon.Address `json:"address"`
	Topics  []gethcommon.Hash  `json:"topics"`
	Data    hexutil.Bytes      `json:"data"`
}

// rpcReceipt mirrors the subset of eth_getTransactionReceipt's JSON result
// this module reads.
type rpcReceipt struct {
	Type              hexutil.Uint64  `json:"type"`
	Status            hexutil.Uint64  `json:"status"`
	CumulativeGasUsed hexutil.Big     `json:"cumulativeGasUsed"`
	LogsBloom         hexutil.Bytes   `json:"logsBloom"`
	Logs              []rpcLog        `json:"logs"`
	BlockNumber       hexutil.Uint64  `json:"blockNumber"`
	TransactionHash   gethcommon.Hash `json:"transactionHash"`
}

func (r rpcReceipt) toDomain() *receipt.Receipt {
	logs := make([]receipt.Log, len(r.Logs))
	for i, l := range r.Logs {
		logs[i] = receipt.Log{Address: l.Address, Topics: l.Topics, Data: l.Data}
	}
	var bloom [256]byte
	copy(bloom[:], r.LogsBloom)
	return &receipt.Receipt{
		Type:              receipt.TxType(r.Type),
		Status:            uint8(r.Status),
		CumulativeGasUsed: receipt.CumulativeGasUsedFromBig((*big.Int)(&r.CumulativeGasUsed)),
		LogsBloom:         bloom,
		Logs:              logs,
	}
}

func (c *client) Receipt(ctx context.Context, txHash gethcommon.Hash) (*receipt.Receipt, uint64, error) {
	var raw rpcReceipt
	if err := c.rpc.CallContext(ctx, &raw, "eth_getTransactionReceipt", txHash); err != nil {
		return nil, 0, errs.New(errs.TransportFailure, "eth_getTransactionReceipt", err)
	}
	if raw.TransactionHash == (gethcommon.Hash{}) {
		return nil, 0, errs.New(errs.NotFound, fmt.Sprintf("no receipt for %s", txHash), nil)
	}
	return raw.toDomain(), uint64(raw.BlockNumber), nil
}

// ReceiptsForBlock fetches one receipt per transaction hash in block,
// batched into a single round trip via rpc.BatchCallContext.
func (c *client) ReceiptsForBlock(ctx context.Context, block *receipt.Block) ([]*receipt.Receipt, error) {
	if len(block.Transactions) == 0 {
		return nil, nil
	}

	raws := make([]rpcReceipt, len(block.Transactions))
	batch := make([]rpc.BatchElem, len(block.Transactions))
	for i, txHash := range block.Transactions {
		batch[i] = rpc.BatchElem{
			Method: "eth_getTransactionReceipt",
			Args:   []interface{}{txHash},
			Result: &raws[i],
		}
	}

	if err := c.rpc.BatchCallContext(ctx, batch); err != nil {
		return nil, errs.New(errs.TransportFailure, "batched eth_getTransactionReceipt", err)
	}

	receipts := make([]*receipt.Receipt, len(batch))
	for i, elem := range batch {
		if elem.Error != nil {
			return nil, errs.New(errs.TransportFailure, fmt.Sprintf("receipt %d of batch", i), elem.Error)
		}
		receipts[i] = raws[i].toDomain()
	}
	return receipts, nil
}
