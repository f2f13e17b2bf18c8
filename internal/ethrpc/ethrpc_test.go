// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ethrpc

import (
	"context"
	"net/http/httptest"
	"testing"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

func TestRpcReceipt_ToDomain(t *testing.T) {
	raw := rpcReceipt{
		Type:              1,
		Status:            1,
		CumulativeGasUsed: hexutil.Big(*hexutil.MustDecodeBig("0x5208")),
		LogsBloom:         make(hexutil.Bytes, 256),
		Logs: []rpcLog{
			{Address: gethcommon.HexToAddress("0x01"), Topics: []gethcommon.Hash{gethcommon.HexToHash("0x02")}, Data: []byte{0x01}},
		},
		BlockNumber:     100,
		TransactionHash: gethcommon.HexToHash("0xaa"),
	}
	r := raw.toDomain()
	if r.Type != 1 || r.Status != 1 {
		t.Fatalf("toDomain() type/status = (%d, %d), want (1, 1)", r.Type, r.Status)
	}
	if r.CumulativeGasUsed.Uint64() != 0x5208 {
		t.Fatalf("toDomain() CumulativeGasUsed = %v, want 0x5208", r.CumulativeGasUsed)
	}
	if len(r.Logs) != 1 || r.Logs[0].Address != gethcommon.HexToAddress("0x01") {
		t.Fatalf("toDomain() logs mismatch: %+v", r.Logs)
	}
}

// fakeNodeServer exposes the two JSON-RPC methods this module calls,
// backed entirely by in-memory fixtures, so Dial/CallContext/BatchCallContext
// can be exercised end to end without a real Ethereum node.
type fakeNodeServer struct {
	block    rpcBlock
	receipts map[gethcommon.Hash]rpcReceipt
}

func (s *fakeNodeServer) GetBlockByNumber(selector string, fullTx bool) (*rpcBlock, error) {
	return &s.block, nil
}

func (s *fakeNodeServer) GetTransactionReceipt(txHash gethcommon.Hash) (*rpcReceipt, error) {
	r, ok := s.receipts[txHash]
	if !ok {
		return &rpcReceipt{}, nil
	}
	return &r, nil
}

func newTestClient(t *testing.T, fake *fakeNodeServer) Client {
	t.Helper()
	server := gethrpc.NewServer()
	if err := server.RegisterName("eth", fake); err != nil {
		t.Fatalf("RegisterName failed: %v", err)
	}
	httpServer := httptest.NewServer(server)
	t.Cleanup(httpServer.Close)

	c, err := Dial(context.Background(), httpServer.URL)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	return c
}

func TestClient_BlockByNumberOrLatest(t *testing.T) {
	fake := &fakeNodeServer{
		block: rpcBlock{
			Number:       10,
			Hash:         gethcommon.HexToHash("0xblock"),
			Transactions: []gethcommon.Hash{gethcommon.HexToHash("0x01"), gethcommon.HexToHash("0x02")},
			ReceiptsRoot: gethcommon.HexToHash("0xroot"),
		},
	}
	client := newTestClient(t, fake)

	block, err := client.BlockByNumberOrLatest(context.Background(), "latest")
	if err != nil {
		t.Fatalf("BlockByNumberOrLatest failed: %v", err)
	}
	if block.Number != 10 || len(block.Transactions) != 2 {
		t.Fatalf("BlockByNumberOrLatest = %+v, want number 10 with 2 txs", block)
	}
}

func TestClient_ReceiptsForBlock(t *testing.T) {
	txA := gethcommon.HexToHash("0x01")
	txB := gethcommon.HexToHash("0x02")
	fake := &fakeNodeServer{
		block: rpcBlock{Number: 1, Hash: gethcommon.HexToHash("0xblock"), Transactions: []gethcommon.Hash{txA, txB}},
		receipts: map[gethcommon.Hash]rpcReceipt{
			txA: {Status: 1, TransactionHash: txA, CumulativeGasUsed: hexutil.Big(*hexutil.MustDecodeBig("0x1"))},
			txB: {Status: 0, TransactionHash: txB, CumulativeGasUsed: hexutil.Big(*hexutil.MustDecodeBig("0x2"))},
		},
	}
	client := newTestClient(t, fake)

	block, err := client.BlockByNumberOrLatest(context.Background(), "latest")
	if err != nil {
		t.Fatalf("BlockByNumberOrLatest failed: %v", err)
	}
	receipts, err := client.ReceiptsForBlock(context.Background(), block)
	if err != nil {
		t.Fatalf("ReceiptsForBlock failed: %v", err)
	}
	if len(receipts) != 2 {
		t.Fatalf("ReceiptsForBlock returned %d receipts, want 2", len(receipts))
	}
	if receipts[0].Status != 1 || receipts[1].Status != 0 {
		t.Fatalf("ReceiptsForBlock order/status mismatch: %+v", receipts)
	}
}
