// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Command receiptproof generates a Merkle-Patricia inclusion proof for an
// Ethereum transaction receipt.
//
// Run with `go run ./cmd/receiptproof <tx-hash>`.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/KunPengRen/ethereum-receipt-proof-maker/internal/errs"
)

var (
	endpointFlag = cli.StringFlag{
		Name:    "endpoint",
		Usage:   "Ethereum JSON-RPC endpoint to query",
		Value:   "https://ethereum-rpc.publicnode.com",
		EnvVars: []string{"ETH_RPC_ENDPOINT"},
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "print each pipeline stage's slot contents to stderr",
	}
)

func main() {
	app := &cli.App{
		Name:      "receiptproof",
		Usage:     "generate a Merkle-Patricia inclusion proof for a transaction receipt",
		ArgsUsage: "<tx-hash>",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags:     []cli.Flag{&endpointFlag, &verboseFlag},
		Action:    generateProof,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errs.ExitCode(err))
	}
}

// newLogger returns a progress logger for the run. Progress lines only
// ever go to stderr, keeping stdout reserved for the single hex-encoded
// proof string the CLI contract promises; with --verbose unset the logger
// discards everything.
func newLogger(ctx *cli.Context) *log.Logger {
	if !ctx.Bool(verboseFlag.Name) {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.LstdFlags)
}
