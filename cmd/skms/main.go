// Package main provides the SKMS (Secure Key Management System) CLI
// application: an HD multi-chain wallet and key management tool covering
// Bitcoin-family and EVM-family chains.
package main

import (
	"fmt"
	"os"

	"github.com/erickherrera/CriptoGualet-sub001/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
