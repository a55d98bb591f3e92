// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/raze-abi/main.go
// Summary: Contract tooling: generate foreign headers, check them for drift,
// inspect the layout tables.
// Usage: raze-abi gen c rust --out include/; raze-abi check core.h --diff

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}
