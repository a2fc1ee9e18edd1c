// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// firmata-monitor - a CLI tool for monitoring and decoding Firmata
// protocol traffic in human-readable form.

package main

import (
	"fmt"
	"os"

	"github.com/bitwire-labs/firmata/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
