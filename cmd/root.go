// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Protocol flags
	protocolVersion string
)

var rootCmd = &cobra.Command{
	Use:   "firmata-monitor",
	Short: "Firmata protocol analyzer",
	Long: `firmata-monitor - A CLI tool for monitoring and analyzing Firmata protocol traffic.

Provides commands for raw packet logging, connectivity testing, live error
detection, and capture/replay to help diagnose communication issues with a
Firmata-speaking board.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 57600]
  WebSocket: --url ws://host/path [--username user]

WebSocket mode models a serial-to-WebSocket bridge sitting on the board
side of the link; the byte stream carried over it is the same Firmata
wire protocol as the serial case.

For WebSocket authentication, the password is read from the
FIRMATA_BRIDGE_PASSWORD environment variable, or prompted interactively
if not set. The --password flag is intentionally not provided to avoid
leaking credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 57600, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Protocol flags
	rootCmd.PersistentFlags().StringVar(&protocolVersion, "protocol-version", "V_2_06", "Firmata protocol version whose vocabulary the decoder uses (V_2_01..V_2_06)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
