// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/bitwire-labs/firmata/pkg/firmata"
	"github.com/spf13/cobra"
)

var (
	packetTestTimeout int
)

var packetTestCmd = &cobra.Command{
	Use:   "packet_test",
	Short: "Test connection by waiting for a recognized Firmata packet",
	Long: `Wait for a recognized Firmata packet on the connection until timeout.

This command connects to a serial port or WebSocket and waits for the frame
parser to produce a packet whose name it recognizes (i.e. not UNKNOWN,
and not a START_SYSEX, END_SYSEX or DATA_SYSEX packet). It
ignores junk bytes dropped by the parser's NORMAL-state rule and waits for
the first named packet to arrive.

Exit codes:
  0 - Packet received before timeout
  1 - Timeout reached without receiving a recognized packet
  2 - Connection error`,
	RunE: runPacketTest,
}

func init() {
	rootCmd.AddCommand(packetTestCmd)
	packetTestCmd.Flags().IntVar(&packetTestTimeout, "timeout", 10, "Timeout in seconds to wait for a packet")
}

func runPacketTest(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("firmata-monitor - Packet Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", packetTestTimeout)
	fmt.Printf("Waiting for a recognized packet...\n\n")

	session := firmata.NewSession(firmata.Version(protocolVersion))
	buf := make([]byte, 128)

	packetChan := make(chan firmata.Packet, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}

			for _, p := range session.Feed(buf[:n]) {
				if p.Name != "UNKNOWN" && p.Name != "START_SYSEX" && p.Name != "END_SYSEX" && p.Name != "DATA_SYSEX" {
					packetChan <- p
					return
				}
			}
		}
	}()

	select {
	case p := <-packetChan:
		fmt.Printf("SUCCESS: Received recognized packet\n")
		fmt.Printf("  Name: %s\n", p.Name)
		fmt.Printf("  Op: 0x%02X\n", p.Op)
		fmt.Printf("  Length: %d bytes\n", len(p.Data))
		os.Exit(0)

	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)

	case <-time.After(time.Duration(packetTestTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: No recognized packet received within %d seconds\n", packetTestTimeout)
		os.Exit(1)
	}

	return nil
}
