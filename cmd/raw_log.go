// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"log"

	"github.com/bitwire-labs/firmata/pkg/firmata"
	"github.com/spf13/cobra"
)

var rawLogCmd = &cobra.Command{
	Use:   "raw_log",
	Short: "Display raw packet log in human-readable format",
	Long: `Continuously decode and display Firmata packets as they arrive.

Shows each frame-parser packet as it is produced, and decodes reassembled
SysEx payloads into their typed form where this package recognizes the
sub-command.

Supports both serial and WebSocket connections.`,
	RunE: runRawLog,
}

func init() {
	rootCmd.AddCommand(rawLogCmd)
}

func runRawLog(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("firmata-monitor - Raw Packet Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	version := firmata.Version(protocolVersion)
	session := firmata.NewSession(version)

	var sysexBuf []byte

	buf := make([]byte, 128)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err == ErrConnectionClosed {
				log.Printf("Connection closed")
				return nil
			}
			log.Printf("Read error: %v", err)
			continue
		}

		for _, p := range session.Feed(buf[:n]) {
			fmt.Print(FormatPacket(p))

			switch p.Name {
			case "START_SYSEX":
				sysexBuf = nil
			case "DATA_SYSEX":
				sysexBuf = append(sysexBuf, p.Data...)
			case "END_SYSEX":
				fmt.Print(FormatSysex(session.DecodeSysex(sysexBuf)))
				sysexBuf = nil
			}
		}
	}
}
