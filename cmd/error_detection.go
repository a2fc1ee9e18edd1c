// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/bitwire-labs/firmata/pkg/firmata"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	showAll       bool
	statsInterval int
	useTUI        bool
)

var errorDetectionCmd = &cobra.Command{
	Use:   "error_detection",
	Short: "Detect and analyze unknown or unsynced packets",
	Long: `Track frame-parser statistics in real time: recognized packets by name
and unknown opcodes.

Firmata's framing carries no checksum, so there is no CRC error category;
"errors" here mean opcodes this package's version table doesn't name.
Junk bytes that the parser's NORMAL-state rule discards are dropped inside
the parser and are not counted or shown.

By default, only unknown-opcode events are highlighted. Use --show-all
to print every recognized packet too.`,
	RunE: runErrorDetection,
}

func init() {
	rootCmd.AddCommand(errorDetectionCmd)
	errorDetectionCmd.Flags().BoolVar(&showAll, "show-all", false, "Show all packets (not just unknown opcodes)")
	errorDetectionCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
	errorDetectionCmd.Flags().BoolVar(&useTUI, "tui", false, "Use terminal UI (false for text mode)")
}

func runErrorDetection(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return fmt.Errorf("connection error: %v", err)
	}
	defer conn.Close()

	if useTUI {
		return runTUIMode(conn, connInfo)
	}
	return runTextMode(conn, connInfo)
}

// runTUIMode runs error detection as a live bubbletea monitor.
func runTUIMode(conn Connection, connInfo string) error {
	m := initialModel(connInfo, statsInterval, showAll)
	p := tea.NewProgram(m)

	go func() {
		session := firmata.NewSession(firmata.Version(protocolVersion))
		buf := make([]byte, 128)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			for _, pkt := range session.Feed(buf[:n]) {
				p.Send(packetMsg{packet: pkt})
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}

// runTextMode runs error detection as a plain stdout stream.
func runTextMode(conn Connection, connInfo string) error {
	fmt.Printf("firmata-monitor - Error Detection Mode\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	if showAll {
		fmt.Printf("Mode: All packets\n")
	} else {
		fmt.Printf("Mode: Unknown opcodes only\n")
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	session := firmata.NewSession(firmata.Version(protocolVersion))
	stats := NewStats()

	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()

	dataChan := make(chan []byte, 10)
	go func() {
		buf := make([]byte, 128)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				if err == ErrConnectionClosed {
					log.Printf("Connection closed")
					return
				}
				log.Printf("Read error: %v", err)
				continue
			}
			data := make([]byte, n)
			copy(data, buf[:n])
			dataChan <- data
		}
	}()

	for {
		select {
		case data := <-dataChan:
			stats.AddBytes(len(data))
			for _, p := range session.Feed(data) {
				stats.Update(p)
				switch {
				case p.Name == "UNKNOWN":
					fmt.Printf("[%s] \033[1;33mUNKNOWN OPCODE:\033[0m 0x%02X\n", time.Now().Format("15:04:05.000"), p.Op)
				case showAll:
					fmt.Print(FormatPacket(p))
				}
			}

		case <-statsTicker.C:
			fmt.Println()
			fmt.Print(stats.String())
			fmt.Println()
		}
	}
}
