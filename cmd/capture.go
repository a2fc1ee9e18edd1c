// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bitwire-labs/firmata/pkg/firmata"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
)

// captureRecord is one timestamped chunk of raw bytes seen on the wire.
// A capture file is a sequence of these, each its own CBOR item, written
// one record per read so replay can reproduce the original chunking, not
// just the flat byte stream.
type captureRecord struct {
	OffsetMs int64  `cbor:"offset_ms"`
	Data     []byte `cbor:"data"`
}

var (
	captureOutPath string
	replayInPath   string
	replaySpeed    float64
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Capture raw bytes from a connection to a CBOR file",
	Long: `Record the raw byte stream from a serial or WebSocket connection into a
CBOR-encoded capture file, one timestamped record per read.

The capture can later be fed back through the decoder with "replay" for
offline debugging, without needing the original device attached.`,
	RunE: runRecord,
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a CBOR capture file through the raw packet log",
	Long: `Decode and display a capture file produced by "record" as if it were
arriving live, pacing each record by its recorded offset (scaled by
--speed).`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(replayCmd)

	recordCmd.Flags().StringVarP(&captureOutPath, "out", "o", "capture.cbor", "Output capture file path")

	replayCmd.Flags().StringVarP(&replayInPath, "in", "i", "capture.cbor", "Input capture file path")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (2.0 = twice as fast)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	f, err := os.Create(captureOutPath)
	if err != nil {
		return fmt.Errorf("failed to create capture file: %v", err)
	}
	defer f.Close()

	fmt.Printf("firmata-monitor - Record\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Writing to: %s\n", captureOutPath)
	fmt.Printf("Press Ctrl+C to stop\n\n")

	enc := cbor.NewEncoder(f)
	start := time.Now()
	buf := make([]byte, 256)
	records := 0

	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err == ErrConnectionClosed {
				log.Printf("Connection closed, %d records written", records)
				return nil
			}
			return fmt.Errorf("read error: %v", err)
		}
		if n == 0 {
			continue
		}

		rec := captureRecord{
			OffsetMs: time.Since(start).Milliseconds(),
			Data:     append([]byte(nil), buf[:n]...),
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to write capture record: %v", err)
		}
		records++
	}
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(replayInPath)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %v", err)
	}
	defer f.Close()

	if replaySpeed <= 0 {
		replaySpeed = 1.0
	}

	fmt.Printf("firmata-monitor - Replay\n")
	fmt.Printf("Reading from: %s\n", replayInPath)
	fmt.Printf("Speed: %.1fx\n\n", replaySpeed)

	session := firmata.NewSession(firmata.Version(protocolVersion))
	dec := cbor.NewDecoder(f)

	var lastOffset int64
	for {
		var rec captureRecord
		if err := dec.Decode(&rec); err != nil {
			break // EOF or a truncated trailing record; either way, done
		}

		if gap := rec.OffsetMs - lastOffset; gap > 0 {
			time.Sleep(time.Duration(float64(gap)/replaySpeed) * time.Millisecond)
		}
		lastOffset = rec.OffsetMs

		for _, p := range session.Feed(rec.Data) {
			fmt.Print(FormatPacket(p))
		}
	}

	return nil
}
