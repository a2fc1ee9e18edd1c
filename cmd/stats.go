// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/bitwire-labs/firmata/pkg/firmata"
)

// Stats tracks packet counts and rates for a monitoring session. It
// plays the same role for firmata-monitor that a CRC/anomaly counter
// plays for a framed, checksummed protocol: there is no CRC to fail
// here, so the categories are framing-level (sync loss, unknown
// opcodes) rather than checksum-level.
type Stats struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	TotalBytes      uint64
	TotalPackets    uint64
	SysexPackets    uint64
	ShortPackets    uint64
	UnknownPackets  uint64
	DiscardedBytes  uint64
	ByName          map[string]uint64

	PacketRate float64 // packets/sec
	ByteRate   float64 // bytes/sec
}

// NewStats creates a new stats tracker.
func NewStats() *Stats {
	now := time.Now()
	return &Stats{
		StartTime:      now,
		LastUpdateTime: now,
		ByName:         make(map[string]uint64),
	}
}

// Update folds one decoded packet into the running counts.
func (s *Stats) Update(p firmata.Packet) {
	s.TotalPackets++
	s.ByName[p.Name]++

	switch {
	case p.Name == "UNKNOWN":
		s.UnknownPackets++
	case p.IsSysexFraming() || p.Name == "DATA_SYSEX":
		s.SysexPackets++
	default:
		s.ShortPackets++
	}

	s.LastUpdateTime = time.Now()
}

// AddBytes records raw bytes seen on the wire, independent of how many
// of them resolved into packets.
func (s *Stats) AddBytes(n int) {
	s.TotalBytes += uint64(n)
}

// AddDiscarded records a junk byte dropped by the frame parser in
// NORMAL state with no preceding status byte.
func (s *Stats) AddDiscarded(n int) {
	s.DiscardedBytes += uint64(n)
}

// CalculateRates recomputes the rolling packet/byte rates.
func (s *Stats) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.PacketRate = float64(s.TotalPackets) / elapsed
		s.ByteRate = float64(s.TotalBytes) / elapsed
	}
}

// TopNames returns up to n packet names sorted by descending count,
// for a live display where only the busiest rows matter.
func (s *Stats) TopNames(n int) []string {
	names := make([]string, 0, len(s.ByName))
	for name := range s.ByName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.ByName[names[i]] > s.ByName[names[j]]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// String returns a formatted statistics summary.
func (s *Stats) String() string {
	s.CalculateRates()

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Bytes:     %8d\n", s.TotalBytes)
	result += fmt.Sprintf("Total Packets:   %8d\n", s.TotalPackets)
	result += fmt.Sprintf("SysEx Packets:   %8d\n", s.SysexPackets)
	result += fmt.Sprintf("Short Packets:   %8d\n", s.ShortPackets)
	if s.UnknownPackets > 0 {
		result += fmt.Sprintf("Unknown Packets: %8d\n", s.UnknownPackets)
	}
	if s.DiscardedBytes > 0 {
		result += fmt.Sprintf("Discarded Bytes: %8d\n", s.DiscardedBytes)
	}
	for _, name := range s.TopNames(5) {
		result += fmt.Sprintf("  %-24s %8d\n", name, s.ByName[name])
	}
	result += fmt.Sprintf("Packet Rate:     %8.1f pkts/sec\n", s.PacketRate)
	result += fmt.Sprintf("Byte Rate:       %8.1f bytes/sec\n", s.ByteRate)
	result += "================================\n"

	return result
}

// Reset zeroes every counter and restarts the rate window.
func (s *Stats) Reset() {
	now := time.Now()
	s.StartTime = now
	s.LastUpdateTime = now
	s.TotalBytes = 0
	s.TotalPackets = 0
	s.SysexPackets = 0
	s.ShortPackets = 0
	s.UnknownPackets = 0
	s.DiscardedBytes = 0
	s.ByName = make(map[string]uint64)
	s.PacketRate = 0
	s.ByteRate = 0
}
