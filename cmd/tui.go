// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/bitwire-labs/firmata/pkg/firmata"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// eventLogEntry is one line in the recent-events log.
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isNotable bool // true for unknown opcodes, false for ordinary traffic
}

// model is the live monitor's bubbletea state.
type model struct {
	connInfo      string
	statsInterval int
	showAll       bool
	stats         *Stats
	eventLog      []eventLogEntry
	maxLogEntries int
	width         int
	height        int
	quitting      bool
}

// Messages
type tickMsg time.Time
type packetMsg struct {
	packet firmata.Packet
}

func initialModel(connInfo string, statsInterval int, showAll bool) model {
	return model{
		connInfo:      connInfo,
		statsInterval: statsInterval,
		showAll:       showAll,
		stats:         NewStats(),
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.stats.CalculateRates()
		return m, tickCmd()

	case packetMsg:
		m.stats.Update(msg.packet)

		switch {
		case msg.packet.Name == "UNKNOWN":
			m.addLogEntry(fmt.Sprintf("UNKNOWN opcode 0x%02X", msg.packet.Op), true)
		case msg.packet.IsSysexFraming() || msg.packet.Name == "DATA_SYSEX":
			if m.showAll {
				m.addLogEntry(msg.packet.Name, false)
			}
		case m.showAll:
			m.addLogEntry(fmt.Sprintf("%s (0x%02X) len=%d", msg.packet.Name, msg.packet.Op, len(msg.packet.Data)), false)
		}
	}

	return m, nil
}

func (m *model) addLogEntry(message string, isNotable bool) {
	entry := eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isNotable: isNotable,
	}
	m.eventLog = append(m.eventLog, entry)

	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

func (m model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	statsLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	statsValueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	noteStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("FIRMATA-MONITOR - ERROR DETECTION"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Mode: %s | Press 'q' to quit",
		m.connInfo, func() string {
			if m.showAll {
				return "All packets"
			}
			return "Unknown opcodes only"
		}())))
	s.WriteString("\n\n")

	m.stats.CalculateRates()

	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		statsLabelStyle.Render("Total:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.TotalPackets)),
		statsLabelStyle.Render("SysEx:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.SysexPackets)),
		statsLabelStyle.Render("Short:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.ShortPackets)),
	))

	if m.stats.UnknownPackets > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s\n",
			statsLabelStyle.Render("Unknown:"), noteStyle.Render(fmt.Sprintf("%d", m.stats.UnknownPackets)),
		))
	}

	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		statsLabelStyle.Render("Packet Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f pkts/s", m.stats.PacketRate)),
		statsLabelStyle.Render("Byte Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f B/s", m.stats.ByteRate)),
	))

	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	if names := m.stats.TopNames(5); len(names) > 0 {
		s.WriteString(statsLabelStyle.Render("Top Packet Names:"))
		s.WriteString("\n")
		namesContent := strings.Builder{}
		for _, name := range names {
			namesContent.WriteString(fmt.Sprintf("%s %s\n",
				statsLabelStyle.Render(name+":"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.ByName[name]))))
		}
		s.WriteString(boxStyle.Render(namesContent.String()))
		s.WriteString("\n\n")
	}

	s.WriteString(statsLabelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	logHeight := m.height - 15
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("01/02/06 15:04:05.000")
			if entry.isNotable {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					noteStyle.Render("✗ "+entry.message),
				))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					statsValueStyle.Render("· "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}
