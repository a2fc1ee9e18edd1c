// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

import "testing"

// TestParserScenarioS2 pins S2 from spec.md §8.
func TestParserScenarioS2(t *testing.T) {
	s := NewSession(DefaultVersion)
	packets := s.Feed([]byte{0x90, 0x3C, 0x7F})

	if len(packets) != 1 {
		t.Fatalf("got %d packets, want 1: %+v", len(packets), packets)
	}
	if packets[0].Op != 0x90 || string(packets[0].Data) != string([]byte{0x3C, 0x7F}) {
		t.Fatalf("packet = %+v, want op=0x90 data=[0x3C,0x7F]", packets[0])
	}
}

// TestParserScenarioS3 pins S3 from spec.md §8: a short message that
// arrives in two chunks.
func TestParserScenarioS3(t *testing.T) {
	s := NewSession(DefaultVersion)

	if packets := s.Feed([]byte{0xE0, 0x00}); len(packets) != 0 {
		t.Fatalf("expected no packets on incomplete message, got %+v", packets)
	}

	packets := s.Feed([]byte{0x40})
	if len(packets) != 1 {
		t.Fatalf("got %d packets, want 1: %+v", len(packets), packets)
	}
	if packets[0].Op != 0xE0 || string(packets[0].Data) != string([]byte{0x00, 0x40}) {
		t.Fatalf("packet = %+v, want op=0xE0 data=[0x00,0x40]", packets[0])
	}
}

// TestParserScenarioS1 pins S1 from spec.md §8: a REPORT_FIRMWARE
// SysEx envelope split across START_SYSEX, one DATA_SYSEX, END_SYSEX.
func TestParserScenarioS1(t *testing.T) {
	s := NewSession(DefaultVersion)
	packets := s.Feed([]byte{0xF0, 0x79, 0x02, 0x05, 0x41, 0x00, 0x42, 0x00, 0xF7})

	if len(packets) != 3 {
		t.Fatalf("got %d packets, want 3: %+v", len(packets), packets)
	}
	if packets[0].Name != nameStartSysex {
		t.Fatalf("packet 0 = %+v, want START_SYSEX", packets[0])
	}
	if packets[1].Name != nameDataSysex {
		t.Fatalf("packet 1 = %+v, want DATA_SYSEX", packets[1])
	}
	wantData := []byte{0x79, 0x02, 0x05, 'A', 0, 'B', 0}
	if string(packets[1].Data) != string(wantData) {
		t.Fatalf("DATA_SYSEX payload = %v, want %v", packets[1].Data, wantData)
	}
	if packets[2].Name != nameEndSysex {
		t.Fatalf("packet 2 = %+v, want END_SYSEX", packets[2])
	}

	report := s.DecodeSysex(packets[1].Data)
	fw, ok := report.(FirmwareReport)
	if !ok {
		t.Fatalf("DecodeSysex returned %T, want FirmwareReport", report)
	}
	if fw.Major != 2 || fw.Minor != 5 || fw.Name != "AB" {
		t.Fatalf("firmware report = %+v, want {2 5 AB}", fw)
	}
}

// TestParserChunkingInvariance covers Testable Property 6: splitting
// the same byte stream across arbitrary chunk boundaries yields the
// same flat packet list as feeding it whole.
func TestParserChunkingInvariance(t *testing.T) {
	stream := []byte{0xF0, 0x79, 0x02, 0x05, 0x41, 0x00, 0x42, 0x00, 0xF7, 0x90, 0x3C, 0x7F}

	whole := NewSession(DefaultVersion).Feed(stream)

	for chunkSize := 1; chunkSize <= len(stream); chunkSize++ {
		s := NewSession(DefaultVersion)
		var got []Packet
		for i := 0; i < len(stream); i += chunkSize {
			end := i + chunkSize
			if end > len(stream) {
				end = len(stream)
			}
			got = append(got, s.Feed(stream[i:end])...)
		}
		if len(got) != len(whole) {
			t.Fatalf("chunk size %d: got %d packets, want %d", chunkSize, len(got), len(whole))
		}
		for i := range got {
			if got[i].Op != whole[i].Op || got[i].Name != whole[i].Name || string(got[i].Data) != string(whole[i].Data) {
				t.Fatalf("chunk size %d: packet %d = %+v, want %+v", chunkSize, i, got[i], whole[i])
			}
		}
	}
}

// TestParserInterruptInSysex covers Testable Property 9: a status byte
// mid-SysEx is emitted as its own packet without resetting the
// INSIDE_SYSEX toggle, and subsequent data bytes keep accumulating.
func TestParserInterruptInSysex(t *testing.T) {
	s := NewSession(DefaultVersion)
	packets := s.Feed([]byte{
		0xF0, 0x6B, // START_SYSEX, CAPABILITY_QUERY sub-command byte (data)
		0x90, 0x01, 0x02, // an interrupting DIGITAL_MESSAGE
		0x03, // more SysEx data, should attach to a fresh DATA_SYSEX
		0xF7, // END_SYSEX
	})

	var names []string
	for _, p := range packets {
		names = append(names, p.Name)
	}

	if len(packets) != 5 {
		t.Fatalf("got %d packets %v, want 5", len(packets), names)
	}
	if packets[0].Name != nameStartSysex {
		t.Fatalf("packet 0 = %+v, want START_SYSEX", packets[0])
	}
	if packets[1].Name != nameDataSysex || string(packets[1].Data) != string([]byte{0x6B}) {
		t.Fatalf("packet 1 = %+v, want DATA_SYSEX [0x6B]", packets[1])
	}
	if packets[2].Op != 0x90 {
		t.Fatalf("packet 2 = %+v, want the interrupting DIGITAL_MESSAGE", packets[2])
	}
	if packets[3].Name != nameDataSysex || string(packets[3].Data) != string([]byte{0x03}) {
		t.Fatalf("packet 3 = %+v, want a fresh DATA_SYSEX [0x03]", packets[3])
	}
	if packets[4].Name != nameEndSysex {
		t.Fatalf("packet 4 = %+v, want END_SYSEX", packets[4])
	}
	if s.state != stateNormal {
		t.Fatalf("state after END_SYSEX = %v, want stateNormal", s.state)
	}
}

// TestParserJunkByteDropped covers the NORMAL-state junk-byte rule from
// spec.md §7.
func TestParserJunkByteDropped(t *testing.T) {
	s := NewSession(DefaultVersion)
	packets := s.Feed([]byte{0x01, 0x02, 0x90, 0x03, 0x04})

	if len(packets) != 1 || packets[0].Op != 0x90 {
		t.Fatalf("packets = %+v, want a single DIGITAL_MESSAGE after dropped junk", packets)
	}
	if s.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", s.Pending())
	}
}

func TestSessionVersion(t *testing.T) {
	s := NewSession(V2_03)
	if s.Version() != V2_03 {
		t.Fatalf("Version() = %v, want V2_03", s.Version())
	}
}
