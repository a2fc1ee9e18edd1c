// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

import "testing"

func TestSerialWriteReplyRoundTrip(t *testing.T) {
	s := NewSession(V2_05)

	got := s.SerialWrite(3, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	if got[0] != StartSysex || got[len(got)-1] != EndSysex {
		t.Fatalf("not sysex-framed: %v", got)
	}
	if got[2] != serialCmdPortByte(SerialWriteCmd, 3) {
		t.Fatalf("command/port byte = 0x%02X, want 0x%02X", got[2], serialCmdPortByte(SerialWriteCmd, 3))
	}

	data := []byte{0x11, 0x22, 0x33}
	body := append([]byte{serialCmdPortByte(SerialReplyCmd, 3)}, pack7(data)...)
	payload := append([]byte{SerialData}, body...)

	reply, ok := s.DecodeSysex(payload).(SerialReply)
	if !ok {
		t.Fatalf("DecodeSysex returned %T, want SerialReply", s.DecodeSysex(payload))
	}
	if reply.Port != 3 {
		t.Fatalf("port = %d, want 3", reply.Port)
	}
	if len(reply.Data) < len(data) {
		t.Fatalf("data = %v, too short for %v", reply.Data, data)
	}
	for i := range data {
		if reply.Data[i] != data[i] {
			t.Fatalf("data[%d] = 0x%02X, want 0x%02X", i, reply.Data[i], data[i])
		}
	}
}

func TestSerialConfigWithSoftwarePins(t *testing.T) {
	s := NewSession(V2_05)
	rx, tx := byte(10), byte(11)
	got := s.SerialConfig(8, 9600, &rx, &tx)
	if len(got) == 0 {
		t.Fatal("no bytes produced")
	}
	if got[2] != serialCmdPortByte(SerialConfigCmd, 8) {
		t.Fatalf("command/port byte = 0x%02X", got[2])
	}
}
