// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"time"

	"github.com/bitwire-labs/firmata/pkg/firmata"
)

// FormatPacket renders a decoded frame-parser packet the way raw_log
// and error_detection print it: a timestamp, the symbolic name, the
// command byte, and a payload-specific line when one applies.
func FormatPacket(p firmata.Packet) string {
	timestamp := time.Now().Format("15:04:05.000")

	if p.Name == "DATA_SYSEX" || p.Op == 0 && len(p.Data) > 0 {
		sub := "?"
		if len(p.Data) > 0 {
			sub = sysexOpName(p.Data[0])
		}
		return fmt.Sprintf("[%s] DATA_SYSEX sub=%s len=%d data=%s\n", timestamp, sub, len(p.Data), hexPreview(p.Data, 16))
	}
	if p.IsSysexFraming() {
		return fmt.Sprintf("[%s] %s\n", timestamp, p.Name)
	}

	result := fmt.Sprintf("[%s] %s (0x%02X) len=%d\n", timestamp, p.Name, p.Op, len(p.Data))
	if len(p.Data) > 0 {
		result += fmt.Sprintf("  data: %s\n", hexPreview(p.Data, 16))
	}
	return result
}

// FormatSysex renders the typed value returned by Session.DecodeSysex
// for a reassembled SysEx payload.
func FormatSysex(v interface{}) string {
	timestamp := time.Now().Format("15:04:05.000")

	switch r := v.(type) {
	case firmata.StringMessage:
		return fmt.Sprintf("[%s] STRING_DATA %q\n", timestamp, r.Text)

	case firmata.FirmwareReport:
		return fmt.Sprintf("[%s] REPORT_FIRMWARE v%d.%d %q\n", timestamp, r.Major, r.Minor, r.Name)

	case firmata.CapabilityReport:
		return fmt.Sprintf("[%s] CAPABILITY_RESPONSE %d pins\n", timestamp, len(r.Pins))

	case firmata.AnalogMapping:
		return fmt.Sprintf("[%s] ANALOG_MAPPING_RESPONSE %d channels mapped\n", timestamp, len(r.ChannelToPin))

	case firmata.PinState:
		return fmt.Sprintf("[%s] PIN_STATE_RESPONSE pin=%d mode=%s state=%d\n",
			timestamp, r.Pin, r.ModeName, r.State)

	case firmata.I2CReplyMessage:
		return fmt.Sprintf("[%s] I2C_REPLY addr=0x%02X reg=0x%02X data=% X\n",
			timestamp, r.Address, r.Register, r.Data)

	case firmata.OneWireReply:
		return fmt.Sprintf("[%s] ONEWIRE_DATA subcmd=0x%02X\n", timestamp, r.Subcmd)

	case firmata.SchedulerReply:
		if r.Task != nil {
			return fmt.Sprintf("[%s] SCHEDULER_DATA task id=%d time_ms=%d len=%d pos=%d\n",
				timestamp, r.Task.ID, r.Task.TimeMs, r.Task.Len, r.Task.Position)
		}
		return fmt.Sprintf("[%s] SCHEDULER_DATA subcmd=0x%02X ids=% X\n", timestamp, r.Subcmd, r.IDs)

	case firmata.StepperMoveComplete:
		return fmt.Sprintf("[%s] STEPPER_DATA move complete device=%d\n", timestamp, r.DeviceNum)

	case firmata.AccelStepperPositionReply:
		return fmt.Sprintf("[%s] ACCELSTEPPER_DATA subcmd=0x%02X id=%d position=%d\n",
			timestamp, r.Subcmd, r.ID, r.Position)

	case firmata.AccelStepperGroupReply:
		return fmt.Sprintf("[%s] ACCELSTEPPER_DATA multi-move complete group=%d\n", timestamp, r.Group)

	case []firmata.EncoderPosition:
		return fmt.Sprintf("[%s] ENCODER_DATA %d reports\n", timestamp, len(r))

	case firmata.SerialReply:
		return fmt.Sprintf("[%s] SERIAL_DATA port=%d data=% X\n", timestamp, r.Port, r.Data)

	case firmata.RawSysex:
		return fmt.Sprintf("[%s] RAW_SYSEX op=0x%02X data=% X\n", timestamp, r.Op, r.Data)

	default:
		return fmt.Sprintf("[%s] UNRECOGNIZED %+v\n", timestamp, r)
	}
}

// sysexOpName returns a short label for FormatPacket's DATA_SYSEX line, falling back
// to a hex literal for opcodes this package has no name for.
func sysexOpName(op byte) string {
	switch op {
	case firmata.StringData:
		return "STRING_DATA"
	case firmata.ReportFirmware:
		return "REPORT_FIRMWARE"
	case firmata.CapabilityResponse:
		return "CAPABILITY_RESPONSE"
	case firmata.AnalogMappingResponse:
		return "ANALOG_MAPPING_RESPONSE"
	case firmata.PinStateResponse:
		return "PIN_STATE_RESPONSE"
	case firmata.I2CReply:
		return "I2C_REPLY"
	case firmata.OneWireData:
		return "ONEWIRE_DATA"
	case firmata.SchedulerData:
		return "SCHEDULER_DATA"
	case firmata.StepperData:
		return "STEPPER_DATA"
	case firmata.AccelStepperData:
		return "ACCELSTEPPER_DATA"
	case firmata.EncoderData:
		return "ENCODER_DATA"
	case firmata.SerialData:
		return "SERIAL_DATA"
	default:
		return fmt.Sprintf("SYSEX_0x%02X", op)
	}
}

// hexPreview renders the first n bytes of b as space-separated hex,
// truncating with an ellipsis rather than flooding the terminal.
func hexPreview(b []byte, n int) string {
	if len(b) <= n {
		return fmt.Sprintf("% X", b)
	}
	return fmt.Sprintf("% X...", b[:n])
}
