// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

// DecodeSysex interprets a reassembled SysEx payload (the bytes between
// START_SYSEX and END_SYSEX, sub-command byte first) and returns a
// concrete, typed value for the commands this package understands, per
// spec.md §4.3. Unknown sub-commands return a RawSysex. A recognized
// sub-command with a truncated payload returns whatever its decoder could
// build: a partly filled typed value, or a RawSysex for the stepper,
// AccelStepper and serial replies it cannot interpret. The dispatcher
// never returns an error (spec.md §7).
func (s *Session) DecodeSysex(payload []byte) interface{} {
	if len(payload) == 0 {
		return RawSysex{Data: nil}
	}

	op := payload[0]
	body := payload[1:]

	switch op {
	case StringData:
		return StringMessage{Text: string(doubleSevenBitDecode(body))}

	case ReportFirmware:
		return decodeFirmwareReport(body)

	case CapabilityResponse:
		return CapabilityReport{Pins: decodeCapabilityPins(body)}

	case AnalogMappingResponse:
		return decodeAnalogMapping(body)

	case PinStateResponse:
		return decodePinStateResponse(s, body)

	case I2CReply:
		return decodeI2CReply(body)

	case OneWireData:
		return s.decodeOneWire(body)

	case SchedulerData:
		return s.decodeScheduler(body)

	case StepperData:
		return s.decodeStepperReply(body)

	case AccelStepperData:
		return s.decodeAccelStepperReply(body)

	case EncoderData:
		return decodeEncoderReports(body)

	case SerialData:
		return decodeSerialReply(body)

	default:
		// Covers RESERVED_COMMAND and any opcode outside this package's
		// vocabulary: pass the payload through uninterpreted.
		return RawSysex{Op: op, Data: append([]byte(nil), body...)}
	}
}

// RawSysex is the fallback shape for an unrecognized or unparseable
// SysEx sub-command.
type RawSysex struct {
	Op   byte
	Data []byte
}

// StringMessage is the decoded payload of a STRING_DATA message.
type StringMessage struct {
	Text string
}

// FirmwareReport is the decoded payload of a REPORT_FIRMWARE reply.
type FirmwareReport struct {
	Major byte
	Minor byte
	Name  string
}

func decodeFirmwareReport(body []byte) FirmwareReport {
	r := FirmwareReport{}
	if len(body) > 0 {
		r.Major = body[0]
	}
	if len(body) > 1 {
		r.Minor = body[1]
	}
	if len(body) > 2 {
		r.Name = string(doubleSevenBitDecode(body[2:]))
	}
	return r
}

// PinCapability is one (mode, resolution) entry in a pin's capability
// list.
type PinCapability struct {
	Mode       byte
	Resolution byte
}

// CapabilityReport is the decoded payload of a CAPABILITY_RESPONSE:
// per-pin lists of supported (mode, resolution) pairs.
type CapabilityReport struct {
	Pins [][]PinCapability
}

func decodeCapabilityPins(body []byte) [][]PinCapability {
	var pins [][]PinCapability
	cur := []PinCapability{}
	i := 0
	for i < len(body) {
		if body[i] == CapabilityPinDelimiter {
			pins = append(pins, cur)
			cur = []PinCapability{}
			i++
			continue
		}
		if i+1 >= len(body) {
			break
		}
		cur = append(cur, PinCapability{Mode: body[i], Resolution: body[i+1]})
		i += 2
	}
	return pins
}

// AnalogMapping maps an analog channel number to its digital pin
// number, decoded from an ANALOG_MAPPING_RESPONSE.
type AnalogMapping struct {
	ChannelToPin map[int]int
}

func decodeAnalogMapping(body []byte) AnalogMapping {
	m := AnalogMapping{ChannelToPin: make(map[int]int)}
	for pin, ch := range body {
		if ch != AnalogPinUnmapped {
			m.ChannelToPin[int(ch)] = pin
		}
	}
	return m
}

// PinState is the decoded payload of a PIN_STATE_RESPONSE.
type PinState struct {
	Pin      byte
	Mode     byte
	ModeName string
	State    uint32
}

func decodePinStateResponse(s *Session, body []byte) PinState {
	r := PinState{}
	if len(body) > 0 {
		r.Pin = body[0]
	}
	if len(body) > 1 {
		r.Mode = body[1]
		r.ModeName = pinModeName(r.Mode)
	}
	if len(body) > 2 {
		r.State = unpack7LE(body[2:])
	}
	_ = s // reserved: a future version may gate State width by session version
	return r
}

func pinModeName(mode byte) string {
	switch mode {
	case PinModeInput:
		return "INPUT"
	case PinModeOutput:
		return "OUTPUT"
	case PinModeAnalog:
		return "ANALOG"
	case PinModePWM:
		return "PWM"
	case PinModeServo:
		return "SERVO"
	case PinModeShift:
		return "SHIFT"
	case PinModeI2C:
		return "I2C"
	case PinModeOneWire:
		return "ONEWIRE"
	case PinModeStepper:
		return "STEPPER"
	case PinModeEncoder:
		return "ENCODER"
	case PinModeSerial:
		return "SERIAL"
	case PinModeInputPullUp:
		return "INPUT_PULLUP"
	default:
		return "UNKNOWN"
	}
}

// I2CReplyMessage is the decoded payload of an I2C_REPLY.
type I2CReplyMessage struct {
	Address  int
	Register int
	Data     []byte
}

func decodeI2CReply(body []byte) I2CReplyMessage {
	r := I2CReplyMessage{}
	if len(body) >= 2 {
		addr, _ := unpack14(body[0:1], body[1:2])
		r.Address = addr
	}
	if len(body) >= 4 {
		reg, _ := unpack14(body[2:3], body[3:4])
		r.Register = reg
	}
	rest := body
	if len(rest) > 4 {
		rest = rest[4:]
	} else {
		rest = nil
	}
	for i := 0; i+1 < len(rest); i += 2 {
		v, _ := unpack14(rest[i:i+1], rest[i+1:i+2])
		r.Data = append(r.Data, byte(v))
	}
	return r
}
