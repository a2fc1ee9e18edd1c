// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

// Request builder functions construct outbound wire bytes for the core
// digital/analog/I2C vocabulary. Each wraps EncodeShort/EncodeSysexCommand
// and returns nil if the session's version table has no entry for the
// underlying command name, per spec.md §6-7.

// DigitalMessage builds a DIGITAL_MESSAGE for the given port, carrying
// the 14-bit pin-value bitmask for that port's 14 pins.
func (s *Session) DigitalMessage(port int, value uint16) []byte {
	lsb, msb := pack14(int(value))
	return s.EncodeShort("DIGITAL_MESSAGE", port, lsb, msb)
}

// AnalogMessage builds an ANALOG_MESSAGE for the given analog channel.
func (s *Session) AnalogMessage(channel int, value uint16) []byte {
	lsb, msb := pack14(int(value))
	return s.EncodeShort("ANALOG_MESSAGE", channel, lsb, msb)
}

// ReportAnalog enables or disables streaming reports for an analog pin.
func (s *Session) ReportAnalog(pin int, enable bool) []byte {
	return s.EncodeShort("REPORT_ANALOG", pin, boolByte(enable))
}

// ReportDigital enables or disables streaming reports for a digital port.
func (s *Session) ReportDigital(port int, enable bool) []byte {
	return s.EncodeShort("REPORT_DIGITAL", port, boolByte(enable))
}

// SetPinMode assigns a pin's mode (one of the PinMode* constants).
func (s *Session) SetPinMode(pin int, mode byte) []byte {
	op, ok := s.table.byName["SET_PIN_MODE"]
	if !ok {
		return nil
	}
	return []byte{op, byte(pin), mode}
}

// SetDigitalPinValue sets a single digital pin's value without going
// through a port-wide DIGITAL_MESSAGE.
func (s *Session) SetDigitalPinValue(pin int, value bool) []byte {
	op, ok := s.table.byName["SET_DIGITAL_PIN_VALUE"]
	if !ok {
		return nil
	}
	return []byte{op, byte(pin), boolByte(value)}
}

// ReportVersionQuery builds a REPORT_VERSION query; the board replies
// with its own REPORT_VERSION short message.
func (s *Session) ReportVersionQuery() []byte {
	op, ok := s.table.byName["REPORT_VERSION"]
	if !ok {
		return nil
	}
	return []byte{op}
}

// SystemReset builds a SYSTEM_RESET message.
func (s *Session) SystemReset() []byte {
	op, ok := s.table.byName["SYSTEM_RESET"]
	if !ok {
		return nil
	}
	return []byte{op}
}

// ServoConfig sets a servo-attached pin's min/max pulse width, in
// microseconds, as 14-bit pairs.
func (s *Session) ServoConfig(pin int, minPulse, maxPulse uint16) []byte {
	minLSB, minMSB := pack14(int(minPulse))
	maxLSB, maxMSB := pack14(int(maxPulse))
	return s.EncodeSysexCommand("SERVO_CONFIG", byte(pin), minLSB, minMSB, maxLSB, maxMSB)
}

// StringData builds a STRING_DATA message carrying msg, double-7-bit
// encoded.
func (s *Session) StringData(msg string) []byte {
	return s.EncodeSysexCommand("STRING_DATA", doubleSevenBitEncode([]byte(msg))...)
}

// ExtendedAnalogWrite builds an EXTENDED_ANALOG write for any pin,
// carrying value as a 7-bit-packed little-endian integer.
func (s *Session) ExtendedAnalogWrite(pin int, value uint32) []byte {
	return s.EncodeSysexCommand("EXTENDED_ANALOG", append([]byte{byte(pin)}, pack7LE(value)...)...)
}

// PinStateQuery requests the current mode and value of pin.
func (s *Session) PinStateQuery(pin int) []byte {
	return s.EncodeSysexCommand("PIN_STATE_QUERY", byte(pin))
}

// CapabilityQuery requests the supported modes/resolutions of every pin.
func (s *Session) CapabilityQuery() []byte {
	return s.EncodeSysexCommand("CAPABILITY_QUERY")
}

// AnalogMappingQuery requests the analog-channel to pin mapping.
func (s *Session) AnalogMappingQuery() []byte {
	return s.EncodeSysexCommand("ANALOG_MAPPING_QUERY")
}

// ReportFirmwareQuery requests the board's firmware name and version.
func (s *Session) ReportFirmwareQuery() []byte {
	return s.EncodeSysexCommand("REPORT_FIRMWARE")
}

// SamplingInterval sets the analog sampling interval, in milliseconds.
func (s *Session) SamplingInterval(ms uint16) []byte {
	lsb, msb := pack14(int(ms))
	return s.EncodeSysexCommand("SAMPLING_INTERVAL", lsb, msb)
}

// I2CConfig configures the I2C bus's inter-transaction delay.
func (s *Session) I2CConfig(delayUs uint16) []byte {
	lsb, msb := pack14(int(delayUs))
	return s.EncodeSysexCommand("I2C_CONFIG", lsb, msb)
}

// I2C request-mode bits, packed into the high byte of the 14-bit address
// field per the Firmata I2C sub-protocol.
const (
	i2cModeWrite            = 0x00
	i2cModeRead             = 0x08
	i2cModeContinuousRead   = 0x10
	i2cModeStopReading      = 0x18
	i2cMode10BitAddressFlag = 0x20
)

// I2CWrite builds an I2C_REQUEST in write mode for the given 7- or
// 10-bit device address.
func (s *Session) I2CWrite(address uint16, data []byte) []byte {
	return s.i2cRequest(address, i2cModeWrite, data)
}

// I2CReadOnce builds an I2C_REQUEST asking for a single read of n bytes.
func (s *Session) I2CReadOnce(address uint16, n int) []byte {
	lsb, msb := pack14(n)
	return s.i2cRequest(address, i2cModeRead, []byte{lsb, msb})
}

// I2CReadContinuous builds an I2C_REQUEST that starts continuous reads
// of n bytes at a time; I2CStopReading cancels it.
func (s *Session) I2CReadContinuous(address uint16, n int) []byte {
	lsb, msb := pack14(n)
	return s.i2cRequest(address, i2cModeContinuousRead, []byte{lsb, msb})
}

// I2CStopReading cancels a continuous read started on address.
func (s *Session) I2CStopReading(address uint16) []byte {
	return s.i2cRequest(address, i2cModeStopReading, nil)
}

func (s *Session) i2cRequest(address uint16, mode byte, data []byte) []byte {
	addrLSB := byte(address & 0x7F)
	addrMSB := mode
	if address > 0x7F {
		addrMSB |= byte((address>>7)&0x07) | i2cMode10BitAddressFlag
	}
	payload := append([]byte{addrLSB, addrMSB}, data...)
	return s.EncodeSysexCommand("I2C_REQUEST", payload...)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// pack7LE 7-bit-packs a little-endian integer's significant bytes for
// EXTENDED_ANALOG-style payloads: successive 7-bit groups of v, least
// significant first, stopping once the remaining value is zero (but
// always emitting at least one byte).
func pack7LE(v uint32) []byte {
	var out []byte
	for {
		out = append(out, byte(v&0x7F))
		v >>= 7
		if v == 0 {
			break
		}
	}
	return out
}

// unpack7LE is the inverse of pack7LE: a little-endian sequence of
// 7-bit groups packed back into an integer.
func unpack7LE(b []byte) uint32 {
	var v uint32
	for i := len(b) - 1; i >= 0; i-- {
		v = (v << 7) | uint32(b[i]&0x7F)
	}
	return v
}
