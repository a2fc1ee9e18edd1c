// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

// Framing bytes shared by every protocol version.
const (
	StartSysex = 0xF0 // Begin a SysEx envelope.
	EndSysex   = 0xF7 // End a SysEx envelope.
)

// Short-message command bytes (0x80-0xFF). The low nibble of a command
// in the 0x80-0xEF range carries the channel/port/pin number.
const (
	DigitalMessage byte = 0x90 // Send data for a digital port.
	AnalogMessage  byte = 0xE0 // Send data for an analog pin (or PWM).
	ReportAnalog   byte = 0xC0 // Enable/disable analog input reporting by pin.
	ReportDigital  byte = 0xD0 // Enable/disable digital input reporting by port.
	SetPinMode     byte = 0xF4 // Set the mode of a single pin.
	SetDigitalPin  byte = 0xF5 // Set a single digital pin's value, bypassing port messages.
	ReportVersion  byte = 0xF9 // Report protocol version.
	SystemReset    byte = 0xFF // Reset the board's internal state.
)

// SysEx sub-command bytes (payload byte immediately after StartSysex).
const (
	ServoConfig           byte = 0x70 // Set servo min/max pulse and angle.
	StringData            byte = 0x71 // A string message, double-7-bit encoded.
	ShiftData             byte = 0x75 // Shift register bitstream request/response.
	I2CRequest            byte = 0x76 // I2C read/write request.
	I2CReply              byte = 0x77 // I2C reply to a read request.
	I2CConfig             byte = 0x78 // Configure the I2C bus.
	ExtendedAnalog        byte = 0x6F // Analog write (PWM/servo/etc) to any pin.
	PinStateQuery         byte = 0x6D // Ask for a pin's current mode and value.
	PinStateResponse      byte = 0x6E // Reply with a pin's current mode and value.
	CapabilityQuery       byte = 0x6B // Ask for supported modes/resolutions of all pins.
	CapabilityResponse    byte = 0x6C // Reply with supported modes/resolutions.
	AnalogMappingQuery    byte = 0x69 // Ask for the analog-channel to pin mapping.
	AnalogMappingResponse byte = 0x6A // Reply with the analog-channel to pin mapping.
	ReportFirmware        byte = 0x79 // Ask for (or reply with) firmware name/version.
	SamplingInterval      byte = 0x7A // Set the analog sampling interval, in ms.
	SchedulerData         byte = 0x7B // Scheduler sub-protocol envelope.
	OneWireData           byte = 0x73 // 1-Wire sub-protocol envelope.
	StepperData           byte = 0x72 // Legacy stepper sub-protocol envelope.
	EncoderData           byte = 0x61 // Rotary encoder sub-protocol envelope.
	AccelStepperData      byte = 0x62 // AccelStepper sub-protocol envelope.
	SerialData            byte = 0x60 // Serial passthrough sub-protocol envelope.
	SysexNonRealtime      byte = 0x7E // MIDI reserved for non-realtime messages.
	SysexRealtime         byte = 0x7F // MIDI reserved for realtime messages.
)

// Pin modes, as reported by CAPABILITY_RESPONSE and set by SetPinMode.
const (
	PinModeInput       byte = 0x00
	PinModeOutput      byte = 0x01
	PinModeAnalog      byte = 0x02
	PinModePWM         byte = 0x03
	PinModeServo       byte = 0x04
	PinModeShift       byte = 0x05
	PinModeI2C         byte = 0x06
	PinModeOneWire     byte = 0x07
	PinModeStepper     byte = 0x08
	PinModeEncoder     byte = 0x09
	PinModeSerial      byte = 0x0A
	PinModeInputPullUp byte = 0x0B
)

// CapabilityPinDelimiter terminates a pin's (mode, resolution) pair list
// inside a CAPABILITY_RESPONSE payload.
const CapabilityPinDelimiter = 0x7F

// AnalogPinUnmapped marks a pin with no analog channel inside an
// ANALOG_MAPPING_RESPONSE payload.
const AnalogPinUnmapped = 0x7F

// lengths is the short-message length table from spec.md §4.2, keyed
// first by the full command byte, falling back to the high-nibble entry.
// The value is the number of data bytes following the command byte (the
// total message length is 1 + this value).
var lengths = map[byte]int{
	0x80: 2, 0x90: 2, 0xA0: 2, 0xB0: 2, 0xE0: 2,
	0xC0: 1, 0xD0: 1,
	0xF4: 2,
	0xF9: 2,
	0xFF: 0,
	// 0xF0/0xF7 are normally consumed by the SysEx framing rows of the
	// frame parser's state table before the length table is ever
	// consulted; the zero-length entries here only matter for a stray
	// START/END_SYSEX encountered outside the state that expects it.
	0xF0: 0,
	0xF7: 0,
}

func messageLength(b byte) (int, bool) {
	if n, ok := lengths[b]; ok {
		return n, true
	}
	if n, ok := lengths[b&0xF0]; ok {
		return n, true
	}
	return 0, false
}
