// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

// Encoder request sub-commands. Unlike the other feature sub-protocols,
// ENCODER_DATA replies carry no leading sub-command byte of their own
// (see decodeEncoderReports); these constants are request-direction
// only, assigned per SPEC_FULL.md Open Question 3.
const (
	EncoderAttach          = 0
	EncoderReportPosition  = 1
	EncoderReportPositions = 2
	EncoderResetPosition   = 3
	EncoderReportAuto      = 4
	EncoderDetach          = 5
)

const encoderDirectionBit = 0x40

// EncoderAttachPins attaches rotary encoder encoderNum to pinA/pinB.
func (s *Session) EncoderAttachPins(encoderNum, pinA, pinB byte) []byte {
	return s.EncodeSysexCommand("ENCODER_DATA", EncoderAttach, encoderNum, pinA, pinB)
}

// EncoderDetachPins detaches rotary encoder encoderNum.
func (s *Session) EncoderDetachPins(encoderNum byte) []byte {
	return s.EncodeSysexCommand("ENCODER_DATA", EncoderDetach, encoderNum)
}

// EncoderQueryPosition requests a one-shot report of encoderNum's
// current position.
func (s *Session) EncoderQueryPosition(encoderNum byte) []byte {
	return s.EncodeSysexCommand("ENCODER_DATA", EncoderReportPosition, encoderNum)
}

// EncoderQueryAllPositions requests a one-shot report of every attached
// encoder's position.
func (s *Session) EncoderQueryAllPositions() []byte {
	return s.EncodeSysexCommand("ENCODER_DATA", EncoderReportPositions)
}

// EncoderResetPositionTo zeroes encoderNum's stored position.
func (s *Session) EncoderResetPositionTo(encoderNum byte) []byte {
	return s.EncodeSysexCommand("ENCODER_DATA", EncoderResetPosition, encoderNum)
}

// EncoderSetAutoReport enables or disables unsolicited periodic
// position reports for every attached encoder.
func (s *Session) EncoderSetAutoReport(enable bool) []byte {
	return s.EncodeSysexCommand("ENCODER_DATA", EncoderReportAuto, boolByte(enable))
}

// EncoderPosition is one decoded encoder record from an ENCODER_DATA
// report, per spec.md §4.6.
type EncoderPosition struct {
	ID       byte
	Position int32
}

// decodeEncoderReports parses a sequence of 5-byte encoder records:
// (direction bit | id) followed by two 14-bit integers composing a
// 28-bit magnitude, sign from the direction bit.
func decodeEncoderReports(body []byte) []EncoderPosition {
	var out []EncoderPosition
	for i := 0; i+5 <= len(body); i += 5 {
		head := body[i]
		id := head & 0x3F
		negative := head&encoderDirectionBit != 0

		low, _ := unpack14(body[i+1:i+2], body[i+2:i+3])
		high, _ := unpack14(body[i+3:i+4], body[i+4:i+5])
		magnitude := int32(low) | int32(high)<<14

		if negative {
			magnitude = -magnitude
		}
		out = append(out, EncoderPosition{ID: id, Position: magnitude})
	}
	return out
}
