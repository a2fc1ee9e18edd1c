// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

// AccelStepper sub-commands, per spec.md §4.6. REPORT_POSITION,
// MOVE_COMPLETE, and MULTIMOVE_COMPLETE are given numerically by the
// source; the rest are assigned a self-consistent table around them
// (see SPEC_FULL.md Open Question 3).
const (
	AccelStepperConfigCmd = 0x00
	AccelStepperZero      = 0x01
	AccelStepperStep      = 0x02
	AccelStepperTo        = 0x03
	AccelStepperMove      = 0x04
	AccelStepperEnable    = 0x05
	AccelStepperReportPos = 0x06 // reply
	AccelStepperStop      = 0x07
	AccelStepperSpeed     = 0x08
	AccelStepperAccel     = 0x09
	AccelStepperMoveDone  = 0x0A // reply

	AccelStepperMultiConfig   = 0x20
	AccelStepperMultiTo       = 0x21
	AccelStepperMultiStop     = 0x22
	AccelStepperMultiMove     = 0x23
	AccelStepperMultiMoveDone = 0x24 // reply
)

const (
	accelStepperMaxID    = 9
	accelStepperMaxGroup = 4
	accelStepperGroupCap = 10
)

func checkAccelStepperID(id byte) error {
	if id > accelStepperMaxID {
		return argErr("id", id, "0-9")
	}
	return nil
}

func checkAccelStepperGroup(group byte, members []byte) error {
	if group > accelStepperMaxGroup {
		return argErr("group", group, "0-4")
	}
	if len(members) > accelStepperGroupCap {
		return argErr("members", len(members), "at most 10 member ids")
	}
	return nil
}

// AccelStepperConfig configures device id's driving interface and pins.
// pins must hold 2 (driver/two-wire), 3, or 4 (four-wire) entries in
// wiring order; enablePin is optional. invertedPins names the indices,
// into the pins-then-enablePin sequence, whose polarity should be
// inverted. See Testable Property 8.
func (s *Session) AccelStepperConfig(id byte, iface, step byte, pins []byte, enablePin *byte, invertedPins []int) ([]byte, error) {
	if err := checkAccelStepperID(id); err != nil {
		return nil, err
	}
	if len(pins) < 2 || len(pins) > 4 {
		return nil, argErr("pins", len(pins), "2-4 pins")
	}

	hasEnable := byte(0)
	if enablePin != nil {
		hasEnable = 1
	}
	ifaceByte := (((iface & 7) << 4) | ((step & 7) << 1) | hasEnable) & 0x7F

	configuredPins := append([]byte(nil), pins...)
	if enablePin != nil {
		configuredPins = append(configuredPins, *enablePin)
	}

	var invertMask byte
	for _, idx := range invertedPins {
		if idx >= 0 && idx < len(configuredPins) {
			invertMask |= 1 << idx
		}
	}

	payload := append([]byte{AccelStepperConfigCmd, id, ifaceByte}, configuredPins...)
	payload = append(payload, invertMask)
	return s.EncodeSysexCommand("ACCELSTEPPER_DATA", payload...), nil
}

func (s *Session) accelStepperPositionCmd(cmd byte, id byte, position int32) ([]byte, error) {
	if err := checkAccelStepperID(id); err != nil {
		return nil, err
	}
	pos := pack32(position)
	return s.EncodeSysexCommand("ACCELSTEPPER_DATA", append([]byte{cmd, id}, pos[:]...)...), nil
}

// AccelStepperZeroPosition resets device id's current position to 0.
func (s *Session) AccelStepperZeroPosition(id byte) ([]byte, error) {
	return s.accelStepperPositionCmd(AccelStepperZero, id, 0)
}

// AccelStepperStep moves device id by a relative signed step count.
func (s *Session) AccelStepperStep(id byte, steps int32) ([]byte, error) {
	return s.accelStepperPositionCmd(AccelStepperStep, id, steps)
}

// AccelStepperMoveTo moves device id to an absolute signed position.
func (s *Session) AccelStepperMoveTo(id byte, position int32) ([]byte, error) {
	return s.accelStepperPositionCmd(AccelStepperTo, id, position)
}

// AccelStepperMove starts device id moving indefinitely toward a
// distant signed target, used with a later stop/to command.
func (s *Session) AccelStepperMove(id byte, position int32) ([]byte, error) {
	return s.accelStepperPositionCmd(AccelStepperMove, id, position)
}

// AccelStepperSetEnable toggles device id's enable pin.
func (s *Session) AccelStepperSetEnable(id byte, enable bool) ([]byte, error) {
	if err := checkAccelStepperID(id); err != nil {
		return nil, err
	}
	return s.EncodeSysexCommand("ACCELSTEPPER_DATA", AccelStepperEnable, id, boolByte(enable)), nil
}

// AccelStepperStop halts device id's current move.
func (s *Session) AccelStepperStop(id byte) ([]byte, error) {
	if err := checkAccelStepperID(id); err != nil {
		return nil, err
	}
	return s.EncodeSysexCommand("ACCELSTEPPER_DATA", AccelStepperStop, id), nil
}

func (s *Session) accelStepperFloatCmd(cmd, id byte, v float64) ([]byte, error) {
	if err := checkAccelStepperID(id); err != nil {
		return nil, err
	}
	f := packFloat(v)
	return s.EncodeSysexCommand("ACCELSTEPPER_DATA", append([]byte{cmd, id}, f[:]...)...), nil
}

// AccelStepperSetSpeed sets device id's constant speed, steps/sec.
func (s *Session) AccelStepperSetSpeed(id byte, stepsPerSec float64) ([]byte, error) {
	return s.accelStepperFloatCmd(AccelStepperSpeed, id, stepsPerSec)
}

// AccelStepperSetAccel sets device id's acceleration, steps/sec².
func (s *Session) AccelStepperSetAccel(id byte, stepsPerSecSq float64) ([]byte, error) {
	return s.accelStepperFloatCmd(AccelStepperAccel, id, stepsPerSecSq)
}

// AccelStepperMultiConfig assigns up to 10 device ids to group.
func (s *Session) AccelStepperMultiConfig(group byte, members []byte) ([]byte, error) {
	if err := checkAccelStepperGroup(group, members); err != nil {
		return nil, err
	}
	return s.EncodeSysexCommand("ACCELSTEPPER_DATA", append([]byte{AccelStepperMultiConfig, group}, members...)...), nil
}

// AccelStepperMultiMoveTo moves every device in group to an absolute
// signed position.
func (s *Session) AccelStepperMultiMoveTo(group byte, position int32) ([]byte, error) {
	if group > accelStepperMaxGroup {
		return nil, argErr("group", group, "0-4")
	}
	pos := pack32(position)
	return s.EncodeSysexCommand("ACCELSTEPPER_DATA", append([]byte{AccelStepperMultiTo, group}, pos[:]...)...), nil
}

// AccelStepperMultiMove starts every device in group moving toward a
// distant signed target.
func (s *Session) AccelStepperMultiMove(group byte, position int32) ([]byte, error) {
	if group > accelStepperMaxGroup {
		return nil, argErr("group", group, "0-4")
	}
	pos := pack32(position)
	return s.EncodeSysexCommand("ACCELSTEPPER_DATA", append([]byte{AccelStepperMultiMove, group}, pos[:]...)...), nil
}

// AccelStepperMultiStop halts every device in group.
func (s *Session) AccelStepperMultiStop(group byte) ([]byte, error) {
	if group > accelStepperMaxGroup {
		return nil, argErr("group", group, "0-4")
	}
	return s.EncodeSysexCommand("ACCELSTEPPER_DATA", AccelStepperMultiStop, group), nil
}

// AccelStepperPositionReply is a MOVE_COMPLETE or REPORT_POSITION
// reply: device id and its 32-bit signed position.
type AccelStepperPositionReply struct {
	Subcmd   byte
	ID       byte
	Position int32
}

// AccelStepperGroupReply is a MULTIMOVE_COMPLETE reply: just the group.
type AccelStepperGroupReply struct {
	Group byte
}

func (s *Session) decodeAccelStepperReply(body []byte) interface{} {
	if len(body) == 0 {
		return RawSysex{}
	}
	switch body[0] {
	case AccelStepperReportPos, AccelStepperMoveDone:
		if len(body) < 7 {
			return RawSysex{Op: body[0], Data: body[1:]}
		}
		return AccelStepperPositionReply{
			Subcmd:   body[0],
			ID:       body[1],
			Position: unpack32(body[2:7]),
		}
	case AccelStepperMultiMoveDone:
		if len(body) < 2 {
			return RawSysex{Op: body[0]}
		}
		return AccelStepperGroupReply{Group: body[1]}
	default:
		return RawSysex{Op: body[0], Data: body[1:]}
	}
}
