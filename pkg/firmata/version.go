// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

import "sort"

// Version identifies a Firmata protocol vocabulary.
type Version string

// Known protocol versions, oldest first. Versions compare
// lexicographically; see spec.md §3.
const (
	V2_01 Version = "V_2_01"
	V2_02 Version = "V_2_02"
	V2_03 Version = "V_2_03"
	V2_04 Version = "V_2_04"
	V2_05 Version = "V_2_05"
	V2_06 Version = "V_2_06"
)

// DefaultVersion is the highest version this package implements.
const DefaultVersion = V2_06

// MinVersion is the documented floor returned by Negotiate when the
// reported tag is older than anything known.
const MinVersion = V2_01

// versionOrder lists every known version oldest to newest. It is the
// single source of truth for comparison and negotiation; nothing else
// in the package hardcodes version ordering.
var versionOrder = []Version{V2_01, V2_02, V2_03, V2_04, V2_05, V2_06}

// featureIntroducedAt records the version at which each optional
// sub-protocol's vocabulary enters the command table. Decided in
// SPEC_FULL.md §4.4 (Open Question 4): 1-Wire and legacy Stepper from
// V_2_03; Scheduler from V_2_04; AccelStepper/Encoder/Serial from V_2_05.
var featureIntroducedAt = map[byte]Version{
	OneWireData:      V2_03,
	StepperData:      V2_03,
	SchedulerData:    V2_04,
	AccelStepperData: V2_05,
	EncoderData:      V2_05,
	SerialData:       V2_05,
}

// commandTable is the version's opcode<->name vocabulary. It replaces
// the source's dynamically-constructed per-version lookup (spec.md §9,
// "Dynamic dispatch table") with an immutable table built once.
type commandTable struct {
	version   Version
	byName    map[string]byte
	byOpcode  map[byte]string
}

func buildCommandTable(v Version) *commandTable {
	t := &commandTable{
		version:  v,
		byName:   make(map[string]byte),
		byOpcode: make(map[byte]string),
	}

	add := func(name string, op byte) {
		t.byName[name] = op
		t.byOpcode[op] = name
	}

	// Baseline vocabulary, present since V_2_01.
	add("DIGITAL_MESSAGE", DigitalMessage)
	add("ANALOG_MESSAGE", AnalogMessage)
	add("REPORT_ANALOG", ReportAnalog)
	add("REPORT_DIGITAL", ReportDigital)
	add("SET_PIN_MODE", SetPinMode)
	add("SET_DIGITAL_PIN_VALUE", SetDigitalPin)
	add("REPORT_VERSION", ReportVersion)
	add("SYSTEM_RESET", SystemReset)
	add("START_SYSEX", StartSysex)
	add("END_SYSEX", EndSysex)

	add("SERVO_CONFIG", ServoConfig)
	add("STRING_DATA", StringData)
	add("SHIFT_DATA", ShiftData)
	add("I2C_REQUEST", I2CRequest)
	add("I2C_REPLY", I2CReply)
	add("I2C_CONFIG", I2CConfig)
	add("EXTENDED_ANALOG", ExtendedAnalog)
	add("PIN_STATE_QUERY", PinStateQuery)
	add("PIN_STATE_RESPONSE", PinStateResponse)
	add("CAPABILITY_QUERY", CapabilityQuery)
	add("CAPABILITY_RESPONSE", CapabilityResponse)
	add("ANALOG_MAPPING_QUERY", AnalogMappingQuery)
	add("ANALOG_MAPPING_RESPONSE", AnalogMappingResponse)
	add("REPORT_FIRMWARE", ReportFirmware)
	add("SAMPLING_INTERVAL", SamplingInterval)
	add("SYSEX_NON_REALTIME", SysexNonRealtime)
	add("SYSEX_REALTIME", SysexRealtime)

	for opcode, introducedAt := range featureIntroducedAt {
		if !versionAtLeast(v, introducedAt) {
			continue
		}
		switch opcode {
		case OneWireData:
			add("ONEWIRE_DATA", OneWireData)
		case StepperData:
			add("STEPPER_DATA", StepperData)
		case SchedulerData:
			add("SCHEDULER_DATA", SchedulerData)
		case AccelStepperData:
			add("ACCELSTEPPER_DATA", AccelStepperData)
		case EncoderData:
			add("ENCODER_DATA", EncoderData)
		case SerialData:
			add("SERIAL_DATA", SerialData)
		}
	}

	return t
}

// versionIndex returns the position of v in versionOrder, or -1.
func versionIndex(v Version) int {
	for i, cand := range versionOrder {
		if cand == v {
			return i
		}
	}
	return -1
}

// versionAtLeast reports whether v is known and >= floor in protocol
// version order.
func versionAtLeast(v, floor Version) bool {
	vi, fi := versionIndex(v), versionIndex(floor)
	return vi >= 0 && fi >= 0 && vi >= fi
}

// HasFeature reports whether the given SysEx opcode's vocabulary is
// present in version v.
func HasFeature(v Version, sysexOpcode byte) bool {
	introducedAt, ok := featureIntroducedAt[sysexOpcode]
	if !ok {
		return true // baseline feature, always present
	}
	return versionAtLeast(v, introducedAt)
}

// Negotiate returns the highest known version that is <= reported, or
// MinVersion if no known version compares <= reported. An unrecognized
// tag is placed by lexicographic comparison, so "V_2_99" yields V2_06.
// See spec.md §4.7 and Testable Property 7.
func Negotiate(reported Version) Version {
	if versionIndex(reported) >= 0 {
		return reported
	}

	// Find the greatest known tag strictly less than reported by
	// lexicographic order, matching spec.md's "lexicographically
	// ordered identifier" comparison rule.
	candidates := make([]Version, 0, len(versionOrder))
	for _, v := range versionOrder {
		if v < reported {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return MinVersion
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	return candidates[len(candidates)-1]
}
