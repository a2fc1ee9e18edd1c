// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

import "testing"

// TestNegotiateScenarioS6 pins S6 from spec.md §8.
func TestNegotiateScenarioS6(t *testing.T) {
	if got := Negotiate(Version("V_2_99")); got != V2_06 {
		t.Fatalf("negotiate(V_2_99) = %v, want V_2_06", got)
	}
	if got := Negotiate(Version("V_2_00")); got != V2_01 {
		t.Fatalf("negotiate(V_2_00) = %v, want V_2_01", got)
	}
}

// TestNegotiateKnownVersion covers Testable Property 7's first clause:
// a known tag negotiates to itself.
func TestNegotiateKnownVersion(t *testing.T) {
	for _, v := range versionOrder {
		if got := Negotiate(v); got != v {
			t.Fatalf("negotiate(%v) = %v, want %v", v, got, v)
		}
	}
}

func TestHasFeatureGating(t *testing.T) {
	if HasFeature(V2_01, OneWireData) {
		t.Fatal("V_2_01 should not have 1-Wire")
	}
	if !HasFeature(V2_03, OneWireData) {
		t.Fatal("V_2_03 should have 1-Wire")
	}
	if !HasFeature(V2_03, DigitalMessage) {
		t.Fatal("baseline features are available at every version")
	}
	if HasFeature(V2_04, AccelStepperData) {
		t.Fatal("V_2_04 should not have AccelStepper")
	}
	if !HasFeature(V2_05, AccelStepperData) {
		t.Fatal("V_2_05 should have AccelStepper")
	}
}

func TestCommandTableVersionGating(t *testing.T) {
	s := NewSession(V2_01)
	if got := s.EncodeSysexCommand("ONEWIRE_DATA", 0x01); got != nil {
		t.Fatalf("V_2_01 session encoded ONEWIRE_DATA, want nil: %v", got)
	}

	s2 := NewSession(V2_06)
	if got := s2.EncodeSysexCommand("ONEWIRE_DATA", 0x01); got == nil {
		t.Fatal("V_2_06 session failed to encode ONEWIRE_DATA")
	}
}

func TestEncodeShortUnknownName(t *testing.T) {
	s := NewSession(DefaultVersion)
	if got := s.EncodeShort("NOT_A_REAL_COMMAND", 0); got != nil {
		t.Fatalf("EncodeShort with unknown name = %v, want nil", got)
	}
}
