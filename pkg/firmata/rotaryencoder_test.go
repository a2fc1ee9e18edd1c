// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

import "testing"

func TestDecodeEncoderReportsPositiveAndNegative(t *testing.T) {
	lowA, highA := pack14(100)
	lowB, highB := pack14(200)

	body := []byte{
		5, lowA, highA, lowB, highB, // id=5, positive
		encoderDirectionBit | 6, lowA, highA, lowB, highB, // id=6, negative
	}

	reports := decodeEncoderReports(body)
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2: %+v", len(reports), reports)
	}

	wantMag := int32(100) | int32(200)<<14
	if reports[0].ID != 5 || reports[0].Position != wantMag {
		t.Fatalf("report 0 = %+v, want id=5 position=%d", reports[0], wantMag)
	}
	if reports[1].ID != 6 || reports[1].Position != -wantMag {
		t.Fatalf("report 1 = %+v, want id=6 position=%d", reports[1], -wantMag)
	}
}

func TestEncoderRequestsGatedByVersion(t *testing.T) {
	s := NewSession(V2_04)
	if got := s.EncoderAttachPins(0, 2, 3); got != nil {
		t.Fatalf("V_2_04 session encoded ENCODER_DATA, want nil: %v", got)
	}

	s2 := NewSession(V2_05)
	if got := s2.EncoderAttachPins(0, 2, 3); got == nil {
		t.Fatal("V_2_05 session failed to encode ENCODER_DATA")
	}
}
