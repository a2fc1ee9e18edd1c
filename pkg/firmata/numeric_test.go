// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// TestPack14RoundTrip covers Testable Property 1.
func TestPack14RoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)

	for i := 0; i < rounds; i++ {
		v := rng.Intn(1 << 14)
		lsb, msb := pack14(v)
		got, absent := unpack14([]byte{lsb}, []byte{msb})
		if absent || got != v {
			t.Fatalf("round %d: pack14/unpack14(%d) = %d, absent=%v", i, v, got, absent)
		}
	}
}

func TestUnpack14Absent(t *testing.T) {
	if _, absent := unpack14(nil, nil); !absent {
		t.Fatal("expected absent with no bytes")
	}
	if v, absent := unpack14([]byte{0x55}, nil); absent || v != 0x55 {
		t.Fatalf("expected degrade to lsb alone, got %d absent=%v", v, absent)
	}
}

// TestDoubleSevenBitRoundTrip covers Testable Property 4.
func TestDoubleSevenBitRoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)

	for i := 0; i < rounds; i++ {
		n := rng.Intn(32)
		data := make([]byte, n)
		rng.Read(data)

		got := doubleSevenBitDecode(doubleSevenBitEncode(data))
		if string(got) != string(data) {
			t.Fatalf("round %d: double7 round-trip mismatch: %v != %v", i, got, data)
		}
	}
}

// TestPack7RoundTrip covers Testable Property 3.
func TestPack7RoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)

	for i := 0; i < rounds; i++ {
		n := rng.Intn(64) + 1
		data := make([]byte, n)
		rng.Read(data)

		packed := pack7(data)
		for _, b := range packed {
			if b&0x80 != 0 {
				t.Fatalf("round %d: packed byte 0x%02X has high bit set", i, b)
			}
		}

		got := unpack7(packed)
		// unpack7(pack7(B)) is B extended with at most one zero byte.
		if len(got) < n || len(got) > n+1 {
			t.Fatalf("round %d: length %d out of range for input length %d", i, len(got), n)
		}
		for j := 0; j < n; j++ {
			if got[j] != data[j] {
				t.Fatalf("round %d: byte %d mismatch: got 0x%02X want 0x%02X", i, j, got[j], data[j])
			}
		}
		for j := n; j < len(got); j++ {
			if got[j] != 0 {
				t.Fatalf("round %d: extension byte %d is not zero: 0x%02X", i, j, got[j])
			}
		}
	}
}

// TestPack7Scenario5 pins S5 from spec.md §8.
func TestPack7Scenario5(t *testing.T) {
	packed := pack7([]byte{0xFF, 0xFF})
	if len(packed) == 0 || packed[0] != 0x7F {
		t.Fatalf("pack7([0xFF,0xFF]) = %v, want leading 0x7F", packed)
	}
	got := unpack7(packed)
	want := []byte{0xFF, 0xFF, 0x00}
	if string(got) != string(want) {
		t.Fatalf("unpack7(pack7([0xFF,0xFF])) = %v, want %v", got, want)
	}
}

// TestPack32RoundTrip covers Testable Property 2.
func TestPack32RoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)

	for i := 0; i < rounds; i++ {
		v := int32(rng.Uint32())
		b := pack32(v)
		got := unpack32(b[:])
		if got != v {
			t.Fatalf("round %d: pack32/unpack32(%d) = %d", i, v, got)
		}
	}

	if got := unpack32(func() []byte { b := pack32(0); return b[:] }()); got != 0 {
		t.Fatalf("pack32(0) round-trip = %d, want 0", got)
	}
}

// TestPack32Scenario4 pins S4 from spec.md §8.
func TestPack32Scenario4(t *testing.T) {
	b := pack32(-1)
	want := [5]byte{0x7F, 0x7F, 0x7F, 0x7F, 0x0F}
	if b != want {
		t.Fatalf("pack32(-1) = %v, want %v", b, want)
	}
	if got := unpack32(b[:]); got != -1 {
		t.Fatalf("unpack32(pack32(-1)) = %d, want -1", got)
	}
}

// TestUnpack32SignExtensionQuirk pins the spec.md §9 zero-with-sign-bit
// quirk: a zero magnitude with the sign bit set still decodes to 0.
func TestUnpack32SignExtensionQuirk(t *testing.T) {
	b := [5]byte{0, 0, 0, 0, 0x08}
	if got := unpack32(b[:]); got != 0 {
		t.Fatalf("unpack32 of zero magnitude with sign bit = %d, want 0", got)
	}
}

// TestPackFloatRoundTrip exercises the custom AccelStepper float codec
// across representative magnitudes; see SPEC_FULL.md Open Question 1
// for the clamping behavior at the exponent's boundary.
func TestPackFloatRoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 0.5, -0.5, 200.5, -1500, 3.14159, 99999, 0.0015}

	for _, v := range cases {
		b := packFloat(v)
		got := unpackFloat(b)
		diff := got - v
		if diff < 0 {
			diff = -diff
		}
		tolerance := 1.0
		if diff > tolerance {
			t.Errorf("packFloat/unpackFloat(%v) = %v, diff %v exceeds tolerance", v, got, diff)
		}
	}
}

func TestPackFloatZero(t *testing.T) {
	b := packFloat(0)
	if b != [4]byte{} {
		t.Fatalf("packFloat(0) = %v, want all zero bytes", b)
	}
	if got := unpackFloat(b); got != 0 {
		t.Fatalf("unpackFloat(packFloat(0)) = %v, want 0", got)
	}
}

func TestOnewireAddressRoundTrip(t *testing.T) {
	addr := onewireAddress{Family: 0x28, Identity: [6]byte{1, 2, 3, 4, 5, 6}, CRC: 0x9A}
	b := packOnewireAddress(addr)
	got := unpackOnewireAddress(b[:])
	if got != addr {
		t.Fatalf("onewire address round-trip = %+v, want %+v", got, addr)
	}
}
