// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package firmata provides a reference Go implementation of the Firmata
// wire protocol: a MIDI-derived byte framing used to command and observe
// a microcontroller's pins and peripherals over a serial link.
//
// The package is a pure codec: it turns inbound byte chunks into
// structured Packet values and turns typed requests into outbound wire
// bytes. It does not open a serial port, does not track pin state, and
// does not log; callers own the transport and the device model.
//
// See the protocol reference at https://github.com/firmata/protocol.
package firmata
