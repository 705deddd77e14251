// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qt2100

import (
	"fmt"
	"io"
	"math"
)

// Encoder writes QT-2100 printer frames to an output stream.
// It is mainly used to build test fixtures and synthetic data files.
type Encoder struct {
	w   io.Writer
	buf []byte
	err error
}

// NewEncoder returns a new Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:   w,
		buf: make([]byte, 8),
	}
}

// EncodeHeader writes a header frame carrying the rate mode.
func (enc *Encoder) EncodeHeader(m RateMode) error {
	if m > RateDay {
		return fmt.Errorf("qt2100: invalid rate mode 0x%02x", uint8(m))
	}
	enc.writeU8(escByte)
	enc.writeU8(cmdHeader)
	enc.writeU8(uint8(m))
	if enc.err != nil {
		return fmt.Errorf("qt2100: could not write header frame: %w", enc.err)
	}
	return nil
}

// EncodeValue writes a value-begin frame followed by one value frame.
func (enc *Encoder) EncodeValue(pm PrintMode, am AcqMode, v Value) error {
	enc.writeU8(escByte)
	enc.writeU8(cmdValue)
	enc.value(pm, am, v)
	if enc.err != nil {
		return fmt.Errorf("qt2100: could not write value frame: %w", enc.err)
	}
	return nil
}

// EncodeTimestamped writes a timestamp frame followed by the value
// frame it dates, the way a RetroPrinter relay does.
func (enc *Encoder) EncodeTimestamped(ts Timestamp, pm PrintMode, am AcqMode, v Value) error {
	enc.writeU8(escByte)
	enc.writeU8(cmdTstamp)
	enc.writeU8(0) // hours: present on the wire, dropped by decoders
	enc.writeU8(ts.Min)
	enc.writeU8(ts.Sec)
	enc.writeU16(tsTrailer)
	enc.value(pm, am, v)
	if enc.err != nil {
		return fmt.Errorf("qt2100: could not write timestamp frame: %w", enc.err)
	}
	return nil
}

func (enc *Encoder) value(pm PrintMode, am AcqMode, v Value) {
	if enc.err != nil {
		return
	}
	if pm > PrintB1s {
		enc.err = fmt.Errorf("invalid print mode 0x%02x", uint8(pm))
		return
	}
	if am != AcqSeconds && am != AcqHz {
		enc.err = fmt.Errorf("invalid acquisition mode 0x%02x", uint8(am))
		return
	}

	flags := uint8(am)
	if v.Rate < 0 {
		flags |= flagSign
	}

	if !v.Valid {
		enc.writeU8(uint8(pm))
		enc.writeU8(flags | flagError)
		return
	}

	raw := uint32(math.Round(math.Abs(v.Rate) * 1000))
	if raw > maxRate {
		enc.err = fmt.Errorf("rate %v out of range", v.Rate)
		return
	}
	enc.writeU8(uint8(pm))
	enc.writeU8(flags)
	enc.writeU8(0) // reserved
	enc.writeU24(raw)
}

func (enc *Encoder) write(p []byte) {
	if enc.err != nil {
		return
	}
	_, enc.err = enc.w.Write(p)
}

func (enc *Encoder) writeU8(v uint8) {
	const n = 1
	enc.buf[0] = v
	enc.write(enc.buf[:n])
}

func (enc *Encoder) writeU16(v uint16) {
	const n = 2
	enc.buf[0] = byte(v >> 8)
	enc.buf[1] = byte(v >> 0)
	enc.write(enc.buf[:n])
}

func (enc *Encoder) writeU24(v uint32) {
	const n = 3
	enc.buf[0] = byte(v >> 16)
	enc.buf[1] = byte(v >> 8)
	enc.buf[2] = byte(v >> 0)
	enc.write(enc.buf[:n])
}
