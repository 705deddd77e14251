// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qt2100 decodes the printer byte stream emitted by the
// Seiko QT-2100 timegrapher.
//
// The stream is a concatenation of frames introduced by an escape
// byte (0x1B): a header frame carrying the rate mode, value frames
// carrying one signed fixed-point rate measurement each, and
// timestamp frames injected by a RetroPrinter relay in front of the
// value they date.
package qt2100 // import "github.com/go-horo/qtg/qt2100"

import "fmt"

const (
	escByte   = 0x1b // escape byte introducing a command frame
	cmdHeader = '0'  // header frame: rate mode
	cmdValue  = '1'  // value-begin frame: a value frame follows
	cmdTstamp = 'T'  // timestamp frame (RetroPrinter relay)

	tsTrailer = 0x1b31 // value-begin marker closing a timestamp frame

	flagSign  = 0x01 // negative measurement
	flagFirst = 0x10 // first value of a gated series (advisory)
	flagHz    = 0x20 // Hz-gate acquisition
	flagError = 0x80 // measurement error, frame carries no payload

	maxRate = 999999 // maximum payload magnitude, in 1/1000 s/day
)

// RateMode is the unit/duration basis of sec/day rate reporting,
// set once by the header frame of a printer file.
type RateMode uint8

const (
	Rate10s RateMode = iota
	Rate2m
	Rate1s
	RateDay
)

func (m RateMode) String() string {
	switch m {
	case Rate10s:
		return "10 SEC RATE SEC/DAY"
	case Rate2m:
		return "2 MIN RATE SEC/DAY"
	case Rate1s:
		return "1 SEC RATE SEC/DAY"
	case RateDay:
		return "RATE SEC/DAY"
	}
	return fmt.Sprintf("RateMode(0x%02x)", uint8(m))
}

// PrintMode is the display format of the watch movement that produced
// the value stream, repeated in the mode byte of every value frame.
type PrintMode uint8

const (
	PrintC PrintMode = iota
	PrintA10s
	PrintA2m
	PrintB1s
)

func (m PrintMode) String() string {
	switch m {
	case PrintC:
		return "C"
	case PrintA10s:
		return "A 10S"
	case PrintA2m:
		return "A 2M"
	case PrintB1s:
		return "B 1S"
	}
	return fmt.Sprintf("PrintMode(0x%02x)", uint8(m))
}

// AcqMode is the gate the instrument measured with, extracted from
// the flags byte of every value frame.
type AcqMode uint8

const (
	AcqSeconds AcqMode = 0x00
	AcqHz      AcqMode = 0x20
)

func (m AcqMode) String() string {
	switch m {
	case AcqSeconds:
		return "Seconds"
	case AcqHz:
		return "Hz"
	}
	return fmt.Sprintf("AcqMode(0x%02x)", uint8(m))
}

// Value is one rate measurement, in seconds per day.
// Valid is false when the device recorded a measurement error: the
// frame carried no payload and Rate is meaningless.
type Value struct {
	Rate  float64 // signed rate, within [-999.999, +999.999]
	Valid bool
}

// Timestamp dates the value frame that follows it.
// The wire frame also carries hours; they are discarded.
type Timestamp struct {
	Min uint8
	Sec uint8
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d", ts.Min, ts.Sec)
}

// Result holds the decoded content of one printer file.
//
// When Timestamps is not empty it is index-aligned with Values.
// The mode fields hold the last value seen while scanning; the
// Distinct counters let callers detect files mixing several modes.
type Result struct {
	Values     []Value
	Timestamps []Timestamp

	Rate  RateMode
	Print PrintMode
	Acq   AcqMode

	// Truncated reports that the stream ended in the middle of a
	// frame. The values decoded up to that point are kept.
	Truncated bool

	DistinctRates  int
	DistinctPrints int
	DistinctAcqs   int
}

// FrameError describes a malformed frame. Offset is the position in
// the stream of the first byte that could not be interpreted.
type FrameError struct {
	Offset int64
	Reason string
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("qt2100: %s at offset %d", e.Reason, e.Offset)
}
