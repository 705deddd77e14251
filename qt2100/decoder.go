// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qt2100

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/xerrors"
)

// scanState tracks where the scan loop stands inside the frame
// grammar. A timestamp frame embeds a pre-consumed value-begin
// marker, so its decoding transitions straight to scanValue.
type scanState uint8

const (
	scanIdle    scanState = iota
	scanCommand           // escape byte seen, awaiting the command byte
	scanValue             // next byte is the mode byte of a value frame
)

// Decoder reads and validates QT-2100 printer data from an
// underlying data source.
type Decoder struct {
	r   io.Reader
	pos int64
	err error
	buf []byte
}

// NewDecoder creates a decoder that reads and validates data from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:   r,
		buf: make([]byte, 8),
	}
}

// Decode performs a single pass over the whole stream and fills res.
//
// A stream exhausted in the middle of a frame is a partial-data
// condition, not a failure: Decode keeps everything decoded so far
// and reports it through res.Truncated. A malformed frame aborts the
// pass with a *FrameError carrying the offending byte offset.
func (dec *Decoder) Decode(res *Result) error {
	*res = Result{}

	var (
		state scanState
		rates uint8 // set of rate-mode codes seen
		prns  uint8 // set of print-mode codes seen
		acqs  uint8 // set of acquisition-mode codes seen
	)

	for {
		v := dec.readU8()
		if dec.err != nil {
			if dec.eof() {
				return nil
			}
			return xerrors.Errorf("qt2100: could not read stream: %w", dec.err)
		}

		if v == escByte {
			// An escape byte starts a new command frame,
			// whatever the current state.
			state = scanCommand
			continue
		}

		switch state {
		default:
			// Byte outside any recognized frame: skip it.
			state = scanIdle

		case scanCommand:
			switch v {
			case cmdHeader:
				r := dec.readU8()
				if dec.err != nil {
					if dec.eof() {
						res.Truncated = true
						return nil
					}
					return xerrors.Errorf("qt2100: could not read rate mode: %w", dec.err)
				}
				if r > uint8(RateDay) {
					return frameErrf(dec.pos-1, "invalid rate mode 0x%02x", r)
				}
				res.Rate = RateMode(r)
				markSeen(&rates, r, &res.DistinctRates)
				state = scanIdle

			case cmdValue:
				state = scanValue

			case cmdTstamp:
				dec.read(dec.buf[:5]) // hour, minute, second, trailer
				if dec.err != nil {
					if dec.eof() {
						res.Truncated = true
						return nil
					}
					return xerrors.Errorf("qt2100: could not read timestamp frame: %w", dec.err)
				}
				trailer := uint16(dec.buf[3])<<8 | uint16(dec.buf[4])
				if trailer != tsTrailer {
					return frameErrf(dec.pos-2, "invalid timestamp trailer 0x%04x", trailer)
				}
				// Hours are recorded on the wire but not kept.
				res.Timestamps = append(res.Timestamps, Timestamp{
					Min: dec.buf[1],
					Sec: dec.buf[2],
				})
				// The trailer is the value-begin marker of the
				// value frame that follows.
				state = scanValue

			default:
				// Unknown command: tear down.
				state = scanIdle
			}

		case scanValue:
			// v is the mode byte of a value frame.
			if v > uint8(PrintB1s) {
				return frameErrf(dec.pos-1, "invalid print mode 0x%02x", v)
			}
			res.Print = PrintMode(v)
			markSeen(&prns, v, &res.DistinctPrints)

			flags := dec.readU8()
			if dec.err != nil {
				if dec.eof() {
					res.Truncated = true
					return nil
				}
				return xerrors.Errorf("qt2100: could not read value flags: %w", dec.err)
			}

			sign := 1.0
			if flags&flagSign != 0 {
				sign = -1.0
			}

			if flags&flagError != 0 {
				// Measurement error: the frame ends here.
				res.Values = append(res.Values, Value{})
				state = scanIdle
				continue
			}

			res.Acq = AcqMode(flags & flagHz)
			markSeen(&acqs, (flags&flagHz)>>5, &res.DistinctAcqs)

			dec.read(dec.buf[:4]) // reserved byte + 3 payload bytes
			if dec.err != nil {
				if dec.eof() {
					res.Truncated = true
					return nil
				}
				return xerrors.Errorf("qt2100: could not read value payload: %w", dec.err)
			}
			raw := uint32(dec.buf[1])<<16 | uint32(dec.buf[2])<<8 | uint32(dec.buf[3])
			if raw > maxRate {
				return frameErrf(dec.pos-3, "rate magnitude %d out of range", raw)
			}
			res.Values = append(res.Values, Value{
				Rate:  sign * float64(raw) / 1000,
				Valid: true,
			})
			state = scanIdle
		}
	}
}

// Decode decodes a fully materialized printer stream.
func Decode(p []byte) (*Result, error) {
	res := new(Result)
	err := NewDecoder(bytes.NewReader(p)).Decode(res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (dec *Decoder) read(p []byte) {
	if dec.err != nil {
		return
	}
	var n int
	n, dec.err = io.ReadFull(dec.r, p)
	dec.pos += int64(n)
}

func (dec *Decoder) readU8() uint8 {
	dec.read(dec.buf[:1])
	return dec.buf[0]
}

func (dec *Decoder) eof() bool {
	return xerrors.Is(dec.err, io.EOF) || xerrors.Is(dec.err, io.ErrUnexpectedEOF)
}

func frameErrf(offset int64, format string, args ...any) error {
	return &FrameError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func markSeen(set *uint8, code uint8, n *int) {
	if *set&(1<<code) == 0 {
		*set |= 1 << code
		*n++
	}
}
