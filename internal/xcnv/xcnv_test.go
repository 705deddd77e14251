// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-horo/qtg/qt2100"
)

func TestCSV(t *testing.T) {
	for _, tc := range []struct {
		name string
		res  qt2100.Result
		want string
		err  string
	}{
		{
			name: "raw-file",
			res: qt2100.Result{
				Values: []qt2100.Value{
					{Rate: 10, Valid: true},
					{Rate: -12.345, Valid: true},
					{},
					{Rate: 0.5, Valid: true},
				},
				Rate: qt2100.Rate10s,
			},
			want: strings.Join([]string{
				"10 SEC RATE SEC/DAY",
				"10.000",
				"-12.345",
				"- OUT OF RANGE",
				"0.500",
				"",
			}, "\n"),
		},
		{
			name: "leading-error-positive-sign",
			res: qt2100.Result{
				Values: []qt2100.Value{
					{},
					{Rate: -1, Valid: true},
					{},
				},
				Rate: qt2100.RateDay,
			},
			want: strings.Join([]string{
				"RATE SEC/DAY",
				"+ OUT OF RANGE",
				"-1.000",
				"- OUT OF RANGE",
				"",
			}, "\n"),
		},
		{
			name: "timestamped-file",
			res: qt2100.Result{
				Values: []qt2100.Value{
					{Rate: 1.5, Valid: true},
					{Rate: 1.25, Valid: true},
				},
				Timestamps: []qt2100.Timestamp{
					{Min: 7, Sec: 42},
					{Min: 7, Sec: 52},
				},
				Rate: qt2100.Rate1s,
			},
			want: strings.Join([]string{
				"Time Stamp,1 SEC RATE SEC/DAY",
				"07:42,1.500",
				"07:52,1.250",
				"",
			}, "\n"),
		},
		{
			name: "misaligned-timestamps",
			res: qt2100.Result{
				Values: []qt2100.Value{
					{Rate: 1, Valid: true},
					{Rate: 2, Valid: true},
				},
				Timestamps: []qt2100.Timestamp{{Min: 1, Sec: 2}},
			},
			err: "xcnv: 1 timestamps for 2 values",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			err := CSV(buf, &tc.res)
			switch {
			case err != nil && tc.err == "":
				t.Fatalf("could not convert to CSV: %+v", err)
			case err == nil && tc.err != "":
				t.Fatalf("expected an error: %s", tc.err)
			case err != nil:
				if got := err.Error(); got != tc.err {
					t.Fatalf("invalid error:\ngot: %s\nwant:%s", got, tc.err)
				}
				return
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("invalid CSV output:\ngot:\n%s\nwant:\n%s", got, tc.want)
			}
		})
	}
}

func TestPlotModeB(t *testing.T) {
	res := qt2100.Result{
		Values: []qt2100.Value{
			{Rate: 0.5, Valid: true},
			{},
			{Rate: -0.25, Valid: true},
		},
		Rate:  qt2100.Rate1s,
		Print: qt2100.PrintB1s,
	}
	p, err := Plot(&res, 0)
	if err != nil {
		t.Fatalf("could not build mode-B plot: %+v", err)
	}
	if got, want := p.Title.Text, "Mode B 1S - 1 SEC RATE SEC/DAY"; got != want {
		t.Fatalf("invalid title: got=%q, want=%q", got, want)
	}
	if got, want := p.Y.Label.Text, "Daily Rate (Sec/Day)"; got != want {
		t.Fatalf("invalid Y label: got=%q, want=%q", got, want)
	}
	if p.Y.Min > -1 || p.Y.Max < 1 {
		t.Fatalf("rate axis does not span [-1,+1]: [%v, %v]", p.Y.Min, p.Y.Max)
	}
}

func TestPlotModeA(t *testing.T) {
	var values []qt2100.Value
	for i := 0; i < 120; i++ {
		v := qt2100.Value{Rate: 0.2, Valid: true}
		if i%2 == 1 {
			v.Rate = -0.1
		}
		if i == 50 {
			v = qt2100.Value{}
		}
		values = append(values, v)
	}
	res := qt2100.Result{
		Values: values,
		Rate:   qt2100.Rate10s,
		Print:  qt2100.PrintA10s,
	}
	p, err := Plot(&res, 2)
	if err != nil {
		t.Fatalf("could not build mode-A plot: %+v", err)
	}
	if got, want := p.X.Label.Text, "Days"; got != want {
		t.Fatalf("invalid X label: got=%q, want=%q", got, want)
	}
	if got, want := p.Y.Label.Text, "Cumulated seconds"; got != want {
		t.Fatalf("invalid Y label: got=%q, want=%q", got, want)
	}
	if p.X.Max < 1 {
		t.Fatalf("time axis spans less than one day: %v", p.X.Max)
	}
}

func TestPlotModeC(t *testing.T) {
	res := qt2100.Result{
		Values: []qt2100.Value{{Rate: 1, Valid: true}},
		Print:  qt2100.PrintC,
	}
	_, err := Plot(&res, 0)
	if !errors.Is(err, ErrModeC) {
		t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrModeC)
	}
}

func TestPlotNoValidValues(t *testing.T) {
	res := qt2100.Result{
		Values: []qt2100.Value{{}, {}},
		Print:  qt2100.PrintB1s,
	}
	if _, err := Plot(&res, 0); err == nil {
		t.Fatalf("expected an error for a dataset without valid values")
	}
}

func TestBeatError(t *testing.T) {
	res := qt2100.Result{
		Values: []qt2100.Value{
			{Rate: 1, Valid: true},
			{Rate: -0.5, Valid: true},
			{Rate: 2, Valid: true},
			{Rate: -0.5, Valid: true},
		},
		Print: qt2100.PrintA2m,
	}
	got, err := BeatError(&res)
	if err != nil {
		t.Fatalf("could not compute beat error: %+v", err)
	}
	if want := 1.0; math.Abs(got-want) > 1e-12 {
		t.Fatalf("invalid beat error: got=%v, want=%v", got, want)
	}

	res.Print = qt2100.PrintB1s
	if _, err := BeatError(&res); err == nil {
		t.Fatalf("expected an error for print mode B")
	}
}
