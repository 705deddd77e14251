// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command qtg-plot renders QT-2100 printer files as timegrapher-style
// charts.
//
// Mechanical "A" print modes are drawn as a cumulated-rate scatter
// plot, quartz "B 1S" as an instantaneous daily-rate plot. Print mode
// "C" has no chart rendering: use qtg2csv instead.
package main // import "github.com/go-horo/qtg/cmd/qtg-plot"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/go-horo/qtg/internal/xcnv"
	"github.com/go-horo/qtg/qt2100"
)

var (
	msg = log.New(os.Stdout, "qtg-plot: ", 0)
)

func main() {
	var (
		oname  = flag.String("o", "", "path to output chart file (default: input name with a .pdf extension)")
		cutoff = flag.Float64("cutoff", 2, "wrap the time axis of mode-A charts every that many days (<=0 disables wrapping)")
	)

	flag.Usage = func() {
		fmt.Printf(`Usage: qtg-plot [OPTIONS] file.raw

ex:
 $> qtg-plot -o out.pdf -cutoff=2 ./input.raw

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		msg.Fatalf("missing input printer file")
	}

	fname := flag.Arg(0)
	err := process(outputName(*oname, fname), *cutoff, fname)
	if err != nil {
		msg.Fatalf("could not plot file %q: %+v", fname, err)
	}
}

func outputName(oname, fname string) string {
	if oname != "" {
		return oname
	}
	return strings.TrimSuffix(fname, filepath.Ext(fname)) + ".pdf"
}

func process(oname string, cutoff float64, fname string) error {
	raw, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", fname, err)
	}

	res, err := qt2100.Decode(raw)
	if err != nil {
		return fmt.Errorf("could not decode %q: %w", fname, err)
	}
	if res.Truncated {
		msg.Printf("%s: file ends with a truncated frame", fname)
	}

	switch res.Print {
	case qt2100.PrintA10s, qt2100.PrintA2m:
		be, err := xcnv.BeatError(res)
		if err != nil {
			return fmt.Errorf("could not compute beat error of %q: %w", fname, err)
		}
		msg.Printf("%s: beat error: %+.3f", fname, be)
	}

	p, err := xcnv.Plot(res, cutoff)
	if err != nil {
		return fmt.Errorf("could not build chart for %q: %w", fname, err)
	}

	err = p.Save(20*vg.Centimeter, 15*vg.Centimeter, oname)
	if err != nil {
		return fmt.Errorf("could not save chart to %q: %w", oname, err)
	}
	return nil
}
