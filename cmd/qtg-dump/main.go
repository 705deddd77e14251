// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// qtg-dump decodes and displays QT-2100 printer files.
//
// Usage: qtg-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//  $> qtg-dump ./testdata/mode-a.raw
//  === ./testdata/mode-a.raw ===
//  rate mode:  10 SEC RATE SEC/DAY
//  print mode: A 10S
//  acq mode:   Seconds
//  values:     100
//    +0.200
//    -0.100
//    OUT OF RANGE
//  [...]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-horo/qtg/qt2100"
)

func main() {
	log.SetPrefix("qtg-dump: ")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Printf(`qtg-dump decodes and displays QT-2100 printer files.

Usage: qtg-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> qtg-dump ./testdata/mode-a.raw
 === ./testdata/mode-a.raw ===
 rate mode:  10 SEC RATE SEC/DAY
 print mode: A 10S
 acq mode:   Seconds
 values:     100
   +0.200
   -0.100
   OUT OF RANGE
 [...]

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("missing path to input printer file")
	}

	for _, fname := range flag.Args() {
		err := process(os.Stdout, fname)
		if err != nil {
			log.Fatalf("could not dump file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname string) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	raw, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", fname, err)
	}

	res, err := qt2100.Decode(raw)
	if err != nil {
		return fmt.Errorf("could not decode %q: %w", fname, err)
	}

	fmt.Fprintf(wbuf, "=== %s ===\n", fname)
	fmt.Fprintf(wbuf, "rate mode:  %v\n", res.Rate)
	fmt.Fprintf(wbuf, "print mode: %v\n", res.Print)
	fmt.Fprintf(wbuf, "acq mode:   %v\n", res.Acq)
	fmt.Fprintf(wbuf, "values:     %d\n", len(res.Values))

	for i, v := range res.Values {
		var ts string
		if i < len(res.Timestamps) {
			ts = res.Timestamps[i].String() + " "
		}
		switch {
		case v.Valid:
			fmt.Fprintf(wbuf, "  %s%+.3f\n", ts, v.Rate)
		default:
			fmt.Fprintf(wbuf, "  %sOUT OF RANGE\n", ts)
		}
	}

	if res.Truncated {
		fmt.Fprintf(wbuf, "warning: file ends with a truncated frame\n")
	}

	return nil
}
