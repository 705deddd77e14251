// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command qtg2csv converts QT-2100 printer files to CSV tables.
//
// Each input file is decoded independently, so multiple files are
// converted in parallel.
package main // import "github.com/go-horo/qtg/cmd/qtg2csv"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/go-horo/qtg/internal/xcnv"
	"github.com/go-horo/qtg/qt2100"
)

var (
	msg = log.New(os.Stdout, "qtg2csv: ", 0)
)

func main() {
	oname := flag.String("o", "", "path to output CSV file (single input file only)")

	flag.Usage = func() {
		fmt.Printf(`Usage: qtg2csv [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

ex:
 $> qtg2csv -o out.csv ./input.raw
 $> qtg2csv ./run1.raw ./run2.raw

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		msg.Fatalf("missing input printer file")
	}
	if *oname != "" && flag.NArg() != 1 {
		flag.Usage()
		msg.Fatalf("-o flag requires a single input file")
	}

	var grp errgroup.Group
	for _, fname := range flag.Args() {
		fname := fname
		out := *oname
		if out == "" {
			out = strings.TrimSuffix(fname, filepath.Ext(fname)) + ".csv"
		}
		grp.Go(func() error {
			return process(out, fname)
		})
	}
	if err := grp.Wait(); err != nil {
		msg.Fatalf("could not convert: %+v", err)
	}
}

func process(oname, fname string) error {
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

	o, err := os.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", oname, err)
	}
	defer o.Close()

	if err := xcnv.CSV(o, res); err != nil {
		return fmt.Errorf("could not convert %q: %w", fname, err)
	}

	if err := o.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", oname, err)
	}
	return nil
}
