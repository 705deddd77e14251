// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-horo/qtg/qt2100"
)

// CSV writes res as a CSV table, one row per measurement, with the
// timestamp column prepended when the file was relayed through a
// RetroPrinter. An erroneous measurement is rendered as an
// "OUT OF RANGE" marker carrying the sign of the nearest prior valid
// value, positive when there is none yet.
func CSV(w io.Writer, res *qt2100.Result) error {
	withTS := len(res.Timestamps) > 0
	if withTS && len(res.Timestamps) != len(res.Values) {
		return fmt.Errorf("xcnv: %d timestamps for %d values",
			len(res.Timestamps), len(res.Values),
		)
	}

	cw := csv.NewWriter(w)

	header := []string{res.Rate.String()}
	if withTS {
		header = []string{"Time Stamp", res.Rate.String()}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("xcnv: could not write CSV header: %w", err)
	}

	sign := "+"
	for i, v := range res.Values {
		var cell string
		switch {
		case v.Valid:
			if v.Rate < 0 {
				sign = "-"
			} else {
				sign = "+"
			}
			cell = strconv.FormatFloat(v.Rate, 'f', 3, 64)
		default:
			cell = sign + " OUT OF RANGE"
		}
		row := []string{cell}
		if withTS {
			row = []string{res.Timestamps[i].String(), cell}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("xcnv: could not write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
