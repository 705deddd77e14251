// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xcnv converts decoded QT-2100 data to CSV tables and
// timegrapher-style charts.
package xcnv // import "github.com/go-horo/qtg/internal/xcnv"
