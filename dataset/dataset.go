// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset provides the public API for the column-oriented,
// hash-keyed numeric table the evaluation engine reads variable columns
// from.
//
// Example:
//
//	ds, err := dataset.New(dataset.Column{Hash: hashX, Values: xs})
//	view, err := ds.View(hashX, dataset.Range{Start: 0, End: 100})
package dataset

import "github.com/born-ml/symexpr/internal/dataset"

// Dataset is a read-only, hash-keyed column store.
type Dataset = dataset.Dataset

// Column names a variable's dataset column by the hash its expr.Node.Hash
// field carries.
type Column = dataset.Column

// Range is a half-open row interval [Start, End) into the dataset.
type Range = dataset.Range

// New builds a Dataset from a set of named columns. All columns must
// have the same length.
func New(columns ...Column) (*Dataset, error) { return dataset.New(columns...) }
