// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evaluation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColumn is matched by errors.Is for every ColumnError.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrUnknownLevel is matched by errors.Is for every LevelError.
	ErrUnknownLevel = errors.New("unknown index level")
)

// A ColumnError records a reference to a column the table lacks.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

func (e *ColumnError) Is(target error) bool { return target == ErrUnknownColumn }

// A LevelError records a reference to an index level the table lacks.
type LevelError struct {
	Level string
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("unknown index level %q", e.Level)
}

func (e *LevelError) Is(target error) bool { return target == ErrUnknownLevel }
