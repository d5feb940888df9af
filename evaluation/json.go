// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evaluation

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes t as an array of records, one object per row.
// Index levels come first in each object, followed by the columns.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		n := 0
		field := func(name string, v Value) error {
			if n > 0 {
				buf.WriteByte(',')
			}
			n++
			key, err := json.Marshal(name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := v.MarshalJSON()
			if err != nil {
				return err
			}
			buf.Write(val)
			return nil
		}
		for l, name := range t.levels {
			if err := field(name, t.index[i][l]); err != nil {
				return nil, err
			}
		}
		for c, name := range t.cols {
			if err := field(name, row[c]); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
