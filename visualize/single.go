// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visualize

import (
	"fmt"
	"io"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/symbiflow/ftpvl/evaluation"
	"github.com/symbiflow/ftpvl/internal/texttab"
	"github.com/symbiflow/ftpvl/style"
)

// nullCSS highlights missing values.
const nullCSS = "background-color: yellow"

// nullSGR is the terminal rendering of nullCSS.
const nullSGR = "43"

// SingleTable shows the values of one evaluation colored by a style
// evaluation, such as the output of style.ColorMapStyle. Style must
// have the same rows as Values and every shown column; its cells are
// Styling declarations or empty.
type SingleTable struct {
	Values *evaluation.Evaluation
	Style  *evaluation.Evaluation
	Options
}

type styledCell struct {
	text    string
	css     string
	color   string
	numeric bool
}

type layout struct {
	header []string
	index  [][]string
	cells  [][]styledCell
}

func (s *SingleTable) layout() (*layout, error) {
	names := s.Options.columns(StyledColumns)
	vt, err := selectColumns(s.Values.Table(), names)
	if err != nil {
		return nil, err
	}
	var st *evaluation.Table
	if s.Style != nil {
		st, err = selectColumns(s.Style.Table(), names)
		if err != nil {
			return nil, fmt.Errorf("style: %w", err)
		}
		if st.Len() != vt.Len() {
			return nil, fmt.Errorf("style has %d rows, want %d", st.Len(), vt.Len())
		}
	}

	l := &layout{header: append(vt.Levels(), vt.Columns()...)}
	for i := 0; i < vt.Len(); i++ {
		var label []string
		if vt.HasIndex() {
			for _, v := range vt.Label(i) {
				label = append(label, v.String())
			}
		}
		l.index = append(l.index, label)

		row := make([]styledCell, len(vt.Columns()))
		for j, v := range vt.Row(i) {
			c := styledCell{text: FormatValue(v), numeric: v.IsNumeric()}
			switch {
			case v.IsNA():
				c.css, c.color = nullCSS, nullSGR
			case st != nil:
				sv := st.Cell(i, j)
				css, ok := sv.Str()
				if !ok && !sv.IsNA() {
					return nil, fmt.Errorf("row %d column %q: style %v is not a string", i, vt.Columns()[j], sv)
				}
				if css != "" {
					rgb, ok := style.ParseStyling(css)
					if !ok {
						return nil, fmt.Errorf("row %d column %q: unsupported style %q", i, vt.Columns()[j], css)
					}
					c.css, c.color = css, rgb.SGR()
				}
			}
			row[j] = c
		}
		l.cells = append(l.cells, row)
	}
	return l, nil
}

const tableHTML = `<table class="ftpvl">
<thead>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}<tr>{{range .Index}}<th>{{.}}</th>{{end}}{{range .Cells}}<td style="{{.Style}}">{{.Text}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
`

var tableTmpl = template.Must(template.New("table").Parse(tableHTML))

type htmlCell struct {
	Text  string
	Style safehtml.Style
}

type htmlRow struct {
	Index []string
	Cells []htmlCell
}

// WriteHTML writes the table as an HTML fragment.
func (s *SingleTable) WriteHTML(w io.Writer) error {
	l, err := s.layout()
	if err != nil {
		return err
	}
	data := struct {
		Header []string
		Rows   []htmlRow
	}{Header: l.header}
	for i, row := range l.cells {
		hr := htmlRow{Index: l.index[i]}
		for _, c := range row {
			// layout only lets through nullCSS and Styling output.
			hr.Cells = append(hr.Cells, htmlCell{
				Text:  c.text,
				Style: uncheckedconversions.StyleFromStringKnownToSatisfyTypeContract(c.css),
			})
		}
		data.Rows = append(data.Rows, hr)
	}
	return tableTmpl.Execute(w, data)
}

// WriteText writes the table as text. If color is set, cell
// backgrounds are drawn with ANSI escapes.
func (s *SingleTable) WriteText(w io.Writer, color bool) error {
	l, err := s.layout()
	if err != nil {
		return err
	}
	var tab texttab.Table
	tab.Row()
	for _, h := range l.header {
		tab.Cell(h)
	}
	for i, row := range l.cells {
		tab.Row()
		for _, x := range l.index[i] {
			tab.Cell(x)
		}
		for _, c := range row {
			var opts []texttab.CellOption
			if c.numeric {
				opts = append(opts, texttab.Right)
			}
			if color && c.color != "" {
				opts = append(opts, texttab.Color(c.color))
			}
			tab.Cell(c.text, opts...)
		}
	}
	return tab.Format(w)
}
