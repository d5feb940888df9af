// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/symbiflow/ftpvl/buildmeta"
	"github.com/symbiflow/ftpvl/evaluation"
	"golang.org/x/net/context/ctxhttp"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// JSONFile loads a table saved as JSON.
type JSONFile struct {
	// Path is a local file name, an http(s) URL or a
	// gs://bucket/object URL.
	Path string

	// Mapping, if non-nil, selects and renames columns. Columns
	// named in Mapping but absent from the file are ignored.
	Mapping Mapping

	// TokenSource authenticates Google Cloud Storage and HTTP
	// requests. If nil, application default credentials are used for
	// gs:// URLs and HTTP requests are anonymous.
	TokenSource oauth2.TokenSource
}

// Fetch reads the file. The result has no eval id.
func (f *JSONFile) Fetch(ctx context.Context) (*evaluation.Evaluation, error) {
	r, err := f.open(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	t, err := ReadTable(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	if f.Mapping != nil {
		t = filterRename(t, f.Mapping)
	}
	return evaluation.New(t), nil
}

func (f *JSONFile) open(ctx context.Context) (io.ReadCloser, error) {
	u, err := url.Parse(f.Path)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return os.Open(f.Path)
	}
	switch u.Scheme {
	case "gs":
		var opts []option.ClientOption
		if f.TokenSource != nil {
			opts = append(opts, option.WithTokenSource(f.TokenSource))
		}
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, err
		}
		r, err := client.Bucket(u.Host).Object(strings.TrimPrefix(u.Path, "/")).NewReader(ctx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
		return &closeBoth{r, client}, nil
	case "http", "https":
		client := http.DefaultClient
		if f.TokenSource != nil {
			client = oauth2.NewClient(ctx, f.TokenSource)
		}
		resp, err := ctxhttp.Get(ctx, client, f.Path)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &StatusError{URL: f.Path, Status: resp.StatusCode}
		}
		return resp.Body, nil
	case "file":
		return os.Open(u.Path)
	}
	return nil, fmt.Errorf("%s: unsupported URL scheme %q", f.Path, u.Scheme)
}

// closeBoth closes an object reader and the client it came from.
type closeBoth struct {
	*storage.Reader
	client *storage.Client
}

func (c *closeBoth) Close() error {
	err := c.Reader.Close()
	if cerr := c.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// filterRename keeps the columns of t named by m, in m's order, and
// renames them.
func filterRename(t *evaluation.Table, m Mapping) *evaluation.Table {
	out := evaluation.NewIndexed(t.Levels(), t.Index(), []string{}, make([][]evaluation.Value, t.Len()))
	for _, r := range m {
		vals, err := t.Column(r.From)
		if err != nil {
			continue
		}
		out = out.WithColumn(r.To, vals)
	}
	return out
}

// ReadTable decodes a JSON table. The input is either an array of
// records, one object per row, or an object of columns, each mapping
// row labels to values. Row labels are not kept: the result has a
// positional index with rows in first-seen label order. Cells missing
// from a record or column are null.
func ReadTable(r io.Reader) (*evaluation.Table, error) {
	x, err := buildmeta.Decode(r)
	if err != nil {
		return nil, err
	}
	var b evaluation.Builder
	switch x := x.(type) {
	case []any:
		for i, rec := range x {
			obj, ok := rec.(buildmeta.Object)
			if !ok {
				return nil, fmt.Errorf("record %d is not an object", i)
			}
			cells := make([]evaluation.Cell, len(obj))
			for j, m := range obj {
				cells[j] = evaluation.Cell{Name: m.Key, Value: evaluation.Of(m.Value)}
			}
			b.Add(cells...)
		}
		return b.Done(), nil

	case buildmeta.Object:
		var labels []string
		rows := make(map[string][]evaluation.Cell)
		for _, col := range x {
			obj, ok := col.Value.(buildmeta.Object)
			if !ok {
				return nil, fmt.Errorf("column %q is not an object", col.Key)
			}
			for _, m := range obj {
				if _, ok := rows[m.Key]; !ok {
					labels = append(labels, m.Key)
				}
				rows[m.Key] = append(rows[m.Key], evaluation.Cell{Name: col.Key, Value: evaluation.Of(m.Value)})
			}
		}
		for _, l := range labels {
			b.Add(rows[l]...)
		}
		return alignColumns(b.Done(), x.Keys()), nil
	}
	return nil, fmt.Errorf("JSON table must be an array or an object, got %T", x)
}

// alignColumns reorders the columns of t to cols, adding null
// columns for any t lacks.
func alignColumns(t *evaluation.Table, cols []string) *evaluation.Table {
	out := evaluation.NewTable([]string{}, make([][]evaluation.Value, t.Len()))
	for _, c := range cols {
		vals, err := t.Column(c)
		if err != nil {
			vals = make([]evaluation.Value, t.Len())
		}
		out = out.WithColumn(c, vals)
	}
	return out
}
