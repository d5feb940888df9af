// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetch_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/symbiflow/ftpvl/evalstore/storetest"
	"github.com/symbiflow/ftpvl/evaluation"
	"github.com/symbiflow/ftpvl/fetch"
)

const metaProducts = `{"1": {"name": "log.txt"}, "2": {"name": "meta.json"}}`

// hydraServer serves a small jobset "proj/jobs" with two pages of
// evaluations.
type hydraServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

func newHydraServer(t *testing.T) *hydraServer {
	h := &hydraServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/jobset/proj/jobs/evals", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"evals": [{"id": 10, "builds": [4, 5, 6]}, {"id": 9, "builds": [7]}]}`)
			return
		}
		fmt.Fprint(w, `{"evals": [{"id": 12, "builds": [1, 2]}, {"id": 11, "builds": [3]}], "next": "?page=2"}`)
	})
	builds := map[string]string{
		"/build/1": `{"buildstatus": 0, "buildproducts": ` + metaProducts + `}`,
		"/build/2": `{"buildstatus": 1, "buildproducts": ` + metaProducts + `}`,
		"/build/3": `{"buildstatus": 0, "buildproducts": {"1": {"name": "log.txt"}}}`,
		"/build/4": `{"buildstatus": 0, "buildproducts": ` + metaProducts + `}`,
		"/build/5": `{"buildstatus": 0, "buildproducts": ` + metaProducts + `}`,
		"/build/6": `{"buildstatus": 0, "buildproducts": ` + metaProducts + `}`,

		"/build/1/download/2/meta.json": `{"date": "2021-01-01T00:00:00", "board": "arty",
			"max_freq": {"clk": {"actual": 125000000}},
			"resources": {"LUT": 100}, "versions": {"yosys": "0.9"}}`,
		"/build/4/download/2/meta.json": `{"date": "2020-07-17T22:12:41", "board": "icebreaker",
			"max_freq": 72.5, "resources": {"LUT": 80}}`,
		"/build/6/download/2/meta.json": `{"date": `,
	}
	mux.HandleFunc("/build/", func(w http.ResponseWriter, r *http.Request) {
		body, ok := builds[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})
	h.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.requests = append(h.requests, r.URL.RequestURI())
		h.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(h.Close)
	return h
}

func (h *hydraServer) takeRequests() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := h.requests
	h.requests = nil
	return r
}

func quietLogger() (logrus.FieldLogger, *test.Hook) {
	return test.NewNullLogger()
}

func TestHydraRelative(t *testing.T) {
	srv := newHydraServer(t)
	log, hook := quietLogger()
	h := &fetch.Hydra{Project: "proj", Jobset: "jobs", BaseURL: srv.URL, Logger: log}

	e, err := h.Fetch(context.Background())
	require.NoError(t, err)
	id, ok := e.EvalID()
	require.True(t, ok)
	require.Equal(t, 12, id)

	tab := e.Table()
	require.Equal(t, []string{"date", "board", "max_freq.clk.actual", "resources.LUT", "versions.yosys", "freq"}, tab.Columns())
	freq, err := tab.Column("freq")
	require.NoError(t, err)
	require.Equal(t, []evaluation.Value{evaluation.FloatValue(125)}, freq)

	// Build 2 failed and is skipped with a warning.
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.Equal(t, 2, hook.LastEntry().Data["build"])
}

func TestHydraNextPage(t *testing.T) {
	srv := newHydraServer(t)
	log, hook := quietLogger()
	h := &fetch.Hydra{Project: "proj", Jobset: "jobs", EvalNum: 2, BaseURL: srv.URL, Logger: log}

	ds, err := h.Download(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, ds.EvalID)
	require.True(t, ds.HasEvalID)
	// Build 5 has no downloadable meta.json and build 6's is corrupt.
	require.Len(t, ds.Records, 1)
	board, _ := ds.Records[0].Get("board")
	require.Equal(t, "icebreaker", board)
	require.Len(t, hook.AllEntries(), 2)

	e, err := h.Fetch(context.Background())
	require.NoError(t, err)
	freq, err := e.Table().Column("freq")
	require.NoError(t, err)
	require.Equal(t, []evaluation.Value{evaluation.FloatValue(72.5)}, freq)
}

func TestHydraErrors(t *testing.T) {
	srv := newHydraServer(t)
	log, _ := quietLogger()
	for _, tc := range []struct {
		name     string
		evalNum  int
		absolute bool
		check    func(t *testing.T, err error)
	}{
		{"relative past end", 4, false, func(t *testing.T, err error) {
			require.ErrorIs(t, err, fetch.ErrEvalNotFound)
		}},
		{"absolute missing", 99, true, func(t *testing.T, err error) {
			require.ErrorIs(t, err, fetch.ErrEvalNotFound)
		}},
		{"no usable builds", 11, true, func(t *testing.T, err error) {
			require.ErrorIs(t, err, fetch.ErrNoBuilds)
		}},
		{"missing build", 9, true, func(t *testing.T, err error) {
			var se *fetch.StatusError
			require.True(t, errors.As(err, &se), "got %v", err)
			require.Equal(t, http.StatusNotFound, se.Status)
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := &fetch.Hydra{Project: "proj", Jobset: "jobs", EvalNum: tc.evalNum, Absolute: tc.absolute, BaseURL: srv.URL, Logger: log}
			_, err := h.Fetch(context.Background())
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestHydraAbsolute(t *testing.T) {
	srv := newHydraServer(t)
	log, _ := quietLogger()
	h := &fetch.Hydra{Project: "proj", Jobset: "jobs", EvalNum: 10, Absolute: true, BaseURL: srv.URL, Logger: log}
	e, err := h.Fetch(context.Background())
	require.NoError(t, err)
	id, _ := e.EvalID()
	require.Equal(t, 10, id)
	require.Equal(t, 1, e.Table().Len())
}

func TestHydraCache(t *testing.T) {
	srv := newHydraServer(t)
	log, _ := quietLogger()
	h := &fetch.Hydra{
		Project: "proj", Jobset: "jobs", EvalNum: 12, Absolute: true,
		BaseURL: srv.URL, Logger: log, Cache: storetest.NewDB(t),
	}
	first, err := h.Fetch(context.Background())
	require.NoError(t, err)
	require.Contains(t, srv.takeRequests(), "/build/1/download/2/meta.json")

	second, err := h.Fetch(context.Background())
	require.NoError(t, err)
	// Only the failed build is asked about again.
	require.Equal(t, []string{"/build/2"}, srv.takeRequests())
	require.True(t, first.Table().Equal(second.Table()))
}

func TestHydraRetry(t *testing.T) {
	var mu sync.Mutex
	failures := 1
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case failures > 0:
			failures--
			http.Error(w, "busy", http.StatusServiceUnavailable)
		case r.URL.Path == "/jobset/proj/jobs/evals":
			fmt.Fprint(w, `{"evals": [{"id": 1, "builds": [1]}]}`)
		case r.URL.Path == "/build/1":
			fmt.Fprint(w, `{"buildstatus": 0, "buildproducts": {"7": {"name": "meta.json"}}}`)
		case r.URL.Path == "/build/1/download/7/meta.json":
			fmt.Fprint(w, `{"max_freq": 50}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	log, _ := quietLogger()
	h := &fetch.Hydra{Project: "proj", Jobset: "jobs", BaseURL: srv.URL, Logger: log, MaxRetries: 2}
	e, err := h.Fetch(context.Background())
	require.NoError(t, err)
	freq, err := e.Table().Column("freq")
	require.NoError(t, err)
	require.Equal(t, []evaluation.Value{evaluation.IntValue(50)}, freq)
}
