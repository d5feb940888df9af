// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/symbiflow/ftpvl/evalstore"
	_ "github.com/symbiflow/ftpvl/evalstore/sqlite3"
	"github.com/symbiflow/ftpvl/evaluation"
	"github.com/symbiflow/ftpvl/fetch"
	"golang.org/x/oauth2"
)

const hydraPrefix = "hydra:"

// A source names where an evaluation comes from.
type source struct {
	// Hydra evaluations.
	project, jobset string
	evalNum         int
	absolute        bool

	// JSON tables.
	path string
}

func (s source) isHydra() bool { return s.project != "" }

func (s source) String() string {
	switch {
	case !s.isHydra():
		return s.path
	case s.absolute:
		return fmt.Sprintf("%s%s/%s@%d", hydraPrefix, s.project, s.jobset, s.evalNum)
	case s.evalNum > 0:
		return fmt.Sprintf("%s%s/%s~%d", hydraPrefix, s.project, s.jobset, s.evalNum)
	}
	return hydraPrefix + s.project + "/" + s.jobset
}

// parseSource parses a SOURCE argument.
func parseSource(arg string) (source, error) {
	rest, ok := strings.CutPrefix(arg, hydraPrefix)
	if !ok {
		if arg == "" {
			return source{}, fmt.Errorf("empty source")
		}
		return source{path: arg}, nil
	}
	var s source
	if i := strings.IndexAny(rest, "~@"); i >= 0 {
		n, err := strconv.Atoi(rest[i+1:])
		if err != nil || n < 0 {
			return source{}, fmt.Errorf("source %q: bad evaluation number %q", arg, rest[i+1:])
		}
		s.evalNum, s.absolute = n, rest[i] == '@'
		rest = rest[:i]
	}
	project, jobset, ok := strings.Cut(rest, "/")
	if !ok || project == "" || jobset == "" || strings.Contains(jobset, "/") {
		return source{}, fmt.Errorf("source %q: want %sPROJECT/JOBSET", arg, hydraPrefix)
	}
	s.project, s.jobset = project, jobset
	return s, nil
}

// A session holds the resources shared by the sources of one command.
type session struct {
	cache   *evalstore.DB
	mapping fetch.Mapping
	log     logrus.FieldLogger
}

func newSession() (*session, error) {
	s := &session{log: logrus.StandardLogger()}
	if path := v.GetString("mapping"); path != "" {
		m, err := fetch.LoadMapping(path)
		if err != nil {
			return nil, err
		}
		s.mapping = m
	}
	if dsn := v.GetString("cache-dsn"); dsn != "" {
		db, err := evalstore.OpenSQL(v.GetString("cache-driver"), dsn)
		if err != nil {
			return nil, fmt.Errorf("opening build cache: %w", err)
		}
		s.cache = db
	}
	return s, nil
}

func (s *session) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

// fetch retrieves the evaluation named by src.
func (s *session) fetch(ctx context.Context, src source) (*evaluation.Evaluation, error) {
	s.log.WithField("source", src.String()).Info("fetching evaluation")
	if !src.isHydra() {
		f := &fetch.JSONFile{Path: src.path, Mapping: s.mapping}
		return f.Fetch(ctx)
	}
	var ts oauth2.TokenSource
	if tok := v.GetString("hydra-token"); tok != "" {
		ts = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok})
	}
	h := &fetch.Hydra{
		Project:     src.project,
		Jobset:      src.jobset,
		EvalNum:     src.evalNum,
		Absolute:    src.absolute,
		Mapping:     s.mapping,
		ClockNames:  clockNames(),
		BaseURL:     v.GetString("hydra-url"),
		TokenSource: ts,
		Cache:       s.cache,
		MaxRetries:  v.GetInt("hydra-retries"),
		Logger:      s.log.WithField("source", src.String()),
	}
	return h.Fetch(ctx)
}

func clockNames() []string {
	names := v.GetStringSlice("clock-names")
	if len(names) == 0 {
		return nil
	}
	return names
}
