// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fetch downloads build results and turns them into
// evaluations.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/symbiflow/ftpvl/buildmeta"
	"github.com/symbiflow/ftpvl/evalstore"
	"github.com/symbiflow/ftpvl/evaluation"
	"golang.org/x/net/context/ctxhttp"
	"golang.org/x/oauth2"
)

// DefaultHydraURL is the build server Hydra talks to by default.
const DefaultHydraURL = "https://hydra.vtr.tools"

// ErrNoBuilds is returned when none of an evaluation's builds produced
// usable results.
var ErrNoBuilds = errors.New("no successful builds")

// ErrEvalNotFound is returned when the requested evaluation is not
// listed by the server.
var ErrEvalNotFound = errors.New("evaluation not found")

// A StatusError records an unexpected HTTP response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Hydra fetches the builds of one evaluation of a Hydra jobset.
type Hydra struct {
	Project, Jobset string

	// EvalNum selects the evaluation. If Absolute is false it counts
	// back from the latest evaluation, which is 0. Otherwise it is
	// the evaluation's identifier.
	EvalNum  int
	Absolute bool

	Mapping    Mapping
	ClockNames []string

	// BaseURL defaults to DefaultHydraURL.
	BaseURL string

	// Client defaults to http.DefaultClient, or to an OAuth2 client
	// if TokenSource is set.
	Client      *http.Client
	TokenSource oauth2.TokenSource

	// Cache, if non-nil, holds meta.json files and evaluation build
	// lists that were already downloaded.
	Cache *evalstore.DB

	// MaxRetries bounds the retries of a failing request. Zero means
	// three and a negative value disables retrying.
	MaxRetries int

	Logger logrus.FieldLogger
}

func (h *Hydra) baseURL() string {
	if h.BaseURL == "" {
		return DefaultHydraURL
	}
	return strings.TrimSuffix(h.BaseURL, "/")
}

func (h *Hydra) client(ctx context.Context) *http.Client {
	if h.Client != nil {
		return h.Client
	}
	if h.TokenSource != nil {
		return oauth2.NewClient(ctx, h.TokenSource)
	}
	return http.DefaultClient
}

func (h *Hydra) log() logrus.FieldLogger {
	if h.Logger == nil {
		return logrus.StandardLogger()
	}
	return h.Logger
}

// Fetch downloads the evaluation and preprocesses it.
func (h *Hydra) Fetch(ctx context.Context) (*evaluation.Evaluation, error) {
	ds, err := h.Download(ctx)
	if err != nil {
		return nil, err
	}
	t, err := Preprocess(ds, Options{Mapping: h.Mapping, ClockNames: h.ClockNames, Logger: h.log()})
	if err != nil {
		return nil, err
	}
	return evaluation.NewWithID(t, ds.EvalID), nil
}

// Download returns the decoded meta.json of every successful build
// of the evaluation.
//
// Failed builds and builds without a usable meta.json are logged and
// skipped. Failing to describe a build is an error.
func (h *Hydra) Download(ctx context.Context) (*Dataset, error) {
	evalID, builds, err := h.builds(ctx)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{EvalID: evalID, HasEvalID: true}
	for _, build := range builds {
		log := h.log().WithField("build", build)
		content, err := h.meta(ctx, build, log)
		if err != nil {
			return nil, err
		}
		if content == nil {
			continue
		}
		var obj buildmeta.Object
		if err := json.Unmarshal(content, &obj); err != nil {
			log.WithError(err).Warn("unable to decode meta.json, skipping")
			continue
		}
		ds.Records = append(ds.Records, obj)
	}
	if len(ds.Records) == 0 {
		return nil, fmt.Errorf("evaluation %d: %w", evalID, ErrNoBuilds)
	}
	return ds, nil
}

type evalPage struct {
	Evals []struct {
		ID     int   `json:"id"`
		Builds []int `json:"builds"`
	} `json:"evals"`
	Next string `json:"next"`
}

// builds returns the identifier and build list of the selected
// evaluation.
func (h *Hydra) builds(ctx context.Context) (evalID int, builds []int, err error) {
	if h.Absolute && h.Cache != nil {
		builds, ok, err := h.Cache.EvalBuilds(ctx, h.Project, h.Jobset, h.EvalNum)
		if err != nil {
			return 0, nil, err
		}
		if ok {
			return h.EvalNum, builds, nil
		}
	}

	n, params := h.EvalNum, ""
	for {
		var page evalPage
		url := fmt.Sprintf("%s/jobset/%s/%s/evals%s", h.baseURL(), h.Project, h.Jobset, params)
		if err := h.getJSON(ctx, url, &page); err != nil {
			return 0, nil, err
		}
		if h.Absolute {
			found := false
			for _, e := range page.Evals {
				if e.ID == n {
					evalID, builds, found = e.ID, e.Builds, true
					break
				}
			}
			if found {
				break
			}
		} else if n < len(page.Evals) {
			evalID, builds = page.Evals[n].ID, page.Evals[n].Builds
			break
		} else {
			n -= len(page.Evals)
		}
		if page.Next == "" {
			if h.Absolute {
				return 0, nil, fmt.Errorf("absolute eval %d: %w", h.EvalNum, ErrEvalNotFound)
			}
			return 0, nil, fmt.Errorf("relative eval %d: %w", h.EvalNum, ErrEvalNotFound)
		}
		params = page.Next
	}

	if h.Cache != nil {
		if err := h.Cache.PutEvalBuilds(ctx, h.Project, h.Jobset, evalID, builds); err != nil {
			return 0, nil, err
		}
	}
	return evalID, builds, nil
}

type buildInfo struct {
	BuildStatus   *int            `json:"buildstatus"`
	BuildProducts json.RawMessage `json:"buildproducts"`
}

// metaProduct returns the identifier of the meta.json product of a
// build, or "" if it has none.
func (b *buildInfo) metaProduct() (string, error) {
	if len(b.BuildProducts) == 0 {
		return "", nil
	}
	var products buildmeta.Object
	if err := json.Unmarshal(b.BuildProducts, &products); err != nil {
		return "", err
	}
	id := ""
	for _, p := range products {
		desc, ok := p.Value.(buildmeta.Object)
		if !ok {
			continue
		}
		if name, _ := desc.Get("name"); name == "meta.json" {
			id = p.Key
		}
	}
	return id, nil
}

// meta returns the meta.json content of a build, or nil if the build
// must be skipped.
func (h *Hydra) meta(ctx context.Context, build int, log logrus.FieldLogger) ([]byte, error) {
	if h.Cache != nil {
		content, ok, err := h.Cache.Meta(ctx, build)
		if err != nil {
			return nil, err
		}
		if ok {
			log.Debug("using cached meta.json")
			return content, nil
		}
	}

	var info buildInfo
	if err := h.getJSON(ctx, fmt.Sprintf("%s/build/%d", h.baseURL(), build), &info); err != nil {
		return nil, fmt.Errorf("build %d: %w", build, err)
	}
	if info.BuildStatus == nil || *info.BuildStatus != 0 {
		log.Warn("build failed with non-zero exit, skipping")
		return nil, nil
	}
	product, err := info.metaProduct()
	if err != nil {
		return nil, fmt.Errorf("build %d: decoding build products: %w", build, err)
	}
	if product == "" {
		log.Warn("build has no meta.json file, skipping")
		return nil, nil
	}

	content, err := h.get(ctx, fmt.Sprintf("%s/build/%d/download/%s/meta.json", h.baseURL(), build, product))
	if err != nil {
		log.WithError(err).Warn("unable to get meta.json, skipping")
		return nil, nil
	}
	if !json.Valid(content) {
		log.Warn("unable to decode meta.json, skipping")
		return nil, nil
	}
	if h.Cache != nil {
		if err := h.Cache.PutMeta(ctx, build, content); err != nil {
			return nil, err
		}
	}
	return content, nil
}

const (
	retryInterval = 500 * time.Millisecond
	retryMax      = 10 * time.Second
)

func retryPolicy(retries uint64) backoff.BackOff {
	bf := backoff.NewExponentialBackOff()
	bf.InitialInterval = retryInterval
	bf.MaxInterval = retryMax
	return backoff.WithMaxRetries(bf, retries)
}

func (h *Hydra) getJSON(ctx context.Context, url string, v any) error {
	body, err := h.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// get fetches url, retrying transport errors and server errors.
func (h *Hydra) get(ctx context.Context, url string) ([]byte, error) {
	var retries uint64
	switch {
	case h.MaxRetries == 0:
		retries = 3
	case h.MaxRetries > 0:
		retries = uint64(h.MaxRetries)
	}
	var body []byte
	op := func() error {
		req, err := http.NewRequest("GET", url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := ctxhttp.Do(ctx, h.client(ctx), req)
		if err != nil {
			h.log().WithError(err).WithField("url", url).Debug("request failed, retrying")
			return err
		}
		defer resp.Body.Close()
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, resp.Body); err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			err := &StatusError{URL: url, Status: resp.StatusCode}
			if resp.StatusCode >= 500 {
				h.log().WithField("url", url).Debugf("server returned %d, retrying", resp.StatusCode)
				return err
			}
			return backoff.Permanent(err)
		}
		body = buf.Bytes()
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(retryPolicy(retries), ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
