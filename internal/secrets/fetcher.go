// Package secrets reads secret values from Vault and maps them onto
// environment variable names so they can be layered over the environment
// snapshot.
package secrets

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 10

// KVReader reads all key-value pairs stored at a KV v2 path.
type KVReader interface {
	ReadKV(ctx context.Context, path string) (map[string]string, error)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxConcurrency sets the maximum number of concurrent path reads.
// Values less than 1 are ignored.
func WithMaxConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxConcurrency = n
		}
	}
}

// Fetcher resolves environment variable names to secret values.
type Fetcher struct {
	reader         KVReader
	maxConcurrency int
}

// New creates a Fetcher reading through reader.
func New(reader KVReader, opts ...Option) *Fetcher {
	f := &Fetcher{
		reader:         reader,
		maxConcurrency: defaultMaxConcurrency,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Result holds fetched values plus the variables whose key was absent at an
// otherwise readable path.
type Result struct {
	Values  map[string]string
	Missing []string
}

// Fetch reads every path referenced by templates for env and returns the
// values keyed by variable name. Any read failure aborts the whole fetch.
// A key missing at its path is not an error; it is reported in
// Result.Missing so required-secret validation can name it later.
func (f *Fetcher) Fetch(ctx context.Context, templates map[string]string, env string) (*Result, error) {
	if len(templates) == 0 {
		return &Result{Values: map[string]string{}}, nil
	}

	groups := GroupByPath(templates, env)

	data, err := f.readAll(ctx, groups)
	if err != nil {
		return nil, fmt.Errorf("fetch secrets: %w", err)
	}

	return mapResults(groups, data), nil
}

// readAll reads all paths concurrently with bounded concurrency.
func (f *Fetcher) readAll(ctx context.Context, groups map[string][]Mapping) (map[string]map[string]string, error) {
	var mu sync.Mutex
	results := make(map[string]map[string]string, len(groups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.maxConcurrency)

	for path := range groups {
		path := path
		g.Go(func() error {
			kv, err := f.reader.ReadKV(ctx, path)
			if err != nil {
				return fmt.Errorf("read vault path %q: %w", path, err)
			}

			mu.Lock()
			results[path] = kv
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func mapResults(groups map[string][]Mapping, data map[string]map[string]string) *Result {
	res := &Result{Values: make(map[string]string)}

	for path, mappings := range groups {
		kv := data[path]
		for _, m := range mappings {
			if v, ok := kv[m.Key]; ok {
				res.Values[m.EnvVar] = v
			} else {
				res.Missing = append(res.Missing, m.EnvVar)
			}
		}
	}

	sort.Strings(res.Missing)

	return res
}
