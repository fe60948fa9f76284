package tracker

import (
	"context"
	"encoding/json"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/cve-tracker/nvd"
	"github.com/aquasecurity/cve-tracker/version"
)

const concurrency = 5

// Module is a dependency to look up.
type Module struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Querier returns the raw vulnerability records published for a module.
// It never fails: an unreachable database looks like a module without vulnerabilities.
type Querier interface {
	QueryModuleCVEs(moduleName, apiKey string) []json.RawMessage
}

type options struct {
	concurrency int
	apiKey      string
	progressBar bool
}

type Option func(*options)

func WithConcurrency(n int) Option {
	return func(opts *options) { opts.concurrency = n }
}

func WithAPIKey(apiKey string) Option {
	return func(opts *options) { opts.apiKey = apiKey }
}

func WithProgressBar(enabled bool) Option {
	return func(opts *options) { opts.progressBar = enabled }
}

type Tracker struct {
	querier Querier
	*options
}

func New(q Querier, opts ...Option) Tracker {
	o := &options{
		concurrency: concurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return Tracker{
		querier: q,
		options: o,
	}
}

// Check returns the records affecting m, in the order the querier returned them.
// A record that matches no known schema aborts the check and its error is returned as is.
func (t Tracker) Check(source string, m Module) ([]nvd.Record, error) {
	records := []nvd.Record{}
	for _, raw := range t.querier.QueryModuleCVEs(m.Name, t.apiKey) {
		ranges, err := nvd.RangesForProduct(raw, m.Name)
		if err != nil {
			return nil, err
		}
		if !version.MatchesAny(m.Version, ranges) {
			continue
		}

		record, err := nvd.Extract(source, m.Name, m.Version, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// CheckAll checks modules concurrently. Records are grouped by module in input order.
// The first failing module stops the batch.
func (t Tracker) CheckAll(source string, modules []Module) ([]nvd.Record, error) {
	results := make([][]nvd.Record, len(modules))

	var bar *pb.ProgressBar
	if t.progressBar {
		bar = pb.StartNew(len(modules))
		defer bar.Finish()
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(t.concurrency)
	for i, m := range modules {
		i, m := i, m
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			records, err := t.Check(source, m)
			if err != nil {
				return xerrors.Errorf("unable to check %s %s: %w", m.Name, m.Version, err)
			}
			results[i] = records
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := []nvd.Record{}
	for _, r := range results {
		records = append(records, r...)
	}
	return records, nil
}
