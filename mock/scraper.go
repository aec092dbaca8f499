package mock

import (
	"context"

	"github.com/localsift/localsift"
)

var _ localsift.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of localsift.Discoverer.
type Discoverer struct {
	DiscoverFn func(ctx context.Context) (*localsift.Discovery, error)
}

func (d *Discoverer) Discover(ctx context.Context) (*localsift.Discovery, error) {
	return d.DiscoverFn(ctx)
}

var _ localsift.DetailParser = (*DetailParser)(nil)

// DetailParser is a mock implementation of localsift.DetailParser.
type DetailParser struct {
	ParseFn func(ctx context.Context, url string) (*localsift.BusinessRecord, error)
}

func (p *DetailParser) Parse(ctx context.Context, url string) (*localsift.BusinessRecord, error) {
	return p.ParseFn(ctx, url)
}

var _ localsift.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of localsift.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []*localsift.BusinessRecord) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []*localsift.BusinessRecord) error {
	return w.WriteRecordsFn(ctx, records)
}
