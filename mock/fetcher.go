package mock

import (
	"context"

	"github.com/localsift/localsift"
)

var _ localsift.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of localsift.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}
