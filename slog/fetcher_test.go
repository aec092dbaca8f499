package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localsift/localsift"
	"github.com/localsift/localsift/mock"
	siftslog "github.com/localsift/localsift/slog"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs successful fetches at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		fetcher := siftslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return []byte("<html></html>"), nil
			},
		}, logger)

		body, err := fetcher.Fetch(context.Background(), "https://www.local.ch/fr/d/x")
		require.NoError(t, err)
		assert.Equal(t, []byte("<html></html>"), body)
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "url=https://www.local.ch/fr/d/x")
		assert.Contains(t, buf.String(), "bytes=13")
	})

	t.Run("logs failures at warn level with the error code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		fetcher := siftslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return nil, localsift.Errorf(localsift.EUNAVAILABLE, "boom")
			},
		}, logger)

		body, err := fetcher.Fetch(context.Background(), "https://www.local.ch/fr/d/x")
		require.Error(t, err)
		assert.Nil(t, body)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "code=unavailable")
	})
}
