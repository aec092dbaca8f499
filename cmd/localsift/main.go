package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/localsift/localsift"
	"github.com/localsift/localsift/crawl"
	"github.com/localsift/localsift/csv"
	"github.com/localsift/localsift/fs"
	sifthttp "github.com/localsift/localsift/http"
	siftslog "github.com/localsift/localsift/slog"
	"github.com/localsift/localsift/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// DB is set when Run opened a SQLite record store, for tests.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("localsift"),
		kong.Description("Scrape local.ch business listings via the sitemap structure."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	// Handle help flags using Kong
	for _, arg := range args {
		if arg == "help" || arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Read the input file before any network activity; a missing file
	// is the only fatal input condition.
	codes, err := fs.ReadPostalCodes(cli.Input)
	if err != nil {
		return err
	}

	query := localsift.NewQuery(cli.Keyword, codes, cli.Language)

	var fetcher localsift.Fetcher = sifthttp.NewFetcher(
		sifthttp.WithMaxRetries(cli.MaxRetries),
		sifthttp.WithRetryDelay(cli.RetryDelay),
		sifthttp.WithLanguage(cli.Language),
		sifthttp.WithLogger(logger),
	)
	fetcher = siftslog.NewLoggingFetcher(fetcher, logger)

	sitemapURL := cli.Sitemap
	if sitemapURL == "" {
		resolver := sifthttp.NewSitemapResolver(fetcher, logger)
		sitemapURL, err = resolver.Resolve(ctx, cli.BaseURL)
		if err != nil {
			return err
		}
	}

	scraper := &crawl.Scraper{
		Discoverer: &crawl.Walker{
			Fetcher:    fetcher,
			Classifier: crawl.NewClassifier(query),
			SitemapURL: sitemapURL,
			Domain:     cli.Domain,
			Logger:     logger,
		},
		Paginator: &crawl.Paginator{
			Fetcher:  fetcher,
			Language: cli.Language,
			Logger:   logger,
		},
		Parser: &crawl.Parser{
			Fetcher: fetcher,
			Query:   query,
			Domain:  cli.Domain,
			Logger:  logger,
		},
		BaseURL: cli.BaseURL,
		Logger:  logger,
	}

	records, err := scraper.Run(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logger.Warn("no matching businesses found")
	}

	writers := []localsift.RecordWriter{csv.NewWriter(cli.Output)}
	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		writers = append(writers, sqlite.NewRecordService(m.DB))
	}
	for _, writer := range writers {
		if err := writer.WriteRecords(ctx, records); err != nil {
			return err
		}
	}

	logger.Info("saved records", "count", len(records), "output", cli.Output)
	return nil
}
