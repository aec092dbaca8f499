package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Keyword  string `short:"k" required:"" help:"Keyword used to filter businesses (e.g. 'plombier')."`
	Input    string `short:"i" default:"input.txt" help:"Path to the file containing postal codes (one per line)."`
	Output   string `short:"o" default:"local_ch_results.csv" help:"Destination CSV file."`
	Language string `short:"l" default:"fr" enum:"fr,de,it,en" help:"Preferred site language (fr, de, it, en)."`
	Verbose  bool   `help:"Enable verbose logging for debugging purposes."`

	Sitemap    string        `default:"https://www.local.ch/sitemaps/sitemap_index.xml" help:"Sitemap index URL to start discovery from. Empty resolves it via robots.txt."`
	BaseURL    string        `name:"base-url" default:"https://www.local.ch" help:"Site root used to rebuild harvested listing URLs."`
	Domain     string        `default:"local.ch" help:"Domain suffix restricting crawl scope."`
	DB         string        `name:"db" help:"Optional SQLite database to also persist records to."`
	MaxRetries int           `default:"3" help:"Fetch attempts per URL."`
	RetryDelay time.Duration `default:"1500ms" help:"Base delay between fetch attempts; grows linearly per attempt."`
}
