package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localsift/localsift"
	main "github.com/localsift/localsift/cmd/localsift"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("scrapes a site end to end", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/sitemaps/sitemap_index.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<?xml version="1.0"?>
				<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
					<sitemap><loc>` + srv.URL + `/sitemaps/pages.xml</loc></sitemap>
				</sitemapindex>`))
		})
		mux.HandleFunc("/sitemaps/pages.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<?xml version="1.0"?>
				<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
					<url><loc>` + srv.URL + `/fr/q/geneve/plombier</loc></url>
				</urlset>`))
		})
		mux.HandleFunc("/fr/q/geneve/plombier", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><body>
				<a href="/fr/d/geneve/plombier-acme-1">Plombier Acme</a>
			</body></html>`))
		})
		mux.HandleFunc("/fr/d/geneve/plombier-acme-1", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<script type="application/ld+json">
				{"@type":"LocalBusiness","name":"Plombier Acme","telephone":"+41221234567",
				 "address":{"streetAddress":"Rue du Rhône 5","postalCode":"1204","addressLocality":"Genève"}}
			</script>`))
		})

		dir := t.TempDir()
		input := filepath.Join(dir, "input.txt")
		output := filepath.Join(dir, "out.csv")
		require.NoError(t, os.WriteFile(input, []byte("1204\n"), 0o644))

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(), []string{
			"--keyword", "plombier",
			"--input", input,
			"--output", output,
			"--sitemap", srv.URL + "/sitemaps/sitemap_index.xml",
			"--base-url", srv.URL,
			"--domain", "127.0.0.1",
			"--retry-delay", "1ms",
		}, &stdout, &stderr)
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "source_url,name,address,zipcode,city,phone,email,website\n"+
			srv.URL+"/fr/d/geneve/plombier-acme-1,Plombier Acme,Rue du Rhône 5,1204,Genève,+41221234567,,\n",
			string(data))
	})

	t.Run("also persists to sqlite when requested", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<?xml version="1.0"?>
				<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
					<url><loc>` + srv.URL + `/fr/d/geneve/coiffeur-chez-anna-7</loc></url>
				</urlset>`))
		})
		mux.HandleFunc("/fr/d/geneve/coiffeur-chez-anna-7", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><body><h1>Coiffeur Chez Anna</h1></body></html>`))
		})

		dir := t.TempDir()
		input := filepath.Join(dir, "input.txt")
		require.NoError(t, os.WriteFile(input, nil, 0o644))

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(), []string{
			"--keyword", "coiffeur",
			"--input", input,
			"--output", filepath.Join(dir, "out.csv"),
			"--sitemap", srv.URL + "/sitemap.xml",
			"--base-url", srv.URL,
			"--domain", "127.0.0.1",
			"--db", filepath.Join(dir, "records.db"),
			"--retry-delay", "1ms",
		}, &stdout, &stderr)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "records.db"))
	})

	t.Run("resolves the sitemap from robots when the flag is empty", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("User-agent: *\nSitemap: " + srv.URL + "/deep/sitemap.xml\n"))
		})
		mux.HandleFunc("/deep/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<?xml version="1.0"?>
				<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"></urlset>`))
		})

		dir := t.TempDir()
		input := filepath.Join(dir, "input.txt")
		require.NoError(t, os.WriteFile(input, nil, 0o644))

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(), []string{
			"--keyword", "plombier",
			"--input", input,
			"--output", filepath.Join(dir, "out.csv"),
			"--sitemap", "",
			"--base-url", srv.URL,
			"--domain", "127.0.0.1",
			"--retry-delay", "1ms",
		}, &stdout, &stderr)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "out.csv"))
	})

	t.Run("missing input file is fatal", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(), []string{
			"--keyword", "plombier",
			"--input", filepath.Join(t.TempDir(), "missing.txt"),
		}, &stdout, &stderr)
		require.Error(t, err)
		assert.Equal(t, localsift.ENOTFOUND, localsift.ErrorCode(err))
	})

	t.Run("keyword is required", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(), nil, &stdout, &stderr)
		require.Error(t, err)
	})

	t.Run("rejects unknown languages", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(), []string{"--keyword", "plombier", "--language", "es"}, &stdout, &stderr)
		require.Error(t, err)
	})
}
