package crawl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/localsift/localsift"
	"github.com/localsift/localsift/crawl"
)

func newClassifier(keyword string, codes ...string) *crawl.Classifier {
	return crawl.NewClassifier(localsift.NewQuery(keyword, codes, "fr"))
}

func TestClassifier_IsSearchPage(t *testing.T) {
	t.Parallel()

	t.Run("rejects URLs without a query endpoint marker", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier")
		assert.False(t, c.IsSearchPage("https://www.local.ch/fr/d/geneve/plombier-sarl"))
	})

	t.Run("matches keyword in what parameter", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier")
		assert.True(t, c.IsSearchPage("https://www.local.ch/fr/q?what=Plombier"))
		assert.False(t, c.IsSearchPage("https://www.local.ch/fr/q?what=boulanger"))
	})

	t.Run("requires postal code in where parameter or URL", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier", "1204")
		assert.True(t, c.IsSearchPage("https://www.local.ch/fr/q?what=plombier&where=1204+Geneve"))
		assert.True(t, c.IsSearchPage("https://www.local.ch/fr/q/1204?what=plombier"))
		assert.False(t, c.IsSearchPage("https://www.local.ch/fr/q?what=plombier&where=8000+Zurich"))
	})

	t.Run("falls back to substring match without query parameters", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier", "1204")
		assert.True(t, c.IsSearchPage("https://www.local.ch/fr/q/geneve-1204/plombier"))
		assert.False(t, c.IsSearchPage("https://www.local.ch/fr/q/zurich-8000/plombier"))
		assert.False(t, c.IsSearchPage("https://www.local.ch/fr/q/geneve-1204/boulanger"))
	})

	t.Run("keyword match is case-insensitive", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier")
		assert.True(t, c.IsSearchPage("https://www.local.ch/fr/search/PLOMBIER"))
	})

	t.Run("empty postal filter disables postal matching", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier")
		assert.True(t, c.IsSearchPage("https://www.local.ch/fr/q/anywhere/plombier"))
	})

	t.Run("rejects unparseable URLs", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier")
		assert.False(t, c.IsSearchPage("https://ex ample.com/q?what=plombier"))
	})
}

func TestClassifier_IsDetailPage(t *testing.T) {
	t.Parallel()

	t.Run("matches detail path shape", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier")
		assert.True(t, c.IsDetailPage("https://www.local.ch/fr/d/geneve/plombier-xyz-abcde"))
	})

	t.Run("requires at least three path segments", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier")
		assert.False(t, c.IsDetailPage("https://www.local.ch/fr/d"))
	})

	t.Run("requires detail marker as second segment", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier")
		assert.False(t, c.IsDetailPage("https://www.local.ch/fr/x/geneve/plombier-xyz"))
	})

	t.Run("requires keyword in URL when configured", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("plombier")
		assert.False(t, c.IsDetailPage("https://www.local.ch/fr/d/geneve/boulangerie-abc"))
	})

	t.Run("accepts any business without a keyword", func(t *testing.T) {
		t.Parallel()

		c := newClassifier("")
		assert.True(t, c.IsDetailPage("https://www.local.ch/fr/d/geneve/boulangerie-abc"))
	})
}
