package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FurryCoders/faapi"
	"github.com/FurryCoders/faapi/goquery"
)

func TestTextExtractor_Extract(t *testing.T) {
	t.Parallel()

	target := faapi.Target{Candidates: []faapi.Candidate{
		{Selector: `meta[name="description"]`, Attr: "content"},
		{Selector: "p.description"},
	}}

	t.Run("extracts attribute value from first candidate", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><meta name="description" content="A sample page."></body></html>`

		got, err := goquery.NewTextExtractor().Extract(html, target)

		require.NoError(t, err)
		assert.True(t, got.Found)
		assert.Equal(t, "A sample page.", got.Text)
	})

	t.Run("returns absent when no candidate matches", func(t *testing.T) {
		t.Parallel()

		html := `<html><body></body></html>`

		got, err := goquery.NewTextExtractor().Extract(html, target)

		require.NoError(t, err)
		assert.False(t, got.Found)
		assert.Empty(t, got.Text)
	})

	t.Run("collapses internal whitespace", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p class="description">  Hello   world  </p></body></html>`

		got, err := goquery.NewTextExtractor().Extract(html, target)

		require.NoError(t, err)
		assert.True(t, got.Found)
		assert.Equal(t, "Hello world", got.Text)
	})

	t.Run("earlier candidate wins when both match", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<meta name="description" content="From meta">
			<p class="description">From paragraph</p>
		</body></html>`

		got, err := goquery.NewTextExtractor().Extract(html, target)

		require.NoError(t, err)
		assert.Equal(t, "From meta", got.Text)
	})

	t.Run("falls through candidates that resolve to empty text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<meta name="description" content="   ">
			<p class="description">Fallback text</p>
		</body></html>`

		got, err := goquery.NewTextExtractor().Extract(html, target)

		require.NoError(t, err)
		assert.Equal(t, "Fallback text", got.Text)
	})

	t.Run("skips candidates missing the requested attribute", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<meta name="description">
			<p class="description">Fallback text</p>
		</body></html>`

		got, err := goquery.NewTextExtractor().Extract(html, target)

		require.NoError(t, err)
		assert.Equal(t, "Fallback text", got.Text)
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p class="description">Unclosed paragraph <div>stray ><<`

		got, err := goquery.NewTextExtractor().Extract(html, target)

		require.NoError(t, err)
		assert.True(t, got.Found)
	})

	t.Run("is deterministic for identical inputs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p class="description">Stable</p></body></html>`

		first, err := goquery.NewTextExtractor().Extract(html, target)
		require.NoError(t, err)
		second, err := goquery.NewTextExtractor().Extract(html, target)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("empty target yields absent", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewTextExtractor().Extract("<p>text</p>", faapi.Target{})

		require.NoError(t, err)
		assert.False(t, got.Found)
	})
}

func TestNormalizeSpace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello world", goquery.NormalizeSpace("  Hello \n\t world  "))
	assert.Equal(t, "", goquery.NormalizeSpace("   \n  "))
	assert.Equal(t, "one two three", goquery.NormalizeSpace("one two three"))
}
