package goquery_test

import (
	"fmt"
	"testing"

	"github.com/peekay/feedex"
	"github.com/peekay/feedex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postHTML builds one well-formed feed fragment in the current
// LinkedIn markup.
func postHTML(name, title, period, details string) string {
	return fmt.Sprintf(`<div class="feed-shared-update-v2">
	<span class="update-components-actor__name"><span aria-hidden="true">%s</span></span>
	<span class="update-components-actor__description">%s</span>
	<span class="update-components-actor__sub-description"><span aria-hidden="true">%s</span></span>
	<div class="feed-shared-inline-show-more-text">%s</div>
</div>`, name, title, period, details)
}

func wrapPage(body string) string {
	return "<!DOCTYPE html><html><body>" + body + "</body></html>"
}

func TestExtractor_ExtractPosts_WellFormedPosts(t *testing.T) {
	t.Parallel()

	html := wrapPage(
		postHTML("Ada Lovelace", "Engineering Lead at Acme", "2w", "We are hiring a platform engineer in Berlin.") +
			postHTML("Grace Hopper", "Director of Compilers", "1mo", "Excited to announce a new team opening.") +
			postHTML("Alan Kay", "Researcher", "3d", "Looking for a systems researcher to join us."))

	e := goquery.NewExtractor()
	records, err := e.ExtractPosts(html)

	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, rec := range records {
		assert.Equal(t, i, rec.PostIndex)
		assert.NotEmpty(t, rec.Name)
		assert.NotEmpty(t, rec.Title)
		assert.NotEmpty(t, rec.Period)
		assert.NotEmpty(t, rec.Details)
		assert.Empty(t, rec.Company)
		assert.Empty(t, rec.Location)
	}

	assert.Equal(t, "Ada Lovelace", records[0].Name)
	assert.Equal(t, "Engineering Lead at Acme", records[0].Title)
	assert.Equal(t, "2w", records[0].Period)
	assert.Equal(t, "We are hiring a platform engineer in Berlin.", records[0].Details)

	report := feedex.AnalyzeRecords(records)
	assert.Equal(t, float64(100), report.Score)
}

func TestExtractor_ExtractPosts_NoFragments(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()
	records, err := e.ExtractPosts(wrapPage("<p>Nothing LinkedIn about this page.</p>"))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractor_ExtractPosts_MalformedInput(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()
	records, err := e.ExtractPosts("<<div>>><span aria-hidden")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractor_ExtractPosts_FragmentFallbackSelectors(t *testing.T) {
	t.Parallel()

	html := wrapPage(`<div class="feed-shared-text">
		<span aria-hidden="true">Grace Hopper</span>
		<span class="update-components-actor__description">Rear Admiral</span>
	</div>`)

	e := goquery.NewExtractor()
	records, err := e.ExtractPosts(html)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Grace Hopper", records[0].Name)
	assert.Equal(t, "Rear Admiral", records[0].Title)
	assert.Empty(t, records[0].Period)
}

func TestExtractor_ExtractPosts_FieldFallbacks(t *testing.T) {
	t.Parallel()

	t.Run("name falls back to actor class selectors", func(t *testing.T) {
		t.Parallel()

		html := wrapPage(`<div class="feed-shared-update-v2">
			<span class="actor-meta">Ada Lovelace</span>
		</div>`)

		e := goquery.NewExtractor()
		records, err := e.ExtractPosts(html)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Ada Lovelace", records[0].Name)
	})

	t.Run("numeric name candidates are rejected", func(t *testing.T) {
		t.Parallel()

		html := wrapPage(`<div class="feed-shared-update-v2">
			<span class="actor-meta">12345</span>
		</div>`)

		e := goquery.NewExtractor()
		records, err := e.ExtractPosts(html)

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("period falls back to time element", func(t *testing.T) {
		t.Parallel()

		html := wrapPage(`<div class="feed-shared-update-v2">
			<span aria-hidden="true">Ada Lovelace</span>
			<time>3d ago</time>
		</div>`)

		e := goquery.NewExtractor()
		records, err := e.ExtractPosts(html)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "3d ago", records[0].Period)
	})

	t.Run("details fallback skips short candidates", func(t *testing.T) {
		t.Parallel()

		html := wrapPage(`<div class="feed-shared-update-v2">
			<span aria-hidden="true">Ada Lovelace</span>
			<p>short</p>
			<p>This is the actual post body with enough content.</p>
		</div>`)

		e := goquery.NewExtractor()
		records, err := e.ExtractPosts(html)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "This is the actual post body with enough content.", records[0].Details)
	})
}

func TestExtractor_ExtractPosts_DropsAuthorlessFragments(t *testing.T) {
	t.Parallel()

	html := wrapPage(
		`<div class="feed-shared-update-v2"><div class="feed-shared-inline-show-more-text">An orphaned share with no author.</div></div>` +
			postHTML("Ada Lovelace", "Engineer", "2w", "A complete post with an author attached."))

	e := goquery.NewExtractor()
	records, err := e.ExtractPosts(html)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ada Lovelace", records[0].Name)
	assert.Equal(t, 0, records[0].PostIndex)
}

func TestExtractor_ExtractPosts_CleansText(t *testing.T) {
	t.Parallel()

	html := wrapPage(`<div class="feed-shared-update-v2">
		<span aria-hidden="true">  Ada   &amp;
		Partners  </span>
		<div class="feed-shared-inline-show-more-text">Hiring<br>for&nbsp;two   roles</div>
	</div>`)

	e := goquery.NewExtractor()
	records, err := e.ExtractPosts(html)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ada & Partners", records[0].Name)
	assert.Equal(t, "Hiring for two roles", records[0].Details)
}
