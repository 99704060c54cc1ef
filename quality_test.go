package feedex_test

import (
	"testing"

	"github.com/peekay/feedex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRecords_EmptyInput(t *testing.T) {
	t.Parallel()

	report := feedex.AnalyzeRecords(nil)

	assert.Zero(t, report.Score)
	assert.Zero(t, report.TotalPosts)
	require.Len(t, report.Recommendations, 1)
	assert.Contains(t, report.Recommendations[0], "No posts extracted")
}

func TestAnalyzeRecords_CompleteRecordsScoreHundred(t *testing.T) {
	t.Parallel()

	records := []*feedex.Record{
		{Name: "Ada Lovelace", Title: "Engineer", Period: "2w", Details: "We are hiring a platform engineer", PostIndex: 0},
		{Name: "Grace Hopper", Title: "Director", Period: "1mo", Details: "Excited to announce a new role", PostIndex: 1},
		{Name: "Alan Kay", Title: "Researcher", Period: "3d", Details: "Looking for a systems researcher", PostIndex: 2},
	}

	report := feedex.AnalyzeRecords(records)

	assert.Equal(t, float64(100), report.Score)
	assert.Equal(t, 3, report.TotalPosts)
	assert.Equal(t, 3, report.UniqueNames)
	require.NotEmpty(t, report.Insights)
	assert.Contains(t, report.Insights[0], "High quality")
}

func TestAnalyzeRecords_ScoreBelowHundredWhenFieldMissing(t *testing.T) {
	t.Parallel()

	records := []*feedex.Record{
		{Name: "Ada Lovelace", Title: "Engineer", Period: "2w", Details: "hiring", PostIndex: 0},
		{Name: "Grace Hopper", Title: "Director", Period: "", Details: "hiring", PostIndex: 1},
	}

	report := feedex.AnalyzeRecords(records)

	assert.Less(t, report.Score, float64(100))
	assert.GreaterOrEqual(t, report.Score, float64(0))
	assert.Equal(t, 87.5, report.Score)
}

func TestAnalyzeRecords_ScoreAlwaysInRange(t *testing.T) {
	t.Parallel()

	records := []*feedex.Record{
		{PostIndex: 0},
		{PostIndex: 1},
	}

	report := feedex.AnalyzeRecords(records)

	assert.GreaterOrEqual(t, report.Score, float64(0))
	assert.LessOrEqual(t, report.Score, float64(100))
	assert.Zero(t, report.Score)
}

func TestAnalyzeRecords_SparseFieldRecommendation(t *testing.T) {
	t.Parallel()

	records := []*feedex.Record{
		{Name: "Ada", Title: "Engineer", Details: "We are hiring engineers now", PostIndex: 0},
		{Name: "Grace", Title: "Director", Details: "Another hiring announcement here", PostIndex: 1},
		{Name: "Alan", Title: "Researcher", Details: "Third hiring announcement posted", PostIndex: 2},
	}

	report := feedex.AnalyzeRecords(records)

	found := false
	for _, rec := range report.Recommendations {
		if rec == `Field "period" is empty in most records - its selector may need updating` {
			found = true
		}
	}
	assert.True(t, found, "expected a period selector recommendation, got %v", report.Recommendations)
}

func TestAnalyzeRecords_Keywords(t *testing.T) {
	t.Parallel()

	t.Run("counts repeated words from title and details", func(t *testing.T) {
		t.Parallel()

		records := []*feedex.Record{
			{Name: "Ada", Title: "Product Manager", Period: "1w", Details: "Hiring a product manager for martech", PostIndex: 0},
			{Name: "Grace", Title: "Product Lead", Period: "2w", Details: "Great product news", PostIndex: 1},
		}

		report := feedex.AnalyzeRecords(records)

		require.NotEmpty(t, report.Keywords)
		assert.Equal(t, "product", report.Keywords[0].Word)
		assert.Equal(t, 4, report.Keywords[0].Count)
	})

	t.Run("excludes stop words and short tokens", func(t *testing.T) {
		t.Parallel()

		records := []*feedex.Record{
			{Name: "Ada", Title: "with this that", Period: "1w", Details: "with this that and the", PostIndex: 0},
			{Name: "Grace", Title: "with this that", Period: "2w", Details: "with this that and the", PostIndex: 1},
		}

		report := feedex.AnalyzeRecords(records)

		assert.Empty(t, report.Keywords)
	})

	t.Run("breaks frequency ties by first occurrence", func(t *testing.T) {
		t.Parallel()

		records := []*feedex.Record{
			{Name: "Ada", Title: "zulu alpha", Period: "1w", Details: "zulu alpha", PostIndex: 0},
		}

		report := feedex.AnalyzeRecords(records)

		require.Len(t, report.Keywords, 2)
		assert.Equal(t, "zulu", report.Keywords[0].Word)
		assert.Equal(t, "alpha", report.Keywords[1].Word)
	})
}
