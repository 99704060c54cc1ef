package feedex

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// QualityReport summarizes how well extraction populated the required
// fields of a record sequence. It is computed once per result and
// read-only thereafter.
type QualityReport struct {
	// Score is the completeness percentage in [0, 100]: the share of
	// non-empty required fields (name, title, period, details) across
	// all records.
	Score float64 `json:"score"`

	TotalPosts  int `json:"totalPosts"`
	UniqueNames int `json:"uniqueNames"`

	// Keywords are the most frequent title/details tokens, highest
	// count first, ties broken by first occurrence in the input.
	Keywords []KeywordCount `json:"keywords,omitempty"`

	Insights        []string `json:"insights,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// KeywordCount is one keyword with its occurrence count.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

const (
	// requiredFieldCount is the number of fields that participate in
	// the completeness score.
	requiredFieldCount = 4

	// keywordMinLength filters out short filler tokens.
	keywordMinLength = 4

	// keywordLimit caps the keyword list at the top N by frequency.
	keywordLimit = 10

	// sparseFieldThreshold flags a field as needing selector review
	// when it is empty in more than this share of records.
	sparseFieldThreshold = 0.5
)

var wordPattern = regexp.MustCompile(`\w+`)

// stopWords excludes common English tokens from keyword counting.
var stopWords = map[string]bool{
	"about": true, "after": true, "been": true, "from": true,
	"have": true, "here": true, "into": true, "just": true,
	"like": true, "more": true, "other": true, "over": true,
	"some": true, "than": true, "that": true, "their": true,
	"them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "very": true, "were": true,
	"what": true, "when": true, "which": true, "will": true,
	"with": true, "would": true, "your": true,
}

// AnalyzeRecords computes the quality report for a record sequence.
func AnalyzeRecords(records []*Record) *QualityReport {
	report := &QualityReport{
		TotalPosts:  len(records),
		UniqueNames: countUniqueNames(records),
	}

	if len(records) == 0 {
		report.Recommendations = append(report.Recommendations,
			"No posts extracted - check that the archive contains LinkedIn activity content")
		return report
	}

	filled := map[string]int{}
	for _, rec := range records {
		if rec.Name != "" {
			filled["name"]++
		}
		if rec.Title != "" {
			filled["title"]++
		}
		if rec.Period != "" {
			filled["period"]++
		}
		if rec.Details != "" {
			filled["details"]++
		}
	}

	complete := filled["name"] + filled["title"] + filled["period"] + filled["details"]
	total := requiredFieldCount * len(records)
	report.Score = round2(float64(complete) / float64(total) * 100)

	report.Keywords = topKeywords(records)

	switch {
	case report.Score > 80:
		report.Insights = append(report.Insights,
			"High quality extraction - most fields were successfully parsed")
	case report.Score > 60:
		report.Insights = append(report.Insights,
			"Moderate quality extraction - some fields may need manual review")
	default:
		report.Insights = append(report.Insights,
			"Low quality extraction - manual review recommended")
	}
	if len(report.Keywords) > 0 {
		words := make([]string, 0, len(report.Keywords))
		for i, kw := range report.Keywords {
			if i == 5 {
				break
			}
			words = append(words, kw.Word)
		}
		report.Insights = append(report.Insights,
			"Common keywords: "+strings.Join(words, ", "))
	}

	if report.Score < 80 {
		report.Recommendations = append(report.Recommendations,
			"Consider reviewing the archive format - it may be from a different LinkedIn version")
	}
	for _, field := range []string{"name", "title", "period", "details"} {
		missing := len(records) - filled[field]
		if float64(missing) > sparseFieldThreshold*float64(len(records)) {
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("Field %q is empty in most records - its selector may need updating", field))
		}
	}

	return report
}

func countUniqueNames(records []*Record) int {
	names := map[string]bool{}
	for _, rec := range records {
		if rec.Name != "" {
			names[rec.Name] = true
		}
	}
	return len(names)
}

// topKeywords counts title and details tokens across all records and
// returns the most frequent ones. Words occurring only once are not
// interesting enough to report.
func topKeywords(records []*Record) []KeywordCount {
	counts := map[string]int{}
	var firstSeen []string

	for _, rec := range records {
		for _, text := range []string{rec.Title, rec.Details} {
			for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
				if len(word) < keywordMinLength || stopWords[word] {
					continue
				}
				if counts[word] == 0 {
					firstSeen = append(firstSeen, word)
				}
				counts[word]++
			}
		}
	}

	// firstSeen already carries the tiebreak order; a stable sort by
	// count preserves it for equal frequencies.
	sort.SliceStable(firstSeen, func(i, j int) bool {
		return counts[firstSeen[i]] > counts[firstSeen[j]]
	})

	var keywords []KeywordCount
	for _, word := range firstSeen {
		if counts[word] < 2 {
			continue
		}
		keywords = append(keywords, KeywordCount{Word: word, Count: counts[word]})
		if len(keywords) == keywordLimit {
			break
		}
	}
	return keywords
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
