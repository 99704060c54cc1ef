// Package goquery implements post extraction from LinkedIn activity
// HTML using CSS selector chains with progressive fallbacks.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/peekay/feedex"
	"golang.org/x/net/html"
)

// Ensure Extractor implements feedex.PostExtractor at compile time.
var _ feedex.PostExtractor = (*Extractor)(nil)

// Extractor locates post fragments and extracts record fields. Each
// field has an ordered rule chain; the first rule returning non-empty
// text wins and an all-miss leaves the field empty. LinkedIn has
// shipped several feed markups, so the chains start with the current
// class names and degrade to looser structural matches.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// fragmentSelectors identify post containers, tried in order until one
// yields at least one match.
var fragmentSelectors = []string{
	"div.feed-shared-update-v2",
	"div.feed-shared-update-v2__description",
	"div.feed-shared-text",
}

// ExtractPosts parses HTML and returns one record per post fragment in
// document order. Fragments without an author name are dropped as
// noise; post indexes stay contiguous over the kept records.
func (e *Extractor) ExtractPosts(rawHTML string) ([]*feedex.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, feedex.Errorf(feedex.EINVALID, "failed to parse HTML: %v", err)
	}

	var records []*feedex.Record
	findFragments(doc).Each(func(_ int, frag *goquery.Selection) {
		rec := &feedex.Record{
			Name:    extractName(frag),
			Title:   extractTitle(frag),
			Period:  extractPeriod(frag),
			Details: extractDetails(frag),
		}
		if rec.Name == "" {
			return
		}
		rec.PostIndex = len(records)
		records = append(records, rec)
	})

	return records, nil
}

// findFragments returns post containers using the first fragment
// selector that matches anything. Zero matches across all selectors is
// a valid outcome, not an error.
func findFragments(doc *goquery.Document) *goquery.Selection {
	sel := doc.Find(fragmentSelectors[0])
	for _, selector := range fragmentSelectors[1:] {
		if sel.Length() > 0 {
			break
		}
		sel = doc.Find(selector)
	}
	return sel
}

// fieldRule extracts one candidate value from a fragment, returning
// empty when it does not apply.
type fieldRule func(frag *goquery.Selection) string

// firstMatch runs rules in order and returns the first non-empty
// result.
func firstMatch(frag *goquery.Selection, rules []fieldRule) string {
	for _, rule := range rules {
		if text := rule(frag); text != "" {
			return text
		}
	}
	return ""
}

// selectorRule extracts text from the first element matching selector,
// requiring at least minLen characters.
func selectorRule(selector string, minLen int) fieldRule {
	return func(frag *goquery.Selection) string {
		text := cleanText(nodeText(frag.Find(selector).First()))
		if len(text) < minLen {
			return ""
		}
		return text
	}
}

// scanRule extracts text from the first of all elements matching
// selector whose content reaches minLen characters. Unlike
// selectorRule it keeps scanning past short matches, which suits the
// details chains where the first candidate is often a stray label.
func scanRule(selector string, minLen int) fieldRule {
	return func(frag *goquery.Selection) string {
		result := ""
		frag.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := cleanText(nodeText(s))
			if len(text) >= minLen {
				result = text
				return false
			}
			return true
		})
		return result
	}
}

var nameRules = []fieldRule{
	rejectDigits(selectorRule(`span[aria-hidden="true"]`, 2)),
	rejectDigits(selectorRule(`span[class*="actor"]`, 2)),
	rejectDigits(selectorRule(`span[class*="name"]`, 2)),
	rejectDigits(selectorRule(`a[class*="actor"]`, 2)),
	rejectDigits(selectorRule(`div[class*="actor"]`, 2)),
}

var titleRules = []fieldRule{
	selectorRule("span.update-components-actor__description", 2),
	selectorRule(`span[class*="description"]`, 2),
	selectorRule(`div[class*="description"]`, 2),
	selectorRule(`span[class*="title"]`, 2),
	selectorRule(`div[class*="title"]`, 2),
}

var periodRules = []fieldRule{
	selectorRule(`span.update-components-actor__sub-description span[aria-hidden="true"]`, 2),
	selectorRule(`span[class*="time"]`, 2),
	selectorRule(`span[class*="date"]`, 2),
	selectorRule("time", 2),
	selectorRule(`span[class*="sub-description"]`, 2),
}

// detailsMinLen filters out labels and counters that match the loose
// details selectors; post bodies are longer.
const detailsMinLen = 11

var detailsRules = []fieldRule{
	selectorRule("div.feed-shared-inline-show-more-text", 2),
	scanRule(`div[class*="text"]`, detailsMinLen),
	scanRule(`div[class*="content"]`, detailsMinLen),
	scanRule(`div[class*="body"]`, detailsMinLen),
	scanRule("p", detailsMinLen),
	scanRule(`span[class*="text"]`, detailsMinLen),
}

func extractName(frag *goquery.Selection) string {
	return firstMatch(frag, nameRules)
}

func extractTitle(frag *goquery.Selection) string {
	return firstMatch(frag, titleRules)
}

func extractPeriod(frag *goquery.Selection) string {
	return firstMatch(frag, periodRules)
}

func extractDetails(frag *goquery.Selection) string {
	return firstMatch(frag, detailsRules)
}

// rejectDigits wraps a rule to discard purely numeric candidates,
// which the loose name selectors sometimes catch (reaction counts).
func rejectDigits(rule fieldRule) fieldRule {
	return func(frag *goquery.Selection) string {
		text := rule(frag)
		if text == "" || isAllDigits(text) {
			return ""
		}
		return text
	}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

var controlPattern = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
var spacePattern = regexp.MustCompile(`\s+`)

// cleanText normalizes extracted text: control characters stripped,
// non-breaking spaces turned into regular spaces, whitespace runs
// collapsed, leading and trailing space trimmed. HTML entities were
// already decoded by the parser.
func cleanText(s string) string {
	s = controlPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// nodeText collects the text content of a selection with single spaces
// between adjacent nodes, so text split across inline elements does
// not fuse into one word.
func nodeText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
