package mock

import "github.com/peekay/feedex"

var _ feedex.PostExtractor = (*PostExtractor)(nil)

// PostExtractor is a mock implementation of feedex.PostExtractor.
type PostExtractor struct {
	ExtractPostsFn func(html string) ([]*feedex.Record, error)
}

func (e *PostExtractor) ExtractPosts(html string) ([]*feedex.Record, error) {
	return e.ExtractPostsFn(html)
}
