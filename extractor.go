package feedex

// PostExtractor locates post fragments in an HTML document and
// extracts one Record per fragment.
type PostExtractor interface {
	// ExtractPosts parses HTML and returns records in document order
	// with contiguous post indexes starting at zero. A document with
	// no recognizable fragments yields an empty slice and no error.
	ExtractPosts(html string) ([]*Record, error)
}
