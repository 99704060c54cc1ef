// Package mock provides mock implementations of feedex interfaces for
// testing.
package mock

import "github.com/peekay/feedex"

var _ feedex.ArchiveReader = (*ArchiveReader)(nil)

// ArchiveReader is a mock implementation of feedex.ArchiveReader.
type ArchiveReader struct {
	ReadHTMLFn func(path string) (string, error)
}

func (r *ArchiveReader) ReadHTML(path string) (string, error) {
	return r.ReadHTMLFn(path)
}
