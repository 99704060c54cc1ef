package feedex

// ArchiveReader decodes a saved web archive into its HTML payload.
// Implementations hide the MIME container format (MHTML/MHT) and
// transfer-encoding details.
type ArchiveReader interface {
	// ReadHTML returns the HTML document embedded in the archive at
	// path. Returns EINVALID if the archive cannot be decoded or
	// contains no HTML part.
	ReadHTML(path string) (string, error)
}
