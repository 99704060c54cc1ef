// Package mhtml decodes MHTML/MHT web archives into their embedded
// HTML documents.
package mhtml

import (
	"bufio"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/peekay/feedex"
	"golang.org/x/text/encoding/charmap"
)

// Ensure Reader implements feedex.ArchiveReader at compile time.
var _ feedex.ArchiveReader = (*Reader)(nil)

// Reader extracts the HTML payload from an MHTML archive. Archives
// are MIME messages, usually multipart/related with quoted-printable
// or base64 transfer encoding.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadHTML returns the first text/html part of the archive at path.
func (r *Reader) ReadHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", feedex.Errorf(feedex.EINVALID, "cannot open archive: %v", err)
	}
	defer f.Close()

	msg, err := mail.ReadMessage(bufio.NewReader(f))
	if err != nil {
		return "", feedex.Errorf(feedex.EINVALID, "malformed MIME archive: %v", err)
	}

	html, err := htmlFromPart(textproto.MIMEHeader(msg.Header), msg.Body)
	if err != nil {
		return "", err
	}
	if html == "" {
		return "", feedex.Errorf(feedex.EINVALID, "no HTML content found in archive")
	}
	return html, nil
}

// htmlFromPart returns the decoded text/html content of a MIME part,
// descending into nested multiparts. Returns empty string when the
// part tree contains no HTML.
func htmlFromPart(header textproto.MIMEHeader, body io.Reader) (string, error) {
	mediaType, params, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil {
		// A missing or malformed Content-Type on a sub-part is not
		// fatal; the part simply is not the HTML payload.
		return "", nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary, ok := params["boundary"]
		if !ok {
			return "", feedex.Errorf(feedex.EINVALID, "multipart archive without boundary")
		}
		mr := multipart.NewReader(body, boundary)
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				return "", nil
			}
			if err != nil {
				return "", feedex.Errorf(feedex.EINVALID, "malformed multipart archive: %v", err)
			}
			html, err := htmlFromPart(part.Header, part)
			if err != nil {
				return "", err
			}
			if html != "" {
				return html, nil
			}
		}
	}

	if mediaType != "text/html" {
		return "", nil
	}

	raw, err := io.ReadAll(transferDecoder(body, header.Get("Content-Transfer-Encoding")))
	if err != nil {
		return "", feedex.Errorf(feedex.EINVALID, "cannot decode HTML part: %v", err)
	}
	return decodeCharset(raw), nil
}

// transferDecoder wraps body with the reader for its declared
// Content-Transfer-Encoding. Unknown encodings pass through raw.
func transferDecoder(body io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return quotedprintable.NewReader(body)
	case "base64":
		// The standard decoder already skips the newlines that wrap
		// encoded archive bodies.
		return base64.NewDecoder(base64.StdEncoding, body)
	default:
		return body
	}
}

// decodeCharset interprets raw bytes as UTF-8, falling back to
// Latin-1 for archives saved with legacy encodings. Latin-1 decoding
// cannot fail, so the fallback always yields a usable string.
func decodeCharset(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
