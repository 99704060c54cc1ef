package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/peekay/feedex"
	main "github.com/peekay/feedex/cmd/feedex"
	"github.com/peekay/feedex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipeline(records []*feedex.Record, readErr error) *feedex.Pipeline {
	return &feedex.Pipeline{
		Archive: &mock.ArchiveReader{ReadHTMLFn: func(path string) (string, error) {
			return "<html></html>", readErr
		}},
		Extractor: &mock.PostExtractor{ExtractPostsFn: func(html string) ([]*feedex.Record, error) {
			return records, nil
		}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testDeps(stdout, stderr io.Writer, pipeline *feedex.Pipeline) *main.Dependencies {
	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Pipeline: pipeline,
	}
}

func TestParseCmd_Run(t *testing.T) {
	t.Parallel()

	records := []*feedex.Record{
		{Name: "Ada Lovelace", Title: "Engineer", Period: "2w", Details: "Hiring a platform engineer.", PostIndex: 0},
		{Name: "Grace Hopper", Title: "Director", Period: "1mo", Details: "New team opening soon.", PostIndex: 1},
	}

	t.Run("renders a table by default", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		cmd := &main.ParseCmd{File: "activity.mhtml", Format: "table"}

		err := cmd.Run(testDeps(stdout, &bytes.Buffer{}, testPipeline(records, nil)))
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Posts extracted: 2")
		assert.Contains(t, output, "Quality score:")
		assert.Contains(t, output, "Ada Lovelace")
		assert.Contains(t, output, "Grace Hopper")
	})

	t.Run("writes CSV to the output file", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), "out.csv")
		cmd := &main.ParseCmd{File: "activity.mhtml", Format: "csv", Output: outPath}

		err := cmd.Run(testDeps(&bytes.Buffer{}, &bytes.Buffer{}, testPipeline(records, nil)))
		require.NoError(t, err)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "name,title,period,details,company,location,post_index")
		assert.Contains(t, string(data), "Ada Lovelace")
	})

	t.Run("writes the JSON document to stdout", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		cmd := &main.ParseCmd{File: "activity.mhtml", Format: "json"}

		err := cmd.Run(testDeps(stdout, &bytes.Buffer{}, testPipeline(records, nil)))
		require.NoError(t, err)

		var doc feedex.ExportDocument
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
		require.Len(t, doc.Records, 2)
		require.NotNil(t, doc.Report)
		assert.Equal(t, 2, doc.Report.TotalPosts)
	})

	t.Run("reports empty extractions", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		cmd := &main.ParseCmd{File: "activity.mhtml", Format: "table"}

		err := cmd.Run(testDeps(stdout, &bytes.Buffer{}, testPipeline(nil, nil)))
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No data to display")
	})

	t.Run("returns pipeline errors", func(t *testing.T) {
		t.Parallel()

		readErr := feedex.Errorf(feedex.EINVALID, "malformed MIME archive")
		cmd := &main.ParseCmd{File: "activity.mhtml", Format: "table"}

		err := cmd.Run(testDeps(&bytes.Buffer{}, &bytes.Buffer{}, testPipeline(nil, readErr)))
		require.Error(t, err)
		assert.Equal(t, feedex.EINVALID, feedex.ErrorCode(err))
	})
}
