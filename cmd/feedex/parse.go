package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peekay/feedex"
)

// Run executes the parse command: one file, start to finish, output to
// stdout or a file.
func (c *ParseCmd) Run(deps *Dependencies) error {
	out, err := deps.Pipeline.ProcessFile(deps.Ctx, c.File)
	if err != nil {
		return err
	}

	var w io.Writer = deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch c.Format {
	case "csv":
		data, err := feedex.MarshalRecordsCSV(out.Extraction.Records)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err

	case "json":
		data, err := feedex.MarshalResultJSON(out.Extraction.Records, out.Report)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err

	default:
		renderSummary(w, out)
		renderRecordsTable(w, out.Extraction.Records)
		return nil
	}
}

func renderSummary(w io.Writer, out *feedex.ProcessOutput) {
	fmt.Fprintf(w, "Posts extracted: %d\n", len(out.Extraction.Records))
	fmt.Fprintf(w, "Quality score:   %.2f%%\n", out.Report.Score)
	fmt.Fprintf(w, "Stage:           %s\n", out.Extraction.Stage)
	for _, insight := range out.Report.Insights {
		fmt.Fprintf(w, "Insight: %s\n", insight)
	}
	for _, rec := range out.Report.Recommendations {
		fmt.Fprintf(w, "Recommendation: %s\n", rec)
	}
	fmt.Fprintln(w)
}

func renderRecordsTable(w io.Writer, records []*feedex.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No data to display")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Title", "Period", "Details", "Company", "Location"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.PostIndex,
			truncate(rec.Name, 30),
			truncate(rec.Title, 50),
			truncate(rec.Period, 15),
			truncate(rec.Details, 60),
			truncate(rec.Company, 25),
			truncate(rec.Location, 25),
		})
	}
	t.Render()
}

// truncate shortens cell content so wide posts don't wreck the table.
func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
