package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peekay/feedex"
)

// Run executes the results command, listing stored results newest
// first.
func (c *ResultsCmd) Run(deps *Dependencies) error {
	results, err := deps.Results.FindResults(deps.Ctx, feedex.ResultFilter{Limit: c.Limit})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No stored results")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.AppendHeader(table.Row{"ID", "Filename", "Stage", "Score", "Created", "Expires"})
	for _, r := range results {
		t.AppendRow(table.Row{
			r.ID,
			r.Filename,
			r.Stage,
			fmt.Sprintf("%.2f", r.QualityScore),
			r.CreatedAt.Local().Format(time.DateTime),
			r.ExpiresAt.Local().Format(time.DateTime),
		})
	}
	t.Render()
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Results.DeleteResult(deps.Ctx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted result %s\n", c.ID)
	return nil
}

// Run executes the cleanup command.
func (c *CleanupCmd) Run(deps *Dependencies) error {
	n, err := deps.Results.DeleteExpiredResults(deps.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed %d expired results\n", n)
	return nil
}
