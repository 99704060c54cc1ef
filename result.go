package feedex

import (
	"context"
	"time"
)

// Result is a stored processing outcome for one uploaded file. Results
// are kept for a bounded retention window so the web interface can
// serve exports without holding record data in cookies.
type Result struct {
	ID           string         `json:"id"`
	Filename     string         `json:"filename"`
	SourceHash   string         `json:"sourceHash"`
	Stage        Stage          `json:"stage"`
	QualityScore float64        `json:"qualityScore"`
	Records      []*Record      `json:"records"`
	Report       *QualityReport `json:"report,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	ExpiresAt    time.Time      `json:"expiresAt"`
}

// Validate returns an error if the result contains invalid fields.
func (r *Result) Validate() error {
	if r.Filename == "" {
		return Errorf(EINVALID, "result filename required")
	}
	for _, rec := range r.Records {
		if err := rec.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ResultService represents a service for managing stored results.
type ResultService interface {
	// CreateResult stores a new result with its records.
	CreateResult(ctx context.Context, result *Result) error

	// FindResultByID retrieves a result by ID, records included.
	// Returns ENOTFOUND if the result does not exist or has expired.
	FindResultByID(ctx context.Context, id string) (*Result, error)

	// FindResults retrieves results matching the filter, without
	// record payloads.
	FindResults(ctx context.Context, filter ResultFilter) ([]*Result, error)

	// UpdateResultRecords replaces a result's record sequence, used
	// after enrichment completes. Returns ENOTFOUND if the result
	// does not exist.
	UpdateResultRecords(ctx context.Context, id string, stage Stage, records []*Record) error

	// DeleteResult permanently removes a result and its records.
	// Returns ENOTFOUND if the result does not exist.
	DeleteResult(ctx context.Context, id string) error

	// DeleteExpiredResults removes all results past their retention
	// window and reports how many were removed.
	DeleteExpiredResults(ctx context.Context) (int, error)
}

// ResultFilter represents a filter for FindResults.
type ResultFilter struct {
	ID       *string `json:"id"`
	Filename *string `json:"filename"`
	Stage    *Stage  `json:"stage"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
