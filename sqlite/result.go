package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peekay/feedex"
)

// resultTTL is how long results are retained before expiry cleanup.
const resultTTL = 24 * time.Hour

// Compile-time interface verification.
var _ feedex.ResultService = (*ResultService)(nil)

// ResultService implements feedex.ResultService using SQLite.
type ResultService struct {
	db *DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db}
}

// CreateResult stores a new result with its records.
func (s *ResultService) CreateResult(ctx context.Context, result *feedex.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}

	result.ID = uuid.New().String()
	result.CreatedAt = time.Now().UTC()
	result.ExpiresAt = result.CreatedAt.Add(resultTTL)

	report := ""
	if result.Report != nil {
		data, err := json.Marshal(result.Report)
		if err != nil {
			return err
		}
		report = string(data)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO results (id, filename, source_hash, stage, quality_score, report, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ID, result.Filename, result.SourceHash, string(result.Stage), result.QualityScore,
		report, result.CreatedAt.Format(time.RFC3339), result.ExpiresAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	if err := insertRecords(ctx, tx, result.ID, result.Records); err != nil {
		return err
	}

	return tx.Commit()
}

// FindResultByID retrieves a result by ID with its records. Expired
// results are reported as not found.
func (s *ResultService) FindResultByID(ctx context.Context, id string) (*feedex.Result, error) {
	var result feedex.Result
	var stage, report, createdAt, expiresAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, source_hash, stage, quality_score, report, created_at, expires_at
		FROM results
		WHERE id = ?
	`, id).Scan(&result.ID, &result.Filename, &result.SourceHash, &stage,
		&result.QualityScore, &report, &createdAt, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, feedex.Errorf(feedex.ENOTFOUND, "result not found")
	}
	if err != nil {
		return nil, err
	}

	result.Stage = feedex.Stage(stage)
	if result.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if result.ExpiresAt, err = parseRFC3339(expiresAt, "expires_at"); err != nil {
		return nil, err
	}
	if time.Now().After(result.ExpiresAt) {
		return nil, feedex.Errorf(feedex.ENOTFOUND, "result expired")
	}

	if report != "" {
		result.Report = &feedex.QualityReport{}
		if err := json.Unmarshal([]byte(report), result.Report); err != nil {
			return nil, fmt.Errorf("failed to parse report: %w", err)
		}
	}

	if result.Records, err = s.findRecords(ctx, result.ID); err != nil {
		return nil, err
	}

	return &result, nil
}

// FindResults retrieves results matching the filter, newest first,
// without record payloads.
func (s *ResultService) FindResults(ctx context.Context, filter feedex.ResultFilter) ([]*feedex.Result, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, filename, source_hash, stage, quality_score, created_at, expires_at
		FROM results WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Filename != nil {
		query.WriteString(" AND filename = ?")
		args = append(args, *filter.Filename)
	}
	if filter.Stage != nil {
		query.WriteString(" AND stage = ?")
		args = append(args, string(*filter.Stage))
	}

	query.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*feedex.Result
	for rows.Next() {
		var result feedex.Result
		var stage, createdAt, expiresAt string
		if err := rows.Scan(&result.ID, &result.Filename, &result.SourceHash, &stage,
			&result.QualityScore, &createdAt, &expiresAt); err != nil {
			return nil, err
		}
		result.Stage = feedex.Stage(stage)
		if result.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if result.ExpiresAt, err = parseRFC3339(expiresAt, "expires_at"); err != nil {
			return nil, err
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}

// UpdateResultRecords replaces a result's record sequence and stage,
// used after enrichment completes.
func (s *ResultService) UpdateResultRecords(ctx context.Context, id string, stage feedex.Stage, records []*feedex.Record) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "UPDATE results SET stage = ? WHERE id = ?", string(stage), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return feedex.Errorf(feedex.ENOTFOUND, "result not found")
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE result_id = ?", id); err != nil {
		return err
	}
	if err := insertRecords(ctx, tx, id, records); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteResult permanently removes a result and its records.
func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return feedex.Errorf(feedex.ENOTFOUND, "result not found")
	}
	return nil
}

// DeleteExpiredResults removes all results past their retention window.
func (s *ResultService) DeleteExpiredResults(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE expires_at < ?",
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (s *ResultService) findRecords(ctx context.Context, resultID string) ([]*feedex.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT post_index, name, title, period, details, company, location
		FROM records
		WHERE result_id = ?
		ORDER BY post_index ASC
	`, resultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*feedex.Record
	for rows.Next() {
		var rec feedex.Record
		if err := rows.Scan(&rec.PostIndex, &rec.Name, &rec.Title, &rec.Period,
			&rec.Details, &rec.Company, &rec.Location); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func insertRecords(ctx context.Context, tx *sql.Tx, resultID string, records []*feedex.Record) error {
	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO records (result_id, post_index, name, title, period, details, company, location)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, resultID, rec.PostIndex, rec.Name, rec.Title, rec.Period, rec.Details, rec.Company, rec.Location)
		if err != nil {
			return err
		}
	}
	return nil
}

func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}
