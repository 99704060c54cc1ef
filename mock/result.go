package mock

import (
	"context"

	"github.com/peekay/feedex"
)

var _ feedex.ResultService = (*ResultService)(nil)

// ResultService is a mock implementation of feedex.ResultService.
type ResultService struct {
	CreateResultFn         func(ctx context.Context, result *feedex.Result) error
	FindResultByIDFn       func(ctx context.Context, id string) (*feedex.Result, error)
	FindResultsFn          func(ctx context.Context, filter feedex.ResultFilter) ([]*feedex.Result, error)
	UpdateResultRecordsFn  func(ctx context.Context, id string, stage feedex.Stage, records []*feedex.Record) error
	DeleteResultFn         func(ctx context.Context, id string) error
	DeleteExpiredResultsFn func(ctx context.Context) (int, error)
}

func (s *ResultService) CreateResult(ctx context.Context, result *feedex.Result) error {
	return s.CreateResultFn(ctx, result)
}

func (s *ResultService) FindResultByID(ctx context.Context, id string) (*feedex.Result, error) {
	return s.FindResultByIDFn(ctx, id)
}

func (s *ResultService) FindResults(ctx context.Context, filter feedex.ResultFilter) ([]*feedex.Result, error) {
	return s.FindResultsFn(ctx, filter)
}

func (s *ResultService) UpdateResultRecords(ctx context.Context, id string, stage feedex.Stage, records []*feedex.Record) error {
	return s.UpdateResultRecordsFn(ctx, id, stage, records)
}

func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	return s.DeleteResultFn(ctx, id)
}

func (s *ResultService) DeleteExpiredResults(ctx context.Context) (int, error) {
	return s.DeleteExpiredResultsFn(ctx)
}
