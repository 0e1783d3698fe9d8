package synchronizer

import (
	"context"
	"time"

	"coursework_service/internal/extractor"
	"coursework_service/internal/model"
	"coursework_service/pkg/logging"

	"go.uber.org/zap"
)

type Fetcher interface {
	Fetch(ctx context.Context, course model.Course) ([]byte, error)
}

type Archiver interface {
	Store(ctx context.Context, course string, asOf time.Time, content []byte) error
}

// Result of one pass for one course. Watermark is the value to persist: asOf
// when the page was read, otherwise the watermark that was passed in.
type Result struct {
	Records   []model.AssignmentRecord
	Watermark *time.Time
	Fetched   bool
}

type Synchronizer struct {
	registry *extractor.Registry
	fetcher  Fetcher
	archiver Archiver
	grace    time.Duration
}

func New(registry *extractor.Registry, fetcher Fetcher, grace time.Duration) *Synchronizer {
	return &Synchronizer{registry: registry, fetcher: fetcher, grace: grace}
}

// WithArchiver stores a copy of every page that was fetched successfully.
func (s *Synchronizer) WithArchiver(a Archiver) *Synchronizer {
	s.archiver = a
	return s
}

// Sync fetches one course page and extracts the records visible in
// (watermark - grace, asOf]. Failures are logged and yield an empty result
// with the watermark unchanged.
func (s *Synchronizer) Sync(ctx context.Context, courseCode string, asOf time.Time, watermark *time.Time) Result {
	unchanged := Result{Records: []model.AssignmentRecord{}, Watermark: watermark}

	course, ok := s.registry.Course(courseCode)
	if !ok {
		warn(ctx, "Course is not in the catalog", zap.String("course", courseCode))
		return unchanged
	}
	ext, ok := s.registry.Get(courseCode)
	if !ok {
		warn(ctx, "No extractor registered for course", zap.String("course", courseCode))
		return unchanged
	}

	content, err := s.fetcher.Fetch(ctx, course)
	if err != nil {
		warn(ctx, "Course page fetch failed", zap.String("course", courseCode), zap.Error(err))
		return unchanged
	}

	if s.archiver != nil {
		if err := s.archiver.Store(ctx, courseCode, asOf, content); err != nil {
			warn(ctx, "Failed to archive course page", zap.String("course", courseCode), zap.Error(err))
		}
	}

	records := ext.Extract(content, extractor.Window{AsOf: asOf, Watermark: watermark, Grace: s.grace})
	if logger, ok := logging.GetFromContext(ctx); ok {
		logger.Debug(ctx, "Extracted course records",
			zap.String("course", courseCode),
			zap.Time("as_of", asOf),
			zap.Int("count", len(records)))
	}

	next := asOf
	return Result{Records: records, Watermark: &next, Fetched: true}
}

func warn(ctx context.Context, msg string, fields ...zap.Field) {
	if logger, ok := logging.GetFromContext(ctx); ok {
		logger.Warn(ctx, msg, fields...)
	}
}
