//go:generate mockgen -source=service.go -destination=mocks/service_mocks.go -package=mocks
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"coursework_service/internal/dates"
	"coursework_service/internal/errdefs"
	"coursework_service/internal/model"
	"coursework_service/internal/store"
	"coursework_service/internal/synchronizer"
	"coursework_service/pkg/kafka"
	"coursework_service/pkg/logging"

	"go.uber.org/zap"
)

const (
	ViewPending   = "pending"
	ViewCompleted = "completed"
)

// Repository persists the three per-user values independently. A user with
// nothing stored yet reads back as empty values, not an error.
type Repository interface {
	GetCourses(ctx context.Context, username string) ([]string, error)
	SaveCourses(ctx context.Context, username string, courses []string) error
	GetWatermarks(ctx context.Context, username string) (model.Watermarks, error)
	SaveWatermarks(ctx context.Context, username string, watermarks model.Watermarks) error
	GetState(ctx context.Context, username string) (*store.State, error)
	SaveState(ctx context.Context, username string, state *store.State) error
	ListUsers(ctx context.Context) ([]string, error)
}

type Synchronizer interface {
	Sync(ctx context.Context, courseCode string, asOf time.Time, watermark *time.Time) synchronizer.Result
}

type Catalog interface {
	Get(code string) (model.Course, bool)
	Courses() []model.Course
}

type EventSender interface {
	SendAssignmentEvent(ctx context.Context, event kafka.AssignmentEvent) error
}

type ViewCache interface {
	GetView(ctx context.Context, username, view string) ([]model.AssignmentRecord, bool)
	SetView(ctx context.Context, username, view string, records []model.AssignmentRecord)
	Invalidate(ctx context.Context, username string)
}

type RefreshResult struct {
	AsOf     time.Time      `json:"as_of"`
	Synced   []string       `json:"synced"`
	UpToDate []string       `json:"up_to_date"`
	Failed   []string       `json:"failed"`
	Added    map[string]int `json:"added"`
}

type AssignmentService struct {
	repo    Repository
	sync    Synchronizer
	catalog Catalog
	events  EventSender
	cache   ViewCache
	locks   *keyedMutex
	now     func() time.Time
}

// NewAssignmentService wires the reconciler. events and cache may be nil.
func NewAssignmentService(repo Repository, sync Synchronizer, catalog Catalog, events EventSender, cache ViewCache) *AssignmentService {
	return &AssignmentService{
		repo:    repo,
		sync:    sync,
		catalog: catalog,
		events:  events,
		cache:   cache,
		locks:   newKeyedMutex(),
		now:     time.Now,
	}
}

func (s *AssignmentService) Catalog() []model.Course {
	return s.catalog.Courses()
}

func (s *AssignmentService) ListUsers(ctx context.Context) ([]string, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListCourses returns the user's courses in the order they were selected.
func (s *AssignmentService) ListCourses(ctx context.Context, username string) ([]model.Course, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	codes, err := s.repo.GetCourses(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}

	courses := make([]model.Course, 0, len(codes))
	for _, code := range codes {
		course, ok := s.catalog.Get(code)
		if !ok {
			course = model.Course{Code: code}
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// AddCourse selects a course without fetching it; the next refresh backfills it.
func (s *AssignmentService) AddCourse(ctx context.Context, username, code string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("course code is required: %w", errdefs.ErrValidation)
	}
	if _, ok := s.catalog.Get(code); !ok {
		return fmt.Errorf("%s: %w", code, errdefs.ErrUnknownCourse)
	}

	err := s.withUser(username, func() error {
		courses, err := s.repo.GetCourses(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to get courses: %w", err)
		}
		if slices.Contains(courses, code) {
			return fmt.Errorf("%s: %w", code, errdefs.ErrCourseAlreadySelected)
		}
		if err := s.repo.SaveCourses(ctx, username, append(courses, code)); err != nil {
			return fmt.Errorf("failed to save courses: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, username)
	s.publish(ctx, kafka.AssignmentEvent{EventType: kafka.EventCourseAdded, Username: username, CourseCode: code})
	return nil
}

// RemoveCourse deselects a course and discards its records and watermark, so a
// later re-add starts from a full backfill.
func (s *AssignmentService) RemoveCourse(ctx context.Context, username, code string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	code = strings.TrimSpace(code)

	err := s.withUser(username, func() error {
		courses, err := s.repo.GetCourses(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to get courses: %w", err)
		}
		idx := slices.Index(courses, code)
		if idx < 0 {
			return fmt.Errorf("%s: %w", code, errdefs.ErrCourseNotSelected)
		}

		state, err := s.loadState(ctx, username)
		if err != nil {
			return err
		}
		state.DropCourse(code)
		if err := s.repo.SaveState(ctx, username, state); err != nil {
			return fmt.Errorf("failed to save assignment state: %w", err)
		}

		watermarks, err := s.repo.GetWatermarks(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to get watermarks: %w", err)
		}
		delete(watermarks, code)
		if err := s.repo.SaveWatermarks(ctx, username, watermarks); err != nil {
			return fmt.Errorf("failed to save watermarks: %w", err)
		}

		if err := s.repo.SaveCourses(ctx, username, slices.Delete(courses, idx, idx+1)); err != nil {
			return fmt.Errorf("failed to save courses: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, username)
	s.publish(ctx, kafka.AssignmentEvent{EventType: kafka.EventCourseRemoved, Username: username, CourseCode: code})
	return nil
}

// Refresh synchronizes every selected course whose watermark is missing or
// older than asOf. Courses are fetched concurrently and without the user lock;
// the merge re-reads the stored state under the lock. A course whose fetch
// fails contributes nothing and keeps its watermark, and a course removed while
// its fetch was in flight is dropped. Records already present in either
// partition are skipped, which absorbs the grace-period overlap.
func (s *AssignmentService) Refresh(ctx context.Context, username string, asOf time.Time) (*RefreshResult, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	asOf = dates.DateOf(asOf, time.UTC)
	result := &RefreshResult{
		AsOf:     asOf,
		Synced:   []string{},
		UpToDate: []string{},
		Failed:   []string{},
		Added:    map[string]int{},
	}

	var (
		due      []string
		snapshot model.Watermarks
	)
	err := s.withUser(username, func() error {
		courses, err := s.repo.GetCourses(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to get courses: %w", err)
		}
		snapshot, err = s.repo.GetWatermarks(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to get watermarks: %w", err)
		}
		for _, code := range courses {
			if wm := snapshot.Get(code); wm != nil && !wm.Before(asOf) {
				result.UpToDate = append(result.UpToDate, code)
				continue
			}
			due = append(due, code)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return result, nil
	}

	synced := s.syncAll(ctx, due, asOf, snapshot)

	err = s.withUser(username, func() error {
		courses, err := s.repo.GetCourses(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to get courses: %w", err)
		}
		watermarks, err := s.repo.GetWatermarks(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to get watermarks: %w", err)
		}
		if watermarks == nil {
			watermarks = model.Watermarks{}
		}
		state, err := s.loadState(ctx, username)
		if err != nil {
			return err
		}

		for i, code := range due {
			res := synced[i]
			if !res.Fetched {
				result.Failed = append(result.Failed, code)
				continue
			}
			if !slices.Contains(courses, code) {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "Course removed during refresh",
						zap.String("username", username), zap.String("course", code))
				}
				continue
			}
			fresh := newRecords(state, res.Records)
			if err := state.AddPending(code, fresh); err != nil {
				return s.invariant(ctx, "Failed to merge refreshed records", err, zap.String("course", code))
			}
			result.Synced = append(result.Synced, code)
			result.Added[code] = len(fresh)
			if wm := watermarks.Get(code); wm == nil || wm.Before(*res.Watermark) {
				watermarks[code] = *res.Watermark
			}
		}

		if err := state.Check(); err != nil {
			return s.invariant(ctx, "Assignment state invariant violated after refresh", err)
		}
		if err := s.repo.SaveState(ctx, username, state); err != nil {
			return fmt.Errorf("failed to save assignment state: %w", err)
		}
		if err := s.repo.SaveWatermarks(ctx, username, watermarks); err != nil {
			return fmt.Errorf("failed to save watermarks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Synced) > 0 {
		s.invalidate(ctx, username)
	}
	for _, code := range result.Synced {
		s.publish(ctx, kafka.AssignmentEvent{
			EventType:  kafka.EventAssignmentsRefreshed,
			Username:   username,
			CourseCode: code,
			Added:      result.Added[code],
		})
	}
	return result, nil
}

func (s *AssignmentService) syncAll(ctx context.Context, courses []string, asOf time.Time, watermarks model.Watermarks) []synchronizer.Result {
	results := make([]synchronizer.Result, len(courses))
	var wg sync.WaitGroup
	for i, code := range courses {
		wg.Add(1)
		go func(i int, code string, watermark *time.Time) {
			defer wg.Done()
			results[i] = s.sync.Sync(ctx, code, asOf, watermark)
		}(i, code, watermarks.Get(code))
	}
	wg.Wait()
	return results
}

// newRecords drops records whose key is already stored or repeats within the batch.
func newRecords(state *store.State, records []model.AssignmentRecord) []model.AssignmentRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]model.AssignmentRecord, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if _, dup := seen[k.String()]; dup || state.Contains(k) {
			continue
		}
		seen[k.String()] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (s *AssignmentService) MarkComplete(ctx context.Context, username, key string) (model.AssignmentRecord, error) {
	rec, err := s.mark(ctx, username, key, (*store.State).MoveToCompleted)
	if err != nil {
		return model.AssignmentRecord{}, err
	}
	s.publish(ctx, assignmentEvent(kafka.EventAssignmentCompleted, username, rec))
	return rec, nil
}

func (s *AssignmentService) MarkIncomplete(ctx context.Context, username, key string) (model.AssignmentRecord, error) {
	rec, err := s.mark(ctx, username, key, (*store.State).MoveToPending)
	if err != nil {
		return model.AssignmentRecord{}, err
	}
	s.publish(ctx, assignmentEvent(kafka.EventAssignmentReopened, username, rec))
	return rec, nil
}

func (s *AssignmentService) mark(
	ctx context.Context,
	username, rawKey string,
	move func(*store.State, model.Key) (model.AssignmentRecord, error),
) (model.AssignmentRecord, error) {
	if err := validateUsername(username); err != nil {
		return model.AssignmentRecord{}, err
	}
	key, err := model.ParseKey(rawKey)
	if err != nil {
		return model.AssignmentRecord{}, err
	}

	var moved model.AssignmentRecord
	err = s.withUser(username, func() error {
		courses, err := s.repo.GetCourses(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to get courses: %w", err)
		}
		if !slices.Contains(courses, key.CourseCode) {
			return fmt.Errorf("%s: %w", key.CourseCode, errdefs.ErrCourseNotSelected)
		}

		state, err := s.loadState(ctx, username)
		if err != nil {
			return err
		}
		moved, err = move(state, key)
		if err != nil {
			if errors.Is(err, errdefs.ErrAmbiguousKey) || errors.Is(err, errdefs.ErrDuplicateKey) {
				return s.invariant(ctx, "Assignment key does not identify a single record", err)
			}
			return err
		}
		if err := s.repo.SaveState(ctx, username, state); err != nil {
			return fmt.Errorf("failed to save assignment state: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.AssignmentRecord{}, err
	}

	s.invalidate(ctx, username)
	return moved, nil
}

// PendingView lists pending records across the user's courses, nearest due
// date first. Undated records sort first. Ties keep course and insertion order.
func (s *AssignmentService) PendingView(ctx context.Context, username string) ([]model.AssignmentRecord, error) {
	return s.view(ctx, username, ViewPending)
}

// CompletedView lists completed records, most recently due first.
func (s *AssignmentService) CompletedView(ctx context.Context, username string) ([]model.AssignmentRecord, error) {
	return s.view(ctx, username, ViewCompleted)
}

func (s *AssignmentService) view(ctx context.Context, username, view string) ([]model.AssignmentRecord, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if records, ok := s.cache.GetView(ctx, username, view); ok {
			return records, nil
		}
	}

	// The miss path shares the user lock with mutators, so a view computed from
	// state that a concurrent mark has already replaced is never cached.
	var records []model.AssignmentRecord
	err := s.withUser(username, func() error {
		courses, err := s.repo.GetCourses(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to get courses: %w", err)
		}
		state, err := s.loadState(ctx, username)
		if err != nil {
			return err
		}

		partition := state.Pending
		if view == ViewCompleted {
			partition = state.Completed
		}
		records = flatten(courses, partition)
		if view == ViewCompleted {
			sort.SliceStable(records, func(i, j int) bool {
				return dates.SortValue(records[i].DueDate) > dates.SortValue(records[j].DueDate)
			})
		} else {
			sort.SliceStable(records, func(i, j int) bool {
				return dates.SortValue(records[i].DueDate) < dates.SortValue(records[j].DueDate)
			})
		}

		if s.cache != nil {
			s.cache.SetView(ctx, username, view, records)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func flatten(courses []string, partition map[string][]model.AssignmentRecord) []model.AssignmentRecord {
	records := make([]model.AssignmentRecord, 0)
	for _, code := range courses {
		records = append(records, partition[code]...)
	}
	return records
}

// RemindDueSoon publishes a due-soon event for every pending record due within
// [today, today+horizon] and returns how many were sent.
func (s *AssignmentService) RemindDueSoon(ctx context.Context, username string, today time.Time, horizon time.Duration) (int, error) {
	pending, err := s.PendingView(ctx, username)
	if err != nil {
		return 0, err
	}

	until := today.Add(horizon)
	sent := 0
	for _, rec := range pending {
		if !rec.HasDueDate() || rec.DueDate.Before(today) || rec.DueDate.After(until) {
			continue
		}
		if s.publish(ctx, assignmentEvent(kafka.EventAssignmentDueSoon, username, rec)) {
			sent++
		}
	}
	return sent, nil
}

func (s *AssignmentService) loadState(ctx context.Context, username string) (*store.State, error) {
	state, err := s.repo.GetState(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment state: %w", err)
	}
	if state == nil {
		state = store.New()
	}
	return state, nil
}

func (s *AssignmentService) withUser(username string, fn func() error) error {
	unlock := s.locks.Lock(username)
	defer unlock()
	return fn()
}

func (s *AssignmentService) invariant(ctx context.Context, msg string, err error, fields ...zap.Field) error {
	if logger, ok := logging.GetFromContext(ctx); ok {
		logger.Error(ctx, msg, append(fields, zap.Error(err))...)
	}
	return err
}

func (s *AssignmentService) invalidate(ctx context.Context, username string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, username)
	}
}

func (s *AssignmentService) publish(ctx context.Context, event kafka.AssignmentEvent) bool {
	if s.events == nil {
		return false
	}
	event.OccurredAt = s.now().UTC()
	if err := s.events.SendAssignmentEvent(ctx, event); err != nil {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Warn(ctx, "Failed to publish event",
				zap.String("event_type", event.EventType),
				zap.String("username", event.Username),
				zap.Error(err))
		}
		return false
	}
	return true
}

func assignmentEvent(eventType, username string, rec model.AssignmentRecord) kafka.AssignmentEvent {
	return kafka.AssignmentEvent{
		EventType:     eventType,
		Username:      username,
		CourseCode:    rec.CourseCode,
		AssignmentKey: rec.Key().String(),
		DueDate:       model.FormatDate(rec.DueDate),
	}
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return errdefs.ErrNoUser
	}
	return nil
}
