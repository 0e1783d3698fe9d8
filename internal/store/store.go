// Package store holds one user's assignment state: a pending and a completed
// partition, each a per-course list of records in insertion order. It does no I/O.
package store

import (
	"fmt"
	"sort"

	"coursework_service/internal/errdefs"
	"coursework_service/internal/model"
)

// State must hold each key at most once across both partitions.
type State struct {
	Pending   map[string][]model.AssignmentRecord `json:"pending"`
	Completed map[string][]model.AssignmentRecord `json:"completed"`
}

func New() *State {
	return &State{
		Pending:   make(map[string][]model.AssignmentRecord),
		Completed: make(map[string][]model.AssignmentRecord),
	}
}

// AddPending appends records to the course's pending list. A key that already
// exists anywhere in the state, or twice in records, rejects the whole batch.
func (s *State) AddPending(course string, records []model.AssignmentRecord) error {
	s.init()

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.CourseCode != course {
			return fmt.Errorf("record %q belongs to %s, not %s: %w", r.Name, r.CourseCode, course, errdefs.ErrInvariantViolation)
		}
		k := r.Key()
		if _, dup := seen[k.String()]; dup || s.Contains(k) {
			return fmt.Errorf("%s: %w", k, errdefs.ErrDuplicateKey)
		}
		seen[k.String()] = struct{}{}
	}

	s.Pending[course] = append(s.Pending[course], records...)
	if _, ok := s.Completed[course]; !ok {
		s.Completed[course] = []model.AssignmentRecord{}
	}
	return nil
}

func (s *State) MoveToCompleted(key model.Key) (model.AssignmentRecord, error) {
	s.init()
	return move(s.Pending, s.Completed, key)
}

func (s *State) MoveToPending(key model.Key) (model.AssignmentRecord, error) {
	s.init()
	return move(s.Completed, s.Pending, key)
}

func (s *State) DropCourse(course string) {
	delete(s.Pending, course)
	delete(s.Completed, course)
}

func (s *State) Contains(key model.Key) bool {
	return indexOf(s.Pending[key.CourseCode], key) >= 0 || indexOf(s.Completed[key.CourseCode], key) >= 0
}

func (s *State) IsPending(key model.Key) bool {
	return indexOf(s.Pending[key.CourseCode], key) >= 0
}

// Courses lists every course with an entry in either partition, sorted.
func (s *State) Courses() []string {
	set := make(map[string]struct{}, len(s.Pending)+len(s.Completed))
	for c := range s.Pending {
		set[c] = struct{}{}
	}
	for c := range s.Completed {
		set[c] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Check verifies that no key repeats within or across partitions and that every
// record is filed under its own course.
func (s *State) Check() error {
	seen := make(map[string]string)
	for _, part := range []struct {
		name    string
		courses map[string][]model.AssignmentRecord
	}{{"pending", s.Pending}, {"completed", s.Completed}} {
		for course, records := range part.courses {
			for _, r := range records {
				if r.CourseCode != course {
					return fmt.Errorf("%s record %s filed under %s: %w", part.name, r.Key(), course, errdefs.ErrInvariantViolation)
				}
				k := r.Key().String()
				if where, dup := seen[k]; dup {
					return fmt.Errorf("%s in %s and %s: %w", k, where, part.name, errdefs.ErrInvariantViolation)
				}
				seen[k] = part.name
			}
		}
	}
	return nil
}

func (s *State) init() {
	if s.Pending == nil {
		s.Pending = make(map[string][]model.AssignmentRecord)
	}
	if s.Completed == nil {
		s.Completed = make(map[string][]model.AssignmentRecord)
	}
}

func move(from, to map[string][]model.AssignmentRecord, key model.Key) (model.AssignmentRecord, error) {
	records := from[key.CourseCode]

	idx, matches := -1, 0
	for i, r := range records {
		if r.Key().Equal(key) {
			if idx < 0 {
				idx = i
			}
			matches++
		}
	}
	switch {
	case matches == 0:
		return model.AssignmentRecord{}, fmt.Errorf("%s: %w", key, errdefs.ErrAssignmentNotFound)
	case matches > 1:
		return model.AssignmentRecord{}, fmt.Errorf("%s matches %d records: %w", key, matches, errdefs.ErrAmbiguousKey)
	}
	if indexOf(to[key.CourseCode], key) >= 0 {
		return model.AssignmentRecord{}, fmt.Errorf("%s already in target partition: %w", key, errdefs.ErrDuplicateKey)
	}

	record := records[idx]
	remaining := make([]model.AssignmentRecord, 0, len(records)-1)
	remaining = append(remaining, records[:idx]...)
	remaining = append(remaining, records[idx+1:]...)
	from[key.CourseCode] = remaining
	to[key.CourseCode] = append(to[key.CourseCode], record)
	return record, nil
}

func indexOf(records []model.AssignmentRecord, key model.Key) int {
	for i, r := range records {
		if r.Key().Equal(key) {
			return i
		}
	}
	return -1
}
