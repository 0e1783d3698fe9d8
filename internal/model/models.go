package model

import (
	"fmt"
	"strings"
	"time"

	"coursework_service/internal/errdefs"
)

// Kind is an open set; extractors may introduce kinds beyond these.
type Kind string

const (
	KindHomework Kind = "Homework"
	KindLab      Kind = "Lab"
	KindProject  Kind = "Project"
	KindExam     Kind = "Exam"
)

const (
	KeySeparator = "||"
	DateLayout   = "2006-01-02"
)

type Link struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// AssignmentRecord is produced by an extraction pass and never mutated afterwards.
// A zero DueDate means the source date could not be normalized.
type AssignmentRecord struct {
	CourseCode string    `json:"course_code"`
	Kind       Kind      `json:"kind"`
	Name       string    `json:"name"`
	DueDate    time.Time `json:"due_date"`
	Links      []Link    `json:"links"`
}

func (r AssignmentRecord) Key() Key {
	return Key{CourseCode: r.CourseCode, Name: r.Name, DueDate: r.DueDate}
}

func (r AssignmentRecord) HasDueDate() bool {
	return !r.DueDate.IsZero()
}

// Key is the composite identity of an assignment within a user's state.
type Key struct {
	CourseCode string
	Name       string
	DueDate    time.Time
}

func (k Key) Equal(other Key) bool {
	return k.CourseCode == other.CourseCode && k.Name == other.Name && k.DueDate.Equal(other.DueDate)
}

// String renders the boundary wire format "course||name||YYYY-MM-DD".
// The unparsed sentinel renders as an empty date.
func (k Key) String() string {
	return k.CourseCode + KeySeparator + k.Name + KeySeparator + FormatDate(k.DueDate)
}

// ParseKey splits on the first and the last separator, so names may contain "||".
func ParseKey(s string) (Key, error) {
	first := strings.Index(s, KeySeparator)
	last := strings.LastIndex(s, KeySeparator)
	if first < 0 || first == last {
		return Key{}, fmt.Errorf("%q: %w", s, errdefs.ErrInvalidKey)
	}

	course := s[:first]
	name := s[first+len(KeySeparator) : last]
	rawDate := s[last+len(KeySeparator):]
	if course == "" || name == "" {
		return Key{}, fmt.Errorf("%q: empty course or name: %w", s, errdefs.ErrInvalidKey)
	}

	due, err := ParseDate(rawDate)
	if err != nil {
		return Key{}, fmt.Errorf("%q: %w", s, errdefs.ErrInvalidKey)
	}

	return Key{CourseCode: course, Name: name, DueDate: due}, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

// Course is a catalog entry: a course code and the page its assignments are read from.
type Course struct {
	Code  string `json:"code" yaml:"code"`
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Watermarks maps course code to the date through which that course was last synced.
type Watermarks map[string]time.Time

func (w Watermarks) Get(course string) *time.Time {
	if t, ok := w[course]; ok {
		return &t
	}
	return nil
}
