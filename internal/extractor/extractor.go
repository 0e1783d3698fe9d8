// Package extractor turns a course page into assignment records. Each course
// layout has its own Extractor; all of them honour the same date Window.
package extractor

import (
	"time"

	"coursework_service/internal/catalog"
	"coursework_service/internal/model"
)

// Extractor never fails: a page it cannot read yields an empty slice, and a
// malformed row is skipped.
type Extractor interface {
	Extract(content []byte, window Window) []model.AssignmentRecord
}

// Window bounds the assigned dates an extraction pass may return.
// A nil Watermark asks for a full backfill up to AsOf.
type Window struct {
	AsOf      time.Time
	Watermark *time.Time
	Grace     time.Duration
}

func (w Window) Admits(assigned time.Time) bool {
	if assigned.After(w.AsOf) {
		return false
	}
	if w.Watermark != nil && !assigned.After(w.Watermark.Add(-w.Grace)) {
		return false
	}
	return true
}

// PastHorizon reports whether a page, ordered oldest first, can be abandoned at assigned.
func (w Window) PastHorizon(assigned time.Time) bool {
	return assigned.After(w.AsOf.Add(w.Grace))
}

type Registry struct {
	catalog    *catalog.Catalog
	extractors map[string]Extractor
}

// NewRegistry wires the built-in extractors for every catalog course that has one.
func NewRegistry(cat *catalog.Catalog, year int) *Registry {
	r := &Registry{catalog: cat, extractors: make(map[string]Extractor)}
	for _, course := range cat.Courses() {
		switch course.Code {
		case catalog.CodeEECS16B:
			r.Register(course.Code, NewEECS16B(course.Code, course.URL, year))
		case catalog.CodeCOMPSCI61B:
			r.Register(course.Code, NewCS61B(course.Code, course.URL, year))
		case catalog.CodeDATAC8:
			r.Register(course.Code, NewDataC8(course.Code, course.URL, year))
		}
	}
	return r
}

func (r *Registry) Register(code string, e Extractor) {
	r.extractors[code] = e
}

func (r *Registry) Get(code string) (Extractor, bool) {
	e, ok := r.extractors[code]
	return e, ok
}

func (r *Registry) Course(code string) (model.Course, bool) {
	return r.catalog.Get(code)
}

// Codes lists the courses that have an extractor, in catalog order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.extractors))
	for _, course := range r.catalog.Courses() {
		if _, ok := r.extractors[course.Code]; ok {
			codes = append(codes, course.Code)
		}
	}
	return codes
}
