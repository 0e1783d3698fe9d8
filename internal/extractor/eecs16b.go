package extractor

import (
	"bytes"
	"strings"
	"time"

	"coursework_service/internal/dates"
	"coursework_service/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// EECS16B reads a schedule laid out as one <tbody id="week-N"> per week whose
// first row holds: exam, assigned date, ..., lab, homework.
type EECS16B struct {
	code    string
	baseURL string
	year    int
}

func NewEECS16B(code, baseURL string, year int) *EECS16B {
	return &EECS16B{code: code, baseURL: baseURL, year: year}
}

func (e *EECS16B) Extract(content []byte, window Window) []model.AssignmentRecord {
	out := make([]model.AssignmentRecord, 0)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return out
	}

	doc.Find(`tbody[id*="week"]`).EachWithBreak(func(_ int, week *goquery.Selection) bool {
		cells := week.Find("tr").First().ChildrenFiltered("td")
		if cells.Length() < 3 {
			return true
		}

		fields := strings.Fields(cells.Eq(1).Text())
		if len(fields) == 0 {
			return true
		}
		assigned, ok := dates.NormalizePartial(e.year, fields[0])
		if !ok {
			return true
		}
		if window.PastHorizon(assigned) {
			return false
		}
		if !window.Admits(assigned) {
			return true
		}

		if exam, ok := e.exam(cells.First()); ok {
			out = append(out, exam)
		}
		homework, ok := e.homework(cells.Last())
		if ok {
			out = append(out, homework)
		}
		if lab, ok := e.lab(cells.Eq(cells.Length()-2), homework.DueDate); ok {
			out = append(out, lab)
		}
		return true
	})

	return out
}

// exam reads cells like "Exam MT 1: Feb 15".
func (e *EECS16B) exam(cell *goquery.Selection) (model.AssignmentRecord, bool) {
	text := cell.Text()
	if !strings.Contains(text, "MT") {
		return model.AssignmentRecord{}, false
	}
	fields := strings.Fields(text)
	if len(fields) < 5 {
		return model.AssignmentRecord{}, false
	}
	due, ok := dates.Normalize(e.year, fields[3], fields[4])
	if !ok {
		return model.AssignmentRecord{}, false
	}

	return model.AssignmentRecord{
		CourseCode: e.code,
		Kind:       model.KindExam,
		Name:       strings.TrimSuffix(strings.Join(fields[1:3], " "), ":"),
		DueDate:    due,
		Links:      []model.Link{},
	}, true
}

// homework reads cells like "<a>Homework 01</a> (Due 1/27)".
func (e *EECS16B) homework(cell *goquery.Selection) (model.AssignmentRecord, bool) {
	anchors := cell.Find("a")
	fields := strings.Fields(cell.Text())
	if anchors.Length() == 0 || len(fields) < 2 {
		return model.AssignmentRecord{}, false
	}

	var due time.Time
	if len(fields) > 2 {
		due = firstPartialDate(e.year, strings.Join(fields[2:], " "))
	}

	return model.AssignmentRecord{
		CourseCode: e.code,
		Kind:       model.KindHomework,
		Name:       strings.Join(fields[:2], " "),
		DueDate:    due,
		Links:      links(e.baseURL, anchors),
	}, true
}

// lab is due alongside the week's homework.
func (e *EECS16B) lab(cell *goquery.Selection, due time.Time) (model.AssignmentRecord, bool) {
	name := firstText(cell)
	if !strings.HasPrefix(name, "Lab") {
		return model.AssignmentRecord{}, false
	}

	return model.AssignmentRecord{
		CourseCode: e.code,
		Kind:       model.KindLab,
		Name:       name,
		DueDate:    due,
		Links:      links(e.baseURL, cell.Find("a")),
	}, true
}
