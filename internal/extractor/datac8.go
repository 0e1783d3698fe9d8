package extractor

import (
	"bytes"
	"strings"

	"coursework_service/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// DataC8 reads a page of <div class="module"> weeks. The first <dt> of a week
// gives its date and entries are tagged with label-homework, label-lab or
// label-project badges.
type DataC8 struct {
	code    string
	baseURL string
	year    int
}

func NewDataC8(code, baseURL string, year int) *DataC8 {
	return &DataC8{code: code, baseURL: baseURL, year: year}
}

func (e *DataC8) Extract(content []byte, window Window) []model.AssignmentRecord {
	out := make([]model.AssignmentRecord, 0)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return out
	}

	doc.Find("div.module").EachWithBreak(func(_ int, week *goquery.Selection) bool {
		assigned, ok := trailingMonthDay(e.year, week.Find("dt").First().Text())
		if !ok {
			return true
		}
		if window.PastHorizon(assigned) {
			return false
		}
		if !window.Admits(assigned) {
			return true
		}

		out = append(out, e.entry(week, "label-homework", model.KindHomework)...)
		out = append(out, e.entry(week, "label-lab", model.KindLab)...)
		out = append(out, e.project(week)...)
		return true
	})

	return out
}

func (e *DataC8) labelled(week *goquery.Selection, class string) (*goquery.Selection, *goquery.Selection) {
	badge := week.Find("strong.label." + class).First()
	if badge.Length() == 0 {
		return nil, nil
	}
	entry := badge.Parent()
	a := entry.Find("a").First()
	if a.Length() == 0 {
		return nil, nil
	}
	return entry, a
}

func (e *DataC8) entry(week *goquery.Selection, class string, kind model.Kind) []model.AssignmentRecord {
	entry, a := e.labelled(week, class)
	if entry == nil {
		return nil
	}

	return []model.AssignmentRecord{{
		CourseCode: e.code,
		Kind:       kind,
		Name:       cleanText(a.Text()),
		DueDate:    firstPartialDate(e.year, entry.Text()),
		Links:      links(e.baseURL, a),
	}}
}

// project yields the project itself and, when the entry names one, its checkpoint.
func (e *DataC8) project(week *goquery.Selection) []model.AssignmentRecord {
	entry, a := e.labelled(week, "label-project")
	if entry == nil {
		return nil
	}

	name := cleanText(a.Text())
	text := entry.Text()
	main, checkpoint := text, ""
	if i := strings.Index(strings.ToLower(text), "checkpoint"); i >= 0 {
		main, checkpoint = text[:i], text[i:]
	}

	out := []model.AssignmentRecord{{
		CourseCode: e.code,
		Kind:       model.KindProject,
		Name:       name,
		DueDate:    firstPartialDate(e.year, main),
		Links:      links(e.baseURL, a),
	}}
	if checkpoint != "" {
		out = append(out, model.AssignmentRecord{
			CourseCode: e.code,
			Kind:       model.KindProject,
			Name:       name + " Checkpoint",
			DueDate:    firstPartialDate(e.year, checkpoint),
			Links:      links(e.baseURL, a),
		})
	}
	return out
}
