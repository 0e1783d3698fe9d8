package extractor

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"coursework_service/internal/model"

	"github.com/PuerkitoBio/goquery"
)

var labDueRe = regexp.MustCompile(`\(due (\d{1,2}/\d{1,2})\)`)

// CS61B reads a calendar table with one <tr> per week. The "border-hack" cell
// carries the week's date; homework and project cells are classed, lab cells
// are recognised by their text and exams are bolded.
type CS61B struct {
	code    string
	baseURL string
	year    int
}

func NewCS61B(code, baseURL string, year int) *CS61B {
	return &CS61B{code: code, baseURL: baseURL, year: year}
}

func (e *CS61B) Extract(content []byte, window Window) []model.AssignmentRecord {
	out := make([]model.AssignmentRecord, 0)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return out
	}

	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		dateCell := row.Find("td.border-hack").First()
		if dateCell.Length() == 0 {
			return true
		}
		assigned, ok := trailingMonthDay(e.year, dateCell.Text())
		if !ok {
			return true
		}
		if window.PastHorizon(assigned) {
			return false
		}
		if !window.Admits(assigned) {
			return true
		}

		out = append(out, e.homework(row)...)
		out = append(out, e.projects(row)...)
		out = append(out, e.lab(row)...)
		out = append(out, e.exam(row, assigned)...)
		return true
	})

	return out
}

func (e *CS61B) homework(row *goquery.Selection) []model.AssignmentRecord {
	cell := row.Find("td.homework").First()
	a := cell.Find("a").First()
	if a.Length() == 0 {
		return nil
	}

	return []model.AssignmentRecord{{
		CourseCode: e.code,
		Kind:       model.KindHomework,
		Name:       cleanText(a.Text()),
		DueDate:    firstPartialDate(e.year, cell.Text()),
		Links:      links(e.baseURL, a),
	}}
}

func (e *CS61B) projects(row *goquery.Selection) []model.AssignmentRecord {
	cell := row.Find("td.project").First()
	due := lastPartialDate(e.year, cell.Text())

	var out []model.AssignmentRecord
	cell.Find("a").Each(func(_ int, a *goquery.Selection) {
		name := cleanText(a.Text())
		if name == "" {
			return
		}
		if !strings.Contains(name, "Project") {
			name = "Project " + name
		}
		link := links(e.baseURL, a)
		for i := range link {
			link[i].Label = name
		}
		out = append(out, model.AssignmentRecord{
			CourseCode: e.code,
			Kind:       model.KindProject,
			Name:       name,
			DueDate:    due,
			Links:      link,
		})
	})
	return out
}

func (e *CS61B) lab(row *goquery.Selection) []model.AssignmentRecord {
	cell := row.ChildrenFiltered("td").FilterFunction(func(_ int, td *goquery.Selection) bool {
		if td.HasClass("homework") || td.HasClass("project") || td.HasClass("border-hack") {
			return false
		}
		return strings.Contains(td.Text(), "Lab")
	}).First()

	anchors := cell.Find("a")
	if anchors.Length() == 0 {
		return nil
	}

	var due time.Time
	if m := labDueRe.FindStringSubmatch(cell.Text()); m != nil {
		due = firstPartialDate(e.year, m[1])
	}

	return []model.AssignmentRecord{{
		CourseCode: e.code,
		Kind:       model.KindLab,
		Name:       cleanText(anchors.First().Text()),
		DueDate:    due,
		Links:      links(e.baseURL, anchors),
	}}
}

// exam falls on the row's own date.
func (e *CS61B) exam(row *goquery.Selection, date time.Time) []model.AssignmentRecord {
	strong := row.Find("strong").First()
	name := cleanText(strong.Text())
	if name == "" {
		return nil
	}

	return []model.AssignmentRecord{{
		CourseCode: e.code,
		Kind:       model.KindExam,
		Name:       name,
		DueDate:    date,
		Links:      []model.Link{},
	}}
}
