package catalog

import (
	"fmt"
	"os"
	"strings"

	"coursework_service/internal/errdefs"
	"coursework_service/internal/model"

	"gopkg.in/yaml.v2"
)

const (
	CodeEECS16B    = "EECS16B"
	CodeCOMPSCI61B = "COMPSCI61B"
	CodeDATAC8     = "DATAC8"
)

var defaultCourses = []model.Course{
	{Code: CodeEECS16B, Title: "Designing Information Devices and Systems II", URL: "https://eecs16b.org/"},
	{Code: CodeCOMPSCI61B, Title: "Data Structures", URL: "https://sp24.datastructur.es/"},
	{Code: CodeDATAC8, Title: "Foundations of Data Science", URL: "https://www.data8.org/sp24/"},
}

type file struct {
	Courses []model.Course `yaml:"courses"`
}

// Catalog is the read-only set of courses a user may select, in display order.
type Catalog struct {
	courses []model.Course
	byCode  map[string]model.Course
}

func New(courses []model.Course) (*Catalog, error) {
	c := &Catalog{byCode: make(map[string]model.Course, len(courses))}
	for _, course := range courses {
		course.Code = strings.TrimSpace(course.Code)
		if course.Code == "" {
			return nil, fmt.Errorf("course without code: %w", errdefs.ErrValidation)
		}
		if course.URL == "" {
			return nil, fmt.Errorf("course %s has no url: %w", course.Code, errdefs.ErrValidation)
		}
		if _, dup := c.byCode[course.Code]; dup {
			return nil, fmt.Errorf("course %s listed twice: %w", course.Code, errdefs.ErrValidation)
		}
		c.byCode[course.Code] = course
		c.courses = append(c.courses, course)
	}
	return c, nil
}

func Default() *Catalog {
	c, _ := New(defaultCourses)
	return c
}

// Load reads a YAML catalog from path. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path from config
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if len(f.Courses) == 0 {
		return nil, fmt.Errorf("catalog %s lists no courses: %w", path, errdefs.ErrValidation)
	}

	return New(f.Courses)
}

func (c *Catalog) Get(code string) (model.Course, bool) {
	course, ok := c.byCode[code]
	return course, ok
}

func (c *Catalog) Courses() []model.Course {
	out := make([]model.Course, len(c.courses))
	copy(out, c.courses)
	return out
}
