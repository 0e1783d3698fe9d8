package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"coursework_service/internal/dates"
	"coursework_service/internal/model"
	"coursework_service/internal/service"
	"coursework_service/pkg/ctxdata"
	"coursework_service/pkg/logging"
)

type AssignmentService interface {
	Catalog() []model.Course
	ListCourses(ctx context.Context, username string) ([]model.Course, error)
	AddCourse(ctx context.Context, username, code string) error
	RemoveCourse(ctx context.Context, username, code string) error
	Refresh(ctx context.Context, username string, asOf time.Time) (*service.RefreshResult, error)
	MarkComplete(ctx context.Context, username, key string) (model.AssignmentRecord, error)
	MarkIncomplete(ctx context.Context, username, key string) (model.AssignmentRecord, error)
	PendingView(ctx context.Context, username string) ([]model.AssignmentRecord, error)
	CompletedView(ctx context.Context, username string) ([]model.AssignmentRecord, error)
}

type AssignmentHandler struct {
	svc AssignmentService
	loc *time.Location
	now func() time.Time
}

// NewAssignmentHandler resolves "today" for refreshes in loc.
func NewAssignmentHandler(svc AssignmentService, loc *time.Location) *AssignmentHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AssignmentHandler{svc: svc, loc: loc, now: time.Now}
}

func (h *AssignmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog", h.GetCatalog)

	r.Get("/courses", h.ListCourses)
	r.Post("/courses", h.AddCourse)
	r.Delete("/courses/{course_code}", h.RemoveCourse)

	r.Post("/refresh", h.Refresh)

	r.Post("/assignments/complete", h.MarkComplete)
	r.Post("/assignments/incomplete", h.MarkIncomplete)
	r.Get("/assignments/pending", h.PendingView)
	r.Get("/assignments/completed", h.CompletedView)
}

type courseResponse struct {
	Code  string `json:"course_code"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// recordResponse renders the unparsed due date as "".
type recordResponse struct {
	Key        string       `json:"key"`
	CourseCode string       `json:"course_code"`
	Kind       string       `json:"kind"`
	Name       string       `json:"name"`
	DueDate    string       `json:"due_date"`
	Links      []model.Link `json:"links"`
}

type addCourseRequest struct {
	CourseCode string `json:"course_code"`
}

type refreshRequest struct {
	AsOf string `json:"as_of"`
}

type markRequest struct {
	Key string `json:"key"`
}

func toCourses(courses []model.Course) []courseResponse {
	out := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseResponse{Code: c.Code, Title: c.Title, URL: c.URL})
	}
	return out
}

func toRecord(r model.AssignmentRecord) recordResponse {
	links := r.Links
	if links == nil {
		links = []model.Link{}
	}
	return recordResponse{
		Key:        r.Key().String(),
		CourseCode: r.CourseCode,
		Kind:       string(r.Kind),
		Name:       r.Name,
		DueDate:    model.FormatDate(r.DueDate),
		Links:      links,
	}
}

func toRecords(records []model.AssignmentRecord) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecord(r))
	}
	return out
}

func (h *AssignmentHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCourses(h.svc.Catalog()))
}

func (h *AssignmentHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.ListCourses(r.Context(), username(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourses(courses))
}

func (h *AssignmentHandler) AddCourse(w http.ResponseWriter, r *http.Request) {
	var req addCourseRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.AddCourse(r.Context(), username(r), req.CourseCode); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *AssignmentHandler) RemoveCourse(w http.ResponseWriter, r *http.Request) {
	code, err := parsePathParam(r, "course_code")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.RemoveCourse(r.Context(), username(r), code); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AssignmentHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(w, r, badRequest("invalid request body"))
		return
	}

	asOf := dates.DateOf(h.now(), h.loc)
	if strings.TrimSpace(req.AsOf) != "" {
		parsed, err := model.ParseDate(strings.TrimSpace(req.AsOf))
		if err != nil {
			h.fail(w, r, badRequest("as_of must be YYYY-MM-DD"))
			return
		}
		asOf = parsed
	}

	result, err := h.svc.Refresh(r.Context(), username(r), asOf)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"as_of":      model.FormatDate(result.AsOf),
		"synced":     result.Synced,
		"up_to_date": result.UpToDate,
		"failed":     result.Failed,
		"added":      result.Added,
	})
}

func (h *AssignmentHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.svc.MarkComplete)
}

func (h *AssignmentHandler) MarkIncomplete(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.svc.MarkIncomplete)
}

func (h *AssignmentHandler) mark(
	w http.ResponseWriter,
	r *http.Request,
	move func(context.Context, string, string) (model.AssignmentRecord, error),
) {
	var req markRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	rec, err := move(r.Context(), username(r), req.Key)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecord(rec))
}

func (h *AssignmentHandler) PendingView(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.svc.PendingView)
}

func (h *AssignmentHandler) CompletedView(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.svc.CompletedView)
}

func (h *AssignmentHandler) view(
	w http.ResponseWriter,
	r *http.Request,
	list func(context.Context, string) ([]model.AssignmentRecord, error),
) {
	records, err := list(r.Context(), username(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecords(records))
}

func (h *AssignmentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErr(err)
	ctx := r.Context()
	if logger, ok := logging.GetFromContext(ctx); ok {
		if status >= http.StatusInternalServerError {
			logger.Error(ctx, "Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		} else {
			logger.Debug(ctx, "Request rejected", zap.String("path", r.URL.Path), zap.Error(err))
		}
	}
	msg := http.StatusText(status)
	if status < http.StatusInternalServerError {
		msg = err.Error()
	}
	writeErrorJSON(w, status, msg)
}

func username(r *http.Request) string {
	name, _ := ctxdata.GetUsername(r.Context())
	return name
}

func decodeBody(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}
