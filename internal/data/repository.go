package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"coursework_service/internal/model"
	"coursework_service/internal/store"
)

// Querier is satisfied by *pgxpool.Pool and pgxmock pools.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository keeps each user's course list, watermarks and assignment state in
// three tables so that each value is written on its own.
type Repository struct {
	db Querier
}

func NewRepository(db Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCourses(ctx context.Context, username string) ([]string, error) {
	query := `SELECT courses FROM user_courses WHERE username = $1`

	var courses []string
	if err := r.db.QueryRow(ctx, query, username).Scan(&courses); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []string{}, nil
		}
		return nil, handleError(err)
	}
	if courses == nil {
		courses = []string{}
	}
	return courses, nil
}

func (r *Repository) SaveCourses(ctx context.Context, username string, courses []string) error {
	query := `
INSERT INTO user_courses (username, courses, edited_at)
VALUES ($1, $2, NOW())
ON CONFLICT (username) DO UPDATE SET courses = EXCLUDED.courses, edited_at = NOW()
`
	if courses == nil {
		courses = []string{}
	}
	if _, err := r.db.Exec(ctx, query, username, courses); err != nil {
		return handleError(err)
	}
	return nil
}

func (r *Repository) GetWatermarks(ctx context.Context, username string) (model.Watermarks, error) {
	query := `SELECT watermarks FROM course_watermarks WHERE username = $1`

	watermarks := model.Watermarks{}
	if err := r.getJSON(ctx, query, username, &watermarks); err != nil {
		return nil, fmt.Errorf("watermarks: %w", err)
	}
	return watermarks, nil
}

func (r *Repository) SaveWatermarks(ctx context.Context, username string, watermarks model.Watermarks) error {
	query := `
INSERT INTO course_watermarks (username, watermarks, edited_at)
VALUES ($1, $2, NOW())
ON CONFLICT (username) DO UPDATE SET watermarks = EXCLUDED.watermarks, edited_at = NOW()
`
	if watermarks == nil {
		watermarks = model.Watermarks{}
	}
	if err := r.putJSON(ctx, query, username, watermarks); err != nil {
		return fmt.Errorf("watermarks: %w", err)
	}
	return nil
}

func (r *Repository) GetState(ctx context.Context, username string) (*store.State, error) {
	query := `SELECT state FROM assignment_states WHERE username = $1`

	state := store.New()
	if err := r.getJSON(ctx, query, username, state); err != nil {
		return nil, fmt.Errorf("assignment state: %w", err)
	}
	if state.Pending == nil {
		state.Pending = map[string][]model.AssignmentRecord{}
	}
	if state.Completed == nil {
		state.Completed = map[string][]model.AssignmentRecord{}
	}
	return state, nil
}

func (r *Repository) SaveState(ctx context.Context, username string, state *store.State) error {
	query := `
INSERT INTO assignment_states (username, state, edited_at)
VALUES ($1, $2, NOW())
ON CONFLICT (username) DO UPDATE SET state = EXCLUDED.state, edited_at = NOW()
`
	if state == nil {
		state = store.New()
	}
	if err := r.putJSON(ctx, query, username, state); err != nil {
		return fmt.Errorf("assignment state: %w", err)
	}
	return nil
}

// ListUsers returns every user who has selected courses at least once.
func (r *Repository) ListUsers(ctx context.Context) ([]string, error) {
	query := `SELECT username FROM user_courses ORDER BY username`

	var users []string
	if err := pgxscan.Select(ctx, r.db, &users, query); err != nil {
		return nil, handleError(err)
	}
	if users == nil {
		users = []string{}
	}
	return users, nil
}

// getJSON leaves dest untouched when the user has no row yet.
func (r *Repository) getJSON(ctx context.Context, query, username string, dest any) error {
	var raw []byte
	if err := r.db.QueryRow(ctx, query, username).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return handleError(err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode stored value: %w", err)
	}
	return nil
}

func (r *Repository) putJSON(ctx context.Context, query, username string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, username, raw); err != nil {
		return handleError(err)
	}
	return nil
}

func handleError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("repository error %s: %w", pgErr.Code, err)
	}
	return fmt.Errorf("repository error: %w", err)
}
