package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"coursework_service/internal/errdefs"
	"coursework_service/internal/model"
	"coursework_service/pkg/utils"
)

const maxPageSize = 8 << 20

// FetchError reports a page that could not be read this pass. It counts
// against the course's circuit breaker.
type FetchError struct {
	Course     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Course, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Course, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Temporary() bool {
	return true
}

type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	breakers *utils.BreakerSet
}

func New(client *http.Client, timeout time.Duration, breakers *utils.BreakerSet) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, timeout: timeout, breakers: breakers}
}

// Fetch GETs the course page, bounded by the fetch timeout. It is not retried;
// the next refresh tries again.
func (f *Fetcher) Fetch(ctx context.Context, course model.Course) ([]byte, error) {
	var body []byte
	err := f.breakers.Get(course.Code).Execute(func() error {
		var err error
		body, err = f.get(ctx, course)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, course model.Course) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, course.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", course.Code, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Course: course.Code, Err: fmt.Errorf("%w: %v", errdefs.ErrFetchFailed, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPageSize))
		return nil, &FetchError{Course: course.Code, StatusCode: resp.StatusCode, Err: errdefs.ErrUnexpectedStatus}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, &FetchError{Course: course.Code, Err: fmt.Errorf("%w: %v", errdefs.ErrFetchFailed, err)}
	}
	return body, nil
}
