package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"coursework_service/internal/cache"
	"coursework_service/internal/catalog"
	"coursework_service/internal/extractor"
	"coursework_service/internal/model"
	"coursework_service/internal/service"
	"coursework_service/internal/store"
	"coursework_service/internal/synchronizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// byteMap is an in-process stand-in for the redis byte cache.
type byteMap struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newByteMap() *byteMap {
	return &byteMap{data: map[string][]byte{}}
}

func (m *byteMap) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	return data, ok
}

func (m *byteMap) Set(_ context.Context, key string, data []byte, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}

func (m *byteMap) Delete(_ context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
}

// pausingRepository holds the next GetState call until released.
type pausingRepository struct {
	*memRepository
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (r *pausingRepository) GetState(ctx context.Context, username string) (*store.State, error) {
	if r.armed.CompareAndSwap(true, false) {
		r.entered <- struct{}{}
		<-r.release
	}
	return r.memRepository.GetState(ctx, username)
}

// pausingFetcher holds every fetch of one course until released.
type pausingFetcher struct {
	*fixtureFetcher
	code    string
	entered chan struct{}
	release chan struct{}
}

func (f *pausingFetcher) Fetch(ctx context.Context, course model.Course) ([]byte, error) {
	if course.Code == f.code {
		f.entered <- struct{}{}
		<-f.release
	}
	return f.fixtureFetcher.Fetch(ctx, course)
}

func waitFor(t *testing.T, done <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestCachedViewSeesConcurrentMark(t *testing.T) {
	ctx := context.Background()
	cat := catalog.Default()
	registry := extractor.NewRegistry(cat, testYear)
	fetcher := newFixtureFetcher(t)
	repo := &pausingRepository{
		memRepository: newMemRepository(),
		entered:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	views := cache.NewViewCache(newByteMap(), time.Minute)
	svc := service.NewAssignmentService(repo, synchronizer.New(registry, fetcher, grace), cat, nil, views)
	s := &scenario{svc: svc, repo: repo.memRepository, fetcher: fetcher, registry: registry}

	asOf := date(time.January, 23)
	require.NoError(t, svc.AddCourse(ctx, "alice", catalog.CodeEECS16B))
	_, err := svc.Refresh(ctx, "alice", asOf)
	require.NoError(t, err)
	want := s.expected(t, catalog.CodeEECS16B, extractor.Window{AsOf: asOf, Grace: grace})
	require.NotEmpty(t, want)
	target := want[0].Key().String()

	repo.armed.Store(true)
	viewDone := make(chan struct{})
	go func() {
		defer close(viewDone)
		_, err := svc.PendingView(ctx, "alice")
		assert.NoError(t, err)
	}()
	<-repo.entered

	markDone := make(chan struct{})
	go func() {
		defer close(markDone)
		_, err := svc.MarkComplete(ctx, "alice", target)
		assert.NoError(t, err)
	}()
	// Give the mark time to run ahead of the paused view if it can.
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	waitFor(t, viewDone, "pending view")
	waitFor(t, markDone, "mark complete")

	pending, err := svc.PendingView(ctx, "alice")
	require.NoError(t, err)
	assert.NotContains(t, keysOf(pending), target)
	assert.Len(t, pending, len(want)-1)

	completed, err := svc.CompletedView(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{target}, keysOf(completed))
}

func newPausingScenario(t *testing.T, code string) (*scenario, *pausingFetcher) {
	t.Helper()
	cat := catalog.Default()
	registry := extractor.NewRegistry(cat, testYear)
	fixtures := newFixtureFetcher(t)
	fetcher := &pausingFetcher{
		fixtureFetcher: fixtures,
		code:           code,
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	repo := newMemRepository()
	svc := service.NewAssignmentService(repo, synchronizer.New(registry, fetcher, grace), cat, nil, nil)
	return &scenario{svc: svc, repo: repo, fetcher: fixtures, registry: registry}, fetcher
}

func TestMarkDoesNotWaitForRefreshFetch(t *testing.T) {
	ctx := context.Background()
	s, fetcher := newPausingScenario(t, catalog.CodeDATAC8)
	d1, d2 := date(time.January, 23), date(time.February, 9)

	require.NoError(t, s.svc.AddCourse(ctx, "alice", catalog.CodeEECS16B))
	_, err := s.svc.Refresh(ctx, "alice", d1)
	require.NoError(t, err)
	target := s.expected(t, catalog.CodeEECS16B, extractor.Window{AsOf: d1, Grace: grace})[0]
	require.NoError(t, s.svc.AddCourse(ctx, "alice", catalog.CodeDATAC8))

	var res *service.RefreshResult
	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		var err error
		res, err = s.svc.Refresh(ctx, "alice", d2)
		assert.NoError(t, err)
	}()
	<-fetcher.entered

	markDone := make(chan struct{})
	go func() {
		defer close(markDone)
		_, err := s.svc.MarkComplete(ctx, "alice", target.Key().String())
		assert.NoError(t, err)
	}()
	select {
	case <-markDone:
	case <-time.After(2 * time.Second):
		close(fetcher.release)
		t.Fatal("mark complete blocked behind an in-flight fetch")
	}

	close(fetcher.release)
	waitFor(t, refreshDone, "refresh")
	assert.ElementsMatch(t, []string{catalog.CodeEECS16B, catalog.CodeDATAC8}, res.Synced)

	// The overlapping refetch must not bring the completed record back.
	state := s.state(t, "alice")
	require.NoError(t, state.Check())
	assert.Equal(t, []string{target.Key().String()}, keysOf(state.Completed[catalog.CodeEECS16B]))
	assert.NotContains(t, keysOf(state.Pending[catalog.CodeEECS16B]), target.Key().String())
	labs := s.expected(t, catalog.CodeDATAC8, extractor.Window{AsOf: d2, Grace: grace})
	assert.Equal(t, keysOf(labs), keysOf(state.Pending[catalog.CodeDATAC8]))
}

func TestCourseRemovedDuringRefreshFetch(t *testing.T) {
	ctx := context.Background()
	s, fetcher := newPausingScenario(t, catalog.CodeDATAC8)
	asOf := date(time.February, 9)

	require.NoError(t, s.svc.AddCourse(ctx, "alice", catalog.CodeEECS16B))
	require.NoError(t, s.svc.AddCourse(ctx, "alice", catalog.CodeDATAC8))

	var res *service.RefreshResult
	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		var err error
		res, err = s.svc.Refresh(ctx, "alice", asOf)
		assert.NoError(t, err)
	}()
	<-fetcher.entered

	removeDone := make(chan struct{})
	go func() {
		defer close(removeDone)
		assert.NoError(t, s.svc.RemoveCourse(ctx, "alice", catalog.CodeDATAC8))
	}()
	select {
	case <-removeDone:
	case <-time.After(2 * time.Second):
		close(fetcher.release)
		t.Fatal("remove course blocked behind an in-flight fetch")
	}

	close(fetcher.release)
	waitFor(t, refreshDone, "refresh")
	assert.Equal(t, []string{catalog.CodeEECS16B}, res.Synced)

	state := s.state(t, "alice")
	assert.NotContains(t, state.Courses(), catalog.CodeDATAC8)
	assert.NotEmpty(t, state.Pending[catalog.CodeEECS16B])
	wm, err := s.repo.GetWatermarks(ctx, "alice")
	require.NoError(t, err)
	assert.NotContains(t, wm, catalog.CodeDATAC8)
	assert.Equal(t, asOf, wm[catalog.CodeEECS16B])
}
