package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coursework_service/internal/model"
	"coursework_service/pkg/logging"

	"go.uber.org/zap"
)

const (
	viewPending   = "pending"
	viewCompleted = "completed"
)

type ByteCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// ViewCache stores rendered assignment views per user. Any mutation of a
// user's data must call Invalidate.
type ViewCache struct {
	cache ByteCache
	ttl   time.Duration
}

func NewViewCache(cache ByteCache, ttl time.Duration) *ViewCache {
	return &ViewCache{cache: cache, ttl: ttl}
}

func viewKey(username, view string) string {
	return fmt.Sprintf("views:%s:%s", username, view)
}

func (c *ViewCache) GetView(ctx context.Context, username, view string) ([]model.AssignmentRecord, bool) {
	data, ok := c.cache.Get(ctx, viewKey(username, view))
	if !ok {
		return nil, false
	}
	var records []model.AssignmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Warn(ctx, "Discarding undecodable cached view", zap.String("view", view), zap.Error(err))
		}
		return nil, false
	}
	if records == nil {
		records = []model.AssignmentRecord{}
	}
	return records, true
}

func (c *ViewCache) SetView(ctx context.Context, username, view string, records []model.AssignmentRecord) {
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	c.cache.Set(ctx, viewKey(username, view), data, c.ttl)
}

func (c *ViewCache) Invalidate(ctx context.Context, username string) {
	c.cache.Delete(ctx, viewKey(username, viewPending), viewKey(username, viewCompleted))
}
