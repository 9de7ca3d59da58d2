package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"quiz-league/internal/cache"
	"quiz-league/internal/domain"
	"quiz-league/internal/logger"
	"quiz-league/internal/week"
)

const (
	listFieldActive   = "active"
	listFieldArchived = "archived"
)

func weekListField(weekOf time.Time) string {
	return "week:" + weekOf.Format(week.DateLayout)
}

// QuestionCache is a read-through cache in front of the question listings.
// Listings live in a hash named by a generation counter kept in the store.
// Invalidate bumps the counter, so a fill that raced an invalidation lands
// in a retired hash that no reader consults. Settings are fixed at
// construction; with caching disabled every call goes straight to the loader.
type QuestionCache struct {
	store    domain.Cache
	settings domain.CacheSettings
	group    singleflight.Group
}

func NewQuestionCache(store domain.Cache, settings domain.CacheSettings) *QuestionCache {
	return &QuestionCache{store: store, settings: settings}
}

// Settings returns the effective settings.
func (c *QuestionCache) Settings() domain.CacheSettings {
	if c.store == nil {
		return domain.CacheSettings{Enabled: false, QuestionsTTL: c.settings.QuestionsTTL}
	}
	return c.settings
}

func (c *QuestionCache) enabled() bool {
	return c.store != nil && c.settings.Enabled
}

func (c *QuestionCache) generation(ctx context.Context) (int64, error) {
	raw, err := c.store.Get(ctx, cache.QuestionGenerationKey())
	if errors.Is(err, domain.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

// List returns the listing stored under field, filling it from load on a miss.
// Concurrent misses for the same field and generation share one load.
func (c *QuestionCache) List(ctx context.Context, field string, load func(context.Context) ([]*domain.Question, error)) ([]*domain.Question, error) {
	if !c.enabled() {
		return load(ctx)
	}

	gen, err := c.generation(ctx)
	if err != nil {
		logger.Get().Warn("QuestionCache: reading generation failed, bypassing cache", zap.String("field", field), zap.Error(err))
		return load(ctx)
	}

	key := cache.QuestionListsKey(gen)
	raw, err := c.store.HGet(ctx, key, field)
	switch {
	case err == nil:
		var questions []*domain.Question
		if errUnmarshal := json.Unmarshal([]byte(raw), &questions); errUnmarshal == nil {
			return questions, nil
		} else {
			logger.Get().Warn("QuestionCache: failed to unmarshal cached listing", zap.String("field", field), zap.Error(errUnmarshal))
		}
	case !errors.Is(err, domain.ErrCacheMiss):
		logger.Get().Warn("QuestionCache: HGet failed, falling back to store", zap.String("field", field), zap.Error(err))
	}

	v, err, _ := c.group.Do(key+"|"+field, func() (interface{}, error) {
		questions, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.storeList(ctx, key, field, questions)
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Question), nil
}

func (c *QuestionCache) storeList(ctx context.Context, key, field string, questions []*domain.Question) {
	data, err := json.Marshal(questions)
	if err != nil {
		logger.Get().Error("QuestionCache: failed to marshal listing", zap.String("field", field), zap.Error(err))
		return
	}
	if err := c.store.HSet(ctx, key, field, string(data)); err != nil {
		logger.Get().Warn("QuestionCache: HSet failed", zap.String("field", field), zap.Error(err))
		return
	}
	if err := c.store.Expire(ctx, key, c.settings.QuestionsTTL); err != nil {
		logger.Get().Warn("QuestionCache: Expire failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate retires every cached listing. Retired hashes expire on their TTL.
func (c *QuestionCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	gen, err := c.store.Incr(ctx, cache.QuestionGenerationKey())
	if err != nil {
		logger.Get().Warn("QuestionCache: invalidation failed", zap.Error(err))
		return
	}
	logger.Get().Debug("QuestionCache: listings invalidated", zap.Int64("generation", gen))
}
