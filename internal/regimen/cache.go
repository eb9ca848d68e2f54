package regimen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=cache_mocks_test.go -package=regimen_test

const (
	oneHour            = 60 * 60
	definitionCacheTTL = oneHour * 6 // regimens are immutable once published
)

type definitionStore interface {
	ListRegimens(ctx context.Context) ([]Regimen, error)
	GetRegimen(ctx context.Context, id int) (*Regimen, error)
	GetWeek(ctx context.Context, regimenID, weekNumber int, variant Variant) (*Week, error)
	ListWeeks(ctx context.Context, regimenID int, variant Variant) ([]Week, error)
}

var _ definitionStore = (*CachedDefinitions)(nil)

// CachedDefinitions caches regimen and week rows. Not-found results are not cached.
type CachedDefinitions struct {
	store definitionStore
	cache *freecache.Cache
}

func NewCachedDefinitions(store definitionStore, cacheSizeMB int) *CachedDefinitions {
	megabyte := 1024 * 1024
	return &CachedDefinitions{
		store: store,
		cache: freecache.NewCache(cacheSizeMB * megabyte),
	}
}

func (c *CachedDefinitions) ListRegimens(ctx context.Context) ([]Regimen, error) {
	var regimens []Regimen
	if c.getCached("regimens", &regimens) {
		return regimens, nil
	}

	regimens, err := c.store.ListRegimens(ctx)
	if err != nil {
		return nil, err
	}

	c.setCached("regimens", regimens)
	return regimens, nil
}

func (c *CachedDefinitions) GetRegimen(ctx context.Context, id int) (*Regimen, error) {
	cacheKey := fmt.Sprintf("regimen::%d", id)
	var reg Regimen
	if c.getCached(cacheKey, &reg) {
		return &reg, nil
	}

	found, err := c.store.GetRegimen(ctx, id)
	if err != nil {
		return nil, err
	}

	c.setCached(cacheKey, found)
	return found, nil
}

func (c *CachedDefinitions) GetWeek(ctx context.Context, regimenID, weekNumber int, variant Variant) (*Week, error) {
	cacheKey := fmt.Sprintf("week::%d::%d::%s", regimenID, weekNumber, variant)
	var week Week
	if c.getCached(cacheKey, &week) {
		return &week, nil
	}

	found, err := c.store.GetWeek(ctx, regimenID, weekNumber, variant)
	if err != nil {
		return nil, err
	}

	c.setCached(cacheKey, found)
	return found, nil
}

func (c *CachedDefinitions) ListWeeks(ctx context.Context, regimenID int, variant Variant) ([]Week, error) {
	cacheKey := fmt.Sprintf("weeks::%d::%s", regimenID, variant)
	var weeks []Week
	if c.getCached(cacheKey, &weeks) {
		return weeks, nil
	}

	weeks, err := c.store.ListWeeks(ctx, regimenID, variant)
	if err != nil {
		return nil, err
	}

	c.setCached(cacheKey, weeks)
	return weeks, nil
}

func (c *CachedDefinitions) getCached(key string, v any) bool {
	cachedBytes, err := c.cache.Get([]byte(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cachedBytes, v); err != nil {
		log.Errorf("failed to unmarshal cached [%s]: %s", key, err)
		return false
	}
	log.Tracef("found [%s] in cache", key)
	return true
}

func (c *CachedDefinitions) setCached(key string, v any) {
	valBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal [%s] for cache: %s", key, err)
		return
	}
	if err := c.cache.Set([]byte(key), valBytes, definitionCacheTTL); err != nil {
		log.Errorf("failed to write cache for [%s]: %s", key, err)
	}
}
