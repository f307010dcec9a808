package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	courseListTTL = 10 * time.Minute
	categoryTTL   = 1 * time.Hour
	jobListTTL    = 15 * time.Minute
)

// CatalogCache keeps the read-mostly catalog responses in redis so repeated
// landing-page loads skip the backend. Misses are silent; the caller just
// fetches and fills.
type CatalogCache struct {
	client *redis.Client
}

func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

func (c *CatalogCache) CourseListKey(search, category string, limit, offset int) string {
	return fmt.Sprintf("catalog:courses:%s:%s:%d:%d", search, category, limit, offset)
}

func (c *CatalogCache) GetCourseList(ctx context.Context, key string, out interface{}) bool {
	return c.get(ctx, key, out)
}

func (c *CatalogCache) SetCourseList(ctx context.Context, key string, v interface{}) {
	c.set(ctx, key, v, courseListTTL)
}

func (c *CatalogCache) GetCategories(ctx context.Context, out interface{}) bool {
	return c.get(ctx, "catalog:categories", out)
}

func (c *CatalogCache) SetCategories(ctx context.Context, v interface{}) {
	c.set(ctx, "catalog:categories", v, categoryTTL)
}

func (c *CatalogCache) GetJobs(ctx context.Context, out interface{}) bool {
	return c.get(ctx, "catalog:jobs", out)
}

func (c *CatalogCache) SetJobs(ctx context.Context, v interface{}) {
	c.set(ctx, "catalog:jobs", v, jobListTTL)
}

func (c *CatalogCache) get(ctx context.Context, key string, out interface{}) bool {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *CatalogCache) set(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if data, err := json.Marshal(v); err == nil {
		c.client.Set(ctx, key, data, ttl)
	}
}
