package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

const keyPrefix = "apartments:page:"

// ListingCache keeps rendered listing pages in Redis for a short TTL.
// Every method degrades to a miss on any Redis failure so the listing
// never depends on the cache being up. A nil *ListingCache is valid and
// disables caching entirely.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewListingCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *ListingCache {
	if client == nil {
		return nil
	}
	return &ListingCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (c *ListingCache) GetPage(ctx context.Context, page, minRent, maxRent int) (*model.ApartmentPage, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, pageKey(page, minRent, maxRent)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Listing cache read failed", "error", err)
		}
		return nil, false
	}

	var result model.ApartmentPage
	if err := json.Unmarshal(data, &result); err != nil {
		c.log.Warn("Listing cache entry corrupt", "error", err)
		return nil, false
	}
	return &result, true
}

func (c *ListingCache) PutPage(ctx context.Context, page, minRent, maxRent int, result *model.ApartmentPage) {
	if c == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("Failed to marshal listing page", "error", err)
		return
	}

	if err := c.client.Set(ctx, pageKey(page, minRent, maxRent), data, c.ttl).Err(); err != nil {
		c.log.Warn("Listing cache write failed", "error", err)
	}
}

// InvalidateListings drops every cached page. Called after any
// availability flip so stale pages never outlive a booking.
func (c *ListingCache) InvalidateListings(ctx context.Context) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("Listing cache invalidation failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Listing cache scan failed", "error", err)
	}
}

func pageKey(page, minRent, maxRent int) string {
	return fmt.Sprintf("%s%d:%d:%d", keyPrefix, page, minRent, maxRent)
}
