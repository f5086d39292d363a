package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Service handles catalog queries with a best-effort Redis cache in front
type Service struct {
	repo     Repository
	redis    *redis.Client // nil if Redis disabled
	cacheTTL time.Duration
}

// NewService creates marketplace service
func NewService(repo Repository, rdb *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		redis:    rdb,
		cacheTTL: cacheTTL,
	}
}

type cachedPage struct {
	Items []*CatalogItem `json:"items"`
	Total int            `json:"total"`
}

// Search returns the catalog page for the given parameters. Cache failures
// never fail the request, they just fall through to Postgres.
func (s *Service) Search(ctx context.Context, p SearchParams) ([]*CatalogItem, int, error) {
	key := cacheKey(p)

	if s.redis != nil && s.cacheTTL > 0 {
		if raw, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			var page cachedPage
			if err := json.Unmarshal(raw, &page); err == nil {
				return page.Items, page.Total, nil
			}
		}
	}

	items, total, err := s.repo.Search(ctx, p)
	if err != nil {
		return nil, 0, err
	}

	if s.redis != nil && s.cacheTTL > 0 {
		raw, err := json.Marshal(cachedPage{Items: items, Total: total})
		if err == nil {
			if err := s.redis.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("marketplace cache write failed")
			}
		}
	}

	return items, total, nil
}

func cacheKey(p SearchParams) string {
	min, max := int64(-1), int64(-1)
	if p.MinPrice != nil {
		min = *p.MinPrice
	}
	if p.MaxPrice != nil {
		max = *p.MaxPrice
	}
	return fmt.Sprintf("marketplace:%s:%d:%d:%s:%d:%d", p.Search, min, max, p.Sort, p.Page, p.Limit)
}
