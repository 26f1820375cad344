package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mfcastro/contas/internal/domain"
)

// accountCache is a nil-safe read-through cache for assembled accounts.
// Cache failures are swallowed: a broken cache degrades to database reads,
// it never fails an operation.
type accountCache struct {
	cache Cache
	ttl   time.Duration
}

func newAccountCache(cache Cache, ttl time.Duration) accountCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return accountCache{cache: cache, ttl: ttl}
}

func (c accountCache) get(ctx context.Context, id string) (*domain.Account, bool) {
	if c.cache == nil {
		return nil, false
	}

	raw, err := c.cache.Get(ctx, accountCachePrefix+id)
	if err != nil {
		// ErrCacheMiss and transport errors alike: read from the database.
		return nil, false
	}

	var account domain.Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		_ = c.cache.Delete(ctx, accountCachePrefix+id)
		return nil, false
	}

	return &account, true
}

func (c accountCache) set(ctx context.Context, account *domain.Account) {
	if c.cache == nil {
		return
	}

	raw, err := json.Marshal(account)
	if err != nil {
		return
	}

	_ = c.cache.Set(ctx, accountCachePrefix+account.ID, string(raw), c.ttl)
}

func (c accountCache) invalidate(ctx context.Context, id string) {
	if c.cache == nil {
		return
	}

	_ = c.cache.Delete(ctx, accountCachePrefix+id)
}
