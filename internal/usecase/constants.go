package usecase

import "time"

const (
	// accountCachePrefix namespaces cached account aggregates.
	accountCachePrefix = "account:"

	// DefaultCacheTTL bounds how long a cached account may outlive its last
	// read. Mutations invalidate synchronously, so the TTL only matters for
	// writes performed outside this process.
	DefaultCacheTTL = 5 * time.Minute
)
