// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// FacilityCachePrefix is the prefix used for cached facility metadata.
const FacilityCachePrefix = "facility:"

// FacilityCacheTTL is the time-to-live for cached facility metadata.
const FacilityCacheTTL = 10 * time.Minute

// BookingSessionTTL is how long an in-flight booking session survives in Redis.
const BookingSessionTTL = 30 * time.Minute
