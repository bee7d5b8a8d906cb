package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist:access:"

// Revoked access tokens live in Redis until their natural expiry. Without a
// configured client the blacklist degrades to a no-op: sign-out still
// deletes the refresh session, but the short-lived access token stays valid
// until it expires on its own.
var blacklistClient *redis.Client

// SetBlacklistClient installs the Redis client backing the blacklist.
// Passing nil disables revocation checks.
func SetBlacklistClient(c *redis.Client) {
	blacklistClient = c
}

// BlacklistAccessToken revokes the token for the rest of its lifetime.
func BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	if blacklistClient == nil {
		return nil
	}
	return blacklistClient.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err()
}

// IsAccessTokenBlacklisted reports whether the token has been revoked.
func IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if blacklistClient == nil {
		return false, nil
	}
	n, err := blacklistClient.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
