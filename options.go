package lawmatch

import "go.uber.org/zap"

type clientConfig struct {
	addrs       []string
	password    string
	listLimit   int
	topMatches  int
	pageSize    int
	fetchLimit  int
	persistTopK int
	logger      *zap.Logger
}

// Option configures the embedded Client.
type Option func(*clientConfig)

// WithRedis sets the Redis connection addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) { c.addrs = addrs }
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) { c.password = password }
}

// WithListLimit bounds the full-listing fallback fetch.
func WithListLimit(n int) Option {
	return func(c *clientConfig) { c.listLimit = n }
}

// WithLimits overrides the composition bounds. Zero values keep defaults.
func WithLimits(topMatches, pageSize, fetchLimit, persistTopK int) Option {
	return func(c *clientConfig) {
		c.topMatches = topMatches
		c.pageSize = pageSize
		c.fetchLimit = fetchLimit
		c.persistTopK = persistTopK
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
