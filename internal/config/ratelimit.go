package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// RateLimitConfig configures the token bucket applied to public write
// routes.  KeyStrategy is one of ip, route, ip_route (default).
type RateLimitConfig struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED"         env-default:"true"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY"        env-default:"20"`
	RefillTokens   int           `env:"RATE_LIMIT_REFILL_TOKENS"   env-default:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" env-default:"3s"`
	TTL            time.Duration `env:"RATE_LIMIT_TTL"             env-default:"10m"`
	KeyStrategy    string        `env:"RATE_LIMIT_KEY_STRATEGY"    env-default:"ip_route"`
	Prefix         string        `env:"RATE_LIMIT_PREFIX"          env-default:"rl"`
	Debug          bool          `env:"RATE_LIMIT_DEBUG"           env-default:"false"`
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables.
func LoadRateLimitConfig() RateLimitConfig {
	var def RateLimitConfig
	if err := cleanenv.ReadEnv(&def); err != nil {
		def = RateLimitConfig{Enabled: true, KeyStrategy: "ip_route", Prefix: "rl"}
	}
	return def.normalized()
}

// normalized clamps nonsensical values so the limiter script never divides
// by zero or expires keys before a refill could happen.
func (c RateLimitConfig) normalized() RateLimitConfig {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	minTTL := 5 * c.RefillInterval
	if c.TTL < minTTL {
		c.TTL = minTTL
	}
	return c
}
