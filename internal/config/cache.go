package config

import (
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is
// disabled.  Methods lists the HTTP methods to cache (e.g. GET, HEAD).  TTL
// defines the lifetime of cache entries.  Prefix namespaces the keys and
// MaxBodyBytes caps the size of a stored response.
type CacheConfig struct {
	Enabled      bool          `env:"CACHE_ENABLED"        env-default:"true"`
	MethodList   []string      `env:"CACHE_METHODS"        env-default:"GET" env-separator:","`
	TTL          time.Duration `env:"CACHE_TTL"            env-default:"30s"`
	Prefix       string        `env:"CACHE_PREFIX"         env-default:"cache"`
	MaxBodyBytes int           `env:"CACHE_MAX_BODY_BYTES" env-default:"1048576"`

	Methods map[string]bool // derived from MethodList
}

// LoadCacheConfig reads environment variables to build a CacheConfig.  All
// methods are upper-cased.
func LoadCacheConfig() CacheConfig {
	var cfg CacheConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		cfg = CacheConfig{MethodList: []string{"GET"}, TTL: 30 * time.Second, Prefix: "cache"}
	}
	cfg.Methods = parseMethods(cfg.MethodList)
	if cfg.TTL <= 0 {
		cfg.TTL = time.Second
	}
	return cfg
}

func parseMethods(list []string) map[string]bool {
	m := map[string]bool{}
	for _, p := range list {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
