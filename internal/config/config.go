package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/assetd/internal/connector"
	"github.com/MrSnakeDoc/assetd/internal/resource"
)

type Config struct {
	// Listener
	Scheme          string        // "http" | "https" (default depends on TLS files)
	Address         string        // ex: "0.0.0.0"
	Port            int           // ex: 8080
	TLSCertFile     string        // optional, enables TLS together with TLSKeyFile
	TLSKeyFile      string        // optional
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Resources
	ResourceDir string           // directory served instead of the embedded bundle (empty = bundle)
	MountsFile  string           // optional YAML file listing mounts
	Mounts      []resource.Mount // validated mounts, from MountsFile or the ASSETD_PREFIX/ROOT pair

	// Access restrictions
	AllowedHosts     []string // optional, restrict static mounts to these Host headers
	AllowedCIDRS     []string // optional, restrict healthz/readyz/stats to these IPs
	TrustProxy       bool     // true => trust X-Forwarded-For headers
	RateBurst        int      // per-IP burst on static mounts, 0 disables
	RateRefillPerMin int      // per-IP refill rate

	// Redis hit counters (optional, empty address disables them)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisPoolSize       int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
}

func Load() *Config {
	cfg := &Config{
		// Listener
		Address:         getenv("ASSETD_ADDRESS", "0.0.0.0"),
		Port:            getenvInt("ASSETD_PORT", 8080),
		TLSCertFile:     getenv("ASSETD_TLS_CERT_FILE", ""),
		TLSKeyFile:      getenv("ASSETD_TLS_KEY_FILE", ""),
		ShutdownTimeout: mustDuration("ASSETD_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("ASSETD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ASSETD_PRETTY_LOG", true),

		// Resources
		ResourceDir: getenv("ASSETD_RESOURCE_DIR", ""),
		MountsFile:  getenv("ASSETD_MOUNTS_FILE", ""),

		// Access restrictions
		AllowedHosts:     splitAndTrim(getenv("ASSETD_ALLOWED_HOSTS", "")),
		AllowedCIDRS:     splitAndTrim(getenv("ASSETD_ALLOWED_CIDRS", "")),
		TrustProxy:       mustBool("ASSETD_TRUST_PROXY", false),
		RateBurst:        getenvInt("ASSETD_RATE_BURST", 0),
		RateRefillPerMin: getenvInt("ASSETD_RATE_REFILL_PER_MIN", 600),

		// Redis settings
		RedisAddr:           getenv("ASSETD_REDIS_ADDR", ""),
		RedisUser:           getenv("ASSETD_REDIS_USERNAME", ""),
		RedisPassword:       getenv("ASSETD_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("ASSETD_REDIS_DB", 0),
		RedisPoolSize:       getenvInt("ASSETD_REDIS_POOL_SIZE", 10),
		RedisDT:             mustDuration("ASSETD_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("ASSETD_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("ASSETD_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisConnectTimeout: mustDuration("ASSETD_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("ASSETD_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("ASSETD_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("ASSETD_REDIS_PING_TIMEOUT", 5*time.Second),
	}

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		panic("❌ FATAL: ASSETD_TLS_CERT_FILE and ASSETD_TLS_KEY_FILE must be set together")
	}
	defaultScheme := "http"
	if cfg.Secure() {
		defaultScheme = "https"
	}
	cfg.Scheme = getenv("ASSETD_SCHEME", defaultScheme)

	mounts, err := loadMounts(cfg.MountsFile)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}
	cfg.Mounts = mounts

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Secure reports whether TLS is configured.
func (c *Config) Secure() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Connector describes the listener built from this configuration.
func (c *Config) Connector() (connector.Connector, error) {
	return connector.New(c.Secure(), c.Scheme, c.Address, c.Port)
}

// loadMounts reads the mounts file when one is configured, otherwise builds
// the single mount described by ASSETD_PREFIX, ASSETD_ROOT and ASSETD_WELCOME_FILE.
func loadMounts(file string) ([]resource.Mount, error) {
	if file != "" {
		return NewMountsLoader(file).Load()
	}
	m, err := resource.NewMount(
		getenv("ASSETD_PREFIX", "/static"),
		getenv("ASSETD_ROOT", "/"),
		getenv("ASSETD_WELCOME_FILE", resource.DefaultWelcome),
	)
	if err != nil {
		return nil, err
	}
	return []resource.Mount{m}, nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
