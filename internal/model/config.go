package model

import "time"

// Config is the full process configuration. Fields are overridden explicitly
// (flags > env > config file > defaults); there is no deep merge, so a missing
// key can never produce an undefined threshold.
type Config struct {
	Gate        GateConfig        `yaml:"gate" json:"gate"`
	Retry       RetryConfig       `yaml:"retry" json:"retry"`
	Breaker     BreakerConfig     `yaml:"breaker" json:"breaker"`
	Oracle      OracleConfig      `yaml:"oracle" json:"oracle"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Review      ReviewConfig      `yaml:"review" json:"review"`
	Audit       AuditConfig       `yaml:"audit" json:"audit"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" json:"rate_limit"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// GateConfig holds the quality-gate thresholds and weights
type GateConfig struct {
	CriticalThreshold int `yaml:"critical_threshold" json:"critical_threshold"` // Category score a document must reach
	MajorThreshold    int `yaml:"major_threshold" json:"major_threshold"`
	MinorThreshold    int `yaml:"minor_threshold" json:"minor_threshold"`
	OverallThreshold  int `yaml:"overall_threshold" json:"overall_threshold"`

	CriticalWeight float64 `yaml:"critical_weight" json:"critical_weight"`
	MajorWeight    float64 `yaml:"major_weight" json:"major_weight"`
	MinorWeight    float64 `yaml:"minor_weight" json:"minor_weight"`

	// BlockOnCriticalFailure blocks publication whenever the critical category
	// fails, independent of the overall score
	BlockOnCriticalFailure bool `yaml:"block_on_critical_failure" json:"block_on_critical_failure"`
}

// FallbackStrategy selects what happens after retries are exhausted
type FallbackStrategy string

const (
	FallbackCache  FallbackStrategy = "cache"  // Invoke the supplied fallback (e.g. cached verdict)
	FallbackSkip   FallbackStrategy = "skip"   // Give up quietly
	FallbackManual FallbackStrategy = "manual" // Give up; a human will handle it
)

// RetryConfig controls the retry executor around oracle calls
type RetryConfig struct {
	MaxRetries       int              `yaml:"max_retries" json:"max_retries"`
	BackoffMs        []int            `yaml:"backoff_ms" json:"backoff_ms"` // Clamped to the last value beyond its length
	FallbackStrategy FallbackStrategy `yaml:"fallback_strategy" json:"fallback_strategy"`
}

// BreakerConfig controls the circuit breaker around the oracle
type BreakerConfig struct {
	Threshold      int `yaml:"threshold" json:"threshold"`
	ResetTimeoutMs int `yaml:"reset_timeout_ms" json:"reset_timeout_ms"`
}

// ResetTimeout returns the reset timeout as a duration
func (b BreakerConfig) ResetTimeout() time.Duration {
	return time.Duration(b.ResetTimeoutMs) * time.Millisecond
}

// OracleConfig configures the external verification oracle
type OracleConfig struct {
	Provider string `yaml:"provider" json:"provider"` // "openai" or "" (disabled)
	Model    string `yaml:"model" json:"model"`
	APIKey   string `yaml:"-" json:"-"` // From environment only, never persisted
	BaseURL  string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout  int    `yaml:"timeout_seconds" json:"timeout_seconds"`

	HTTPProxy  string `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// CacheConfig configures the verdict cache
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Dir     string `yaml:"dir" json:"dir"`
	TTLDays int    `yaml:"ttl_days" json:"ttl_days"`
}

// TTL returns the cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLDays) * 24 * time.Hour
}

// ReviewConfig configures the human review queue
type ReviewConfig struct {
	QueuePath       string   `yaml:"queue_path" json:"queue_path"`
	HistoryPath     string   `yaml:"history_path" json:"history_path"`
	SensitiveTopics []string `yaml:"sensitive_topics" json:"sensitive_topics"`
	RetentionDays   int      `yaml:"retention_days" json:"retention_days"` // Terminal cases older than this are purged
}

// AuditConfig configures the auto-fix audit trail
type AuditConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// RateLimitConfig throttles oracle calls
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" json:"burst_size"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the documented defaults. Deployments override
// individual fields via config file, FACTGATE_* env vars, or flags.
func DefaultConfig() *Config {
	return &Config{
		Gate: GateConfig{
			CriticalThreshold:      100,
			MajorThreshold:         85,
			MinorThreshold:         70,
			OverallThreshold:       80,
			CriticalWeight:         0.3,
			MajorWeight:            0.3,
			MinorWeight:            0.4,
			BlockOnCriticalFailure: true,
		},
		Retry: RetryConfig{
			MaxRetries:       3,
			BackoffMs:        []int{1000, 2000, 4000},
			FallbackStrategy: FallbackCache,
		},
		Breaker: BreakerConfig{
			Threshold:      5,
			ResetTimeoutMs: 60000,
		},
		Oracle: OracleConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			Timeout:  30,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".factgate/cache",
			TTLDays: 7,
		},
		Review: ReviewConfig{
			QueuePath:   ".factgate/review-queue.json",
			HistoryPath: ".factgate/venue-history.json",
			SensitiveTopics: []string{
				"사고", "사망", "화재", "철거", "폐업",
				"accident", "death", "fire", "demolition", "closure",
			},
			RetentionDays: 30,
		},
		Audit: AuditConfig{
			Dir: ".factgate/audit",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
