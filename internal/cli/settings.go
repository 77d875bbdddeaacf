package cli

import (
	"os"

	"github.com/factgate/factgate/internal/model"
	"github.com/spf13/viper"
)

// buildConfig layers viper (config file + FACTGATE_* env) over the
// documented defaults, field by field. There is no deep merge: only keys
// that are actually set override anything, so a sparse config file can
// never null out a threshold.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	setInt := func(key string, dst *int) {
		if viper.IsSet(key) {
			*dst = viper.GetInt(key)
		}
	}
	setFloat := func(key string, dst *float64) {
		if viper.IsSet(key) {
			*dst = viper.GetFloat64(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if viper.IsSet(key) {
			*dst = viper.GetBool(key)
		}
	}
	setString := func(key string, dst *string) {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}

	setInt("gate.critical_threshold", &cfg.Gate.CriticalThreshold)
	setInt("gate.major_threshold", &cfg.Gate.MajorThreshold)
	setInt("gate.minor_threshold", &cfg.Gate.MinorThreshold)
	setInt("gate.overall_threshold", &cfg.Gate.OverallThreshold)
	setFloat("gate.critical_weight", &cfg.Gate.CriticalWeight)
	setFloat("gate.major_weight", &cfg.Gate.MajorWeight)
	setFloat("gate.minor_weight", &cfg.Gate.MinorWeight)
	setBool("gate.block_on_critical_failure", &cfg.Gate.BlockOnCriticalFailure)

	setInt("retry.max_retries", &cfg.Retry.MaxRetries)
	if viper.IsSet("retry.backoff_ms") {
		if ms := viper.GetIntSlice("retry.backoff_ms"); len(ms) > 0 {
			cfg.Retry.BackoffMs = ms
		}
	}
	if viper.IsSet("retry.fallback_strategy") {
		cfg.Retry.FallbackStrategy = model.FallbackStrategy(viper.GetString("retry.fallback_strategy"))
	}

	setInt("breaker.threshold", &cfg.Breaker.Threshold)
	setInt("breaker.reset_timeout_ms", &cfg.Breaker.ResetTimeoutMs)

	setString("oracle.provider", &cfg.Oracle.Provider)
	setString("oracle.model", &cfg.Oracle.Model)
	setString("oracle.base_url", &cfg.Oracle.BaseURL)
	setInt("oracle.timeout_seconds", &cfg.Oracle.Timeout)
	setString("oracle.http_proxy", &cfg.Oracle.HTTPProxy)
	setString("oracle.https_proxy", &cfg.Oracle.HTTPSProxy)
	setString("oracle.no_proxy", &cfg.Oracle.NoProxy)

	setBool("cache.enabled", &cfg.Cache.Enabled)
	setString("cache.dir", &cfg.Cache.Dir)
	setInt("cache.ttl_days", &cfg.Cache.TTLDays)

	setString("review.queue_path", &cfg.Review.QueuePath)
	setString("review.history_path", &cfg.Review.HistoryPath)
	if viper.IsSet("review.sensitive_topics") {
		cfg.Review.SensitiveTopics = viper.GetStringSlice("review.sensitive_topics")
	}
	setInt("review.retention_days", &cfg.Review.RetentionDays)

	setString("audit.dir", &cfg.Audit.Dir)

	setFloat("rate_limit.requests_per_second", &cfg.RateLimit.RequestsPerSecond)
	setInt("rate_limit.burst_size", &cfg.RateLimit.BurstSize)
	setInt("concurrency.workers", &cfg.Concurrency.Workers)

	setBool("output.verbose", &cfg.Output.Verbose)
	setBool("output.include_footer", &cfg.Output.IncludeFooter)

	// API key comes from the environment only
	cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")

	return cfg
}
