package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Load reads the monitor's configuration from the process environment. A
// .env file in the working directory is loaded first, if present, mirroring
// the upstream source's own startup sequence; it never overrides variables
// already set in the real environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env file")
	}

	cfg := &Config{
		SolanaRPCURL:          os.Getenv("SOLANA_RPC_URL"),
		Port:                  defaultPort,
		LogLevel:              defaultLogLevel,
		MonitorIntervalMS:     defaultMonitorIntervalMS,
		MonitoringDepth:       defaultMonitoringDepth,
		WorkersCount:          defaultWorkersCount,
		PreferredIntervalSize: defaultPreferredIntervalSize,
		MinIntervalSize:       defaultMinIntervalSize,
		CacheCapacity:         defaultCacheCapacity,
	}

	if cfg.SolanaRPCURL == "" {
		return nil, errors.New("SOLANA_RPC_URL is required")
	}

	if err := overrideInt(&cfg.Port, "PORT"); err != nil {
		return nil, err
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if err := overrideUint64(&cfg.MonitorIntervalMS, "MONITOR_INTERVAL_MS"); err != nil {
		return nil, err
	}
	if err := overrideUint64(&cfg.MonitoringDepth, "MONITORING_DEPTH"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.WorkersCount, "WORKERS_COUNT"); err != nil {
		return nil, err
	}
	// PREFERRED_INTERVAL_SIZE takes precedence; INTERVAL_SIZE is its alias.
	if err := overrideUint64(&cfg.PreferredIntervalSize, "INTERVAL_SIZE"); err != nil {
		return nil, err
	}
	if err := overrideUint64(&cfg.PreferredIntervalSize, "PREFERRED_INTERVAL_SIZE"); err != nil {
		return nil, err
	}
	if err := overrideUint64(&cfg.MinIntervalSize, "MIN_INTERVAL_SIZE"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.CacheCapacity, "CACHE_CAPACITY"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func overrideInt(dst *int, name string) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrapf(err, "parse %s", name)
	}
	*dst = n
	return nil
}

func overrideUint64(dst *uint64, name string) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "parse %s", name)
	}
	*dst = n
	return nil
}
