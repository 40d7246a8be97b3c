package config

import (
	"os"
	"testing"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"SOLANA_RPC_URL", "PORT", "LOG_LEVEL", "MONITOR_INTERVAL_MS",
		"MONITORING_DEPTH", "WORKERS_COUNT", "INTERVAL_SIZE",
		"PREFERRED_INTERVAL_SIZE", "MIN_INTERVAL_SIZE", "CACHE_CAPACITY",
	} {
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range []string{
			"SOLANA_RPC_URL", "PORT", "LOG_LEVEL", "MONITOR_INTERVAL_MS",
			"MONITORING_DEPTH", "WORKERS_COUNT", "INTERVAL_SIZE",
			"PREFERRED_INTERVAL_SIZE", "MIN_INTERVAL_SIZE", "CACHE_CAPACITY",
		} {
			os.Unsetenv(k)
		}
	})
}

func TestLoad_MissingRPCURL(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SOLANA_RPC_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	os.Setenv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.MonitorIntervalMS != 1000 {
		t.Errorf("MonitorIntervalMS = %d, want 1000", cfg.MonitorIntervalMS)
	}
	if cfg.MonitoringDepth != 1000 {
		t.Errorf("MonitoringDepth = %d, want 1000", cfg.MonitoringDepth)
	}
	if cfg.WorkersCount != 5 {
		t.Errorf("WorkersCount = %d, want 5", cfg.WorkersCount)
	}
	if cfg.PreferredIntervalSize != 100 {
		t.Errorf("PreferredIntervalSize = %d, want 100", cfg.PreferredIntervalSize)
	}
	if cfg.MinIntervalSize != 5 {
		t.Errorf("MinIntervalSize = %d, want 5", cfg.MinIntervalSize)
	}
	if cfg.CacheCapacity != 10000 {
		t.Errorf("CacheCapacity = %d, want 10000", cfg.CacheCapacity)
	}
}

func TestLoad_IntervalSizeAlias(t *testing.T) {
	clearEnv(t)
	os.Setenv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com")
	os.Setenv("INTERVAL_SIZE", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PreferredIntervalSize != 250 {
		t.Errorf("PreferredIntervalSize = %d, want 250", cfg.PreferredIntervalSize)
	}
}

func TestLoad_PreferredIntervalSizeWins(t *testing.T) {
	clearEnv(t)
	os.Setenv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com")
	os.Setenv("INTERVAL_SIZE", "250")
	os.Setenv("PREFERRED_INTERVAL_SIZE", "300")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PreferredIntervalSize != 300 {
		t.Errorf("PreferredIntervalSize = %d, want 300", cfg.PreferredIntervalSize)
	}
}

func TestLoad_InvalidInt(t *testing.T) {
	clearEnv(t)
	os.Setenv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com")
	os.Setenv("WORKERS_COUNT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid WORKERS_COUNT")
	}
}
