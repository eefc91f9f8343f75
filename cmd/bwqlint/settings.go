package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bwqlint/internal/config"
	"bwqlint/internal/driver"
)

// cacheApp names the directory under the user cache root.
const cacheApp = "bwqlint"

// loadConfig reads --config, or discovers a config from the working
// directory upwards.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

// buildOptions turns the config into driver options; explicit flags win
// over config values.
func buildOptions(cmd *cobra.Command, cfg config.Config) (driver.Options, error) {
	rs, err := cfg.RuleSet()
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.Options{
		Rules:          rs,
		MaxDiagnostics: cfg.MaxDiagnostics,
		Jobs:           cfg.Jobs,
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics >= 0 {
		opts.MaxDiagnostics = maxDiagnostics
	}
	if opts.Timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return opts, nil
}

// resolveFormat picks the output format: flag, then config, then pretty.
func resolveFormat(flag string, cfg config.Config) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		format = cfg.Format
	}
	if format == "" {
		format = "pretty"
	}
	if !slices.Contains(config.Formats, format) {
		return "", fmt.Errorf("unknown format: %s (expected: %s)", format, strings.Join(config.Formats, "|"))
	}
	return format, nil
}

// openCache opens the result cache. Failures are logged and linting goes
// on uncached.
func openCache(cfg config.Config, logger *zap.Logger) *driver.DiskCache {
	var (
		cache *driver.DiskCache
		err   error
	)
	if cfg.CacheDir != "" {
		cache, err = driver.OpenDiskCacheAt(cfg.CacheDir)
	} else {
		cache, err = driver.OpenDiskCache(cacheApp)
	}
	if err != nil {
		logger.Warn("result cache disabled", zap.Error(err))
		return nil
	}
	logger.Debug("result cache", zap.String("dir", cache.Dir()))
	return cache
}
