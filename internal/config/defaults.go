package config

import "github.com/spf13/viper"

// SetDefaults sets default values for all configuration fields.
func SetDefaults(cfg *Config) {
	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "auto"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 50
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28
	}

	// Reporting sink defaults
	if cfg.Store.Path == "" {
		cfg.Store.Path = "data/marketsim.db"
	}
	if cfg.Trace.Dir == "" {
		cfg.Trace.Dir = "data/traces"
	}
	if cfg.Metrics.TextfilePath == "" {
		cfg.Metrics.TextfilePath = "data/marketsim.prom"
	}
}

// registerKeys makes every key visible to viper so that environment
// variables override it even when no config file sets it.
func registerKeys(v *viper.Viper) {
	var zero Config
	SetDefaults(&zero)

	v.SetDefault("simulation.scenario", "")
	v.SetDefault("simulation.periods", 0)
	v.SetDefault("simulation.interval", "0s")
	v.SetDefault("simulation.verbose", false)

	v.SetDefault("logging.level", zero.Logging.Level)
	v.SetDefault("logging.format", zero.Logging.Format)
	v.SetDefault("logging.output", zero.Logging.Output)
	v.SetDefault("logging.file_path", "")
	v.SetDefault("logging.rotation.max_size", zero.Logging.Rotation.MaxSize)
	v.SetDefault("logging.rotation.max_backups", zero.Logging.Rotation.MaxBackups)
	v.SetDefault("logging.rotation.max_age", zero.Logging.Rotation.MaxAge)
	v.SetDefault("logging.rotation.compress", false)

	v.SetDefault("store.enabled", false)
	v.SetDefault("store.path", zero.Store.Path)
	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.dir", zero.Trace.Dir)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile_path", zero.Metrics.TextfilePath)
}
