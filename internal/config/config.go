package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	constants "sysdoctor/config"
)

// Config represents the application configuration
type Config struct {
	SampleInterval int    `mapstructure:"sample_interval"` // seconds between snapshots
	Capacity       int    `mapstructure:"capacity"`        // ring buffer size
	SaveEvery      int    `mapstructure:"save_every"`      // persist every N appends
	TopProcesses   int    `mapstructure:"top_processes"`   // entries per top-process list
	DiskMounts     int    `mapstructure:"disk_mounts"`     // mounts per disk usage check
	MetricsListen  string `mapstructure:"metrics_listen"`  // self-metrics address, empty = disabled
	DataDir        string `mapstructure:"data_dir"`
}

// DataDir returns the per-user data directory, creating it if needed
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return constants.DATA_DIR_NAME
	}
	dir := filepath.Join(home, constants.DATA_DIR_NAME)
	os.MkdirAll(dir, 0755)
	return dir
}

// SnapshotsPath returns the durable history file location
func (cfg *Config) SnapshotsPath() string {
	return filepath.Join(cfg.DataDir, constants.SNAPSHOTS_FILE)
}

// PIDPath returns the daemon identity record location
func (cfg *Config) PIDPath() string {
	return filepath.Join(cfg.DataDir, constants.PID_FILE)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(DataDir())
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("sample_interval", constants.DEFAULT_SAMPLE_INTERVAL)
	viper.SetDefault("capacity", constants.DEFAULT_CAPACITY)
	viper.SetDefault("save_every", constants.DEFAULT_SAVE_EVERY)
	viper.SetDefault("top_processes", constants.DEFAULT_TOP_PROCESSES)
	viper.SetDefault("disk_mounts", constants.DEFAULT_DISK_MOUNTS)
	viper.SetDefault("metrics_listen", "")
	viper.SetDefault("data_dir", DataDir())

	// Read config file if present
	viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
