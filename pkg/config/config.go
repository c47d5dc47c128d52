package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/datatug/netexplorer/pkg/explorer"
	"github.com/datatug/netexplorer/pkg/fsutils"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "NETEXPLORER"
	DefaultConfigFile = "~/.netexplorer/config.yaml"
)

// Config holds the explorer settings
type Config struct {
	// Engine settings
	SampleSize           int           `mapstructure:"sample_size"`            // folders sampled by a diagnosis
	LargeFolderThreshold int           `mapstructure:"large_folder_threshold"` // files above which a folder is large
	FolderCountCap       int           `mapstructure:"folder_count_cap"`       // children counted per listed folder
	ListerWorkers        int           `mapstructure:"lister_workers"`         // concurrent child counts
	SupersedeWait        time.Duration `mapstructure:"supersede_wait"`         // wait for a cancelled session

	// Logging settings
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error
	LogFile  string `mapstructure:"log_file"`  // empty logs to stderr

	StateDir string `mapstructure:"state_dir"` // where last_path is kept
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("sample_size", explorer.DefaultSampleSize)
	v.SetDefault("large_folder_threshold", explorer.DefaultLargeFolderThreshold)
	v.SetDefault("folder_count_cap", explorer.DefaultFolderCountCap)
	v.SetDefault("lister_workers", explorer.DefaultListerWorkers)
	v.SetDefault("supersede_wait", explorer.DefaultSupersedeWait)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("state_dir", "~/.netexplorer")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// LoadConfig reads defaults, the optional YAML config file and NETEXPLORER_*
// environment variables. An explicitly given file must exist; the default one may not.
func LoadConfig(file string) (*Config, error) {
	v := newViper()

	explicit := file != ""
	if !explicit {
		file = DefaultConfigFile
	}
	v.SetConfigFile(fsutils.ExpandHome(file))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.StateDir = fsutils.ExpandHome(cfg.StateDir)
	cfg.LogFile = fsutils.ExpandHome(cfg.LogFile)
	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.SampleSize <= 0 {
		return fmt.Errorf("sample_size must be positive, got %d", c.SampleSize)
	}
	if c.LargeFolderThreshold <= 0 {
		return fmt.Errorf("large_folder_threshold must be positive, got %d", c.LargeFolderThreshold)
	}
	if c.FolderCountCap <= 0 {
		return fmt.Errorf("folder_count_cap must be positive, got %d", c.FolderCountCap)
	}
	if c.ListerWorkers <= 0 {
		return fmt.Errorf("lister_workers must be positive, got %d", c.ListerWorkers)
	}
	return nil
}

// EngineOptions maps the settings onto explorer options.
func (c *Config) EngineOptions() []explorer.Option {
	return []explorer.Option{
		explorer.WithSampleSize(c.SampleSize),
		explorer.WithLargeFolderThreshold(c.LargeFolderThreshold),
		explorer.WithFolderCountCap(c.FolderCountCap),
		explorer.WithListerWorkers(c.ListerWorkers),
		explorer.WithSupersedeWait(c.SupersedeWait),
	}
}
