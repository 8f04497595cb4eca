package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SysfsDir   string `yaml:"sysfs_dir,omitempty"`
	DevDir     string `yaml:"dev_dir,omitempty"`
	MountsFile string `yaml:"mounts_file,omitempty"`
	Journal    string `yaml:"journal,omitempty"` // empty disables the search journal
	LogLevel   string `yaml:"log_level,omitempty"`
}

// defaultConfig provides baseline settings; the journal stays off unless a
// path is configured.
var defaultConfig = Config{
	SysfsDir:   "/sys/class/block",
	DevDir:     "/dev",
	MountsFile: "/proc/self/mounts",
	LogLevel:   "warning",
}

func Load(path string) (*Config, error) {
	if path == "" {
		// Try default locations
		candidates := []string{
			"/etc/devsearch/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/devsearch/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		}
	}

	// Apply defaults for fields the file blanked out
	if cfg.SysfsDir == "" {
		cfg.SysfsDir = defaultConfig.SysfsDir
	}
	if cfg.DevDir == "" {
		cfg.DevDir = defaultConfig.DevDir
	}
	if cfg.MountsFile == "" {
		cfg.MountsFile = defaultConfig.MountsFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultConfig.LogLevel
	}

	return &cfg, nil
}
