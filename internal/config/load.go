package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kmacinski/vdiff/internal/log"
)

// LocalConfigFile is looked up in the working directory before the user config.
const LocalConfigFile = ".vdiff.yaml"

// UserConfigPath returns ~/.config/vdiff/config.yaml.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vdiff", "config.yaml")
}

// NewViper returns a viper instance seeded with the defaults. When file is
// empty the lookup order is ./.vdiff.yaml, then ~/.config/vdiff/config.yaml.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix("VDIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case file != "":
		v.SetConfigFile(file)
	case fileExists(LocalConfigFile):
		v.SetConfigFile(LocalConfigFile)
	default:
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "vdiff"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	return v
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("root", d.Root)
	v.SetDefault("mouse", d.Mouse)
	v.SetDefault("layout.scroll_width", d.Layout.ScrollWidth)
	v.SetDefault("layout.scroll_gap", d.Layout.ScrollGap)
	v.SetDefault("layout.margin", d.Layout.Margin)
	v.SetDefault("layout.status_bar", d.Layout.StatusBar)
	v.SetDefault("scroll.wheel_lines", d.Scroll.WheelLines)
	v.SetDefault("scroll.pan_columns", d.Scroll.PanColumns)
	v.SetDefault("editor.mode", d.Editor.Mode)
	v.SetDefault("editor.command", d.Editor.Command)
	v.SetDefault("editor.nvim_socket", d.Editor.NvimSocket)
	v.SetDefault("logging.debug", d.Logging.Debug)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("theme.preset", d.Theme.Preset)
}

// Load reads the config file (a missing file is not an error), unmarshals it
// over the defaults and validates the result.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "no config file, using defaults")
	} else {
		log.Info(log.CatConfig, "loaded config", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	resolved, err := cfg.Theme.Resolved()
	if err != nil {
		return Config{}, err
	}
	cfg.Theme = resolved
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
