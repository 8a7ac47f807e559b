package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigHeader = `# vdiff configuration
# theme.preset: auto | dark | light. Per-kind bg/fg override the preset.
# editor.mode: auto | nvim | command | terminal
`

// WriteDefaultConfig writes the default configuration as YAML to path,
// creating parent directories. An existing file is left untouched.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	return Save(path, Defaults())
}

// Encode writes cfg as YAML to w.
func Encode(w io.Writer, cfg Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return encoder.Close()
}

// Save writes cfg as YAML to path.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString(defaultConfigHeader)
	if err := Encode(&buf, cfg); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
