// Package config provides configuration types and defaults for vdiff.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Config holds all application configuration
type Config struct {
	Root    string        `mapstructure:"root" yaml:"root"` // directory diff paths are relative to
	Mouse   bool          `mapstructure:"mouse" yaml:"mouse"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Layout  LayoutConfig  `mapstructure:"layout" yaml:"layout"`
	Scroll  ScrollConfig  `mapstructure:"scroll" yaml:"scroll"`
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LayoutConfig holds layout-related settings
type LayoutConfig struct {
	ScrollWidth int  `mapstructure:"scroll_width" yaml:"scroll_width"` // scrollbar track columns
	ScrollGap   int  `mapstructure:"scroll_gap" yaml:"scroll_gap"`     // blank columns right of the track
	Margin      int  `mapstructure:"margin" yaml:"margin"`             // text inset inside the list area
	StatusBar   bool `mapstructure:"status_bar" yaml:"status_bar"`
}

// ScrollConfig holds scroll and pan step sizes
type ScrollConfig struct {
	WheelLines int `mapstructure:"wheel_lines" yaml:"wheel_lines"`
	PanColumns int `mapstructure:"pan_columns" yaml:"pan_columns"`
}

// Editor modes.
const (
	EditorAuto     = "auto"
	EditorNvim     = "nvim"
	EditorCommand  = "command"
	EditorTerminal = "terminal"
)

// EditorConfig selects how "open at file:line" is performed
type EditorConfig struct {
	Mode string `mapstructure:"mode" yaml:"mode"` // auto, nvim, command, terminal
	// Command is an argv template; {file} and {line} are substituted,
	// e.g. ["code", "--goto", "{file}:{line}"].
	Command    []string `mapstructure:"command" yaml:"command"`
	NvimSocket string   `mapstructure:"nvim_socket" yaml:"nvim_socket"` // defaults to $NVIM
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	Debug bool   `mapstructure:"debug" yaml:"debug"`
	File  string `mapstructure:"file" yaml:"file"`
}

// KindColors is the background/foreground pair of one line kind
type KindColors struct {
	Bg string `mapstructure:"bg" yaml:"bg,omitempty"`
	Fg string `mapstructure:"fg" yaml:"fg,omitempty"`
}

// ThemeConfig holds color settings. Empty fields fall back to the preset.
type ThemeConfig struct {
	// Preset is "auto" (default), "dark" or "light". Auto and an empty
	// preset follow the terminal background.
	Preset    string     `mapstructure:"preset" yaml:"preset"`
	File      KindColors `mapstructure:"file" yaml:"file,omitempty"`
	Hunk      KindColors `mapstructure:"hunk" yaml:"hunk,omitempty"`
	Add       KindColors `mapstructure:"add" yaml:"add,omitempty"`
	Del       KindColors `mapstructure:"del" yaml:"del,omitempty"`
	Context   KindColors `mapstructure:"context" yaml:"context,omitempty"`
	Track     string     `mapstructure:"track" yaml:"track,omitempty"`
	Thumb     string     `mapstructure:"thumb" yaml:"thumb,omitempty"`
	Selection string     `mapstructure:"selection" yaml:"selection,omitempty"`
	StatusBar KindColors `mapstructure:"status_bar" yaml:"status_bar,omitempty"`
	Muted     string     `mapstructure:"muted" yaml:"muted,omitempty"`
}

// PresetAuto picks the dark or light preset from the terminal background.
const PresetAuto = "auto"

// hasDarkBackground queries the terminal once. The first call must happen
// before Bubble Tea owns the input, so the OSC 11 reply does not leak into
// the key stream; Load does that.
var hasDarkBackground = sync.OnceValue(lipgloss.HasDarkBackground)

// Presets are the built-in themes.
var Presets = map[string]ThemeConfig{
	"dark": {
		Preset:    "dark",
		File:      KindColors{Bg: "#313244", Fg: "#89b4fa"},
		Hunk:      KindColors{Bg: "#1e2030", Fg: "#94e2d5"},
		Add:       KindColors{Bg: "#1f3326", Fg: "#a6e3a1"},
		Del:       KindColors{Bg: "#3b2029", Fg: "#f38ba8"},
		Context:   KindColors{Bg: "", Fg: "#cdd6f4"},
		Track:     "#45475a",
		Thumb:     "#cdd6f4",
		Selection: "#585b70",
		StatusBar: KindColors{Bg: "#313244", Fg: "#cdd6f4"},
		Muted:     "#6c7086",
	},
	"light": {
		Preset:    "light",
		File:      KindColors{Bg: "#efefef", Fg: "#000000"},
		Hunk:      KindColors{Bg: "#eaffff", Fg: "#000000"},
		Add:       KindColors{Bg: "#e6ffed", Fg: "#000000"},
		Del:       KindColors{Bg: "#ffeef0", Fg: "#000000"},
		Context:   KindColors{Bg: "#ffffff", Fg: "#000000"},
		Track:     "#999999",
		Thumb:     "#ffffff",
		Selection: "#d0d7de",
		StatusBar: KindColors{Bg: "#efefef", Fg: "#000000"},
		Muted:     "#6e7781",
	},
}

// Defaults returns the default configuration
func Defaults() Config {
	return Config{
		Root:  ".",
		Mouse: true,
		Theme: ThemeConfig{Preset: PresetAuto},
		Layout: LayoutConfig{
			ScrollWidth: 1,
			ScrollGap:   1,
			Margin:      1,
			StatusBar:   true,
		},
		Scroll: ScrollConfig{
			WheelLines: 10,
			PanColumns: 8,
		},
		Editor: EditorConfig{
			Mode: EditorAuto,
		},
	}
}

// Resolved fills empty theme fields from the selected preset.
func (t ThemeConfig) Resolved() (ThemeConfig, error) {
	name := strings.ToLower(t.Preset)
	if name == "" || name == PresetAuto {
		name = "light"
		if hasDarkBackground() {
			name = "dark"
		}
	}
	base, ok := Presets[name]
	if !ok {
		return ThemeConfig{}, fmt.Errorf("unknown theme preset %q", t.Preset)
	}

	out := base
	mergePair(&out.File, t.File)
	mergePair(&out.Hunk, t.Hunk)
	mergePair(&out.Add, t.Add)
	mergePair(&out.Del, t.Del)
	mergePair(&out.Context, t.Context)
	mergePair(&out.StatusBar, t.StatusBar)
	mergeString(&out.Track, t.Track)
	mergeString(&out.Thumb, t.Thumb)
	mergeString(&out.Selection, t.Selection)
	mergeString(&out.Muted, t.Muted)
	return out, nil
}

func mergePair(dst *KindColors, src KindColors) {
	mergeString(&dst.Bg, src.Bg)
	mergeString(&dst.Fg, src.Fg)
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// Validate checks values the viewer cannot recover from.
func (c Config) Validate() error {
	if _, err := c.Theme.Resolved(); err != nil {
		return err
	}
	switch c.Editor.Mode {
	case "", EditorAuto, EditorNvim, EditorCommand, EditorTerminal:
	default:
		return fmt.Errorf("unknown editor mode %q", c.Editor.Mode)
	}
	if c.Editor.Mode == EditorCommand && len(c.Editor.Command) == 0 {
		return fmt.Errorf("editor mode %q needs editor.command", EditorCommand)
	}
	if c.Layout.ScrollWidth < 0 || c.Layout.ScrollGap < 0 || c.Layout.Margin < 0 {
		return fmt.Errorf("layout sizes must not be negative")
	}
	if c.Scroll.WheelLines < 1 || c.Scroll.PanColumns < 1 {
		return fmt.Errorf("scroll steps must be positive")
	}
	return nil
}
