package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kataras/golog"

	"flowcanvas/editor"
)

type Config struct {
	SaveDirectory string        `toml:"save_directory"`
	LogFile       string        `toml:"log_file"`
	LogLevel      string        `toml:"log_level"`
	History       HistoryConfig `toml:"history"`
	Adorner       AdornerConfig `toml:"adorner"`
	Keys          KeysConfig    `toml:"keys"`
}

type HistoryConfig struct {
	Capacity int `toml:"capacity"`
}

type AdornerConfig struct {
	CanMove   bool `toml:"can_move"`
	CanResize bool `toml:"can_resize"`
	CanRotate bool `toml:"can_rotate"`
}

// KeysConfig lists the chords bound to each history shortcut, written the
// way bubbletea names keys ("ctrl+z", "U").
type KeysConfig struct {
	Undo []string `toml:"undo"`
	Redo []string `toml:"redo"`
}

func defaultConfig() *Config {
	return &Config{
		LogFile:  "flowcanvas.log",
		LogLevel: "info",
		History:  HistoryConfig{Capacity: editor.DefaultHistoryCapacity},
		Adorner:  AdornerConfig{CanMove: true, CanResize: true},
		Keys: KeysConfig{
			Undo: []string{"ctrl+z", "u"},
			Redo: []string{"ctrl+y", "U"},
		},
	}
}

func configDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "flowcanvas")
}

func defaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		path = defaultConfigPath()
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.SaveDirectory = expandHome(cfg.SaveDirectory)
	if cfg.History.Capacity < 1 {
		cfg.History.Capacity = editor.DefaultHistoryCapacity
	}
	return cfg, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// GetSavePath places filename inside the save directory when one is set.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0o755)
	return filepath.Join(c.SaveDirectory, filename)
}

func (c *Config) Keymap() editor.Keymap {
	return editor.Keymap{
		editor.ShortcutUndo: append([]string(nil), c.Keys.Undo...),
		editor.ShortcutRedo: append([]string(nil), c.Keys.Redo...),
	}
}

func (c *Config) AdornerOptions() editor.AdornerOptions {
	return editor.AdornerOptions{
		CanMove:   c.Adorner.CanMove,
		CanResize: c.Adorner.CanResize,
		CanRotate: c.Adorner.CanRotate,
	}
}

// newLogger opens the configured log file. The alt screen owns stdout, so
// without a file the logger stays silent.
func (c *Config) newLogger() (*golog.Logger, func() error, error) {
	logger := golog.New()
	logger.SetLevel(c.LogLevel)
	if c.LogFile == "" {
		logger.SetLevel("disable")
		return logger, func() error { return nil }, nil
	}
	path := c.GetSavePath(c.LogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %s: %w", path, err)
	}
	logger.SetOutput(f)
	return logger, f.Close, nil
}

func (c *Config) editorOptions(logger *golog.Logger, layer editor.Layer) editor.Options {
	opts := editor.DefaultOptions()
	opts.HistoryCapacity = c.History.Capacity
	opts.Adorner = c.AdornerOptions()
	opts.Shortcuts = c.Keymap()
	opts.Layer = layer
	opts.Logger = logger
	return opts
}
