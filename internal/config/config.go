// Package config loads blocky's optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/blocky/internal/syntax"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "blocky.yml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings a config file may provide. Command-line
// flags override them.
type Config struct {
	AstFormat string `yaml:"ast_format"`
	Color     string `yaml:"color"`
	Trace     bool   `yaml:"trace"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		AstFormat: string(syntax.FormatText),
		Color:     ColorAuto,
	}
}

// Error reports an unreadable or invalid configuration file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return "config: " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads the file at path. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, &Error{Path: path, Err: err}
	}
	defer f.Close()
	return Decode(path, f)
}

// Decode parses configuration from r. name is used in errors.
func Decode(name string, r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &Error{Path: name, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, &Error{Path: name, Err: err}
	}
	return cfg, nil
}

// Find returns DefaultFile if it exists in the working directory.
func Find() (string, bool) {
	if _, err := os.Stat(DefaultFile); err != nil {
		return "", false
	}
	return DefaultFile, true
}

// Validate checks that every setting has a known value.
func (c Config) Validate() error {
	if _, err := syntax.ParseFormat(c.AstFormat); err != nil {
		return fmt.Errorf("ast_format: %w", err)
	}
	if err := CheckColor(c.Color); err != nil {
		return err
	}
	return nil
}

// CheckColor reports whether mode is a known color mode.
func CheckColor(mode string) error {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return fmt.Errorf("color: unknown mode %q (want auto, always or never)", mode)
}
