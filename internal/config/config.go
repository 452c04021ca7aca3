// Package config loads the optional YAML settings file for graygen.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"example.com/graycode/internal/common"
)

// DefaultPath is consulted when no -config flag is given. A missing file at
// the default path is not an error.
const DefaultPath = "graygen.yaml"

type LogConfig struct {
	Directory  string `yaml:"directory"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

type ReportConfig struct {
	JSON        string `yaml:"json"`
	PDF         string `yaml:"pdf"`
	PreviewRows int    `yaml:"previewRows"`
	QRSize      int    `yaml:"qrSize"`
}

type Config struct {
	Output   string       `yaml:"output"`
	Manifest string       `yaml:"manifest"`
	History  string       `yaml:"history"`
	Quiet    bool         `yaml:"quiet"`
	Report   ReportConfig `yaml:"report"`
	Logs     LogConfig    `yaml:"logs"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path. When explicit is false and the file does
// not exist, defaults are returned.
func Load(path string, explicit bool) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Decode parses YAML from r and fills defaults. Paths are left as written.
func Decode(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Output) == "" {
		c.Output = "gray.txt"
	}
	if c.Report.PreviewRows <= 0 {
		c.Report.PreviewRows = 32
	}
	if c.Report.QRSize <= 0 {
		c.Report.QRSize = 256
	}
	if c.Logs.MaxSizeMB <= 0 {
		c.Logs.MaxSizeMB = 25
	}
	if c.Logs.MaxAgeDays <= 0 {
		c.Logs.MaxAgeDays = 7
	}
	if c.Logs.MaxBackups <= 0 {
		c.Logs.MaxBackups = 5
	}
}

func (c *Config) resolvePaths(baseDir string) {
	resolve := func(p string) string {
		p = strings.TrimSpace(p)
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Clean(filepath.Join(baseDir, p))
	}
	c.Output = resolve(c.Output)
	c.Manifest = resolve(c.Manifest)
	c.History = resolve(c.History)
	c.Report.JSON = resolve(c.Report.JSON)
	c.Report.PDF = resolve(c.Report.PDF)
	c.Logs.Directory = resolve(c.Logs.Directory)
}

// LogOptions converts the logs section for common.SetupLogging.
func (c Config) LogOptions() common.LogOptions {
	return common.LogOptions{
		Directory:  c.Logs.Directory,
		FileName:   "graygen.log",
		MaxSizeMB:  c.Logs.MaxSizeMB,
		MaxAgeDays: c.Logs.MaxAgeDays,
		MaxBackups: c.Logs.MaxBackups,
		Compress:   c.Logs.Compress,
	}
}
