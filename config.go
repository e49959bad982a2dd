package ndjsonv

import (
	"bytes"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Example:
//
//	backend: fast
//	output_dir: ./cleaned
//	policy: best-effort
//	blank_lines: skip
//	workers: 4
//	limits:
//	  max_line_bytes: 1048576
//	  max_depth: 64
//	  reject_duplicate_keys: true
//	exclude:
//	  - "*.partial.ndjson"
type Config struct {
	Backend    string          `yaml:"backend"`
	OutputDir  string          `yaml:"output_dir"`
	Policy     BatchPolicy     `yaml:"policy"`
	BlankLines BlankLinePolicy `yaml:"blank_lines"`
	Workers    int             `yaml:"workers"`
	Limits     Limits          `yaml:"limits"`
	Exclude    []string        `yaml:"exclude"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{Backend: DriverStandard, Policy: FailFast, BlankLines: BlankInvalid}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &FileError{Op: "open", Path: path, Err: err}
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig. Unknown keys are
// rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		var ce *ConfigError
		if errors.As(err, &ce) {
			return Config{}, ce
		}
		return Config{}, &ConfigError{Field: "file", Err: err}
	}
	return cfg, nil
}

// Driver selects the configured backend.
func (c Config) Driver() (JSONDriver, error) { return SelectDriver(c.Backend) }

// Options converts the configuration into validated Options.
func (c Config) Options(log *zap.Logger) (Options, error) {
	opt := Options{
		BlankLines: c.BlankLines,
		Policy:     c.Policy,
		Limits:     c.Limits,
		Workers:    c.Workers,
		Logger:     log,
	}
	if err := opt.Validate(); err != nil {
		return Options{}, err
	}
	return opt, nil
}
