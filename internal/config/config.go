// Package config holds the settings of a conversion run. Values are layered:
// defaults, then an optional YAML file, then XML2RDF_* environment variables
// (optionally read from a .env file), then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names
const (
	EnvNamespace  = "XML2RDF_NAMESPACE"
	EnvInputs     = "XML2RDF_XML"
	EnvOutputFile = "XML2RDF_OUTPUT_FILE"
	EnvStoreDir   = "XML2RDF_STORE"
	EnvStrict     = "XML2RDF_STRICT"
	EnvLogLevel   = "XML2RDF_LOG_LEVEL"
)

// ErrInvalidConfig is returned by Validate and by loaders given bad values
var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes one conversion run
type Config struct {
	Namespace  string   `yaml:"namespace"`
	Inputs     []string `yaml:"xml"`
	OutputFile string   `yaml:"output_file"`
	StoreDir   string   `yaml:"store"`
	Strict     bool     `yaml:"strict"`
	LogLevel   string   `yaml:"log_level"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Namespace: rdf.DefaultDataNamespace,
		LogLevel:  "info",
	}
}

// LoadFile reads a YAML configuration file on top of the defaults
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 - config path is chosen by the user
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads the given .env files (".env" when none are named) into
// the process environment. Missing files are not an error; variables that
// are already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from XML2RDF_* environment variables.
// XML2RDF_XML is a comma-separated list of input files.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvNamespace); ok {
		c.Namespace = v
	}
	if v, ok := os.LookupEnv(EnvInputs); ok {
		c.Inputs = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvOutputFile); ok {
		c.OutputFile = v
	}
	if v, ok := os.LookupEnv(EnvStoreDir); ok {
		c.StoreDir = v
	}
	if v, ok := os.LookupEnv(EnvStrict); ok {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvStrict, v)
		}
		c.Strict = strict
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	return nil
}

func splitList(v string) []string {
	var result []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// Validate checks the configuration for errors. The namespace is used
// verbatim and is not checked for IRI syntax.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("%w: namespace is required", ErrInvalidConfig)
	}
	if len(c.Inputs) == 0 {
		return fmt.Errorf("%w: at least one xml input is required", ErrInvalidConfig)
	}
	if c.OutputFile != "" && c.StoreDir != "" {
		return fmt.Errorf("%w: output file and store are mutually exclusive", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, name)
	}
	return level, nil
}
