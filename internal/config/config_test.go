package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, rdf.DefaultDataNamespace, cfg.Namespace)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Inputs)
	assert.False(t, cfg.Strict)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xml2rdf.yaml")
	content := `
namespace: urn:example
xml:
  - a.xml
  - b.xml
output_file: out.nt
strict: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "urn:example", cfg.Namespace)
	assert.Equal(t, []string{"a.xml", "b.xml"}, cfg.Inputs)
	assert.Equal(t, "out.nt", cfg.OutputFile)
	assert.True(t, cfg.Strict)
	// unset keys keep their defaults
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("xml: [unterminated"), 0o600))
	_, err = LoadFile(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvNamespace, "urn:env")
	t.Setenv(EnvInputs, "one.xml, two.xml,,")
	t.Setenv(EnvStoreDir, "/tmp/graph")
	t.Setenv(EnvStrict, "true")
	t.Setenv(EnvLogLevel, "debug")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "urn:env", cfg.Namespace)
	assert.Equal(t, []string{"one.xml", "two.xml"}, cfg.Inputs)
	assert.Equal(t, "/tmp/graph", cfg.StoreDir)
	assert.True(t, cfg.Strict)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestApplyEnv_BadBool(t *testing.T) {
	t.Setenv(EnvStrict, "sometimes")

	cfg := Default()
	assert.ErrorIs(t, cfg.ApplyEnv(), ErrInvalidConfig)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("XML2RDF_OUTPUT_FILE=from-dotenv.nt\n"), 0o600))

	// t.Setenv registers a restore of the variable; unset it for godotenv
	t.Setenv(EnvOutputFile, "")
	require.NoError(t, os.Unsetenv(EnvOutputFile))

	require.NoError(t, LoadDotEnv(path))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "from-dotenv.nt", cfg.OutputFile)
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "none.env")))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.Inputs = []string{"a.xml"}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "namespace not checked as IRI", mutate: func(c *Config) { c.Namespace = "not an iri" }, ok: true},
		{name: "empty namespace", mutate: func(c *Config) { c.Namespace = "" }},
		{name: "no inputs", mutate: func(c *Config) { c.Inputs = nil }},
		{name: "output and store", mutate: func(c *Config) { c.OutputFile = "o.nt"; c.StoreDir = "db" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "upper case level", mutate: func(c *Config) { c.LogLevel = "WARN" }, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLevel_FallsBackToInfo(t *testing.T) {
	cfg := Config{LogLevel: "loud"}
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}
