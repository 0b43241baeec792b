package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no stray config.yaml or
// .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, ";", cfg.Input.Delimiter)
				assert.Equal(t, "latin1", cfg.Input.Encoding)
				assert.Equal(t, "dados_tratados", cfg.Output.CleanDir)
				assert.Equal(t, ',', cfg.OutputDelimiter())
				assert.Equal(t, ';', cfg.InputDelimiter())
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "file overrides defaults",
			fileContent: `
input:
  exam_file: raw/enem.csv
  encoding: utf-8
logging:
  level: debug
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "raw/enem.csv", cfg.Input.ExamFile)
				assert.Equal(t, "utf-8", cfg.Input.Encoding)
				assert.Equal(t, "debug", cfg.Logging.Level)
				// untouched fields keep their defaults
				assert.Equal(t, "dados/indicadores_municipios.csv", cfg.Input.MunicipalityFile)
			},
		},
		{
			name: "env overrides file",
			env: map[string]string{
				"ENEM_INPUT_EXAM_FILE":  "env/enem.csv",
				"ENEM_OUTPUT_BOM":       "true",
				"ENEM_OUTPUT_DELIMITER": ";",
			},
			fileContent: `
input:
  exam_file: raw/enem.csv
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "env/enem.csv", cfg.Input.ExamFile)
				assert.True(t, cfg.Output.BOM)
				assert.Equal(t, ';', cfg.OutputDelimiter())
			},
		},
		{
			name:    "invalid delimiter",
			env:     map[string]string{"ENEM_INPUT_DELIMITER": ";;"},
			wantErr: true,
		},
		{
			name:    "invalid trace exporter",
			env:     map[string]string{"ENEM_TELEMETRY_TRACE_EXPORTER": "jaeger"},
			wantErr: true,
		},
		{
			name:        "malformed yaml",
			fileContent: "input: [unterminated",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configFile := ""
			if tt.fileContent != "" {
				configFile = filepath.Join(dir, "config.yaml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.fileContent), 0644))
			}

			cfg, err := Load(configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_DiscoversConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output:\n  clean_dir: limpos\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "limpos", cfg.Output.CleanDir)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ENEM_LOGGING_LEVEL=warn\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("ENEM_LOGGING_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdirTemp(t)

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "empty exam file", mutate: func(c *Config) { c.Input.ExamFile = "" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "file output needs a path", mutate: func(c *Config) { c.Logging.Output = "file"; c.Logging.FilePath = "" }, wantErr: true},
		{name: "console output needs no path", mutate: func(c *Config) { c.Logging.FilePath = "" }},
		{name: "multi-rune output delimiter", mutate: func(c *Config) { c.Output.Delimiter = "||" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
