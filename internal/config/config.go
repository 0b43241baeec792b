package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "ENEM"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// InputConfig locates the three raw datasets.
type InputConfig struct {
	ExamFile         string `yaml:"exam_file" envconfig:"EXAM_FILE" validate:"required"`
	SchoolFile       string `yaml:"school_file" envconfig:"SCHOOL_FILE" validate:"required"`
	MunicipalityFile string `yaml:"municipality_file" envconfig:"MUNICIPALITY_FILE" validate:"required"`
	Delimiter        string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	Encoding         string `yaml:"encoding" envconfig:"ENCODING" validate:"required"`
}

// OutputConfig controls where cleaned tables, charts and exports are written.
type OutputConfig struct {
	BaseDir          string `yaml:"base_dir" envconfig:"BASE_DIR"`
	CleanDir         string `yaml:"clean_dir" envconfig:"CLEAN_DIR" validate:"required"`
	AnalysisDir      string `yaml:"analysis_dir" envconfig:"ANALYSIS_DIR" validate:"required"`
	VisualizationDir string `yaml:"visualization_dir" envconfig:"VISUALIZATION_DIR" validate:"required"`
	DashboardDir     string `yaml:"dashboard_dir" envconfig:"DASHBOARD_DIR" validate:"required"`
	Delimiter        string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	BOM              bool   `yaml:"bom" envconfig:"BOM"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	TraceFile     string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and ENEM_* environment variables, in increasing order of
// precedence. An empty configFile searches the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// .env only seeds variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// No default tags: unset variables leave the file/default value alone
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values on cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints declared in struct tags
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	return v.Struct(c)
}

// InputDelimiter returns the raw-file field separator
func (c *Config) InputDelimiter() rune {
	return []rune(c.Input.Delimiter)[0]
}

// OutputDelimiter returns the field separator for written tables
func (c *Config) OutputDelimiter() rune {
	return []rune(c.Output.Delimiter)[0]
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/enem.log",
		},
		Input: InputConfig{
			ExamFile:         "dados/enem_2022_amostra.csv",
			SchoolFile:       "dados/censo_escolar_2022_amostra.csv",
			MunicipalityFile: "dados/indicadores_municipios.csv",
			Delimiter:        ";",
			Encoding:         "latin1",
		},
		Output: OutputConfig{
			CleanDir:         "dados_tratados",
			AnalysisDir:      "analises",
			VisualizationDir: "visualizacoes",
			DashboardDir:     "dados_para_dashboard",
			Delimiter:        ",",
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}
