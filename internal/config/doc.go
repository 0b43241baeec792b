// Package config provides centralized configuration management for the ENEM
// pipeline. It loads settings from multiple sources, validates them, and owns
// the Paths type that names every input and output file.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A .env file in the working directory
//	3. config.yaml or configs/config.yaml
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ENEM_<SECTION>_<FIELD>:
//
//	ENEM_INPUT_EXAM_FILE=dados/enem_2022_amostra.csv
//	ENEM_INPUT_ENCODING=latin1
//	ENEM_OUTPUT_BASE_DIR=/srv/enem
//	ENEM_LOGGING_LEVEL=debug
//	ENEM_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/enem.prom
//
// # Path Management
//
// Paths resolves relative locations against the output base directory:
//
//	paths, err := config.NewPaths(cfg)
//	chart := paths.GetVisualizationPath("media_por_tipo_escola")
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
