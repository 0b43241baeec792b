// Package app wires the pipeline components together and runs the ingest and
// report jobs.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, YAML, .env and ENEM_* variables
//	2. Resolve every path against the output base directory
//	3. Initialize logging and telemetry
//	4. Create the CSV writer, the cleaner and the reporter
//
// # Jobs
//
// RunIngest loads the three raw inputs, cleans them, merges them into the
// complete table and persists the four tables. A load failure stops the job
// before anything is written.
//
// RunReport reloads the persisted tables and renders the analysis and
// visualization workbooks and the dashboard table. Steps whose columns are
// missing are skipped; a failing step does not stop the others.
//
// Each job writes a manifest_<job>.json summary to the base directory.
//
// # Usage
//
//	application, err := app.NewApplication(app.Options{ConfigFile: "config.yaml"})
//	if err != nil {
//		return err
//	}
//	defer application.Close(ctx)
//
//	if err := application.Run(ctx); err != nil {
//		return err
//	}
package app
