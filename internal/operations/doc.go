// Package operations runs the steps of a batch job and records what each one
// did.
//
// Every step yields a StepResult. A step whose required columns are absent is
// recorded as skipped with the missing column names; only load and storage
// failures are recorded as failed and stop the job.
//
// The Runner wraps each step with:
//
//   - an OpenTelemetry span named "<job>.<step>"
//   - the step counter and duration histogram from infrastructure.PipelineMetrics
//   - a structured log line carrying the step id, status and missing columns
//
// At the end of a job the RunManifest is written as JSON next to the outputs:
//
//	runner := operations.NewRunner(operations.JobIngest, tracer, metrics, logger)
//	res, err := runner.Run(ctx, "load_exam", "Load exam microdata", step)
//	...
//	err = runner.Manifest(runID).SaveToFile(paths.GetManifestPath(operations.JobIngest))
package operations
