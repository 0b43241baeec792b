// Package reporting implements the report job.
//
// The job reloads the persisted exam, school and complete tables and runs a
// fixed list of independent steps. Each step declares the table it reads and
// the columns it needs; a step whose columns are missing is recorded as
// skipped and the job moves on. Steps never read each other's output.
//
// Analysis charts are written to the analysis directory, the interactive-style
// visualizations to the visualization directory and the curated dashboard
// table to the dashboard directory, all as resolved by config.Paths.
package reporting
