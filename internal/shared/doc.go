// Package shared holds helpers used by more than one package.
//
// The testutil subpackage captures slog records in memory so tests can assert
// on diagnostics such as skipped steps:
//
//	logger, handler := testutil.NewTestLogger(t)
//	reporter := reporting.NewReporter(paths, writer, opts, nil, logger)
//	...
//	testutil.AssertLogContains(t, handler, slog.LevelWarn, "Step skipped")
package shared
