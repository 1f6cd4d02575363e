// Package oracle wraps the external decision procedures the game relies on:
// a checker that judges candidate expressions and a solver that produces a
// valid solution for a target.
//
// Both are treated as black boxes behind the Validator and Solver interfaces.
// The shipped implementation, ExecOracle, spawns one process per call with a
// hard wall-clock timeout and maps every failure mode (spawn error, non-zero
// exit, empty output, timeout) to *Error. The oracle never retries; the
// caller decides whether to retry or report.
//
// Process contract:
//
//	check: stdin receives "target\ncandidate", stdout is the verdict
//	solve: stdin receives "target\n", stdout is the solution expression
//
// Verdict parsing is intentionally lenient (see Accepts) because the checker
// output format is not formally specified; the mapping lives here so it stays
// a single testable unit.
package oracle
