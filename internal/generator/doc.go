// Package generator drives one report generation run for one unit.
//
// A run is strictly sequential:
//
//  1. Resolve the VectorCAST installation directory
//  2. Create the output directory
//  3. Extract metadata from the environment file
//  4. Generate the coverage, test results, metrics, and compound test reports
//  5. Write generation_summary.md (and optionally generation_summary.json)
//
// Failures in steps 1 to 3 abort the run before clicast is invoked. Failures
// of individual reports are recorded as outcomes and never stop the remaining
// reports. Summary write failures are logged and do not change the result.
//
// Design decision: We reuse the pipeline package for step 4 so that
// cancellation and continue-on-error handling live in one place; the
// generator only decides what each step does.
package generator
