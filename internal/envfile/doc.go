// Package envfile reads VectorCAST environment files.
//
// An environment file is plain text. vcastgen only looks for four labelled
// lines, matched case-insensitively:
//
//	COMPILER: <value>
//	COVERAGE_TYPE: <value>
//	UNIT_DIRECTORY: <value>
//	SEARCH_LIST: <value>
//
// Every other line is ignored, and a missing label simply leaves its key out
// of the result. The extracted values are informational: they are logged and
// echoed in the summary but never passed to clicast.
package envfile
