package model

// ReportKind identifies one of the clicast report operations.
//
// Design decision: We use iota-based constants rather than string constants
// so that the fixed pipeline order is the declaration order. The String()
// method provides the stable identifier used in file names and JSON.
type ReportKind int

const (
	// KindCoverage produces the HTML coverage report.
	KindCoverage ReportKind = iota

	// KindTestResults produces the XML test results report.
	KindTestResults

	// KindMetrics produces the CSV metrics report.
	KindMetrics

	// KindCompoundTests produces compound test cases.
	// Only generated when compound tests are requested.
	KindCompoundTests
)

// AllKinds returns every report kind in pipeline order.
func AllKinds() []ReportKind {
	return []ReportKind{KindCoverage, KindTestResults, KindMetrics, KindCompoundTests}
}

// String returns the identifier of the report kind.
func (k ReportKind) String() string {
	switch k {
	case KindCoverage:
		return "coverage"
	case KindTestResults:
		return "test_results"
	case KindMetrics:
		return "metrics"
	case KindCompoundTests:
		return "compound_tests"
	default:
		return "unknown"
	}
}

// Label returns the human-readable name used in summaries.
func (k ReportKind) Label() string {
	switch k {
	case KindCoverage:
		return "Coverage Report"
	case KindTestResults:
		return "Test Results Report"
	case KindMetrics:
		return "Metrics Report"
	case KindCompoundTests:
		return "Compound Test Cases"
	default:
		return "Unknown Report"
	}
}

// ModeFlag returns the clicast flag selecting this operation.
func (k ReportKind) ModeFlag() string {
	switch k {
	case KindCoverage:
		return "--coverage"
	case KindTestResults:
		return "--test-results"
	case KindMetrics:
		return "--metrics"
	case KindCompoundTests:
		return "--compound-tests"
	default:
		return ""
	}
}

// Format returns the value passed to --format, or "" when the operation
// takes no format flag.
func (k ReportKind) Format() string {
	switch k {
	case KindCoverage:
		return "html"
	case KindTestResults:
		return "xml"
	case KindMetrics:
		return "csv"
	default:
		return ""
	}
}

// Extension returns the file extension for the generated artifact,
// without the leading dot. Compound tests have none.
func (k ReportKind) Extension() string {
	return k.Format()
}

// MarshalText implements encoding.TextMarshaler.
func (k ReportKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ReportKind) UnmarshalText(text []byte) error {
	parsed, err := ParseReportKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseReportKind converts an identifier produced by String back into a ReportKind.
func ParseReportKind(s string) (ReportKind, error) {
	for _, k := range AllKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, &Error{Kind: ErrorKindConfiguration, Op: "parse report kind", Err: errUnknownKind(s)}
}
