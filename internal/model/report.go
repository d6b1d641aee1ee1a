package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is a successfully generated artifact.
// Records are appended in pipeline order and read once to build the summary.
type Record struct {
	// Kind is the report kind that produced the artifact.
	Kind ReportKind `json:"kind"`

	// Label is the human-readable report kind, e.g. "Coverage Report".
	Label string `json:"label"`

	// Path is the output path passed to clicast.
	Path string `json:"path"`
}

// Outcome is the classified result of one attempted report operation.
type Outcome struct {
	// Kind is the report operation.
	Kind ReportKind `json:"kind"`

	// Status is the classification of the result.
	Status Status `json:"status"`

	// OutputPath is the destination given to clicast.
	OutputPath string `json:"output_path"`

	// ExitCode is the clicast exit code. It is -1 when the process could not be
	// started or was killed.
	ExitCode int `json:"exit_code"`

	// Stdout is the captured standard output on success.
	Stdout string `json:"stdout,omitempty"`

	// Stderr is the captured error stream on failure.
	Stderr string `json:"stderr,omitempty"`

	// Duration is how long the process ran.
	Duration time.Duration `json:"duration"`

	// Err is the error that caused a non-OK status.
	// It is not serialized; ErrorMessage carries its text.
	Err error `json:"-"`

	// ErrorMessage is the text of Err.
	ErrorMessage string `json:"error,omitempty"`
}

// OK reports whether the outcome counts as success.
func (o Outcome) OK() bool {
	return o.Status.OK()
}

// GenerationReport is the result of one report generation run for one unit.
//
// Design decision: We use a single struct holding the configuration echo,
// the extracted metadata, and the per-operation results so that the same value
// feeds the Markdown summary, the JSON summary, and the history database.
type GenerationReport struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// UnitName is the unit under test.
	UnitName string `json:"unit_name"`

	// EnvFile is the VectorCAST environment file path.
	EnvFile string `json:"env_file"`

	// EnvFingerprint is the SHA3-256 hex digest of the environment file.
	EnvFingerprint string `json:"env_fingerprint,omitempty"`

	// OutputDir is the directory holding the generated reports.
	OutputDir string `json:"output_dir"`

	// ToolDir is the resolved VectorCAST installation directory.
	ToolDir string `json:"tool_dir"`

	// CompoundTests records whether compound test cases were requested.
	CompoundTests bool `json:"compound_tests"`

	// Environment is the metadata extracted from the environment file.
	Environment EnvironmentData `json:"environment,omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the last operation finished.
	FinishedAt time.Time `json:"finished_at"`

	// Outcomes holds one entry per attempted operation, in pipeline order.
	Outcomes []Outcome `json:"outcomes"`

	// Records holds the successfully generated artifacts, in pipeline order.
	Records []Record `json:"records"`

	// Interrupted is true if the run was cancelled before completion.
	Interrupted bool `json:"interrupted"`

	// Error is the fatal error that aborted the run, if any.
	Error error `json:"-"`

	// ErrorMessage is the text of Error.
	ErrorMessage string `json:"error,omitempty"`
}

// NewGenerationReport creates an empty report for the given unit.
func NewGenerationReport(unitName string) *GenerationReport {
	return &GenerationReport{
		ID:        uuid.New().String(),
		UnitName:  unitName,
		StartedAt: time.Now(),
		Outcomes:  make([]Outcome, 0, len(AllKinds())),
		Records:   make([]Record, 0, len(AllKinds())),
	}
}

// AddOutcome appends an outcome and, when it succeeded, the matching record.
// Skipped operations produce no record.
func (r *GenerationReport) AddOutcome(o Outcome) {
	if o.Err != nil && o.ErrorMessage == "" {
		o.ErrorMessage = o.Err.Error()
	}
	r.Outcomes = append(r.Outcomes, o)
	if o.Status == StatusSucceeded {
		r.Records = append(r.Records, Record{
			Kind:  o.Kind,
			Label: o.Kind.Label(),
			Path:  o.OutputPath,
		})
	}
}

// SetError records a fatal error.
func (r *GenerationReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// SuccessCount returns the number of operations that counted as success.
func (r *GenerationReport) SuccessCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// TotalOperations returns the number of operations every run attempts.
func (r *GenerationReport) TotalOperations() int {
	return len(AllKinds())
}

// SuccessRate returns the percentage of successful operations.
func (r *GenerationReport) SuccessRate() float64 {
	return float64(r.SuccessCount()) / float64(r.TotalOperations()) * 100
}

// Succeeded reports whether every operation succeeded.
// A run aborted by a prerequisite failure or an interrupt never succeeds.
func (r *GenerationReport) Succeeded() bool {
	if r.Error != nil || r.ErrorMessage != "" || r.Interrupted {
		return false
	}
	return r.SuccessCount() == r.TotalOperations()
}

// Outcome returns the outcome for kind, if it was attempted.
func (r *GenerationReport) Outcome(kind ReportKind) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			return o, true
		}
	}
	return Outcome{}, false
}

// Duration returns the wall time of the run.
func (r *GenerationReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
