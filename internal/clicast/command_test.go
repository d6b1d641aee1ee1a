package clicast

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/vcastgen/internal/model"
)

// TestNewReportCommand tests the argument list for every report kind.
func TestNewReportCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind model.ReportKind
		want []string
	}{
		{
			kind: model.KindCoverage,
			want: []string{"--coverage", "--environment", "u.env", "--output", "out", "--format", "html"},
		},
		{
			kind: model.KindTestResults,
			want: []string{"--test-results", "--environment", "u.env", "--output", "out", "--format", "xml"},
		},
		{
			kind: model.KindMetrics,
			want: []string{"--metrics", "--environment", "u.env", "--output", "out", "--format", "csv"},
		},
		{
			kind: model.KindCompoundTests,
			want: []string{"--compound-tests", "--environment", "u.env", "--output", "out"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()

			cmd := NewReportCommand("/opt/vcast", tt.kind, "u.env", "out", time.Minute)
			if diff := cmp.Diff(tt.want, cmd.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
			if cmd.Path != filepath.Join("/opt/vcast", BinaryName()) {
				t.Errorf("unexpected binary path %q", cmd.Path)
			}
			if cmd.Timeout != time.Minute {
				t.Errorf("expected 1m timeout, got %v", cmd.Timeout)
			}
			if cmd.Description == "" {
				t.Error("expected a description")
			}
		})
	}
}
