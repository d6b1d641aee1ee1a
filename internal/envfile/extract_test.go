package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/vcastgen/internal/model"
)

// writeEnvFile writes content to a temporary environment file.
func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "unit.env")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write environment file: %v", err)
	}
	return path
}

// TestParseString tests label extraction from text.
func TestParseString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    model.EnvironmentData
	}{
		{
			name:    "two labels present",
			content: "COMPILER: gcc\nCOVERAGE_TYPE: statement\n",
			want: model.EnvironmentData{
				model.EnvKeyCompiler:     "gcc",
				model.EnvKeyCoverageType: "statement",
			},
		},
		{
			name: "all four labels with padding",
			content: "ENVIRO.NEW\n" +
				"COMPILER:   GNU_Native_9.2_C   \n" +
				"coverage_type: STATEMENT+BRANCH\n" +
				"Unit_Directory: /work/src\r\n" +
				"SEARCH_LIST: /work/src:/work/inc\n" +
				"ENVIRO.END\n",
			want: model.EnvironmentData{
				model.EnvKeyCompiler:      "GNU_Native_9.2_C",
				model.EnvKeyCoverageType:  "STATEMENT+BRANCH",
				model.EnvKeyUnitDirectory: "/work/src",
				model.EnvKeySearchList:    "/work/src:/work/inc",
			},
		},
		{
			name: "labels qualified with ENVIRO prefix",
			content: "ENVIRO.NEW\n" +
				"ENVIRO.NAME: SENSOR\n" +
				"ENVIRO.COMPILER: GNU_Native\n" +
				"  enviro.coverage_type: Statement\n" +
				"ENVIRO.SEARCH_LIST: /work/src\n" +
				"ENVIRO.END\n",
			want: model.EnvironmentData{
				model.EnvKeyCompiler:     "GNU_Native",
				model.EnvKeyCoverageType: "Statement",
				model.EnvKeySearchList:   "/work/src",
			},
		},
		{
			name:    "similar labels are not matched",
			content: "ENVIRO.COMPILER_FLAGS: -O2\nC_COMPILER: cc\n",
			want:    model.EnvironmentData{},
		},
		{
			name:    "no labels",
			content: "ENVIRO.NEW\nENVIRO.NAME: SENSOR\nENVIRO.END\n",
			want:    model.EnvironmentData{},
		},
		{
			name:    "empty file",
			content: "",
			want:    model.EnvironmentData{},
		},
		{
			name:    "empty value is absent",
			content: "COMPILER:\nCOVERAGE_TYPE:   \nSEARCH_LIST: a\n",
			want:    model.EnvironmentData{model.EnvKeySearchList: "a"},
		},
		{
			name:    "first occurrence wins",
			content: "COMPILER: first\nCOMPILER: second\n",
			want:    model.EnvironmentData{model.EnvKeyCompiler: "first"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseString(tt.content)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseString mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestParseHandlesBOM tests that a UTF-8 byte order mark does not hide the first label.
func TestParseHandlesBOM(t *testing.T) {
	t.Parallel()

	got, err := Parse(strings.NewReader("\ufeffCOMPILER: clang\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[model.EnvKeyCompiler] != "clang" {
		t.Errorf("expected clang, got %v", got)
	}
}

// TestExtract tests reading environment files from disk.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("reads labels from file", func(t *testing.T) {
		t.Parallel()

		path := writeEnvFile(t, "COMPILER: gcc\nCOVERAGE_TYPE: statement\n")
		got, err := Extract(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 entries, got %v", got)
		}
		if _, ok := got[model.EnvKeyUnitDirectory]; ok {
			t.Error("unit_directory must be absent")
		}
		if _, ok := got[model.EnvKeySearchList]; ok {
			t.Error("search_list must be absent")
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		path := writeEnvFile(t, "COMPILER: gcc\nUNIT_DIRECTORY: src\n")
		first, err := Extract(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Extract(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("repeated extraction differs (-first +second):\n%s", diff)
		}
	})

	t.Run("missing file is a configuration error", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(filepath.Join(t.TempDir(), "missing.env"))
		if !errors.Is(err, model.ErrConfiguration) {
			t.Errorf("expected ErrConfiguration, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist to be wrapped, got %v", err)
		}
	})

	t.Run("directory is a configuration error", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(t.TempDir())
		if !errors.Is(err, model.ErrConfiguration) {
			t.Errorf("expected ErrConfiguration, got %v", err)
		}
	})
}

// TestFingerprint tests the environment file digest.
func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := writeEnvFile(t, "COMPILER: gcc\n")
	b := writeEnvFile(t, "COMPILER: gcc\n")
	c := writeEnvFile(t, "COMPILER: clang\n")

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fb, _ := Fingerprint(b)
	fc, _ := Fingerprint(c)

	if len(fa) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(fa))
	}
	if fa != fb {
		t.Error("identical content must have identical fingerprints")
	}
	if fa == fc {
		t.Error("different content must have different fingerprints")
	}

	if _, err := Fingerprint(filepath.Join(t.TempDir(), "missing.env")); !errors.Is(err, model.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}
