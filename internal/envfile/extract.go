package envfile

import (
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nao1215/vcastgen/internal/model"
)

// labelPatterns maps each metadata key to the pattern finding its line.
// A label may be qualified by dotted prefixes, as in "ENVIRO.COMPILER:".
// The value must start with a non-blank character so that an empty label
// ("COMPILER:") counts as absent.
var labelPatterns = map[string]*regexp.Regexp{
	model.EnvKeyCompiler:      regexp.MustCompile(`(?im)^[ \t]*(?:[\w]+\.)*COMPILER[ \t]*:[ \t]*(\S.*)$`),
	model.EnvKeyCoverageType:  regexp.MustCompile(`(?im)^[ \t]*(?:[\w]+\.)*COVERAGE_TYPE[ \t]*:[ \t]*(\S.*)$`),
	model.EnvKeyUnitDirectory: regexp.MustCompile(`(?im)^[ \t]*(?:[\w]+\.)*UNIT_DIRECTORY[ \t]*:[ \t]*(\S.*)$`),
	model.EnvKeySearchList:    regexp.MustCompile(`(?im)^[ \t]*(?:[\w]+\.)*SEARCH_LIST[ \t]*:[ \t]*(\S.*)$`),
}

// Extract reads the environment file at path and returns the labelled values.
//
// A missing or unreadable file is a configuration error. Missing labels are not
// errors; the result may be empty.
func Extract(path string) (model.EnvironmentData, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided environment file is intentional
	if err != nil {
		return nil, model.NewConfigurationError("read environment file", path, err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return nil, model.NewConfigurationError("read environment file", path, err)
	}
	return data, nil
}

// Parse scans r for the labelled lines.
// A leading UTF-8 or UTF-16 byte order mark is honoured; otherwise the text
// is read as UTF-8. The first occurrence of each label wins.
func Parse(r io.Reader) (model.EnvironmentData, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	content, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, err
	}

	return ParseString(string(content)), nil
}

// ParseString scans already-decoded text for the labelled lines.
func ParseString(content string) model.EnvironmentData {
	data := make(model.EnvironmentData, len(labelPatterns))
	for _, key := range model.EnvironmentKeys() {
		match := labelPatterns[key].FindStringSubmatch(content)
		if match == nil {
			continue
		}
		if value := strings.TrimSpace(match[1]); value != "" {
			data[key] = value
		}
	}
	return data
}
