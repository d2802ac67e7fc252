package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpgo/networth-projector/internal/domain"
)

// GenerateReport writes the report in the requested format to dir and returns
// the written file paths. "all" writes every formatter whose sections are
// present in the report.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var written []string
		for _, f := range builtInFormatters {
			path, err := WriteFormatted(f, report, dir)
			if errors.Is(err, ErrMissingSection) {
				continue
			}
			if err != nil {
				return written, fmt.Errorf("%s: %w", f.Name(), err)
			}
			written = append(written, path)
		}
		return written, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Render formats the report in memory, for stdout or HTTP responses.
func Render(report *domain.Report, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "))
	}
	return f.Format(report)
}
