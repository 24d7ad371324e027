package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/protocol/internal/duration"
)

// ValidateScheduleImport checks every entry and returns all problems found.
// A file with any error must be rejected as a whole.
func ValidateScheduleImport(s *ScheduleImport) []error {
	if len(s.Tasks) == 0 {
		return []error{fmt.Errorf("tasks: at least one task is required")}
	}

	var errs []error
	seen := make(map[string]int, len(s.Tasks))
	for i, t := range s.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if strings.TrimSpace(t.Label) == "" {
			errs = append(errs, fmt.Errorf("%s.label is required", prefix))
		}
		errs = append(errs, validateTime(prefix+".start", t.Start)...)
		errs = append(errs, validateTime(prefix+".end", t.End)...)

		key := strings.TrimSpace(t.Label) + "@" + strings.TrimSpace(t.Start)
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate of tasks[%d] (%s)", prefix, first, key))
		} else {
			seen[key] = i
		}
	}
	return errs
}

func validateTime(field, value string) []error {
	if value == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if _, err := duration.Parse(value); err != nil {
		return []error{fmt.Errorf("%s: %w", field, err)}
	}
	return nil
}
