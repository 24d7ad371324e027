package importer

import (
	"strings"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/duration"
)

// Convert turns a validated import into schedule templates in file order,
// with times written as HH:MM.
// Call ValidateScheduleImport first; Convert assumes the entries are valid.
func Convert(s *ScheduleImport) []domain.TaskTemplate {
	out := make([]domain.TaskTemplate, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		out = append(out, domain.NewTaskTemplate(
			strings.TrimSpace(t.Label),
			duration.Normalize(t.Start),
			duration.Normalize(t.End),
		))
	}
	return out
}
