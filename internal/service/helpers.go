package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/duration"
)

// ErrIndexOutOfRange is returned when a schedule position does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// validateTemplates checks a full schedule before it is saved.
func validateTemplates(tasks []domain.TaskTemplate) []error {
	var errs []error
	seen := make(map[domain.TaskKey]int, len(tasks))
	for i, t := range tasks {
		if strings.TrimSpace(t.Label) == "" {
			errs = append(errs, fmt.Errorf("task %d: label is required", i+1))
		}
		if _, err := duration.Parse(t.Start); err != nil {
			errs = append(errs, fmt.Errorf("task %d start: %w", i+1, err))
		}
		if _, err := duration.Parse(t.End); err != nil {
			errs = append(errs, fmt.Errorf("task %d end: %w", i+1, err))
		}
		key := domain.TaskKey{Label: t.Label, Start: t.Start}
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("task %d: duplicate of task %d (%s)", i+1, first+1, key))
		} else {
			seen[key] = i
		}
	}
	return errs
}

// normalizeTemplates trims labels, writes times as HH:MM and recomputes
// durations.
func normalizeTemplates(tasks []domain.TaskTemplate) []domain.TaskTemplate {
	out := make([]domain.TaskTemplate, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, domain.NewTaskTemplate(
			strings.TrimSpace(t.Label),
			duration.Normalize(t.Start),
			duration.Normalize(t.End),
		))
	}
	return out
}

func formatValidationErrors(what string, errs []error) error {
	msg := fmt.Sprintf("%s validation failed (%d errors):", what, len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
