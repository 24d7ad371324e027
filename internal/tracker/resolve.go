package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/duration"
)

// ResolveTask turns a user reference into a task key. ref is either a
// 1-based position in the day's task list or a label, matched exactly first
// and then case-insensitively. start narrows a label shared by several tasks.
func ResolveTask(rec domain.DailyRecord, ref, start string) (domain.TaskKey, error) {
	ref = strings.TrimSpace(ref)
	if start = strings.TrimSpace(start); start != "" {
		start = duration.Normalize(start)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(rec.Tasks) {
			return domain.TaskKey{}, fmt.Errorf("task #%d: %w", n, ErrTaskNotFound)
		}
		return rec.Tasks[n-1].Key(), nil
	}

	matches := matchTasks(rec.Tasks, func(t domain.Task) bool { return t.Label == ref }, start)
	if len(matches) == 0 {
		matches = matchTasks(rec.Tasks, func(t domain.Task) bool { return strings.EqualFold(t.Label, ref) }, start)
	}

	switch len(matches) {
	case 0:
		if start != "" {
			return domain.TaskKey{}, fmt.Errorf("task %q at %s: %w", ref, start, ErrTaskNotFound)
		}
		return domain.TaskKey{}, fmt.Errorf("task %q: %w", ref, ErrTaskNotFound)
	case 1:
		return matches[0].Key(), nil
	default:
		starts := make([]string, 0, len(matches))
		for _, t := range matches {
			starts = append(starts, t.Start)
		}
		return domain.TaskKey{}, fmt.Errorf("task %q starts at %s, pick one with --start: %w",
			ref, strings.Join(starts, ", "), ErrAmbiguousTask)
	}
}

func matchTasks(tasks []domain.Task, match func(domain.Task) bool, start string) []domain.Task {
	var out []domain.Task
	for _, t := range tasks {
		if match(t) && (start == "" || t.Start == start) {
			out = append(out, t)
		}
	}
	return out
}

// ResolvePenalty turns a user reference into a penalty id. ref is either a
// 1-based position among open penalties or a prefix of a penalty id.
func ResolvePenalty(rec domain.DailyRecord, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty penalty reference: %w", ErrPenaltyNotFound)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		open := rec.OpenPenalties()
		if n >= 1 && n <= len(open) {
			return open[n-1].ID, nil
		}
		if !hasIDPrefix(rec.Penalties, ref) {
			return "", fmt.Errorf("penalty #%d: %w", n, ErrPenaltyNotFound)
		}
	}

	var found []string
	for _, p := range rec.Penalties {
		if p.ID == ref {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, ref) {
			found = append(found, p.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("penalty %q: %w", ref, ErrPenaltyNotFound)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("penalty prefix %q matches %d penalties: %w", ref, len(found), ErrAmbiguousPenalty)
	}
}

func hasIDPrefix(penalties []domain.Penalty, prefix string) bool {
	for _, p := range penalties {
		if strings.HasPrefix(p.ID, prefix) {
			return true
		}
	}
	return false
}
