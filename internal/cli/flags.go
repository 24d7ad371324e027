package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// minutesValue is a pflag.Value that only accepts positive minute counts.
type minutesValue int

func (m *minutesValue) String() string { return strconv.Itoa(int(*m)) }

func (m *minutesValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("expected whole minutes, got %q", s)
	}
	if n <= 0 {
		return fmt.Errorf("minutes must be positive, got %d", n)
	}
	*m = minutesValue(n)
	return nil
}

func (m *minutesValue) Type() string { return "minutes" }

// addMinutesFlag registers a required --minutes flag on fs.
func addMinutesFlag(fs *pflag.FlagSet, target *int, usage string) {
	fs.VarP((*minutesValue)(target), "minutes", "m", usage)
}

// addApplyTodayFlag registers --apply-today on fs.
func addApplyTodayFlag(fs *pflag.FlagSet, target *bool) {
	fs.BoolVar(target, "apply-today", false, "Also replace today's tasks with the saved schedule")
}
