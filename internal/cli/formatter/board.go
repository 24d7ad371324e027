package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/protocol/internal/domain"
)

// FormatBoard renders the day's tasks and open penalties.
func FormatBoard(rec domain.DailyRecord, weekend bool) string {
	var b strings.Builder

	title := rec.Date.String()
	if weekend {
		title += "  " + StylePurple.Render("WEEKEND")
	}
	closed, total := rec.Progress()
	b.WriteString(Bold(title) + "  " + RenderProgress(closed, total, 12) + "\n\n")

	b.WriteString(Header("Tasks") + "\n")
	b.WriteString(FormatTasks(rec.Tasks))
	b.WriteString("\n")
	b.WriteString(Header("Penalties") + "\n")
	b.WriteString(FormatPenalties(rec))

	return RenderBox("Protocol", strings.TrimRight(b.String(), "\n"))
}

// FormatTasks renders the task table, numbered from 1.
func FormatTasks(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks scheduled.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		label := t.Label
		if t.Completed {
			label = Dim(label)
		}
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			label,
			TimeRange(t.Start, t.End),
			FormatMinutes(t.Duration),
			TaskStatePill(t),
		})
	}
	return RenderTable([]string{"#", "TASK", "TIME", "DURATION", "STATE"}, rows)
}

// FormatPenalties lists open penalties numbered from 1 with their total.
// Settled penalties are left out.
func FormatPenalties(rec domain.DailyRecord) string {
	open := rec.OpenPenalties()
	if len(open) == 0 {
		return StyleGreen.Render("No open penalties.") + "\n"
	}
	rows := make([][]string, 0, len(open))
	for i, p := range open {
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			TruncID(p.ID),
			p.Label,
			PenaltyStyle(p.Duration).Render(FormatMinutes(p.Duration)),
		})
	}
	total := rec.OpenPenaltyMinutes()
	return RenderTable([]string{"#", "ID", "LABEL", "DEBT"}, rows) +
		fmt.Sprintf("%s %s\n", Bold("TOTAL"), PenaltyStyle(total).Render(FormatMinutes(total)))
}

// FormatSchedule renders the base schedule in stored order.
func FormatSchedule(s domain.BaseSchedule, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Base schedule") + "\n")
	if len(s.Tasks) == 0 {
		b.WriteString(Dim("No tasks. Add one with 'protocol schedule add' or import a file.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(s.Tasks))
	sum := 0
	for i, t := range s.Tasks {
		sum += t.Duration
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			t.Label,
			TimeRange(t.Start, t.End),
			FormatMinutes(t.Duration),
		})
	}
	b.WriteString(RenderTable([]string{"#", "TASK", "TIME", "DURATION"}, rows))
	b.WriteString(fmt.Sprintf("%s %s  %s\n", Bold("PLANNED"), FormatMinutes(sum),
		Dim("updated "+HumanTimestamp(s.UpdatedAt, now))))
	return b.String()
}
