package importer

import (
	"testing"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestConvert_DerivesDurations(t *testing.T) {
	s := &ScheduleImport{Tasks: []TaskImport{
		{Label: " Gym ", Start: "07:00", End: "08:15"},
		{Label: "Night", Start: "23:00", End: "22:00"},
	}}

	got := Convert(s)
	assert.Equal(t, []domain.TaskTemplate{
		{Label: "Gym", Start: "07:00", End: "08:15", Duration: 75},
		{Label: "Night", Start: "23:00", End: "22:00", Duration: -60},
	}, got)
}

func TestConvert_KeepsFileOrder(t *testing.T) {
	s := &ScheduleImport{Tasks: []TaskImport{
		{Label: "Late", Start: "20:00", End: "21:00"},
		{Label: "Early", Start: "06:00", End: "07:00"},
	}}

	got := Convert(s)
	assert.Equal(t, "Late", got[0].Label)
	assert.Equal(t, "Early", got[1].Label)
}

func TestConvert_PadsTimes(t *testing.T) {
	got := Convert(&ScheduleImport{Tasks: []TaskImport{{Label: "Gym", Start: "7:00", End: " 8:30"}}})
	assert.Equal(t, []domain.TaskTemplate{{Label: "Gym", Start: "07:00", End: "08:30", Duration: 90}}, got)
}
