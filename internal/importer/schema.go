package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Format selects the decoder for a schedule file.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ScheduleImport is the decoded content of a schedule file. A file is either
// a bare list of tasks or an object with a "tasks" list.
type ScheduleImport struct {
	Tasks []TaskImport `json:"tasks" yaml:"tasks"`
}

// TaskImport is one entry of a schedule file. Any duration in the file is
// ignored; it is always derived from start and end.
type TaskImport struct {
	Label string `json:"label" yaml:"label"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// LoadScheduleImport reads and parses a schedule file. The format follows the
// file extension; unknown extensions are sniffed from the content.
func LoadScheduleImport(path string) (*ScheduleImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScheduleImport(data, formatForPath(path))
}

// ParseScheduleImport decodes data in the given format.
func ParseScheduleImport(data []byte, format Format) (*ScheduleImport, error) {
	if format == FormatAuto {
		format = sniffFormat(data)
	}
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
}

func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

func sniffFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatYAML
}

func parseJSON(data []byte) (*ScheduleImport, error) {
	trimmed := bytes.TrimSpace(data)
	var s ScheduleImport
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &s.Tasks); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		return &s, nil
	}
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &s, nil
}

func parseYAML(data []byte) (*ScheduleImport, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	var s ScheduleImport
	if len(doc.Content) == 0 {
		return &s, nil
	}

	root := doc.Content[0]
	var err error
	switch root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&s.Tasks)
	case yaml.MappingNode:
		err = root.Decode(&s)
	default:
		return nil, fmt.Errorf("parsing import file: line %d: expected a list of tasks", root.Line)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &s, nil
}
