package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowlens/flowlens/schema"
)

// calendarFile is the YAML shape of the PI calendar:
//
//	pi_windows:
//	  - name: 26Q1
//	    start_date: 2026-01-01
//	    end_date: 2026-03-31
type calendarFile struct {
	PIWindows []calendarWindow `yaml:"pi_windows"`
}

type calendarWindow struct {
	Name      string `yaml:"name"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

// LoadPICalendar reads the ordered PI window table from a YAML file. List
// order is preserved: it is the resolution order for overlapping windows.
func (FileSource) LoadPICalendar(path string) ([]schema.PIWindow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PI calendar: %w", err)
	}

	var file calendarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse PI calendar %s: %w", path, err)
	}

	windows := make([]schema.PIWindow, 0, len(file.PIWindows))
	for i, w := range file.PIWindows {
		if w.Name == "" {
			return nil, fmt.Errorf("%s: PI window %d has no name", path, i)
		}
		start, err := parseDate(w.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%s: PI %q start_date: %w", path, w.Name, err)
		}
		end, err := parseDate(w.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%s: PI %q end_date: %w", path, w.Name, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%s: PI %q ends before it starts", path, w.Name)
		}
		windows = append(windows, schema.PIWindow{Name: w.Name, StartDate: start, EndDate: end})
	}
	return windows, nil
}
