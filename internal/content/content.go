package content

import (
	_ "embed"
	"fmt"

	"rightstep/internal/program"

	"gopkg.in/yaml.v3"
)

//go:embed weeks.yaml
var weeksYAML []byte

// WeekTheme is one week of the coaching curriculum.
type WeekTheme struct {
	Week  int      `yaml:"week"`
	Title string   `yaml:"title"`
	Theme string   `yaml:"theme"`
	Focus []string `yaml:"focus"`
}

// Weeks returns the full curriculum table from the embedded data file.
func Weeks() ([]WeekTheme, error) {
	var doc struct {
		Weeks []WeekTheme `yaml:"weeks"`
	}
	if err := yaml.Unmarshal(weeksYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse embedded curriculum: %w", err)
	}
	if len(doc.Weeks) != program.TotalWeeks {
		return nil, fmt.Errorf("embedded curriculum has %d weeks, expected %d", len(doc.Weeks), program.TotalWeeks)
	}
	return doc.Weeks, nil
}

// ForWeek returns the theme for a single week.
func ForWeek(week int) (*WeekTheme, error) {
	if week < 1 || week > program.TotalWeeks {
		return nil, fmt.Errorf("week %d is outside the program", week)
	}
	weeks, err := Weeks()
	if err != nil {
		return nil, err
	}
	return &weeks[week-1], nil
}

// Accessible returns the weeks unlocked so far. The ceiling comes from
// real elapsed time; debug viewing never widens it.
func Accessible(maxAccessibleWeek int) ([]WeekTheme, error) {
	weeks, err := Weeks()
	if err != nil {
		return nil, err
	}
	if maxAccessibleWeek < 1 {
		maxAccessibleWeek = 1
	}
	if maxAccessibleWeek > len(weeks) {
		maxAccessibleWeek = len(weeks)
	}
	return weeks[:maxAccessibleWeek], nil
}
