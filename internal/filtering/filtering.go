package filtering

import (
	"fmt"
	"strings"

	"github.com/spigell/matchmaker/internal/profile"
)

// Condition is a single compatibility rule between a query profile and a candidate drawn from the
// opposite cohort.
type Condition interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool
	Status() Status

	Check(q, c *profile.Profile) bool
}

// Status represents runtime information about a condition.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// DisableByName marks a condition with the provided name as disabled while keeping it in the list.
// It reports whether a condition with that name exists.
func DisableByName(conditions []Condition, name, reason string) bool {
	found := false
	for _, condition := range conditions {
		if condition.Name() == name {
			condition.Disable(reason)
			found = true
		}
	}
	return found
}

// DisableAll disables every named condition, failing on names that match nothing.
func DisableAll(conditions []Condition, names []string, reason string) error {
	var unknown []string
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !DisableByName(conditions, name, reason) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown conditions: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Describe returns status entries for the provided conditions.
func Describe(conditions []Condition) []Status {
	statuses := make([]Status, 0, len(conditions))
	for _, condition := range conditions {
		statuses = append(statuses, condition.Status())
	}
	return statuses
}

// Enabled returns the conditions that take part in evaluation.
func Enabled(conditions []Condition) []Condition {
	enabled := make([]Condition, 0, len(conditions))
	for _, condition := range conditions {
		if condition.IsEnabled() {
			enabled = append(enabled, condition)
		}
	}
	return enabled
}
