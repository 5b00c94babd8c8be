package commands

import (
	"fmt"
	"strconv"
	"strings"

	"weekly/internal/document"
)

// ResolveTask finds a task by 1-based number in config order, or by exact id.
func ResolveTask(tasks []document.Task, ref string) (document.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return document.Task{}, fmt.Errorf("task reference required")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(tasks) {
			return document.Task{}, fmt.Errorf("task number out of range: %d", n)
		}
		return tasks[n-1], nil
	}
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}
	return document.Task{}, fmt.Errorf("task not found: %s", ref)
}

var dayColumns = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thursday": 3,
	"fri": 4, "friday": 4,
}

// ParseDay maps a weekday argument to a column index, Mon=0..Fri=4.
func ParseDay(arg string) (int, error) {
	col, ok := dayColumns[strings.ToLower(strings.TrimSpace(arg))]
	if !ok {
		return 0, fmt.Errorf("unknown day: %s (use mon..fri)", arg)
	}
	return col, nil
}
