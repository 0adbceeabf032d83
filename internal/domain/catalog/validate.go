package catalog

import (
	"fmt"
	"strings"

	"github.com/revelare/toolbelt/internal/validation"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a catalog.
type ValidationErrors []ValidationError

// Error joins all problems, one per line.
func (e ValidationErrors) Error() string {
	lines := make([]string, 0, len(e))
	for _, v := range e {
		lines = append(lines, v.Error())
	}
	return "invalid catalog:\n  " + strings.Join(lines, "\n  ")
}

// Validate checks the catalog and returns ValidationErrors when anything is wrong.
func (c *Catalog) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		field := fmt.Sprintf("categories[%d]", i)
		if cat.Name == "" {
			add(field+".name", "name is required")
		} else if seen[cat.Name] {
			add(field+".name", "duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true

		if cat.Title == "" {
			add(field+".title", "title is required")
		}
		if !strings.Contains(cat.Template, IDPlaceholder) {
			add(field+".template", "template must contain %s", IDPlaceholder)
		}
		if cat.Timeout <= 0 {
			add(field+".timeout", "timeout must be positive")
		}
		if cat.BatchSize < 1 {
			add(field+".batch_size", "batch size must be at least 1")
		}
		if cat.Requires != "" {
			if err := validation.ValidateExecutableName(cat.Requires); err != nil {
				add(field+".requires", "%v", err)
			}
		}

		for gi, g := range cat.Groups {
			for ei, e := range g.Entries {
				efield := fmt.Sprintf("%s.groups[%d].entries[%d]", field, gi, ei)
				if err := validation.Validate(cat.Kind, e.ID); err != nil {
					add(efield+".id", "%v", err)
				}
				if probe := e.Probe(); probe != "" {
					if err := validation.ValidateExecutableName(probe); err != nil {
						add(efield+".check", "%v", err)
					}
				}
			}
		}
	}

	for i, stage := range c.Sequence {
		field := fmt.Sprintf("sequence[%d]", i)
		switch stage.Kind() {
		case StageInstall:
			if !seen[stage.Install] {
				add(field+".install", "unknown category %q", stage.Install)
			}
		case StageRun:
			validateStep(stage.Run, field+".run", add)
		case StageProject:
			if stage.Project.Dir == "" {
				add(field+".project.dir", "dir is required")
			}
			if stage.Project.Requires != "" {
				if err := validation.ValidateExecutableName(stage.Project.Requires); err != nil {
					add(field+".project.requires", "%v", err)
				}
			}
			for si := range stage.Project.Steps {
				validateStep(&stage.Project.Steps[si], fmt.Sprintf("%s.project.steps[%d]", field, si), add)
			}
		default:
			add(field, "stage must set exactly one of install, run or project")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateStep(s *Step, field string, add func(string, string, ...interface{})) {
	if strings.TrimSpace(s.Command) == "" {
		add(field+".command", "command is required")
	}
	if s.Timeout <= 0 {
		add(field+".timeout", "timeout must be positive")
	}
}
