package install

import (
	"time"

	"github.com/revelare/toolbelt/internal/domain/catalog"
)

// EntryResult captures what happened to a single entry.
type EntryResult struct {
	Entry    catalog.ToolEntry `json:"-"`
	ID       string            `json:"id"`
	Group    string            `json:"group"`
	Outcome  Outcome           `json:"outcome"`
	Command  string            `json:"command,omitempty"`
	Duration time.Duration     `json:"duration_ns,omitempty"`
	Detail   string            `json:"detail,omitempty"`
}

// Tally is the installed/total pair for one catalog run.
// Installed never exceeds Total.
type Tally struct {
	Installed int `json:"installed"`
	Total     int `json:"total"`
}

// Add records one outcome.
func (t *Tally) Add(o Outcome) {
	t.Total++
	if o.Counts() {
		t.Installed++
	}
}

// Plus returns the sum of two tallies.
func (t Tally) Plus(other Tally) Tally {
	return Tally{Installed: t.Installed + other.Installed, Total: t.Total + other.Total}
}

// Complete reports whether every entry is installed or already present.
func (t Tally) Complete() bool {
	return t.Installed == t.Total
}

// CategoryResult is the outcome of InstallAll for one category.
type CategoryResult struct {
	Name       string        `json:"name"`
	Title      string        `json:"title"`
	Tally      Tally         `json:"tally"`
	Entries    []EntryResult `json:"entries"`
	SkipReason string        `json:"skip_reason,omitempty"`
	Spawned    int           `json:"spawned"`
	Duration   time.Duration `json:"duration_ns"`
}

// Breakdown counts entries per outcome.
func (r CategoryResult) Breakdown() map[Outcome]int {
	out := make(map[Outcome]int, len(Outcomes))
	for _, e := range r.Entries {
		out[e.Outcome]++
	}
	return out
}

// Failures returns the entries that did not count toward the tally.
func (r CategoryResult) Failures() []EntryResult {
	var out []EntryResult
	for _, e := range r.Entries {
		if !e.Outcome.Counts() {
			out = append(out, e)
		}
	}
	return out
}
