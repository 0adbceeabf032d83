// Package catalog holds the static description of what a session installs:
// categories of tool entries, the install command template for each category,
// and the ordered sequence of stages a session walks through.
package catalog

import (
	"strings"
	"time"
)

// IDPlaceholder is replaced by the entry identifier(s) in a category template.
const IDPlaceholder = "{id}"

// Defaults applied while loading.
const (
	DefaultBatchSize   = 1
	DefaultStepTimeout = 120 * time.Second
)

// ToolEntry is one installable item. Entries are immutable after load.
type ToolEntry struct {
	ID         string
	Name       string
	Check      string
	MinVersion string
}

// DisplayName returns the human name, falling back to the identifier.
func (e ToolEntry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Probe returns the first whitespace-delimited token of the check command,
// or "" when the entry has no check. Only this token is looked up on the
// search path; whether it is really the installed binary is not verified.
func (e ToolEntry) Probe() string {
	fields := strings.Fields(e.Check)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Group is a named, ordered subset of a category's entries.
type Group struct {
	Name    string
	Entries []ToolEntry
}

// Category is the configuration record the installer is parameterized by.
type Category struct {
	Name      string
	Title     string
	Kind      string
	Template  string
	Timeout   time.Duration
	BatchSize int
	Requires  string
	Groups    []Group
}

// Entries returns all entries across groups in list order.
func (c Category) Entries() []ToolEntry {
	var out []ToolEntry
	for _, g := range c.Groups {
		out = append(out, g.Entries...)
	}
	return out
}

// Len returns the number of entries in the category.
func (c Category) Len() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Entries)
	}
	return n
}

// Command renders the install command line for one or more identifiers.
func (c Category) Command(ids ...string) string {
	return strings.ReplaceAll(c.Template, IDPlaceholder, strings.Join(ids, " "))
}

// Step is a one-off command run outside the batch loop.
type Step struct {
	Command      string
	Description  string
	AllowFailure bool
	Timeout      time.Duration
	// Dir is the working directory. Empty means the current one.
	Dir string
}

// Project describes project-specific discovery commands, run only when Dir
// exists and Requires resolves on the search path.
type Project struct {
	Dir      string
	Requires string
	Steps    []Step
}

// StageKind identifies what a Stage does.
type StageKind string

// Stage kinds.
const (
	StageInstall StageKind = "install"
	StageRun     StageKind = "run"
	StageProject StageKind = "project"
	StageInvalid StageKind = "invalid"
)

// Stage is one element of the session sequence. Exactly one field is set.
type Stage struct {
	Install string
	Run     *Step
	Project *Project
}

// Kind reports which action the stage carries.
func (s Stage) Kind() StageKind {
	set := 0
	kind := StageInvalid
	if s.Install != "" {
		set++
		kind = StageInstall
	}
	if s.Run != nil {
		set++
		kind = StageRun
	}
	if s.Project != nil {
		set++
		kind = StageProject
	}
	if set != 1 {
		return StageInvalid
	}
	return kind
}

// Catalog is the full static description of a session.
type Catalog struct {
	Categories []Category
	Sequence   []Stage
}

// Category looks up a category by name.
func (c *Catalog) Category(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// CategoryNames returns category names in declaration order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	return names
}

// EntryCount returns the number of entries across all categories.
func (c *Catalog) EntryCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += cat.Len()
	}
	return n
}
