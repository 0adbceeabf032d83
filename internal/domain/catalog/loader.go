package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a catalog document.
type Format string

// Supported catalog formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported catalog format %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// catalogDTO is the data transfer object for parsing catalog documents.
type catalogDTO struct {
	Categories []categoryDTO `yaml:"categories" toml:"categories"`
	Sequence   []stageDTO    `yaml:"sequence" toml:"sequence"`
}

type categoryDTO struct {
	Name      string     `yaml:"name" toml:"name"`
	Title     string     `yaml:"title" toml:"title"`
	Kind      string     `yaml:"kind" toml:"kind"`
	Template  string     `yaml:"template" toml:"template"`
	Timeout   string     `yaml:"timeout" toml:"timeout"`
	BatchSize int        `yaml:"batch_size" toml:"batch_size"`
	Requires  string     `yaml:"requires" toml:"requires"`
	Groups    []groupDTO `yaml:"groups" toml:"groups"`
}

type groupDTO struct {
	Name    string        `yaml:"name" toml:"name"`
	Entries []interface{} `yaml:"entries" toml:"entries"`
}

type stepDTO struct {
	Command      string `yaml:"command" toml:"command"`
	Description  string `yaml:"description" toml:"description"`
	AllowFailure bool   `yaml:"allow_failure" toml:"allow_failure"`
	Timeout      string `yaml:"timeout" toml:"timeout"`
}

type projectDTO struct {
	Dir      string    `yaml:"dir" toml:"dir"`
	Requires string    `yaml:"requires" toml:"requires"`
	Steps    []stepDTO `yaml:"steps" toml:"steps"`
}

type stageDTO struct {
	Install string      `yaml:"install" toml:"install"`
	Run     *stepDTO    `yaml:"run" toml:"run"`
	Project *projectDTO `yaml:"project" toml:"project"`
}

// Parse decodes and validates a catalog document.
func Parse(data []byte, format Format) (*Catalog, error) {
	var dto catalogDTO
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&dto); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&dto); err != nil {
			return nil, fmt.Errorf("failed to parse catalog TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	cat, err := dto.toCatalog()
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	cat, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

func (d catalogDTO) toCatalog() (*Catalog, error) {
	cat := &Catalog{
		Categories: make([]Category, 0, len(d.Categories)),
		Sequence:   make([]Stage, 0, len(d.Sequence)),
	}

	for i, c := range d.Categories {
		category, err := c.toCategory()
		if err != nil {
			return nil, fmt.Errorf("categories[%d] (%s): %w", i, c.Name, err)
		}
		cat.Categories = append(cat.Categories, category)
	}

	for i, s := range d.Sequence {
		stage, err := s.toStage()
		if err != nil {
			return nil, fmt.Errorf("sequence[%d]: %w", i, err)
		}
		cat.Sequence = append(cat.Sequence, stage)
	}

	return cat, nil
}

func (c categoryDTO) toCategory() (Category, error) {
	timeout, err := parseDuration(c.Timeout, 0)
	if err != nil {
		return Category{}, err
	}
	batch := c.BatchSize
	if batch == 0 {
		batch = DefaultBatchSize
	}

	category := Category{
		Name:      c.Name,
		Title:     c.Title,
		Kind:      c.Kind,
		Template:  c.Template,
		Timeout:   timeout,
		BatchSize: batch,
		Requires:  c.Requires,
		Groups:    make([]Group, 0, len(c.Groups)),
	}

	for _, g := range c.Groups {
		group := Group{Name: g.Name, Entries: make([]ToolEntry, 0, len(g.Entries))}
		for _, raw := range g.Entries {
			entry, err := parseEntry(raw)
			if err != nil {
				return Category{}, fmt.Errorf("group %s: %w", g.Name, err)
			}
			group.Entries = append(group.Entries, entry)
		}
		category.Groups = append(category.Groups, group)
	}

	return category, nil
}

// entryKeys are the fields an entry map may carry.
var entryKeys = []string{"id", "name", "check", "min_version"}

// parseEntry parses a single entry from either a bare identifier or a map.
// Map entries are decoded as interface{}, out of reach of the strict decoder
// modes, so unknown and mistyped keys are rejected here.
func parseEntry(raw interface{}) (ToolEntry, error) {
	switch v := raw.(type) {
	case string:
		return ToolEntry{ID: v}, nil
	case map[string]interface{}:
		var unknown []string
		for key := range v {
			if !slices.Contains(entryKeys, key) {
				unknown = append(unknown, key)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return ToolEntry{}, fmt.Errorf("entry has unknown field(s) %s (allowed: %s)",
				strings.Join(unknown, ", "), strings.Join(entryKeys, ", "))
		}

		fields := make(map[string]string, len(v))
		for key, value := range v {
			str, ok := value.(string)
			if !ok {
				return ToolEntry{}, fmt.Errorf("entry field %s must be a string, got %T", key, value)
			}
			fields[key] = str
		}
		if fields["id"] == "" {
			return ToolEntry{}, fmt.Errorf("entry must have an id")
		}
		return ToolEntry{
			ID:         fields["id"],
			Name:       fields["name"],
			Check:      fields["check"],
			MinVersion: fields["min_version"],
		}, nil
	default:
		return ToolEntry{}, fmt.Errorf("entry must be a string or object, got %T", raw)
	}
}

func (s stepDTO) toStep() (Step, error) {
	timeout, err := parseDuration(s.Timeout, DefaultStepTimeout)
	if err != nil {
		return Step{}, err
	}
	return Step{
		Command:      s.Command,
		Description:  s.Description,
		AllowFailure: s.AllowFailure,
		Timeout:      timeout,
	}, nil
}

func (s stageDTO) toStage() (Stage, error) {
	stage := Stage{Install: s.Install}
	if s.Run != nil {
		step, err := s.Run.toStep()
		if err != nil {
			return Stage{}, err
		}
		stage.Run = &step
	}
	if s.Project != nil {
		project := &Project{Dir: s.Project.Dir, Requires: s.Project.Requires}
		for _, st := range s.Project.Steps {
			step, err := st.toStep()
			if err != nil {
				return Stage{}, err
			}
			project.Steps = append(project.Steps, step)
		}
		stage.Project = project
	}
	return stage, nil
}

func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	return d, nil
}
