// Package testutil provides test helpers and utilities for toolbelt tests.
package testutil

import (
	"time"

	"github.com/revelare/toolbelt/internal/domain/catalog"
)

// CategoryBuilder builds catalog categories for tests.
type CategoryBuilder struct {
	cat catalog.Category
}

// NewCategoryBuilder creates a builder for a winget-style category with a
// single group named after the category.
func NewCategoryBuilder(name string) *CategoryBuilder {
	return &CategoryBuilder{
		cat: catalog.Category{
			Name:      name,
			Title:     name + " tools",
			Kind:      "generic",
			Template:  "install {id}",
			Timeout:   time.Minute,
			BatchSize: 1,
			Groups:    []catalog.Group{{Name: name}},
		},
	}
}

// WithTemplate sets the install command template.
func (b *CategoryBuilder) WithTemplate(template string) *CategoryBuilder {
	b.cat.Template = template
	return b
}

// WithKind sets the identifier kind.
func (b *CategoryBuilder) WithKind(kind string) *CategoryBuilder {
	b.cat.Kind = kind
	return b
}

// WithTimeout sets the per-command timeout.
func (b *CategoryBuilder) WithTimeout(d time.Duration) *CategoryBuilder {
	b.cat.Timeout = d
	return b
}

// WithBatchSize sets how many identifiers share one command.
func (b *CategoryBuilder) WithBatchSize(n int) *CategoryBuilder {
	b.cat.BatchSize = n
	return b
}

// WithRequires sets the prerequisite executable.
func (b *CategoryBuilder) WithRequires(name string) *CategoryBuilder {
	b.cat.Requires = name
	return b
}

// WithTool appends an entry to the current group.
func (b *CategoryBuilder) WithTool(id, name, check string) *CategoryBuilder {
	last := &b.cat.Groups[len(b.cat.Groups)-1]
	last.Entries = append(last.Entries, catalog.ToolEntry{ID: id, Name: name, Check: check})
	return b
}

// WithPackages appends bare identifiers to the current group.
func (b *CategoryBuilder) WithPackages(ids ...string) *CategoryBuilder {
	for _, id := range ids {
		b.WithTool(id, "", "")
	}
	return b
}

// WithGroup starts a new group; following entries are added to it.
func (b *CategoryBuilder) WithGroup(name string) *CategoryBuilder {
	if len(b.cat.Groups) == 1 && len(b.cat.Groups[0].Entries) == 0 {
		b.cat.Groups[0].Name = name
		return b
	}
	b.cat.Groups = append(b.cat.Groups, catalog.Group{Name: name})
	return b
}

// Build returns the constructed category.
func (b *CategoryBuilder) Build() catalog.Category {
	out := b.cat
	out.Groups = make([]catalog.Group, len(b.cat.Groups))
	for i, g := range b.cat.Groups {
		out.Groups[i] = catalog.Group{Name: g.Name, Entries: append([]catalog.ToolEntry(nil), g.Entries...)}
	}
	return out
}
