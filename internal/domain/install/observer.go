package install

import "github.com/revelare/toolbelt/internal/domain/catalog"

// Observer receives progress events while catalogs and steps run.
type Observer interface {
	CategoryStarted(cat catalog.Category)
	GroupStarted(cat catalog.Category, group catalog.Group)
	EntryFinished(cat catalog.Category, result EntryResult)
	CategoryFinished(result CategoryResult)
	StepStarted(step catalog.Step)
	StepFinished(result StepResult)
}

// NopObserver ignores every event. Embed it to implement only some methods.
type NopObserver struct{}

// CategoryStarted does nothing.
func (NopObserver) CategoryStarted(catalog.Category) {}

// GroupStarted does nothing.
func (NopObserver) GroupStarted(catalog.Category, catalog.Group) {}

// EntryFinished does nothing.
func (NopObserver) EntryFinished(catalog.Category, EntryResult) {}

// CategoryFinished does nothing.
func (NopObserver) CategoryFinished(CategoryResult) {}

// StepStarted does nothing.
func (NopObserver) StepStarted(catalog.Step) {}

// StepFinished does nothing.
func (NopObserver) StepFinished(StepResult) {}

var _ Observer = NopObserver{}
