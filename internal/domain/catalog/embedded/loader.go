// Package embedded provides the embedded catalog data and loader.
package embedded

import (
	_ "embed"

	"github.com/revelare/toolbelt/internal/domain/catalog"
)

//go:embed catalog.yaml
var catalogYAML []byte

// LoadCatalog loads the embedded default catalog.
func LoadCatalog() (*catalog.Catalog, error) {
	return catalog.Parse(catalogYAML, catalog.FormatYAML)
}

// Raw returns the embedded catalog document, for users who want to start
// their own override file from it.
func Raw() []byte {
	out := make([]byte, len(catalogYAML))
	copy(out, catalogYAML)
	return out
}
