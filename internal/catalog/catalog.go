// Package catalog provides the static destination catalog.
// The catalog is compiled into the binary from destinations.yaml and never
// changes at runtime.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/travel-planner/internal/domain"
)

//go:embed destinations.yaml
var destinationsYAML []byte

// Catalog is an ordered, read-only set of destinations indexed by id.
type Catalog struct {
	list []domain.Destination
	byID map[string]domain.Destination
}

type file struct {
	Destinations []domain.Destination `yaml:"destinations"`
}

// Default parses the embedded catalog. It returns an error only if the
// embedded file is malformed, which is a build defect.
func Default() (*Catalog, error) {
	return Parse(destinationsYAML)
}

// Parse builds a Catalog from YAML. Every destination needs a non-empty,
// unique id and a name.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}

	c := &Catalog{byID: make(map[string]domain.Destination, len(f.Destinations))}
	for i, d := range f.Destinations {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" || strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("catalog.Parse: destination %d: id and name are required", i)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("catalog.Parse: duplicate destination id %q", d.ID)
		}
		c.byID[d.ID] = d
		c.list = append(c.list, d)
	}
	return c, nil
}

// Lookup returns the destination with the given id.
func (c *Catalog) Lookup(id string) (domain.Destination, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// List returns all destinations in file order.
func (c *Catalog) List() []domain.Destination {
	return append([]domain.Destination(nil), c.list...)
}
