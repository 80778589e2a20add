package template

import (
	"fmt"
	"sort"

	"github.com/redwanJemal/renderforge/internal/core/schema"
)

// Format is an output aspect-ratio preset. Every composition exists once per
// supported format, identified as "<templateID>-<format>".
type Format string

const (
	FormatStory     Format = "story"
	FormatPost      Format = "post"
	FormatLandscape Format = "landscape"
)

type FormatConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"`
}

// Formats maps every known format to its pixel dimensions.
var Formats = map[Format]FormatConfig{
	FormatStory:     {Width: 1080, Height: 1920, Label: "Story (9:16)"},
	FormatPost:      {Width: 1080, Height: 1080, Label: "Post (1:1)"},
	FormatLandscape: {Width: 1920, Height: 1080, Label: "Landscape (16:9)"},
}

// Meta is the catalog metadata for one template.
type Meta struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	SupportedFormats []Format `json:"supportedFormats"`
	DurationInFrames int      `json:"durationInFrames"`
	FPS              int      `json:"fps"`
}

// Definition ties template metadata to its property schema and defaults.
type Definition struct {
	Meta   Meta
	Schema schema.Schema
}

// DefaultProps returns the default property bag declared by the schema.
func (d Definition) DefaultProps() map[string]any {
	props := make(map[string]any, len(d.Schema.Fields))
	for _, f := range d.Schema.Fields {
		if f.Default != nil {
			props[f.Name] = f.Default
		}
	}
	return props
}

// SupportsFormat reports whether the template declares the given format.
func (d Definition) SupportsFormat(f Format) bool {
	for _, sf := range d.Meta.SupportedFormats {
		if sf == f {
			return true
		}
	}
	return false
}

// CompositionID returns the compositor-facing composition identifier.
func (d Definition) CompositionID(f Format) string {
	return d.Meta.ID + "-" + string(f)
}

// Catalog is the template registry. It is built once at startup from an
// explicit list; there is no registration by side effect.
type Catalog struct {
	templates map[string]Definition
	order     []string
}

// NewCatalog builds a catalog from the given definitions. Duplicate ids are
// rejected so catalog construction stays deterministic.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{templates: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if d.Meta.ID == "" {
			return nil, fmt.Errorf("template with empty id")
		}
		if _, dup := c.templates[d.Meta.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", d.Meta.ID)
		}
		c.templates[d.Meta.ID] = d
		c.order = append(c.order, d.Meta.ID)
	}
	return c, nil
}

// Get looks up one template definition.
func (c *Catalog) Get(id string) (Definition, bool) {
	d, ok := c.templates[id]
	return d, ok
}

// List returns all definitions in registration order.
func (c *Catalog) List() []Definition {
	out := make([]Definition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.templates[id])
	}
	return out
}

// IDs returns the sorted template ids, used in error messages.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.templates))
	for id := range c.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of registered templates.
func (c *Catalog) Count() int {
	return len(c.templates)
}
