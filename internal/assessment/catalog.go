package assessment

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var definitionFS embed.FS

// Catalog is the full set of loaded assessment definitions, keyed by type.
// Construct with Load; treat as read-only afterwards.
type Catalog struct {
	byType map[string]*Definition
	order  []string // definition file order, for stable listings
}

// Load parses and validates every embedded definition file. Any structural
// defect in any file fails the whole load — a partially valid catalog would
// push the failure to scoring time, which is exactly what the validation
// exists to prevent.
func Load() (*Catalog, error) {
	entries, err := fs.Glob(definitionFS, "definitions/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("assessment: glob definitions: %w", err)
	}
	sort.Strings(entries)

	c := &Catalog{byType: make(map[string]*Definition, len(entries))}

	for _, path := range entries {
		raw, err := definitionFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("assessment: read %s: %w", path, err)
		}

		var def Definition
		if err := yaml.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("assessment: parse %s: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("assessment: %s: %w", path, err)
		}

		// File name and declared type must agree so a copy-paste error in one
		// of them is caught immediately.
		base := strings.TrimSuffix(strings.TrimPrefix(path, "definitions/"), ".yaml")
		if base != def.Type {
			return nil, fmt.Errorf("assessment: %s declares type %q", path, def.Type)
		}
		if _, dup := c.byType[def.Type]; dup {
			return nil, fmt.Errorf("assessment: duplicate definition for type %q", def.Type)
		}

		c.byType[def.Type] = &def
		c.order = append(c.order, def.Type)
	}

	if len(c.byType) == 0 {
		return nil, fmt.Errorf("assessment: no definitions embedded")
	}
	return c, nil
}

// Get returns the definition for an assessment type, or false when unknown.
func (c *Catalog) Get(assessmentType string) (*Definition, bool) {
	def, ok := c.byType[assessmentType]
	return def, ok
}

// List returns all definitions in catalog order.
func (c *Catalog) List() []*Definition {
	out := make([]*Definition, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.byType[t])
	}
	return out
}

// Types returns the known assessment type identifiers in catalog order.
func (c *Catalog) Types() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
