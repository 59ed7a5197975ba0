package prefs

import "context"

// StaticCatalog implements TemplateCatalog over a fixed template list.
// Deployments whose template catalog lives in another service can wrap that
// service instead; tests and single-binary setups use this one.
type StaticCatalog struct {
	templates []Template
}

// NewStaticCatalog creates a catalog over the given templates
func NewStaticCatalog(templates ...Template) *StaticCatalog {
	return &StaticCatalog{templates: templates}
}

// SelectActiveTemplates implements TemplateCatalog
func (c *StaticCatalog) SelectActiveTemplates(ctx context.Context) ([]Template, error) {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out, nil
}
