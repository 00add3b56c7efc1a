// Package catalog holds the canonical set of skills recognized by the extractor.
package catalog

import (
	"sort"
	"strings"
)

// Categories maps a category name to the skills it groups.
type Categories map[string][]string

// Catalog is an immutable set of lowercase skill names.
type Catalog struct {
	skills     map[string]struct{}
	categories Categories
}

// Build flattens all categories into a deduplicated lowercase skill set.
// Blank names are dropped. An empty input yields an empty catalog.
func Build(categories Categories) *Catalog {
	c := &Catalog{
		skills:     make(map[string]struct{}),
		categories: make(Categories, len(categories)),
	}

	for category, names := range categories {
		kept := make([]string, 0, len(names))
		for _, name := range names {
			skill := strings.ToLower(strings.TrimSpace(name))
			if skill == "" {
				continue
			}
			c.skills[skill] = struct{}{}
			kept = append(kept, skill)
		}
		c.categories[category] = kept
	}

	return c
}

// Contains reports whether skill (already lowercase) is part of the catalog.
func (c *Catalog) Contains(skill string) bool {
	_, ok := c.skills[skill]
	return ok
}

// Len returns the number of distinct skills.
func (c *Catalog) Len() int {
	return len(c.skills)
}

// Skills returns the catalog skills in lexical order.
func (c *Catalog) Skills() []string {
	skills := make([]string, 0, len(c.skills))
	for skill := range c.skills {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

// CategoryNames returns category names in lexical order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Category returns a copy of the normalized skills of the named category.
func (c *Catalog) Category(name string) []string {
	return append([]string(nil), c.categories[name]...)
}
