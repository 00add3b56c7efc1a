package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildLowercasesAndDeduplicates(t *testing.T) {
	c := Build(Categories{
		"languages": {"Python", " Go ", "python"},
		"data":      {"SQL", "PYTHON", ""},
	})

	want := []string{"go", "python", "sql"}
	if diff := cmp.Diff(want, c.Skills()); diff != "" {
		t.Fatalf("unexpected skills (-want +got):\n%s", diff)
	}

	if !c.Contains("python") {
		t.Fatalf("expected python in catalog")
	}
	if c.Contains("Python") {
		t.Fatalf("lookups are expected to use lowercase names")
	}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	for name, categories := range map[string]Categories{
		"nil":             nil,
		"empty":           {},
		"empty category":  {"languages": nil},
		"only blank name": {"languages": {"   "}},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := Build(categories).Len(); got != 0 {
				t.Fatalf("expected empty catalog, got %d skills", got)
			}
		})
	}
}

func TestCategoriesAreCopied(t *testing.T) {
	source := Categories{"languages": {"Go"}}
	c := Build(source)

	source["languages"][0] = "Rust"
	got := c.Category("languages")
	got[0] = "java"

	if diff := cmp.Diff([]string{"go"}, c.Category("languages")); diff != "" {
		t.Fatalf("catalog mutated through caller slices (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"languages"}, c.CategoryNames()); diff != "" {
		t.Fatalf("unexpected category names (-want +got):\n%s", diff)
	}
}

func TestDefaultCatalogIsUsable(t *testing.T) {
	c := Build(Default())
	for _, skill := range []string{"python", "go", "c++", "node.js", "power bi", "ci/cd"} {
		if !c.Contains(skill) {
			t.Fatalf("expected default catalog to contain %q", skill)
		}
	}
}
