package posting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/skill-matcher/internal/levels"
)

func samplePostings() *Postings {
	return &Postings{Items: []*Posting{
		{Company: "stripe", Title: "Software Engineering Intern", URL: "https://example.com/1", Location: "Dublin"},
		{Company: "asml", Title: "Data Intern", URL: "https://example.com/2", Location: "Veldhoven, Netherlands",
			Required: levels.Levels{"python": 3}, Preferred: levels.Levels{"go": 1}},
		{Company: "Stripe", Title: "Working Student", URL: "https://example.com/3"},
	}}
}

func TestExcludePreservesOrder(t *testing.T) {
	p := samplePostings()

	removed := p.Exclude(CompanyField, []string{" STRIPE "})
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed postings, got %d", len(removed))
	}
	if p.Len() != 1 || p.Items[0].Company != "asml" {
		t.Fatalf("unexpected remaining postings: %+v", p.Items)
	}

	if removed := p.Exclude(URLField, nil); removed != nil {
		t.Fatalf("expected nothing removed for empty targets, got %v", removed)
	}
}

func TestExcludeByURL(t *testing.T) {
	p := samplePostings()

	removed := p.Exclude(URLField, []string{"https://example.com/3", "https://example.com/404"})
	if len(removed) != 1 || removed[0].URL != "https://example.com/3" {
		t.Fatalf("unexpected removed postings: %+v", removed)
	}

	want := []string{"https://example.com/1", "https://example.com/2"}
	if diff := cmp.Diff(want, p.URLs()); diff != "" {
		t.Fatalf("unexpected urls (-want +got):\n%s", diff)
	}
}

func TestReportByCompany(t *testing.T) {
	report := samplePostings().ReportByCompany()

	entries := report["asml"]
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry for asml, got %d", len(entries))
	}
	if entries[0]["required_skills"] != "{'python': 3}" {
		t.Fatalf("unexpected required skills: %q", entries[0]["required_skills"])
	}
	if entries[0]["preferred_skills"] != "{'go': 1}" {
		t.Fatalf("unexpected preferred skills: %q", entries[0]["preferred_skills"])
	}
	if _, ok := report["stripe"][0]["required_skills"]; ok {
		t.Fatalf("did not expect required skills for posting without extraction")
	}
}

func TestExcludeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded, err := GetExcludedPostingsFromFile(path)
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if len(excluded.Items) != 0 {
		t.Fatalf("expected empty exclude list")
	}

	excluded.Append(samplePostings().ToExcluded())
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("writing exclude file: %v", err)
	}

	loaded, err := GetExcludedPostingsFromFile(path)
	if err != nil {
		t.Fatalf("reading exclude file: %v", err)
	}
	want := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	if diff := cmp.Diff(want, loaded.URLs()); diff != "" {
		t.Fatalf("unexpected urls (-want +got):\n%s", diff)
	}
}

func TestGetExcludedPostingsFromEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	excluded, err := GetExcludedPostingsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(excluded.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(excluded.Items))
	}
}

func TestDumpToTmpFile(t *testing.T) {
	name, err := samplePostings().DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	info, err := os.Stat(name)
	if err != nil {
		t.Fatalf("dump file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected dump file to have content")
	}
}

func TestDumpOmitsUnknownScrapeTime(t *testing.T) {
	scraped := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &Postings{Items: []*Posting{
		{Company: "stripe", URL: "https://example.com/1"},
		{Company: "asml", URL: "https://example.com/2", ScrapedAt: scraped},
	}}

	name, err := p.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	content, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var dumped struct {
		Items []map[string]any
	}
	if err := json.Unmarshal(content, &dumped); err != nil {
		t.Fatalf("decoding dump: %v", err)
	}

	if _, ok := dumped.Items[0]["date_scraped"]; ok {
		t.Fatalf("expected no date_scraped for unknown time, got %v", dumped.Items[0])
	}
	if dumped.Items[1]["date_scraped"] != "2024-03-01T10:00:00Z" {
		t.Fatalf("unexpected date_scraped: %v", dumped.Items[1]["date_scraped"])
	}
}
