package posting

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/spigell/skill-matcher/internal/levels"
)

const (
	URLField     = "URL"
	CompanyField = "Company"
)

type Postings struct {
	Items []*Posting
}

// Posting is a single job posting. Required and Preferred are filled by the
// extractor; both may contain the same skill.
type Posting struct {
	Company     string        `json:"company,omitempty"`
	Title       string        `json:"title,omitempty"`
	Location    string        `json:"location,omitempty"`
	URL         string        `json:"url,omitempty"`
	Description string        `json:"description_raw,omitempty"`
	ScrapedAt   time.Time     `json:"date_scraped,omitzero"`
	Required    levels.Levels `json:"required_skills,omitempty"`
	Preferred   levels.Levels `json:"preferred_skills,omitempty"`

	// Extra holds source columns unknown to the pipeline, written back unchanged.
	Extra map[string]string `json:"extra,omitempty"`
}

func (p *Posting) GetStringField(name string) string {
	switch name {
	case URLField:
		return p.URL
	case CompanyField:
		return p.Company
	default:
		return ""
	}
}

func (p *Postings) Len() int {
	return len(p.Items)
}

// Exclude removes every posting whose field equals one of targets
// (case-insensitive) and returns the removed postings. Order of the
// remaining postings is preserved.
func (p *Postings) Exclude(name string, targets []string) []*Posting {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[strings.ToLower(strings.TrimSpace(target))] = struct{}{}
	}

	return p.RemoveFunc(func(item *Posting) bool {
		_, ok := set[strings.ToLower(strings.TrimSpace(item.GetStringField(name)))]
		return ok
	})
}

// RemoveFunc drops postings for which drop returns true and returns them.
func (p *Postings) RemoveFunc(drop func(*Posting) bool) []*Posting {
	var removed []*Posting
	kept := p.Items[:0]
	for _, item := range p.Items {
		if drop(item) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	// release references held by the tail
	for i := len(kept); i < len(p.Items); i++ {
		p.Items[i] = nil
	}
	p.Items = kept
	return removed
}

func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByCompany groups postings by company with their extracted skills.
func (p *Postings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range p.Items {
		key := item.Company
		if key == "" {
			key = "(unknown)"
		}
		entry := map[string]string{
			"title":    item.Title,
			"url":      item.URL,
			"location": item.Location,
		}
		if len(item.Required) > 0 {
			entry["required_skills"] = item.Required.Encode()
		}
		if len(item.Preferred) > 0 {
			entry["preferred_skills"] = item.Preferred.Encode()
		}
		report[key] = append(report[key], entry)
	}
	return report
}

// URLs returns posting urls in list order, skipping empty ones.
func (p *Postings) URLs() []string {
	urls := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		if item.URL != "" {
			urls = append(urls, item.URL)
		}
	}
	return urls
}
