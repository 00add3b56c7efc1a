package filtering

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/skill-matcher/internal/posting"
	"go.uber.org/zap"
)

// DefaultTitleKeywords select internship-like postings.
var DefaultTitleKeywords = []string{"intern", "internship", "working student", "apprentice"}

type titleFilter struct {
	toggle
	keywords []string
	pattern  *regexp.Regexp
}

// NewTitle creates a filter that keeps only postings whose title contains one of the keywords as a whole word.
func NewTitle() Filter {
	return &titleFilter{}
}

func (f *titleFilter) Name() string { return "title" }

func (f *titleFilter) Validate(cfg *Config) error {
	f.keywords = nil
	f.pattern = nil
	if cfg == nil {
		return nil
	}

	for _, keyword := range cfg.TitleKeywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return fmt.Errorf("empty title keyword")
		}
		f.keywords = append(f.keywords, regexp.QuoteMeta(strings.ToLower(keyword)))
	}
	if len(f.keywords) == 0 {
		return nil
	}

	pattern, err := regexp.Compile(`(?i)\b(` + strings.Join(f.keywords, "|") + `)\b`)
	if err != nil {
		return fmt.Errorf("compile title keywords: %w", err)
	}
	f.pattern = pattern
	return nil
}

func (f *titleFilter) Apply(_ context.Context, deps Deps, p *posting.Postings) (*posting.Postings, Step, error) {
	initial := p.Len()
	if f.pattern == nil {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	removed := p.RemoveFunc(func(item *posting.Posting) bool {
		return !f.pattern.MatchString(item.Title)
	})
	if len(removed) > 0 {
		deps.Logger.Debug("excluding postings by title",
			zap.Strings("excluded_postings", titles(removed)),
			zap.Int("postings_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(removed), Left: p.Len()}, nil
}

func (f *titleFilter) Status() Status {
	details := map[string]string{}
	if f.pattern != nil {
		details["pattern"] = f.pattern.String()
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
