package filtering

import (
	"context"
	"strings"

	"github.com/spigell/skill-matcher/internal/posting"
	"go.uber.org/zap"
)

type redFlagsFilter struct {
	toggle
	flags []string
}

// NewRedFlags creates a filter that drops postings mentioning any red flag term
// in the title, company or description.
func NewRedFlags() Filter {
	return &redFlagsFilter{}
}

func (f *redFlagsFilter) Name() string { return "red_flags" }

func (f *redFlagsFilter) Validate(cfg *Config) error {
	f.flags = nil
	if cfg == nil {
		return nil
	}
	for _, flag := range cfg.RedFlags {
		flag = strings.ToLower(strings.TrimSpace(flag))
		if flag != "" {
			f.flags = append(f.flags, flag)
		}
	}
	return nil
}

// containsRedFlag reports the first flag found in the posting text.
func (f *redFlagsFilter) containsRedFlag(item *posting.Posting) (string, bool) {
	text := strings.ToLower(item.Title + " " + item.Company + " " + item.Description)
	for _, flag := range f.flags {
		if strings.Contains(text, flag) {
			return flag, true
		}
	}
	return "", false
}

func (f *redFlagsFilter) Apply(_ context.Context, deps Deps, p *posting.Postings) (*posting.Postings, Step, error) {
	initial := p.Len()
	if len(f.flags) == 0 {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	removed := p.RemoveFunc(func(item *posting.Posting) bool {
		flag, found := f.containsRedFlag(item)
		if found {
			deps.Logger.Debug("red flag found",
				zap.String("flag", flag),
				zap.String("company", item.Company),
				zap.String("title", item.Title),
			)
		}
		return found
	})
	if len(removed) > 0 {
		deps.Logger.Info("excluding postings with red flags",
			zap.Strings("excluded_postings", titles(removed)),
			zap.Int("postings_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(removed), Left: p.Len()}, nil
}

func (f *redFlagsFilter) Status() Status {
	details := map[string]string{}
	if len(f.flags) > 0 {
		details["flags"] = strings.Join(f.flags, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
