package extraction

import (
	"context"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/skill-matcher/internal/catalog"
	"github.com/spigell/skill-matcher/internal/levels"
	"github.com/spigell/skill-matcher/internal/posting"
)

type skillPatterns struct {
	name   string
	word   *regexp.Regexp
	window *regexp.Regexp
}

// Extractor finds catalog skills in posting text. It is safe for concurrent use.
type Extractor struct {
	skills  []skillPatterns
	signals []Signal
}

// New compiles the patterns for every skill in c once.
func New(c *catalog.Catalog) *Extractor {
	return NewWithSignals(c, DefaultSignals)
}

// NewWithSignals is like New but estimates levels with a custom signal list.
func NewWithSignals(c *catalog.Catalog, signals []Signal) *Extractor {
	e := &Extractor{signals: signals}
	for _, skill := range c.Skills() {
		quoted := regexp.QuoteMeta(skill)
		e.skills = append(e.skills, skillPatterns{
			name:   skill,
			word:   regexp.MustCompile(`\b` + quoted + `\b`),
			window: windowPattern(skill),
		})
	}
	return e
}

// Extract is a shorthand for New(c).Extract(text).
func Extract(text string, c *catalog.Catalog) (required, preferred levels.Levels) {
	return New(c).Extract(text)
}

// Extract returns the skills mentioned as whole words in the requirements and
// preferred sections with their estimated levels. A skill found in both
// sections is reported in both mappings.
func (e *Extractor) Extract(text string) (required, preferred levels.Levels) {
	sections := SplitSections(text)

	required = levels.Levels{}
	preferred = levels.Levels{}

	for _, skill := range e.skills {
		if sections.Requirements != "" && skill.word.MatchString(sections.Requirements) {
			required[skill.name] = levelInWindows(e.signals, skill.window, sections.Requirements)
		}
		if sections.Preferred != "" && skill.word.MatchString(sections.Preferred) {
			preferred[skill.name] = levelInWindows(e.signals, skill.window, sections.Preferred)
		}
	}

	return required, preferred
}

// Annotate fills Required and Preferred of every posting using at most
// workers goroutines. Each goroutine only writes the posting it owns.
func (e *Extractor) Annotate(ctx context.Context, items []*posting.Posting, workers int) error {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item.Required, item.Preferred = e.Extract(item.Description)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// the group context is always done after Wait, so check the caller's
	return ctx.Err()
}
