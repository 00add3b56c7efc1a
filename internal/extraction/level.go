package extraction

import (
	"fmt"
	"regexp"

	"github.com/spigell/skill-matcher/internal/levels"
)

// windowRadius is how many characters around a skill mention are inspected.
const windowRadius = 40

// Signal maps a group of cue words to the level they imply.
type Signal struct {
	Name    string
	Pattern *regexp.Regexp
	Level   int
}

// DefaultSignals is checked in order; the first matching signal wins.
var DefaultSignals = []Signal{
	{
		Name:    "strong",
		Pattern: regexp.MustCompile(`expert|extensive|5\+ years|strong experience|advanced`),
		Level:   levels.Strong,
	},
	{
		Name:    "medium",
		Pattern: regexp.MustCompile(`experience|proficient|solid|hands-on`),
		Level:   levels.Intermediate,
	},
	{
		Name:    "weak",
		Pattern: regexp.MustCompile(`familiarity|exposure|basic|knowledge of`),
		Level:   levels.Basic,
	},
}

// EstimateLevel infers the level of skill inside section using DefaultSignals.
func EstimateLevel(section, skill string) int {
	return EstimateLevelWith(DefaultSignals, section, skill)
}

// EstimateLevelWith walks every window around skill in order of occurrence
// and returns the level of the first signal found in the earliest window that
// has one. Without any signal the skill is treated as levels.Intermediate.
func EstimateLevelWith(signals []Signal, section, skill string) int {
	return levelInWindows(signals, windowPattern(skill), section)
}

func levelInWindows(signals []Signal, window *regexp.Regexp, section string) int {
	for _, snippet := range window.FindAllString(section, -1) {
		for _, signal := range signals {
			if signal.Pattern.MatchString(snippet) {
				return signal.Level
			}
		}
	}

	return levels.Intermediate
}

// windowPattern matches up to windowRadius characters on each side of a
// literal skill mention. Windows stop at line breaks.
func windowPattern(skill string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`.{0,%d}%s.{0,%d}`, windowRadius, regexp.QuoteMeta(skill), windowRadius))
}
