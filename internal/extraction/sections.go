// Package extraction turns free posting text into required and preferred skill levels.
package extraction

import (
	"regexp"
	"strings"
)

var (
	requirementsAnchor = regexp.MustCompile(`requirements|what you'll need|qualifications|must have`)
	preferredAnchor    = regexp.MustCompile(`preferred|nice to have|bonus|good to have`)
)

// Sections holds the lowercased spans starting at each anchor.
type Sections struct {
	Requirements string
	Preferred    string
}

// SplitSections locates both anchors independently. Each section runs from
// the first match of its own anchor to the end of the text, so the two
// sections usually overlap. A missing anchor leaves its section empty.
func SplitSections(text string) Sections {
	lower := strings.ToLower(text)

	return Sections{
		Requirements: fromAnchor(requirementsAnchor, lower),
		Preferred:    fromAnchor(preferredAnchor, lower),
	}
}

func fromAnchor(anchor *regexp.Regexp, text string) string {
	loc := anchor.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	return text[loc[0]:]
}
