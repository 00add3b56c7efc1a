package matching

import (
	"strings"

	"github.com/spigell/skill-matcher/internal/posting"
)

// Score weights
const (
	requiredMetReward  = 4
	requiredGapPenalty = 4
	preferredMetReward = 1
	locationBonus      = 2
)

// ComputeMatch returns the raw additive fit score of p for profile. Missing
// requirements are penalized per level of shortfall; preferred skills only add.
func ComputeMatch(p *posting.Posting, profile *Profile) int {
	score := 0

	for skill, required := range p.Required {
		user := profile.Skills[skill]
		if user >= required {
			score += requiredMetReward
		} else {
			score -= requiredGapPenalty * (required - user)
		}
	}

	for skill, preferred := range p.Preferred {
		if profile.Skills[skill] >= preferred {
			score += preferredMetReward
		}
	}

	if matchesLocation(p.Location, profile.PreferredLocations) {
		score += locationBonus
	}

	return score
}

func matchesLocation(location string, preferred []string) bool {
	location = strings.ToLower(location)
	for _, pref := range preferred {
		if strings.Contains(location, strings.ToLower(pref)) {
			return true
		}
	}
	return false
}
