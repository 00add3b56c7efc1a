package matching

import (
	"fmt"
	"math"
	"sort"

	"github.com/spigell/skill-matcher/internal/posting"
)

// tiedScore is assigned to every posting when the batch has no spread.
const tiedScore = 50.0

// Scored is a posting with its raw and batch-relative scores.
type Scored struct {
	Posting    *posting.Posting
	RawScore   int
	FinalScore float64
}

// Ranking is a list of scored postings ordered by FinalScore, best first.
type Ranking struct {
	Items []Scored
}

// Normalize rescales raw scores of the batch into [0, 100] with two decimals.
// The input is not modified. An empty batch yields an empty result.
func Normalize(scored []Scored) []Scored {
	out := make([]Scored, len(scored))
	copy(out, scored)
	if len(out) == 0 {
		return out
	}

	lowest, highest := out[0].RawScore, out[0].RawScore
	for _, s := range out[1:] {
		lowest = min(lowest, s.RawScore)
		highest = max(highest, s.RawScore)
	}

	if lowest == highest {
		for i := range out {
			out[i].FinalScore = tiedScore
		}
		return out
	}

	spread := float64(highest - lowest)
	for i := range out {
		out[i].FinalScore = round2(float64(out[i].RawScore-lowest) / spread * 100)
	}
	return out
}

// Rank scores every posting, normalizes the batch and sorts it by final score.
// Postings with equal scores keep their input order.
func Rank(postings *posting.Postings, profile *Profile) Ranking {
	scored := make([]Scored, 0, postings.Len())
	for _, p := range postings.Items {
		scored = append(scored, Scored{Posting: p, RawScore: ComputeMatch(p, profile)})
	}

	scored = Normalize(scored)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	return Ranking{Items: scored}
}

func (r Ranking) Len() int {
	return len(r.Items)
}

// Top returns at most n best postings.
func (r Ranking) Top(n int) []Scored {
	if n < 0 {
		n = 0
	}
	if n > len(r.Items) {
		n = len(r.Items)
	}
	return r.Items[:n]
}

// Summary renders the top n postings as "company | title | location | score%".
func (r Ranking) Summary(n int) []string {
	top := r.Top(n)
	lines := make([]string, 0, len(top))
	for _, s := range top {
		lines = append(lines, fmt.Sprintf("%s | %s | %s | %.2f%%",
			s.Posting.Company, s.Posting.Title, s.Posting.Location, s.FinalScore))
	}
	return lines
}

// Postings returns the ranked postings in ranking order.
func (r Ranking) Postings() *posting.Postings {
	items := make([]*posting.Posting, 0, len(r.Items))
	for _, s := range r.Items {
		items = append(items, s.Posting)
	}
	return &posting.Postings{Items: items}
}

// round2 rounds half to even on the second decimal.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
