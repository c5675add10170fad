// Package match scores noisy region-name candidates against the
// canonical lists returned by the schedule provider.
package match

import (
	"math"
	"strings"

	"github.com/Sahabat-Khairat/sholat/internal/textnorm"
)

const (
	scoreExact     = 100
	scoreSubstring = 88
	jaccardWeight  = 80

	// AcceptThreshold is the minimum score a candidate must reach
	// against some target for FindBest to report a match.
	AcceptThreshold = 45
)

// Score rates how well a noisy candidate matches a canonical target,
// 0..100. Symmetric in its arguments.
func Score(candidate, target string) int {
	return score(textnorm.Normalize(candidate), textnorm.Normalize(target))
}

// score applies the rating rules to already-prepared strings.
func score(a, b string) int {
	if a == b {
		return scoreExact
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return scoreSubstring
	}

	as := tokenSet(a)
	bs := tokenSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	inter := 0
	for tok := range as {
		if bs[tok] {
			inter++
		}
	}
	if inter == 0 {
		return 0
	}
	union := len(as) + len(bs) - inter
	return int(math.Round(float64(inter) / float64(union) * jaccardWeight))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

// FindBest returns the canonical target matched by the best-scoring
// candidate, or ok=false when no candidate reaches AcceptThreshold
// against any target. Qualifier stripping makes "KAB. BANDUNG" and
// "KOTA BANDUNG" score identically, so ties are broken by rescoring
// the qualifier-bearing forms; remaining ties go to the first
// candidate in iteration order. Callers treat ok=false as a soft
// failure and fall back to another candidate list.
func FindBest(candidates, targets []string) (string, bool) {
	bestScore := 0
	bestTie := -1
	bestTarget := ""

	for _, cand := range candidates {
		for _, tgt := range targets {
			s := Score(cand, tgt)
			if s == 0 || s < bestScore {
				continue
			}
			tie := score(textnorm.Clean(cand), textnorm.Clean(tgt))
			if s > bestScore || tie > bestTie {
				bestScore, bestTie, bestTarget = s, tie, tgt
			}
		}
	}

	if bestScore < AcceptThreshold {
		return "", false
	}
	return bestTarget, true
}
