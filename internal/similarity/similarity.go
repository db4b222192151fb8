package similarity

import (
	"time"

	"travelmate/internal/util"
)

// DefaultHighSignalLanguages are languages whose overlap carries extra
// signal for compatibility. Configurable via config; this is the default.
var DefaultHighSignalLanguages = []string{"Persian"}

// HighSignalBoost is added to the language score when any high-signal
// language is shared, capped at 1.0.
const HighSignalBoost = 0.25

// DefaultRecencyWindowDays is the decay window for RecencyScore.
const DefaultRecencyWindowDays = 14

// Jaccard returns |A ∩ B| / |A ∪ B| over two string collections treated
// as sets. Returns 0.0 when the union is empty.
func Jaccard(a, b []string) float64 {
	sa, sb := util.ToSet(a), util.ToSet(b)
	inter := util.IntersectionSize(sa, sb)
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// OverlapCoefficient returns |A ∩ B| / min(|A|, |B|) as sets, or 0.0 if
// either set is empty. Unlike Jaccard it does not penalize a larger set
// for elements the smaller one lacks: a 5-language speaker sharing both
// languages of a 2-language speaker scores 1.0.
func OverlapCoefficient(a, b []string) float64 {
	sa, sb := util.ToSet(a), util.ToSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0.0
	}
	inter := util.IntersectionSize(sa, sb)
	minSize := len(sa)
	if len(sb) < minSize {
		minSize = len(sb)
	}
	return float64(inter) / float64(minSize)
}

// LanguageScore is the overlap coefficient of two language lists plus
// HighSignalBoost when the intersection contains any high-signal
// language, capped at 1.0.
func LanguageScore(a, b []string, highSignal map[string]struct{}) float64 {
	base := OverlapCoefficient(a, b)
	sa, sb := util.ToSet(a), util.ToSet(b)
	for lang := range sa {
		if _, shared := sb[lang]; !shared {
			continue
		}
		if _, hot := highSignal[lang]; hot {
			if base+HighSignalBoost > 1.0 {
				return 1.0
			}
			return base + HighSignalBoost
		}
	}
	return base
}

// LocationScore scores two users' city alignment: 1.0 for the same
// current city, 0.8 for any destination cross-match (either user headed
// to the other's city, or both headed to the same place), else 0.0.
// City strings are pre-normalized upstream, so matching is exact and
// case-sensitive.
func LocationScore(userCity, userDest, candCity, candDest string) float64 {
	if userCity == candCity {
		return 1.0
	}
	if userDest != "" && candDest != "" && userDest == candDest {
		return 0.8
	}
	if userDest != "" && userDest == candCity {
		return 0.8
	}
	if candDest != "" && candDest == userCity {
		return 0.8
	}
	return 0.0
}

// MutualFriendsScore returns min(|friends(a) ∩ friends(b)|, 5) / 5.
// Benefit saturates at 5 mutual friends.
func MutualFriendsScore(a, b string, friends map[string]map[string]struct{}) float64 {
	mutual := util.IntersectionSize(friends[a], friends[b])
	if mutual > 5 {
		mutual = 5
	}
	return float64(mutual) / 5
}

// RecencyScore decays linearly from 1.0 at one day old to 0.0 at
// windowDays. The caller passes wall-clock now so results keep degrading
// across calls.
func RecencyScore(ts time.Time, windowDays int, now time.Time) float64 {
	daysAgo := now.Sub(ts).Hours() / 24
	if daysAgo <= 1 {
		return 1.0
	}
	if daysAgo >= float64(windowDays) {
		return 0.0
	}
	return 1.0 - (daysAgo-1)/float64(windowDays-1)
}

// CultureScore is binary: 1.0 if the cultural background sets intersect
// at all, else 0.0. Deliberately coarse, no partial credit.
func CultureScore(a, b []string) float64 {
	if util.IntersectionSize(util.ToSet(a), util.ToSet(b)) > 0 {
		return 1.0
	}
	return 0.0
}

// PostLocationMatch returns 1.0 when the user's current or destination
// city appears (case-insensitive) inside the post's coarse location text,
// else 0.5. The fallback is never 0.0: coarse-location text matching is
// inherently uncertain, so geographic mismatch is not treated as proof
// of irrelevance.
func PostLocationMatch(postLocation, userCity, userDest string) float64 {
	if userCity != "" && util.ContainsCaseInsensitive(postLocation, userCity) {
		return 1.0
	}
	if userDest != "" && util.ContainsCaseInsensitive(postLocation, userDest) {
		return 1.0
	}
	return 0.5
}
