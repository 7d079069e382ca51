package match

// MinSimilarity is the lowest normalized similarity Suggest accepts.
const MinSimilarity = 0.6

// Suggest returns the candidate closest to name after normalization, or
// false when none reaches MinSimilarity. Ties go to the earlier candidate.
func Suggest(name string, candidates []string) (string, bool) {
	norm := NormalizeName(name)

	var (
		best      string
		bestScore = -1.0
	)

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(norm, NormalizeName(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSimilarity {
		return "", false
	}

	return best, true
}
