package drill

import (
	"math/rand/v2"
	"slices"

	"github.com/abhisek/lingoz/internal/curriculum"
)

// choiceCount is the number of options shown per recognition item:
// the correct meaning plus three distractors.
const choiceCount = 4

// drawChoices builds a shuffled option set for target: its meaning and
// distinct distractor meanings sampled from the rest of the mission.
// Missions with fewer than choiceCount distinct meanings get a shorter
// set rather than an infinite draw.
func drawChoices(rng *rand.Rand, all []curriculum.VocabularyItem, target curriculum.VocabularyItem) []string {
	opts := []string{target.Meaning}

	// Rejection sampling keeps the draw uniform. Cap the attempts and
	// fall back to a scan so degenerate word lists still terminate.
	for attempts := 0; len(opts) < choiceCount && attempts < 10*len(all); attempts++ {
		cand := all[rng.IntN(len(all))].Meaning
		if !slices.Contains(opts, cand) {
			opts = append(opts, cand)
		}
	}
	if len(opts) < choiceCount {
		for _, item := range all {
			if len(opts) >= choiceCount {
				break
			}
			if !slices.Contains(opts, item.Meaning) {
				opts = append(opts, item.Meaning)
			}
		}
	}

	rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}
