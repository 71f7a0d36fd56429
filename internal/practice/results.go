package practice

// Results holds grading outcomes for one session, keyed by prompt
// index. A prompt graded as passed stays passed for the session, so
// re-rendering the practice view never re-asks it. These results are
// a separate mastery track from the drill engine's missed set.
type Results struct {
	byPrompt map[int]Result
}

// NewResults creates an empty result set.
func NewResults() *Results {
	return &Results{byPrompt: make(map[int]Result)}
}

// Record stores the outcome for a prompt. A pass is never downgraded
// by a later fail.
func (r *Results) Record(promptIdx int, res Result) {
	if prev, ok := r.byPrompt[promptIdx]; ok && prev.Passed {
		return
	}
	r.byPrompt[promptIdx] = res
}

// Get returns the recorded outcome for a prompt, if any.
func (r *Results) Get(promptIdx int) (Result, bool) {
	res, ok := r.byPrompt[promptIdx]
	return res, ok
}

// PassedCount returns how many prompts have been passed.
func (r *Results) PassedCount() int {
	n := 0
	for _, res := range r.byPrompt {
		if res.Passed {
			n++
		}
	}
	return n
}
