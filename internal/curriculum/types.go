// Package curriculum generates and holds one day's learning mission:
// a topic, a grammar card, twenty vocabulary pairs, and twenty
// sentence-production prompts.
package curriculum

// MissionWords is the fixed number of vocabulary items per mission.
const MissionWords = 20

// MissionPrompts is the fixed number of practice prompts per mission.
const MissionPrompts = 20

// VocabularyItem is one source/target word pair. The Term string is
// the item's identity within a mission.
type VocabularyItem struct {
	Term    string `json:"en"`
	Meaning string `json:"ko"`
}

// PracticePrompt is one free-production exercise: a Korean prompt
// sentence, the canonical English answer, and two hint strings.
type PracticePrompt struct {
	PromptText     string `json:"ko"`
	TargetSentence string `json:"en"`
	HintStructure  string `json:"hint_structure"`
	HintGrammar    string `json:"hint_grammar"`
}

// GrammarCard is the day's grammar point. Descriptive only.
type GrammarCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Rule        string `json:"rule"`
	Example     string `json:"example"`
}

// Mission is one day's curriculum bundle. Immutable once generated;
// shared read-only by the learn view, the practice grader, and the
// drill engine for the life of a session.
type Mission struct {
	Topic   string           `json:"topic"`
	Grammar GrammarCard      `json:"grammar"`
	Words   []VocabularyItem `json:"words"`
	Prompts []PracticePrompt `json:"practice_sentences"`
}
