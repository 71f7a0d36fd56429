package curriculum

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingoz/internal/assess"
)

const missionSystemPrompt = `You are building a one-day English curriculum for a Korean middle-school student. Everything except the topic name and the English sentences must be written in Korean: grammar title, grammar description, and all hints.`

func buildMissionUserMessage(level assess.Level) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Student level: %s\n\n", level))

	b.WriteString(`Instructions:
1. Pick one everyday topic suitable for the level (e.g. Daily Routine, School Life, Food).
2. Pick one grammar point matched to the level. Write the title and description in Korean, the rule formula and example sentence in English.
3. Provide exactly 20 vocabulary words on the topic: "en" is the English word, "ko" is the Korean meaning.
4. Provide exactly 20 practice sentences that use the topic vocabulary and the grammar point: "ko" is the Korean sentence, "en" is the correct English translation, "hint_structure" and "hint_grammar" are short Korean hints.
5. Keep vocabulary and sentence difficulty appropriate for the level: Low = simple present, short words; Mid = common tenses, everyday phrases; High = longer sentences, less common words.`)

	return b.String()
}
