package curriculum

import "fmt"

// validateMission checks the mission shape after schema validation.
// The JSON schema already constrains structure, but backends without
// native array-length enforcement can still return short lists, and an
// empty string satisfies "type": "string".
func validateMission(m *Mission) error {
	if m.Topic == "" {
		return fmt.Errorf("mission has empty topic")
	}
	if m.Grammar.Title == "" || m.Grammar.Description == "" {
		return fmt.Errorf("mission has incomplete grammar card")
	}
	if len(m.Words) != MissionWords {
		return fmt.Errorf("mission has %d words, want %d", len(m.Words), MissionWords)
	}
	if len(m.Prompts) != MissionPrompts {
		return fmt.Errorf("mission has %d practice prompts, want %d", len(m.Prompts), MissionPrompts)
	}

	seen := make(map[string]bool, len(m.Words))
	for i, w := range m.Words {
		if w.Term == "" || w.Meaning == "" {
			return fmt.Errorf("word %d is incomplete", i)
		}
		if seen[w.Term] {
			return fmt.Errorf("duplicate vocabulary term %q", w.Term)
		}
		seen[w.Term] = true
	}

	for i, p := range m.Prompts {
		if p.PromptText == "" || p.TargetSentence == "" {
			return fmt.Errorf("practice prompt %d is incomplete", i)
		}
	}

	return nil
}
