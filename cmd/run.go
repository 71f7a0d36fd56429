package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/app"
	"github.com/abhisek/lingoz/internal/assess"
	"github.com/abhisek/lingoz/internal/curriculum"
	"github.com/abhisek/lingoz/internal/learnflow"
	"github.com/abhisek/lingoz/internal/llm"
	"github.com/abhisek/lingoz/internal/practice"
	"github.com/abhisek/lingoz/internal/store"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start today's mission (same as running lingoz with no arguments)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, begins the day's
// session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.LLMEvents())
	if err != nil {
		return fmt.Errorf("model backend not configured: %w\n\nSet OPENAI_API_KEY, ANTHROPIC_API_KEY, or GEMINI_API_KEY (an .env file works too)", err)
	}

	users := st.Users()
	flow := learnflow.NewService(
		users,
		st.StudyLogs(),
		st.WrongWords(),
		curriculum.NewService(provider, curriculum.DefaultConfig()),
		practice.NewGrader(provider),
		assess.NewController(provider, users),
	)

	// Word audio is a nice-to-have; skip it when the audio backend
	// is not configured.
	if svc, err := speechService(); err == nil {
		flow.AttachSpeech(svc)
	}

	sess, err := flow.Begin(ctx, resolveUserID(cmd))
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}

	return app.Run(app.Options{
		Flow:       flow,
		Session:    sess,
		WrongWords: st.WrongWords(),
	})
}
