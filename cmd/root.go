package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/store"
)

// defaultUserID is the profile used when --user is not given. The app
// is single-learner per install; the flag exists for shared machines.
const defaultUserID = "default"

var rootCmd = &cobra.Command{
	Use:   "lingoz",
	Short: "AI English tutor for Korean middle schoolers",
	Long:  "Lingoz - AI-native terminal app for daily English missions: 20 words, 20 sentences, and a memorization game.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGOZ_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Learner profile ID (overrides LINGOZ_USER env var)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LINGOZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveUserID returns the learner ID from --user, LINGOZ_USER, or
// the default profile.
func resolveUserID(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if u := os.Getenv("LINGOZ_USER"); u != "" {
		return u
	}
	return defaultUserID
}
