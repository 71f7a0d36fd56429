package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		userID := resolveUserID(cmd)

		profile, err := s.Users().Get(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				fmt.Printf("No data for learner %q yet. Run lingoz to start.\n", userID)
				return nil
			}
			return fmt.Errorf("load profile: %w", err)
		}

		days, err := s.StudyLogs().CountForUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("count study logs: %w", err)
		}

		level := profile.CurrentLevel
		if level == "" {
			level = "(untested)"
		}

		fmt.Printf("Learner:            %s\n", userID)
		fmt.Printf("Level:              %s\n", level)
		fmt.Printf("Current streak:     %d days\n", profile.Streak)
		fmt.Printf("Missions completed: %d\n", profile.TotalCompleteCount)
		fmt.Printf("Days studied:       %d\n", days)

		words, err := s.WrongWords().TopMissed(ctx, userID, 10)
		if err != nil {
			return fmt.Errorf("query wrong words: %w", err)
		}
		if len(words) > 0 {
			fmt.Println()
			fmt.Println("Most missed words")
			fmt.Println(strings.Repeat("─", 40))
			for _, w := range words {
				fmt.Printf("%-18s %-12s ×%d\n", w.Word, w.Meaning, w.WrongCount)
			}
		}
		return nil
	},
}
