package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a learner's progress (level, streak, wrong words)",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := resolveUserID(cmd)
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			fmt.Printf("This deletes all progress for learner %q. Continue? [y/N] ", userID)
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(line)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.ResetUser(context.Background(), userID); err != nil {
			return err
		}
		fmt.Printf("Learner %q reset.\n", userID)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}
