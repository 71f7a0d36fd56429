package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/speech"
)

// speechService builds the OpenAI audio client from the environment.
func speechService() (*speech.Service, error) {
	key := os.Getenv("LINGOZ_OPENAI_API_KEY")
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	return speech.NewService(key)
}

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Synthesize pronunciation audio for a word or sentence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		svc, err := speechService()
		if err != nil {
			return err
		}

		audio, err := svc.Synthesize(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, audio, 0o644); err != nil {
			return fmt.Errorf("write audio: %w", err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(audio), out)
		return nil
	},
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <file>",
	Short: "Transcribe a recorded answer (wav/mp3) to text",
	Long:  "Transcribes a short English recording. Paste the result into the level test if you prefer speaking over typing.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open audio: %w", err)
		}
		defer f.Close()

		svc, err := speechService()
		if err != nil {
			return err
		}

		text, err := svc.Transcribe(context.Background(), f)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	speakCmd.Flags().StringP("out", "o", "speech.mp3", "Output audio file")
}
