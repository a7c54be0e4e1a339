package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matrix-runner/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded run",
	Long: `Load a replay written by 'runner play --record' and run it again
without a screen. The result is identical to the recorded session.

Examples:
  runner replay run.replay`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.LoadFile(args[0])
	if err != nil {
		return err
	}

	snap := replay.Play(rec, newLogger(os.Stderr, "replay"))

	fmt.Printf("Replay %s\n", args[0])
	fmt.Println()
	fmt.Printf("  Mode:     %s\n", rec.Mode)
	fmt.Printf("  Seed:     %d\n", rec.Seed)
	fmt.Printf("  Taps:     %d\n", rec.Taps())
	fmt.Printf("  Length:   %s\n", rec.Duration().Round(10*time.Millisecond))
	fmt.Printf("  Frames:   %d\n", snap.Frame)
	fmt.Printf("  Final:    %s\n", snap.Phase)
	fmt.Printf("  Score:    %d\n", snap.Score)
	fmt.Printf("  Dodges:   %d\n", snap.Dodges)
	if snap.GameOverMessage != "" {
		fmt.Printf("\n%s\n", snap.GameOverMessage)
	}
	return nil
}
