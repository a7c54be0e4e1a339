package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/platform/tui"
	"github.com/vovakirdan/matrix-runner/internal/storage"
)

var (
	flagScoresMode  string
	flagScoresLimit int
	flagScoresPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs per difficulty.

In a terminal this opens the interactive scoreboard; use --plain (or pipe
the output) for a text table.

Examples:
  runner scores
  runner scores --mode hard --plain`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Difficulty to show (empty = all in plain mode)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a text table instead of the scoreboard")
}

func runScores(_ *cobra.Command, _ []string) error {
	if flagScoresMode != "" {
		if _, err := config.ParsePreset(flagScoresMode); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		mode := flagScoresMode
		if mode == "" {
			mode = string(config.DifficultyNormal)
		}
		return tui.RunScoreboard(store, mode, width, height)
	}
	return printScores(store, flagScoresMode, flagScoresLimit)
}

func printScores(store *storage.Store, mode string, limit int) error {
	runs, err := store.TopRuns(mode, limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	title := "all modes"
	if mode != "" {
		title = mode
	}
	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Mode", "Score", "Dodges", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "----", "-----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-6d  %-6d  %s\n",
			i+1, r.Mode, r.Score, r.Dodges, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	modes := make([]string, 0, len(stats))
	for m := range stats {
		if mode == "" || m == mode {
			modes = append(modes, m)
		}
	}
	slices.Sort(modes)

	fmt.Println()
	for _, m := range modes {
		st := stats[m]
		fmt.Printf("%s: %d runs, best %d, average %.1f\n", m, st.Runs, st.BestScore, st.AvgScore)
	}
	return nil
}
