// runner is an endless obstacle dodger for the terminal, SSH and browsers.
//
// Usage:
//
//	runner play              - Play in this terminal
//	runner scores            - Show the best runs
//	runner serve             - Serve over SSH and/or WebSocket
//	runner replay <file>     - Re-simulate a recorded run
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.matrix-runner/scores.db)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/matrix-runner/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Matrix Runner - dodge lasers and bullets in your terminal",
	Long: `Matrix Runner is an endless runner: tap to jump, tap twice to slide,
collect power-ups and survive as long as you can.

Available commands:
  play     - Play in this terminal
  scores   - View the best runs
  serve    - Serve the game over SSH and WebSocket
  replay   - Re-simulate a recorded run

Examples:
  runner play
  runner play --difficulty hard --record run.replay
  runner serve --ssh :2222 --http :8080
  runner replay run.replay`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.matrix-runner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadGame reads the runner config and applies the difficulty preset.
func loadGame(path, difficulty string) (config.RunnerConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}
	cfg, err := config.LoadRunner(path)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}
	config.ApplyRunnerPreset(&cfg, preset)
	return cfg, preset, nil
}
