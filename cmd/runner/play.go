package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/matrix-runner/internal/core"
	"github.com/vovakirdan/matrix-runner/internal/games/runner"
	"github.com/vovakirdan/matrix-runner/internal/platform/tui"
	"github.com/vovakirdan/matrix-runner/internal/replay"
	"github.com/vovakirdan/matrix-runner/internal/storage"
)

var _ tui.Controller = (*replay.Recorder)(nil)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     string
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the runner in this terminal.

Controls:
  Space/Up/Enter/Click  - Tap: jump, or a quick double tap to slide
                          (a double tap while airborne flies)
  R                     - Play again (after game over)
  B/Esc                 - Back to the start screen
  Tab                   - Scoreboard
  Q/Ctrl+C              - Quit

Without --difficulty a menu asks for one.

Difficulty options:
  easy   - Normal start, progresses at half speed
  normal - Default progression
  hard   - Starts faster, fewer power-ups
  fixed  - No progression, stays at the initial level

Examples:
  runner play
  runner play --difficulty hard
  runner play --seed 42 --record run.replay
  runner play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the session to this file")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is busy)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "runner")

	fd := int(os.Stdout.Fd())
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	difficulty := flagDifficulty
	if difficulty == "" && term.IsTerminal(fd) {
		preset, ok, err := tui.RunDifficultySelector(store, width, height)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		difficulty = string(preset)
	}

	game, preset, err := loadGame(flagConfig, difficulty)
	if err != nil {
		return err
	}
	mode := string(preset)

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := []runner.Option{runner.WithLogger(logger)}
	var modelOpts []tui.ModelOption
	if store != nil {
		opts = append(opts,
			runner.WithGateway(store.HighScoreGateway(runner.HighScoreKey)),
			runner.WithResults(store.RunLog(mode)),
		)
		modelOpts = append(modelOpts, tui.WithScores(store, mode))
	}

	seed := rc.ResolveSeed()
	logger.Info("starting", "mode", mode, "seed", seed)
	if flagRecord == "" {
		opts = append(opts, runner.WithSeed(seed))
		return tui.Run(runner.NewDriver(game, opts...), rc, modelOpts...)
	}

	rec := replay.NewRecorder(game, seed, mode, opts...)
	runErr := tui.Run(rec, rc, modelOpts...)
	if err := rec.Recording().SaveFile(flagRecord); err != nil {
		return err
	}
	logger.Info("replay saved", "path", flagRecord)
	return runErr
}
