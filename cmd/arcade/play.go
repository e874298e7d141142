package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pyarcade/tui-arcade/internal/core"
	"github.com/pyarcade/tui-arcade/internal/platform/tui"
	"github.com/pyarcade/tui-arcade/internal/registry"
	"github.com/pyarcade/tui-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Mouse click  - Flip a card (memory)
  Arrows/WASD  - Move cursor or paddle
  Space/Enter  - Flip the card under the cursor / flap
  P            - Pause
  R            - Restart (after game over)
  B/Esc        - Leave a finished or paused game
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

In pong_versus the left paddle uses W/S and the right paddle the arrow keys.

Difficulty options:
  easy   - Small memory board, slow start for flappy and pong
  normal - Default board, moderate start
  hard   - Large memory board, fast start
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play memory
  arcade play memory --difficulty hard
  arcade play flappy --difficulty easy
  arcade play pong --config ./my-pong.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags. Falls back to 80x24 when stdout is not a terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Failures are reported and play
// continues without scores.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	configureGame(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, terminalConfig(), tui.GameOptions{
		Store:  store,
		Logger: logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
