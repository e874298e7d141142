// arcade is a TUI arcade platform for playing retro-style games in the terminal.
//
// Usage:
//
//	arcade list                  - List available games
//	arcade play <game>           - Play a game
//	arcade menu                  - Start menu to pick games interactively
//	arcade serve                 - Start SSH server for remote play
//	arcade scores <game>         - Show high scores for a game
//	arcade simulate <game>       - Run a game headless and print the last frame
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60, env ARCADE_FPS)
//	--seed <value>        - Set RNG seed for reproducible gameplay (env ARCADE_SEED)
//	--db <path>           - Set database path (default: ~/.arcade/scores.db, env ARCADE_DB)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write debug logs to a file (env ARCADE_LOG_FILE)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pyarcade/tui-arcade/internal/config"
	"github.com/pyarcade/tui-arcade/internal/games/flappy"
	"github.com/pyarcade/tui-arcade/internal/games/memory"
	"github.com/pyarcade/tui-arcade/internal/games/pong"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string

	// env holds ARCADE_* defaults; flags override them.
	env config.Env

	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	var err error
	env, err = config.LoadEnv(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	registerFlags()

	err = rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "TUI Arcade - Play retro games in your terminal",
	Long: `TUI Arcade is a terminal-based gaming platform that lets you play
Memory Cards, Flappy Bird and Pong directly in your terminal.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Run a game without a terminal

Examples:
  arcade list
  arcade play memory
  arcade play pong_versus
  arcade menu
  arcade serve --ssh :2222
  arcade scores memory
  arcade simulate flappy --frames 300 --seed 42`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func registerFlags() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", env.DBPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", env.Difficulty, "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", env.LogFile, "Write debug logs to this file")

	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", env.SSHAddr, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", env.HostKey, "Path to host key file (auto-generated if not specified)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup validates global flags, opens the log file and hands the difficulty
// preset to every game package.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
			Prefix:          "arcade",
		})
	}

	flappy.SetDifficultyPreset(flagDifficulty)
	pong.SetDifficultyPreset(flagDifficulty)
	memory.SetDifficultyPreset(flagDifficulty)
	return nil
}

// configureGame points only the chosen game at --config; the others keep
// their default search paths.
func configureGame(gameID string) {
	flappy.SetConfigPath("")
	pong.SetConfigPath("")
	memory.SetConfigPath("")

	switch gameID {
	case "flappy":
		flappy.SetConfigPath(flagConfig)
	case "pong", "pong_versus":
		pong.SetConfigPath(flagConfig)
	case "memory":
		memory.SetConfigPath(flagConfig)
	}
}
