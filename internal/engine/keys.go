package engine

import "github.com/pyarcade/tui-arcade/internal/core"

// ActionForKey maps a key name to a single-player action.
// Key names follow Bubble Tea's KeyMsg.String() ("up", "enter", " ", "ctrl+c").
func ActionForKey(key string) core.Action {
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit
	case "w", "up":
		return core.ActionUp
	case "s", "down":
		return core.ActionDown
	case "a", "left":
		return core.ActionLeft
	case "d", "right":
		return core.ActionRight
	case " ", "space":
		return core.ActionJump
	case "enter":
		return core.ActionConfirm
	case "b", "esc":
		return core.ActionBack
	case "p":
		return core.ActionPause
	case "r":
		return core.ActionRestart
	}
	return core.ActionNone
}

// VersusActionForKey maps a key to a player and action for local two-player
// games. Player 1 uses W/S, player 2 uses the arrow keys; every other key
// belongs to player 1.
func VersusActionForKey(key string) (core.PlayerID, core.Action) {
	switch key {
	case "up":
		return core.Player2, core.ActionUp
	case "down":
		return core.Player2, core.ActionDown
	case "left", "right", "a", "d":
		return core.Player1, core.ActionNone
	}
	return core.Player1, ActionForKey(key)
}
