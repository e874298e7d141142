package main

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pyarcade/tui-arcade/internal/core"
	"github.com/pyarcade/tui-arcade/internal/engine"
	"github.com/pyarcade/tui-arcade/internal/games/memory"
)

func TestSplitFrame(t *testing.T) {
	tests := []struct {
		in      string
		frame   int
		rest    string
		wantErr bool
	}{
		{"10:space", 10, "space", false},
		{"0:12,5", 0, "12,5", false},
		{"3:", 0, "", true},
		{"x:space", 0, "", true},
		{"-1:r", 0, "", true},
		{"space", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			frame, rest, err := splitFrame(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitFrame(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && (frame != tt.frame || rest != tt.rest) {
				t.Errorf("splitFrame(%q) = (%d, %q)", tt.in, frame, rest)
			}
		})
	}
}

func TestScriptHostRejectsBadClicks(t *testing.T) {
	for _, c := range []string{"1:12", "1:a,b", "nope"} {
		host := engine.NewHeadlessHost(time.Unix(0, 0), 0)
		if err := scriptHost(host, nil, []string{c}); err == nil {
			t.Errorf("scriptHost accepted %q", c)
		}
	}
}

func TestScriptedClickReachesGame(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

	// Find a card position on the board the loop will build.
	ref := memory.New()
	if err := ref.Reset(cfg); err != nil {
		t.Fatal(err)
	}
	c := ref.Current().Card(0).Rect.Center()

	host := engine.NewHeadlessHost(time.Unix(0, 0), 3)
	click := []string{fmt.Sprintf("0:%d,%d", c.X, c.Y)}
	if err := scriptHost(host, nil, click); err != nil {
		t.Fatal(err)
	}

	game := memory.New()
	loop := engine.NewLoop(game, host, cfg)
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if got := game.Current().Card(0).State; got != memory.Revealed {
		t.Errorf("card 0 = %v, expected revealed", got)
	}
	if !strings.Contains(host.LastFrame(), "Moves: 0") {
		t.Error("last frame should show the HUD")
	}
}
