package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pyarcade/tui-arcade/internal/storage"
)

func updateBoard(t *testing.T, m ScoreboardModel, key string) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(keyMsg(key))
	nm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T, expected ScoreboardModel", next)
	}
	return nm
}

func TestScoreboardRanksPerGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	saves := []struct {
		game, session string
		score         int
	}{
		{"flappy", "", 3},
		{"flappy", "sid-you", 11},
		{"memory", "0123456789abcdef", 14},
		{"memory", "sid-you", 9},
	}
	for _, s := range saves {
		if _, err := store.SaveSessionScore(s.game, s.session, s.score); err != nil {
			t.Fatalf("SaveSessionScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 80, 24).ForSession("sid-you")

	rows := m.rows()
	if len(rows) != 2 || rows[0][1] != "11" || rows[0][2] != "you" || rows[1][2] != "local" {
		t.Errorf("flappy rows = %v, expected 11 (you) before 3 (local)", rows)
	}

	m = updateBoard(t, m, "tab")
	rows = m.rows()
	if len(rows) != 2 || rows[0][1] != "9" || rows[1][1] != "14" {
		t.Errorf("memory rows = %v, expected fewest moves first", rows)
	}
	if rows[1][2] != "01234567" {
		t.Errorf("other session label = %q, expected a short id", rows[1][2])
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES", "Moves", "2 played", "best 9 moves"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestScoreboardWrapsGames(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	last := len(m.games) - 1

	m = updateBoard(t, m, "left")
	if m.current != last {
		t.Errorf("left from the first game = %d, expected %d", m.current, last)
	}
	m = updateBoard(t, m, "right")
	if m.current != 0 {
		t.Errorf("right from the last game = %d, expected 0", m.current)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No scores yet") {
		t.Error("empty board should say so")
	}

	m = updateBoard(t, m, "b")
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back without quitting")
	}

	m = updateBoard(t, NewScoreboardModel(nil, 80, 24), "q")
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
