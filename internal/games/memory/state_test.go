package memory

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/pyarcade/tui-arcade/internal/config"
	"github.com/pyarcade/tui-arcade/internal/core"
	"github.com/pyarcade/tui-arcade/internal/engine"
	"github.com/pyarcade/tui-arcade/internal/registry"
)

var (
	epoch       = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fixedValues = []int{1, 2, 3, 4, 5, 6, 1, 2, 3, 4, 5, 6}
)

func testLayout() Layout {
	return LayoutFromConfig(config.DefaultMemoryConfig(), 60, 24)
}

func testSettings(clock core.Clock) Settings {
	return Settings{
		Rows:      3,
		Cols:      4,
		Layout:    testLayout(),
		HideDelay: time.Second,
		Seed:      1,
		Clock:     clock,
	}
}

// newFixedState builds the 3x4 board [1,2,3,4,5,6,1,2,3,4,5,6].
func newFixedState(t *testing.T) (*State, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(epoch)
	st, err := NewStateFromValues(testSettings(clock), fixedValues)
	if err != nil {
		t.Fatalf("NewStateFromValues() failed: %v", err)
	}
	return st, clock
}

// click presses the pointer at the center of card i.
func click(st *State, i int) {
	st.HandleClick(st.Card(i).Rect.Center())
}

func TestBoardPairing(t *testing.T) {
	grids := []struct{ rows, cols int }{
		{1, 2}, {2, 2}, {2, 4}, {3, 4}, {4, 4}, {5, 6},
	}

	for _, g := range grids {
		for seed := range int64(5) {
			b, err := NewBoard(g.rows, g.cols, testLayout(), rand.New(rand.NewSource(seed)))
			if err != nil {
				t.Fatalf("NewBoard(%d, %d) failed: %v", g.rows, g.cols, err)
			}
			if len(b.Cards) != g.rows*g.cols {
				t.Fatalf("%dx%d board has %d cards", g.rows, g.cols, len(b.Cards))
			}

			counts := make(map[int]int)
			for _, c := range b.Cards {
				if c.State != Hidden {
					t.Errorf("new card starts %v, expected hidden", c.State)
				}
				counts[c.Value]++
			}
			if len(counts) != b.TotalPairs() {
				t.Errorf("%dx%d board has %d distinct values, expected %d", g.rows, g.cols, len(counts), b.TotalPairs())
			}
			for v, n := range counts {
				if n != 2 {
					t.Errorf("value %d appears %d times on %dx%d board", v, n, g.rows, g.cols)
				}
				if v < 1 || v > b.TotalPairs() {
					t.Errorf("value %d out of range 1..%d", v, b.TotalPairs())
				}
			}
		}
	}
}

func TestNewBoardIsSeeded(t *testing.T) {
	a, _ := NewBoard(3, 4, testLayout(), rand.New(rand.NewSource(42)))
	b, _ := NewBoard(3, 4, testLayout(), rand.New(rand.NewSource(42)))

	if !slices.Equal(a.Values(), b.Values()) {
		t.Errorf("same seed gave different boards: %v vs %v", a.Values(), b.Values())
	}
}

func TestNewBoardRejectsInvalidGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, g := range []struct{ rows, cols int }{{3, 3}, {1, 1}, {0, 4}, {-1, 2}} {
		if _, err := NewBoard(g.rows, g.cols, testLayout(), rng); !errors.Is(err, config.ErrInvalidGrid) {
			t.Errorf("NewBoard(%d, %d) = %v, expected ErrInvalidGrid", g.rows, g.cols, err)
		}
	}
}

func TestNewBoardFromValuesRejectsBadPairs(t *testing.T) {
	tests := []struct {
		name   string
		values []int
	}{
		{"too few", []int{1, 1}},
		{"triple", []int{1, 1, 1, 2, 3, 3, 4, 4, 5, 5, 6, 6}},
		{"single", []int{1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewBoardFromValues(3, 4, testLayout(), tc.values); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLayoutCentersGrid(t *testing.T) {
	b, err := NewBoardFromValues(3, 4, testLayout(), fixedValues)
	if err != nil {
		t.Fatal(err)
	}

	// 4 cards of 9 plus 3 gaps of 2 is 42 wide: (60-42)/2 = 9.
	// 3 cards of 5 plus 2 gaps of 1 is 17 tall: 2 + (22-17)/2 = 4.
	if got := b.Cards[0].Rect; got != core.NewRect(9, 4, 9, 5) {
		t.Errorf("card 0 at %+v", got)
	}
	if got := b.Cards[6].Rect; got != core.NewRect(31, 10, 9, 5) {
		t.Errorf("card 6 at %+v", got)
	}
	for i := 1; i < len(b.Cards); i++ {
		for j := range i {
			if b.Cards[i].Rect.Intersects(b.Cards[j].Rect) {
				t.Fatalf("cards %d and %d overlap", i, j)
			}
		}
	}
}

func TestMatchingPair(t *testing.T) {
	st, _ := newFixedState(t)

	click(st, 0)
	click(st, 6)

	if st.Card(0).State != Matched || st.Card(6).State != Matched {
		t.Errorf("cards = %v/%v, expected matched", st.Card(0).State, st.Card(6).State)
	}
	if st.Moves() != 1 || st.Matches() != 1 {
		t.Errorf("moves=%d matches=%d, expected 1/1", st.Moves(), st.Matches())
	}
	if st.TimerArmed() {
		t.Error("a match should not arm the timer")
	}
	if len(st.Selection()) != 0 {
		t.Errorf("selection = %v, expected empty", st.Selection())
	}
}

func TestMismatchedPairHidesAfterTimer(t *testing.T) {
	st, _ := newFixedState(t)

	click(st, 0)
	click(st, 1)

	if st.Moves() != 1 || st.Matches() != 0 {
		t.Errorf("moves=%d matches=%d, expected 1/0", st.Moves(), st.Matches())
	}
	if !st.TimerArmed() {
		t.Fatal("a mismatch should arm the timer")
	}
	if want := epoch.Add(time.Second); !st.Timer().Deadline().Equal(want) {
		t.Errorf("deadline = %v, expected %v", st.Timer().Deadline(), want)
	}
	if st.Card(0).State != Revealed || st.Card(1).State != Revealed {
		t.Error("mismatched cards should stay revealed until the timer fires")
	}

	// Buffer is full: further clicks are ignored.
	click(st, 2)
	if st.Card(2).State != Hidden || len(st.Selection()) != 2 || st.Moves() != 1 {
		t.Error("click with a full selection should be a no-op")
	}

	st.OnTimerExpired()

	if st.Card(0).State != Hidden || st.Card(1).State != Hidden {
		t.Errorf("cards = %v/%v, expected hidden", st.Card(0).State, st.Card(1).State)
	}
	if len(st.Selection()) != 0 || st.TimerArmed() {
		t.Error("timer expiry should clear the selection and disarm the timer")
	}
}

func TestTimerExpiryWithEmptySelection(t *testing.T) {
	st, _ := newFixedState(t)
	click(st, 0)
	click(st, 6)

	st.OnTimerExpired()

	if st.Card(0).State != Matched || st.Moves() != 1 || st.Matches() != 1 {
		t.Error("timer expiry with an empty selection should be a no-op")
	}
}

func TestClickingRevealedOrMatchedCard(t *testing.T) {
	st, _ := newFixedState(t)

	click(st, 0)
	click(st, 0)
	if sel := st.Selection(); len(sel) != 1 || st.Moves() != 0 {
		t.Errorf("re-clicking a revealed card: selection=%v moves=%d", sel, st.Moves())
	}

	click(st, 6)
	click(st, 0)
	click(st, 6)
	if len(st.Selection()) != 0 || st.Moves() != 1 {
		t.Errorf("clicking matched cards: selection=%v moves=%d", st.Selection(), st.Moves())
	}
}

func TestClickOffBoard(t *testing.T) {
	st, _ := newFixedState(t)

	st.HandleClick(core.Pt(0, 0))
	st.HandleClick(core.Pt(18, 6)) // gap between card 0 and card 1

	if len(st.Selection()) != 0 {
		t.Errorf("off-board click selected %v", st.Selection())
	}
}

func TestGameOverOnLastPair(t *testing.T) {
	st, _ := newFixedState(t)

	for i := range 6 {
		if st.GameOver() {
			t.Fatalf("game over after %d pairs", i)
		}
		click(st, i)
		click(st, i+6)
	}

	if !st.GameOver() {
		t.Fatal("matching the last pair should end the game in the same click")
	}
	if st.Moves() != 6 || st.Matches() != st.TotalPairs() {
		t.Errorf("moves=%d matches=%d", st.Moves(), st.Matches())
	}
}

func TestRestartOnlyWhenGameOver(t *testing.T) {
	clock := core.NewManualClock(epoch)
	s := testSettings(clock)
	s.Rows, s.Cols = 1, 2
	st, err := NewStateFromValues(s, []int{1, 1})
	if err != nil {
		t.Fatal(err)
	}

	same, err := st.HandleKey(RestartKey)
	if err != nil || same != st {
		t.Fatal("restart mid-game should return the same state")
	}

	click(st, 0)
	click(st, 1)
	if !st.GameOver() {
		t.Fatal("1x2 board should be won after one move")
	}

	other, err := st.HandleKey("x")
	if err != nil || other != st {
		t.Error("non-restart key should return the same state")
	}

	fresh, err := st.HandleKey(RestartKey)
	if err != nil {
		t.Fatalf("HandleKey(restart) failed: %v", err)
	}
	if fresh == st {
		t.Fatal("restart should return a new state")
	}
	if fresh.GameOver() || fresh.Moves() != 0 || fresh.Matches() != 0 || fresh.TimerArmed() {
		t.Error("restarted state should be zeroed")
	}
	if !st.GameOver() {
		t.Error("restart should not modify the old state")
	}
}

func TestResetDiscardsPendingTimer(t *testing.T) {
	st, _ := newFixedState(t)
	click(st, 0)
	click(st, 1)

	fresh, err := st.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if fresh.TimerArmed() || len(fresh.Selection()) != 0 {
		t.Error("reset state should have no pending timer or selection")
	}
	for i := range fresh.Board().Cards {
		if fresh.Card(i).State != Hidden {
			t.Fatalf("card %d is %v after reset", i, fresh.Card(i).State)
		}
	}
}

func TestSelectionInvariants(t *testing.T) {
	clock := core.NewManualClock(epoch)
	st, err := NewState(testSettings(clock))
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(99))

	for step := range 500 {
		before := len(st.Selection())
		moves := st.Moves()

		if rng.Intn(4) == 0 {
			st.OnTimerExpired()
		} else {
			click(st, rng.Intn(12))
		}

		after := len(st.Selection())
		if after > 2 {
			t.Fatalf("step %d: selection length %d", step, after)
		}

		grew := st.Moves() - moves
		completed := before == 1 && (after == 2 || (after == 0 && st.Matches() > 0 && grew == 1))
		if grew != 0 && grew != 1 {
			t.Fatalf("step %d: moves jumped by %d", step, grew)
		}
		if grew == 1 && !completed {
			t.Fatalf("step %d: moves grew without completing a pair", step)
		}
		if st.Matches() == st.TotalPairs() && !st.GameOver() {
			t.Fatalf("step %d: all pairs matched but game not over", step)
		}
	}
}

func TestKeyboardCursor(t *testing.T) {
	st, _ := newFixedState(t)

	st.MoveCursor(-1, -1)
	if st.Cursor() != 0 {
		t.Errorf("cursor should clamp at the top-left, got %d", st.Cursor())
	}

	st.MoveCursor(2, 1)
	if st.Cursor() != 6 {
		t.Fatalf("cursor = %d, expected 6", st.Cursor())
	}
	st.FlipCursor()
	st.MoveCursor(-2, -1)
	st.FlipCursor()

	if st.Matches() != 1 || st.Moves() != 1 {
		t.Errorf("cursor flips should match cards 6 and 0: moves=%d matches=%d", st.Moves(), st.Matches())
	}

	st.MoveCursor(10, 10)
	if st.Cursor() != 11 {
		t.Errorf("cursor should clamp at the bottom-right, got %d", st.Cursor())
	}
}

func TestRender(t *testing.T) {
	st, _ := newFixedState(t)
	screen := core.NewScreen(60, 24)

	click(st, 0)
	click(st, 1)
	moves, sel := st.Moves(), st.Selection()

	st.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Moves: 1") {
		t.Error("HUD should show the move count")
	}
	if st.Moves() != moves || len(st.Selection()) != len(sel) {
		t.Error("Render should not change state")
	}

	c0 := st.Card(0).Rect.Center()
	if got := screen.Get(c0.X, c0.Y); got != '1' {
		t.Errorf("revealed card 0 shows %q, expected '1'", got)
	}
	if got := screen.GetCell(c0.X, st.Card(0).Rect.Y).Color; got != core.ColorBrightWhite {
		t.Errorf("revealed card border is %v", got)
	}
	hidden := st.Card(2).Rect.Center()
	if got := screen.GetCell(hidden.X, hidden.Y); got.Rune != hiddenFill || got.Color != core.ColorBlue {
		t.Errorf("hidden card cell = %+v", got)
	}

	st.OnTimerExpired()
	for i := range 6 {
		click(st, i)
		click(st, i+6)
	}
	if !st.GameOver() {
		t.Fatal("expected game over")
	}

	st.Render(screen)
	if !strings.Contains(screen.String(), "ALL PAIRS FOUND") {
		t.Error("game over overlay missing")
	}
}

func TestLoopDeliversTimerOnWallClock(t *testing.T) {
	host := engine.NewHeadlessHost(epoch, 0)
	g := New()
	st, err := NewStateFromValues(testSettings(host), fixedValues)
	if err != nil {
		t.Fatal(err)
	}
	g.UseState(st)
	loop := engine.NewLoop(g, host, core.RuntimeConfig{ScreenW: 60, ScreenH: 24, Seed: 1})

	frame := func(events ...core.Event) {
		t.Helper()
		if _, err := loop.Frame(events); err != nil {
			t.Fatal(err)
		}
	}

	c0, c1 := st.Card(0).Rect.Center(), st.Card(1).Rect.Center()
	frame(core.PointerDown(c0.X, c0.Y))
	frame(core.PointerDown(c1.X, c1.Y))
	if !st.TimerArmed() {
		t.Fatal("mismatch should arm the timer")
	}

	host.Advance(999 * time.Millisecond)
	frame()
	if st.Card(0).State != Revealed {
		t.Fatal("cards hidden before the delay elapsed")
	}

	host.Advance(time.Millisecond)
	frame(core.TimerExpired())
	if st.Card(0).State != Hidden || st.Card(1).State != Hidden {
		t.Error("cards should be hidden once the delay elapsed")
	}
	if len(st.Selection()) != 0 {
		t.Error("selection should be empty after the timer fired")
	}
}

func TestClickAfterDeadlineIsNotDropped(t *testing.T) {
	host := engine.NewHeadlessHost(epoch, 0)
	g := New()
	st, err := NewStateFromValues(testSettings(host), fixedValues)
	if err != nil {
		t.Fatal(err)
	}
	g.UseState(st)
	loop := engine.NewLoop(g, host, core.RuntimeConfig{ScreenW: 60, ScreenH: 24, Seed: 1})

	press := func(i int) {
		t.Helper()
		c := st.Card(i).Rect.Center()
		if _, err := loop.Frame([]core.Event{core.PointerDown(c.X, c.Y)}); err != nil {
			t.Fatal(err)
		}
	}

	press(0)
	press(1)
	if !st.TimerArmed() {
		t.Fatal("mismatch should arm the timer")
	}

	// The click lands in the first frame after the deadline.
	host.Advance(1100 * time.Millisecond)
	press(2)

	if st.Card(0).State != Hidden || st.Card(1).State != Hidden {
		t.Error("mismatched pair should be hidden before the click is applied")
	}
	if st.Card(2).State != Revealed {
		t.Errorf("card 2 = %v, expected revealed", st.Card(2).State)
	}
	if got := st.Selection(); len(got) != 1 || got[0] != 2 {
		t.Errorf("selection = %v, expected [2]", got)
	}
	if st.Moves() != 1 {
		t.Errorf("moves = %d, expected 1", st.Moves())
	}
}

func TestLoopRestartBuildsNextRound(t *testing.T) {
	host := engine.NewHeadlessHost(epoch, 0)
	g := New()
	s := testSettings(host)
	s.Rows, s.Cols = 1, 2
	st, err := NewStateFromValues(s, []int{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	g.UseState(st)
	loop := engine.NewLoop(g, host, core.RuntimeConfig{ScreenW: 60, ScreenH: 24, Seed: 1})

	frame := func(events ...core.Event) {
		t.Helper()
		if _, err := loop.Frame(events); err != nil {
			t.Fatal(err)
		}
	}

	frame(core.KeyDown(RestartKey))
	if g.Current() != st {
		t.Fatal("restart mid-game should keep the round")
	}

	c0, c1 := st.Card(0).Rect.Center(), st.Card(1).Rect.Center()
	frame(core.PointerDown(c0.X, c0.Y), core.PointerDown(c1.X, c1.Y))
	if !st.GameOver() {
		t.Fatal("1x2 board should be won after one move")
	}

	frame(core.KeyDown(" "))
	if g.Current() != st {
		t.Error("space should not restart memory")
	}

	frame(core.KeyDown(RestartKey))
	next := g.Current()
	if next == st {
		t.Fatal("restart should swap in a new round")
	}
	if next.GameOver() || next.Moves() != 0 || next.TotalPairs() != 1 {
		t.Errorf("next round: over=%v moves=%d pairs=%d", next.GameOver(), next.Moves(), next.TotalPairs())
	}
}

func TestGameAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  rows: 2\n  cols: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g, err := registry.Create("memory")
	if err != nil {
		t.Fatalf("registry.Create(memory) failed: %v", err)
	}
	if !registry.LowerIsBetter("memory") {
		t.Error("memory should rank lower scores first")
	}

	if err := g.Reset(core.RuntimeConfig{ScreenW: 60, ScreenH: 24, Seed: 3}); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	mg := g.(*Game)
	if mg.Current().TotalPairs() != 2 {
		t.Errorf("TotalPairs() = %d, expected 2 from config file", mg.Current().TotalPairs())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	g.Step(in)
	if mg.Current().Cursor() != 1 {
		t.Errorf("cursor = %d after Right, expected 1", mg.Current().Cursor())
	}

	flip := core.NewInputFrame()
	flip.Set(core.ActionConfirm)
	g.Step(flip)
	if mg.Current().Card(1).State != Revealed {
		t.Error("Confirm should flip the card under the cursor")
	}
}

func TestGameResetRejectsOddGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  rows: 3\n  cols: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	err := New().Reset(core.DefaultConfig())
	if !errors.Is(err, config.ErrInvalidGrid) {
		t.Errorf("Reset() = %v, expected ErrInvalidGrid", err)
	}
}
