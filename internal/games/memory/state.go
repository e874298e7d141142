package memory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pyarcade/tui-arcade/internal/core"
)

// RestartKey restarts a finished game.
const RestartKey = "r"

const hudHeight = 2

// Visual characters for rendering
const (
	hiddenFill  = '▒'
	cursorChar  = '▶'
	matchedMark = '✓'
)

// Settings holds everything needed to build a State.
type Settings struct {
	Rows      int
	Cols      int
	Layout    Layout
	HideDelay time.Duration
	Seed      int64
	Clock     core.Clock // nil means core.SystemClock
}

// State is one Memory game: the board, the selection buffer, the counters
// and the mismatch hide timer. A State is replaced wholesale on restart.
type State struct {
	settings  Settings
	rng       *rand.Rand
	clock     core.Clock
	board     *Board
	selection []int // Indices of revealed, unresolved cards; at most 2
	moves     int
	matches   int
	gameOver  bool
	timer     core.Timer
	cursor    int
}

// NewState builds a State with a freshly shuffled board.
func NewState(s Settings) (*State, error) {
	rng := rand.New(rand.NewSource(s.Seed))
	board, err := NewBoard(s.Rows, s.Cols, s.Layout, rng)
	if err != nil {
		return nil, err
	}
	return newState(s, rng, board), nil
}

// NewStateFromValues builds a State over a fixed row-major shuffle.
func NewStateFromValues(s Settings, values []int) (*State, error) {
	board, err := NewBoardFromValues(s.Rows, s.Cols, s.Layout, values)
	if err != nil {
		return nil, err
	}
	return newState(s, rand.New(rand.NewSource(s.Seed)), board), nil
}

func newState(s Settings, rng *rand.Rand, board *Board) *State {
	clock := s.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &State{
		settings:  s,
		rng:       rng,
		clock:     clock,
		board:     board,
		selection: make([]int, 0, 2),
	}
}

// Reset returns a new State with a reshuffled board, zeroed counters, an
// empty selection and a disarmed timer. The receiver is left untouched.
func (st *State) Reset() (*State, error) {
	s := st.settings
	s.Seed = st.rng.Int63()
	return NewState(s)
}

// HandleClick reveals the first hidden card under p. It is a no-op while two
// cards await resolution, after game over, or when p hits no hidden card.
func (st *State) HandleClick(p core.Point) {
	if len(st.selection) == 2 || st.gameOver {
		return
	}
	i := st.board.HiddenAt(p)
	if i < 0 {
		return
	}
	st.cursor = i
	st.reveal(i)
}

// reveal turns card i face up and resolves a completed pair.
func (st *State) reveal(i int) {
	st.board.Cards[i].State = Revealed
	st.selection = append(st.selection, i)
	if len(st.selection) < 2 {
		return
	}

	st.moves++
	a := &st.board.Cards[st.selection[0]]
	b := &st.board.Cards[st.selection[1]]
	if a.Value != b.Value {
		// Keep both face up until the timer fires.
		st.timer.Arm(st.clock.Now(), st.settings.HideDelay)
		return
	}

	a.State = Matched
	b.State = Matched
	st.selection = st.selection[:0]
	st.matches++
	if st.matches == st.board.TotalPairs() {
		st.gameOver = true
	}
}

// OnTimerExpired hides every unmatched card in the selection, clears it and
// disarms the timer. With an empty selection it does nothing.
func (st *State) OnTimerExpired() {
	for _, i := range st.selection {
		if st.board.Cards[i].State != Matched {
			st.board.Cards[i].State = Hidden
		}
	}
	st.selection = st.selection[:0]
	st.timer.Cancel()
}

// HandleKey returns the State to use after key. The restart key yields a
// fresh State once the game is over; any other key, or a restart mid-game,
// returns the receiver.
func (st *State) HandleKey(key string) (*State, error) {
	if !st.gameOver || key != RestartKey {
		return st, nil
	}
	return st.Reset()
}

// MoveCursor moves the keyboard cursor by one card, clamped to the grid.
func (st *State) MoveCursor(dx, dy int) {
	row := core.Clamp(st.cursor/st.board.Cols+dy, 0, st.board.Rows-1)
	col := core.Clamp(st.cursor%st.board.Cols+dx, 0, st.board.Cols-1)
	st.cursor = st.board.Index(row, col)
}

// FlipCursor reveals the card under the keyboard cursor under the same rules
// as a click.
func (st *State) FlipCursor() {
	if len(st.selection) == 2 || st.gameOver {
		return
	}
	if st.board.Cards[st.cursor].State != Hidden {
		return
	}
	st.reveal(st.cursor)
}

// Relayout re-centers the board for a new screen size.
func (st *State) Relayout(w, h int) {
	st.settings.Layout.ScreenW = w
	st.settings.Layout.ScreenH = h
	st.board.Relayout(st.settings.Layout)
}

// Moves returns the number of completed pair comparisons.
func (st *State) Moves() int { return st.moves }

// Matches returns the number of confirmed pairs.
func (st *State) Matches() int { return st.matches }

// TotalPairs returns the number of pairs on the board.
func (st *State) TotalPairs() int { return st.board.TotalPairs() }

// GameOver reports whether every pair has been matched.
func (st *State) GameOver() bool { return st.gameOver }

// Selection returns a copy of the selection buffer.
func (st *State) Selection() []int {
	return append([]int(nil), st.selection...)
}

// Card returns the card at index i.
func (st *State) Card(i int) Card { return st.board.Cards[i] }

// Board returns the board.
func (st *State) Board() *Board { return st.board }

// Cursor returns the card index under the keyboard cursor.
func (st *State) Cursor() int { return st.cursor }

// Timer returns the mismatch hide timer.
func (st *State) Timer() *core.Timer { return &st.timer }

// TimerArmed reports whether a mismatch is waiting to be hidden.
func (st *State) TimerArmed() bool { return st.timer.Armed() }

// Render draws the cards, the move counter and, once the game is over, an
// overlay. It does not change the state.
func (st *State) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawTextColor(fmt.Sprintf(" Moves: %d ", st.moves), core.Pt(2, 0), core.ColorBrightWhite)
	pairs := fmt.Sprintf(" Pairs: %d/%d ", st.matches, st.board.TotalPairs())
	dst.DrawTextColor(pairs, core.Pt(dst.Width()-len(pairs)-2, 0), core.ColorGray)

	for i, c := range st.board.Cards {
		drawCard(dst, c)
		if i == st.cursor && !st.gameOver {
			dst.SetColor(c.Rect.X-1, c.Rect.Y+c.Rect.H/2, cursorChar, core.ColorBrightGreen)
		}
	}

	if st.gameOver {
		dst.DrawMessageBox("ALL PAIRS FOUND", fmt.Sprintf("Moves: %d  |  Press R to restart", st.moves))
	}
}

func drawCard(dst *core.Screen, c Card) {
	inner := core.NewRect(c.Rect.X+1, c.Rect.Y+1, c.Rect.W-2, c.Rect.H-2)
	label := fmt.Sprintf("%d", c.Value)
	center := c.Rect.Center()
	labelPos := core.Pt(center.X-len(label)/2, center.Y)

	switch c.State {
	case Hidden:
		dst.DrawBoxColor(c.Rect, core.ColorBlue)
		dst.FillRectColor(inner, hiddenFill, core.ColorBlue)
	case Revealed:
		dst.DrawBoxColor(c.Rect, core.ColorBrightWhite)
		dst.FillRectColor(inner, ' ', core.ColorDefault)
		dst.DrawTextColor(label, labelPos, core.ColorBrightYellow)
	case Matched:
		dst.DrawBoxColor(c.Rect, core.ColorGray)
		dst.FillRectColor(inner, ' ', core.ColorDefault)
		dst.DrawTextColor(label, labelPos, core.ColorGray)
		dst.SetColor(c.Rect.Right()-2, c.Rect.Y+1, matchedMark, core.ColorGreen)
	}
}
