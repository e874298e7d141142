package memory

import (
	"fmt"
	"math/rand"

	"github.com/pyarcade/tui-arcade/internal/config"
	"github.com/pyarcade/tui-arcade/internal/core"
)

// CardState is the visibility of a card.
// A card moves hidden -> revealed -> {hidden, matched}; matched is terminal.
type CardState int

const (
	Hidden CardState = iota
	Revealed
	Matched
)

// String returns the string representation of a CardState.
func (cs CardState) String() string {
	switch cs {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Card is a single card on the board.
type Card struct {
	Rect  core.Rect // Screen cells covered by the card
	Value int       // Pair identifier, 1..pairs
	State CardState
}

// Layout describes how cards are placed on the screen.
type Layout struct {
	ScreenW int
	ScreenH int
	CardW   int
	CardH   int
	MarginX int // Columns between cards
	MarginY int // Rows between cards
	Top     int // Rows reserved for the HUD
}

// LayoutFromConfig builds a layout for a screen of the given size.
func LayoutFromConfig(cfg config.MemoryConfig, screenW, screenH int) Layout {
	return Layout{
		ScreenW: screenW,
		ScreenH: screenH,
		CardW:   cfg.Cards.Width,
		CardH:   cfg.Cards.Height,
		MarginX: cfg.Cards.MarginX,
		MarginY: cfg.Cards.MarginY,
		Top:     hudHeight,
	}
}

// rects returns card rectangles in row-major order, with the grid centered
// in the area below the HUD.
func (l Layout) rects(rows, cols int) []core.Rect {
	gridW := cols*l.CardW + (cols-1)*l.MarginX
	gridH := rows*l.CardH + (rows-1)*l.MarginY

	x0 := max((l.ScreenW-gridW)/2, 0)
	y0 := l.Top + max((l.ScreenH-l.Top-gridH)/2, 0)

	out := make([]core.Rect, 0, rows*cols)
	for r := range rows {
		for c := range cols {
			out = append(out, core.NewRect(
				x0+c*(l.CardW+l.MarginX),
				y0+r*(l.CardH+l.MarginY),
				l.CardW,
				l.CardH,
			))
		}
	}
	return out
}

// Board is a rows x cols grid of cards where every value appears exactly twice.
type Board struct {
	Rows  int
	Cols  int
	Cards []Card
}

// NewBoard creates a board with values 1..rows*cols/2, each placed twice and
// shuffled with rng. Grids with an odd or non-positive cell count fail with
// config.ErrInvalidGrid.
func NewBoard(rows, cols int, layout Layout, rng *rand.Rand) (*Board, error) {
	if err := config.ValidateGrid(rows, cols); err != nil {
		return nil, err
	}

	n := rows * cols
	values := make([]int, n)
	for i := range values {
		values[i] = i/2 + 1
	}
	rng.Shuffle(n, func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	return NewBoardFromValues(rows, cols, layout, values)
}

// NewBoardFromValues creates a board from a fixed row-major value order.
func NewBoardFromValues(rows, cols int, layout Layout, values []int) (*Board, error) {
	if err := config.ValidateGrid(rows, cols); err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("memory: %d values for a %dx%d grid", len(values), rows, cols)
	}

	counts := make(map[int]int, len(values)/2)
	for _, v := range values {
		counts[v]++
	}
	for v, c := range counts {
		if c != 2 {
			return nil, fmt.Errorf("memory: value %d appears %d times, want 2", v, c)
		}
	}

	rects := layout.rects(rows, cols)
	cards := make([]Card, len(values))
	for i, v := range values {
		cards[i] = Card{Rect: rects[i], Value: v, State: Hidden}
	}

	return &Board{Rows: rows, Cols: cols, Cards: cards}, nil
}

// Relayout moves cards to match a new layout without touching their state.
func (b *Board) Relayout(layout Layout) {
	for i, r := range layout.rects(b.Rows, b.Cols) {
		b.Cards[i].Rect = r
	}
}

// TotalPairs returns the number of pairs on the board.
func (b *Board) TotalPairs() int {
	return len(b.Cards) / 2
}

// Index returns the card index for a grid position.
func (b *Board) Index(row, col int) int {
	return row*b.Cols + col
}

// HiddenAt returns the index of the first hidden card containing p, or -1.
func (b *Board) HiddenAt(p core.Point) int {
	for i, c := range b.Cards {
		if c.State == Hidden && c.Rect.ContainsPoint(p) {
			return i
		}
	}
	return -1
}

// Values returns the card values in row-major order.
func (b *Board) Values() []int {
	out := make([]int, len(b.Cards))
	for i, c := range b.Cards {
		out[i] = c.Value
	}
	return out
}
