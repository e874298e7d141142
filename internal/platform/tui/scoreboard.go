package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pyarcade/tui-arcade/internal/registry"
	"github.com/pyarcade/tui-arcade/internal/storage"
)

const scoreboardLimit = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// scoreboardKeys are the scoreboard's bindings; they double as its help.
type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev game")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the stored scores of one game at a time, ranked
// the way that game ranks them.
type ScoreboardModel struct {
	store   *storage.Store
	games   []registry.GameInfo
	current int
	session string // rows saved by this session are marked

	scores []storage.ScoreEntry
	stats  *storage.GameStats
	table  table.Model
	help   help.Model
	keys   scoreboardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard opened on the first registered
// game. A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  registry.List(),
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// ForSession marks the rows saved by session.
func (m ScoreboardModel) ForSession(session string) ScoreboardModel {
	m.session = session
	m.table.SetRows(m.rows())
	return m
}

func (m ScoreboardModel) game() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.current], true
}

// reload fetches the current game's scores and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	if g, ok := m.game(); ok && m.store != nil {
		// A failing query just shows an empty board.
		m.scores, _ = m.store.TopScores(g.ID, scoreboardLimit, storage.OrderFor(g.LowerIsBetter))
		m.stats, _ = m.store.GetGameStats(g.ID)
	}
	m.table = m.newTable()
}

func (m ScoreboardModel) newTable() table.Model {
	scoreCol := "Score"
	if g, ok := m.game(); ok && g.LowerIsBetter {
		scoreCol = "Moves"
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: scoreCol, Width: 8},
			{Title: "Player", Width: 10},
			{Title: "Date", Width: 14},
		}),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) rows() []table.Row {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			m.player(s.Session),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// player labels a score's origin: local play, this session, or a short
// form of another SSH session's id.
func (m ScoreboardModel) player(session string) string {
	switch {
	case session == "":
		return "local"
	case session == m.session:
		return "you"
	case len(session) > 8:
		return session[:8]
	}
	return session
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation between games and table scrolling.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.switchGame(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchGame(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchGame(delta int) {
	if n := len(m.games); n > 0 {
		m.current = (m.current + delta + n) % n
		m.reload()
	}
}

// View renders the game tabs, the ranking table, a stats line and help.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	body := boardDimStyle.Italic(true).Padding(1, 2).Render("No scores yet. Play a round to set one!")
	if len(m.scores) > 0 {
		body = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(body)))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(boardDimStyle.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		style := boardTabStyle
		if i == m.current {
			style = boardActiveTab
		}
		tabs[i] = style.Render(g.Title)
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	// Fall back to the current title when the tabs do not fit.
	if g, ok := m.game(); ok && lipgloss.Width(line) > m.width {
		line = fmt.Sprintf("< %s >", g.Title)
	}
	return line
}

func (m ScoreboardModel) statsLine() string {
	g, ok := m.game()
	if !ok || m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	unit := "pts"
	if g.LowerIsBetter {
		unit = "moves"
	}
	return fmt.Sprintf("%d played · best %d %s · average %.1f",
		m.stats.GamesCount, m.stats.Best(storage.OrderFor(g.LowerIsBetter)), unit, m.stats.AvgScore)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program and reports whether
// the user went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
