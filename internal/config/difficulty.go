package config

// Lower bounds that keep a flappy field passable at full difficulty.
const (
	minPipeGap     = 4
	minPipeSpacing = 15
)

// DifficultyManager turns a game's score or elapsed ticks into a level in
// [0, 1] and scales tuning values by it.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for cfg. The initial level is
// clamped to [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clamp01(cfg.InitialLevel)
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled turns progression on or off. A disabled manager stays at the
// initial level.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// progress is how far along the progression curve the game is, in [0, 1].
func (d *DifficultyManager) progress(score, ticks int) float64 {
	if !d.cfg.Enabled {
		return 0
	}

	var done int
	switch d.cfg.Progression.Type {
	case "score":
		done = score
	case "time":
		done = ticks
	default: // "none" or unknown
		return 0
	}

	maxAt := max(d.cfg.Progression.MaxAt, 1)
	return clamp01(float64(done) / float64(maxAt))
}

// Level returns the difficulty level, rising from the initial level to 1.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	return lerp(d.cfg.InitialLevel, 1, d.progress(score, ticks))
}

// Lerp interpolates between lo and hi by the current level.
func (d *DifficultyManager) Lerp(lo, hi float64, score, ticks int) float64 {
	return lerp(lo, hi, d.Level(score, ticks))
}

// Speed scales base up by the configured multiplier at full difficulty.
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize narrows a pipe gap as the level rises.
func (d *DifficultyManager) GapSize(base, score, ticks int) int {
	return d.shrink(base, d.cfg.Scaling.GapReduction, minPipeGap, score, ticks)
}

// Spacing brings pipes closer together as the level rises.
func (d *DifficultyManager) Spacing(base, score, ticks int) int {
	return d.shrink(base, d.cfg.Scaling.SpacingReduction, minPipeSpacing, score, ticks)
}

func (d *DifficultyManager) shrink(base, reduction, floor, score, ticks int) int {
	v := base - int(d.Level(score, ticks)*float64(reduction))
	return max(v, floor)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
