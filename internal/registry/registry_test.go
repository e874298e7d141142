package registry

import (
	"testing"

	"github.com/pyarcade/tui-arcade/internal/core"
)

type stubGame struct {
	id    string
	lower bool
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) error       { return nil }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }
func (g *stubGame) LowerIsBetter() bool                  { return g.lower }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b", lower: true} })

	if !Exists("zz_stub_a") {
		t.Fatal("registered game should exist")
	}
	if Exists("zz_missing") {
		t.Error("unregistered game should not exist")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("Create() returned %q", g.ID())
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() of unknown game should fail")
	}

	info, ok := Info("zz_stub_b")
	if !ok {
		t.Fatal("Info() should find registered game")
	}
	if !info.LowerIsBetter {
		t.Error("Ranked game should report LowerIsBetter")
	}
	if info.Title != "Stub zz_stub_b" {
		t.Errorf("Info().Title = %q", info.Title)
	}
}

func TestListIsSorted(t *testing.T) {
	Register("zz_sort_2", func() Game { return &stubGame{id: "zz_sort_2"} })
	Register("zz_sort_1", func() Game { return &stubGame{id: "zz_sort_1"} })

	games := List()
	for i := 1; i < len(games); i++ {
		if games[i-1].ID >= games[i].ID {
			t.Fatalf("List() not sorted: %q before %q", games[i-1].ID, games[i].ID)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
