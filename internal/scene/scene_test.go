package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSquareTessellation(t *testing.T) {
	s := NewSquare(mgl64.Vec2{0, 0})
	if err := s.Create(4); err != nil {
		t.Fatalf("Create(4) failed: %v", err)
	}

	quads := s.Quads()
	if len(quads) != 16 {
		t.Fatalf("got %d quads, expected 16", len(quads))
	}

	var area float64
	for _, q := range quads {
		area += (q.Max.X() - q.Min.X()) * (q.Max.Y() - q.Min.Y())
	}
	if math.Abs(area-4) > 1e-9 {
		t.Errorf("quads cover area %v, expected 4 (full NDC square)", area)
	}
}

func TestSquareRejectsZeroLevel(t *testing.T) {
	if err := NewSquare(mgl64.Vec2{}).Create(0); err == nil {
		t.Error("Create(0) should fail")
	}
}

func TestManagerLoadReplacesSnapshot(t *testing.T) {
	m := NewManager()
	if len(m.Renderables()) != 0 {
		t.Fatal("new manager should be empty")
	}

	if err := m.Load(2); err != nil {
		t.Fatal(err)
	}
	first := m.Renderables()
	firstQuads := len(first[0].Quads())

	if err := m.Load(5); err != nil {
		t.Fatal(err)
	}

	if len(first[0].Quads()) != firstQuads {
		t.Error("earlier snapshot was mutated by Load")
	}
	if got := len(m.Renderables()[0].Quads()); got != 25 {
		t.Errorf("reloaded scene has %d quads, expected 25", got)
	}
	if m.Level() != 5 {
		t.Errorf("Level() = %d, expected 5", m.Level())
	}

	if err := m.Load(0); err == nil {
		t.Error("Load(0) should fail")
	}
	if m.Level() != 5 {
		t.Error("failed Load must keep the previous scene")
	}
}
