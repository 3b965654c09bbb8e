package storage

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/hopfviz/internal/hopf"
)

func fibersFor(t *testing.T, points ...hopf.Point3) []hopf.Fiber {
	t.Helper()
	out := make([]hopf.Fiber, len(points))
	for i, p := range points {
		f, err := hopf.FiberFromPoint(p, 40)
		if err != nil {
			t.Fatalf("fiber: %v", err)
		}
		out[i] = f
	}
	return out
}

func TestStore_SaveLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	fibers := fibersFor(t, hopf.Point3{Z: 1}, hopf.Point3{X: 1}, hopf.SpecialPoint)
	id, err := s.Save("demo", fibers)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "demo" || meta.Count != 3 || meta.Steps != 40 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Fibers[0].Color != fibers[0].Color.Hex() {
		t.Errorf("expected color %s, got %s", fibers[0].Color.Hex(), meta.Fibers[0].Color)
	}
	if math.Abs(meta.Fibers[0].Radius-math.Sqrt2) > 1e-9 {
		t.Errorf("expected radius √2, got %v", meta.Fibers[0].Radius)
	}
	if meta.Fibers[2].Radius != 0 {
		t.Errorf("degenerate fiber should have no radius, got %v", meta.Fibers[2].Radius)
	}

	points, err := s.LoadFibers(id)
	if err != nil {
		t.Fatalf("load fibers failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 fibers, got %d", len(points))
	}
	for i := range fibers {
		if len(points[i]) != 40 {
			t.Fatalf("fiber %d: expected 40 points, got %d", i, len(points[i]))
		}
		for j, p := range points[i] {
			if p != fibers[i].Points[j] {
				t.Fatalf("fiber %d sample %d: expected %v, got %v", i, j, fibers[i].Points[j], p)
			}
		}
	}
}

func TestStore_SaveEmpty(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Save("empty", nil); !errors.Is(err, ErrEmptyExport) {
		t.Errorf("expected ErrEmptyExport, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	runs, err := s.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v, %v", runs, err)
	}

	for _, name := range []string{"first", "second"} {
		if _, err := s.Save(name, fibersFor(t, hopf.Point3{Y: 1})); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Name != "first" || runs[1].Name != "second" {
		t.Errorf("unexpected list %+v", runs)
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	s := New(t.TempDir() + "/nope")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("missing directory should not fail: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no exports, got %d", len(runs))
	}
}
