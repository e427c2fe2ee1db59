package world

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBlockCatalog_FromConfigs(t *testing.T) {
	c, err := LoadBlockCatalog(filepath.Join("..", "..", "..", "configs", "blocks.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Digest == "" {
		t.Fatalf("missing digest")
	}
	if len(c.Palette) != len(c.Defs) {
		t.Fatalf("palette %d vs defs %d", len(c.Palette), len(c.Defs))
	}

	ladder := c.State("LADDER")
	if !ladder.IsClimbable() {
		t.Fatalf("ladder not climbable")
	}
	if fence := c.Defs["FENCE"]; fence.ShapeHeight != 1.5 {
		t.Fatalf("fence shape height %v", fence.ShapeHeight)
	}
	if !c.State("DIRT_PATH").IsRoad() {
		t.Fatalf("dirt path not a road")
	}
}

func TestLoadBlockCatalog_RejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	doc := "blocks:\n  - id: AIR\n    kind: air\n    material: air\n  - id: WEIRD\n    kind: weird\n    material: solid\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadBlockCatalog(path); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestDefaultBlockCatalog_States(t *testing.T) {
	c := DefaultBlockCatalog()

	if !c.Air().IsAir() {
		t.Fatalf("air state broken")
	}
	if snow := c.State("SNOW_LAYER"); snow.Layers != 1 {
		t.Fatalf("snow default layers %d", snow.Layers)
	}
	if got := c.State("NO_SUCH_BLOCK"); !got.IsAir() {
		t.Fatalf("unknown id should yield air, got %v", got.Kind())
	}

	snow := c.State("SNOW_LAYER")
	snow.Layers = 4
	if h := snow.ShapeHeight(); h != 0.5 {
		t.Fatalf("4 snow layers height %v want 0.5", h)
	}

	gate := c.State("FENCE_GATE")
	if gate.ShapeHeight() != 1.5 {
		t.Fatalf("closed gate height %v", gate.ShapeHeight())
	}
	gate.Open = true
	if gate.ShapeHeight() != 0 {
		t.Fatalf("open gate should have no shape")
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(1337)
	b := NewGenerator(1337)
	other := NewGenerator(7)

	differs := false
	for x := -50; x <= 50; x += 5 {
		for z := -50; z <= 50; z += 5 {
			if a.SurfaceY(x, z) != b.SurfaceY(x, z) {
				t.Fatalf("same seed diverged at (%d,%d)", x, z)
			}
			if a.SurfaceY(x, z) != other.SurfaceY(x, z) {
				differs = true
			}
		}
	}
	if !differs {
		t.Fatalf("different seeds produced identical terrain")
	}
}

func TestGeneratedWorld_HasSurface(t *testing.T) {
	w := New(WorldConfig{Seed: 42, Generate: true}, DefaultBlockCatalog())
	w.LoadArea(Vec3i{}, Vec3i{X: 15, Z: 15})

	gen := NewGenerator(42)
	surface := gen.SurfaceY(8, 8)
	if got := w.BlockState(Vec3i{X: 8, Y: surface, Z: 8}); !got.IsSolid() {
		t.Fatalf("surface block at y=%d is %v", surface, got.Kind())
	}
	if got := w.BlockState(Vec3i{X: 8, Y: surface + 2, Z: 8}); got.IsSolid() && got.Material() != MaterialWater {
		t.Fatalf("air above surface is %v", got.Kind())
	}
}
