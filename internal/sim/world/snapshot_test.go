package world

import "testing"

func newTestWorld() *World {
	return New(WorldConfig{}, DefaultBlockCatalog())
}

func TestSnapshot_ReadsLoadedBlocks(t *testing.T) {
	w := newTestWorld()
	pos := Vec3i{X: 3, Y: 10, Z: 3}
	w.SetBlockID(pos, "STONE")

	snap, err := NewSnapshot(w, Vec3i{}, Vec3i{X: 15, Y: 255, Z: 15}, 0)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if got := snap.BlockState(pos); got.Kind() != KindSolid {
		t.Fatalf("block at %v is %v", pos, got.Kind())
	}
	if got := snap.BlockState(pos.Up()); !got.IsAir() {
		t.Fatalf("air cell read as %v", got.Kind())
	}
}

func TestSnapshot_OutOfWindowReadsAir(t *testing.T) {
	w := newTestWorld()
	w.SetBlockID(Vec3i{X: 100, Y: 10, Z: 100}, "STONE")

	snap, err := NewSnapshot(w, Vec3i{}, Vec3i{X: 15, Y: 255, Z: 15}, 0)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if got := snap.BlockState(Vec3i{X: 100, Y: 10, Z: 100}); !got.IsAir() {
		t.Fatalf("out-of-window read returned %v", got.Kind())
	}
	if !snap.FluidState(Vec3i{X: 100, Y: 10, Z: 100}).IsEmpty() {
		t.Fatalf("out-of-window fluid not empty")
	}
}

func TestSnapshot_UnloadedChunkReadsAir(t *testing.T) {
	w := newTestWorld()
	w.SetBlockID(Vec3i{X: 1, Y: 1, Z: 1}, "STONE")

	// Window covers chunks that were never touched.
	snap, err := NewSnapshot(w, Vec3i{}, Vec3i{X: 47, Y: 255, Z: 47}, 0)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if got := snap.BlockState(Vec3i{X: 40, Y: 0, Z: 40}); !got.IsAir() {
		t.Fatalf("unloaded chunk read returned %v", got.Kind())
	}
}

func TestSnapshot_VerticalBounds(t *testing.T) {
	w := newTestWorld()
	w.SetBlockID(Vec3i{X: 1, Y: 1, Z: 1}, "STONE")

	snap, err := NewSnapshot(w, Vec3i{}, Vec3i{X: 15, Y: 255, Z: 15}, 0)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if got := snap.BlockState(Vec3i{X: 1, Y: -1, Z: 1}); !got.IsAir() {
		t.Fatalf("below-world read returned %v", got.Kind())
	}
	if got := snap.BlockState(Vec3i{X: 1, Y: 256, Z: 1}); !got.IsAir() {
		t.Fatalf("above-world read returned %v", got.Kind())
	}
}

func TestSnapshot_LaterChunksInvisible(t *testing.T) {
	w := newTestWorld()
	w.SetBlockID(Vec3i{X: 1, Y: 1, Z: 1}, "STONE")

	snap, err := NewSnapshot(w, Vec3i{}, Vec3i{X: 47, Y: 255, Z: 47}, 0)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	// Chunks loaded after the snapshot was taken stay invisible to it.
	w.SetBlockID(Vec3i{X: 40, Y: 1, Z: 40}, "STONE")
	if got := snap.BlockState(Vec3i{X: 40, Y: 1, Z: 40}); !got.IsAir() {
		t.Fatalf("snapshot saw a chunk loaded after construction: %v", got.Kind())
	}
}

func TestSnapshot_WindowTooLarge(t *testing.T) {
	w := newTestWorld()
	if _, err := NewSnapshot(w, Vec3i{}, Vec3i{X: 5000, Y: 255, Z: 0}, 0); err == nil {
		t.Fatalf("expected window size error")
	}
}

func TestSnapshot_Contains(t *testing.T) {
	w := newTestWorld()
	w.SetBlockID(Vec3i{X: 1, Y: 1, Z: 1}, "STONE")

	snap, err := NewSnapshot(w, Vec3i{}, Vec3i{X: 15, Y: 255, Z: 15}, 0)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !snap.Contains(Vec3i{X: 8, Y: 0, Z: 8}) {
		t.Fatalf("window should contain its own box")
	}
	if snap.Contains(Vec3i{X: 200, Y: 0, Z: 8}) {
		t.Fatalf("window should not contain far columns")
	}
}
