package pathing

import (
	"context"
	"testing"

	"voxelpath.ai/internal/sim/world"
)

func TestRegistries_FirstAnswerWins(t *testing.T) {
	w := testWorld()
	ladder := w.Catalog().State("LADDER")

	reg := NewRegistries()
	reg.RegisterLadder(func(e *world.Entity, state world.BlockState, r world.Reader, pos world.Vec3i) (bool, bool) {
		return false, true
	})
	reg.RegisterLadder(func(e *world.Entity, state world.BlockState, r world.Reader, pos world.Vec3i) (bool, bool) {
		return true, true
	})

	if reg.isLadder(nil, ladder, w, world.Vec3i{}) {
		t.Fatalf("first callback should have won with false")
	}
}

func TestRegistries_LadderFallback(t *testing.T) {
	w := testWorld()
	reg := NewRegistries()

	if !reg.isLadder(nil, w.Catalog().State("LADDER"), w, world.Vec3i{}) {
		t.Fatalf("climbable block should be a ladder by default")
	}
	if reg.isLadder(nil, w.Catalog().State("STONE"), w, world.Vec3i{}) {
		t.Fatalf("stone is not a ladder")
	}
}

func TestRegistries_RoadAnyMatch(t *testing.T) {
	w := testWorld()
	reg := NewRegistries()

	if !reg.isRoad(nil, w.Catalog().State("DIRT_PATH")) {
		t.Fatalf("dirt path should be a road by default")
	}
	if reg.isRoad(nil, w.Catalog().State("STONE")) {
		t.Fatalf("stone is not a road")
	}

	reg.RegisterRoad(func(e *world.Entity, below world.BlockState) bool { return false })
	reg.RegisterRoad(func(e *world.Entity, below world.BlockState) bool {
		return below.Kind() == world.KindSolid
	})
	if !reg.isRoad(nil, w.Catalog().State("STONE")) {
		t.Fatalf("any matching callback should make stone a road")
	}
}

func TestRegistries_WalkableSurfaceOverride(t *testing.T) {
	w := testWorld()
	fill(w, world.Vec3i{X: 0, Y: 0, Z: 0}, world.Vec3i{X: 9, Y: 0, Z: 0}, "STONE")

	reg := NewRegistries()
	reg.RegisterWalkableSurface(func(o PathingOptions, e *world.Entity, state world.BlockState, pos world.Vec3i) (SurfaceType, bool) {
		if state.Kind() == world.KindSolid {
			return NotPassable, true
		}
		return Walkable, false
	})

	start := world.Vec3i{X: 0, Y: 1, Z: 0}
	job, err := NewJob(w, start, world.Vec3i{X: 9, Y: 1, Z: 0}, 16, testEntity(start), JobConfig{
		Options:    DefaultOptions(),
		Registries: reg,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	path := job.Search(context.Background())
	if path == nil || path.ReachesDestination {
		t.Fatalf("override should have made the whole floor unwalkable: %v", path)
	}
}

func TestJob_StartAdjustedOutOfWater(t *testing.T) {
	w := testWorld()
	plate(w, 0, 4, 0, 0)
	fill(w, world.Vec3i{X: 0, Y: 1, Z: 0}, world.Vec3i{X: 0, Y: 4, Z: 0}, "WATER")

	start := world.Vec3i{X: 0, Y: 1, Z: 0}
	job, err := NewJob(w, start, world.Vec3i{X: 4, Y: 1, Z: 0}, 16, testEntity(start), JobConfig{Options: SwimmingOptions()})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if job.Start() != (world.Vec3i{X: 0, Y: 5, Z: 0}) {
		t.Fatalf("start %v not lifted to the water surface", job.Start())
	}
}

func TestJob_StartAdjustedOutOfFence(t *testing.T) {
	w := testWorld()
	plate(w, -2, 2, -2, 2)
	w.SetBlockID(world.Vec3i{X: 0, Y: 1, Z: 0}, "FENCE")

	start := world.Vec3i{X: 0, Y: 1, Z: 0}
	job, err := NewJob(w, start, world.Vec3i{X: 2, Y: 1, Z: 0}, 16, testEntity(start), JobConfig{Options: DefaultOptions()})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if job.Start() != (world.Vec3i{X: 0, Y: 1, Z: -1}) {
		t.Fatalf("start %v not shifted out of the fence space", job.Start())
	}
}

func TestJob_StartAdjusterCallbackWins(t *testing.T) {
	w := testWorld()
	plate(w, 0, 4, 0, 0)

	reg := NewRegistries()
	want := world.Vec3i{X: 2, Y: 1, Z: 0}
	reg.RegisterStartPosition(func(e *world.Entity, r world.Reader) (world.Vec3i, bool) {
		return want, true
	})

	start := world.Vec3i{X: 0, Y: 1, Z: 0}
	job, err := NewJob(w, start, world.Vec3i{X: 4, Y: 1, Z: 0}, 16, testEntity(start), JobConfig{
		Options:    DefaultOptions(),
		Registries: reg,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if job.Start() != want {
		t.Fatalf("start %v want %v", job.Start(), want)
	}
}
