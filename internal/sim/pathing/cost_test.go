package pathing

import (
	"math"
	"testing"

	"voxelpath.ai/internal/sim/world"
)

func costJob(t *testing.T, w *world.World) *Job {
	t.Helper()
	start := world.Vec3i{X: 0, Y: 1, Z: 0}
	return newTestJob(t, w, start, world.Vec3i{X: 9, Y: 1, Z: 0}, 16, DefaultOptions())
}

func TestComputeCost_PlainStep(t *testing.T) {
	w := testWorld()
	plate(w, 0, 9, 0, 0)
	j := costJob(t, w)

	got := j.computeCost(world.Vec3i{X: 1}, false, false, false, false, false, false, world.Vec3i{X: 1, Y: 1, Z: 0})
	if got != 1 {
		t.Fatalf("plain step cost %v", got)
	}
}

func TestComputeCost_JumpTaxed(t *testing.T) {
	w := testWorld()
	plate(w, 0, 9, 0, 0)
	j := costJob(t, w)

	dPos := world.Vec3i{X: 1, Y: 1}
	got := j.computeCost(dPos, false, false, false, false, false, false, world.Vec3i{X: 1, Y: 2, Z: 0})
	want := dPos.Length() * j.options.JumpDropCost
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("jump cost %v want %v", got, want)
	}
}

func TestComputeCost_StairsNotTaxed(t *testing.T) {
	w := testWorld()
	plate(w, 0, 9, 0, 0)
	w.SetBlockID(world.Vec3i{X: 1, Y: 2, Z: 0}, "STONE_STAIRS")
	j := costJob(t, w)

	dPos := world.Vec3i{X: 1, Y: 1}
	got := j.computeCost(dPos, false, false, false, false, false, false, world.Vec3i{X: 1, Y: 2, Z: 0})
	if math.Abs(got-dPos.Length()) > 1e-9 {
		t.Fatalf("stairs step taxed: %v", got)
	}
}

func TestComputeCost_SwimEnterVersusSwim(t *testing.T) {
	w := testWorld()
	plate(w, 0, 9, 0, 0)
	j := costJob(t, w)

	enter := j.computeCost(world.Vec3i{X: 1}, true, false, false, false, false, true, world.Vec3i{X: 1, Y: 1, Z: 0})
	cruise := j.computeCost(world.Vec3i{X: 1}, true, false, false, false, false, false, world.Vec3i{X: 1, Y: 1, Z: 0})
	if enter != j.options.SwimCostEnter || cruise != j.options.SwimCost {
		t.Fatalf("swim costs enter=%v cruise=%v", enter, cruise)
	}
}

func TestComputeCost_ToggleableAndRoad(t *testing.T) {
	w := testWorld()
	plate(w, 0, 9, 0, 0)
	w.SetBlockID(world.Vec3i{X: 2, Y: 1, Z: 0}, "FENCE_GATE")
	j := costJob(t, w)

	gate := j.computeCost(world.Vec3i{X: 1}, false, false, false, false, false, false, world.Vec3i{X: 2, Y: 1, Z: 0})
	if gate != j.options.TraverseToggleAbleCost {
		t.Fatalf("gate cost %v", gate)
	}

	road := j.computeCost(world.Vec3i{X: 1}, false, false, true, false, false, false, world.Vec3i{X: 1, Y: 1, Z: 0})
	if road != j.options.OnPathCost {
		t.Fatalf("road cost %v", road)
	}
}
