package pathing

import (
	"testing"

	"voxelpath.ai/internal/sim/world"
)

func TestSearch_RailsAnnotations(t *testing.T) {
	w := testWorld()
	plate(w, 0, 9, 0, 0)
	fill(w, world.Vec3i{X: 0, Y: 1, Z: 0}, world.Vec3i{X: 6, Y: 1, Z: 0}, "RAIL")

	path, _ := runJob(t, w, world.Vec3i{X: 0, Y: 1, Z: 0}, world.Vec3i{X: 9, Y: 1, Z: 0}, 16, RidingOptions())

	if !path.ReachesDestination {
		t.Fatalf("rail corridor not reached: %v", waypointPositions(path))
	}

	var entry, exit *Waypoint
	for _, wp := range path.Waypoints {
		if wp.RailsEntry {
			if entry != nil {
				t.Fatalf("second rails entry at %v", wp.Pos)
			}
			entry = wp
		}
		if wp.RailsExit {
			if exit != nil {
				t.Fatalf("second rails exit at %v", wp.Pos)
			}
			exit = wp
		}
		if wp.Pos.X >= 1 && wp.Pos.X <= 6 && !wp.OnRails {
			t.Fatalf("waypoint %v on the rail run not marked", wp.Pos)
		}
	}
	if entry == nil || entry.Pos != (world.Vec3i{X: 1, Y: 1, Z: 0}) {
		t.Fatalf("rails entry %+v want (1,1,0)", entry)
	}
	if exit == nil || exit.Pos != (world.Vec3i{X: 7, Y: 1, Z: 0}) {
		t.Fatalf("rails exit %+v want (7,1,0)", exit)
	}
}

func TestSearch_ShortRailsRunNotAnnotated(t *testing.T) {
	w := testWorld()
	plate(w, 0, 9, 0, 0)
	fill(w, world.Vec3i{X: 2, Y: 1, Z: 0}, world.Vec3i{X: 3, Y: 1, Z: 0}, "RAIL")

	path, _ := runJob(t, w, world.Vec3i{X: 0, Y: 1, Z: 0}, world.Vec3i{X: 9, Y: 1, Z: 0}, 16, RidingOptions())

	if !path.ReachesDestination {
		t.Fatalf("corridor not reached")
	}
	for _, wp := range path.Waypoints {
		if wp.OnRails || wp.RailsEntry || wp.RailsExit {
			t.Fatalf("short rail run should not be annotated: %+v", wp)
		}
	}
}
