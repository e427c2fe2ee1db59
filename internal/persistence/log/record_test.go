package log

import (
	"context"
	"testing"
	"time"

	"voxelpath.ai/internal/sim/pathing"
	"voxelpath.ai/internal/sim/world"
)

func TestNewCalculationRecord_FromJob(t *testing.T) {
	w := world.New(world.WorldConfig{}, world.DefaultBlockCatalog())
	for x := 0; x <= 9; x++ {
		w.SetBlockID(world.Vec3i{X: x, Y: 0, Z: 0}, "STONE")
	}

	start := world.Vec3i{X: 0, Y: 1, Z: 0}
	end := world.Vec3i{X: 9, Y: 1, Z: 0}
	e := &world.Entity{Width: 0.6, Height: 1.8, EyeHeight: 0.9, Pos: start.Center()}

	job, err := pathing.NewJob(w, start, end, 16, e, pathing.JobConfig{Options: pathing.DefaultOptions()})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	path := job.Search(context.Background())
	if path == nil || !path.ReachesDestination {
		t.Fatalf("search failed: %v", path)
	}

	rec := NewCalculationRecord(job, job.CalculationData(), 3*time.Millisecond)

	if rec.JobID == "" || rec.RecordedAt == "" {
		t.Fatalf("identity fields empty: %+v", rec)
	}
	if rec.Start != start.ToArray() || rec.Target != end.ToArray() {
		t.Fatalf("geometry fields wrong: %+v", rec)
	}
	if !rec.Reaches || rec.PathLen != 9 || len(rec.Waypoints) != 9 {
		t.Fatalf("path fields wrong: %+v", rec)
	}
	if rec.NodesVisited == 0 || len(rec.Consumed) == 0 {
		t.Fatalf("diagnostics missing: %+v", rec)
	}
	if rec.DurationMS != 3 {
		t.Fatalf("duration %v", rec.DurationMS)
	}
	for i := 1; i < len(rec.Consumed); i++ {
		if !lessArray(rec.Consumed[i-1], rec.Consumed[i]) {
			t.Fatalf("consumed not sorted at %d", i)
		}
	}
}
