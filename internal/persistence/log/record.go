package log

import (
	"sort"
	"time"

	"voxelpath.ai/internal/sim/pathing"
	"voxelpath.ai/internal/sim/world"
)

// CalculationRecord is the flattened, serializable form of one search's
// calculation data, one JSON line per finished job.
type CalculationRecord struct {
	JobID      string `json:"job_id"`
	RecordedAt string `json:"recorded_at"`

	Start  [3]int `json:"start"`
	Target [3]int `json:"target"`

	Reaches      bool `json:"reaches"`
	PathLen      int  `json:"path_len"`
	NodesVisited int  `json:"nodes_visited"`
	NodesAdded   int  `json:"nodes_added"`

	DurationMS float64 `json:"duration_ms"`

	Waypoints []WaypointRecord `json:"waypoints,omitempty"`
	Consumed  [][3]int         `json:"consumed,omitempty"`
	Invalid   []InvalidRecord  `json:"invalid,omitempty"`
}

type WaypointRecord struct {
	Pos          [3]int `json:"pos"`
	OnLadder     bool   `json:"on_ladder,omitempty"`
	LadderFacing string `json:"ladder_facing,omitempty"`
	OnRails      bool   `json:"on_rails,omitempty"`
	RailsEntry   bool   `json:"rails_entry,omitempty"`
	RailsExit    bool   `json:"rails_exit,omitempty"`
	Swimming     bool   `json:"swimming,omitempty"`
}

type InvalidRecord struct {
	Pos    [3]int `json:"pos"`
	Reason string `json:"reason"`
}

// NewCalculationRecord flattens a finished job and its calculation data.
func NewCalculationRecord(job *pathing.Job, data *pathing.CalculationData, duration time.Duration) CalculationRecord {
	rec := CalculationRecord{
		JobID:        job.ID.String(),
		RecordedAt:   time.Now().UTC().Format(time.RFC3339),
		Start:        job.Start().ToArray(),
		Reaches:      data.ReachesDestination(),
		NodesVisited: job.TotalNodesVisited(),
		NodesAdded:   job.TotalNodesAdded(),
		DurationMS:   float64(duration.Microseconds()) / 1000,
	}

	if p := data.Path(); p != nil {
		rec.Target = p.Target.ToArray()
		rec.PathLen = p.Len()
		rec.Waypoints = make([]WaypointRecord, 0, p.Len())
		for _, wp := range p.Waypoints {
			wr := WaypointRecord{
				Pos:        wp.Pos.ToArray(),
				OnLadder:   wp.OnLadder,
				OnRails:    wp.OnRails,
				RailsEntry: wp.RailsEntry,
				RailsExit:  wp.RailsExit,
				Swimming:   wp.Swimming,
			}
			if wp.OnLadder && wp.LadderFacing != world.DirNone {
				wr.LadderFacing = wp.LadderFacing.String()
			}
			rec.Waypoints = append(rec.Waypoints, wr)
		}
	}

	rec.Consumed = sortedPositions(data.ConsumedNodes())
	for pos, reason := range data.InvalidNodes() {
		rec.Invalid = append(rec.Invalid, InvalidRecord{Pos: pos.ToArray(), Reason: string(reason)})
	}
	sort.Slice(rec.Invalid, func(i, k int) bool { return lessArray(rec.Invalid[i].Pos, rec.Invalid[k].Pos) })

	return rec
}

func sortedPositions(in []world.Vec3i) [][3]int {
	out := make([][3]int, 0, len(in))
	for _, p := range in {
		out = append(out, p.ToArray())
	}
	sort.Slice(out, func(i, k int) bool { return lessArray(out[i], out[k]) })
	return out
}

func lessArray(a, b [3]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}
