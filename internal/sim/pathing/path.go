package pathing

import (
	"fmt"

	"voxelpath.ai/internal/sim/world"
)

// Waypoint is one grid step of a finished path, annotated with the modality
// hints the movement executor needs.
type Waypoint struct {
	Pos world.Vec3i

	OnLadder     bool
	LadderFacing world.Direction

	OnRails    bool
	RailsEntry bool
	RailsExit  bool

	Swimming bool

	// Prev links back to the preceding waypoint; the first has none.
	Prev *Waypoint
}

// Path is the ordered waypoint list handed back to the caller, start side
// first. The start cell itself is not a waypoint.
type Path struct {
	Waypoints          []*Waypoint
	Target             world.Vec3i
	ReachesDestination bool
}

func (p *Path) Len() int { return len(p.Waypoints) }

// finalizePath walks the parent chain from the target node and emits the
// waypoint array in forward order.
func (j *Job) finalizePath(targetNode *Node) *Path {
	if targetNode == nil {
		panic("pathing: finalizePath called with nil target node")
	}

	// Count first so the array can be allocated up front; steps is not
	// trusted because rewiring may have fudged it.
	pathLength := 0
	railsLength := 0
	for node := targetNode; node.parent != nil; node = node.parent {
		pathLength++
		if node.onRails {
			railsLength++
		}
	}

	points := make([]*Waypoint, pathLength)

	var nextInPath *Node
	var next *Waypoint
	for node := targetNode; node.parent != nil; node = node.parent {
		pathLength--

		pos := node.Pos
		if node.swimming && j.options.LowerSwimWaypoints {
			// Keeps the executor from spinning in place at swim nodes.
			pos = pos.Add(vecDown)
		}

		p := &Waypoint{Pos: pos, Swimming: node.swimming}

		if railsLength >= j.minRailsToPath {
			p.OnRails = node.onRails
			if p.OnRails && (!node.parent.onRails || node.parent.parent == nil) {
				p.RailsEntry = true
			} else if p.OnRails && len(points) > pathLength+1 {
				if successor := points[pathLength+1]; !successor.OnRails {
					successor.RailsExit = true
				}
			}
		}

		// Climbing a ladder?
		if onALadder(node, nextInPath, pos) {
			p.OnLadder = true
			if nextInPath.Pos.Y > pos.Y {
				// Facing only matters going up.
				p.LadderFacing = j.ladderFacing(pos)
			}
		} else if onALadder(node.parent, node.parent, pos) {
			p.OnLadder = true
		}

		if next != nil {
			next.Prev = p
		}
		next = p
		points[pathLength] = p

		nextInPath = node
	}

	return &Path{
		Waypoints:          points,
		Target:             targetNode.Pos,
		ReachesDestination: j.goal.IsAtDestination(targetNode),
	}
}

func onALadder(node, nextInPath *Node, pos world.Vec3i) bool {
	return node != nil && nextInPath != nil && node.ladder &&
		nextInPath.Pos.X == pos.X && nextInPath.Pos.Z == pos.Z
}

// ladderFacing derives the climb direction from the block: vines face away
// from their attachment side, ladders carry an explicit facing, scaffolding
// climbs straight up.
func (j *Job) ladderFacing(pos world.Vec3i) world.Direction {
	state := j.snapshot.BlockState(pos)
	switch state.Kind() {
	case world.KindVine:
		switch {
		case state.VineSide(world.VineSouth):
			return world.DirNorth
		case state.VineSide(world.VineWest):
			return world.DirEast
		case state.VineSide(world.VineNorth):
			return world.DirSouth
		case state.VineSide(world.VineEast):
			return world.DirWest
		}
		return world.DirUp
	case world.KindLadder:
		return state.Facing
	default:
		return world.DirUp
	}
}

func (p *Path) String() string {
	if p == nil {
		return "<nil path>"
	}
	return fmt.Sprintf("path(len=%d reaches=%v target=%v)", len(p.Waypoints), p.ReachesDestination, p.Target)
}
