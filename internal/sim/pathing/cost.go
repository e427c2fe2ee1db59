package pathing

import "voxelpath.ai/internal/sim/world"

// computeCost is the immediate g-delta of moving from the parent space along
// dPos. Base cost is the euclidean step length; modality multipliers stack on
// top of it.
func (j *Job) computeCost(
	dPos world.Vec3i,
	swimming, onLadder, onRoad, onRails, railsExit, swimStart bool,
	pos world.Vec3i,
) float64 {
	cost := dPos.Length()

	if dPos.Y != 0 && (dPos.X != 0 || dPos.Z != 0) &&
		!(abs(dPos.Y) <= 1 && j.snapshot.BlockState(pos).IsStairs()) {
		// Tax jumping and dropping; stairs are a plain step.
		cost *= j.options.JumpDropCost * float64(abs(dPos.Y))
	}

	if j.snapshot.BlockState(pos).HasOpenProperty() {
		cost *= j.options.TraverseToggleAbleCost
	}

	if onRoad {
		cost *= j.options.OnPathCost
	}

	if onRails {
		cost *= j.options.OnRailCost
	}

	if railsExit {
		cost *= j.options.RailsExitCost
	}

	if onLadder {
		cost *= j.options.OnLadderCost
	}

	if swimming {
		if swimStart {
			cost *= j.options.SwimCostEnter
		} else {
			cost *= j.options.SwimCost
		}
	}

	return cost
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
