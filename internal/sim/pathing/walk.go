package pathing

import "voxelpath.ai/internal/sim/world"

var (
	vecUp    = world.Vec3i{Y: 1}
	vecDown  = world.Vec3i{Y: -1}
	vecNorth = world.Vec3i{Z: -1}
	vecEast  = world.Vec3i{X: 1}
	vecSouth = world.Vec3i{Z: 1}
	vecWest  = world.Vec3i{X: -1}
)

// walkCurrentNode expands a node into its candidate successors. The incoming
// direction prunes reversals: a step never turns 180 degrees, only 90.
func (j *Job) walkCurrentNode(current *Node) {
	dPos := world.Vec3i{}
	if current.parent != nil {
		dPos = current.Pos.Sub(current.parent.Pos)
	}

	// On a ladder, straight up is a move.
	if onLadderGoingUp(current, dPos) && j.options.CanUseLadders {
		j.walk(current, vecUp)
	}

	// And down one, when the lower block is a ladder.
	if j.onLadderGoingDown(current, dPos) && j.options.CanUseLadders {
		j.walk(current, vecDown)
	}

	// A corner node over a drop only explores downwards.
	if (current.parent == nil || current.parent.Pos != current.Pos.Down()) && current.cornerNode {
		j.walk(current, vecDown)
		return
	}

	// Walk downwards when the cell below is passable.
	if !j.isNotPassable(current.Pos, current.Pos.Down()) {
		j.walk(current, vecDown)
	}

	if dPos.Z <= 0 {
		j.walk(current, vecNorth)
	}
	if dPos.X >= 0 {
		j.walk(current, vecEast)
	}
	if dPos.Z >= 0 {
		j.walk(current, vecSouth)
	}
	if dPos.X <= 0 {
		j.walk(current, vecWest)
	}
}

func onLadderGoingUp(current *Node, dPos world.Vec3i) bool {
	return current.ladder && (dPos.Y >= 0 || dPos.X != 0 || dPos.Z != 0)
}

func (j *Job) onLadderGoingDown(current *Node, dPos world.Vec3i) bool {
	return (dPos.Y <= 0 || dPos.X != 0 || dPos.Z != 0) && j.isLadder(current.Pos.Down())
}

// walk attempts one step from parent in the direction dPos, fixing up the
// target Y for jumps, drops, ladders and swims, and upserts the reached node.
func (j *Job) walk(parent *Node, dPos world.Vec3i) {
	pos := parent.Pos.Add(dPos)

	newY := j.groundHeight(parent, pos)
	if newY < 0 {
		return
	}

	corner := false
	if pos.Y != newY {
		switch {
		// Going up: take the node directly above first.
		case !parent.cornerNode && newY-pos.Y > 0 &&
			(parent.parent == nil || parent.parent.Pos != parent.Pos.Add(world.Vec3i{Y: newY - pos.Y})):
			dPos = world.Vec3i{Y: newY - pos.Y}
			pos = parent.Pos.Add(dPos)
			corner = true

		// Going down with horizontal motion: take the air corner before the
		// lower node; the drop itself is the next step.
		case !parent.cornerNode && newY-pos.Y < 0 && (dPos.X != 0 || dPos.Z != 0) &&
			(parent.parent == nil || parent.Pos.Down() != parent.parent.Pos):
			dPos = world.Vec3i{X: dPos.X, Z: dPos.Z}
			pos = parent.Pos.Add(dPos)
			corner = true

		default:
			dPos = dPos.Add(world.Vec3i{Y: newY - pos.Y})
			pos = world.Vec3i{X: pos.X, Y: newY, Z: pos.Z}
		}
	}

	nodeKey := packNodeKey(pos)
	node := j.visited[nodeKey]
	if node != nil && node.closed {
		// Closed means already expanded from.
		return
	}

	swimming := j.calculateSwimming(pos, node)
	if swimming && !j.options.CanSwim {
		j.calc.onInvalidNode(pos, ReasonSwimmingNode)
		return
	}

	swimStart := swimming && !parent.swimming
	onLadder := j.isLadder(pos)
	onRoad := j.registries.isRoad(j.entity, j.snapshot.BlockState(pos.Down()))
	railPos := pos
	if corner {
		railPos = pos.Down()
	}
	onRails := j.options.CanUseRails && j.snapshot.BlockState(railPos).IsRail()
	railsExit := !onRails && parent.onRails

	// Cost may have changed due to a jump up or drop.
	stepCost := j.computeCost(dPos, swimming, onLadder, onRoad, onRails, railsExit, swimStart, pos)
	heuristic := j.goal.Heuristic(pos)
	cost := parent.cost + stepCost
	score := cost + heuristic

	if node == nil {
		node = j.createNode(parent, pos, nodeKey, swimming, heuristic, cost, score)
		node.onRails = onRails
		node.cornerNode = corner
	} else if !j.updateNode(parent, node, heuristic, cost, score) {
		return
	}

	j.offerNode(parent, node)

	// Jump-point-search-ish optimization: while the step improved the
	// heuristic, keep walking the same direction.
	if j.allowJumpPointSearch && node.heuristic <= parent.heuristic {
		j.walk(node, dPos)
	}
}

func (j *Job) createNode(parent *Node, pos world.Vec3i, key uint32, swimming bool, heuristic, cost, score float64) *Node {
	node := newNode(parent, pos, cost, heuristic, score)
	j.visited[key] = node

	if j.isLadder(pos) {
		node.ladder = true
	} else if swimming {
		node.swimming = true
	}

	j.totalNodesAdded++
	node.counterAdded = j.totalNodesAdded
	return node
}

// updateNode rewires an open node onto a cheaper parent. Reports whether the
// node should be re-offered to the open set.
func (j *Job) updateNode(parent *Node, node *Node, heuristic, cost, score float64) bool {
	if score >= node.score {
		return false
	}
	if !j.open.Remove(node) {
		return false
	}
	node.parent = parent
	node.steps = parent.steps + 1
	node.cost = cost
	node.heuristic = heuristic
	node.score = score
	return true
}

func (j *Job) offerNode(source, node *Node) {
	j.open.Push(node)
	j.calc.onNodeWalked(source.Pos, node.Pos)
}

func (j *Job) calculateSwimming(pos world.Vec3i, node *Node) bool {
	if node != nil {
		return node.swimming
	}
	return isWater(j.snapshot, pos.Down())
}

// groundHeight resolves the Y at which the entity can stand in the target
// column, or -1 when the step is impossible.
func (j *Job) groundHeight(parent *Node, pos world.Vec3i) int {
	facing := pos.Sub(parent.Pos).ToVec3f()

	if !canFit(j.registries, j.entity, pos.Center(), facing, j.snapshot) {
		return j.handleTargetNotPassable(parent, pos)
	}

	// Something to stand on in the target space?
	below := j.snapshot.BlockState(pos.Down())
	switch j.isWalkableSurface(below, pos) {
	case Walkable:
		return pos.Y
	case NotPassable:
		return -1
	}

	return j.handleNotStanding(parent, pos, below)
}

func (j *Job) handleNotStanding(parent *Node, pos world.Vec3i, below world.BlockState) int {
	swimming := parent != nil && parent.swimming

	if below.Material().IsLiquid() {
		return j.handleInLiquid(pos, below, swimming)
	}

	if j.isLadder(pos.Down()) {
		return pos.Y
	}

	return j.checkDrop(parent, pos, swimming)
}

func (j *Job) checkDrop(parent *Node, pos world.Vec3i, swimming bool) int {
	canDrop := parent != nil && !parent.ladder

	// No horizontal drop while the parent itself hangs over a dropable cell;
	// the descent has to happen as its own vertical step from the corner.
	if !canDrop || swimming ||
		((parent.Pos.X != pos.X || parent.Pos.Z != pos.Z) &&
			!j.isNotPassable(parent.Pos, parent.Pos.Down()) &&
			j.isWalkableSurface(j.snapshot.BlockState(parent.Pos.Down()), parent.Pos.Down()) == Dropable) {
		return -1
	}

	for i := 2; i <= maxDropDepth; i++ {
		below := j.snapshot.BlockState(pos.DownN(i))
		// The drop bound is measured from the parent's own cell so that a
		// corner pre-move does not shorten the allowed fall.
		landing := pos.Y - i + 1
		if j.isWalkableSurface(below, pos) == Walkable && parent.Pos.Y-landing <= dropAcceptLimit || below.Material().IsLiquid() {
			return landing
		}
		if below.Material() != world.MaterialAir {
			return -1
		}
	}

	return -1
}

func (j *Job) handleInLiquid(pos world.Vec3i, below world.BlockState, swimming bool) int {
	if swimming {
		// Already swimming in something.
		return pos.Y
	}

	if j.options.CanSwim && below.Material() == world.MaterialWater {
		return pos.Y
	}

	// Not allowed to swim, or this is not water.
	return -1
}

func (j *Job) handleTargetNotPassable(parent *Node, pos world.Vec3i) int {
	canJump := parent != nil && !parent.ladder && !parent.swimming
	if !canJump {
		return -1
	}

	// Jump room above the origin space, then above the target.
	if j.isNotPassable(parent.Pos, parent.Pos.Up()) {
		return -1
	}
	if j.isNotPassable(parent.Pos.Up(), pos.Up()) {
		return -1
	}
	return pos.Y + 1
}
