package pathing

import (
	"context"
	"log"
	"math"
)

// Call runs the search, converting any panic into a nil path so a broken job
// cannot take down its worker.
func (j *Job) Call(ctx context.Context) (path *Path) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pathing: job %s panicked: %v", j.ID, r)
			path = nil
		}
	}()
	return j.Search(ctx)
}

// Search runs the A* loop to completion, cancellation, or budget exhaustion.
// Cancellation returns nil without finalizing; budget exhaustion finalizes
// the best-effort node.
func (j *Job) Search(ctx context.Context) *Path {
	bestNode := j.setupStartNode()
	bestNodeResultScore := math.MaxFloat64

	for j.open.Len() > 0 {
		if ctx.Err() != nil {
			return nil
		}

		currentNode := j.open.Pop()

		j.totalNodesVisited++
		if j.totalNodesVisited > j.maxNodes || j.totalNodesVisited > j.maxRange*j.maxRange {
			break
		}
		currentNode.counterVisited = j.totalNodesVisited

		currentNode.closed = true
		j.calc.onNodeConsumed(currentNode.Pos)

		positionOK := !j.xzRestricted ||
			(currentNode.Pos.X >= j.minX && currentNode.Pos.X <= j.maxX &&
				currentNode.Pos.Z >= j.minZ && currentNode.Pos.Z <= j.maxZ)

		// Destinations outside a restricted area do not count.
		if positionOK && j.goal.IsAtDestination(currentNode) {
			bestNode = currentNode
			break
		}

		// Track the node closest to the destination as the best-effort result.
		if nodeResultScore := j.goal.NodeResultScore(currentNode); positionOK &&
			nodeResultScore < bestNodeResultScore && !currentNode.cornerNode &&
			j.isWalkableSurface(j.snapshot.BlockState(currentNode.Pos.Down()), currentNode.Pos.Down()) == Walkable {
			bestNode = currentNode
			bestNodeResultScore = nodeResultScore
		}

		// Under a soft restriction the search may wander outside the area to
		// find a way back in.
		if !j.hardXZRestricted || positionOK {
			j.walkCurrentNode(currentNode)
		}
	}

	path := j.finalizePath(bestNode)

	j.calc.onPathCompleted(path)
	if j.onCompleted != nil {
		j.onCompleted(j.calc)
	}
	return path
}

func (j *Job) setupStartNode() *Node {
	startNode := newStartNode(j.start, j.goal.Heuristic(j.start))

	if j.isLadder(j.start) {
		startNode.ladder = true
	} else if j.snapshot.BlockState(j.start.Down()).Material().IsLiquid() {
		startNode.swimming = true
	}

	startNode.onRails = j.options.CanUseRails && j.snapshot.BlockState(j.start).IsRail()

	j.offerNode(startNode, startNode)
	j.visited[packNodeKey(j.start)] = startNode

	j.totalNodesAdded++
	startNode.counterAdded = j.totalNodesAdded

	return startNode
}

// TotalNodesVisited is the number of nodes consumed by the finished search.
func (j *Job) TotalNodesVisited() int { return j.totalNodesVisited }

// TotalNodesAdded is the number of nodes ever inserted by the finished search.
func (j *Job) TotalNodesAdded() int { return j.totalNodesAdded }
