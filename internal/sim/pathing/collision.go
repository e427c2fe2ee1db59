package pathing

import (
	"math"

	"voxelpath.ai/internal/sim/world"
)

// canFit answers whether the entity's body fits at the given center point,
// allowing a step up or down of at most one block. It mirrors how the
// executor resolves partial blocks (snow, slabs, carpet) so the planner never
// emits a waypoint the agent cannot occupy.
func canFit(reg *Registries, e *world.Entity, center, facing world.Vec3f, r world.Reader) bool {
	entityBox, ok := reg.produceBoundingBox(e, center, facing, r)
	if !ok {
		horizontal := e.Width / 2
		if e.Width <= 0.75 {
			horizontal = 0.75 - e.Width/2
		}
		entityBox = world.BoxWithSizeAt(horizontal, 0.1, horizontal, world.Vec3f{
			X: center.X,
			Y: center.Y + (e.EyeHeight - e.Height/2),
			Z: center.Z,
		})
	}

	if hasNoCollisions(reg, e, r, entityBox) {
		return true
	}

	// A partial block may fill the bottom of the space; measure how far the
	// highest blocking shape reaches into the 1-block slice at the box floor.
	bottomBox := world.AABB{
		MinX: entityBox.MinX, MinY: entityBox.MinY, MinZ: entityBox.MinZ,
		MaxX: entityBox.MaxX, MaxY: entityBox.MinY + 1, MaxZ: entityBox.MaxZ,
	}
	maxHeightOfBottom := maxShapeTop(reg, e, r, bottomBox, 0)
	if maxHeightOfBottom >= 1-fract(bottomBox.MinY) {
		return false
	}

	if maxHeightOfBottom != 0 {
		standingBox := entityBox.Offset(0, maxHeightOfBottom, 0)
		if hasNoCollisions(reg, e, r, standingBox) {
			return true
		}
	}

	// Step down: the floor below may be a partial block too.
	belowBox := bottomBox.Offset(0, -1, 0)
	maxBlockHeightBelow := maxShapeTop(reg, e, r, belowBox, 1)

	toShift := 1 - maxBlockHeightBelow
	if toShift < 0.0001 {
		return false
	}
	shiftedBox := entityBox.Offset(0, -toShift, 0)
	return hasNoCollisions(reg, e, r, shiftedBox)
}

// hasNoCollisions reports whether no impassable block shape intersects the
// box.
func hasNoCollisions(reg *Registries, e *world.Entity, r world.Reader, box world.AABB) bool {
	clear := true
	forEachImpassableShape(reg, e, r, box, func(shape world.AABB) bool {
		if shape.Intersects(box) {
			clear = false
			return false
		}
		return true
	})
	return clear
}

// maxShapeTop is the greatest shape-top height above box.MinY among
// impassable shapes in the box slice, or def when there are none.
func maxShapeTop(reg *Registries, e *world.Entity, r world.Reader, box world.AABB, def float64) float64 {
	best := math.Inf(-1)
	found := false
	forEachImpassableShape(reg, e, r, box, func(shape world.AABB) bool {
		if top := shape.MaxY - box.MinY; top > best {
			best = top
			found = true
		}
		return true
	})
	if !found {
		return def
	}
	return best
}

// forEachImpassableShape visits the collision shape of every block whose cell
// intersects the box and which the passable registry does not exempt. Empty
// shapes are skipped. The visitor returns false to stop early.
func forEachImpassableShape(reg *Registries, e *world.Entity, r world.Reader, box world.AABB, fn func(world.AABB) bool) {
	minX, maxX := floorInt(box.MinX), ceilInt(box.MaxX)-1
	minY, maxY := floorInt(box.MinY), ceilInt(box.MaxY)-1
	minZ, maxZ := floorInt(box.MinZ), ceilInt(box.MaxZ)-1
	for y := minY; y <= maxY; y++ {
		for z := minZ; z <= maxZ; z++ {
			for x := minX; x <= maxX; x++ {
				pos := world.Vec3i{X: x, Y: y, Z: z}
				state := r.BlockState(pos)
				if passable, ok := reg.isPassable(e, state); ok && passable {
					continue
				}
				shape := state.CollisionShape(pos)
				if shape.IsEmpty() {
					continue
				}
				if !fn(shape) {
					return
				}
			}
		}
	}
}

func floorInt(v float64) int { return int(math.Floor(v)) }

func ceilInt(v float64) int { return int(math.Ceil(v)) }

func fract(v float64) float64 { return v - math.Floor(v) }
