package pathing

import "voxelpath.ai/internal/sim/world"

// Callback chains let hosts override block classification per entity or per
// block without touching the planner. Chains run in insertion order and the
// first callback with an answer wins; when none answer, the planner's
// built-in fallback applies. The road chain is the exception: any callback
// saying "road" makes it a road.
//
// A Registries value is handed to each job explicitly. Build it once during
// startup and treat it as immutable while searches run.

type LadderCallback func(e *world.Entity, state world.BlockState, r world.Reader, pos world.Vec3i) (bool, bool)

type RoadCallback func(e *world.Entity, below world.BlockState) bool

type PassableCallback func(e *world.Entity, state world.BlockState) (bool, bool)

type WalkableSurfaceCallback func(o PathingOptions, e *world.Entity, state world.BlockState, pos world.Vec3i) (SurfaceType, bool)

type BoundingBoxCallback func(e *world.Entity, center world.Vec3f, facing world.Vec3f, r world.Reader) (world.AABB, bool)

type StartPositionCallback func(e *world.Entity, r world.Reader) (world.Vec3i, bool)

type Registries struct {
	ladder          []LadderCallback
	road            []RoadCallback
	passable        []PassableCallback
	walkableSurface []WalkableSurfaceCallback
	boundingBox     []BoundingBoxCallback
	startPosition   []StartPositionCallback
}

func NewRegistries() *Registries { return &Registries{} }

func (r *Registries) RegisterLadder(cb LadderCallback) *Registries {
	r.ladder = append(r.ladder, cb)
	return r
}

func (r *Registries) RegisterRoad(cb RoadCallback) *Registries {
	r.road = append(r.road, cb)
	return r
}

func (r *Registries) RegisterPassable(cb PassableCallback) *Registries {
	r.passable = append(r.passable, cb)
	return r
}

func (r *Registries) RegisterWalkableSurface(cb WalkableSurfaceCallback) *Registries {
	r.walkableSurface = append(r.walkableSurface, cb)
	return r
}

func (r *Registries) RegisterBoundingBox(cb BoundingBoxCallback) *Registries {
	r.boundingBox = append(r.boundingBox, cb)
	return r
}

func (r *Registries) RegisterStartPosition(cb StartPositionCallback) *Registries {
	r.startPosition = append(r.startPosition, cb)
	return r
}

// isLadder runs the ladder chain; the fallback is the block's own climbable
// flag.
func (r *Registries) isLadder(e *world.Entity, state world.BlockState, reader world.Reader, pos world.Vec3i) bool {
	for _, cb := range r.ladder {
		if v, ok := cb(e, state, reader, pos); ok {
			return v
		}
	}
	return state.IsClimbable()
}

// isRoad is an any-match chain: one positive answer suffices. The block's
// catalog road flag is the built-in answer.
func (r *Registries) isRoad(e *world.Entity, below world.BlockState) bool {
	for _, cb := range r.road {
		if cb(e, below) {
			return true
		}
	}
	return below.IsRoad()
}

// isPassable runs the passable chain. The second result reports whether any
// callback answered; without an answer the caller falls back to the block's
// collision shape.
func (r *Registries) isPassable(e *world.Entity, state world.BlockState) (bool, bool) {
	for _, cb := range r.passable {
		if v, ok := cb(e, state); ok {
			return v, true
		}
	}
	return false, false
}

func (r *Registries) walkable(o PathingOptions, e *world.Entity, state world.BlockState, pos world.Vec3i) (SurfaceType, bool) {
	for _, cb := range r.walkableSurface {
		if v, ok := cb(o, e, state, pos); ok {
			return v, true
		}
	}
	return Walkable, false
}

func (r *Registries) produceBoundingBox(e *world.Entity, center, facing world.Vec3f, reader world.Reader) (world.AABB, bool) {
	for _, cb := range r.boundingBox {
		if box, ok := cb(e, center, facing, reader); ok {
			return box, true
		}
	}
	return world.AABB{}, false
}

func (r *Registries) startPositionFor(e *world.Entity, reader world.Reader) (world.Vec3i, bool) {
	for _, cb := range r.startPosition {
		if pos, ok := cb(e, reader); ok {
			return pos, true
		}
	}
	return world.Vec3i{}, false
}
