package pathing

import (
	"fmt"

	"github.com/google/uuid"

	"voxelpath.ai/internal/sim/world"
)

const (
	shiftXBy = 20
	shiftYBy = 12

	// defaultMaxNodes caps the visited count when the config leaves it unset.
	defaultMaxNodes = 5000

	// maxDropDepth is how far downward a drop probe looks; drops beyond
	// dropAcceptLimit blocks only land in liquid.
	maxDropDepth    = 10
	dropAcceptLimit = 4
)

// packNodeKey encodes the lowest 12 bits of x and z and all useful bits of y
// into a pseudo-unique key. Unique within a 4096x256x4096 window, which
// covers the widest window the snapshot allows.
func packNodeKey(pos world.Vec3i) uint32 {
	return uint32(pos.X&0xFFF)<<shiftXBy | uint32(pos.Y&0xFF)<<shiftYBy | uint32(pos.Z&0xFFF)
}

// JobConfig carries everything a search needs besides the geometry.
type JobConfig struct {
	Options    PathingOptions
	Registries *Registries

	// MaxNodes caps the visited-node count; the effective budget is
	// min(MaxNodes, range*range). Zero means the default cap.
	MaxNodes int

	// MinRailsToPath is the minimum rails-run length worth annotating; a
	// shorter run is not worth mounting a cart for.
	MinRailsToPath int

	// AllowJumpPointSearch continues a walk in the same direction while the
	// heuristic improves. May be faster, but can produce strange results.
	AllowJumpPointSearch bool

	// Goal overrides the default goal derived from the constructor geometry.
	Goal Goal

	// OnCompleted receives the calculation data once the search finishes.
	// Runs on the search goroutine; hand off if main-thread work is needed.
	OnCompleted func(*CalculationData)
}

func (c *JobConfig) normalize() {
	if c.Registries == nil {
		c.Registries = NewRegistries()
	}
	if c.MaxNodes <= 0 {
		c.MaxNodes = defaultMaxNodes
	}
	if c.MinRailsToPath <= 0 {
		c.MinRailsToPath = 5
	}
}

// Job is one path search: a frozen snapshot, a goal, and the per-search node
// state. A job runs once and is not reused.
type Job struct {
	ID uuid.UUID

	start    world.Vec3i
	snapshot *world.Snapshot
	entity   *world.Entity
	goal     Goal

	options    PathingOptions
	registries *Registries

	maxRange int
	maxNodes int

	minRailsToPath       int
	allowJumpPointSearch bool

	xzRestricted     bool
	hardXZRestricted bool
	minX, maxX       int
	minZ, maxZ       int

	open    *openSet
	visited map[uint32]*Node

	totalNodesAdded   int
	totalNodesVisited int

	calc        *CalculationData
	onCompleted func(*CalculationData)
}

// NewJob plans from start to end. The snapshot window covers both positions
// expanded by the range, and the start is corrected through the
// start-position chain before searching.
func NewJob(w *world.World, start, end world.Vec3i, rng int, e *world.Entity, cfg JobConfig) (*Job, error) {
	cfg.normalize()

	minX := min(start.X, end.X) - rng/2
	minZ := min(start.Z, end.Z) - rng/2
	maxX := max(start.X, end.X) + rng/2
	maxZ := max(start.Z, end.Z) + rng/2

	snap, err := world.NewSnapshot(w, world.Vec3i{X: minX, Y: world.MinY, Z: minZ}, world.Vec3i{X: maxX, Y: world.MaxY, Z: maxZ}, rng)
	if err != nil {
		return nil, fmt.Errorf("path job: %w", err)
	}

	j := &Job{
		ID:                   uuid.New(),
		snapshot:             snap,
		entity:               e,
		goal:                 cfg.Goal,
		options:              cfg.Options,
		registries:           cfg.Registries,
		maxRange:             rng,
		maxNodes:             cfg.MaxNodes,
		minRailsToPath:       cfg.MinRailsToPath,
		allowJumpPointSearch: cfg.AllowJumpPointSearch,
		open:                 newOpenSet(),
		visited:              map[uint32]*Node{},
		calc:                 newCalculationData(),
		onCompleted:          cfg.OnCompleted,
	}
	if j.goal == nil {
		j.goal = MoveToGoal{Target: end}
	}
	j.start = j.prepareStart(start)
	if !snap.Contains(j.start) {
		return nil, fmt.Errorf("path job: start %v outside snapshot window", j.start)
	}
	return j, nil
}

// NewRestrictedJob plans from start toward a restriction box. grow expands
// (or shrinks, when negative) the box in both XZ directions. With a hard
// restriction the search never expands a node outside the box; with a soft
// one it may leave the box to find a way back in.
func NewRestrictedJob(
	w *world.World,
	start, restrictionMin, restrictionMax world.Vec3i,
	rng int,
	grow world.Vec3i,
	hard bool,
	e *world.Entity,
	cfg JobConfig,
) (*Job, error) {
	cfg.normalize()

	minX := min(restrictionMin.X, restrictionMax.X) - grow.X
	minZ := min(restrictionMin.Z, restrictionMax.Z) - grow.Z
	maxX := max(restrictionMin.X, restrictionMax.X) + grow.X
	maxZ := max(restrictionMin.Z, restrictionMax.Z) + grow.Z

	// The start may sit outside the restriction box; the window has to cover
	// it regardless or the first expansion finds no ground.
	boxMin := world.Vec3i{X: min(minX, start.X), Y: world.MinY, Z: min(minZ, start.Z)}
	boxMax := world.Vec3i{X: max(maxX, start.X), Y: world.MaxY, Z: max(maxZ, start.Z)}

	snap, err := world.NewSnapshot(w, boxMin, boxMax, rng)
	if err != nil {
		return nil, fmt.Errorf("path job: %w", err)
	}

	j := &Job{
		ID:                   uuid.New(),
		start:                start,
		snapshot:             snap,
		entity:               e,
		goal:                 cfg.Goal,
		options:              cfg.Options,
		registries:           cfg.Registries,
		maxRange:             rng,
		maxNodes:             cfg.MaxNodes,
		minRailsToPath:       cfg.MinRailsToPath,
		allowJumpPointSearch: cfg.AllowJumpPointSearch,
		xzRestricted:         true,
		hardXZRestricted:     hard,
		minX:                 minX,
		maxX:                 maxX,
		minZ:                 minZ,
		maxZ:                 maxZ,
		open:                 newOpenSet(),
		visited:              map[uint32]*Node{},
		calc:                 newCalculationData(),
		onCompleted:          cfg.OnCompleted,
	}
	if j.goal == nil {
		j.goal = ReachRegionGoal{
			Min: world.Vec3i{X: minX, Z: minZ},
			Max: world.Vec3i{X: maxX, Z: maxZ},
		}
	}
	j.start = j.prepareStart(start)
	if !snap.Contains(j.start) {
		return nil, fmt.Errorf("path job: start %v outside snapshot window", j.start)
	}
	return j, nil
}

func (j *Job) Start() world.Vec3i { return j.start }

func (j *Job) CalculationData() *CalculationData { return j.calc }

func (j *Job) Options() PathingOptions { return j.options }

// prepareStart corrects the requested start through the start-position chain.
// The built-in fallback lifts a submerged start to the water surface and
// steps out of fence-like spaces the agent cannot stand in.
func (j *Job) prepareStart(requested world.Vec3i) world.Vec3i {
	if pos, ok := j.registries.startPositionFor(j.entity, j.snapshot); ok {
		return pos
	}

	pos := requested
	if j.snapshot.BlockState(pos).Material() == world.MaterialWater {
		for pos.Y < world.MaxY && j.snapshot.BlockState(pos).Material().IsLiquid() {
			pos = pos.Up()
		}
		return pos
	}

	if j.isWalkableSurface(j.snapshot.BlockState(pos), pos) == NotPassable {
		for _, d := range [...]world.Direction{world.DirNorth, world.DirEast, world.DirSouth, world.DirWest} {
			side := pos.Add(d.Vec())
			if j.isWalkableSurface(j.snapshot.BlockState(side), side) != NotPassable {
				return side
			}
		}
	}
	return pos
}

// isWalkableSurface classifies the block as something to stand on. Callback
// chain first; the built-in classifier covers the stock block kinds.
func (j *Job) isWalkableSurface(state world.BlockState, pos world.Vec3i) SurfaceType {
	if v, ok := j.registries.walkable(j.options, j.entity, state, pos); ok {
		return v
	}

	switch state.Kind() {
	case world.KindFence, world.KindFenceGate, world.KindWall, world.KindFire, world.KindCampfire, world.KindBamboo:
		return NotPassable
	}
	if state.ShapeHeight() > 1.0 {
		return NotPassable
	}

	fluid := j.snapshot.FluidState(pos)
	if state.Kind() == world.KindLava || fluid.IsLava() {
		return NotPassable
	}

	if state.IsSolid() ||
		(state.Kind() == world.KindSnowLayer && state.Layers > 1) ||
		state.Kind() == world.KindCarpet {
		return Walkable
	}

	return Dropable
}

func (j *Job) isLadder(pos world.Vec3i) bool {
	return j.registries.isLadder(j.entity, j.snapshot.BlockState(pos), j.snapshot, pos)
}

// isNotPassable answers whether the entity cannot fit at pos when arriving
// from parent.
func (j *Job) isNotPassable(parent, pos world.Vec3i) bool {
	return !canFit(j.registries, j.entity, pos.Center(), pos.Sub(parent).ToVec3f(), j.snapshot)
}

// isWater reports whether the cell holds some kind of water.
func isWater(r world.Reader, pos world.Vec3i) bool {
	state := r.BlockState(pos)
	if state.IsSolid() {
		return false
	}
	if state.Kind() == world.KindWater {
		return true
	}
	return r.FluidState(pos).IsWater()
}
