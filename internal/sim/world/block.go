package world

// BlockKind is the behavioral class of a block. The path planner only cares
// about a handful of shapes and abilities, so kinds stay coarse; everything
// else comes from the catalog definition.
type BlockKind uint8

const (
	KindAir BlockKind = iota
	KindSolid
	KindFence
	KindFenceGate
	KindWall
	KindFire
	KindCampfire
	KindBamboo
	KindLadder
	KindVine
	KindScaffolding
	KindRail
	KindStairs
	KindSnowLayer
	KindCarpet
	KindDoor
	KindSlab
	KindWater
	KindLava
	KindDirtPath
)

var kindNames = map[string]BlockKind{
	"air":         KindAir,
	"solid":       KindSolid,
	"fence":       KindFence,
	"fence_gate":  KindFenceGate,
	"wall":        KindWall,
	"fire":        KindFire,
	"campfire":    KindCampfire,
	"bamboo":      KindBamboo,
	"ladder":      KindLadder,
	"vine":        KindVine,
	"scaffolding": KindScaffolding,
	"rail":        KindRail,
	"stairs":      KindStairs,
	"snow_layer":  KindSnowLayer,
	"carpet":      KindCarpet,
	"door":        KindDoor,
	"slab":        KindSlab,
	"water":       KindWater,
	"lava":        KindLava,
	"dirt_path":   KindDirtPath,
}

// BlockDef is one catalog entry. Defs are immutable after catalog load.
type BlockDef struct {
	ID        string
	Kind      BlockKind
	Material  Material
	Solid     bool
	// ShapeHeight is the top of the collision shape within the cell; 0 means
	// no collision shape at all. Fences report 1.5 like their host game.
	ShapeHeight float64
	Climbable   bool
	Road        bool
	// HasOpen marks toggleable blocks (doors, gates, trapdoors).
	HasOpen bool
}

// vine attachment sides, one bit per horizontal direction
const (
	VineSouth uint8 = 1 << iota
	VineWest
	VineNorth
	VineEast
)

// BlockState is a block definition plus its per-placement properties. It is a
// small value; chunks store these directly.
type BlockState struct {
	def *BlockDef

	// Layers counts snow layers (1..8); zero for non-snow blocks.
	Layers uint8
	// Facing is the attachment direction for ladders and stairs.
	Facing Direction
	// VineMask holds the vine attachment sides.
	VineMask uint8
	// Open is the current value of the OPEN property, if the block has one.
	Open bool
}

func (s BlockState) Def() *BlockDef { return s.def }

func (s BlockState) Kind() BlockKind {
	if s.def == nil {
		return KindAir
	}
	return s.def.Kind
}

func (s BlockState) Material() Material {
	if s.def == nil {
		return MaterialAir
	}
	return s.def.Material
}

func (s BlockState) IsAir() bool { return s.Material() == MaterialAir }

func (s BlockState) IsSolid() bool { return s.def != nil && s.def.Solid }

func (s BlockState) HasOpenProperty() bool { return s.def != nil && s.def.HasOpen }

func (s BlockState) IsClimbable() bool { return s.def != nil && s.def.Climbable }

func (s BlockState) IsRail() bool { return s.Kind() == KindRail }

func (s BlockState) IsStairs() bool { return s.Kind() == KindStairs }

func (s BlockState) IsRoad() bool { return s.def != nil && s.def.Road }

// ShapeHeight is the top of the block's collision shape within its cell.
// Open toggleable blocks collide with nothing.
func (s BlockState) ShapeHeight() float64 {
	if s.def == nil {
		return 0
	}
	if s.def.HasOpen && s.Open {
		return 0
	}
	if s.def.Kind == KindSnowLayer {
		return float64(s.Layers) * 0.125
	}
	return s.def.ShapeHeight
}

// CollisionShape is the block's collision box in world coordinates, or an
// empty box when the block has no shape.
func (s BlockState) CollisionShape(pos Vec3i) AABB {
	h := s.ShapeHeight()
	if h <= 0 {
		return AABB{}
	}
	return AABB{
		MinX: float64(pos.X), MinY: float64(pos.Y), MinZ: float64(pos.Z),
		MaxX: float64(pos.X) + 1, MaxY: float64(pos.Y) + h, MaxZ: float64(pos.Z) + 1,
	}
}

// Fluid reports the fluid occupying the cell.
func (s BlockState) Fluid() FluidState {
	switch s.Material() {
	case MaterialWater:
		return FluidState{Fluid: FluidWater}
	case MaterialLava:
		return FluidState{Fluid: FluidLava}
	}
	return FluidState{}
}

func (s BlockState) VineSide(side uint8) bool { return s.VineMask&side != 0 }
