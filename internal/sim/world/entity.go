package world

// Entity describes the mobile agent a path is planned for. Only the
// dimensions matter to the planner; movement itself happens elsewhere.
type Entity struct {
	Width     float64
	Height    float64
	EyeHeight float64
	Pos       Vec3f
}

// BlockPos is the block cell the entity's feet occupy.
func (e *Entity) BlockPos() Vec3i {
	return Vec3i{X: floorInt(e.Pos.X), Y: floorInt(e.Pos.Y), Z: floorInt(e.Pos.Z)}
}

func floorInt(v float64) int {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}
