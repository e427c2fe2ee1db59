package world

// Material groups blocks by their physical class, the way path planning
// distinguishes them.
type Material uint8

const (
	MaterialAir Material = iota
	MaterialSolid
	MaterialWater
	MaterialLava
	MaterialPlant
	MaterialSnow
	MaterialCloth
)

func (m Material) IsLiquid() bool { return m == MaterialWater || m == MaterialLava }

func (m Material) String() string {
	switch m {
	case MaterialAir:
		return "air"
	case MaterialSolid:
		return "solid"
	case MaterialWater:
		return "water"
	case MaterialLava:
		return "lava"
	case MaterialPlant:
		return "plant"
	case MaterialSnow:
		return "snow"
	case MaterialCloth:
		return "cloth"
	}
	return "unknown"
}

// Fluid identifies the fluid occupying a cell, if any.
type Fluid uint8

const (
	FluidEmpty Fluid = iota
	FluidWater
	FluidFlowingWater
	FluidLava
	FluidFlowingLava
)

type FluidState struct {
	Fluid Fluid
}

func (f FluidState) IsEmpty() bool { return f.Fluid == FluidEmpty }

func (f FluidState) IsWater() bool {
	return f.Fluid == FluidWater || f.Fluid == FluidFlowingWater
}

func (f FluidState) IsLava() bool {
	return f.Fluid == FluidLava || f.Fluid == FluidFlowingLava
}
