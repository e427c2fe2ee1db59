package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"voxelpath.ai/internal/sim/pathing"
)

// Tuning is the pathing configuration file. Fields the file leaves out keep
// their defaults, so partial files are fine; the node cap, rails minimum and
// default range also fall back when set to zero or less.
type Tuning struct {
	MaxPathingNodes    int `yaml:"max_pathing_nodes"`
	MinimumRailsToPath int `yaml:"minimum_rails_to_path"`

	DefaultRange int `yaml:"default_range"`

	Costs     Costs     `yaml:"costs"`
	Abilities Abilities `yaml:"abilities"`
}

type Costs struct {
	JumpDrop           float64 `yaml:"jump_drop"`
	TraverseToggleable float64 `yaml:"traverse_toggleable"`
	OnPath             float64 `yaml:"on_path"`
	OnRail             float64 `yaml:"on_rail"`
	RailsExit          float64 `yaml:"rails_exit"`
	OnLadder           float64 `yaml:"on_ladder"`
	Swim               float64 `yaml:"swim"`
	SwimEnter          float64 `yaml:"swim_enter"`
}

type Abilities struct {
	CanSwim       bool `yaml:"can_swim"`
	CanUseLadders bool `yaml:"can_use_ladders"`
	CanUseRails   bool `yaml:"can_use_rails"`

	LowerSwimWaypoints bool `yaml:"lower_swim_waypoints"`
}

func Default() Tuning {
	o := pathing.DefaultOptions()
	return Tuning{
		MaxPathingNodes:    5000,
		MinimumRailsToPath: 5,
		DefaultRange:       64,
		Costs: Costs{
			JumpDrop:           o.JumpDropCost,
			TraverseToggleable: o.TraverseToggleAbleCost,
			OnPath:             o.OnPathCost,
			OnRail:             o.OnRailCost,
			RailsExit:          o.RailsExitCost,
			OnLadder:           o.OnLadderCost,
			Swim:               o.SwimCost,
			SwimEnter:          o.SwimCostEnter,
		},
		Abilities: Abilities{
			CanSwim:            o.CanSwim,
			CanUseLadders:      o.CanUseLadders,
			CanUseRails:        o.CanUseRails,
			LowerSwimWaypoints: o.LowerSwimWaypoints,
		},
	}
}

// Load reads a tuning file, filling unset fields from the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("pathing.yaml: %w", err)
	}
	if t.MaxPathingNodes <= 0 {
		t.MaxPathingNodes = Default().MaxPathingNodes
	}
	if t.MinimumRailsToPath <= 0 {
		t.MinimumRailsToPath = Default().MinimumRailsToPath
	}
	if t.DefaultRange <= 0 {
		t.DefaultRange = Default().DefaultRange
	}
	return t, nil
}

// Options converts the tuning into per-search pathing options.
func (t Tuning) Options() pathing.PathingOptions {
	return pathing.PathingOptions{
		JumpDropCost:           t.Costs.JumpDrop,
		TraverseToggleAbleCost: t.Costs.TraverseToggleable,
		OnPathCost:             t.Costs.OnPath,
		OnRailCost:             t.Costs.OnRail,
		RailsExitCost:          t.Costs.RailsExit,
		OnLadderCost:           t.Costs.OnLadder,
		SwimCost:               t.Costs.Swim,
		SwimCostEnter:          t.Costs.SwimEnter,
		CanSwim:                t.Abilities.CanSwim,
		CanUseLadders:          t.Abilities.CanUseLadders,
		CanUseRails:            t.Abilities.CanUseRails,
		LowerSwimWaypoints:     t.Abilities.LowerSwimWaypoints,
	}
}
