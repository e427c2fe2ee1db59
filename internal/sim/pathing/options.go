package pathing

// PathingOptions carries the per-entity movement capabilities and cost
// multipliers for one search. Immutable while the search runs.
type PathingOptions struct {
	JumpDropCost           float64
	TraverseToggleAbleCost float64
	OnPathCost             float64
	OnRailCost             float64
	RailsExitCost          float64
	OnLadderCost           float64
	SwimCost               float64
	SwimCostEnter          float64

	CanSwim       bool
	CanUseLadders bool
	CanUseRails   bool

	// LowerSwimWaypoints emits swim waypoints one block below the node so the
	// executor holds the agent at the water surface instead of above it.
	LowerSwimWaypoints bool
}

// DefaultOptions are the walking defaults: ladders allowed, no swimming, no
// rails.
func DefaultOptions() PathingOptions {
	return PathingOptions{
		JumpDropCost:           2.5,
		TraverseToggleAbleCost: 3,
		OnPathCost:             0.75,
		OnRailCost:             0.5,
		RailsExitCost:          3,
		OnLadderCost:           1.5,
		SwimCost:               3,
		SwimCostEnter:          5,
		CanUseLadders:          true,
		LowerSwimWaypoints:     true,
	}
}

// SwimmingOptions are the walking defaults plus water traversal.
func SwimmingOptions() PathingOptions {
	o := DefaultOptions()
	o.CanSwim = true
	return o
}

// RidingOptions are the walking defaults plus rail traversal.
func RidingOptions() PathingOptions {
	o := DefaultOptions()
	o.CanUseRails = true
	return o
}
