// Package scenario loads and validates pathbench scenario files: a block
// layout, an entity descriptor, and the jobs to run against it.
package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"voxelpath.ai/internal/sim/world"
)

//go:embed scenario.schema.json
var schemaSource []byte

var schema = jsonschema.MustCompileString("scenario.schema.json", string(schemaSource))

type Scenario struct {
	Name     string  `json:"name"`
	Seed     int64   `json:"seed"`
	Generate bool    `json:"generate"`
	Blocks   []Block `json:"blocks"`
	Fills    []Fill  `json:"fills"`
	Entity   Entity  `json:"entity"`
	Jobs     []Job   `json:"jobs"`
}

type Block struct {
	Pos [3]int `json:"pos"`
	ID  string `json:"id"`
}

type Fill struct {
	From [3]int `json:"from"`
	To   [3]int `json:"to"`
	ID   string `json:"id"`
}

type Entity struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	EyeHeight float64 `json:"eye_height"`
}

type Job struct {
	Start [3]int `json:"start"`
	End   [3]int `json:"end"`
	Range int    `json:"range"`

	CanSwim       *bool `json:"can_swim"`
	CanUseLadders *bool `json:"can_use_ladders"`
	CanUseRails   *bool `json:"can_use_rails"`
}

// Load reads, schema-validates, and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse validates and decodes a scenario document.
func Parse(raw []byte) (*Scenario, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if s.Entity.Width == 0 {
		s.Entity.Width = 0.6
	}
	if s.Entity.Height == 0 {
		s.Entity.Height = 1.8
	}
	if s.Entity.EyeHeight == 0 {
		s.Entity.EyeHeight = s.Entity.Height / 2
	}
	return &s, nil
}

// BuildWorld materializes the scenario's block layout into a live world.
func (s *Scenario) BuildWorld(catalog *world.BlockCatalog) (*world.World, error) {
	w := world.New(world.WorldConfig{Seed: s.Seed, Generate: s.Generate}, catalog)

	for _, f := range s.Fills {
		if _, ok := catalog.Defs[f.ID]; !ok {
			return nil, fmt.Errorf("scenario %q: unknown block id %q", s.Name, f.ID)
		}
		for y := min(f.From[1], f.To[1]); y <= max(f.From[1], f.To[1]); y++ {
			for z := min(f.From[2], f.To[2]); z <= max(f.From[2], f.To[2]); z++ {
				for x := min(f.From[0], f.To[0]); x <= max(f.From[0], f.To[0]); x++ {
					w.SetBlockID(world.Vec3i{X: x, Y: y, Z: z}, f.ID)
				}
			}
		}
	}
	for _, b := range s.Blocks {
		if _, ok := catalog.Defs[b.ID]; !ok {
			return nil, fmt.Errorf("scenario %q: unknown block id %q", s.Name, b.ID)
		}
		w.SetBlockID(world.Vec3i{X: b.Pos[0], Y: b.Pos[1], Z: b.Pos[2]}, b.ID)
	}
	return w, nil
}

// WorldEntity converts the scenario entity placed at the given start.
func (s *Scenario) WorldEntity(start [3]int) *world.Entity {
	return &world.Entity{
		Width:     s.Entity.Width,
		Height:    s.Entity.Height,
		EyeHeight: s.Entity.EyeHeight,
		Pos: world.Vec3f{
			X: float64(start[0]) + 0.5,
			Y: float64(start[1]),
			Z: float64(start[2]) + 0.5,
		},
	}
}
