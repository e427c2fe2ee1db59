package world

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// BlockCatalog maps block ids to definitions. Loaded once at startup and
// treated as immutable afterwards.
type BlockCatalog struct {
	Palette []string
	Index   map[string]uint16
	Defs    map[string]*BlockDef
	Digest  string
}

type blockDefYAML struct {
	ID          string  `yaml:"id"`
	Kind        string  `yaml:"kind"`
	Material    string  `yaml:"material"`
	Solid       bool    `yaml:"solid"`
	ShapeHeight float64 `yaml:"shape_height"`
	Climbable   bool    `yaml:"climbable"`
	Road        bool    `yaml:"road"`
	HasOpen     bool    `yaml:"has_open"`
}

type catalogYAML struct {
	Blocks []blockDefYAML `yaml:"blocks"`
}

var materialNames = map[string]Material{
	"air":   MaterialAir,
	"solid": MaterialSolid,
	"water": MaterialWater,
	"lava":  MaterialLava,
	"plant": MaterialPlant,
	"snow":  MaterialSnow,
	"cloth": MaterialCloth,
}

// LoadBlockCatalog reads a YAML block catalog file.
func LoadBlockCatalog(path string) (*BlockCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc catalogYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("blocks.yaml: %w", err)
	}
	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("blocks.yaml: no block definitions")
	}

	defs := make(map[string]*BlockDef, len(doc.Blocks))
	for _, b := range doc.Blocks {
		if b.ID == "" {
			return nil, fmt.Errorf("blocks.yaml: block with empty id")
		}
		kind, ok := kindNames[b.Kind]
		if !ok {
			return nil, fmt.Errorf("blocks.yaml: %s: unknown kind %q", b.ID, b.Kind)
		}
		mat, ok := materialNames[b.Material]
		if !ok {
			return nil, fmt.Errorf("blocks.yaml: %s: unknown material %q", b.ID, b.Material)
		}
		if _, dup := defs[b.ID]; dup {
			return nil, fmt.Errorf("blocks.yaml: duplicate id %s", b.ID)
		}
		defs[b.ID] = &BlockDef{
			ID:          b.ID,
			Kind:        kind,
			Material:    mat,
			Solid:       b.Solid,
			ShapeHeight: b.ShapeHeight,
			Climbable:   b.Climbable,
			Road:        b.Road,
			HasOpen:     b.HasOpen,
		}
	}
	if _, ok := defs["AIR"]; !ok {
		return nil, fmt.Errorf("blocks.yaml: catalog must define AIR")
	}

	c := newCatalog(defs)
	sum := sha256.Sum256(raw)
	c.Digest = hex.EncodeToString(sum[:])
	return c, nil
}

func newCatalog(defs map[string]*BlockDef) *BlockCatalog {
	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	c := &BlockCatalog{
		Palette: ids,
		Index:   make(map[string]uint16, len(ids)),
		Defs:    defs,
	}
	for i, id := range ids {
		c.Index[id] = uint16(i)
	}
	return c
}

// State builds a default state for the named block. Unknown ids yield air.
func (c *BlockCatalog) State(id string) BlockState {
	def, ok := c.Defs[id]
	if !ok {
		def = c.Defs["AIR"]
	}
	s := BlockState{def: def}
	if def.Kind == KindSnowLayer {
		s.Layers = 1
	}
	return s
}

func (c *BlockCatalog) Air() BlockState { return BlockState{def: c.Defs["AIR"]} }

// DefaultBlockCatalog builds the built-in catalog used by tests and benches
// when no catalog file is given. It covers the full classifier surface.
func DefaultBlockCatalog() *BlockCatalog {
	defs := map[string]*BlockDef{
		"AIR":          {ID: "AIR", Kind: KindAir, Material: MaterialAir},
		"STONE":        {ID: "STONE", Kind: KindSolid, Material: MaterialSolid, Solid: true, ShapeHeight: 1},
		"DIRT":         {ID: "DIRT", Kind: KindSolid, Material: MaterialSolid, Solid: true, ShapeHeight: 1},
		"GRASS":        {ID: "GRASS", Kind: KindSolid, Material: MaterialSolid, Solid: true, ShapeHeight: 1},
		"SAND":         {ID: "SAND", Kind: KindSolid, Material: MaterialSolid, Solid: true, ShapeHeight: 1},
		"GRAVEL":       {ID: "GRAVEL", Kind: KindSolid, Material: MaterialSolid, Solid: true, ShapeHeight: 1},
		"DIRT_PATH":    {ID: "DIRT_PATH", Kind: KindDirtPath, Material: MaterialSolid, Solid: true, ShapeHeight: 1, Road: true},
		"FENCE":        {ID: "FENCE", Kind: KindFence, Material: MaterialSolid, Solid: true, ShapeHeight: 1.5},
		"FENCE_GATE":   {ID: "FENCE_GATE", Kind: KindFenceGate, Material: MaterialSolid, Solid: true, ShapeHeight: 1.5, HasOpen: true},
		"WALL":         {ID: "WALL", Kind: KindWall, Material: MaterialSolid, Solid: true, ShapeHeight: 1.5},
		"FIRE":         {ID: "FIRE", Kind: KindFire, Material: MaterialAir},
		"CAMPFIRE":     {ID: "CAMPFIRE", Kind: KindCampfire, Material: MaterialSolid, Solid: true, ShapeHeight: 0.4375},
		"BAMBOO":       {ID: "BAMBOO", Kind: KindBamboo, Material: MaterialPlant, ShapeHeight: 1},
		"LADDER":       {ID: "LADDER", Kind: KindLadder, Material: MaterialSolid, Climbable: true},
		"VINE":         {ID: "VINE", Kind: KindVine, Material: MaterialPlant, Climbable: true},
		"SCAFFOLDING":  {ID: "SCAFFOLDING", Kind: KindScaffolding, Material: MaterialSolid, Climbable: true},
		"RAIL":         {ID: "RAIL", Kind: KindRail, Material: MaterialAir},
		"STONE_STAIRS": {ID: "STONE_STAIRS", Kind: KindStairs, Material: MaterialSolid, Solid: true, ShapeHeight: 1},
		"SNOW_LAYER":   {ID: "SNOW_LAYER", Kind: KindSnowLayer, Material: MaterialSnow},
		"CARPET":       {ID: "CARPET", Kind: KindCarpet, Material: MaterialCloth, ShapeHeight: 0.0625},
		"DOOR":         {ID: "DOOR", Kind: KindDoor, Material: MaterialSolid, Solid: true, ShapeHeight: 1, HasOpen: true},
		"SLAB":         {ID: "SLAB", Kind: KindSlab, Material: MaterialSolid, Solid: true, ShapeHeight: 0.5},
		"WATER":        {ID: "WATER", Kind: KindWater, Material: MaterialWater},
		"LAVA":         {ID: "LAVA", Kind: KindLava, Material: MaterialLava},
	}
	return newCatalog(defs)
}
