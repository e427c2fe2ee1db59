package world

import "github.com/aquilax/go-perlin"

const (
	genAlpha      = 2.0
	genBeta       = 2.0
	genOctaves    = 3
	genNoiseScale = 0.03
)

// Generator produces deterministic perlin-noise terrain for bench worlds.
// Same seed, same chunks.
type Generator struct {
	Seed      int64
	BaseY     int
	Amplitude int
	SeaLevel  int

	noise *perlin.Perlin
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		Seed:      seed,
		BaseY:     64,
		Amplitude: 12,
		SeaLevel:  60,
		noise:     perlin.NewPerlin(genAlpha, genBeta, genOctaves, seed),
	}
}

// SurfaceY returns the terrain surface height at a column.
func (g *Generator) SurfaceY(x, z int) int {
	n := g.noise.Noise2D(float64(x)*genNoiseScale, float64(z)*genNoiseScale)
	y := g.BaseY + int(n*float64(g.Amplitude))
	if y < MinY+1 {
		y = MinY + 1
	}
	if y > MaxY-8 {
		y = MaxY - 8
	}
	return y
}

// Fill generates terrain into an empty chunk: stone column, dirt cap, grass
// surface, water up to sea level.
func (g *Generator) Fill(c *Chunk, catalog *BlockCatalog) {
	stone := catalog.State("STONE")
	dirt := catalog.State("DIRT")
	grass := catalog.State("GRASS")
	water := catalog.State("WATER")

	baseX := c.CX << 4
	baseZ := c.CZ << 4
	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			surface := g.SurfaceY(baseX+x, baseZ+z)
			for y := MinY; y < surface-3; y++ {
				c.SetLocalBlock(x, y, z, stone)
			}
			for y := surface - 3; y < surface; y++ {
				if y >= MinY {
					c.SetLocalBlock(x, y, z, dirt)
				}
			}
			if surface <= g.SeaLevel {
				c.SetLocalBlock(x, surface, z, dirt)
				for y := surface + 1; y <= g.SeaLevel; y++ {
					c.SetLocalBlock(x, y, z, water)
				}
			} else {
				c.SetLocalBlock(x, surface, z, grass)
			}
		}
	}
}
