package world

// Reader is the minimal read surface path planning needs from a world.
// Both the live World and its Snapshot satisfy it.
type Reader interface {
	BlockState(pos Vec3i) BlockState
	FluidState(pos Vec3i) FluidState
}

// World is a live, mutable voxel world. It is not safe for concurrent use;
// searches read through a Snapshot instead.
type World struct {
	catalog *BlockCatalog
	chunks  *ChunkStore
}

type WorldConfig struct {
	Seed     int64
	Generate bool
}

func New(cfg WorldConfig, catalog *BlockCatalog) *World {
	var gen *Generator
	if cfg.Generate {
		gen = NewGenerator(cfg.Seed)
	}
	return &World{
		catalog: catalog,
		chunks:  NewChunkStore(catalog, gen),
	}
}

func (w *World) Catalog() *BlockCatalog { return w.catalog }

func (w *World) BlockState(pos Vec3i) BlockState {
	if pos.Y < MinY || pos.Y > MaxY {
		return w.catalog.Air()
	}
	return w.chunks.GetBlock(pos)
}

func (w *World) FluidState(pos Vec3i) FluidState {
	return w.BlockState(pos).Fluid()
}

func (w *World) SetBlock(pos Vec3i, state BlockState) {
	w.chunks.SetBlock(pos, state)
}

// SetBlockID places the catalog's default state for the named block.
func (w *World) SetBlockID(pos Vec3i, id string) {
	w.chunks.SetBlock(pos, w.catalog.State(id))
}

// ChunkIfLoaded returns the chunk only if it has been touched; snapshots use
// this so unloaded terrain reads as air.
func (w *World) ChunkIfLoaded(key ChunkKey) *Chunk {
	return w.chunks.Chunk(key)
}

// LoadArea forces every chunk intersecting the box to be present, generating
// terrain when the world has a generator.
func (w *World) LoadArea(min, max Vec3i) {
	for cx := min.X >> 4; cx <= max.X>>4; cx++ {
		for cz := min.Z >> 4; cz <= max.Z>>4; cz++ {
			w.chunks.ensure(ChunkKey{CX: cx, CZ: cz})
		}
	}
}

func (w *World) LoadedChunks() int { return len(w.chunks.chunks) }
