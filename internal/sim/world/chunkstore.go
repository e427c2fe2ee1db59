package world

import "sort"

// ChunkStore owns the loaded chunks of a live world. Chunks are created on
// demand, either empty or from the terrain generator when one is configured.
type ChunkStore struct {
	catalog *BlockCatalog
	gen     *Generator

	chunks map[ChunkKey]*Chunk
}

func NewChunkStore(catalog *BlockCatalog, gen *Generator) *ChunkStore {
	return &ChunkStore{
		catalog: catalog,
		gen:     gen,
		chunks:  map[ChunkKey]*Chunk{},
	}
}

func (s *ChunkStore) LoadedChunkKeys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(s.chunks))
	for k := range s.chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		return keys[i].CZ < keys[j].CZ
	})
	return keys
}

// Chunk returns the loaded chunk, or nil when it was never touched.
func (s *ChunkStore) Chunk(key ChunkKey) *Chunk {
	return s.chunks[key]
}

func (s *ChunkStore) ensure(key ChunkKey) *Chunk {
	if c, ok := s.chunks[key]; ok {
		return c
	}
	c := NewChunk(key.CX, key.CZ, s.catalog.Air())
	if s.gen != nil {
		s.gen.Fill(c, s.catalog)
	}
	s.chunks[key] = c
	return c
}

func (s *ChunkStore) GetBlock(pos Vec3i) BlockState {
	if pos.Y < MinY || pos.Y > MaxY {
		return s.catalog.Air()
	}
	return s.ensure(ChunkKeyOf(pos)).BlockState(pos)
}

func (s *ChunkStore) SetBlock(pos Vec3i, state BlockState) {
	if pos.Y < MinY || pos.Y > MaxY {
		return
	}
	c := s.ensure(ChunkKeyOf(pos))
	c.SetLocalBlock(pos.X&0xF, pos.Y, pos.Z&0xF, state)
}
