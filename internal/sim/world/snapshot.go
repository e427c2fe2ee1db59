package world

import "fmt"

// maxSnapshotSpan bounds the horizontal window so 32-bit packed node keys
// stay collision free (12 bits per horizontal axis).
const maxSnapshotSpan = 4096

// Snapshot is a frozen rectangular window over a world's chunks. Reads
// outside the window, above the build limit, or into never-loaded chunks
// yield air and empty fluid. A snapshot never touches the live world after
// construction, which makes it safe to read from a search worker while the
// main thread keeps ticking.
type Snapshot struct {
	originCX int
	originCZ int
	chunks   [][]*Chunk
	air      BlockState
}

// NewSnapshot captures the chunks covering [boxMin, boxMax] expanded by
// padding blocks in X and Z.
func NewSnapshot(w *World, boxMin, boxMax Vec3i, padding int) (*Snapshot, error) {
	minCX := (boxMin.X - padding) >> 4
	minCZ := (boxMin.Z - padding) >> 4
	maxCX := (boxMax.X + padding) >> 4
	maxCZ := (boxMax.Z + padding) >> 4

	if span := (maxCX - minCX + 1) * ChunkSize; span > maxSnapshotSpan {
		return nil, fmt.Errorf("snapshot window %d exceeds %d blocks in x", span, maxSnapshotSpan)
	}
	if span := (maxCZ - minCZ + 1) * ChunkSize; span > maxSnapshotSpan {
		return nil, fmt.Errorf("snapshot window %d exceeds %d blocks in z", span, maxSnapshotSpan)
	}

	s := &Snapshot{
		originCX: minCX,
		originCZ: minCZ,
		chunks:   make([][]*Chunk, maxCX-minCX+1),
		air:      w.catalog.Air(),
	}
	for cx := minCX; cx <= maxCX; cx++ {
		row := make([]*Chunk, maxCZ-minCZ+1)
		for cz := minCZ; cz <= maxCZ; cz++ {
			row[cz-minCZ] = w.ChunkIfLoaded(ChunkKey{CX: cx, CZ: cz})
		}
		s.chunks[cx-minCX] = row
	}
	return s, nil
}

func (s *Snapshot) chunkAt(pos Vec3i) *Chunk {
	i := (pos.X >> 4) - s.originCX
	j := (pos.Z >> 4) - s.originCZ
	if i < 0 || i >= len(s.chunks) || j < 0 || j >= len(s.chunks[i]) {
		return nil
	}
	return s.chunks[i][j]
}

func (s *Snapshot) BlockState(pos Vec3i) BlockState {
	if pos.Y < MinY || pos.Y > MaxY {
		return s.air
	}
	c := s.chunkAt(pos)
	if c == nil {
		return s.air
	}
	return c.BlockState(pos)
}

func (s *Snapshot) FluidState(pos Vec3i) FluidState {
	if pos.Y < MinY || pos.Y > MaxY {
		return FluidState{}
	}
	c := s.chunkAt(pos)
	if c == nil {
		return FluidState{}
	}
	return c.FluidState(pos)
}

// Contains reports whether the position's column lies inside the window.
func (s *Snapshot) Contains(pos Vec3i) bool {
	i := (pos.X >> 4) - s.originCX
	j := (pos.Z >> 4) - s.originCZ
	return i >= 0 && i < len(s.chunks) && j >= 0 && j < len(s.chunks[0])
}
