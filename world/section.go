package world

import "iter"

// Section is one decoded 16x16x16 slab of a chunk column. It holds a dense
// grid of palette ids together with the palette they refer to, which is
// either its own section palette or the global palette of the run. Sections
// are immutable once decoded.
type Section struct {
	pos    ChunkPos
	index  int8
	pal    *Palette
	blocks [4096]uint32
}

// Index returns the vertical index of the section within its column. Block y
// coordinates covered by the section start at Index()*16.
func (s *Section) Index() int8 {
	return s.index
}

// At returns the block state name at the section-local position passed, with
// each of x, y and z in the range [0,16).
func (s *Section) At(x, y, z int) string {
	state, _ := s.pal.State(s.blocks[y<<8|z<<4|x])
	return state
}

// Blocks iterates over all 4096 blocks of the section in y, z, x order,
// yielding the world position of each block and its state name.
func (s *Section) Blocks() iter.Seq2[BlockPos, string] {
	return func(yield func(BlockPos, string) bool) {
		baseX, baseY, baseZ := int(s.pos.X())<<4, int(s.index)<<4, int(s.pos.Z())<<4
		for i, id := range s.blocks {
			state, _ := s.pal.State(id)
			pos := BlockPos{baseX + i&15, baseY + i>>8, baseZ + i>>4&15}
			if !yield(pos, state) {
				return
			}
		}
	}
}
