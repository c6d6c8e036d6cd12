package world

import "iter"

// Column is the decoded form of one chunk worth of world data: a vertical
// stack of up to 16 sections sharing a single chunk position. Sections a
// column never carried, or that the loader's section range filtered out, are
// simply absent. Columns are immutable after decoding and dropped as a whole
// when evicted from a Loader.
type Column struct {
	pos      ChunkPos
	sections [16]*Section
}

// Pos returns the position of the column.
func (c *Column) Pos() ChunkPos {
	return c.pos
}

// Section returns the section at the vertical index passed, or nil if the
// column holds no data there.
func (c *Column) Section(index int) *Section {
	if index < 0 || index > 15 {
		return nil
	}
	return c.sections[index]
}

// Block returns the block state name at the column-local x and z (both in
// [0,16)) and the world y passed. The bool returned is false if no section
// covers the y coordinate.
func (c *Column) Block(x, y, z int) (string, bool) {
	if y < 0 || y > 255 {
		return "", false
	}
	s := c.sections[y>>4]
	if s == nil {
		return "", false
	}
	return s.At(x, y&15, z), true
}

// Sections iterates over the sections present in the column in ascending
// index order.
func (c *Column) Sections() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		for _, s := range c.sections {
			if s == nil {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}
