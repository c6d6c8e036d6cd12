package world

import (
	"fmt"
	"slices"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"
)

// Decoder turns ColumnData into decoded Columns. If Global is set, every
// section is remapped into that palette's id space so that identical state
// names across all decoded sections share one id; left nil, each section
// keeps its own palette. The zero value decodes every section locally.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	// Global is the palette shared by all sections this decoder decodes.
	Global *Palette
	// Sections bounds the vertical section indices that are decoded. The
	// zero range keeps every section.
	Sections SectionRange

	remap remapCache
}

// SectionRange is a half-open range [Min,Max) of vertical section indices.
// The zero SectionRange places no bound.
type SectionRange struct {
	Min, Max int
}

func (r SectionRange) contains(index int) bool {
	if r == (SectionRange{}) {
		return true
	}
	return index >= r.Min && index < r.Max
}

// DecodeColumn decodes the column data passed, which must belong to the
// chunk position requested: column data recording a different position is
// malformed. Sections without block data, with a vertical index outside
// [0,16) or outside the decoder's section range are left absent.
func (d *Decoder) DecodeColumn(pos ChunkPos, data ColumnData) (*Column, error) {
	if data.Level.X != pos.X() || data.Level.Z != pos.Z() {
		return nil, fmt.Errorf("decode column %v: data reports position (%v,%v)", pos, data.Level.X, data.Level.Z)
	}
	c := &Column{pos: pos}
	for _, sec := range data.Level.Sections {
		index := int8(sec.Y)
		if index < 0 || index > 15 || !d.Sections.contains(int(index)) {
			continue
		}
		if sec.BlockStates == nil {
			continue
		}
		s, err := d.decodeSection(pos, index, sec)
		if err != nil {
			return nil, fmt.Errorf("decode column %v: section %v: %w", pos, index, err)
		}
		c.sections[index] = s
	}
	return c, nil
}

func (d *Decoder) decodeSection(pos ChunkPos, index int8, data SectionData) (*Section, error) {
	states := make([]string, len(data.Palette))
	for i, entry := range data.Palette {
		if entry.Name == "" {
			return nil, fmt.Errorf("palette entry %v has no Name", i)
		}
		states[i] = entry.Name
	}
	pal := NewSectionPalette(states)
	s := &Section{
		pos:    pos,
		index:  index,
		pal:    pal,
		blocks: UnpackBlockStates(data.BlockStates, pal.BitsPerBlock()),
	}
	if d.Global == nil {
		for _, id := range s.blocks {
			if _, ok := pal.State(id); !ok {
				return nil, fmt.Errorf("block id %v outside palette of %v states", id, pal.Len())
			}
		}
		return s, nil
	}
	table := d.remap.table(states, pal, d.Global)
	for i, id := range s.blocks {
		if int(id) >= len(table) {
			return nil, fmt.Errorf("block id %v outside palette of %v states", id, len(table))
		}
		s.blocks[i] = table[id]
	}
	s.pal = d.Global
	return s, nil
}

// remapCache interns section-to-global id tables. Worlds repeat the same
// declared palette across a great many sections, so the table for a palette
// is built once and found again through an xxhash digest of its names.
type remapCache struct {
	index  *intintmap.Map
	tables [][]uint32
	names  [][]string
}

func (c *remapCache) table(states []string, pal, global *Palette) []uint32 {
	if c.index == nil {
		c.index = intintmap.New(64, 0.6)
	}
	h := int64(fingerprint(states))
	if i, ok := c.index.Get(h); ok {
		if !slices.Equal(c.names[i], states) {
			panic("palette: xxhash collision between section palettes")
		}
		return c.tables[i]
	}
	table := make([]uint32, pal.Len())
	for id := range table {
		state, _ := pal.State(uint32(id))
		table[id] = global.Add(state)
	}
	c.index.Put(h, int64(len(c.tables)))
	c.tables = append(c.tables, table)
	c.names = append(c.names, slices.Clone(states))
	return table
}

func fingerprint(states []string) uint64 {
	d := xxhash.New()
	for _, state := range states {
		_, _ = d.WriteString(state)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
