package world

import (
	"math/bits"
	"slices"

	"github.com/brentp/intintmap"
	"github.com/segmentio/fasthash/fnv1"
)

// Air is the block state name that every palette maps to id 0. Region files
// written by the vanilla game rely on this implicitly and may omit the entry
// from a section's declared palette.
const Air = "minecraft:air"

// Palette is an ordered list of block state names in which the position of a
// name is its numeric id. Two kinds exist: section palettes, decoded straight
// from a region file, and a global palette shared by every section of a run.
// Section palettes may hold the same name more than once, because the save
// format lists distinct property variants that this tool treats as one block.
type Palette struct {
	states []string
	// index maps fnv1 hashes of state names to their ids. It is only kept for
	// the global palette; section palettes never look names up in reverse.
	index *intintmap.Map
}

// NewGlobalPalette returns an empty global palette holding only Air at id 0.
// Ids handed out by Add are stable for the lifetime of the palette, so they
// may be stored in decoded sections that outlive each other.
func NewGlobalPalette() *Palette {
	p := &Palette{index: intintmap.New(256, 0.6)}
	p.Add(Air)
	return p
}

// NewSectionPalette returns a palette for the state names declared by a
// single section. If the first declared name is not Air, Air is inserted at
// id 0 and all declared names shift up by one, matching the id space the game
// packed the section's block data with.
func NewSectionPalette(states []string) *Palette {
	p := &Palette{states: slices.Clone(states)}
	if len(p.states) == 0 || p.states[0] != Air {
		p.states = slices.Insert(p.states, 0, Air)
	}
	return p
}

// Add returns the id of the state name passed, inserting it behind the
// existing states if it was not yet present. Add must only be called on the
// global palette.
func (p *Palette) Add(state string) uint32 {
	h := int64(fnv1.HashString64(state))
	if id, ok := p.index.Get(h); ok {
		if p.states[id] != state {
			panic("palette: fnv1 collision between " + p.states[id] + " and " + state)
		}
		return uint32(id)
	}
	id := uint32(len(p.states))
	p.states = append(p.states, state)
	p.index.Put(h, int64(id))
	return id
}

// State returns the state name registered under the id passed, with false if
// the id falls outside of the palette.
func (p *Palette) State(id uint32) (string, bool) {
	if int(id) >= len(p.states) {
		return "", false
	}
	return p.states[id], true
}

// Len returns the number of states in the palette.
func (p *Palette) Len() int {
	return len(p.states)
}

// BitsPerBlock returns the width in bits at which block data referring to
// this palette is packed. The format never packs narrower than 4 bits, no
// matter how small the palette.
func (p *Palette) BitsPerBlock() int {
	if len(p.states) <= 1 {
		return 4
	}
	return max(4, bits.Len(uint(len(p.states)-1)))
}
