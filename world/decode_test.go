package world

import "testing"

func packedSection(y uint8, names []string, blocks map[int]uint32) SectionData {
	entries := make([]PaletteEntry, len(names))
	for i, name := range names {
		entries[i] = PaletteEntry{Name: name}
	}
	var ids [4096]uint32
	for offset, id := range blocks {
		ids[offset] = id
	}
	return SectionData{
		Y:           y,
		Palette:     entries,
		BlockStates: PackBlockStates(ids[:], NewSectionPalette(names).BitsPerBlock()),
	}
}

func TestDecodeColumn(t *testing.T) {
	data := ColumnData{Level: LevelData{X: 3, Z: -2, Sections: []SectionData{
		packedSection(0, []string{Air, "minecraft:stone"}, map[int]uint32{0: 1}),
		packedSection(1, []string{Air, "minecraft:stone"}, map[int]uint32{4095: 1}),
	}}}
	dec := &Decoder{Global: NewGlobalPalette()}
	c, err := dec.DecodeColumn(ChunkPos{3, -2}, data)
	if err != nil {
		t.Fatalf("expected column to decode: %v", err)
	}
	if state, ok := c.Block(0, 0, 0); !ok || state != "minecraft:stone" {
		t.Fatalf("expected minecraft:stone at (0,0,0), got %v", state)
	}
	if state, ok := c.Block(15, 31, 15); !ok || state != "minecraft:stone" {
		t.Fatalf("expected minecraft:stone at (15,31,15), got %v", state)
	}
	if state, ok := c.Block(1, 0, 0); !ok || state != Air {
		t.Fatalf("expected air at (1,0,0), got %v", state)
	}
	if c.Section(2) != nil {
		t.Fatalf("expected no section at index 2")
	}
	if len(dec.remap.tables) != 1 {
		t.Fatalf("expected both sections to share one remap table, got %v", len(dec.remap.tables))
	}
}

func TestDecodeColumnSharedGlobalIds(t *testing.T) {
	global := NewGlobalPalette()
	dec := &Decoder{Global: global}
	a, err := dec.DecodeColumn(ChunkPos{0, 0}, ColumnData{Level: LevelData{Sections: []SectionData{
		packedSection(0, []string{Air, "minecraft:stone", "minecraft:diamond_ore"}, map[int]uint32{0: 2}),
	}}})
	if err != nil {
		t.Fatalf("expected column to decode: %v", err)
	}
	b, err := dec.DecodeColumn(ChunkPos{1, 0}, ColumnData{Level: LevelData{X: 1, Sections: []SectionData{
		packedSection(0, []string{Air, "minecraft:diamond_ore"}, map[int]uint32{0: 1}),
	}}})
	if err != nil {
		t.Fatalf("expected column to decode: %v", err)
	}
	sa, sb := a.Section(0), b.Section(0)
	if sa.blocks[0] != sb.blocks[0] {
		t.Fatalf("expected minecraft:diamond_ore to share a global id, got %v and %v", sa.blocks[0], sb.blocks[0])
	}
	if global.Len() != 3 {
		t.Fatalf("expected 3 global states, got %v", global.Len())
	}
}

func TestDecodeColumnPositionMismatch(t *testing.T) {
	dec := &Decoder{}
	if _, err := dec.DecodeColumn(ChunkPos{0, 0}, ColumnData{Level: LevelData{X: 5, Z: 0}}); err == nil {
		t.Fatalf("expected an error decoding data of another column")
	}
}

func TestDecodeColumnIdOutOfRange(t *testing.T) {
	data := ColumnData{Level: LevelData{Sections: []SectionData{{
		Y:           0,
		Palette:     []PaletteEntry{{Name: Air}},
		BlockStates: PackBlockStates([]uint32{3}, 4),
	}}}}
	dec := &Decoder{}
	if _, err := dec.DecodeColumn(ChunkPos{0, 0}, data); err == nil {
		t.Fatalf("expected an error for a block id outside the palette")
	}
	dec = &Decoder{Global: NewGlobalPalette()}
	if _, err := dec.DecodeColumn(ChunkPos{0, 0}, data); err == nil {
		t.Fatalf("expected an error for a block id outside the palette")
	}
}

func TestDecodeColumnUnnamedPaletteEntry(t *testing.T) {
	data := ColumnData{Level: LevelData{Sections: []SectionData{{
		Y:           0,
		Palette:     []PaletteEntry{{Name: Air}, {}},
		BlockStates: PackBlockStates([]uint32{1}, 4),
	}}}}
	dec := &Decoder{}
	if _, err := dec.DecodeColumn(ChunkPos{0, 0}, data); err == nil {
		t.Fatalf("expected an error for a palette entry without a Name")
	}
}

func TestDecodeColumnSkipsSections(t *testing.T) {
	data := ColumnData{Level: LevelData{Sections: []SectionData{
		{Y: 0, Palette: []PaletteEntry{{Name: Air}, {Name: "minecraft:stone"}}},
		packedSection(255, []string{Air, "minecraft:stone"}, map[int]uint32{0: 1}),
		packedSection(16, []string{Air, "minecraft:stone"}, map[int]uint32{0: 1}),
		packedSection(2, []string{Air, "minecraft:stone"}, map[int]uint32{0: 1}),
	}}}
	dec := &Decoder{}
	c, err := dec.DecodeColumn(ChunkPos{0, 0}, data)
	if err != nil {
		t.Fatalf("expected out of range sections to be skipped: %v", err)
	}
	if c.Section(0) != nil {
		t.Fatalf("expected the section without block data to be absent")
	}
	if c.Section(2) == nil {
		t.Fatalf("expected section 2 to be decoded")
	}
	if _, ok := c.Block(0, 0, 0); ok {
		t.Fatalf("expected no block where no section was decoded")
	}
}

func TestDecodeColumnSectionRange(t *testing.T) {
	data := ColumnData{Level: LevelData{Sections: []SectionData{
		packedSection(1, []string{Air, "minecraft:stone"}, map[int]uint32{0: 1}),
		packedSection(5, []string{Air, "minecraft:stone"}, map[int]uint32{0: 1}),
	}}}
	dec := &Decoder{Sections: SectionRange{Min: 0, Max: 4}}
	c, err := dec.DecodeColumn(ChunkPos{0, 0}, data)
	if err != nil {
		t.Fatalf("expected column to decode: %v", err)
	}
	if c.Section(1) == nil || c.Section(5) != nil {
		t.Fatalf("expected only sections inside the range to be decoded")
	}
}

func TestDecodeColumnAirShifted(t *testing.T) {
	// A palette not starting with air has air inserted in front, shifting
	// every declared state up by one.
	data := ColumnData{Level: LevelData{Sections: []SectionData{
		packedSection(0, []string{"minecraft:stone"}, map[int]uint32{0: 1}),
	}}}
	dec := &Decoder{}
	c, err := dec.DecodeColumn(ChunkPos{0, 0}, data)
	if err != nil {
		t.Fatalf("expected column to decode: %v", err)
	}
	if state, _ := c.Block(0, 0, 0); state != "minecraft:stone" {
		t.Fatalf("expected minecraft:stone at shifted id 1, got %v", state)
	}
	if state, _ := c.Block(1, 0, 0); state != Air {
		t.Fatalf("expected id 0 to decode to air, got %v", state)
	}
}
