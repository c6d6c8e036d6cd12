package world

// ColumnData is the tagged shape a chunk column is serialised in by region
// files of the 1.13 through 1.17 save format. It carries only the tags this
// tool reads; anything else in the compound is skipped by the NBT decoder.
type ColumnData struct {
	Level LevelData `nbt:"Level"`
}

// LevelData holds the column position and the section list of a column.
type LevelData struct {
	X        int32         `nbt:"xPos"`
	Z        int32         `nbt:"zPos"`
	Sections []SectionData `nbt:"Sections"`
}

// SectionData is one serialised section. Sections with no BlockStates carry
// no block data at all and decode to an absent section rather than an all-air
// one.
type SectionData struct {
	Y           uint8          `nbt:"Y"`
	Palette     []PaletteEntry `nbt:"Palette"`
	BlockStates []int64        `nbt:"BlockStates"`
}

// PaletteEntry is a single declared palette state. Property tags that would
// distinguish sub-states of the same block are ignored, so two entries may
// well hold the same name.
type PaletteEntry struct {
	Name string `nbt:"Name"`
}

// Source supplies serialised column data to a Loader. Implementations report
// an error for any requested position they have no data for: valid input
// worlds are expected to contain every column an analysis touches.
type Source interface {
	LoadColumn(pos ChunkPos) (ColumnData, error)
}
