package world

import "testing"

func TestSectionBlocks(t *testing.T) {
	pal := NewSectionPalette([]string{Air, "minecraft:stone"})
	s := &Section{pos: ChunkPos{1, -1}, index: 2, pal: pal}
	s.blocks[2<<8|3<<4|1] = 1

	if state := s.At(1, 2, 3); state != "minecraft:stone" {
		t.Fatalf("expected minecraft:stone at (1,2,3), got %v", state)
	}
	if state := s.At(0, 0, 0); state != Air {
		t.Fatalf("expected air at (0,0,0), got %v", state)
	}

	var stone []BlockPos
	var n int
	for pos, state := range s.Blocks() {
		n++
		if state == "minecraft:stone" {
			stone = append(stone, pos)
		}
	}
	if n != 4096 {
		t.Fatalf("expected 4096 blocks in a section, got %v", n)
	}
	if len(stone) != 1 || stone[0] != (BlockPos{17, 34, -13}) {
		t.Fatalf("expected one stone block at (17,34,-13), got %v", stone)
	}
}

func TestChunkPosFromBlockPos(t *testing.T) {
	cases := []struct {
		pos   BlockPos
		chunk ChunkPos
	}{
		{BlockPos{0, 0, 0}, ChunkPos{0, 0}},
		{BlockPos{15, 64, 15}, ChunkPos{0, 0}},
		{BlockPos{16, 0, 31}, ChunkPos{1, 1}},
		{BlockPos{-1, 0, -1}, ChunkPos{-1, -1}},
		{BlockPos{-16, 0, -17}, ChunkPos{-1, -2}},
	}
	for _, c := range cases {
		if got := ChunkPosFromBlockPos(c.pos); got != c.chunk {
			t.Fatalf("expected chunk %v for block %v, got %v", c.chunk, c.pos, got)
		}
	}
}
