package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/df-mc/anvilscan/world"
	"github.com/df-mc/anvilscan/world/mca"
)

// sectiondump prints the declared section palettes of a single chunk in a
// region folder, with the number of non-air blocks per section. Useful for
// poking at a world while debugging decode issues.
func main() {
	x := flag.Int("x", 0, "chunk x coordinate")
	z := flag.Int("z", 0, "chunk z coordinate")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sectiondump [-x n] [-z n] <region-folder>")
		os.Exit(1)
	}

	store, err := mca.Config{}.Open(flag.Arg(0))
	if err != nil {
		panic(err)
	}
	defer store.Close()

	pos := world.ChunkPos{int32(*x), int32(*z)}
	data, err := store.LoadColumn(pos)
	if err != nil {
		panic(err)
	}
	var dec world.Decoder
	col, err := dec.DecodeColumn(pos, data)
	if err != nil {
		panic(err)
	}

	for _, sec := range data.Level.Sections {
		index := int8(sec.Y)
		fmt.Printf("section %v: %v declared states", index, len(sec.Palette))
		if sec.BlockStates == nil {
			fmt.Println(", no block data")
			continue
		}
		fmt.Printf(", %v non-air blocks\n", countNonAir(col.Section(int(index))))
		for i, entry := range sec.Palette {
			fmt.Printf("  %2d %v\n", i, entry.Name)
		}
	}
}

func countNonAir(s *world.Section) int {
	if s == nil {
		return 0
	}
	count := 0
	for _, state := range s.Blocks() {
		if state != world.Air {
			count++
		}
	}
	return count
}
