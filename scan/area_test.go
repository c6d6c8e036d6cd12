package scan

import (
	"slices"
	"testing"

	"github.com/df-mc/anvilscan/world"
)

func TestAreaAll(t *testing.T) {
	area := Area{MinX: -1, MaxX: 1, MinZ: 0, MaxZ: 2}
	want := []world.ChunkPos{{-1, 0}, {0, 0}, {-1, 1}, {0, 1}}
	if got := slices.Collect(area.All()); !slices.Equal(got, want) {
		t.Fatalf("expected traversal %v, got %v", want, got)
	}
	if area.Width() != 2 || area.Height() != 2 {
		t.Fatalf("expected a 2x2 area, got %vx%v", area.Width(), area.Height())
	}
	if x, z := area.Visual(world.ChunkPos{-1, 0}); x != 0 || z != 0 {
		t.Fatalf("expected the lower corner at the raster origin, got (%v,%v)", x, z)
	}
	if x, z := area.Visual(world.ChunkPos{0, 1}); x != 1 || z != 1 {
		t.Fatalf("expected visual coordinates (1,1), got (%v,%v)", x, z)
	}
}

func TestAreaEmpty(t *testing.T) {
	for _, area := range []Area{
		{MinX: 3, MaxX: 3, MinZ: 0, MaxZ: 2},
		{MinX: 3, MaxX: 1, MinZ: 0, MaxZ: 2},
		{},
	} {
		if got := slices.Collect(area.All()); len(got) != 0 {
			t.Fatalf("expected no positions in %v, got %v", area, got)
		}
		if area.Width() != 0 && area.Height() != 0 {
			t.Fatalf("expected %v to span no chunks", area)
		}
	}
}

func TestAreaFromBounds(t *testing.T) {
	area := AreaFromBounds(world.ChunkPos{-2, 0}, world.ChunkPos{2, 3})
	if area != (Area{MinX: -2, MaxX: 3, MinZ: 0, MaxZ: 4}) {
		t.Fatalf("expected the bounds to be covered inclusively, got %v", area)
	}
	if area.Width() != 5 || area.Height() != 4 {
		t.Fatalf("expected a 5x4 area, got %vx%v", area.Width(), area.Height())
	}
}
