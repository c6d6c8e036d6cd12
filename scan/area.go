package scan

import (
	"iter"

	"github.com/df-mc/anvilscan/world"
)

// Area is a rectangle of chunk positions covered by an analysis, spanning
// [MinX,MaxX) on the x axis and [MinZ,MaxZ) on the z axis.
type Area struct {
	MinX, MaxX, MinZ, MaxZ int32
}

// AreaFromBounds returns the Area covering the inclusive chunk rectangle
// between min and max, as returned by a store's bounds scan.
func AreaFromBounds(min, max world.ChunkPos) Area {
	return Area{MinX: min.X(), MaxX: max.X() + 1, MinZ: min.Z(), MaxZ: max.Z() + 1}
}

// Width returns the number of chunks the area spans on the x axis.
func (a Area) Width() int {
	return max(0, int(a.MaxX-a.MinX))
}

// Height returns the number of chunks the area spans on the z axis.
func (a Area) Height() int {
	return max(0, int(a.MaxZ-a.MinZ))
}

// Visual translates the chunk position passed to zero-origin raster
// coordinates within the area, with x growing right and z growing down.
func (a Area) Visual(pos world.ChunkPos) (x, z int) {
	return int(pos.X() - a.MinX), int(pos.Z() - a.MinZ)
}

// All iterates over the chunk positions of the area in raster order: z
// ascending in the outer loop, x ascending in the inner loop, so that the
// traversal matches an image scanned row by row from the top.
func (a Area) All() iter.Seq[world.ChunkPos] {
	return func(yield func(world.ChunkPos) bool) {
		for z := a.MinZ; z < a.MaxZ; z++ {
			for x := a.MinX; x < a.MaxX; x++ {
				if !yield(world.ChunkPos{x, z}) {
					return
				}
			}
		}
	}
}
