package world

// ChunkPos holds the position of a chunk. The type is provided as a utility
// struct for keeping track of a chunk's position. Chunk positions are
// different from block positions in the way that increasing the X/Z by one
// means increasing the absolute value on the X/Z axis in terms of blocks by
// 16.
type ChunkPos [2]int32

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int32 {
	return p[0]
}

// Z returns the Z coordinate of the chunk position.
func (p ChunkPos) Z() int32 {
	return p[1]
}

// BlockPos holds the position of a block in the world. The position is
// absolute: it is not relative to a chunk or section.
type BlockPos [3]int

// X returns the X coordinate of the block position.
func (p BlockPos) X() int {
	return p[0]
}

// Y returns the Y coordinate of the block position.
func (p BlockPos) Y() int {
	return p[1]
}

// Z returns the Z coordinate of the block position.
func (p BlockPos) Z() int {
	return p[2]
}

// Add returns the position with another position added to it.
func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// ChunkPosFromBlockPos returns the position of the chunk that the block
// position passed falls in. The shift keeps floor semantics for negative
// coordinates, unlike a plain division by 16.
func ChunkPosFromBlockPos(p BlockPos) ChunkPos {
	return ChunkPos{int32(p[0] >> 4), int32(p[2] >> 4)}
}
