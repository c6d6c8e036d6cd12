package world

// Block data of a section is stored as a sequence of 64 bit words, each
// holding floor(64/width) ids packed from the least significant bit up.
// Leftover high bits of a word are padding: ids never span two words.

// UnpackBlockStates decodes the packed words into a dense grid of 4096 ids in
// y*256 + z*16 + x order. Decoding stops after 4096 ids or when the words run
// out, whichever comes first; ids the words did not supply stay 0.
func UnpackBlockStates(words []int64, width int) [4096]uint32 {
	var ids [4096]uint32
	per := 64 / width
	mask := uint64(1)<<width - 1
	for i := range ids {
		w := i / per
		if w >= len(words) {
			break
		}
		ids[i] = uint32(uint64(words[w]) >> (i % per * width) & mask)
	}
	return ids
}

// PackBlockStates is the inverse of UnpackBlockStates. It packs the ids
// passed into as many words as they need, padding the unused high bits of
// each word with zero bits.
func PackBlockStates(ids []uint32, width int) []int64 {
	per := 64 / width
	mask := uint64(1)<<width - 1
	words := make([]int64, (len(ids)+per-1)/per)
	for i, id := range ids {
		words[i/per] |= int64(uint64(id) & mask << (i % per * width))
	}
	return words
}
