package scan

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/df-mc/anvilscan/world"
)

// VeinConfig holds the options for creating a VeinAnalyzer.
type VeinConfig struct {
	// Log is the Logger used for progress and summary output. If nil, Log is
	// set to slog.Default().
	Log *slog.Logger
	// Loader supplies the decoded columns searched for veins. Loader must
	// not be nil. Its section range decides how high up the search looks.
	Loader *world.Loader
	// Targets are the block state names counted as ore. Different names in
	// the set are treated as one material, so a cluster mixing them forms a
	// single vein.
	Targets []string
	// MaxSize is the vein size from which a connected cluster no longer
	// counts as a vein. Clusters reaching it are discarded entirely rather
	// than capped. Defaults to 16.
	MaxSize int
}

// VeinAnalyzer finds connected clusters of target blocks in an area by
// flood filling outward from every target block it passes. Clusters are
// followed across section and chunk borders, paging columns in as needed.
// Found veins accumulate across multiple analysis passes.
type VeinAnalyzer struct {
	conf    VeinConfig
	targets map[string]struct{}

	// found holds the location of every accepted vein. Flood fills running
	// into one of these abort, so a vein bordering two analysis passes is
	// only counted once.
	found map[world.BlockPos]struct{}
	// veins counts accepted veins by their size and the height of their
	// location.
	veins map[veinKey]uint32
	// chunks counts analysed chunks by the number of ore blocks in them.
	chunks map[int]uint32
	// tally counts ore blocks seen per target state name.
	tally map[string]uint64
}

// veinKey is one cell of the joint vein histogram.
type veinKey struct {
	size   int
	height int
}

// vein is a cluster in the process of being flood filled. Only its summary
// survives acceptance; a rejected vein leaves no trace at all.
type vein struct {
	members map[world.BlockPos]struct{}
	// location is the lexicographically smallest member by (x, y, z).
	location world.BlockPos
}

// New creates a VeinAnalyzer using the fields of conf.
func (conf VeinConfig) New() *VeinAnalyzer {
	if conf.Loader == nil {
		panic("vein analyzer: no loader set")
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.MaxSize <= 0 {
		conf.MaxSize = 16
	}
	targets := make(map[string]struct{}, len(conf.Targets))
	for _, t := range conf.Targets {
		targets[t] = struct{}{}
	}
	return &VeinAnalyzer{
		conf:    conf,
		targets: targets,
		found:   make(map[world.BlockPos]struct{}),
		veins:   make(map[veinKey]uint32),
		chunks:  make(map[int]uint32),
		tally:   make(map[string]uint64),
	}
}

// Analyze flood fills every target block in the area passed and returns the
// heat map of the pass. Histograms and the set of found vein locations carry
// over to later passes, so scanning two adjacent areas does not count a vein
// on their border twice. Locations strictly behind the new area's lower
// corner are forgotten first to keep that set bounded.
func (a *VeinAnalyzer) Analyze(area Area) (*Heatmap, error) {
	a.prune(area)
	hm := newHeatmap(area)
	for pos := range area.All() {
		col, err := a.conf.Loader.Column(pos)
		if err != nil {
			return nil, err
		}
		a.conf.Log.Info("Analyzing chunk.", "X", pos.X(), "Z", pos.Z(), "Found", len(a.found))
		count, err := a.analyzeColumn(col)
		if err != nil {
			return nil, err
		}
		a.chunks[count]++
		hm.set(pos, count)
	}
	return hm, nil
}

// analyzeColumn seeds a flood fill at every target block of the column and
// returns how many target blocks the column holds.
func (a *VeinAnalyzer) analyzeColumn(col *world.Column) (int, error) {
	count := 0
	for s := range col.Sections() {
		for pos, state := range s.Blocks() {
			if _, ok := a.targets[state]; !ok {
				continue
			}
			count++
			a.tally[state]++

			v := &vein{members: make(map[world.BlockPos]struct{}), location: pos}
			ok, err := a.explore(v, pos)
			if err != nil {
				return 0, err
			}
			if ok {
				a.found[v.location] = struct{}{}
				a.veins[veinKey{size: len(v.members), height: v.location.Y()}]++
			}
		}
	}
	return count, nil
}

// explore grows the vein around pos recursively. The bool returned is false
// if the whole cluster must be discarded, either because it would grow past
// the size cap or because it ran into a previously found vein; everything
// collected so far is dropped with it. A position that is no ore, or sits in
// a section that holds no data, is a dead end but no reason to discard.
func (a *VeinAnalyzer) explore(v *vein, pos world.BlockPos) (bool, error) {
	if _, ok := a.found[pos]; ok {
		return false, nil
	}
	if _, ok := v.members[pos]; ok {
		return true, nil
	}
	state, ok, err := a.conf.Loader.BlockState(pos)
	if err != nil {
		return false, err
	}
	if ok {
		if _, ok := a.targets[state]; ok {
			if len(v.members) >= a.conf.MaxSize {
				return false, nil
			}
			v.members[pos] = struct{}{}
			if lexLess(pos, v.location) {
				v.location = pos
			}
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for dz := -1; dz <= 1; dz++ {
						ok, err := a.explore(v, pos.Add(world.BlockPos{dx, dy, dz}))
						if err != nil {
							return false, err
						}
						if !ok {
							return false, nil
						}
					}
				}
			}
		}
	}
	return len(v.members) > 0, nil
}

// prune drops found vein locations that lie strictly behind the area about
// to be analysed on both horizontal axes. Raster order traversal never
// returns to such positions, so they can no longer suppress anything.
func (a *VeinAnalyzer) prune(area Area) {
	minX, minZ := int(area.MinX)<<4, int(area.MinZ)<<4
	for pos := range a.found {
		if pos.X() < minX && pos.Z() < minZ {
			delete(a.found, pos)
		}
	}
}

// lexLess reports whether a orders before b comparing x first, then y, then
// z.
func lexLess(a, b world.BlockPos) bool {
	if a.X() != b.X() {
		return a.X() < b.X()
	}
	if a.Y() != b.Y() {
		return a.Y() < b.Y()
	}
	return a.Z() < b.Z()
}

// WriteCSV writes the vein histograms to w: first the number of chunks seen
// per ore count, then, after a blank line, a table of vein counts with one
// column per vein size and one row per height at which veins were found.
func (a *VeinAnalyzer) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Number of diamonds", "Chunks"}); err != nil {
		return fmt.Errorf("write vein csv: %w", err)
	}
	for _, count := range slices.Sorted(maps.Keys(a.chunks)) {
		err := cw.Write([]string{strconv.Itoa(count), strconv.FormatUint(uint64(a.chunks[count]), 10)})
		if err != nil {
			return fmt.Errorf("write vein csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write vein csv: %w", err)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write vein csv: %w", err)
	}

	sizes := make(map[int]struct{})
	heights := make(map[int]struct{})
	for key := range a.veins {
		sizes[key.size] = struct{}{}
		heights[key.height] = struct{}{}
	}
	sizeList := slices.Sorted(maps.Keys(sizes))
	header := []string{"Veins"}
	for _, size := range sizeList {
		header = append(header, strconv.Itoa(size))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write vein csv: %w", err)
	}
	for _, height := range slices.Sorted(maps.Keys(heights)) {
		row := []string{strconv.Itoa(height)}
		for _, size := range sizeList {
			row = append(row, strconv.FormatUint(uint64(a.veins[veinKey{size: size, height: height}]), 10))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write vein csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write vein csv: %w", err)
	}
	return nil
}

// LogSummary writes the per-target tallies and the total number of accepted
// veins to the analyzer's logger.
func (a *VeinAnalyzer) LogSummary() {
	var veins uint64
	for _, count := range a.veins {
		veins += uint64(count)
	}
	var blocks uint64
	for _, count := range a.tally {
		blocks += count
	}
	a.conf.Log.Info("Vein scan complete.", "Veins", veins, "Blocks", blocks)
	for _, state := range slices.Sorted(maps.Keys(a.tally)) {
		a.conf.Log.Debug("Ore blocks found.", "State", state, "Count", a.tally[state])
	}
}
