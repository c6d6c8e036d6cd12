package scan

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/df-mc/anvilscan/world"
)

// Composition tallies how often every block state occurs in an area, both in
// total and split out by world layer. It is the simple consumer of the
// column cache: no search, just one pass over every decoded block.
type Composition struct {
	log    *slog.Logger
	loader *world.Loader

	totals map[string]uint64
	layers map[int]map[string]uint64
}

// NewComposition returns a Composition reading columns from the loader
// passed. If log is nil, slog.Default() is used.
func NewComposition(log *slog.Logger, loader *world.Loader) *Composition {
	if log == nil {
		log = slog.Default()
	}
	return &Composition{
		log:    log,
		loader: loader,
		totals: make(map[string]uint64),
		layers: make(map[int]map[string]uint64),
	}
}

// Analyze counts the blocks of every chunk in the area passed. It may be
// called multiple times with different areas; counts accumulate.
func (c *Composition) Analyze(area Area) error {
	for pos := range area.All() {
		col, err := c.loader.Column(pos)
		if err != nil {
			return err
		}
		c.log.Info("Analyzing chunk.", "X", pos.X(), "Z", pos.Z())
		for s := range col.Sections() {
			for pos, state := range s.Blocks() {
				c.totals[state]++
				layer := c.layers[pos.Y()]
				if layer == nil {
					layer = make(map[string]uint64)
					c.layers[pos.Y()] = layer
				}
				layer[state]++
			}
		}
	}
	return nil
}

// WriteCSV writes the tallied counts to w: a header row naming every block
// state seen, ordered by falling total count, one row per layer that held
// any blocks, in ascending order, and a closing row with the totals.
func (c *Composition) WriteCSV(w io.Writer) error {
	states := slices.SortedFunc(maps.Keys(c.totals), func(a, b string) int {
		if d := cmp.Compare(c.totals[b], c.totals[a]); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Layer"}, states...)); err != nil {
		return fmt.Errorf("write composition csv: %w", err)
	}
	row := make([]string, len(states)+1)
	for _, y := range slices.Sorted(maps.Keys(c.layers)) {
		row[0] = strconv.Itoa(y)
		for i, state := range states {
			row[i+1] = strconv.FormatUint(c.layers[y][state], 10)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write composition csv: %w", err)
		}
	}
	row[0] = "Total"
	for i, state := range states {
		row[i+1] = strconv.FormatUint(c.totals[state], 10)
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("write composition csv: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write composition csv: %w", err)
	}
	return nil
}
