package world

import (
	"fmt"
	"log/slog"
	"slices"
)

// LoaderConfig holds the options for creating a Loader.
type LoaderConfig struct {
	// Log is the Logger used for debug output of the Loader. If nil, Log is
	// set to slog.Default().
	Log *slog.Logger
	// Source supplies the serialised columns the Loader pages in. Source must
	// not be nil.
	Source Source
	// Capacity is the number of decoded columns kept in memory at once. It
	// defaults to 32, enough to keep the horizontal footprint of a vein
	// search resident without holding on to a whole region.
	Capacity int
	// Sections bounds the vertical section indices decoded from each column.
	// The zero range decodes all of them. Queries outside the range see the
	// filtered sections as absent.
	Sections SectionRange
	// Palette is the global palette decoded columns share. If nil, a fresh
	// one is created for the Loader.
	Palette *Palette
	// Metrics, if set, receives counters on loads, hits and evictions.
	Metrics *LoaderMetrics
}

// Loader lazily pages chunk columns in from a Source and keeps the most
// recently used of them decoded in memory. It is the single owner of its
// cache: methods must not be called concurrently.
type Loader struct {
	conf    LoaderConfig
	dec     *Decoder
	columns map[ChunkPos]*Column
	// recency holds every cached position exactly once, least recently used
	// first.
	recency []ChunkPos
}

// New creates a Loader using the fields of conf.
func (conf LoaderConfig) New() *Loader {
	if conf.Source == nil {
		panic("loader: no source set")
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Capacity <= 0 {
		conf.Capacity = 32
	}
	if conf.Palette == nil {
		conf.Palette = NewGlobalPalette()
	}
	return &Loader{
		conf:    conf,
		dec:     &Decoder{Global: conf.Palette, Sections: conf.Sections},
		columns: make(map[ChunkPos]*Column, conf.Capacity),
	}
}

// Column returns the decoded column at the position passed, loading it from
// the Loader's source if it is not cached. Loading a column past the
// Loader's capacity evicts the least recently used column. An error is
// returned if the source has no data for the position or its data does not
// decode: input worlds are expected to contain every column that is asked
// of them.
func (l *Loader) Column(pos ChunkPos) (*Column, error) {
	if c, ok := l.columns[pos]; ok {
		l.touch(pos)
		l.conf.Metrics.addHit()
		return c, nil
	}
	data, err := l.conf.Source.LoadColumn(pos)
	if err != nil {
		return nil, fmt.Errorf("load column %v: %w", pos, err)
	}
	c, err := l.dec.DecodeColumn(pos, data)
	if err != nil {
		return nil, err
	}
	l.columns[pos] = c
	l.recency = append(l.recency, pos)
	l.conf.Metrics.addLoad()
	for len(l.columns) > l.conf.Capacity {
		oldest := l.recency[0]
		l.recency = l.recency[1:]
		delete(l.columns, oldest)
		l.conf.Metrics.addEviction()
		l.conf.Log.Debug("Evicted column.", "X", oldest.X(), "Z", oldest.Z())
	}
	return c, nil
}

// BlockState returns the block state name at the world position passed,
// loading the owning column as needed. The bool returned is false if no
// section covers the position, either because the column never had data
// there or because the Loader's section range filtered it out. An error is
// only returned if loading the owning column fails.
func (l *Loader) BlockState(pos BlockPos) (string, bool, error) {
	if pos.Y() < 0 || pos.Y() > 255 {
		return "", false, nil
	}
	c, err := l.Column(ChunkPosFromBlockPos(pos))
	if err != nil {
		return "", false, err
	}
	state, ok := c.Block(pos.X()&15, pos.Y(), pos.Z()&15)
	return state, ok, nil
}

// Palette returns the global palette shared by the columns the Loader has
// decoded.
func (l *Loader) Palette() *Palette {
	return l.conf.Palette
}

// touch moves pos to the most recently used end of the recency queue.
func (l *Loader) touch(pos ChunkPos) {
	i := slices.Index(l.recency, pos)
	l.recency = append(slices.Delete(l.recency, i, i+1), pos)
}
