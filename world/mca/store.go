package mca

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Tnze/go-mc/save/region"
	"github.com/df-mc/anvilscan/world"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// Compression types of chunk payloads as stored in region files.
const (
	compressionGZip = 1
	compressionZlib = 2
)

// Config holds the options for opening a Store.
type Config struct {
	// Log is the Logger used for debug output of the Store. If nil, Log is
	// set to slog.Default().
	Log *slog.Logger
}

// Open opens the folder at dir as a store of Anvil region files named
// r.<x>.<z>.mca. The folder must exist; region files within it are opened
// lazily as chunks are requested.
func (conf Config) Open(dir string) (*Store, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open region store: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open region store: %v is not a directory", dir)
	}
	return &Store{conf: conf, dir: dir, regions: make(map[[2]int32]*region.Region)}, nil
}

// Store reads chunk columns from a folder of Anvil region files. It keeps
// every region file it has touched open until it is closed. Store implements
// world.Source.
type Store struct {
	conf    Config
	dir     string
	regions map[[2]int32]*region.Region
}

// LoadColumn reads and parses the serialised column at the chunk position
// passed. An error is returned if the owning region file does not exist, the
// chunk is not present within it, or its payload does not parse.
func (s *Store) LoadColumn(pos world.ChunkPos) (world.ColumnData, error) {
	rx, rz := pos.X()>>5, pos.Z()>>5
	r, err := s.region(rx, rz)
	if err != nil {
		return world.ColumnData{}, err
	}
	x, z := region.In(int(pos.X()), int(pos.Z()))
	if !r.ExistSector(x, z) {
		return world.ColumnData{}, fmt.Errorf("%v holds no chunk at %v", regionName(rx, rz), pos)
	}
	payload, err := r.ReadSector(x, z)
	if err != nil {
		return world.ColumnData{}, fmt.Errorf("read chunk %v from %v: %w", pos, regionName(rx, rz), err)
	}
	data, err := parseColumn(payload)
	if err != nil {
		return world.ColumnData{}, fmt.Errorf("parse chunk %v: %w", pos, err)
	}
	return data, nil
}

// Bounds scans the headers of every region file in the store's folder and
// returns the smallest chunk rectangle that contains all chunks present,
// both corners inclusive. An error is returned if the folder holds no
// chunks at all.
func (s *Store) Bounds() (min, max world.ChunkPos, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return min, max, fmt.Errorf("region store bounds: %w", err)
	}
	found := false
	for _, entry := range entries {
		var rx, rz int32
		if entry.IsDir() {
			continue
		}
		if n, _ := fmt.Sscanf(entry.Name(), "r.%d.%d.mca", &rx, &rz); n != 2 {
			continue
		}
		r, err := s.region(rx, rz)
		if err != nil {
			return min, max, err
		}
		for x := 0; x < 32; x++ {
			for z := 0; z < 32; z++ {
				if !r.ExistSector(x, z) {
					continue
				}
				pos := world.ChunkPos{rx<<5 + int32(x), rz<<5 + int32(z)}
				if !found {
					min, max, found = pos, pos, true
					continue
				}
				if pos.X() < min[0] {
					min[0] = pos.X()
				}
				if pos.Z() < min[1] {
					min[1] = pos.Z()
				}
				if pos.X() > max[0] {
					max[0] = pos.X()
				}
				if pos.Z() > max[1] {
					max[1] = pos.Z()
				}
			}
		}
	}
	if !found {
		return min, max, fmt.Errorf("region store bounds: no chunks in %v", s.dir)
	}
	return min, max, nil
}

// Close closes all region files the Store has opened.
func (s *Store) Close() error {
	var err error
	for pos, r := range s.regions {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close region %v: %w", regionName(pos[0], pos[1]), cerr)
		}
	}
	s.regions = make(map[[2]int32]*region.Region)
	return err
}

// region returns the region file holding the region coordinates passed,
// opening it if this is the first chunk requested from it.
func (s *Store) region(rx, rz int32) (*region.Region, error) {
	if r, ok := s.regions[[2]int32{rx, rz}]; ok {
		return r, nil
	}
	name := regionName(rx, rz)
	r, err := region.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open region %v: %w", name, err)
	}
	s.conf.Log.Debug("Opened region file.", "Name", name)
	s.regions[[2]int32{rx, rz}] = r
	return r, nil
}

// parseColumn decompresses and decodes a raw chunk payload, whose first byte
// selects the compression of the NBT data after it.
func parseColumn(payload []byte) (world.ColumnData, error) {
	var data world.ColumnData
	if len(payload) == 0 {
		return data, fmt.Errorf("empty payload")
	}
	var r io.Reader = bytes.NewReader(payload[1:])
	switch payload[0] {
	case compressionGZip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return data, fmt.Errorf("gzip payload: %w", err)
		}
		defer gr.Close()
		r = gr
	case compressionZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return data, fmt.Errorf("zlib payload: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return data, fmt.Errorf("unsupported compression type %v", payload[0])
	}
	if err := nbt.NewDecoderWithEncoding(r, nbt.BigEndian).Decode(&data); err != nil {
		return data, fmt.Errorf("decode nbt: %w", err)
	}
	return data, nil
}

func regionName(rx, rz int32) string {
	return fmt.Sprintf("r.%v.%v.mca", rx, rz)
}
