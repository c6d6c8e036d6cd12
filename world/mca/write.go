package mca

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/Tnze/go-mc/save/region"
	"github.com/df-mc/anvilscan/world"
	"github.com/klauspost/compress/zlib"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// WriteColumn serialises the column data passed into the region folder at
// dir, creating the owning region file if it does not exist yet. The chunk
// position is taken from the data itself. WriteColumn exists to assemble
// small worlds for tests and tools, not for bulk writing: it opens and
// closes the region file on every call.
func WriteColumn(dir string, data world.ColumnData) error {
	cx, cz := data.Level.X, data.Level.Z
	name := regionName(cx>>5, cz>>5)
	path := filepath.Join(dir, name)

	r, err := region.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		r, err = region.Create(path)
	}
	if err != nil {
		return fmt.Errorf("open region %v: %w", name, err)
	}
	payload, err := encodeColumn(data)
	if err != nil {
		_ = r.Close()
		return fmt.Errorf("encode chunk (%v,%v): %w", cx, cz, err)
	}
	x, z := region.In(int(cx), int(cz))
	if err := r.WriteSector(x, z, payload); err != nil {
		_ = r.Close()
		return fmt.Errorf("write chunk (%v,%v) to %v: %w", cx, cz, name, err)
	}
	return r.Close()
}

// encodeColumn produces a zlib compressed chunk payload, including the
// leading compression type byte.
func encodeColumn(data world.ColumnData) ([]byte, error) {
	raw, err := nbt.MarshalEncoding(data, nbt.BigEndian)
	if err != nil {
		return nil, fmt.Errorf("encode nbt: %w", err)
	}
	buf := bytes.NewBuffer([]byte{compressionZlib})
	w := zlib.NewWriter(buf)
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}
	return buf.Bytes(), nil
}
