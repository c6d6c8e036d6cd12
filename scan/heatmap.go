package scan

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/df-mc/anvilscan/world"
)

// Heatmap is the raster a vein analysis paints its ore density on, one pixel
// per chunk of the analysed area. Chunks grow darker with the number of ore
// blocks found in them.
type Heatmap struct {
	area Area
	img  *image.RGBA
}

func newHeatmap(area Area) *Heatmap {
	img := image.NewRGBA(image.Rect(0, 0, area.Width(), area.Height()))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return &Heatmap{area: area, img: img}
}

// set paints the pixel of the chunk position passed. A count of 0 paints
// full blue; every ore block found darkens the pixel by 16 steps until it
// bottoms out at black.
func (h *Heatmap) set(pos world.ChunkPos, count int) {
	x, z := h.area.Visual(pos)
	brightness := max(0, 255-count*16)
	h.img.SetRGBA(x, z, color.RGBA{B: uint8(brightness), A: 0xff})
}

// WritePNG encodes the heat map as a PNG image at the path passed.
func (h *Heatmap) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write heat map: %w", err)
	}
	if err := png.Encode(f, h.img); err != nil {
		_ = f.Close()
		return fmt.Errorf("write heat map: %w", err)
	}
	return f.Close()
}
