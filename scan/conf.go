package scan

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/df-mc/anvilscan/world"
	"github.com/df-mc/anvilscan/world/mca"
)

// Mode selects which analysis a run performs.
type Mode string

const (
	// ModeComposition tallies block state counts per world layer.
	ModeComposition Mode = "composition"
	// ModeVeins searches for connected ore veins and renders a heat map.
	ModeVeins Mode = "veins"
)

// Config contains options for running an analysis over a region folder.
type Config struct {
	// Log is the Logger to use for progress and diagnostics. Progress is
	// written at info level, one line per chunk. If nil, Log is set to
	// slog.Default().
	Log *slog.Logger
	// Dir is the path of the region folder to analyse.
	Dir string
	// Mode is the analysis to run.
	Mode Mode
	// Output is the destination of the CSV report. If nil, Output is set to
	// os.Stdout.
	Output io.Writer
	// CacheSize is the number of decoded chunk columns kept in memory. If 0,
	// the loader default of 32 is used.
	CacheSize int
	// Area is the chunk rectangle to analyse. It is ignored if AutoArea is
	// set.
	Area Area
	// AutoArea derives the analysed rectangle from the chunks present in the
	// region files instead of using Area.
	AutoArea bool
	// Targets are the block state names the vein search treats as ore.
	Targets []string
	// MaxVeinSize is the cluster size from which veins are discarded.
	MaxVeinSize int
	// SectionLimit is the number of sections, from the bottom of the world
	// up, the vein search decodes. Ore outside them is invisible to it.
	SectionLimit int
	// ImagePath is the file the vein heat map is written to.
	ImagePath string
}

// Run opens the region folder and performs the configured analysis, writing
// the CSV report to the configured output. Any missing chunk, malformed
// column or failing write aborts the run with an error.
func (conf Config) Run() error {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Output == nil {
		conf.Output = os.Stdout
	}
	store, err := mca.Config{Log: conf.Log}.Open(conf.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	area := conf.Area
	if conf.AutoArea {
		min, max, err := store.Bounds()
		if err != nil {
			return err
		}
		area = AreaFromBounds(min, max)
		conf.Log.Info("Derived area from region files.", "MinX", area.MinX, "MaxX", area.MaxX, "MinZ", area.MinZ, "MaxZ", area.MaxZ)
	}

	metrics := &world.LoaderMetrics{}
	switch conf.Mode {
	case ModeComposition:
		loader := world.LoaderConfig{
			Log:      conf.Log,
			Source:   store,
			Capacity: conf.CacheSize,
			Metrics:  metrics,
		}.New()
		c := NewComposition(conf.Log, loader)
		if err := c.Analyze(area); err != nil {
			return err
		}
		if err := c.WriteCSV(conf.Output); err != nil {
			return err
		}
	case ModeVeins:
		loader := world.LoaderConfig{
			Log:      conf.Log,
			Source:   store,
			Capacity: conf.CacheSize,
			Sections: world.SectionRange{Min: 0, Max: conf.SectionLimit},
			Metrics:  metrics,
		}.New()
		v := VeinConfig{
			Log:     conf.Log,
			Loader:  loader,
			Targets: conf.Targets,
			MaxSize: conf.MaxVeinSize,
		}.New()
		hm, err := v.Analyze(area)
		if err != nil {
			return err
		}
		if err := v.WriteCSV(conf.Output); err != nil {
			return err
		}
		if err := hm.WritePNG(conf.ImagePath); err != nil {
			return err
		}
		v.LogSummary()
	default:
		return fmt.Errorf("unknown mode %q", conf.Mode)
	}
	conf.Log.Debug("Cache statistics.", "Loads", metrics.Loads, "Hits", metrics.Hits, "Evictions", metrics.Evictions)
	return nil
}

// UserConfig is the user configuration of the analyzer as serialised to
// anvilscan.toml. It holds every knob except the region folder, which is
// taken from the command line. UserConfig may be converted to a Config by
// calling UserConfig.Config().
type UserConfig struct {
	Scan struct {
		// Mode is the analysis to run, either "composition" or "veins".
		Mode string
		// CacheSize is the number of decoded chunk columns kept in memory
		// at once.
		CacheSize int
	}
	Area struct {
		// Auto derives the analysed rectangle from the chunks present in
		// the region files. The bounds below are ignored while it is set.
		Auto bool
		// MinX and MinZ are the lowest chunk coordinates analysed.
		MinX, MinZ int32
		// MaxX and MaxZ bound the analysed rectangle exclusively: the
		// chunks at these coordinates are no longer part of it.
		MaxX, MaxZ int32
	}
	Veins struct {
		// Targets are the block state names counted as ore.
		Targets []string
		// MaxSize is the cluster size from which veins are discarded as
		// unnatural.
		MaxSize int
		// SectionLimit is the number of sections, from the bottom of the
		// world up, the vein search reads. Ore above is not searched.
		SectionLimit int
		// Image is the file the heat map is written to.
		Image string
	}
}

// Config converts a UserConfig to a Config for the region folder passed. An
// error is returned if the mode is unknown or the configured area is empty
// while Auto is disabled.
func (uc UserConfig) Config(log *slog.Logger, dir string) (Config, error) {
	conf := Config{
		Log:          log,
		Dir:          dir,
		Mode:         Mode(strings.ToLower(strings.TrimSpace(uc.Scan.Mode))),
		CacheSize:    uc.Scan.CacheSize,
		AutoArea:     uc.Area.Auto,
		Area:         Area{MinX: uc.Area.MinX, MaxX: uc.Area.MaxX, MinZ: uc.Area.MinZ, MaxZ: uc.Area.MaxZ},
		Targets:      uc.Veins.Targets,
		MaxVeinSize:  uc.Veins.MaxSize,
		SectionLimit: uc.Veins.SectionLimit,
		ImagePath:    uc.Veins.Image,
	}
	switch conf.Mode {
	case ModeComposition, ModeVeins:
	default:
		return conf, fmt.Errorf("config: unknown scan mode %q", uc.Scan.Mode)
	}
	if !conf.AutoArea && (conf.Area.Width() == 0 || conf.Area.Height() == 0) {
		return conf, fmt.Errorf("config: area is empty, set Area.Auto or widen the bounds")
	}
	if conf.Mode == ModeVeins && len(conf.Targets) == 0 {
		return conf, fmt.Errorf("config: vein mode needs at least one target block state")
	}
	if conf.SectionLimit <= 0 || conf.SectionLimit > 16 {
		conf.SectionLimit = 16
	}
	if conf.ImagePath == "" {
		conf.ImagePath = "veins.png"
	}
	return conf, nil
}

// DefaultConfig returns a configuration with the default values filled out:
// a vein scan for the two diamond ore states over all chunks present.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.Scan.Mode = string(ModeVeins)
	c.Scan.CacheSize = 32
	c.Area.Auto = true
	c.Veins.Targets = []string{"minecraft:diamond_ore", "minecraft:deepslate_diamond_ore"}
	c.Veins.MaxSize = 16
	c.Veins.SectionLimit = 4
	c.Veins.Image = "veins.png"
	return c
}
