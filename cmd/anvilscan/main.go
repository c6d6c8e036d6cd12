package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/df-mc/anvilscan/scan"
	"github.com/pelletier/go-toml"
)

func main() {
	var output string
	flag.StringVar(&output, "o", "", "write the vein heat map to `file`")
	flag.StringVar(&output, "output", "", "write the vein heat map to `file`")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "No input folder has been specified.")
		os.Exit(1)
	}
	folder := flag.Arg(0)
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "'%v' is not a folder!\n", folder)
		os.Exit(1)
	}

	log := slog.Default()
	uc, err := readConfig(log)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
	conf, err := uc.Config(log, folder)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
	if output != "" {
		conf.ImagePath = output
	}
	if err := conf.Run(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// readConfig reads the configuration from anvilscan.toml, or creates the
// file with the default configuration if it did not yet exist.
func readConfig(log *slog.Logger) (scan.UserConfig, error) {
	c := scan.DefaultConfig()
	if _, err := os.Stat("anvilscan.toml"); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode default config: %v", err)
		}
		if err := os.WriteFile("anvilscan.toml", data, 0644); err != nil {
			return c, fmt.Errorf("create default config: %v", err)
		}
		return c, nil
	}
	data, err := os.ReadFile("anvilscan.toml")
	if err != nil {
		return c, fmt.Errorf("read config: %v", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %v", err)
	}
	return c, nil
}
