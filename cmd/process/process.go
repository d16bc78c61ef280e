package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/divVerent/midiroll/internal/file"
	"github.com/divVerent/midiroll/internal/render"
	"github.com/divVerent/midiroll/internal/version"
)

var (
	c           = flag.String("c", "midiroll.yml", "config file name (YAML)")
	i           = flag.String("i", "", "input file name (YAML)")
	addChecksum = flag.Bool("add_checksum", false, "automatically add checksum to the input YAML")
	oPrefix     = flag.String("o_prefix", "", "output file name prefix; defaults to the input file name without .yml")
	imageExt    = flag.String("image_ext", "png", "image format to write (png, bmp or tif)")
	showVersion = flag.Bool("version", false, "print the version and exit")
)

func writeImage(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create: %w", err)
	}
	defer func() {
		closeErr := f.Close()
		if closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return render.Encode(f, img, name)
}

func Main() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %v", err)
	}
	fsys := os.DirFS(cwd)

	config, err := file.ReadConfig(fsys, *c)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	options, err := file.ReadOptions(fsys, *i)
	if err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}

	wantChecksum := options.InputFileSHA256 == ""

	_, output, err := file.Process(fsys, config, options)
	if err != nil {
		return fmt.Errorf("failed to process: %w", err)
	}

	if *oPrefix == "" {
		*oPrefix = strings.TrimSuffix(*i, ".yml")
	}

	var names []string
	for name := range output {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, key := range names {
		out := output[key]
		log.Printf("%s: %d notes, %d problems, %d notes never released.", key, len(out.Intervals), len(out.Diagnostics), len(out.Dangling))
		for _, line := range out.Stats.Lines() {
			log.Printf("%s: %s", key, line)
		}
		name := fmt.Sprintf("%s.%s.%s", *oPrefix, key, *imageExt)
		err := writeImage(name, out.Image)
		if err != nil {
			return fmt.Errorf("failed to write %v: %w", name, err)
		}
		name = fmt.Sprintf("%s.%s.mid", *oPrefix, key)
		err = out.MIDI.WriteFile(name)
		if err != nil {
			return fmt.Errorf("failed to write %v: %w", name, err)
		}
	}

	if wantChecksum && *addChecksum {
		err := file.WriteOptions(*i, options)
		if err != nil {
			return fmt.Errorf("failed to write %v: %w", *i, err)
		}
	}

	return nil
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Version())
		return
	}
	err := Main()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
