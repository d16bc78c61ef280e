package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/divVerent/midiroll/internal/file"
	"github.com/divVerent/midiroll/internal/processor"
	"github.com/divVerent/midiroll/internal/render"
	"github.com/divVerent/midiroll/internal/selector"
	"github.com/divVerent/midiroll/internal/version"
)

var (
	o           = flag.String("o", "", "output image file name (.png, .bmp or .tif); defaults to the input file name with .png")
	mid         = flag.String("mid", "", "output MIDI file name; when empty, no MIDI file is written")
	c           = flag.String("c", "", "config file name (YAML); optional")
	passphrase  = flag.String("passphrase", "", "passphrase for .age encrypted input files")
	showVersion = flag.Bool("version", false, "print the version and exit")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] input.mid [track,channel[+offset|-offset]...] [/time_divisor]\n", os.Args[0])
	flag.PrintDefaults()
}

func writeImage(name string, out *processor.Output) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", name, err)
	}
	defer func() {
		closeErr := f.Close()
		if closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return render.Encode(f, out.Image, name)
}

func Main() error {
	args := flag.Args()
	if len(args) == 0 {
		return errors.New("missing input argument")
	}
	input := args[0]
	selectors, timeDivisor, err := selector.ParseArgs(args[1:])
	if err != nil {
		return err
	}

	config := &processor.Config{}
	if *c != "" {
		config, err = file.ReadConfig(os.DirFS("."), *c)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	if *passphrase != "" {
		config.Passphrase = *passphrase
	}

	options := &processor.Options{
		InputFile: filepath.Base(input),
		RollOptions: processor.RollOptions{
			Selectors:   selectors,
			TimeDivisor: timeDivisor,
		},
	}
	song, output, err := file.Process(os.DirFS(filepath.Dir(input)), config, options)
	if err != nil {
		return err
	}
	for _, line := range song.Info() {
		fmt.Println(line)
	}
	out := output[processor.DefaultRoll]
	for _, line := range out.Stats.Lines() {
		fmt.Println(line)
	}
	log.Printf("%d notes, %d problems.", len(out.Intervals), len(out.Diagnostics))

	if *o == "" {
		*o = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}
	err = writeImage(*o, out)
	if err != nil {
		return fmt.Errorf("failed to write %v: %w", *o, err)
	}
	log.Printf("Wrote %v.", *o)

	if *mid != "" {
		err = out.MIDI.WriteFile(*mid)
		if err != nil {
			return fmt.Errorf("failed to write %v: %w", *mid, err)
		}
		log.Printf("Wrote %v.", *mid)
	}
	return nil
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Version())
		return
	}
	err := Main()
	if err != nil {
		log.Printf("Failed to process: %v", err)
		os.Exit(1)
	}
}
