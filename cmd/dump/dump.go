package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/divVerent/midiroll/internal/file"
	"github.com/divVerent/midiroll/internal/midifile"
	"github.com/divVerent/midiroll/internal/render"
	"github.com/divVerent/midiroll/internal/roll"
	"github.com/divVerent/midiroll/internal/selector"
	"github.com/divVerent/midiroll/internal/version"
)

var (
	i           = flag.String("i", "", "input MIDI file name")
	passphrase  = flag.String("passphrase", "", "passphrase for .age encrypted input files")
	rowsPerBeat = flag.Int("rows_per_beat", 2, "rows per beat in the roll preview")
	preview     = flag.Bool("preview", true, "show a text roll preview when writing to a terminal")
	showVersion = flag.Bool("version", false, "print the version and exit")
)

func Main() error {
	if *i == "" {
		return fmt.Errorf("missing -i")
	}
	if *rowsPerBeat <= 0 {
		return fmt.Errorf("-rows_per_beat must be positive, got %d", *rowsPerBeat)
	}
	data, err := file.ReadInput(os.DirFS(filepath.Dir(*i)), filepath.Base(*i), *passphrase)
	if err != nil {
		return err
	}
	song, err := midifile.Parse(data)
	if err != nil {
		return fmt.Errorf("could not parse %v: %w", *i, err)
	}
	for _, line := range song.Info() {
		fmt.Println(line)
	}
	for _, sig := range song.TimeSigs {
		fmt.Printf("Time signature at %v: %d/%d\n", song.Position(sig.Tick), sig.Num, sig.Denom)
	}

	set := selector.NewSet(nil)
	problems := 0
	intervals := roll.Resolve(song.Notes, roll.Options{
		FudgeTicks: roll.FudgeTicks(song.TimeBase),
		Filter:     set.Filter,
		Report: func(d roll.Diagnostic) {
			problems++
			fmt.Printf("ERROR: bar %v: %v\n", song.Position(d.Event.Time), d)
		},
	})
	for _, line := range set.Stats.Lines() {
		fmt.Println(line)
	}
	fmt.Printf("%d notes, %d problems\n", len(intervals), problems)

	stdoutFD := int(os.Stdout.Fd())
	if !*preview || !term.IsTerminal(stdoutFD) {
		return nil
	}
	width, _, err := term.GetSize(stdoutFD)
	if err != nil {
		return fmt.Errorf("cannot get terminal size: %w", err)
	}
	ticksPerRow := max(int64(song.TimeBase)/int64(*rowsPerBeat), 1)
	for n, line := range render.Text(intervals, ticksPerRow) {
		prefix := "    "
		if pos := song.Position(int64(n) * ticksPerRow); pos.Beat == 1 {
			prefix = fmt.Sprintf("%3d ", pos.Bar)
		}
		line = prefix + line
		if len(line) > width {
			line = line[:width]
		}
		fmt.Println(line)
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
		log.Printf("Exiting due to: %v.", err)
		os.Exit(1)
	}
}
