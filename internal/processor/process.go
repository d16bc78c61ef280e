// Package processor turns a decoded song into piano rolls.
package processor

import (
	"fmt"
	"image"
	"log"
	"math"
	"slices"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/divVerent/midiroll/internal/midifile"
	"github.com/divVerent/midiroll/internal/render"
	"github.com/divVerent/midiroll/internal/roll"
	"github.com/divVerent/midiroll/internal/selector"
)

// Output is one finished roll.
type Output struct {
	// Intervals sorted by start.
	Intervals []roll.Interval
	// Diagnostics in the order they were reported.
	Diagnostics []roll.Diagnostic
	// Stats counts presses per track and channel, selected or not.
	Stats selector.Stats
	// Dangling are presses never released before the song ended.
	Dangling map[roll.Pitch]roll.OpenPress

	MIDI  *smf.SMF
	Image *image.RGBA
}

// Process makes all rolls the options ask for from the song.
func Process(song *midifile.Song, config *Config, options *Options) (map[string]*Output, error) {
	rolls := options.RollsToMake()
	names := make([]string, 0, len(rolls))
	for name := range rolls {
		names = append(names, name)
	}
	slices.Sort(names)
	outputs := make(map[string]*Output, len(rolls))
	for _, name := range names {
		out, err := processRoll(song, config, name, rolls[name])
		if err != nil {
			return nil, fmt.Errorf("roll %v: %w", name, err)
		}
		outputs[name] = out
	}
	return outputs, nil
}

func processRoll(song *midifile.Song, config *Config, name string, ro RollOptions) (*Output, error) {
	fudgeDivisor := ro.FudgeDivisor
	if fudgeDivisor <= 0 {
		fudgeDivisor = config.FudgeDivisor
	}
	if fudgeDivisor <= 0 {
		fudgeDivisor = defaultFudgeDivisor
	}
	timeDivisor := ro.TimeDivisor
	if timeDivisor == 0 {
		timeDivisor = 1
	}
	if timeDivisor < 0 || math.IsNaN(timeDivisor) || math.IsInf(timeDivisor, 0) {
		return nil, fmt.Errorf("time divisor must be positive and finite, got %v", timeDivisor)
	}
	velocity := config.Velocity
	if velocity == 0 {
		velocity = midifile.DefaultVelocity
	}
	if velocity > 127 {
		return nil, fmt.Errorf("velocity must be at most 127, got %d", velocity)
	}
	tempo := song.Tempo
	if tempo == 0 {
		tempo = config.Tempo
	}
	if tempo == 0 {
		tempo = defaultTempo
	}

	set := selector.NewSet(ro.Selectors)
	out := &Output{}
	r := roll.NewResolver(roll.Options{
		FudgeTicks: int64(song.TimeBase) / int64(fudgeDivisor),
		Filter:     set.Filter,
		Report: func(d roll.Diagnostic) {
			out.Diagnostics = append(out.Diagnostics, d)
			log.Printf("ERROR: %s: bar %v: %v", name, song.Position(d.Event.Time), d)
		},
	})
	for _, ev := range song.Notes {
		r.Handle(ev)
	}
	out.Dangling = r.Open()
	out.Intervals = r.Finish()
	roll.SortByStart(out.Intervals)
	out.Stats = set.Stats

	out.MIDI = midifile.Write(out.Intervals, song.TimeBase, tempo, velocity)
	img, err := render.Roll(out.Intervals, song.TimeBase, timeDivisor, config.Image)
	if err != nil {
		return nil, err
	}
	out.Image = img
	return out, nil
}
